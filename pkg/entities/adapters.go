package entities

import (
	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/dialogue"
	"github.com/decker502/chargeframe/pkg/ecs"
)

// 以下类型把 ECS 实体包装成对话引擎需要的界面句柄
// 句柄只持有实体 ID，每次操作都重新查询组件，实体被销毁后操作静默失效

// panelHandle 对话面板句柄
type panelHandle struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

func (h *panelHandle) panel() *components.PanelComponent {
	panel, _ := ecs.GetComponent[*components.PanelComponent](h.em, h.id)
	return panel
}

func (h *panelHandle) Show() {
	if panel := h.panel(); panel != nil {
		panel.Visible = true
		panel.LayoutDirty = true
	}
}

func (h *panelHandle) Hide() {
	if panel := h.panel(); panel != nil {
		panel.Visible = false
	}
}

func (h *panelHandle) SetText(text string) {
	if panel := h.panel(); panel != nil {
		panel.Text = text
	}
}

func (h *panelHandle) Name() string {
	if panel := h.panel(); panel != nil {
		return panel.Name
	}
	return ""
}

// buttonHandle 面板按钮句柄
type buttonHandle struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

func (h *buttonHandle) button() *components.ButtonComponent {
	button, _ := ecs.GetComponent[*components.ButtonComponent](h.em, h.id)
	return button
}

func (h *buttonHandle) SetVisible(visible bool) {
	if button := h.button(); button != nil {
		button.Visible = visible
	}
}

func (h *buttonHandle) SetInteractable(interactable bool) {
	button := h.button()
	if button == nil {
		return
	}
	button.Enabled = interactable
	if interactable {
		button.State = components.UINormal
	} else {
		button.State = components.UIDisabled
	}
}

func (h *buttonHandle) OnClick(callback func()) {
	if button := h.button(); button != nil {
		button.OnClick = callback
	}
}

// surfaceHandle 对话界面根节点，负责按钮布局
type surfaceHandle struct {
	em *ecs.EntityManager
}

// NewSurface 创建对话界面根句柄
func NewSurface(em *ecs.EntityManager) dialogue.Surface {
	return &surfaceHandle{em: em}
}

// RefreshLayout 重新排列所有需要布局的可见面板上的按钮
func (s *surfaceHandle) RefreshLayout() {
	for _, id := range ecs.GetEntitiesWith2[*components.PanelComponent, *components.PositionComponent](s.em) {
		panel, _ := ecs.GetComponent[*components.PanelComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		if !panel.Visible || !panel.LayoutDirty {
			continue
		}

		count := len(panel.Buttons)
		for i, buttonID := range panel.Buttons {
			buttonPos, ok := ecs.GetComponent[*components.PositionComponent](s.em, buttonID)
			if !ok {
				continue
			}
			buttonPos.X, buttonPos.Y = config.ButtonPosition(pos.X, pos.Y, panel.Width, panel.Height, i, count)
		}
		panel.LayoutDirty = false
	}
}

// overlayHandle 全屏遮罩句柄
type overlayHandle struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

func (h *overlayHandle) overlay() *components.OverlayComponent {
	overlay, _ := ecs.GetComponent[*components.OverlayComponent](h.em, h.id)
	return overlay
}

func (h *overlayHandle) Show() {
	if overlay := h.overlay(); overlay != nil {
		overlay.Visible = true
	}
}

// Hide 隐藏遮罩并停止动画
func (h *overlayHandle) Hide() {
	if overlay := h.overlay(); overlay != nil {
		overlay.Visible = false
		overlay.Playing = false
		overlay.Elapsed = 0
	}
}

// Animator 没有动画配置时返回 nil
func (h *overlayHandle) Animator() dialogue.Animator {
	overlay := h.overlay()
	if overlay == nil || overlay.Clip == nil {
		return nil
	}
	return &overlayAnimator{em: h.em, id: h.id}
}

// overlayAnimator 遮罩动画控制器
type overlayAnimator struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

// PlayTrigger 触发器名称与动画配置一致时从头播放，返回动画片段
func (a *overlayAnimator) PlayTrigger(name string) (dialogue.AnimationClip, bool) {
	overlay, ok := ecs.GetComponent[*components.OverlayComponent](a.em, a.id)
	if !ok || overlay.Clip == nil || overlay.Clip.Trigger != name {
		return dialogue.AnimationClip{}, false
	}
	overlay.Playing = true
	overlay.Elapsed = 0
	return dialogue.AnimationClip{Length: overlay.Clip.Length, Speed: overlay.Clip.Speed}, true
}

// playerControl 玩家控制开关
type playerControl struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

func (p *playerControl) SetEnabled(enabled bool) {
	if player, ok := ecs.GetComponent[*components.PlayerComponent](p.em, p.id); ok {
		player.Enabled = enabled
	}
}
