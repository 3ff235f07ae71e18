package main

import (
	"fmt"
	"log"

	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/dialogue"
)

// termPanel 终端文本框面板
type termPanel struct {
	name    string
	text    string
	visible bool
	buttons []*termButton
}

func (p *termPanel) Show()               { p.visible = true }
func (p *termPanel) Hide()               { p.visible = false }
func (p *termPanel) SetText(text string) { p.text = text }
func (p *termPanel) Name() string        { return p.name }

// termButton 数字键选择的按钮
type termButton struct {
	label        string
	visible      bool
	interactable bool
	onClick      func()
}

func (b *termButton) SetVisible(visible bool)           { b.visible = visible }
func (b *termButton) SetInteractable(interactable bool) { b.interactable = interactable }
func (b *termButton) OnClick(callback func())           { b.onClick = callback }

// press 模拟点击，按钮不可见或不可交互时无效
func (b *termButton) press() bool {
	if !b.visible || !b.interactable || b.onClick == nil {
		return false
	}
	b.onClick()
	return true
}

// termOverlay 状态横幅形式的结束/加载面板
type termOverlay struct {
	text     string
	visible  bool
	clip     *dialogue.AnimationClip
	trigger  string
	playing  bool
	elapsed  float64
	duration float64
}

func newTermOverlay(cfg *config.OverlayConfig, trigger string) *termOverlay {
	if cfg == nil {
		return nil
	}
	o := &termOverlay{text: cfg.Text, trigger: trigger}
	if cfg.Animation != nil {
		o.clip = &dialogue.AnimationClip{Length: cfg.Animation.Length, Speed: cfg.Animation.Speed}
	}
	return o
}

func (o *termOverlay) Show() { o.visible = true }

func (o *termOverlay) Hide() {
	o.visible = false
	o.playing = false
}

func (o *termOverlay) Animator() dialogue.Animator {
	if o.clip == nil {
		return nil
	}
	return o
}

func (o *termOverlay) PlayTrigger(name string) (dialogue.AnimationClip, bool) {
	if name != o.trigger {
		return dialogue.AnimationClip{}, false
	}
	o.playing = true
	o.elapsed = 0
	o.duration = o.clip.Duration()
	return *o.clip, true
}

func (o *termOverlay) update(dt float64) {
	if !o.playing {
		return
	}
	o.elapsed += dt
	if o.elapsed >= o.duration {
		o.elapsed = o.duration
		o.playing = false
	}
}

// progress 返回动画播放进度 [0, 1]
func (o *termOverlay) progress() float64 {
	if o.duration <= 0 {
		return 1
	}
	return o.elapsed / o.duration
}

// termPlayer 记录玩家控制是否被对话接管
type termPlayer struct {
	enabled bool
}

func (p *termPlayer) SetEnabled(enabled bool) { p.enabled = enabled }

// simLoad 模拟的异步加载：经过 delay 秒后加载完成，允许激活后切换
type simLoad struct {
	name      string
	remaining float64
	allowed   bool
	activated bool
}

func (l *simLoad) SetActivationAllowed(allowed bool) { l.allowed = allowed }
func (l *simLoad) Done() bool                        { return l.activated }

// simLoader 模拟场景加载器
type simLoader struct {
	delay   float64
	active  string
	pending *simLoad
	// activated 最近一次激活的场景，由预览模型读取后清空
	activated string
}

func (s *simLoader) BeginLoad(name string) (dialogue.LoadHandle, error) {
	log.Printf("[Preview] Simulated load of %s (%.1fs)", name, s.delay)
	s.pending = &simLoad{name: name, remaining: s.delay}
	return s.pending, nil
}

func (s *simLoader) ActiveScene() string { return s.active }

func (s *simLoader) update(dt float64) {
	l := s.pending
	if l == nil {
		return
	}
	l.remaining -= dt
	if l.remaining <= 0 && l.allowed {
		l.activated = true
		s.active = l.name
		s.activated = l.name
		s.pending = nil
	}
}

// buildGraph 用终端适配器构建对话图
func buildGraph(cfg *config.LevelConfig) (*dialogue.Graph, []*termPanel, error) {
	nodes := make([]dialogue.DialogueNode, 0, len(cfg.Dialogue))
	panels := make([]*termPanel, 0, len(cfg.Dialogue))

	for i, nodeCfg := range cfg.Dialogue {
		node, err := nodeCfg.DialogueNode()
		if err != nil {
			return nil, nil, fmt.Errorf("dialogue %d (%s): %w", i, nodeCfg.Name, err)
		}
		panel := &termPanel{name: nodeCfg.Name}
		node.Panel = panel
		for j, buttonCfg := range nodeCfg.Buttons {
			button := &termButton{label: buttonCfg.Label}
			panel.buttons = append(panel.buttons, button)
			node.Buttons[j].Button = button
		}

		panels = append(panels, panel)
		nodes = append(nodes, node)
	}
	return dialogue.NewGraph(nodes...), panels, nil
}
