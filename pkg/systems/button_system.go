package systems

import (
	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/ecs"
	"github.com/decker502/chargeframe/pkg/utils"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的指针悬停、按下和释放
//
// 职责：
//   - 检测悬停（更新按钮状态为 UIHovered）
//   - 检测释放（释放瞬间触发 OnClick 回调）
//   - 不可见或未启用的按钮不响应交互
//   - 提供 IsOverButton 供点击输入判断是否被界面遮挡
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	pointer       utils.Pointer
}

// NewButtonSystem 创建按钮交互系统
// pointer 为 nil 时从 Ebitengine 读取输入
func NewButtonSystem(em *ecs.EntityManager, pointer utils.Pointer) *ButtonSystem {
	if pointer == nil {
		pointer = &utils.EbitenPointer{}
	}
	return &ButtonSystem{
		entityManager: em,
		pointer:       pointer,
	}
}

// Update 更新按钮交互状态
func (s *ButtonSystem) Update(deltaTime float64) {
	state := s.pointer.State()
	x, y := float64(state.X), float64(state.Y)

	// 回调可能修改按钮（对话切换时会禁用按钮），先收集再触发
	var clicked []func()

	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if !button.Visible {
			button.Pressed = false
			continue
		}
		if !button.Enabled {
			button.Pressed = false
			button.State = components.UIDisabled
			continue
		}

		if !pointInRect(x, y, pos.X, pos.Y, button.Width, button.Height) {
			if !state.Pressed {
				button.Pressed = false
			}
			button.State = components.UINormal
			continue
		}

		switch {
		case state.JustPressed:
			button.Pressed = true
			button.State = components.UIClicked
		case state.Pressed:
			// 在别处按下后移进来的指针只算悬停
			if button.Pressed {
				button.State = components.UIClicked
			} else {
				button.State = components.UIHovered
			}
		case state.JustReleased:
			if button.Pressed && button.OnClick != nil {
				clicked = append(clicked, button.OnClick)
			}
			button.Pressed = false
			button.State = components.UIHovered
		default:
			button.Pressed = false
			button.State = components.UIHovered
		}
	}

	for _, onClick := range clicked {
		onClick()
	}
}

// IsOverButton 某个位置是否落在可见按钮上（不论是否启用）
func (s *ButtonSystem) IsOverButton(x, y float64) bool {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		if button.Visible && pointInRect(x, y, pos.X, pos.Y, button.Width, button.Height) {
			return true
		}
	}
	return false
}

// pointInRect 检测点是否在矩形内（含边界）
func pointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}

// rectsOverlap 两个矩形是否相交（边界相接不算）
func rectsOverlap(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}
