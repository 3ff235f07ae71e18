package systems

import (
	"math"

	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/ecs"
	"github.com/decker502/chargeframe/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// Direction 移动方向输入，只使用方向，长度无关
type Direction struct {
	X, Y float64
}

// DirectionSource 提供每帧的移动方向
type DirectionSource func() Direction

// KeyboardDirection 读取方向键和 WASD
func KeyboardDirection() Direction {
	var d Direction
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		d.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		d.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		d.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		d.Y++
	}
	return d
}

// followDeadZone 指针与玩家中心距离小于该值（像素）时停止移动
const followDeadZone = 4.0

// PointerFollowDirection 按住屏幕时朝按下位置移动（移动端没有键盘）
func PointerFollowDirection(em *ecs.EntityManager, pointer utils.Pointer) DirectionSource {
	return func() Direction {
		state := pointer.State()
		if !state.Pressed {
			return Direction{}
		}
		for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](em) {
			player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
			pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
			dx := float64(state.X) - (pos.X + player.Width/2)
			dy := float64(state.Y) - (pos.Y + player.Height/2)
			if math.Hypot(dx, dy) < followDeadZone {
				return Direction{}
			}
			return Direction{X: dx, Y: dy}
		}
		return Direction{}
	}
}

// PlayerMovementSystem 玩家移动系统
// 玩家被禁用（对话进行中）时忽略输入
type PlayerMovementSystem struct {
	entityManager *ecs.EntityManager
	input         DirectionSource
}

// NewPlayerMovementSystem 创建玩家移动系统，input 为 nil 时读取键盘
func NewPlayerMovementSystem(em *ecs.EntityManager, input DirectionSource) *PlayerMovementSystem {
	if input == nil {
		input = KeyboardDirection
	}
	return &PlayerMovementSystem{entityManager: em, input: input}
}

// Update 按方向和速度移动玩家，斜向移动速度归一化，位置限制在窗口内
func (s *PlayerMovementSystem) Update(deltaTime float64) {
	dir := s.input()
	if dir.X == 0 && dir.Y == 0 {
		return
	}
	length := math.Hypot(dir.X, dir.Y)

	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !player.Enabled {
			continue
		}

		step := player.Speed * deltaTime / length
		pos.X, pos.Y = config.ClampToWindow(pos.X+dir.X*step, pos.Y+dir.Y*step, player.Width, player.Height)
	}
}
