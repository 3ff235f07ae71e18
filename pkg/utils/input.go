// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态（鼠标或触摸统一处理）
type PointerState struct {
	// X, Y 指针位置（逻辑屏幕坐标）
	X, Y int
	// Pressed 指针是否处于按下状态
	Pressed bool
	// JustPressed 本帧刚按下
	JustPressed bool
	// JustReleased 本帧刚释放
	JustReleased bool
}

// Pointer 提供每帧的指针状态
// 系统通过该接口读取输入，测试中可以替换为假实现
type Pointer interface {
	State() PointerState
}

// EbitenPointer 从 Ebitengine 读取鼠标和触摸输入
// 同一帧内多次调用 State 返回相同结果
type EbitenPointer struct {
	lastTouchX, lastTouchY int
}

// State 获取当前帧的指针状态，优先检测触摸
func (p *EbitenPointer) State() PointerState {
	state := PointerState{}

	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.Pressed = true
		p.lastTouchX, p.lastTouchY = state.X, state.Y
		state.JustPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
		return state
	}

	// 触摸释放时已经拿不到位置，使用最后一次记录的位置
	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		state.X, state.Y = p.lastTouchX, p.lastTouchY
		state.JustReleased = true
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return state
}

// PointerInput 对话引擎使用的点击输入源
//
// 每帧最多报告一次点击；点击位置落在阻挡性界面（如按钮）上时，
// OverBlockingUI 返回 true，由对话引擎决定忽略这次点击。
type PointerInput struct {
	pointer  Pointer
	blocking func(x, y float64) bool

	lastX, lastY int
}

// NewPointerInput 创建点击输入源
// blocking 判断某个位置是否在阻挡性界面上，可为 nil
func NewPointerInput(pointer Pointer, blocking func(x, y float64) bool) *PointerInput {
	if pointer == nil {
		pointer = &EbitenPointer{}
	}
	return &PointerInput{pointer: pointer, blocking: blocking}
}

// JustPressed 本帧是否有新的点击，并记录点击位置
func (p *PointerInput) JustPressed() bool {
	state := p.pointer.State()
	if !state.JustPressed {
		return false
	}
	p.lastX, p.lastY = state.X, state.Y
	return true
}

// OverBlockingUI 上一次点击是否落在阻挡性界面上
func (p *PointerInput) OverBlockingUI() bool {
	if p.blocking == nil {
		return false
	}
	return p.blocking(float64(p.lastX), float64(p.lastY))
}
