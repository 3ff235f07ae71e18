package components

import "github.com/decker502/chargeframe/pkg/ecs"

// ButtonComponent 对话面板上的按钮（ECS 架构）
//
// 纯数据组件：
//   - 位置由 PositionComponent 给出（绝对坐标，布局刷新时由面板重新计算）
//   - Visible 与 Enabled 分开控制，面板显示后按钮要晚一帧才可交互
//   - 只有按下时就在该按钮上的指针，释放时才触发 OnClick
type ButtonComponent struct {
	// Label 按钮文字
	Label string
	// Width 按钮宽度（像素）
	Width float64
	// Height 按钮高度（像素）
	Height float64

	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Visible 是否绘制
	Visible bool
	// Enabled 是否响应点击
	Enabled bool
	// Pressed 当前这次按下是否落在本按钮上（可见且启用时）
	Pressed bool

	// Panel 所属面板实体
	Panel ecs.EntityID
	// Index 在面板按钮列表中的序号（决定布局位置）
	Index int

	// OnClick 点击回调
	OnClick func()
}
