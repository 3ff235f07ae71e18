package components

// UIState 界面元素（按钮）的交互状态
type UIState int

const (
	// UINormal 默认状态
	UINormal UIState = iota
	// UIHovered 指针悬停
	UIHovered
	// UIClicked 指针按下
	UIClicked
	// UIDisabled 禁用，不响应交互
	UIDisabled
)

// String 返回状态名称（调试输出用）
func (s UIState) String() string {
	switch s {
	case UINormal:
		return "normal"
	case UIHovered:
		return "hovered"
	case UIClicked:
		return "clicked"
	case UIDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}
