package components

// PlayerComponent 可移动的玩家角色
type PlayerComponent struct {
	Width  float64
	Height float64
	// Speed 移动速度（像素/秒）
	Speed float64
	// Enabled 为 false 时忽略移动输入（对话进行中）
	Enabled bool
}
