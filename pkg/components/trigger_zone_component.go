package components

// ZoneKind 区域用途，只影响绘制颜色
type ZoneKind int

const (
	ZoneDialogue ZoneKind = iota // 进入后开始对话
	ZoneFinish                   // 终点，进入后加载下一关
	ZoneDamage                   // 伤害区域
)

// TriggerZoneComponent 玩家进入时触发回调的矩形区域
// 区域左上角由 PositionComponent 给出
type TriggerZoneComponent struct {
	Width  float64
	Height float64
	Kind   ZoneKind

	// PlayerInside 上一帧玩家是否在区域内（用于边沿检测）
	PlayerInside bool
	// OnEnter 玩家进入区域时调用
	OnEnter func()
}
