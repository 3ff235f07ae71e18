package components

// HealthComponent 玩家生命值
type HealthComponent struct {
	Current int
	Max     int
	// Depleted 生命值已经耗尽并通知过一次
	Depleted bool
}

// DamageZoneComponent 伤害区域，与 TriggerZoneComponent 挂在同一实体上
// 区域的进入检测由触发区域完成，OnEnter 只把 Pending 置为 true
type DamageZoneComponent struct {
	Damage   int
	Cooldown float64

	// Pending 玩家进入过区域，等待结算
	Pending bool
	// Remaining 距离下一次可以造成伤害的秒数
	Remaining float64
}
