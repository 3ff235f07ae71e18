package systems

import (
	"log"

	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/ecs"
)

// HealthSystem 伤害结算系统
//
// 职责：
//   - 倒计时每个伤害区域的冷却
//   - 玩家进入过的伤害区域（Pending）在冷却结束时扣除所有玩家的生命
//   - 玩家生命降到 0 时调用一次 onDepleted（关卡据此重新开始）
//
// 必须在 TriggerZoneSystem 之后更新，同一帧进入的伤害当帧结算。
type HealthSystem struct {
	entityManager *ecs.EntityManager
	onDepleted    func()
}

// NewHealthSystem 创建伤害结算系统，onDepleted 可为 nil
func NewHealthSystem(em *ecs.EntityManager, onDepleted func()) *HealthSystem {
	return &HealthSystem{entityManager: em, onDepleted: onDepleted}
}

// Update 结算伤害并检测生命耗尽
func (s *HealthSystem) Update(deltaTime float64) {
	players := ecs.GetEntitiesWith1[*components.HealthComponent](s.entityManager)

	for _, id := range ecs.GetEntitiesWith1[*components.DamageZoneComponent](s.entityManager) {
		zone, _ := ecs.GetComponent[*components.DamageZoneComponent](s.entityManager, id)
		if zone.Remaining > 0 {
			zone.Remaining -= deltaTime
		}
		if !zone.Pending {
			continue
		}
		zone.Pending = false
		if zone.Remaining > 0 {
			continue
		}

		for _, playerID := range players {
			health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, playerID)
			health.Current -= zone.Damage
			log.Printf("[HealthSystem] Player took %d damage from zone %d, health %d/%d",
				zone.Damage, id, health.Current, health.Max)
		}
		zone.Remaining = zone.Cooldown
	}

	depleted := false
	for _, playerID := range players {
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, playerID)
		if health.Current <= 0 && !health.Depleted {
			health.Depleted = true
			depleted = true
		}
	}
	if depleted && s.onDepleted != nil {
		log.Printf("[HealthSystem] Player health depleted")
		s.onDepleted()
	}
}
