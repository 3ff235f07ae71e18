package systems

import (
	"log"

	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/ecs"
)

// TriggerZoneSystem 触发区域系统
// 玩家从区域外进入区域内的那一帧调用 OnEnter，停留期间不会重复触发
type TriggerZoneSystem struct {
	entityManager *ecs.EntityManager
}

// NewTriggerZoneSystem 创建触发区域系统
func NewTriggerZoneSystem(em *ecs.EntityManager) *TriggerZoneSystem {
	return &TriggerZoneSystem{entityManager: em}
}

// Update 检测玩家与所有触发区域的重叠
func (s *TriggerZoneSystem) Update(deltaTime float64) {
	players := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager)
	zones := ecs.GetEntitiesWith2[*components.TriggerZoneComponent, *components.PositionComponent](s.entityManager)

	var entered []func()
	for _, zoneID := range zones {
		zone, _ := ecs.GetComponent[*components.TriggerZoneComponent](s.entityManager, zoneID)
		zonePos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, zoneID)

		inside := false
		for _, playerID := range players {
			player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, playerID)
			pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, playerID)
			if rectsOverlap(pos.X, pos.Y, player.Width, player.Height, zonePos.X, zonePos.Y, zone.Width, zone.Height) {
				inside = true
				break
			}
		}

		if inside && !zone.PlayerInside && zone.OnEnter != nil {
			log.Printf("[TriggerZoneSystem] Player entered zone %d", zoneID)
			entered = append(entered, zone.OnEnter)
		}
		zone.PlayerInside = inside
	}

	for _, onEnter := range entered {
		onEnter()
	}
}
