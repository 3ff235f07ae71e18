package entities

import (
	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/dialogue"
	"github.com/decker502/chargeframe/pkg/ecs"
)

// NewPlayerEntity 创建玩家实体，返回实体 ID 和控制开关
func NewPlayerEntity(em *ecs.EntityManager, cfg config.PlayerConfig) (ecs.EntityID, dialogue.PlayerControl) {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: cfg.X, Y: cfg.Y})
	ecs.AddComponent(em, id, &components.PlayerComponent{
		Width:   config.PlayerSize,
		Height:  config.PlayerSize,
		Speed:   cfg.Speed,
		Enabled: true,
	})
	// 生命值为 0 的配置（未经默认值填充）不参与伤害结算
	if cfg.Health > 0 {
		ecs.AddComponent(em, id, &components.HealthComponent{Current: cfg.Health, Max: cfg.Health})
	}
	return id, &playerControl{em: em, id: id}
}

// NewTriggerZoneEntity 创建触发对话的区域实体
func NewTriggerZoneEntity(em *ecs.EntityManager, cfg config.TriggerZoneConfig, onEnter func()) ecs.EntityID {
	return newZoneEntity(em, cfg, components.ZoneDialogue, onEnter)
}

// NewFinishPointEntity 创建终点实体
func NewFinishPointEntity(em *ecs.EntityManager, cfg config.TriggerZoneConfig, onEnter func()) ecs.EntityID {
	return newZoneEntity(em, cfg, components.ZoneFinish, onEnter)
}

// NewDamageZoneEntity 创建伤害区域实体，伤害由 HealthSystem 结算
func NewDamageZoneEntity(em *ecs.EntityManager, cfg config.DamageZoneConfig) ecs.EntityID {
	damage := &components.DamageZoneComponent{
		Damage:   cfg.Damage,
		Cooldown: cfg.Cooldown,
	}
	id := newZoneEntity(em, cfg.Rect(), components.ZoneDamage, func() {
		damage.Pending = true
	})
	ecs.AddComponent(em, id, damage)
	return id
}

func newZoneEntity(em *ecs.EntityManager, cfg config.TriggerZoneConfig, kind components.ZoneKind, onEnter func()) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: cfg.X, Y: cfg.Y})
	ecs.AddComponent(em, id, &components.TriggerZoneComponent{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Kind:    kind,
		OnEnter: onEnter,
	})
	return id
}
