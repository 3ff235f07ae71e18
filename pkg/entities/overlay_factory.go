package entities

import (
	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/dialogue"
	"github.com/decker502/chargeframe/pkg/ecs"
)

// NewOverlayEntity 创建全屏遮罩实体
// cfg 为 nil 时不创建实体，返回 nil（关卡没有配置该面板）
func NewOverlayEntity(em *ecs.EntityManager, cfg *config.OverlayConfig, kind components.OverlayKind, trigger string) dialogue.Overlay {
	if cfg == nil {
		return nil
	}

	overlay := &components.OverlayComponent{
		Kind: kind,
		Text: cfg.Text,
	}
	if cfg.Animation != nil {
		overlay.Clip = &components.OverlayClip{
			Trigger: trigger,
			Length:  cfg.Animation.Length,
			Speed:   cfg.Animation.Speed,
		}
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, overlay)
	return &overlayHandle{em: em, id: id}
}
