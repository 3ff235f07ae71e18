package systems

import (
	"math"

	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/ecs"
)

// OverlayAnimationSystem 推进遮罩动画的播放时间
type OverlayAnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewOverlayAnimationSystem 创建遮罩动画系统
func NewOverlayAnimationSystem(em *ecs.EntityManager) *OverlayAnimationSystem {
	return &OverlayAnimationSystem{entityManager: em}
}

// Update 按速度倍率推进播放时间，到达动画长度后停止
func (s *OverlayAnimationSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.OverlayComponent](s.entityManager) {
		overlay, _ := ecs.GetComponent[*components.OverlayComponent](s.entityManager, id)
		if !overlay.Playing || overlay.Clip == nil {
			continue
		}

		overlay.Elapsed += deltaTime * math.Max(1, overlay.Clip.Speed)
		if overlay.Elapsed >= overlay.Clip.Length {
			overlay.Elapsed = overlay.Clip.Length
			overlay.Playing = false
		}
	}
}

// OverlayProgress 返回动画播放进度 [0, 1]，没有动画时返回 1
func OverlayProgress(overlay *components.OverlayComponent) float64 {
	if overlay.Clip == nil || overlay.Clip.Length <= 0 {
		return 1
	}
	return math.Min(1, overlay.Elapsed/overlay.Clip.Length)
}
