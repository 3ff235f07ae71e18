package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/dialogue"
	"github.com/decker502/chargeframe/pkg/ecs"
	"github.com/decker502/chargeframe/pkg/embedded"
	"github.com/decker502/chargeframe/pkg/entities"
	"github.com/decker502/chargeframe/pkg/systems"
	"github.com/decker502/chargeframe/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// LevelOptions 创建关卡场景的可选依赖
// 零值使用 Ebitengine 的鼠标/触摸输入，桌面端用键盘移动，移动端跟随触摸点移动
type LevelOptions struct {
	Pointer   utils.Pointer
	Direction systems.DirectionSource
}

// LevelScene 一个可游玩的关卡
//
// 玩家在场景中自由移动，进入触发区域后开始对话；
// 对话期间玩家被冻结，对话结局决定加载下一关、重开本关或继续游戏。
// 走到终点直接进入下一关，生命耗尽则重开本关。
type LevelScene struct {
	cfg    *config.LevelConfig
	em     *ecs.EntityManager
	engine *dialogue.Engine
	loader dialogue.SceneLoader
	// leaving 本场景已经发起过终点或重开的加载
	leaving bool

	playerMovement   *systems.PlayerMovementSystem
	triggerZone      *systems.TriggerZoneSystem
	health           *systems.HealthSystem
	buttons          *systems.ButtonSystem
	overlayAnimation *systems.OverlayAnimationSystem
	render           *systems.UIRenderSystem
}

// NewLevelScene 从 data/levels/<levelID>.yaml 创建关卡场景
func NewLevelScene(loader dialogue.SceneLoader, levelID string) (*LevelScene, error) {
	cfg, err := config.LoadLevelConfig(embedded.LevelPath(levelID))
	if err != nil {
		return nil, err
	}
	return NewLevelSceneFromConfig(loader, cfg, LevelOptions{})
}

// NewLevelSceneFromConfig 根据已加载的配置创建关卡场景
func NewLevelSceneFromConfig(loader dialogue.SceneLoader, cfg *config.LevelConfig, opts LevelOptions) (*LevelScene, error) {
	s := &LevelScene{
		cfg:    cfg,
		em:     ecs.NewEntityManager(),
		loader: loader,
	}

	_, player := entities.NewPlayerEntity(s.em, cfg.Player)

	graph, err := entities.NewDialogueEntities(s.em, cfg)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", cfg.ID, err)
	}

	endOverlay := entities.NewOverlayEntity(s.em, cfg.EndOverlay, components.OverlayEnd, cfg.AnimationTrigger)
	loadingOverlay := entities.NewOverlayEntity(s.em, cfg.LoadingOverlay, components.OverlayLoading, cfg.AnimationTrigger)

	pointer := opts.Pointer
	if pointer == nil {
		pointer = &utils.EbitenPointer{}
	}

	direction := opts.Direction
	if direction == nil && utils.IsMobile() {
		direction = systems.PointerFollowDirection(s.em, pointer)
	}

	s.playerMovement = systems.NewPlayerMovementSystem(s.em, direction)
	s.triggerZone = systems.NewTriggerZoneSystem(s.em)
	s.health = systems.NewHealthSystem(s.em, s.onHealthDepleted)
	s.buttons = systems.NewButtonSystem(s.em, pointer)
	s.overlayAnimation = systems.NewOverlayAnimationSystem(s.em)
	s.render = systems.NewUIRenderSystem(s.em)

	s.engine = dialogue.NewEngine(graph, dialogue.Options{
		Player:           player,
		Surface:          entities.NewSurface(s.em),
		Pointer:          utils.NewPointerInput(pointer, s.buttons.IsOverButton),
		Loader:           loader,
		NextScene:        cfg.NextScene,
		EndOverlay:       endOverlay,
		LoadingOverlay:   loadingOverlay,
		AnimationTrigger: cfg.AnimationTrigger,
		MinWait:          cfg.MinLoadingTime,
	})
	s.engine.OnComplete(func(outcome dialogue.Outcome) {
		log.Printf("[LevelScene] %s: dialogue completed with %s", cfg.ID, outcome)
	})

	entities.NewTriggerZoneEntity(s.em, cfg.TriggerZone, s.onEnterTriggerZone)
	if cfg.FinishPoint != nil {
		entities.NewFinishPointEntity(s.em, *cfg.FinishPoint, s.onReachFinishPoint)
	}
	for _, zone := range cfg.DamageZones {
		entities.NewDamageZoneEntity(s.em, zone)
	}

	log.Printf("[LevelScene] Level %s (%s) ready, %d dialogue nodes", cfg.ID, cfg.Name, graph.Len())
	return s, nil
}

// onEnterTriggerZone 玩家进入触发区域时开始对话
func (s *LevelScene) onEnterTriggerZone() {
	if err := s.engine.Start(); err != nil {
		log.Printf("[LevelScene] %s: cannot start dialogue: %v", s.cfg.ID, err)
	}
}

// onReachFinishPoint 玩家走到终点时加载下一关，对话进行中忽略
func (s *LevelScene) onReachFinishPoint() {
	if s.engine.IsActive() {
		log.Printf("[LevelScene] %s: finish point ignored during dialogue", s.cfg.ID)
		return
	}
	if s.cfg.NextScene == "" {
		log.Printf("[LevelScene] Warning: %s has a finish point but no next scene", s.cfg.ID)
		return
	}
	s.loadScene(s.cfg.NextScene)
}

// onHealthDepleted 生命耗尽时重新加载当前场景
func (s *LevelScene) onHealthDepleted() {
	name := s.cfg.ID
	if s.loader != nil && s.loader.ActiveScene() != "" {
		name = s.loader.ActiveScene()
	}
	s.loadScene(name)
}

// loadScene 离开本场景，只会发起一次
func (s *LevelScene) loadScene(name string) {
	if s.leaving {
		return
	}
	if s.loader == nil {
		log.Printf("[LevelScene] Warning: no scene loader, cannot load %s", name)
		return
	}
	handle, err := s.loader.BeginLoad(name)
	if err != nil {
		log.Printf("[LevelScene] %s: failed to load %s: %v", s.cfg.ID, name, err)
		return
	}
	handle.SetActivationAllowed(true)
	s.leaving = true
	log.Printf("[LevelScene] %s: loading %s", s.cfg.ID, name)
}

// Update 更新顺序：移动 → 触发区域 → 伤害 → 按钮 → 对话引擎 → 遮罩动画
func (s *LevelScene) Update(deltaTime float64) {
	s.playerMovement.Update(deltaTime)
	s.triggerZone.Update(deltaTime)
	s.health.Update(deltaTime)
	s.buttons.Update(deltaTime)
	s.engine.Update(deltaTime)
	s.overlayAnimation.Update(deltaTime)
	s.em.RemoveMarkedEntities()
}

// Draw 绘制场景
func (s *LevelScene) Draw(screen *ebiten.Image) {
	s.render.Draw(screen)
}

// Close 终止进行中的对话
func (s *LevelScene) Close() {
	s.engine.Close()
}

// Config 返回关卡配置
func (s *LevelScene) Config() *config.LevelConfig {
	return s.cfg
}

// Engine 返回对话引擎
func (s *LevelScene) Engine() *dialogue.Engine {
	return s.engine
}

// EntityManager 返回实体管理器
func (s *LevelScene) EntityManager() *ecs.EntityManager {
	return s.em
}
