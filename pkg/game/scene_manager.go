package game

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/decker502/chargeframe/pkg/dialogue"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrNoSceneFactory 未设置场景工厂
	ErrNoSceneFactory = errors.New("scene factory not set")
	// ErrLoadInProgress 已有一个场景正在异步加载
	ErrLoadInProgress = errors.New("another scene load is in progress")
)

// SceneFactory 场景工厂函数类型
// 根据场景名称（关卡 ID）创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(name string) (Scene, error)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
//
// 场景可以同步切换（LoadScene），也可以异步加载（BeginLoad）：
// 工厂函数在后台 goroutine 中执行，完成后等待允许激活，
// 真正的切换总是发生在游戏主循环的 Update 中。
type SceneManager struct {
	currentScene Scene
	currentName  string
	sceneFactory SceneFactory
	pending      *LoadOperation

	onActivated func(name string)
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadScene to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// OnSceneActivated 注册场景激活回调（同步和异步切换都会调用）
func (sm *SceneManager) OnSceneActivated(callback func(name string)) {
	sm.onActivated = callback
}

// SwitchTo 直接切换到给定场景，旧场景会被关闭
func (sm *SceneManager) SwitchTo(name string, scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		closeScene(sm.currentScene)
	}
	sm.currentScene = scene
	sm.currentName = name
	log.Printf("[SceneManager] Active scene: %s", name)

	if sm.onActivated != nil {
		sm.onActivated(name)
	}
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// ActiveScene 返回当前活动场景的名称
func (sm *SceneManager) ActiveScene() string {
	return sm.currentName
}

// LoadScene 同步创建并切换到指定场景
func (sm *SceneManager) LoadScene(name string) error {
	log.Printf("[SceneManager] Loading scene: %s", name)

	if sm.sceneFactory == nil {
		return ErrNoSceneFactory
	}

	scene, err := sm.sceneFactory(name)
	if err != nil {
		return fmt.Errorf("failed to create scene %s: %w", name, err)
	}
	sm.SwitchTo(name, scene)
	return nil
}

// BeginLoad 在后台开始加载场景
// 返回的 LoadOperation 默认允许激活
func (sm *SceneManager) BeginLoad(name string) (dialogue.LoadHandle, error) {
	op, err := sm.beginLoad(name)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (sm *SceneManager) beginLoad(name string) (*LoadOperation, error) {
	if sm.sceneFactory == nil {
		return nil, ErrNoSceneFactory
	}
	if sm.pending != nil {
		return nil, fmt.Errorf("cannot load %s: %w", name, ErrLoadInProgress)
	}

	op := newLoadOperation(name)
	sm.pending = op
	factory := sm.sceneFactory

	log.Printf("[SceneManager] Begin async load: %s", name)
	go func() {
		scene, err := factory(name)
		op.finish(scene, err)
	}()
	return op, nil
}

// Update 处理待激活的异步加载，然后更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	sm.activatePending()

	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// activatePending 加载完成且允许激活时切换场景
func (sm *SceneManager) activatePending() {
	op := sm.pending
	if op == nil {
		return
	}

	scene, ready, err := op.result()
	if !ready {
		return
	}
	sm.pending = nil

	if err != nil {
		log.Printf("[SceneManager] Async load of %s failed: %v", op.name, err)
		return
	}
	sm.SwitchTo(op.name, scene)
	op.markActivated()
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// LoadOperation 一次异步场景加载
// 实现 dialogue.LoadHandle
type LoadOperation struct {
	name string

	mu        sync.Mutex
	scene     Scene
	err       error
	loaded    bool
	allowed   bool
	activated bool
	loadedCh  chan struct{}
}

func newLoadOperation(name string) *LoadOperation {
	return &LoadOperation{
		name:     name,
		allowed:  true,
		loadedCh: make(chan struct{}),
	}
}

// Name 返回加载的场景名称
func (op *LoadOperation) Name() string {
	return op.name
}

// SetActivationAllowed 控制加载完成后是否允许切换
func (op *LoadOperation) SetActivationAllowed(allowed bool) {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.allowed = allowed
}

// Done 场景已经切换完成，或加载失败
func (op *LoadOperation) Done() bool {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.activated || (op.loaded && op.err != nil)
}

// Err 返回加载错误
func (op *LoadOperation) Err() error {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.err
}

// Loaded 返回一个在工厂函数返回后关闭的 channel
func (op *LoadOperation) Loaded() <-chan struct{} {
	return op.loadedCh
}

func (op *LoadOperation) finish(scene Scene, err error) {
	op.mu.Lock()
	op.scene = scene
	op.err = err
	op.loaded = true
	op.mu.Unlock()
	close(op.loadedCh)
}

// result 返回加载结果；ready 表示可以处理（失败，或成功且允许激活）
func (op *LoadOperation) result() (scene Scene, ready bool, err error) {
	op.mu.Lock()
	defer op.mu.Unlock()
	if !op.loaded {
		return nil, false, nil
	}
	if op.err != nil {
		return nil, true, op.err
	}
	return op.scene, op.allowed, nil
}

func (op *LoadOperation) markActivated() {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.activated = true
}
