package scenes

import (
	"testing"
	"time"

	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/dialogue"
	"github.com/decker502/chargeframe/pkg/ecs"
	"github.com/decker502/chargeframe/pkg/game"
	"github.com/decker502/chargeframe/pkg/systems"
	"github.com/decker502/chargeframe/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

const frame = 1.0 / 60

type testPointer struct {
	state utils.PointerState
}

func (p *testPointer) State() utils.PointerState { return p.state }

// levelHarness 驱动关卡场景的测试装置
type levelHarness struct {
	t       *testing.T
	scene   *LevelScene
	pointer *testPointer
	dir     systems.Direction
}

func testConfig() *config.LevelConfig {
	return &config.LevelConfig{
		ID:               "level-1",
		Name:             "Test Level",
		NextScene:        "level-2",
		MinLoadingTime:   0.05,
		AnimationTrigger: "Play",
		Player:           config.PlayerConfig{X: 100, Y: 300, Speed: 6000},
		TriggerZone:      config.TriggerZoneConfig{X: 200, Y: 280, Width: 50, Height: 80},
		Dialogue: []config.NodeConfig{
			{Name: "intro", Text: "Welcome", Outcome: "nothing"},
			{
				Name:       "choice",
				Text:       "Continue?",
				DisableTap: true,
				Outcome:    "nothing",
				Buttons: []config.ButtonConfig{
					{Label: "Next", Action: "advance"},
					{Label: "Stop", Action: "outcome", Outcome: "nothing"},
				},
			},
			{Name: "end", Text: "Onward", IsEndNode: true, Outcome: "nextScene"},
		},
	}
}

func newLevelHarness(t *testing.T, loader dialogue.SceneLoader, mutate func(*config.LevelConfig)) *levelHarness {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}
	h := &levelHarness{t: t, pointer: &testPointer{}}
	scene, err := NewLevelSceneFromConfig(loader, cfg, LevelOptions{
		Pointer:   h.pointer,
		Direction: func() systems.Direction { return h.dir },
	})
	if err != nil {
		t.Fatalf("NewLevelSceneFromConfig() failed: %v", err)
	}
	h.scene = scene
	return h
}

func (h *levelHarness) update(n int) {
	for i := 0; i < n; i++ {
		h.scene.Update(frame)
		h.pointer.state = utils.PointerState{}
	}
}

// enterZone 把玩家移进触发区域并等待首个面板的按钮激活
func (h *levelHarness) enterZone() {
	h.dir = systems.Direction{X: 1}
	h.update(1)
	h.dir = systems.Direction{}
	h.update(1)
}

func (h *levelHarness) tapAt(x, y int) {
	h.pointer.state = utils.PointerState{X: x, Y: y, Pressed: true, JustPressed: true}
	h.update(1)
}

// clickButton 在按钮中心按下再释放
func (h *levelHarness) clickButton(label string) {
	h.t.Helper()
	x, y := h.buttonCenter(label)
	h.pointer.state = utils.PointerState{X: x, Y: y, Pressed: true, JustPressed: true}
	h.scene.Update(frame)
	h.pointer.state = utils.PointerState{X: x, Y: y, JustReleased: true}
	h.scene.Update(frame)
	h.pointer.state = utils.PointerState{}
}

func (h *levelHarness) buttonCenter(label string) (int, int) {
	h.t.Helper()
	em := h.scene.EntityManager()
	for _, id := range ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](em) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if button.Label == label {
			if !button.Visible || !button.Enabled {
				h.t.Fatalf("button %q is not clickable", label)
			}
			return int(pos.X + button.Width/2), int(pos.Y + button.Height/2)
		}
	}
	h.t.Fatalf("button %q not found", label)
	return 0, 0
}

func (h *levelHarness) visiblePanels() []string {
	em := h.scene.EntityManager()
	var names []string
	for _, id := range ecs.GetEntitiesWith1[*components.PanelComponent](em) {
		panel, _ := ecs.GetComponent[*components.PanelComponent](em, id)
		if panel.Visible {
			names = append(names, panel.Name)
		}
	}
	return names
}

func (h *levelHarness) playerEnabled() bool {
	em := h.scene.EntityManager()
	for _, id := range ecs.GetEntitiesWith1[*components.PlayerComponent](em) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
		return player.Enabled
	}
	return false
}

// TestLevelSceneDialogueFlow 测试进入区域 → 点击推进 → 按钮结束对话
func TestLevelSceneDialogueFlow(t *testing.T) {
	h := newLevelHarness(t, nil, nil)
	engine := h.scene.Engine()

	h.update(1)
	if engine.State() != dialogue.StateIdle {
		t.Fatalf("Dialogue should not start before entering the zone")
	}

	h.enterZone()
	if engine.State() != dialogue.StateActive {
		t.Fatalf("Expected active dialogue, got %s", engine.State())
	}
	if h.playerEnabled() {
		t.Error("Player should be frozen during dialogue")
	}
	if got := h.visiblePanels(); len(got) != 1 || got[0] != "intro" {
		t.Fatalf("Expected intro panel, got %v", got)
	}

	// 玩家在对话中无法移动，也不会重复触发
	h.dir = systems.Direction{X: -1}
	h.update(1)
	h.dir = systems.Direction{}

	h.tapAt(10, 10)
	h.update(2)
	if engine.CurrentIndex() != 1 || engine.State() != dialogue.StateActive {
		t.Fatalf("Expected choice node active, got index %d state %s", engine.CurrentIndex(), engine.State())
	}

	// choice 节点禁止点击推进
	h.tapAt(10, 10)
	h.update(2)
	if engine.CurrentIndex() != 1 {
		t.Fatalf("Tap on tap-disabled node should be ignored")
	}

	h.clickButton("Stop")
	if engine.State() != dialogue.StateConcluding {
		t.Fatalf("Expected concluding after Stop, got %s", engine.State())
	}

	h.update(10)
	if engine.State() != dialogue.StateIdle {
		t.Fatalf("Expected idle after outcome, got %s", engine.State())
	}
	if got := h.visiblePanels(); len(got) != 0 {
		t.Errorf("Expected all panels hidden, got %v", got)
	}
	if !h.playerEnabled() {
		t.Error("Player should be enabled after dialogue")
	}
}

// TestLevelScenePressOnButtonIsNotATap 测试按在按钮上不算点击屏幕
func TestLevelScenePressOnButtonIsNotATap(t *testing.T) {
	h := newLevelHarness(t, nil, func(cfg *config.LevelConfig) {
		cfg.Dialogue[1].DisableTap = false
	})
	engine := h.scene.Engine()
	h.enterZone()
	h.tapAt(10, 10)
	h.update(2)

	// choice 节点此处允许点击推进，按在按钮上的点击必须被忽略
	x, y := h.buttonCenter("Next")
	h.pointer.state = utils.PointerState{X: x, Y: y, Pressed: true, JustPressed: true}
	h.scene.Update(frame)
	if engine.CurrentIndex() != 1 || engine.State() != dialogue.StateActive {
		t.Fatalf("Pressing a button must not advance the dialogue")
	}

	h.pointer.state = utils.PointerState{X: x, Y: y, JustReleased: true}
	h.scene.Update(frame)
	h.update(2)
	if engine.CurrentIndex() != 2 {
		t.Fatalf("Releasing on Next should advance once, got index %d", engine.CurrentIndex())
	}
}

// levelStub 记录更新次数的下一关场景
type levelStub struct {
	updates int
}

func (s *levelStub) Update(float64)     { s.updates++ }
func (s *levelStub) Draw(*ebiten.Image) {}

// TestLevelSceneLoadsNextScene 测试结束节点点击后通过 SceneManager 加载下一关
func TestLevelSceneLoadsNextScene(t *testing.T) {
	sm := game.NewSceneManager()
	next := &levelStub{}
	sm.SetSceneFactory(func(name string) (game.Scene, error) {
		return next, nil
	})

	h := newLevelHarness(t, sm, nil)
	sm.SwitchTo("level-1", h.scene)

	step := func() {
		sm.Update(frame)
		h.pointer.state = utils.PointerState{}
	}

	h.dir = systems.Direction{X: 1}
	step()
	h.dir = systems.Direction{}
	step()

	h.pointer.state = utils.PointerState{X: 10, Y: 10, Pressed: true, JustPressed: true}
	step()
	step()
	step()
	x, y := h.buttonCenter("Next")
	h.pointer.state = utils.PointerState{X: x, Y: y, Pressed: true, JustPressed: true}
	step()
	h.pointer.state = utils.PointerState{X: x, Y: y, JustReleased: true}
	step()
	step()
	step()

	h.pointer.state = utils.PointerState{X: 10, Y: 10, Pressed: true, JustPressed: true}
	step()

	deadline := time.Now().Add(5 * time.Second)
	for sm.ActiveScene() != "level-2" && time.Now().Before(deadline) {
		step()
		time.Sleep(time.Millisecond)
	}
	if sm.ActiveScene() != "level-2" {
		t.Fatalf("Expected level-2 to become active, got %q (dialogue state %s)", sm.ActiveScene(), h.scene.Engine().State())
	}
	if sm.GetCurrentScene() != next || next.updates == 0 {
		t.Error("Next scene should be current and updated")
	}
}

// TestLevelSceneHeldPressDoesNotClickNewButton 测试一次按住的点击推进对话后，
// 在下一屏出现的按钮上释放不会再触发按钮
func TestLevelSceneHeldPressDoesNotClickNewButton(t *testing.T) {
	h := newLevelHarness(t, nil, nil)
	engine := h.scene.Engine()
	h.enterZone()

	// "Stop" 是 choice 节点两个按钮中的第二个
	bx, by := config.ButtonPosition(config.PanelX, config.PanelY, config.PanelWidth, config.PanelHeight, 1, 2)
	x, y := int(bx+config.ButtonWidth/2), int(by+config.ButtonHeight/2)

	h.pointer.state = utils.PointerState{X: x, Y: y, Pressed: true, JustPressed: true}
	h.scene.Update(frame)
	for i := 0; i < 6; i++ {
		h.pointer.state = utils.PointerState{X: x, Y: y, Pressed: true}
		h.scene.Update(frame)
	}
	if engine.CurrentIndex() != 1 || engine.State() != dialogue.StateActive {
		t.Fatalf("Tap should advance to choice, got index %d state %s", engine.CurrentIndex(), engine.State())
	}

	h.pointer.state = utils.PointerState{X: x, Y: y, JustReleased: true}
	h.scene.Update(frame)
	h.update(3)
	if engine.State() != dialogue.StateActive || engine.CurrentIndex() != 1 {
		t.Errorf("Release of the advancing tap must not click Stop, got index %d state %s",
			engine.CurrentIndex(), engine.State())
	}
}

// recordingLoader 只记录加载请求的场景加载器
type recordingLoader struct {
	active string
	loads  []string
}

type recordingHandle struct {
	allowed bool
}

func (h *recordingHandle) SetActivationAllowed(allowed bool) { h.allowed = allowed }
func (h *recordingHandle) Done() bool                        { return h.allowed }

func (l *recordingLoader) BeginLoad(name string) (dialogue.LoadHandle, error) {
	l.loads = append(l.loads, name)
	return &recordingHandle{}, nil
}

func (l *recordingLoader) ActiveScene() string { return l.active }

// 玩家 (100,300) 向上走一帧到 (100,200)，与该区域重叠，不碰到对话触发区域
var aboveStart = config.TriggerZoneConfig{X: 100, Y: 180, Width: 40, Height: 40}

// walk 沿 dir 走一帧后停下
func (h *levelHarness) walk(dir systems.Direction) {
	h.dir = dir
	h.update(1)
	h.dir = systems.Direction{}
}

// TestLevelSceneFinishPointLoadsNextScene 测试走到终点加载下一关，且只加载一次
func TestLevelSceneFinishPointLoadsNextScene(t *testing.T) {
	loader := &recordingLoader{active: "level-1"}
	h := newLevelHarness(t, loader, func(cfg *config.LevelConfig) {
		finish := aboveStart
		cfg.FinishPoint = &finish
	})

	h.walk(systems.Direction{Y: -1})
	if len(loader.loads) != 1 || loader.loads[0] != "level-2" {
		t.Fatalf("Expected a load of level-2, got %v", loader.loads)
	}
	if h.scene.Engine().IsActive() {
		t.Error("Finish point must not start the dialogue")
	}

	h.walk(systems.Direction{Y: 1})
	h.walk(systems.Direction{Y: -1})
	if len(loader.loads) != 1 {
		t.Errorf("Re-entering the finish point should not load again, got %v", loader.loads)
	}
}

// TestLevelSceneFinishPointIgnored 测试对话进行中或没有下一关时终点无效
func TestLevelSceneFinishPointIgnored(t *testing.T) {
	loader := &recordingLoader{active: "level-1"}
	h := newLevelHarness(t, loader, nil)
	h.enterZone()
	if !h.scene.Engine().IsActive() {
		t.Fatalf("Expected active dialogue")
	}
	h.scene.onReachFinishPoint()
	if len(loader.loads) != 0 {
		t.Errorf("Finish point during dialogue should be ignored, got %v", loader.loads)
	}

	h = newLevelHarness(t, loader, func(cfg *config.LevelConfig) {
		finish := aboveStart
		cfg.FinishPoint = &finish
		cfg.NextScene = ""
	})
	h.walk(systems.Direction{Y: -1})
	if len(loader.loads) != 0 {
		t.Errorf("Finish point without next scene should not load, got %v", loader.loads)
	}
}

// TestLevelSceneHealthDepletedRestartsLevel 测试进入伤害区域扣血，生命耗尽后重开当前关卡
func TestLevelSceneHealthDepletedRestartsLevel(t *testing.T) {
	loader := &recordingLoader{active: "level-1"}
	h := newLevelHarness(t, loader, func(cfg *config.LevelConfig) {
		cfg.Player.Health = 2
		cfg.DamageZones = []config.DamageZoneConfig{{
			X: aboveStart.X, Y: aboveStart.Y, Width: aboveStart.Width, Height: aboveStart.Height,
			Damage: 1,
		}}
	})

	health := func() *components.HealthComponent {
		em := h.scene.EntityManager()
		for _, id := range ecs.GetEntitiesWith1[*components.HealthComponent](em) {
			hc, _ := ecs.GetComponent[*components.HealthComponent](em, id)
			return hc
		}
		t.Fatal("player has no health")
		return nil
	}

	h.walk(systems.Direction{Y: -1})
	if got := health().Current; got != 1 {
		t.Fatalf("Expected health 1 after first hit, got %d", got)
	}
	if len(loader.loads) != 0 {
		t.Fatalf("Should not restart while alive, got %v", loader.loads)
	}

	h.walk(systems.Direction{Y: 1})
	h.walk(systems.Direction{Y: -1})
	if got := health().Current; got != 0 {
		t.Errorf("Expected health 0, got %d", got)
	}
	if len(loader.loads) != 1 || loader.loads[0] != "level-1" {
		t.Errorf("Expected a restart of level-1, got %v", loader.loads)
	}
}
