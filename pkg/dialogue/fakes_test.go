package dialogue

import (
	"fmt"
	"testing"
)

// recorder 记录所有协作者上发生的事件，用于断言顺序
type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...interface{}) {
	if r != nil {
		r.events = append(r.events, fmt.Sprintf(format, args...))
	}
}

// fakePanel 记录显示/隐藏次数的面板
type fakePanel struct {
	name    string
	visible bool
	text    string
	shows   int
	rec     *recorder
}

func (p *fakePanel) Show()               { p.visible = true; p.shows++; p.rec.add("show:%s", p.name) }
func (p *fakePanel) Hide()               { p.visible = false; p.rec.add("hide:%s", p.name) }
func (p *fakePanel) SetText(text string) { p.text = text }
func (p *fakePanel) Name() string        { return p.name }

// fakeButton 模拟界面按钮：只有可见且可交互时点击才生效
type fakeButton struct {
	name         string
	visible      bool
	interactable bool
	enabledCount int
	callback     func()
	rec          *recorder
}

func (b *fakeButton) SetVisible(visible bool) { b.visible = visible }
func (b *fakeButton) SetInteractable(interactable bool) {
	if interactable && !b.interactable {
		b.enabledCount++
		b.rec.add("enable:%s", b.name)
	}
	b.interactable = interactable
}
func (b *fakeButton) OnClick(callback func()) { b.callback = callback }

// Click 模拟用户点击
func (b *fakeButton) Click() bool {
	if !b.visible || !b.interactable || b.callback == nil {
		return false
	}
	b.callback()
	return true
}

// ForceClick 绕过按钮自身状态，直接触发回调（模拟排队的重复点击）
func (b *fakeButton) ForceClick() {
	if b.callback != nil {
		b.callback()
	}
}

type fakeSurface struct {
	refreshes int
}

func (s *fakeSurface) RefreshLayout() { s.refreshes++ }

type fakePlayer struct {
	enabled bool
	history []bool
	rec     *recorder
}

func (p *fakePlayer) SetEnabled(enabled bool) {
	p.enabled = enabled
	p.history = append(p.history, enabled)
	p.rec.add("player:%v", enabled)
}

// fakeAnimator 返回固定的动画片段
type fakeAnimator struct {
	clip     AnimationClip
	ok       bool
	triggers []string
}

func (a *fakeAnimator) PlayTrigger(name string) (AnimationClip, bool) {
	a.triggers = append(a.triggers, name)
	return a.clip, a.ok
}

type fakeOverlay struct {
	name     string
	visible  bool
	animator Animator
	rec      *recorder
}

func (o *fakeOverlay) Show()              { o.visible = true; o.rec.add("show:%s", o.name) }
func (o *fakeOverlay) Hide()              { o.visible = false; o.rec.add("hide:%s", o.name) }
func (o *fakeOverlay) Animator() Animator { return o.animator }

// fakeHandle 手动控制加载完成的句柄
type fakeHandle struct {
	name    string
	allowed bool
	loaded  bool
	rec     *recorder
}

func (h *fakeHandle) SetActivationAllowed(allowed bool) {
	h.allowed = allowed
	h.rec.add("allow:%s:%v", h.name, allowed)
}
func (h *fakeHandle) Done() bool { return h.allowed && h.loaded }

type fakeLoader struct {
	active     string
	handles    []*fakeHandle
	autoLoaded bool
	err        error
	rec        *recorder
}

func (l *fakeLoader) BeginLoad(name string) (LoadHandle, error) {
	if l.err != nil {
		return nil, l.err
	}
	h := &fakeHandle{name: name, loaded: l.autoLoaded, rec: l.rec}
	l.handles = append(l.handles, h)
	l.rec.add("load:%s", name)
	return h, nil
}

func (l *fakeLoader) ActiveScene() string { return l.active }

type fakePointer struct {
	pressed  bool
	blocking bool
}

func (p *fakePointer) JustPressed() bool    { pressed := p.pressed; p.pressed = false; return pressed }
func (p *fakePointer) OverBlockingUI() bool { return p.blocking }

// testDialogue 测试用的对话装配
type testDialogue struct {
	engine    *Engine
	panels    []*fakePanel
	buttons   [][]*fakeButton
	surface   *fakeSurface
	player    *fakePlayer
	loader    *fakeLoader
	end       *fakeOverlay
	loading   *fakeOverlay
	rec       *recorder
	completed []Outcome
}

// nodeSpec 描述一个测试节点
type nodeSpec struct {
	buttons    []DialogueButton
	disableTap bool
	outcome    Outcome
	endNode    bool
}

// newTestDialogue 根据节点描述创建引擎，结局等待时长 0.5 秒
func newTestDialogue(t *testing.T, specs []nodeSpec, configure func(*Options, *testDialogue)) *testDialogue {
	t.Helper()
	td := &testDialogue{
		surface: &fakeSurface{},
		rec:     &recorder{},
	}
	td.player = &fakePlayer{enabled: true, rec: td.rec}
	td.loader = &fakeLoader{active: "level-1", autoLoaded: true, rec: td.rec}

	nodes := make([]DialogueNode, len(specs))
	for i, ns := range specs {
		panel := &fakePanel{name: fmt.Sprintf("panel%d", i), visible: true, rec: td.rec}
		td.panels = append(td.panels, panel)

		var fakes []*fakeButton
		buttons := make([]DialogueButton, len(ns.buttons))
		for j, b := range ns.buttons {
			fb := &fakeButton{name: fmt.Sprintf("button%d.%d", i, j), visible: true, rec: td.rec}
			fakes = append(fakes, fb)
			b.Button = fb
			buttons[j] = b
		}
		td.buttons = append(td.buttons, fakes)

		nodes[i] = DialogueNode{
			Panel:               panel,
			Text:                fmt.Sprintf("text %d", i),
			Buttons:             buttons,
			DisableAdvanceOnTap: ns.disableTap,
			Outcome:             ns.outcome,
			IsEndNode:           ns.endNode,
		}
	}

	opts := Options{
		Player:    td.player,
		Surface:   td.surface,
		Loader:    td.loader,
		NextScene: "level-2",
		MinWait:   0.5,
	}
	if configure != nil {
		configure(&opts, td)
	}

	td.engine = NewEngine(NewGraph(nodes...), opts)
	td.engine.OnComplete(func(o Outcome) { td.completed = append(td.completed, o) })
	return td
}

const testDT = 0.25

// tick 推进 n 帧
func (td *testDialogue) tick(n int) {
	for i := 0; i < n; i++ {
		td.engine.Update(testDT)
	}
}

// settle 推进直到引擎不再处于切换状态
func (td *testDialogue) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 20; i++ {
		if td.engine.State() != StateTransitioning {
			return
		}
		td.tick(1)
	}
	t.Fatalf("engine still transitioning after 20 ticks")
}

// finish 推进直到引擎回到 Idle
func (td *testDialogue) finish(t *testing.T) {
	t.Helper()
	for i := 0; i < 200; i++ {
		if td.engine.State() == StateIdle {
			return
		}
		td.tick(1)
	}
	t.Fatalf("engine did not return to idle, state=%s", td.engine.State())
}

func (td *testDialogue) visiblePanels() []string {
	var names []string
	for _, p := range td.panels {
		if p.visible {
			names = append(names, p.name)
		}
	}
	return names
}

func advance() DialogueButton { return DialogueButton{Action: ActionAdvanceOne} }
func skip() DialogueButton    { return DialogueButton{Action: ActionSkipOne} }
func trigger(o Outcome) DialogueButton {
	return DialogueButton{Action: ActionTriggerOutcome, Outcome: o}
}
