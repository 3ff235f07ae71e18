package dialogue

import (
	"log"

	"github.com/decker502/chargeframe/pkg/coroutine"
	"github.com/google/uuid"
)

// 默认参数（与原版关卡设置一致）
const (
	// DefaultMinWait 没有动画时的固定等待时长（秒）
	DefaultMinWait = 2.0
	// DefaultAnimationTrigger 结束/加载面板动画的触发名
	DefaultAnimationTrigger = "Play"
)

// Options 对话引擎的外部协作者与参数
// 除 Graph 外所有字段均可为空
type Options struct {
	// Player 对话期间禁用的玩家控制
	Player PlayerControl
	// Surface 面板所在的根界面，切换面板后强制刷新布局
	Surface Surface
	// Pointer 点击输入源，为空时只能通过 OnTap 注入点击
	Pointer PointerSource

	// Loader 场景加载器
	Loader SceneLoader
	// NextScene 结局为 OutcomeNextScene 时加载的场景名
	NextScene string

	// EndOverlay 对话结束面板
	EndOverlay Overlay
	// LoadingOverlay 场景加载面板
	LoadingOverlay Overlay
	// AnimationTrigger 面板动画触发名，默认 "Play"
	AnimationTrigger string
	// MinWait 没有动画时的等待时长（秒），<= 0 时使用 DefaultMinWait
	MinWait float64

	// Runner 协程调度器，为空时引擎自建
	Runner *coroutine.Runner
}

// Engine 对话状态机
//
// 状态：Idle → Active ⇄ Transitioning → Concluding → Idle
//
// 引擎标志只由 transitionScheduler 和 outcomeResolver 在协程中修改，
// 协程与游戏主循环严格交接，因此不需要加锁。
type Engine struct {
	graph *Graph

	flags     Flags
	current   int
	sessionID string

	runner  *coroutine.Runner
	player  PlayerControl
	surface Surface
	pointer PointerSource

	transitions *transitionScheduler
	resolver    *outcomeResolver

	onComplete func(Outcome)
}

// NewEngine 创建对话引擎并初始化所有面板
//
// 初始化内容：
//   - 隐藏所有面板
//   - 隐藏并禁用所有按钮，注册点击回调
//   - 隐藏结束面板与加载面板
func NewEngine(graph *Graph, opts Options) *Engine {
	if opts.Runner == nil {
		opts.Runner = coroutine.NewRunner()
	}
	if opts.AnimationTrigger == "" {
		opts.AnimationTrigger = DefaultAnimationTrigger
	}
	if opts.MinWait <= 0 {
		opts.MinWait = DefaultMinWait
	}

	e := &Engine{
		graph:   graph,
		runner:  opts.Runner,
		player:  opts.Player,
		surface: opts.Surface,
		pointer: opts.Pointer,
	}
	e.transitions = &transitionScheduler{engine: e}
	e.resolver = &outcomeResolver{
		engine:         e,
		loader:         opts.Loader,
		nextScene:      opts.NextScene,
		endOverlay:     opts.EndOverlay,
		loadingOverlay: opts.LoadingOverlay,
		trigger:        opts.AnimationTrigger,
		minWait:        opts.MinWait,
	}

	e.initializeNodes()
	e.resolver.hideOverlays()

	log.Printf("[DialogueEngine] Initialized with %d nodes", graph.Len())
	return e
}

// initializeNodes 隐藏所有面板并注册按钮回调
func (e *Engine) initializeNodes() {
	for i := 0; i < e.graph.Len(); i++ {
		node := e.graph.Node(i)
		if node.Panel == nil {
			log.Printf("[DialogueEngine] Warning: node %d has no panel", i)
			continue
		}
		node.Panel.Hide()

		for _, btn := range node.Buttons {
			if btn.Button == nil {
				continue
			}
			btn := btn
			btn.Button.OnClick(func() {
				e.OnAdvanceRequest(btn)
			})
			btn.Button.SetInteractable(false)
			btn.Button.SetVisible(false)
			log.Printf("[DialogueEngine] Button on panel %s wired with action %s", node.Panel.Name(), btn.Action)
		}
	}
}

// OnComplete 设置对话完成回调，在结局处理完毕、控制权交还后调用
func (e *Engine) OnComplete(callback func(Outcome)) {
	e.onComplete = callback
}

// Start 开始对话
//
// 配置错误或对话已在进行中时记录日志并返回错误，状态不变。
// 成功时显示第一个面板、禁用玩家控制，按钮在下一帧布局稳定后才启用。
func (e *Engine) Start() error {
	if err := e.graph.Validate(); err != nil {
		log.Printf("[DialogueEngine] 配置错误: %v", err)
		return err
	}
	if e.flags.Active || e.flags.Transitioning || e.flags.Animating {
		log.Printf("[DialogueEngine] %s: start ignored, dialogue already running (state=%s)", e.session(), e.State())
		return ErrAlreadyActive
	}

	e.sessionID = uuid.NewString()
	e.current = 0
	e.flags.Active = true
	e.setPlayerEnabled(false)

	node := e.graph.Node(0)
	e.transitions.activatePanel(node)

	// 第一帧面板布局尚未稳定，期间视为切换中，不接受输入
	e.flags.Transitioning = true
	e.runner.Start("activate-first-node", func(co *coroutine.Co) {
		defer func() { e.flags.Transitioning = false }()
		co.Yield()
		e.transitions.activateButtons(node)
		e.transitions.refreshLayout()
	})

	log.Printf("[DialogueEngine] %s: dialogue started on panel %s", e.session(), node.panelName())
	return nil
}

// OnAdvanceRequest 显式按钮点击的入口
func (e *Engine) OnAdvanceRequest(btn DialogueButton) {
	e.handle(Request{
		Source:  SourceButton,
		Action:  btn.Action,
		Outcome: btn.Outcome,
	})
}

// OnTap 点击屏幕/面板的入口
// overBlockingUI 表示点击位置是否位于阻挡性界面元素（如按钮）上
func (e *Engine) OnTap(overBlockingUI bool) {
	if !e.flags.Open() {
		return
	}
	e.handle(TapRequest(e.graph.Node(e.current), overBlockingUI))
}

// handle 经输入闸门过滤后分发请求
func (e *Engine) handle(req Request) {
	if !e.flags.Open() {
		log.Printf("[DialogueEngine] Request ignored: active=%v, transitioning=%v, animating=%v",
			e.flags.Active, e.flags.Transitioning, e.flags.Animating)
		return
	}

	node := e.graph.Node(e.current)
	if !Accepts(e.flags, node, req) {
		log.Printf("[DialogueEngine] Tap ignored on panel %s (blockingUI=%v, disableTap=%v)",
			node.panelName(), req.OverBlockingUI, node.DisableAdvanceOnTap)
		return
	}

	switch req.Action {
	case ActionTriggerOutcome:
		log.Printf("[DialogueEngine] %s: triggering outcome %s from panel %s", e.session(), req.Outcome, node.panelName())
		outcome := req.Outcome
		e.runner.Start("outcome", func(co *coroutine.Co) {
			e.resolver.resolve(co, outcome)
		})
	default:
		skip := req.Action.skipCount()
		log.Printf("[DialogueEngine] %s: %s on panel %s, skipping %d", e.session(), req.Action, node.panelName(), skip)
		e.transitions.begin(skip)
	}
}

// Update 每帧调用：先处理点击，再推进协程
func (e *Engine) Update(deltaTime float64) {
	if e.pointer != nil && e.pointer.JustPressed() {
		e.OnTap(e.pointer.OverBlockingUI())
	}
	e.runner.Update(deltaTime)
}

// Close 终止所有进行中的协程（场景销毁时调用）
func (e *Engine) Close() {
	e.runner.Stop()
}

// State 返回当前状态
func (e *Engine) State() State {
	switch {
	case e.flags.Animating:
		return StateConcluding
	case e.flags.Transitioning:
		return StateTransitioning
	case e.flags.Active:
		return StateActive
	default:
		return StateIdle
	}
}

// Flags 返回当前标志快照
func (e *Engine) Flags() Flags {
	return e.flags
}

// CurrentIndex 返回当前节点索引，仅在 Active 时有意义
func (e *Engine) CurrentIndex() int {
	return e.current
}

// IsActive 对话是否在进行中（包括切换和结束阶段）
func (e *Engine) IsActive() bool {
	return e.State() != StateIdle
}

// SessionID 返回最近一次 Start 的会话 ID
func (e *Engine) SessionID() string {
	return e.sessionID
}

func (e *Engine) session() string {
	if len(e.sessionID) >= 8 {
		return e.sessionID[:8]
	}
	return "-"
}

func (e *Engine) setPlayerEnabled(enabled bool) {
	if e.player != nil {
		e.player.SetEnabled(enabled)
	}
}
