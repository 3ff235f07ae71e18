// Package coroutine 提供基于帧驱动的协作式任务调度器
//
// 对话、过场动画等流程需要"等待下一帧"、"等待 N 秒"、"等待异步加载完成"这类挂起点，
// 本包让这些流程可以写成顺序代码：
//
//	runner.Start("transition", func(co *coroutine.Co) {
//		panel.Hide()
//		co.Yield()      // 等待下一帧
//		co.Wait(1.5)    // 等待 1.5 秒
//		co.Until(op.Done)
//	})
//
// 调度模型：
//   - Runner 只能由一个 goroutine（游戏主循环）驱动
//   - 每个任务运行在独立 goroutine 上，但与 Runner 严格交接控制权，
//     任意时刻只有一个任务在执行，因此任务内部访问共享状态无需加锁
//   - 挂起的任务只会在后续的 Update 中恢复，绝不会提前恢复
package coroutine

import (
	"fmt"
	"runtime"
)

// waitKind 任务挂起的原因
type waitKind int

const (
	waitYield waitKind = iota // 等待下一次 Update
	waitTime                  // 等待累计时长
	waitCond                  // 等待条件成立
)

// task 单个协程任务的运行时数据
type task struct {
	name string

	// resume Runner -> 任务：继续执行；关闭表示任务被终止
	resume chan struct{}
	// yielded 任务 -> Runner：已挂起或已结束
	yielded chan struct{}

	kind      waitKind
	remaining float64     // waitTime 剩余秒数
	cond      func() bool // waitCond 条件
	frame     uint64      // 挂起时 Runner 的帧号

	done     bool
	stopped  bool // 运行中被 Stop，下一个挂起点直接退出
	panicVal interface{}
}

// Runner 协程调度器
type Runner struct {
	tasks []*task
	frame uint64 // 已完成的 Update 次数
	// running 正在执行的任务链（任务内部调用 Start 时会嵌套）
	running []*task
}

// NewRunner 创建协程调度器
func NewRunner() *Runner {
	return &Runner{
		tasks: make([]*task, 0),
	}
}

// Co 任务句柄，在任务函数内部用于声明挂起点
type Co struct {
	runner *Runner
	task   *task
}

// Start 启动一个新任务
//
// 任务函数会被立即同步执行，直到遇到第一个挂起点或执行结束后 Start 才返回。
// 因此在第一个挂起点之前设置的状态对调用方立即可见。
func (r *Runner) Start(name string, fn func(co *Co)) {
	t := &task{
		name:    name,
		resume:  make(chan struct{}),
		yielded: make(chan struct{}),
	}

	go func() {
		defer func() {
			// runtime.Goexit 时 recover 返回 nil
			if p := recover(); p != nil {
				t.panicVal = p
			}
			t.done = true
			t.yielded <- struct{}{}
		}()

		if _, ok := <-t.resume; !ok {
			runtime.Goexit()
		}
		fn(&Co{runner: r, task: t})
	}()

	r.tasks = append(r.tasks, t)
	r.step(t)
}

// step 将控制权交给任务，直到任务挂起或结束
func (r *Runner) step(t *task) {
	r.running = append(r.running, t)
	t.resume <- struct{}{}
	<-t.yielded
	r.running = r.running[:len(r.running)-1]

	if t.panicVal != nil {
		r.remove(t)
		panic(fmt.Sprintf("coroutine %q panicked: %v", t.name, t.panicVal))
	}
}

// Update 推进所有挂起中的任务
// deltaTime 为距离上一次 Update 的时间（秒）
func (r *Runner) Update(deltaTime float64) {
	// 快照：本帧内新启动的任务不参与本次调度
	snapshot := make([]*task, len(r.tasks))
	copy(snapshot, r.tasks)

	for _, t := range snapshot {
		// 本帧内挂起（或启动）的任务不能在本帧恢复
		if t.done || t.frame >= r.frame {
			continue
		}
		if r.ready(t, deltaTime) {
			r.step(t)
		}
	}

	r.compact()
	r.frame++
}

// ready 判断任务的等待条件是否满足
func (r *Runner) ready(t *task, deltaTime float64) bool {
	switch t.kind {
	case waitTime:
		t.remaining -= deltaTime
		return t.remaining <= 0
	case waitCond:
		return t.cond == nil || t.cond()
	default:
		return true
	}
}

// Len 返回尚未结束的任务数量
func (r *Runner) Len() int {
	n := 0
	for _, t := range r.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// Stop 终止所有挂起中的任务
// 任务中的 defer 函数会被执行。场景被销毁时调用。
//
// 在任务内部调用时（例如完成回调里关闭场景），调用方所在的任务链继续执行到
// 下一个挂起点或结束，到达挂起点时直接退出，不会再被恢复。
func (r *Runner) Stop() {
	for _, t := range r.running {
		t.stopped = true
	}
	for _, t := range r.tasks {
		if t.done || t.stopped {
			continue
		}
		close(t.resume)
		<-t.yielded
	}
	r.tasks = r.tasks[:0]
}

func (r *Runner) remove(t *task) {
	for i, other := range r.tasks {
		if other == t {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return
		}
	}
}

func (r *Runner) compact() {
	alive := r.tasks[:0]
	for _, t := range r.tasks {
		if !t.done {
			alive = append(alive, t)
		}
	}
	for i := len(alive); i < len(r.tasks); i++ {
		r.tasks[i] = nil
	}
	r.tasks = alive
}

// Name 返回任务名称
func (co *Co) Name() string {
	return co.task.name
}

// Yield 挂起到下一次 Update
func (co *Co) Yield() {
	co.task.kind = waitYield
	co.suspend()
}

// Wait 挂起直到后续 Update 累计的时长达到 seconds
// seconds <= 0 等价于 Yield
func (co *Co) Wait(seconds float64) {
	if seconds <= 0 {
		co.Yield()
		return
	}
	co.task.kind = waitTime
	co.task.remaining = seconds
	co.suspend()
}

// Until 挂起直到某次后续 Update 时 cond 返回 true
func (co *Co) Until(cond func() bool) {
	co.task.kind = waitCond
	co.task.cond = cond
	co.suspend()
	co.task.cond = nil
}

func (co *Co) suspend() {
	t := co.task
	if t.stopped {
		runtime.Goexit()
	}
	t.frame = co.runner.frame
	t.yielded <- struct{}{}
	if _, ok := <-t.resume; !ok {
		runtime.Goexit()
	}
}
