package dialogue

import (
	"log"

	"github.com/decker502/chargeframe/pkg/coroutine"
)

// outcomeResolver 处理对话结局
//
// 顺序执行（无并行分支）：
//  1. Animating = true, Active = false
//  2. 显示结束面板并等待其动画（无动画时等待固定时长）
//  3. 按结局分发：加载下一场景 / 重新加载当前场景 / 仅等待
//  4. 恢复界面默认状态（隐藏最后的面板和两个遮罩）并重新启用玩家控制
//  5. Animating = false
type outcomeResolver struct {
	engine *Engine

	loader    SceneLoader
	nextScene string

	endOverlay     Overlay
	loadingOverlay Overlay
	trigger        string
	minWait        float64
}

func (r *outcomeResolver) resolve(co *coroutine.Co, outcome Outcome) {
	e := r.engine
	e.flags.Animating = true
	e.flags.Active = false
	log.Printf("[OutcomeResolver] %s: resolving outcome %s", e.session(), outcome)

	if r.endOverlay != nil {
		r.endOverlay.Show()
		r.playOverlay(co, r.endOverlay)
	}

	switch outcome {
	case OutcomeNextScene:
		r.loadScene(co, r.nextScene)
	case OutcomeRestartLevel:
		active := ""
		if r.loader != nil {
			active = r.loader.ActiveScene()
		}
		r.loadScene(co, active)
	default:
		co.Wait(r.minWait)
	}

	r.restore()
	e.flags.Animating = false
	log.Printf("[OutcomeResolver] %s: dialogue finished with %s", e.session(), outcome)

	if e.onComplete != nil {
		e.onComplete(outcome)
	}
}

// playOverlay 触发面板动画并等待其播放完毕
// 等待时长 = 动画长度 / max(1, 速度)；没有动画时等待 minWait
func (r *outcomeResolver) playOverlay(co *coroutine.Co, overlay Overlay) {
	if animator := overlay.Animator(); animator != nil {
		if clip, ok := animator.PlayTrigger(r.trigger); ok {
			co.Wait(clip.Duration())
			return
		}
	}
	co.Wait(r.minWait)
}

// loadScene 异步加载场景
//
// 加载开始后先禁止激活，等加载面板动画完整播放后才允许切换，避免画面跳变。
func (r *outcomeResolver) loadScene(co *coroutine.Co, name string) {
	if name == "" {
		log.Printf("[OutcomeResolver] Warning: no scene name, skipping load")
		return
	}
	if r.loader == nil {
		log.Printf("[OutcomeResolver] Warning: no scene loader, cannot load %s", name)
		return
	}

	handle, err := r.loader.BeginLoad(name)
	if err != nil {
		log.Printf("[OutcomeResolver] Failed to begin loading %s: %v", name, err)
		return
	}
	handle.SetActivationAllowed(false)

	if r.loadingOverlay != nil {
		if r.endOverlay != nil {
			r.endOverlay.Hide()
		}
		r.loadingOverlay.Show()
		r.playOverlay(co, r.loadingOverlay)
	}

	handle.SetActivationAllowed(true)
	co.Until(handle.Done)
	log.Printf("[OutcomeResolver] Scene %s loaded", name)
}

// restore 恢复界面默认状态并交还玩家控制
func (r *outcomeResolver) restore() {
	e := r.engine
	e.transitions.deactivate(e.graph.Node(e.current))
	r.hideOverlays()
	e.setPlayerEnabled(true)
}

func (r *outcomeResolver) hideOverlays() {
	if r.endOverlay != nil {
		r.endOverlay.Hide()
	}
	if r.loadingOverlay != nil {
		r.loadingOverlay.Hide()
	}
}
