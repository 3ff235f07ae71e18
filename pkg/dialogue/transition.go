package dialogue

import (
	"log"

	"github.com/decker502/chargeframe/pkg/coroutine"
)

// transitionScheduler 执行节点之间的两阶段切换
//
// 阶段一：隐藏当前面板，等待一帧
// 阶段二：显示新面板并设置文本，等待一帧后启用按钮并刷新布局
//
// 整个过程 Transitioning 为 true，因此不可重入。
type transitionScheduler struct {
	engine *Engine
}

// begin 启动一次切换任务
func (s *transitionScheduler) begin(skipCount int) {
	if skipCount < 1 {
		log.Printf("[TransitionScheduler] Invalid skip count %d, using 1", skipCount)
		skipCount = 1
	}
	s.engine.runner.Start("transition", func(co *coroutine.Co) {
		s.run(co, skipCount)
	})
}

func (s *transitionScheduler) run(co *coroutine.Co, skipCount int) {
	e := s.engine
	e.flags.Transitioning = true
	defer func() { e.flags.Transitioning = false }()

	s.deactivate(e.graph.Node(e.current))
	co.Yield()

	newIndex := e.current + skipCount
	log.Printf("[TransitionScheduler] Transitioning from %d to %d", e.current, newIndex)

	if newIndex >= e.graph.Len() {
		// 越界结束：使用当前（切换前）节点的结局，而不是触发按钮的结局
		outcome := e.graph.Node(e.current).Outcome
		log.Printf("[TransitionScheduler] Reached end of dialogue nodes, concluding with %s", outcome)
		e.resolver.resolve(co, outcome)
		return
	}

	e.current = newIndex
	node := e.graph.Node(newIndex)
	s.activatePanel(node)
	co.Yield()

	s.activateButtons(node)
	s.refreshLayout()
}

// deactivate 隐藏节点面板并禁用其按钮
func (s *transitionScheduler) deactivate(node DialogueNode) {
	if node.Panel != nil {
		node.Panel.Hide()
	}
	for _, btn := range node.Buttons {
		if btn.Button != nil {
			btn.Button.SetInteractable(false)
			btn.Button.SetVisible(false)
		}
	}
}

// activatePanel 显示节点面板并设置文本
func (s *transitionScheduler) activatePanel(node DialogueNode) {
	if node.Panel == nil {
		log.Printf("[TransitionScheduler] Warning: activating node without panel")
		return
	}
	node.Panel.Show()
	node.Panel.SetText(node.Text)
	if node.Text != "" {
		log.Printf("[TransitionScheduler] Text set for panel %s: %s", node.Panel.Name(), node.Text)
	}
}

// activateButtons 显示并启用节点上的所有按钮
func (s *transitionScheduler) activateButtons(node DialogueNode) {
	for _, btn := range node.Buttons {
		if btn.Button == nil {
			continue
		}
		btn.Button.SetVisible(true)
		btn.Button.SetInteractable(true)
	}
}

func (s *transitionScheduler) refreshLayout() {
	if s.engine.surface != nil {
		s.engine.surface.RefreshLayout()
	}
}
