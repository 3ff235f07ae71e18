// Package dialogue 实现分支对话/过场序列的状态机
//
// 组成（由底向上）：
//   - Graph: 编排好的节点序列，只读数据
//   - gate: 判断当前输入是否被接受
//   - transitionScheduler: 两阶段的面板切换（先隐藏旧面板，再显示新面板）
//   - outcomeResolver: 结束动画 → 场景动作 → 加载遮罩 → 交还控制权
//   - Engine: 协调以上组件的顶层状态机
//
// 所有等待（下一帧、定时、动画、异步加载）都在 coroutine.Runner 上顺序执行，
// Engine 由游戏主循环单线程驱动。
package dialogue

import "errors"

var (
	// ErrEmptyGraph 对话图中没有节点
	ErrEmptyGraph = errors.New("dialogue graph has no nodes")
	// ErrMissingPanel 第一个节点没有面板
	ErrMissingPanel = errors.New("first dialogue node has no panel")
	// ErrAlreadyActive 对话已在进行中
	ErrAlreadyActive = errors.New("dialogue already active")
)

// Graph 对话节点序列，构造后不可修改
type Graph struct {
	nodes []DialogueNode
}

// NewGraph 创建对话图，复制传入的节点
func NewGraph(nodes ...DialogueNode) *Graph {
	copied := make([]DialogueNode, len(nodes))
	for i, n := range nodes {
		buttons := make([]DialogueButton, len(n.Buttons))
		copy(buttons, n.Buttons)
		n.Buttons = buttons
		copied[i] = n
	}
	return &Graph{nodes: copied}
}

// Len 返回节点数量
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// Node 返回第 i 个节点
func (g *Graph) Node(i int) DialogueNode {
	return g.nodes[i]
}

// Validate 检查对话图能否启动
func (g *Graph) Validate() error {
	if g.Len() == 0 {
		return ErrEmptyGraph
	}
	if g.nodes[0].Panel == nil {
		return ErrMissingPanel
	}
	return nil
}
