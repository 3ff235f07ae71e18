package dialogue

import "sort"

// Reachability 对话图的静态可达性分析结果
type Reachability struct {
	// Reachable[i] 节点 i 能否从第一个节点到达
	Reachable []bool
	// Outcomes 所有可能触发的结局（去重，按枚举值排序）
	Outcomes []Outcome
	// DeadEnds 可到达但不接受任何输入的节点（玩家会被卡住）
	DeadEnds []int
}

// Unreachable 返回无法到达的节点索引
func (r Reachability) Unreachable() []int {
	var out []int
	for i, ok := range r.Reachable {
		if !ok {
			out = append(out, i)
		}
	}
	return out
}

// Analyze 按输入闸门的规则遍历对话图
//
// 每个节点的出边：
//   - 点击（闸门接受时）：前进一个节点，或无按钮结束节点的结局
//   - 每个按钮：前进/跳过对应步数，或按钮的结局
//
// 越过最后一个节点时使用出发节点自身的结局。
func Analyze(g *Graph) Reachability {
	n := g.Len()
	r := Reachability{Reachable: make([]bool, n)}
	if n == 0 {
		return r
	}

	open := Flags{Active: true}
	outcomes := make(map[Outcome]bool)
	queue := []int{0}
	r.Reachable[0] = true

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		node := g.Node(i)

		reqs := make([]Request, 0, len(node.Buttons)+1)
		if tap := TapRequest(node, false); Accepts(open, node, tap) {
			reqs = append(reqs, tap)
		}
		for _, btn := range node.Buttons {
			reqs = append(reqs, Request{Source: SourceButton, Action: btn.Action, Outcome: btn.Outcome})
		}
		if len(reqs) == 0 {
			r.DeadEnds = append(r.DeadEnds, i)
			continue
		}

		for _, req := range reqs {
			if req.Action == ActionTriggerOutcome {
				outcomes[req.Outcome] = true
				continue
			}
			next := i + req.Action.skipCount()
			if next >= n {
				outcomes[node.Outcome] = true
				continue
			}
			if !r.Reachable[next] {
				r.Reachable[next] = true
				queue = append(queue, next)
			}
		}
	}

	for o := range outcomes {
		r.Outcomes = append(r.Outcomes, o)
	}
	sort.Slice(r.Outcomes, func(a, b int) bool { return r.Outcomes[a] < r.Outcomes[b] })
	sort.Ints(r.DeadEnds)
	return r
}
