package dialogue

// Flags 引擎的活动标志
// 只有 Active 且既不在切换也不在播放结束动画时才接受输入
type Flags struct {
	Active        bool
	Transitioning bool
	Animating     bool
}

// Open 返回标志是否允许输入
func (f Flags) Open() bool {
	return f.Active && !f.Transitioning && !f.Animating
}

// RequestSource 输入来源
type RequestSource int

const (
	// SourceButton 显式按钮点击
	SourceButton RequestSource = iota
	// SourceTap 点击屏幕/面板
	SourceTap
)

// Request 一次推进/跳过/结局请求
type Request struct {
	Source  RequestSource
	Action  ButtonActionType
	Outcome Outcome
	// OverBlockingUI 仅对 SourceTap 有意义
	OverBlockingUI bool
}

// TapRequest 将一次点击转换为请求
//
// 无按钮的结束节点：点击直接触发节点自身的结局；
// 其他情况：点击等价于前进一个节点。
func TapRequest(node DialogueNode, overBlockingUI bool) Request {
	req := Request{
		Source:         SourceTap,
		Action:         ActionAdvanceOne,
		OverBlockingUI: overBlockingUI,
	}
	if isEndNodeTap(node) {
		req.Action = ActionTriggerOutcome
		req.Outcome = node.Outcome
	}
	return req
}

// isEndNodeTap 仅当结束节点没有任何按钮时，点击才会直接触发结局
func isEndNodeTap(node DialogueNode) bool {
	return node.IsEndNode && len(node.Buttons) == 0
}

// Accepts 判断请求是否被接受，拒绝时静默忽略
//
// 条件：Active ∧ ¬Transitioning ∧ ¬Animating，
// 点击还要求不在阻挡性界面上，且节点未禁用点击推进（结束节点的结局点击除外）。
func Accepts(flags Flags, node DialogueNode, req Request) bool {
	if !flags.Open() {
		return false
	}
	if req.Source != SourceTap {
		return true
	}
	if req.OverBlockingUI {
		return false
	}
	if node.DisableAdvanceOnTap && !isEndNodeTap(node) {
		return false
	}
	return true
}
