package dialogue

import (
	"fmt"
	"strings"
)

// Outcome 对话结束后的收尾效果
type Outcome int

const (
	// OutcomeNextScene 进入下一个场景
	OutcomeNextScene Outcome = iota
	// OutcomeRestartLevel 重新加载当前场景
	OutcomeRestartLevel
	// OutcomeNothing 不切换场景，恢复游戏
	OutcomeNothing
)

// String 返回 Outcome 的字符串表示（与 YAML 中的写法一致）
func (o Outcome) String() string {
	switch o {
	case OutcomeNextScene:
		return "nextScene"
	case OutcomeRestartLevel:
		return "restartLevel"
	case OutcomeNothing:
		return "nothing"
	default:
		return "unknown"
	}
}

// ParseOutcome 解析配置中的结局字符串（大小写不敏感）
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nextscene", "next_scene", "next":
		return OutcomeNextScene, nil
	case "restartlevel", "restart_level", "restart":
		return OutcomeRestartLevel, nil
	case "nothing", "none", "":
		return OutcomeNothing, nil
	default:
		return OutcomeNothing, fmt.Errorf("unknown outcome %q", s)
	}
}

// ButtonActionType 对话按钮的动作类型
type ButtonActionType int

const (
	// ActionAdvanceOne 前进到下一个节点
	ActionAdvanceOne ButtonActionType = iota
	// ActionSkipOne 跳过一个节点（前进两步）
	ActionSkipOne
	// ActionTriggerOutcome 立即以按钮自带的结局结束对话
	ActionTriggerOutcome
)

// String 返回动作类型的字符串表示
func (a ButtonActionType) String() string {
	switch a {
	case ActionAdvanceOne:
		return "advance"
	case ActionSkipOne:
		return "skip"
	case ActionTriggerOutcome:
		return "outcome"
	default:
		return "unknown"
	}
}

// ParseAction 解析配置中的动作字符串
func ParseAction(s string) (ButtonActionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "advance", "next", "nextpanel", "":
		return ActionAdvanceOne, nil
	case "skip", "skippanel":
		return ActionSkipOne, nil
	case "outcome", "triggeroutcome":
		return ActionTriggerOutcome, nil
	default:
		return ActionAdvanceOne, fmt.Errorf("unknown button action %q", s)
	}
}

// skipCount 返回推进类动作对应的步数
func (a ButtonActionType) skipCount() int {
	if a == ActionSkipOne {
		return 2
	}
	return 1
}

// DialogueButton 对话节点上的一个按钮
type DialogueButton struct {
	// Button 按钮界面句柄，可为 nil（纯数据按钮，如点击整个面板）
	Button Button
	// Action 按钮动作
	Action ButtonActionType
	// Outcome 仅在 Action == ActionTriggerOutcome 时有效
	Outcome Outcome
}

// DialogueNode 一屏对话
type DialogueNode struct {
	// Panel 面板界面句柄
	Panel Panel
	// Text 显示文本（可为空）
	Text string
	// Buttons 按钮列表（可为空）
	Buttons []DialogueButton
	// DisableAdvanceOnTap 为 true 时点击屏幕不推进对话，只能通过按钮
	DisableAdvanceOnTap bool
	// Outcome 当本节点是最后到达的节点时使用的结局
	Outcome Outcome
	// IsEndNode 为 true 且没有按钮时，点击面板直接触发 Outcome
	IsEndNode bool
}

// panelName 返回节点面板名称（用于日志）
func (n DialogueNode) panelName() string {
	if n.Panel == nil {
		return "<nil>"
	}
	return n.Panel.Name()
}

// State 对话引擎的状态
type State int

const (
	// StateIdle 空闲，等待 Start
	StateIdle State = iota
	// StateActive 对话进行中，接受输入
	StateActive
	// StateTransitioning 正在切换面板
	StateTransitioning
	// StateConcluding 正在播放结束动画/处理结局
	StateConcluding
)

// String 返回状态的字符串表示
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateActive:
		return "Active"
	case StateTransitioning:
		return "Transitioning"
	case StateConcluding:
		return "Concluding"
	default:
		return "Unknown"
	}
}
