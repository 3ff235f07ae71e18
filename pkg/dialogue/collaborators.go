package dialogue

// 对话核心只依赖以下能力接口，不依赖任何具体的界面实现。
// 游戏内由 entities 包提供基于 ECS 的实现，预览工具提供终端实现。

// Panel 可显示的对话面板
type Panel interface {
	Show()
	Hide()
	SetText(text string)
	Name() string
}

// Surface 容纳所有面板的根界面，用于强制刷新布局
type Surface interface {
	RefreshLayout()
}

// Button 可点击的按钮
type Button interface {
	SetVisible(visible bool)
	SetInteractable(interactable bool)
	OnClick(callback func())
}

// AnimationClip 一次动画播放的时长信息
type AnimationClip struct {
	// Length 动画时长（秒）
	Length float64
	// Speed 播放速度倍率
	Speed float64
}

// Duration 返回实际需要等待的秒数：Length / max(1, Speed)
func (c AnimationClip) Duration() float64 {
	speed := c.Speed
	if speed < 1 {
		speed = 1
	}
	return c.Length / speed
}

// Animator 动画播放器
type Animator interface {
	// PlayTrigger 触发指定名称的动画
	// 没有可播放的动画时返回 false
	PlayTrigger(name string) (AnimationClip, bool)
}

// Overlay 对话结束面板或加载面板
type Overlay interface {
	Show()
	Hide()
	// Animator 返回挂载的动画播放器，未挂载时返回 nil
	Animator() Animator
}

// LoadHandle 异步场景加载句柄
type LoadHandle interface {
	// SetActivationAllowed 控制加载完成后是否允许切换到新场景
	SetActivationAllowed(allowed bool)
	// Done 加载并激活完成后返回 true
	Done() bool
}

// SceneLoader 场景加载器
type SceneLoader interface {
	BeginLoad(name string) (LoadHandle, error)
	// ActiveScene 返回当前激活的场景名称
	ActiveScene() string
}

// PlayerControl 玩家控制开关
type PlayerControl interface {
	SetEnabled(enabled bool)
}

// PointerSource 指针/触摸输入源
type PointerSource interface {
	// JustPressed 本帧是否发生了一次新的按下
	JustPressed() bool
	// OverBlockingUI 按下位置是否位于会阻挡点击的界面元素上
	OverBlockingUI() bool
}
