package components

// OverlayKind 全屏遮罩的用途
type OverlayKind int

const (
	// OverlayEnd 对话结束面板
	OverlayEnd OverlayKind = iota
	// OverlayLoading 场景加载面板
	OverlayLoading
)

// String 返回遮罩类型名称
func (k OverlayKind) String() string {
	if k == OverlayLoading {
		return "loading"
	}
	return "end"
}

// OverlayClip 遮罩上的一段动画
type OverlayClip struct {
	// Trigger 启动动画的触发器名称
	Trigger string
	// Length 动画长度（秒）
	Length float64
	// Speed 播放速度倍率
	Speed float64
}

// OverlayComponent 全屏遮罩（结束面板 / 加载面板）
type OverlayComponent struct {
	Kind OverlayKind
	// Text 遮罩中央显示的文字
	Text string
	// Visible 是否绘制
	Visible bool

	// Clip 动画，可为 nil（没有动画组件）
	Clip *OverlayClip
	// Playing 动画是否正在播放
	Playing bool
	// Elapsed 已播放的时间（秒，已乘速度倍率）
	Elapsed float64
}
