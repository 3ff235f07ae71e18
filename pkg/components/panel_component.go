package components

import "github.com/decker502/chargeframe/pkg/ecs"

// PanelComponent 一屏对话面板
type PanelComponent struct {
	// Name 面板名称（配置中的节点名，用于日志）
	Name string
	// Title 标题（可为空）
	Title string
	// Text 正文，由对话引擎在显示时设置
	Text string

	Width  float64
	Height float64

	// Visible 是否绘制
	Visible bool
	// LayoutDirty 为 true 时在下次布局刷新中重新排列按钮
	LayoutDirty bool

	// Buttons 面板上的按钮实体，按配置顺序排列
	Buttons []ecs.EntityID
}
