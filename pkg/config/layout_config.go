package config

// 布局配置常量
// 所有坐标都是逻辑屏幕坐标（800x600），Ebitengine 负责缩放到实际窗口

// 窗口
const (
	GameWindowWidth  = 800
	GameWindowHeight = 600
)

// 对话面板：固定在屏幕下方
const (
	PanelMarginX  = 40.0
	PanelHeight   = 200.0
	PanelBottom   = 20.0
	PanelPadding  = 16.0
	PanelTitleGap = 24.0

	PanelX     = PanelMarginX
	PanelY     = GameWindowHeight - PanelBottom - PanelHeight
	PanelWidth = GameWindowWidth - 2*PanelMarginX
)

// 面板上的按钮：从面板右下角开始向左排列
const (
	ButtonWidth   = 150.0
	ButtonHeight  = 36.0
	ButtonSpacing = 12.0
)

// 世界中的实体
const (
	PlayerSize = 32.0

	// HUDMargin 生命值文字距屏幕左上角的距离
	HUDMargin = 12.0

	// LoadingBarWidth 加载面板进度条宽度
	LoadingBarWidth  = 320.0
	LoadingBarHeight = 12.0
)

// ButtonPosition 计算面板上第 index 个按钮（共 count 个）的左上角坐标
// 按钮在面板底部一行排列，整体右对齐
func ButtonPosition(panelX, panelY, panelWidth, panelHeight float64, index, count int) (x, y float64) {
	if count <= 0 {
		return panelX, panelY
	}
	rowWidth := float64(count)*ButtonWidth + float64(count-1)*ButtonSpacing
	startX := panelX + panelWidth - PanelPadding - rowWidth
	if startX < panelX+PanelPadding {
		startX = panelX + PanelPadding
	}
	x = startX + float64(index)*(ButtonWidth+ButtonSpacing)
	y = panelY + panelHeight - PanelPadding - ButtonHeight
	return x, y
}

// ClampToWindow 把矩形限制在窗口范围内，返回新的左上角
func ClampToWindow(x, y, w, h float64) (float64, float64) {
	maxX := float64(GameWindowWidth) - w
	maxY := float64(GameWindowHeight) - h
	if x < 0 {
		x = 0
	} else if x > maxX {
		x = maxX
	}
	if y < 0 {
		y = 0
	} else if y > maxY {
		y = maxY
	}
	return x, y
}
