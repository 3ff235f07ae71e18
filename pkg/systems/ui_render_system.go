package systems

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/image/font/basicfont"
)

// 颜色
var (
	colorBackground   = color.RGBA{R: 34, G: 49, B: 63, A: 255}
	colorTriggerZone  = color.RGBA{R: 241, G: 196, B: 15, A: 90}
	colorFinishPoint  = color.RGBA{R: 46, G: 204, B: 113, A: 90}
	colorDamageZone   = color.RGBA{R: 231, G: 76, B: 60, A: 110}
	colorPlayer       = color.RGBA{R: 46, G: 204, B: 113, A: 255}
	colorPlayerFrozen = color.RGBA{R: 127, G: 140, B: 141, A: 255}
	colorPanel        = color.RGBA{R: 20, G: 20, B: 28, A: 230}
	colorPanelBorder  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	colorText         = color.RGBA{R: 236, G: 240, B: 241, A: 255}
	colorTitle        = color.RGBA{R: 241, G: 196, B: 15, A: 255}
	colorOverlay      = color.RGBA{R: 0, G: 0, B: 0, A: 220}
	colorLoadingBar   = color.RGBA{R: 52, G: 152, B: 219, A: 255}

	buttonColors = map[components.UIState]color.RGBA{
		components.UINormal:   {R: 52, G: 73, B: 94, A: 255},
		components.UIHovered:  {R: 72, G: 101, B: 129, A: 255},
		components.UIClicked:  {R: 41, G: 128, B: 185, A: 255},
		components.UIDisabled: {R: 60, G: 60, B: 60, A: 255},
	}
)

// UIRenderSystem 场景渲染系统
//
// 绘制顺序（后画的在上层）：
//  1. 背景、触发区域、玩家、生命值
//  2. 可见的对话面板（标题 + 自动换行的正文）
//  3. 可见的按钮
//  4. 可见的全屏遮罩（加载面板附带进度条）
type UIRenderSystem struct {
	entityManager *ecs.EntityManager
	face          text.Face
	lineHeight    float64
	charWidth     float64
}

// NewUIRenderSystem 创建渲染系统，使用内置的 7x13 位图字体
func NewUIRenderSystem(em *ecs.EntityManager) *UIRenderSystem {
	return &UIRenderSystem{
		entityManager: em,
		face:          text.NewGoXFace(basicfont.Face7x13),
		lineHeight:    float64(basicfont.Face7x13.Height) + 4,
		charWidth:     float64(basicfont.Face7x13.Advance),
	}
}

// Draw 绘制整个场景
func (s *UIRenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	s.drawWorld(screen)
	s.drawHUD(screen)
	s.drawPanels(screen)
	s.drawButtons(screen)
	s.drawOverlays(screen)
}

func (s *UIRenderSystem) drawWorld(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.TriggerZoneComponent, *components.PositionComponent](s.entityManager) {
		zone, _ := ecs.GetComponent[*components.TriggerZoneComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		fillRect(screen, pos.X, pos.Y, zone.Width, zone.Height, zoneColor(zone.Kind))
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		c := colorPlayer
		if !player.Enabled {
			c = colorPlayerFrozen
		}
		fillRect(screen, pos.X, pos.Y, player.Width, player.Height, c)
	}
}

func zoneColor(kind components.ZoneKind) color.Color {
	switch kind {
	case components.ZoneFinish:
		return colorFinishPoint
	case components.ZoneDamage:
		return colorDamageZone
	default:
		return colorTriggerZone
	}
}

// drawHUD 左上角显示生命值
func (s *UIRenderSystem) drawHUD(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.HealthComponent](s.entityManager) {
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		s.drawText(screen, HealthText(health), config.HUDMargin, config.HUDMargin, colorText)
		return
	}
}

// HealthText 生命值显示文本，负数按 0 显示
func HealthText(health *components.HealthComponent) string {
	current := health.Current
	if current < 0 {
		current = 0
	}
	return fmt.Sprintf("HP %d/%d", current, health.Max)
}

func (s *UIRenderSystem) drawPanels(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.PanelComponent, *components.PositionComponent](s.entityManager) {
		panel, _ := ecs.GetComponent[*components.PanelComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !panel.Visible {
			continue
		}

		fillRect(screen, pos.X, pos.Y, panel.Width, panel.Height, colorPanel)
		strokeRect(screen, pos.X, pos.Y, panel.Width, panel.Height, colorPanelBorder)

		textX := pos.X + config.PanelPadding
		textY := pos.Y + config.PanelPadding
		if panel.Title != "" {
			s.drawText(screen, panel.Title, textX, textY, colorTitle)
			textY += config.PanelTitleGap
		}

		columns := int((panel.Width - 2*config.PanelPadding) / s.charWidth)
		s.drawText(screen, WrapText(panel.Text, columns), textX, textY, colorText)
	}
}

func (s *UIRenderSystem) drawButtons(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !button.Visible {
			continue
		}

		fillRect(screen, pos.X, pos.Y, button.Width, button.Height, buttonColors[button.State])
		strokeRect(screen, pos.X, pos.Y, button.Width, button.Height, colorPanelBorder)

		// 文字居中
		textWidth := float64(len([]rune(button.Label))) * s.charWidth
		textX := pos.X + (button.Width-textWidth)/2
		textY := pos.Y + (button.Height-s.lineHeight)/2 + 2
		s.drawText(screen, button.Label, textX, textY, colorText)
	}
}

func (s *UIRenderSystem) drawOverlays(screen *ebiten.Image) {
	w, h := float64(config.GameWindowWidth), float64(config.GameWindowHeight)
	for _, id := range ecs.GetEntitiesWith1[*components.OverlayComponent](s.entityManager) {
		overlay, _ := ecs.GetComponent[*components.OverlayComponent](s.entityManager, id)
		if !overlay.Visible {
			continue
		}

		fillRect(screen, 0, 0, w, h, colorOverlay)

		textWidth := float64(len([]rune(overlay.Text))) * s.charWidth
		s.drawText(screen, overlay.Text, (w-textWidth)/2, h/2-s.lineHeight*2, colorText)

		if overlay.Kind == components.OverlayLoading {
			barX := (w - config.LoadingBarWidth) / 2
			barY := h / 2
			strokeRect(screen, barX, barY, config.LoadingBarWidth, config.LoadingBarHeight, colorPanelBorder)
			fillRect(screen, barX, barY, config.LoadingBarWidth*OverlayProgress(overlay), config.LoadingBarHeight, colorLoadingBar)
		}
	}
}

// drawText 绘制多行文字，(x, y) 为第一行左上角
func (s *UIRenderSystem) drawText(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = s.lineHeight
	text.Draw(screen, str, s.face, op)
}

// WrapText 按列数自动换行，保留原有换行
func WrapText(str string, columns int) string {
	if columns <= 0 {
		return str
	}
	return strings.TrimRight(wordwrap.String(str, columns), "\n")
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func strokeRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 1, clr, false)
}
