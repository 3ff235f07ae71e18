package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/dialogue"
)

const (
	frameTime  = time.Second / 60
	panelWidth = 64
	barWidth   = 30
)

type tickMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(panelWidth)

	panelNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("86")) // green

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")) // dark grey

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")). // yellow
			Padding(0, 2).
			Width(panelWidth)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// previewModel 是驱动真实对话引擎的 BubbleTea 模型
type previewModel struct {
	levelPath string
	loadDelay float64

	cfg            *config.LevelConfig
	engine         *dialogue.Engine
	panels         []*termPanel
	endOverlay     *termOverlay
	loadingOverlay *termOverlay
	loader         *simLoader
	player         *termPlayer

	completed *dialogue.Outcome
	status    string
	err       error
}

func newPreviewModel(levelPath string, loadDelay float64) (*previewModel, error) {
	cfg, err := config.LoadLevelConfig(levelPath)
	if err != nil {
		return nil, err
	}
	m := &previewModel{levelPath: levelPath, loadDelay: loadDelay}
	if err := m.setLevel(cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// setLevel 用新的关卡配置重建引擎和所有终端适配器
func (m *previewModel) setLevel(cfg *config.LevelConfig) error {
	graph, panels, err := buildGraph(cfg)
	if err != nil {
		return fmt.Errorf("level %s: %w", cfg.ID, err)
	}
	if m.engine != nil {
		m.engine.Close()
	}

	m.cfg = cfg
	m.panels = panels
	m.endOverlay = newTermOverlay(cfg.EndOverlay, cfg.AnimationTrigger)
	m.loadingOverlay = newTermOverlay(cfg.LoadingOverlay, cfg.AnimationTrigger)
	m.loader = &simLoader{delay: m.loadDelay, active: cfg.ID}
	m.player = &termPlayer{enabled: true}

	opts := dialogue.Options{
		Player:           m.player,
		Loader:           m.loader,
		NextScene:        cfg.NextScene,
		AnimationTrigger: cfg.AnimationTrigger,
		MinWait:          cfg.MinLoadingTime,
	}
	// 接口字段不能直接赋 nil 指针
	if m.endOverlay != nil {
		opts.EndOverlay = m.endOverlay
	}
	if m.loadingOverlay != nil {
		opts.LoadingOverlay = m.loadingOverlay
	}

	m.engine = dialogue.NewEngine(graph, opts)
	m.engine.OnComplete(func(outcome dialogue.Outcome) {
		m.completed = &outcome
	})
	m.status = fmt.Sprintf("Loaded %s. Press s to start.", cfg.ID)
	return nil
}

func (m *previewModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameTime, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.step(frameTime.Seconds())
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// step 推进一帧：先推进模拟加载和面板动画，再推进对话引擎
func (m *previewModel) step(dt float64) {
	m.loader.update(dt)
	if m.endOverlay != nil {
		m.endOverlay.update(dt)
	}
	if m.loadingOverlay != nil {
		m.loadingOverlay.update(dt)
	}
	m.engine.Update(dt)

	if m.completed != nil {
		m.finish(*m.completed)
		m.completed = nil
	}
}

// finish 对话完成后，若场景已切换则尝试加载同目录下的对应关卡
func (m *previewModel) finish(outcome dialogue.Outcome) {
	m.status = fmt.Sprintf("Dialogue finished with %s.", outcome)
	scene := m.loader.activated
	if scene == "" {
		return
	}

	path := filepath.Join(filepath.Dir(m.levelPath), scene+".yaml")
	cfg, err := config.LoadLevelConfig(path)
	if err != nil {
		log.Printf("[Preview] Scene %s has no level file: %v", scene, err)
		m.status += fmt.Sprintf(" Scene %s activated (no level file to preview).", scene)
		m.loader.activated = ""
		return
	}
	m.levelPath = path
	if err := m.setLevel(cfg); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("Finished with %s, now previewing %s. Press s to start.", outcome, cfg.ID)
}

func (m *previewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		m.engine.Close()
		return m, tea.Quit
	case " ", "enter":
		m.engine.OnTap(false)
	case "b":
		m.engine.OnTap(true)
	case "s":
		m.restart()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.pressButton(int(key[0] - '1'))
		}
	}
	return m, nil
}

// restart 空闲时开始对话，进行中则重建引擎后重新开始
func (m *previewModel) restart() {
	if m.engine.IsActive() {
		if err := m.setLevel(m.cfg); err != nil {
			m.err = err
			return
		}
	}
	if err := m.engine.Start(); err != nil {
		m.status = fmt.Sprintf("Cannot start: %v", err)
		return
	}
	m.status = "Dialogue started."
}

// pressButton 点击当前可见面板上的第 index 个按钮
func (m *previewModel) pressButton(index int) {
	panel := m.visiblePanel()
	if panel == nil || index >= len(panel.buttons) {
		return
	}
	if !panel.buttons[index].press() {
		m.status = fmt.Sprintf("Button %d is not interactable yet.", index+1)
	}
}

func (m *previewModel) visiblePanel() *termPanel {
	for _, p := range m.panels {
		if p.visible {
			return p
		}
	}
	return nil
}

func (m *previewModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  (%s)", m.cfg.Name, m.cfg.ID)) + "\n")
	b.WriteString(fmt.Sprintf("State: %s   Node: %d/%d   Player: %s   Scene: %s\n\n",
		m.engine.State(), m.engine.CurrentIndex()+1, len(m.panels), enabledLabel(m.player.enabled), m.loader.active))

	if panel := m.visiblePanel(); panel != nil {
		b.WriteString(renderPanel(panel) + "\n")
	}
	for _, o := range []*termOverlay{m.endOverlay, m.loadingOverlay} {
		if o != nil && o.visible {
			b.WriteString(renderOverlay(o) + "\n")
		}
	}

	b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("Error: %v\n", m.err))
	}
	b.WriteString(helpStyle.Render("1-9 button • space/enter tap • b tap over UI • s start/restart • q quit") + "\n")
	return b.String()
}

func renderPanel(p *termPanel) string {
	var content strings.Builder
	content.WriteString(panelNameStyle.Render(p.name) + "\n")
	content.WriteString(wordwrap.String(p.text, panelWidth-4))

	var labels []string
	for i, btn := range p.buttons {
		if !btn.visible {
			continue
		}
		label := fmt.Sprintf(" %d %s ", i+1, btn.label)
		if btn.interactable {
			labels = append(labels, buttonStyle.Render(label))
		} else {
			labels = append(labels, disabledButtonStyle.Render(label))
		}
	}
	if len(labels) > 0 {
		content.WriteString("\n\n" + strings.Join(labels, "  "))
	}
	return panelStyle.Render(content.String())
}

func renderOverlay(o *termOverlay) string {
	content := wordwrap.String(o.text, panelWidth-6)
	if o.clip != nil {
		filled := int(o.progress() * barWidth)
		content += "\n" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	}
	return overlayStyle.Render(content)
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "free"
	}
	return "locked"
}
