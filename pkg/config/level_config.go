package config

import (
	"fmt"

	"github.com/decker502/chargeframe/pkg/dialogue"
	"github.com/decker502/chargeframe/pkg/embedded"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// LevelConfig 关卡配置
// 一个关卡 = 一个可移动的玩家 + 一个触发区域 + 进入区域后播放的一段对话，
// 可选终点（直接进入下一关）和伤害区域
type LevelConfig struct {
	ID   string `yaml:"id"`   // 关卡ID（也是场景名称），如 "level-1"
	Name string `yaml:"name"` // 关卡名称，如 "森林入口"

	// NextScene 结局为 nextScene 时加载的场景，为空表示没有下一场景
	NextScene string `yaml:"nextScene"`
	// MinLoadingTime 没有动画时的最短等待时间（秒），默认 2
	MinLoadingTime float64 `yaml:"minLoadingTime"`
	// AnimationTrigger 结束/加载面板动画的触发器名称，默认 "Play"
	AnimationTrigger string `yaml:"animationTrigger"`

	Player      PlayerConfig      `yaml:"player"`
	TriggerZone TriggerZoneConfig `yaml:"triggerZone"`
	// FinishPoint 可选，玩家走进后加载 NextScene
	FinishPoint *TriggerZoneConfig `yaml:"finishPoint"`
	DamageZones []DamageZoneConfig `yaml:"damageZones"`

	EndOverlay     *OverlayConfig `yaml:"endOverlay"`     // 可选
	LoadingOverlay *OverlayConfig `yaml:"loadingOverlay"` // 可选

	Dialogue []NodeConfig `yaml:"dialogue"`
}

// PlayerConfig 玩家初始位置与速度
type PlayerConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Speed float64 `yaml:"speed"` // 像素/秒，默认 180
	// Health 初始生命值，默认 500；降到 0 时重新开始本关
	Health int `yaml:"health"`
}

// TriggerZoneConfig 触发对话的矩形区域
type TriggerZoneConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DamageZoneConfig 伤害区域：玩家每次进入扣除 Damage 点生命
// 两次伤害之间至少间隔 Cooldown 秒
type DamageZoneConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Damage   int     `yaml:"damage"`   // 默认 1
	Cooldown float64 `yaml:"cooldown"` // 默认 0.1
}

// Rect 返回区域矩形
func (z DamageZoneConfig) Rect() TriggerZoneConfig {
	return TriggerZoneConfig{X: z.X, Y: z.Y, Width: z.Width, Height: z.Height}
}

// OverlayConfig 全屏面板配置
type OverlayConfig struct {
	Text      string           `yaml:"text"`
	Animation *AnimationConfig `yaml:"animation"` // 为空时按 MinLoadingTime 等待
}

// AnimationConfig 面板动画
type AnimationConfig struct {
	Length float64 `yaml:"length"` // 秒
	Speed  float64 `yaml:"speed"`  // 播放倍率，小于 1 时按 1 计算等待时长
}

// NodeConfig 一屏对话
type NodeConfig struct {
	Name       string         `yaml:"name"`
	Text       string         `yaml:"text"`
	DisableTap bool           `yaml:"disableTap"`
	IsEndNode  bool           `yaml:"isEndNode"`
	Outcome    string         `yaml:"outcome"` // nextScene | restartLevel | nothing
	Buttons    []ButtonConfig `yaml:"buttons"`
}

// ButtonConfig 对话按钮
type ButtonConfig struct {
	Label   string `yaml:"label"`
	Action  string `yaml:"action"`  // advance | skip | outcome
	Outcome string `yaml:"outcome"` // 仅 action 为 outcome 时使用
}

// 默认值
const (
	DefaultMinLoadingTime = dialogue.DefaultMinWait
	DefaultPlayerSpeed    = 180.0
	DefaultPlayerHealth   = 500
	DefaultDamage         = 1
	DefaultDamageCooldown = 0.1
)

// LoadLevelConfig 从文件加载关卡配置
// 路径以 "data/" 开头时优先读取嵌入资源，否则读取磁盘
func LoadLevelConfig(path string) (*LevelConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", path, err)
	}
	return ParseLevelConfig(data, path)
}

// ParseLevelConfig 解析 YAML 数据，source 仅用于错误信息
func ParseLevelConfig(data []byte, source string) (*LevelConfig, error) {
	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML from %s: %w", source, err)
	}

	applyDefaults(&cfg)

	if err := validateLevelConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid level config in %s: %w", source, err)
	}
	return &cfg, nil
}

// applyDefaults 填充未配置的字段，并把所有显示文本规范化为 NFC
func applyDefaults(cfg *LevelConfig) {
	if cfg.MinLoadingTime == 0 {
		cfg.MinLoadingTime = DefaultMinLoadingTime
	}
	if cfg.AnimationTrigger == "" {
		cfg.AnimationTrigger = dialogue.DefaultAnimationTrigger
	}
	if cfg.Player.Speed == 0 {
		cfg.Player.Speed = DefaultPlayerSpeed
	}
	if cfg.Player.Health == 0 {
		cfg.Player.Health = DefaultPlayerHealth
	}
	for i := range cfg.DamageZones {
		zone := &cfg.DamageZones[i]
		if zone.Damage == 0 {
			zone.Damage = DefaultDamage
		}
		if zone.Cooldown == 0 {
			zone.Cooldown = DefaultDamageCooldown
		}
	}

	cfg.Name = norm.NFC.String(cfg.Name)
	for _, overlay := range []*OverlayConfig{cfg.EndOverlay, cfg.LoadingOverlay} {
		if overlay != nil {
			overlay.Text = norm.NFC.String(overlay.Text)
		}
	}

	for i := range cfg.Dialogue {
		node := &cfg.Dialogue[i]
		if node.Name == "" {
			node.Name = fmt.Sprintf("node-%d", i)
		}
		if node.Outcome == "" {
			node.Outcome = dialogue.OutcomeNothing.String()
		}
		node.Text = norm.NFC.String(node.Text)
		for j := range node.Buttons {
			node.Buttons[j].Label = norm.NFC.String(node.Buttons[j].Label)
		}
	}
}

// validateLevelConfig 校验必填字段与取值范围
func validateLevelConfig(cfg *LevelConfig) error {
	if cfg.ID == "" {
		return fmt.Errorf("level ID is required")
	}
	if cfg.Name == "" {
		return fmt.Errorf("level name is required")
	}
	if cfg.MinLoadingTime < 0 {
		return fmt.Errorf("minLoadingTime cannot be negative, got %v", cfg.MinLoadingTime)
	}
	if cfg.Player.Speed < 0 {
		return fmt.Errorf("player speed cannot be negative, got %v", cfg.Player.Speed)
	}
	if cfg.Player.Health < 0 {
		return fmt.Errorf("player health cannot be negative, got %v", cfg.Player.Health)
	}
	if err := validateZone("triggerZone", cfg.TriggerZone); err != nil {
		return err
	}
	if cfg.FinishPoint != nil {
		if err := validateZone("finishPoint", *cfg.FinishPoint); err != nil {
			return err
		}
	}
	for i, zone := range cfg.DamageZones {
		field := fmt.Sprintf("damageZones[%d]", i)
		if err := validateZone(field, zone.Rect()); err != nil {
			return err
		}
		if zone.Damage < 0 {
			return fmt.Errorf("%s: damage cannot be negative, got %v", field, zone.Damage)
		}
		if zone.Cooldown < 0 {
			return fmt.Errorf("%s: cooldown cannot be negative, got %v", field, zone.Cooldown)
		}
	}

	if err := validateOverlay("endOverlay", cfg.EndOverlay); err != nil {
		return err
	}
	if err := validateOverlay("loadingOverlay", cfg.LoadingOverlay); err != nil {
		return err
	}

	if len(cfg.Dialogue) == 0 {
		return fmt.Errorf("at least one dialogue node is required")
	}
	for i, node := range cfg.Dialogue {
		if _, err := node.DialogueNode(); err != nil {
			return fmt.Errorf("dialogue %d (%s): %w", i, node.Name, err)
		}
	}
	return nil
}

func validateZone(field string, zone TriggerZoneConfig) error {
	if zone.Width <= 0 || zone.Height <= 0 {
		return fmt.Errorf("%s must have a positive size, got %vx%v", field, zone.Width, zone.Height)
	}
	return nil
}

func validateOverlay(field string, overlay *OverlayConfig) error {
	if overlay == nil || overlay.Animation == nil {
		return nil
	}
	if overlay.Animation.Length < 0 {
		return fmt.Errorf("%s: animation length cannot be negative, got %v", field, overlay.Animation.Length)
	}
	if overlay.Animation.Speed < 0 {
		return fmt.Errorf("%s: animation speed cannot be negative, got %v", field, overlay.Animation.Speed)
	}
	return nil
}

// DialogueNode 把节点配置转换为不带界面句柄的对话节点
// 调用方负责填充 Panel 和每个按钮的 Button
func (n NodeConfig) DialogueNode() (dialogue.DialogueNode, error) {
	outcome, err := dialogue.ParseOutcome(n.Outcome)
	if err != nil {
		return dialogue.DialogueNode{}, err
	}

	buttons := make([]dialogue.DialogueButton, 0, len(n.Buttons))
	for j, b := range n.Buttons {
		action, err := dialogue.ParseAction(b.Action)
		if err != nil {
			return dialogue.DialogueNode{}, fmt.Errorf("button %d: %w", j, err)
		}
		btnOutcome := dialogue.OutcomeNothing
		if action == dialogue.ActionTriggerOutcome {
			if btnOutcome, err = dialogue.ParseOutcome(b.Outcome); err != nil {
				return dialogue.DialogueNode{}, fmt.Errorf("button %d: %w", j, err)
			}
		}
		buttons = append(buttons, dialogue.DialogueButton{Action: action, Outcome: btnOutcome})
	}

	return dialogue.DialogueNode{
		Text:                n.Text,
		Buttons:             buttons,
		DisableAdvanceOnTap: n.DisableTap,
		Outcome:             outcome,
		IsEndNode:           n.IsEndNode,
	}, nil
}

// DialogueGraph 构建没有界面句柄的对话图，用于离线分析
func (cfg *LevelConfig) DialogueGraph() (*dialogue.Graph, error) {
	nodes := make([]dialogue.DialogueNode, 0, len(cfg.Dialogue))
	for i, n := range cfg.Dialogue {
		node, err := n.DialogueNode()
		if err != nil {
			return nil, fmt.Errorf("dialogue %d (%s): %w", i, n.Name, err)
		}
		nodes = append(nodes, node)
	}
	return dialogue.NewGraph(nodes...), nil
}
