package entities

import (
	"fmt"
	"log"

	"github.com/decker502/chargeframe/pkg/components"
	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/dialogue"
	"github.com/decker502/chargeframe/pkg/ecs"
)

// NewDialogueEntities 根据关卡配置创建对话面板和按钮实体
//
// 每个节点对应一个面板实体，每个按钮对应一个按钮实体。
// 所有实体初始都不可见，显示与交互由对话引擎控制。
//
// 返回：
//   - 对话图（节点中的面板/按钮句柄指向刚创建的实体）
//   - 错误信息（动作或结局无法解析）
func NewDialogueEntities(em *ecs.EntityManager, cfg *config.LevelConfig) (*dialogue.Graph, error) {
	nodes := make([]dialogue.DialogueNode, 0, len(cfg.Dialogue))

	for i, nodeCfg := range cfg.Dialogue {
		node, err := nodeCfg.DialogueNode()
		if err != nil {
			return nil, fmt.Errorf("dialogue node %d (%s): %w", i, nodeCfg.Name, err)
		}

		panelID := em.CreateEntity()
		ecs.AddComponent(em, panelID, &components.PositionComponent{X: config.PanelX, Y: config.PanelY})
		panel := &components.PanelComponent{
			Name:   nodeCfg.Name,
			Title:  cfg.Name,
			Width:  config.PanelWidth,
			Height: config.PanelHeight,
		}
		ecs.AddComponent(em, panelID, panel)
		node.Panel = &panelHandle{em: em, id: panelID}

		for j, buttonCfg := range nodeCfg.Buttons {
			buttonID := newButtonEntity(em, panelID, j, buttonCfg.Label)
			panel.Buttons = append(panel.Buttons, buttonID)
			node.Buttons[j].Button = &buttonHandle{em: em, id: buttonID}
		}

		nodes = append(nodes, node)
	}

	log.Printf("[DialogueFactory] Created %d dialogue panels for level %s", len(nodes), cfg.ID)
	return dialogue.NewGraph(nodes...), nil
}

// newButtonEntity 创建一个按钮实体（初始不可见、不可交互）
func newButtonEntity(em *ecs.EntityManager, panelID ecs.EntityID, index int, label string) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{})
	ecs.AddComponent(em, id, &components.ButtonComponent{
		Label:  label,
		Width:  config.ButtonWidth,
		Height: config.ButtonHeight,
		State:  components.UIDisabled,
		Panel:  panelID,
		Index:  index,
	})
	return id
}
