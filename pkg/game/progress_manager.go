package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Progress 玩家进度
type Progress struct {
	// LastScene 最近一次进入的场景（下次启动时从这里继续）
	LastScene string `yaml:"lastScene"`
	// Visited 进入过的场景，按首次进入顺序
	Visited []string `yaml:"visited"`
}

// HasVisited 是否进入过某个场景
func (p *Progress) HasVisited(name string) bool {
	for _, v := range p.Visited {
		if v == name {
			return true
		}
	}
	return false
}

// ProgressManager 进度管理器
// 负责进度的加载、保存和内存管理
type ProgressManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	progress     *Progress
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "scenes"
)

// NewProgressManager 创建进度管理器并尝试加载已保存的进度
//
// gdataManager 可为 nil（降级模式，进度只保存在内存中）。
// 加载失败不是致命错误，记录警告后从空进度开始。
func NewProgressManager(gdataManager *gdata.Manager) *ProgressManager {
	pm := &ProgressManager{
		gdataManager: gdataManager,
		progress:     &Progress{},
	}
	if err := pm.Load(); err != nil {
		log.Printf("[ProgressManager] Warning: Failed to load progress: %v (starting fresh)", err)
	}
	return pm
}

// Load 从 gdata 加载进度
func (pm *ProgressManager) Load() error {
	pm.progress = &Progress{}

	if pm.gdataManager == nil {
		return nil
	}
	if !pm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	var loaded Progress
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}

	pm.progress = &loaded
	log.Printf("[ProgressManager] Progress loaded, last scene = %q", loaded.LastScene)
	return nil
}

// Save 保存进度到 gdata
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (pm *ProgressManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(pm.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// RecordScene 记录进入了某个场景并立即保存
func (pm *ProgressManager) RecordScene(name string) error {
	if name == "" {
		return nil
	}
	pm.progress.LastScene = name
	if !pm.progress.HasVisited(name) {
		pm.progress.Visited = append(pm.progress.Visited, name)
	}
	return pm.Save()
}

// LastScene 返回最近进入的场景，没有时返回空字符串
func (pm *ProgressManager) LastScene() string {
	return pm.progress.LastScene
}

// Progress 返回当前进度
func (pm *ProgressManager) Progress() *Progress {
	return pm.progress
}
