package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时目录中打开 gdata 存储
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestProgressManagerNilGdata 测试降级模式
func TestProgressManagerNilGdata(t *testing.T) {
	pm := NewProgressManager(nil)

	if pm.LastScene() != "" {
		t.Errorf("Expected empty last scene, got %q", pm.LastScene())
	}
	if err := pm.RecordScene("level-1"); err != nil {
		t.Fatalf("RecordScene() in degraded mode should not fail: %v", err)
	}
	if pm.LastScene() != "level-1" {
		t.Errorf("Expected in-memory last scene level-1, got %q", pm.LastScene())
	}
}

// TestProgressManagerPersistence 测试进度保存后可以重新加载
func TestProgressManagerPersistence(t *testing.T) {
	m := openTestGdata(t, "chargeframe_test_progress")

	pm := NewProgressManager(m)
	for _, name := range []string{"level-1", "level-2", "level-1", ""} {
		if err := pm.RecordScene(name); err != nil {
			t.Fatalf("RecordScene(%q) failed: %v", name, err)
		}
	}

	reloaded := NewProgressManager(m)
	if reloaded.LastScene() != "level-1" {
		t.Errorf("Expected last scene level-1, got %q", reloaded.LastScene())
	}
	visited := reloaded.Progress().Visited
	if len(visited) != 2 || visited[0] != "level-1" || visited[1] != "level-2" {
		t.Errorf("Expected visited [level-1 level-2], got %v", visited)
	}
	if !reloaded.Progress().HasVisited("level-2") || reloaded.Progress().HasVisited("level-3") {
		t.Error("HasVisited returned unexpected result")
	}
}
