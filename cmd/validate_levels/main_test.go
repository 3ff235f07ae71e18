package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const stuckLevel = `id: stuck
name: Stuck
triggerZone: {width: 10, height: 10}
dialogue:
  - text: "start"
    disableTap: true
    buttons:
      - label: "Skip"
        action: skip
  - text: "never shown"
  - name: wall
    text: "no way out"
    disableTap: true
  - text: "after the wall"
    outcome: nextScene
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// TestCheckLevelReportsProblems 测试不可达节点和卡住的节点
func TestCheckLevelReportsProblems(t *testing.T) {
	path := writeFile(t, t.TempDir(), "stuck.yaml", stuckLevel)

	report := checkLevel(path)
	if report.Err != nil {
		t.Fatalf("checkLevel() error = %v", report.Err)
	}

	problems := strings.Join(report.Problems(), "\n")
	for _, want := range []string{"节点 1 (node-1) 无法到达", "节点 3 (node-3) 无法到达", "节点 2 (wall) 不接受任何输入"} {
		if !strings.Contains(problems, want) {
			t.Errorf("Expected problem %q, got:\n%s", want, problems)
		}
	}
	if len(report.Analysis.Outcomes) != 0 {
		t.Errorf("Expected no reachable outcomes, got %v", report.Analysis.Outcomes)
	}
}

// TestCheckLevelMissingNextScene 测试可能进入下一场景却没有配置场景名
func TestCheckLevelMissingNextScene(t *testing.T) {
	path := writeFile(t, t.TempDir(), "open.yaml", `id: open
name: Open
triggerZone: {width: 10, height: 10}
dialogue:
  - text: "bye"
    outcome: nextScene
`)

	problems := checkLevel(path).Problems()
	if len(problems) != 1 || !strings.Contains(problems[0], "nextScene") {
		t.Errorf("Expected missing nextScene problem, got %v", problems)
	}
}

// TestCheckLevelFinishPointWithoutNextScene 测试终点没有可加载的下一关
func TestCheckLevelFinishPointWithoutNextScene(t *testing.T) {
	path := writeFile(t, t.TempDir(), "finish.yaml", `id: finish
name: Finish
triggerZone: {width: 10, height: 10}
finishPoint: {x: 50, y: 50, width: 10, height: 10}
dialogue:
  - text: "bye"
`)

	problems := checkLevel(path).Problems()
	if len(problems) != 1 || !strings.Contains(problems[0], "finishPoint") {
		t.Errorf("Expected finishPoint problem, got %v", problems)
	}
}

// TestCheckLevelInvalidConfig 测试配置错误
func TestCheckLevelInvalidConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "id: bad\n")

	report := checkLevel(path)
	if report.Err == nil {
		t.Fatal("Expected error for invalid config")
	}
	if len(report.Problems()) != 1 {
		t.Errorf("Expected the error as the only problem, got %v", report.Problems())
	}
}

// TestBundledLevelsHaveNoProblems 测试随游戏发布的关卡
func TestBundledLevelsHaveNoProblems(t *testing.T) {
	files, err := collectFiles([]string{filepath.Join("..", "..", "data", "levels")})
	if err != nil {
		t.Fatalf("collectFiles() error = %v", err)
	}
	if len(files) == 0 {
		t.Fatal("Expected bundled levels")
	}
	for _, path := range files {
		if problems := checkLevel(path).Problems(); len(problems) > 0 {
			t.Errorf("%s: %v", path, problems)
		}
	}
}

// TestCollectFiles 测试目录展开与排序
func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "")
	writeFile(t, dir, "a.yaml", "")
	writeFile(t, dir, "notes.txt", "")
	single := writeFile(t, t.TempDir(), "c.yaml", "")

	files, err := collectFiles([]string{dir, single})
	if err != nil {
		t.Fatalf("collectFiles() error = %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("Expected 3 files, got %v", files)
	}
	index := make(map[string]int)
	for i, f := range files {
		index[filepath.Base(f)] = i
	}
	if index["a.yaml"] > index["b.yaml"] {
		t.Errorf("Expected sorted output, got %v", files)
	}
	if _, ok := index["notes.txt"]; ok {
		t.Errorf("Expected non-yaml files to be skipped, got %v", files)
	}
}
