// validate_levels 校验关卡配置并分析对话可达性
//
// 用法：
//
//	go run ./cmd/validate_levels [--strict] [file.yaml|dir ...]
//
// 不带参数时检查 data/levels 目录。
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/dialogue"
	"github.com/decker502/chargeframe/pkg/embedded"
)

// LevelReport 单个关卡的检查结果
type LevelReport struct {
	Path     string
	Config   *config.LevelConfig
	Analysis dialogue.Reachability
	Err      error
}

// Problems 返回需要作者关注的问题
func (r LevelReport) Problems() []string {
	if r.Err != nil {
		return []string{r.Err.Error()}
	}
	var problems []string
	for _, i := range r.Analysis.Unreachable() {
		problems = append(problems, fmt.Sprintf("节点 %d (%s) 无法到达", i, r.Config.Dialogue[i].Name))
	}
	for _, i := range r.Analysis.DeadEnds {
		problems = append(problems, fmt.Sprintf("节点 %d (%s) 不接受任何输入，玩家会被卡住", i, r.Config.Dialogue[i].Name))
	}
	for _, o := range r.Analysis.Outcomes {
		if o == dialogue.OutcomeNextScene && r.Config.NextScene == "" {
			problems = append(problems, "可能触发 nextScene，但没有配置 nextScene")
		}
	}
	if r.Config.FinishPoint != nil && r.Config.NextScene == "" {
		problems = append(problems, "配置了 finishPoint，但没有配置 nextScene")
	}
	return problems
}

// checkLevel 加载并分析一个关卡文件
func checkLevel(path string) LevelReport {
	report := LevelReport{Path: path}
	cfg, err := config.LoadLevelConfig(path)
	if err != nil {
		report.Err = err
		return report
	}
	graph, err := cfg.DialogueGraph()
	if err != nil {
		report.Err = err
		return report
	}
	report.Config = cfg
	report.Analysis = dialogue.Analyze(graph)
	return report
}

// collectFiles 展开参数中的目录，返回所有 yaml 文件（排序）
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".yaml") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func main() {
	strict := flag.Bool("strict", false, "存在不可达节点或卡住的节点时也返回失败")
	verbose := flag.Bool("verbose", false, "输出详细日志")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{embedded.LevelsDir}
	}
	files, err := collectFiles(args)
	if err != nil {
		fmt.Printf("错误: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, path := range files {
		report := checkLevel(path)
		problems := report.Problems()

		switch {
		case report.Err != nil:
			fmt.Printf("❌ %s\n", path)
			failed++
		case len(problems) > 0:
			fmt.Printf("⚠️  %s (%s)\n", path, report.Config.ID)
			if *strict {
				failed++
			}
		default:
			fmt.Printf("✅ %s (%s)\n", path, report.Config.ID)
		}
		for _, p := range problems {
			fmt.Printf("    - %s\n", p)
		}
		if report.Err == nil {
			fmt.Printf("    节点: %d, 可能的结局: %v\n", len(report.Config.Dialogue), report.Analysis.Outcomes)
		}
	}

	fmt.Printf("\n=== 汇总 ===\n检查了 %d 个关卡，%d 个失败\n", len(files), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
