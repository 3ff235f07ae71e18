// dialogue_preview 在终端中预览关卡对话
//
// 用法：
//
//	go run ./cmd/dialogue_preview [--verbose] [--load-delay 1.5] data/levels/level-1.yaml
//
// 对话由真实的对话引擎驱动，面板、按钮、遮罩和场景加载都替换为终端实现。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	verbose := flag.Bool("verbose", false, "将引擎日志写入 preview.log")
	loadDelay := flag.Float64("load-delay", 1.0, "模拟场景加载耗时（秒）")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "用法: dialogue_preview [flags] <level.yaml>\n")
		os.Exit(2)
	}

	// 日志会破坏终端界面，只能写入文件或丢弃
	if *verbose {
		f, err := tea.LogToFile("preview.log", "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法创建日志文件: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close()
		}()
	} else {
		log.SetOutput(io.Discard)
	}

	model, err := newPreviewModel(flag.Arg(0), *loadDelay)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载关卡失败: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
