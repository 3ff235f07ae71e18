package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/chargeframe/pkg/app"
	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	scene := flag.String("scene", "", "启动场景（关卡 ID，如 level-2），为空则从进度继续")
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Scene:   *scene,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("ChargeFrame")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
	if err := gameApp.SaveProgress(); err != nil {
		log.Printf("[Main] Failed to save progress: %v", err)
	}
}
