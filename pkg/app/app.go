// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/chargeframe/pkg/config"
	"github.com/decker502/chargeframe/pkg/embedded"
	"github.com/decker502/chargeframe/pkg/game"
	"github.com/decker502/chargeframe/pkg/scenes"
	"github.com/decker502/chargeframe/pkg/utils"
)

// DefaultSaveAppName gdata 存储使用的应用名
const DefaultSaveAppName = "chargeframe"

// ErrNoLevels 没有任何可加载的关卡
var ErrNoLevels = errors.New("no levels available")

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Scene 指定启动场景（关卡 ID），为空则从进度加载或使用第一个关卡
	Scene string
	// SaveAppName gdata 应用名，为空时使用 DefaultSaveAppName
	SaveAppName string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	progress                 *game.ProgressManager
	settings                 *game.SettingsManager
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	log.Printf("[App] Run %s starting", uuid.NewString())

	store := openStore(cfg.SaveAppName)
	progress := game.NewProgressManager(store)
	settings := game.NewSettingsManager(store)
	if settings.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewFactory(sceneManager))
	sceneManager.OnSceneActivated(func(name string) {
		if err := progress.RecordScene(name); err != nil {
			log.Printf("[App] Warning: failed to record progress: %v", err)
		}
	})

	start, err := startScene(cfg.Scene, progress.LastScene())
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Starting scene: %s", start)

	if err := sceneManager.LoadScene(start); err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", start, err)
	}

	return &App{
		sceneManager: sceneManager,
		progress:     progress,
		settings:     settings,
	}, nil
}

// openStore 打开 gdata 存储，失败时返回 nil（进度仅保存在内存中）
func openStore(appName string) *gdata.Manager {
	if appName == "" {
		appName = DefaultSaveAppName
	}
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, progress will not persist: %v", err)
		return nil
	}
	return manager
}

// startScene 选择启动场景：命令行参数 > 已保存的进度 > 第一个关卡
func startScene(requested, saved string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	if saved != "" && embedded.Exists(embedded.LevelPath(saved)) {
		log.Printf("[App] Resuming from saved scene %s", saved)
		return saved, nil
	}

	levels, err := embedded.ListLevels()
	if err != nil {
		return "", fmt.Errorf("failed to list levels: %w", err)
	}
	if len(levels) == 0 {
		return "", ErrNoLevels
	}
	return levels[0], nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if err := a.settings.SetFullscreen(fullscreen); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
	if fullscreen {
		ebiten.SetFullscreen(true)
		return
	}
	ebiten.SetFullscreen(false)
	if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
		ebiten.RestoreWindow()
	}
	a.pendingWindowSizeReset = true
	a.windowSizeResetCountdown = 3
	log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧填充黑色，并使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// SaveProgress 保存进度（游戏关闭时调用）
func (a *App) SaveProgress() error {
	return a.progress.Save()
}
