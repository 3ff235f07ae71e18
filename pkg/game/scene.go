package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., a playable level).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，场景被替换时调用 Close 释放资源
// （例如终止对话引擎中尚未结束的协程）
type Closer interface {
	Close()
}

// closeScene 如果场景实现了 Closer 就关闭它
func closeScene(scene Scene) {
	if c, ok := scene.(Closer); ok {
		c.Close()
	}
}
