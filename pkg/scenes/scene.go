package scenes

import (
	"github.com/decker502/chargeframe/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 编译期检查
var (
	_ game.Scene  = (*LevelScene)(nil)
	_ game.Closer = (*LevelScene)(nil)
)

// NewFactory 返回创建关卡场景的工厂函数，供 SceneManager 使用
func NewFactory(sm *game.SceneManager) game.SceneFactory {
	return func(name string) (game.Scene, error) {
		scene, err := NewLevelScene(sm, name)
		if err != nil {
			return nil, err
		}
		return scene, nil
	}
}
