package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by one tick.
	Update() error

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景在被替换或游戏退出时释放资源
//
// 实现此接口的场景会在以下时机被调用 Dispose()：
//   - SceneManager 切换到其它场景
//   - 游戏窗口关闭或 Update 返回 ebiten.Termination
type Disposable interface {
	// Dispose 释放场景持有的资源，重复调用必须安全
	Dispose() error
}
