package game

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	logger       *log.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager(logger *log.Logger) *SceneManager {
	if logger == nil {
		logger = log.Default()
	}
	return &SceneManager{
		logger: logger.WithPrefix("SceneManager"),
	}
}

// SwitchTo changes the active scene. The previous scene is disposed if it
// implements Disposable.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		sm.disposeCurrent()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update() error {
	if sm.currentScene == nil {
		return nil
	}
	return sm.currentScene.Update()
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Close disposes the active scene and clears it.
func (sm *SceneManager) Close() error {
	err := sm.disposeCurrent()
	sm.currentScene = nil
	return err
}

func (sm *SceneManager) disposeCurrent() error {
	d, ok := sm.currentScene.(Disposable)
	if !ok {
		return nil
	}
	if err := d.Dispose(); err != nil {
		sm.logger.Error("scene dispose failed", "err", err)
		return err
	}
	return nil
}
