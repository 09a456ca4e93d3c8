package game

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game: intro, start menu, gameplay, results.
type Scene interface {
	// Update advances the scene by deltaTime seconds.
	Update(deltaTime float64)

	// Draw renders the scene.
	Draw(screen *ebiten.Image)
}

// SceneManager manages the game's high-level state by controlling which
// scene is active. Only one scene's Update and Draw run at a time.
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager creates a manager with no active scene; use SwitchTo
// to set the initial one.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene. The previous scene is dropped;
// scenes that hold external resources free them before calling this.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// CurrentScene returns the active scene, or nil.
func (sm *SceneManager) CurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
