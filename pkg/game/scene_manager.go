package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager controls which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
//
// Scenes are registered per session phase; Sync switches to the scene
// registered for the phase the session is currently in, so the state machine
// stays the single source of truth for which screen is shown.
type SceneManager struct {
	currentScene Scene
	currentPhase Phase
	scenes       map[Phase]Scene
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use Sync or SwitchTo to set one.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		currentPhase: -1,
		scenes:       make(map[Phase]Scene),
	}
}

// Register binds a scene to a phase. One scene may serve several phases.
func (sm *SceneManager) Register(phase Phase, scene Scene) {
	sm.scenes[phase] = scene
}

// Sync activates the scene registered for phase.
// If no scene is registered for phase, the current scene stays active.
func (sm *SceneManager) Sync(phase Phase) {
	if phase == sm.currentPhase {
		return
	}

	scene, ok := sm.scenes[phase]
	if !ok {
		log.Printf("[SceneManager] Warning: No scene registered for phase %s", phase)
		return
	}

	if scene != sm.currentScene {
		log.Printf("[SceneManager] Switching scene: %s -> %s", sm.currentPhase, phase)
	}
	sm.currentPhase = phase
	sm.SwitchTo(scene)
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
