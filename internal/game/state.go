// Package game provides the main loop, the scenes and the switching between them.
package game

import (
	"context"
	"fmt"
	"log"

	"github.com/samdwyer/troupe/internal/input"
	"github.com/samdwyer/troupe/internal/scene"
)

// SceneManager owns the registered scenes and applies requested switches between frames.
type SceneManager struct {
	scenes  map[scene.Type]scene.Scene
	current scene.Type
	pending *scene.Type
}

// NewSceneManager creates a manager starting in initial.
func NewSceneManager(initial scene.Type) *SceneManager {
	return &SceneManager{
		scenes:  make(map[scene.Type]scene.Scene),
		current: initial,
	}
}

// Register installs the scene for t.
func (m *SceneManager) Register(t scene.Type, s scene.Scene) {
	m.scenes[t] = s
}

// RequestScene asks for a switch once the current frame step is done.
func (m *SceneManager) RequestScene(t scene.Type) {
	m.pending = &t
}

// Current returns the active scene type.
func (m *SceneManager) Current() scene.Type {
	return m.current
}

// Active returns the active scene.
func (m *SceneManager) Active() scene.Scene {
	s, ok := m.scenes[m.current]
	if !ok {
		panic(fmt.Sprintf("game: no scene registered for %s", m.current))
	}
	return s
}

// Update steps the active scene and applies any requested switch.
// It reports whether the active scene changed, in which case input must be cleared.
func (m *SceneManager) Update(ctx context.Context, dt float64, in *input.Snapshot) bool {
	m.Active().Update(ctx, dt, in)
	return m.apply()
}

func (m *SceneManager) apply() bool {
	if m.pending == nil {
		return false
	}
	next := *m.pending
	m.pending = nil
	if next == m.current {
		return false
	}
	if _, ok := m.scenes[next]; !ok {
		panic(fmt.Sprintf("game: no scene registered for %s", next))
	}

	// Overlays sit on top of the scene they were opened from, which keeps its state.
	if next != scene.ViewTroupe {
		scene.ResetIfSupported(m.Active())
	}
	m.current = next
	log.Printf("Active scene changed to %s", next)
	return true
}
