// Package scene defines the contract between scenes and the game that switches them.
package scene

import (
	"context"

	"github.com/samdwyer/troupe/internal/input"
)

// Type identifies a scene.
type Type int

const (
	Combat Type = iota
	PostCombat
	ViewTroupe
)

// String returns the scene name.
func (t Type) String() string {
	switch t {
	case Combat:
		return "combat"
	case PostCombat:
		return "post_combat"
	case ViewTroupe:
		return "view_troupe"
	default:
		return "unknown"
	}
}

// Requester accepts requests to change the active scene.
// The switch happens after the current frame step returns.
type Requester interface {
	RequestScene(Type)
}

// Scene is stepped once per frame while active.
type Scene interface {
	Update(ctx context.Context, dt float64, in *input.Snapshot)
}

// Resetter is implemented by scenes that must be reset when they are left.
type Resetter interface {
	Reset()
}

// Outcome is how an encounter ended.
type Outcome int

const (
	Victory Outcome = iota
	Defeat
)

func (o Outcome) String() string {
	switch o {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// ResetIfSupported resets s when it implements Resetter and reports whether it did.
func ResetIfSupported(s Scene) bool {
	r, ok := s.(Resetter)
	if ok {
		r.Reset()
	}
	return ok
}
