package game

import (
	"context"

	"github.com/samdwyer/troupe/internal/entity"
	"github.com/samdwyer/troupe/internal/input"
	"github.com/samdwyer/troupe/internal/scene"
)

// PostCombatScene shows how the last encounter ended. Select starts the next one.
type PostCombatScene struct {
	scenes  scene.Requester
	players *entity.Troupe
	outcome scene.Outcome
}

// NewPostCombatScene creates the post combat scene.
func NewPostCombatScene(scenes scene.Requester, players *entity.Troupe) *PostCombatScene {
	return &PostCombatScene{scenes: scenes, players: players}
}

// SetOutcome records the result to show.
func (p *PostCombatScene) SetOutcome(o scene.Outcome) {
	p.outcome = o
}

// Outcome returns the recorded result.
func (p *PostCombatScene) Outcome() scene.Outcome {
	return p.outcome
}

// Survivors returns the troupe's units that are still standing.
func (p *PostCombatScene) Survivors() []*entity.Unit {
	var out []*entity.Unit
	for _, u := range p.players.Units() {
		if u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

func (p *PostCombatScene) Update(_ context.Context, _ float64, in *input.Snapshot) {
	if in.Consume(input.Select) {
		p.scenes.RequestScene(scene.Combat)
	}
}

// TroupeScene is an overlay listing the player's troupe.
type TroupeScene struct {
	scenes   scene.Requester
	players  *entity.Troupe
	selected int
}

// NewTroupeScene creates the troupe overlay.
func NewTroupeScene(scenes scene.Requester, players *entity.Troupe) *TroupeScene {
	return &TroupeScene{scenes: scenes, players: players}
}

func (t *TroupeScene) Update(_ context.Context, _ float64, in *input.Snapshot) {
	prev := consumeAny(in, input.Up, input.Left)
	next := consumeAny(in, input.Down, input.Right)
	back := consumeAny(in, input.Cancel, input.ViewTroupe)

	if n := t.players.Len(); n > 0 {
		if prev {
			t.selected = (t.selected - 1 + n) % n
		}
		if next {
			t.selected = (t.selected + 1) % n
		}
	}
	if back {
		t.scenes.RequestScene(scene.Combat)
	}
}

// Reset clears the selection.
func (t *TroupeScene) Reset() {
	t.selected = 0
}

// Units returns the troupe in recruitment order.
func (t *TroupeScene) Units() []*entity.Unit {
	return t.players.Units()
}

// Selected returns the highlighted row.
func (t *TroupeScene) Selected() int {
	if t.selected >= t.players.Len() {
		return 0
	}
	return t.selected
}

// consumeAny consumes every listed action and reports whether any was set.
func consumeAny(in *input.Snapshot, actions ...input.Action) bool {
	hit := false
	for _, a := range actions {
		if in.Consume(a) {
			hit = true
		}
	}
	return hit
}
