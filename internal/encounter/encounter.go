// Package encounter runs the per-frame phase machine of a combat encounter:
// deploying units from the hand, aiming and using actions, and watching them resolve.
package encounter

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/looplab/fsm"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/troupe/internal/battle"
	"github.com/samdwyer/troupe/internal/combat"
	"github.com/samdwyer/troupe/internal/entity"
	"github.com/samdwyer/troupe/internal/geom"
	"github.com/samdwyer/troupe/internal/hand"
	"github.com/samdwyer/troupe/internal/input"
	"github.com/samdwyer/troupe/internal/scene"
	"github.com/samdwyer/troupe/internal/spawn"
	"github.com/samdwyer/troupe/internal/telemetry"
)

// DefaultCursorSpeed is the free-aim cursor speed in world pixels per second.
const DefaultCursorSpeed = 75.0

// ActionPhaseStarter begins the action phase, typically by dealing action cards into h.
type ActionPhaseStarter interface {
	StartActionPhase(ctx context.Context, h *hand.Hand)
}

// Observer is told about resolved plays. Used for sound and logging hooks.
type Observer interface {
	UnitDeployed(u *entity.Unit)
	ActionUsed(kind combat.ActionKind, target geom.Vec2, results []combat.EffectResult)
}

// Deps are the collaborators an encounter works on.
type Deps struct {
	Hand       *hand.Hand
	Leadership *hand.Leadership
	Field      *battle.Field
	Enemies    *entity.Troupe
	Actions    *combat.Registry
	Rng        *rand.Rand
	Camera     *battle.Camera
	Scenes     scene.Requester
	Starter    ActionPhaseStarter
	Observer   Observer // Optional

	EnemyCount  int
	CursorSpeed float64 // Zero means DefaultCursorSpeed
}

// Encounter owns the phase, the selected column and the free-aim cursor.
type Encounter struct {
	deps    Deps
	fsm     *fsm.FSM
	col     int
	cursor  geom.Vec2
	pending combat.Action
	started bool
}

// New creates an encounter in the unit choose phase. Start must run before Update.
func New(deps Deps) *Encounter {
	if deps.CursorSpeed == 0 {
		deps.CursorSpeed = DefaultCursorSpeed
	}
	e := &Encounter{deps: deps}
	e.fsm = fsm.NewFSM(
		UnitChooseCard.String(),
		phaseEvents(),
		fsm.Callbacks{
			"enter_" + UnitSelectTarget.String():       e.enterTargeting,
			"enter_" + ActionSelectTargetFree.String(): e.enterTargeting,
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				log.Printf("Combat phase %s -> %s", ev.Src, ev.Dst)
			},
		},
	)
	return e
}

func (e *Encounter) enterTargeting(context.Context, *fsm.Event) {
	e.cursor = e.deps.Field.Terrain.PixelCenter()
}

// Start places the enemy side and opens the encounter for input.
func (e *Encounter) Start(ctx context.Context) []spawn.Placement {
	ctx, span := telemetry.Tracer("encounter").Start(ctx, "encounter.start")
	defer span.End()

	placements := spawn.Generate(ctx, e.deps.Field, e.deps.Enemies, e.deps.Rng, e.deps.EnemyCount)
	e.started = true
	e.col = 0

	if e.deps.Hand.Len() == 0 {
		e.fire(ctx, evFinishDeployment)
	}

	span.SetAttributes(
		attribute.Int("encounter.enemies", len(placements)),
		attribute.Int("encounter.hand_size", e.deps.Hand.Len()),
		attribute.Int("encounter.leadership", e.deps.Leadership.Capacity()),
	)
	return placements
}

// Reset returns the encounter to its initial phase.
func (e *Encounter) Reset() {
	e.fsm.SetState(UnitChooseCard.String())
	e.col = 0
	e.cursor = geom.Vec2{}
	e.pending = nil
	e.started = false
}

// Update advances the encounter by one frame.
func (e *Encounter) Update(ctx context.Context, dt float64, in *input.Snapshot) {
	if !e.started {
		panic("encounter: Update before Start")
	}

	focus, ok := e.deps.Field.TeamCenter(entity.TeamPlayer)
	e.deps.Camera.Follow(dt, focus, ok)

	// Each edge is read once per frame; select wins over cancel.
	sel := in.Consume(input.Select)
	cancel := in.Consume(input.Cancel) && !sel
	left := in.Consume(input.Left)
	right := in.Consume(input.Right)

	switch e.Phase() {
	case UnitChooseCard:
		e.cycle(left, right)
		if sel {
			e.pickUnit(ctx)
		}
	case ActionChooseCard:
		e.cycle(left, right)
		if sel {
			e.pickAction(ctx)
		} else if cancel {
			e.fire(ctx, evEndActions)
		}
	case UnitSelectTarget:
		e.moveCursor(dt, in)
		if sel {
			e.deploy(ctx)
		} else if cancel {
			e.fire(ctx, evBack)
		}
	case ActionSelectTargetFree:
		e.moveCursor(dt, in)
		if sel {
			e.useAction(ctx)
		} else if cancel {
			e.pending = nil
			e.fire(ctx, evBack)
		}
	case Watch:
		if cancel {
			e.fire(ctx, evCommand)
			e.deps.Starter.StartActionPhase(ctx, e.deps.Hand)
			e.col = 0
		}
	}

	if in.Consume(input.ViewTroupe) {
		e.deps.Scenes.RequestScene(scene.ViewTroupe)
	}
}

func (e *Encounter) cycle(left, right bool) {
	h := e.deps.Hand
	if h.Len() == 0 {
		return
	}
	if left {
		e.col = h.Prev(e.col)
	}
	if right {
		e.col = h.Next(e.col)
	}
}

func (e *Encounter) pickUnit(ctx context.Context) {
	h := e.deps.Hand
	if h.Len() == 0 {
		return
	}
	card := h.At(e.col)
	if card.Kind != hand.CardUnit || !e.deps.Leadership.CanAfford(card.Cost()) {
		return
	}
	e.fire(ctx, evPickUnit)
}

func (e *Encounter) pickAction(ctx context.Context) {
	h := e.deps.Hand
	if h.Len() == 0 {
		return
	}
	card := h.At(e.col)
	if card.Kind != hand.CardAction {
		return
	}
	action := e.deps.Actions.New(card.Action)
	switch action.TargetMode() {
	case combat.TargetFree:
		e.pending = action
		e.fire(ctx, evPickAction)
	}
}

func (e *Encounter) moveCursor(dt float64, in *input.Snapshot) {
	var dir geom.Vec2
	if in.Pressed(input.HoldLeft) {
		dir.X--
	}
	if in.Pressed(input.HoldRight) {
		dir.X++
	}
	if in.Pressed(input.HoldUp) {
		dir.Y--
	}
	if in.Pressed(input.HoldDown) {
		dir.Y++
	}
	e.cursor = geom.Offset(e.cursor, dir, dt*e.deps.CursorSpeed)
}

func (e *Encounter) deploy(ctx context.Context) {
	_, span := telemetry.Tracer("encounter").Start(ctx, "unit.deploy")
	defer span.End()

	h := e.deps.Hand
	card := h.At(e.col)
	u := card.Unit
	u.Pos = e.cursor
	e.deps.Leadership.Spend(u.Tier())
	e.deps.Field.AddUnit(u)
	h.RemoveAt(e.col)
	e.col = h.Clamp(e.col)

	log.Printf("Placed %s (%s) at (%.0f, %.0f)", u.GetName(), u.ID, u.Pos.X, u.Pos.Y)
	span.SetAttributes(
		attribute.String("unit.type", u.Type()),
		attribute.Int("unit.tier", u.Tier()),
		attribute.Int("leadership.remaining", e.deps.Leadership.Remaining()),
	)
	if e.deps.Observer != nil {
		e.deps.Observer.UnitDeployed(u)
	}

	if h.Len() == 0 {
		e.fire(ctx, evFinishDeployment)
		return
	}
	e.fire(ctx, evPlace)
}

func (e *Encounter) useAction(ctx context.Context) {
	ctx, span := telemetry.Tracer("encounter").Start(ctx, "action.use")
	defer span.End()

	h := e.deps.Hand
	card := h.At(e.col)
	results := e.pending.Use(ctx, e.cursor)
	e.pending = nil
	h.RemoveAt(e.col)
	e.col = h.Clamp(e.col)

	log.Printf("Used %s at (%.0f, %.0f) on %d targets", card.Action, e.cursor.X, e.cursor.Y, len(results))
	span.SetAttributes(
		attribute.String("action", card.Action.String()),
		attribute.Int("action.targets", len(results)),
	)
	if e.deps.Observer != nil {
		e.deps.Observer.ActionUsed(card.Action, e.cursor, results)
	}

	e.fire(ctx, evUse)
	if h.Len() == 0 {
		e.fire(ctx, evEndActions)
	}
}

// fire runs an FSM event. Callers check guards first, so a refused event is a bug.
func (e *Encounter) fire(ctx context.Context, event string) {
	if err := e.fsm.Event(ctx, event); err != nil {
		panic(fmt.Sprintf("encounter: %s from %s: %v", event, e.fsm.Current(), err))
	}
}

// Phase returns the current phase.
func (e *Encounter) Phase() Phase {
	return parsePhase(e.fsm.Current())
}

// Column returns the selected hand index.
func (e *Encounter) Column() int { return e.col }

// Cursor returns the free-aim cursor in world pixels.
func (e *Encounter) Cursor() geom.Vec2 { return e.cursor }

// Hand returns the hand being played.
func (e *Encounter) Hand() *hand.Hand { return e.deps.Hand }

// Leadership returns the deployment budget.
func (e *Encounter) Leadership() *hand.Leadership { return e.deps.Leadership }

// Field returns the battlefield.
func (e *Encounter) Field() *battle.Field { return e.deps.Field }

// Camera returns the camera following the player's units.
func (e *Encounter) Camera() *battle.Camera { return e.deps.Camera }

// Status returns the instruction line for the current phase.
func (e *Encounter) Status() string {
	switch e.Phase() {
	case UnitChooseCard:
		h := e.deps.Hand
		if h.Len() > 0 {
			if c := h.At(e.col); !e.deps.Leadership.CanAfford(c.Cost()) {
				return fmt.Sprintf("not enough leadership for %s", c.Label)
			}
		}
		return "select a unit to place"
	case UnitSelectTarget, ActionSelectTargetFree:
		return "select a target location"
	case ActionChooseCard:
		return "select an action or press X to watch"
	case Watch:
		return "press X to use an action"
	default:
		return ""
	}
}
