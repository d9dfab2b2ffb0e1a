package combat

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/troupe/internal/battle"
	"github.com/samdwyer/troupe/internal/entity"
	"github.com/samdwyer/troupe/internal/gamedata"
	"github.com/samdwyer/troupe/internal/geom"
	"github.com/samdwyer/troupe/internal/telemetry"
)

// TargetMode tells the phase machine how an action is aimed.
type TargetMode int

const (
	// TargetFree aims with the free cursor at any world position.
	TargetFree TargetMode = iota
)

// String returns the target mode name.
func (m TargetMode) String() string {
	switch m {
	case TargetFree:
		return "free"
	default:
		return "unknown"
	}
}

// ActionKind identifies one of the built-in action variants.
type ActionKind int

const (
	ActionFireball ActionKind = iota
	ActionRally
	ActionQuake
)

var actionKindNames = map[ActionKind]string{
	ActionFireball: "fireball",
	ActionRally:    "rally",
	ActionQuake:    "quake",
}

// String returns the action kind's data ID.
func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseActionKind maps a data ID to its action kind.
func ParseActionKind(id string) (ActionKind, error) {
	for kind, name := range actionKindNames {
		if name == id {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", id)
}

// Action is a constructed, ready-to-use action.
type Action interface {
	TargetMode() TargetMode
	// Use applies the action at target. It is called once per consumed card.
	Use(ctx context.Context, target geom.Vec2) []EffectResult
}

// Factory builds an action instance.
type Factory func() Action

// Registry maps action kinds to their factories.
type Registry struct {
	factories map[ActionKind]Factory
}

// NewRegistry registers every built-in action against the field.
// Each kind needs a matching definition in defs.
func NewRegistry(field *battle.Field, defs *gamedata.ActionDefRegistry) (*Registry, error) {
	r := &Registry{factories: make(map[ActionKind]Factory)}

	for kind := range actionKindNames {
		def := defs.GetByID(kind.String())
		if def == nil {
			return nil, fmt.Errorf("no definition for action %q", kind)
		}
		if def.TargetMode != gamedata.TargetFree {
			return nil, fmt.Errorf("action %q: unsupported target mode %q", kind, def.TargetMode)
		}
		r.Register(kind, builtin(kind, def, field))
	}
	return r, nil
}

// Register installs or replaces the factory for kind.
func (r *Registry) Register(kind ActionKind, f Factory) {
	r.factories[kind] = f
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind ActionKind) bool {
	_, ok := r.factories[kind]
	return ok
}

// New constructs an action. An unregistered kind is a programming error.
func (r *Registry) New(kind ActionKind) Action {
	f, ok := r.factories[kind]
	if !ok {
		panic(fmt.Sprintf("combat: action %s not registered", kind))
	}
	return f()
}

func builtin(kind ActionKind, def *gamedata.ActionDef, field *battle.Field) Factory {
	switch kind {
	case ActionFireball:
		return func() Action { return &fireball{areaEffect{def: def, field: field}} }
	case ActionRally:
		return func() Action { return &rally{areaEffect{def: def, field: field}} }
	case ActionQuake:
		return func() Action { return &quake{areaEffect{def: def, field: field}} }
	default:
		panic(fmt.Sprintf("combat: no built-in action %s", kind))
	}
}

// areaEffect resolves its definition against field units around the target.
type areaEffect struct {
	def      *gamedata.ActionDef
	field    *battle.Field
	resolver EffectResolver
}

func (a areaEffect) TargetMode() TargetMode { return TargetFree }

func (a areaEffect) apply(ctx context.Context, target geom.Vec2, reach func(*entity.Unit) bool) []EffectResult {
	_, span := telemetry.Tracer("combat").Start(ctx, "action.resolve")
	defer span.End()

	var results []EffectResult
	damage, healing := 0, 0
	for _, u := range a.field.UnitsWithin(target, a.def.Radius) {
		if !u.IsAlive() || !reach(u) {
			continue
		}
		res := a.resolver.Resolve(a.def, u)
		damage += res.Damage
		healing += res.Healing
		results = append(results, res)
	}

	span.SetAttributes(
		attribute.String("action", a.def.ID),
		attribute.Int("targets", len(results)),
		attribute.Int("damage", damage),
		attribute.Int("healing", healing),
	)
	return results
}

// fireball burns enemy units in the blast.
type fireball struct{ areaEffect }

func (f *fireball) Use(ctx context.Context, target geom.Vec2) []EffectResult {
	return f.apply(ctx, target, func(u *entity.Unit) bool { return u.Team == entity.TeamEnemy })
}

// rally heals the player's units in range.
type rally struct{ areaEffect }

func (r *rally) Use(ctx context.Context, target geom.Vec2) []EffectResult {
	return r.apply(ctx, target, func(u *entity.Unit) bool { return u.Team == entity.TeamPlayer })
}

// quake shakes everything in range, friend or foe.
type quake struct{ areaEffect }

func (q *quake) Use(ctx context.Context, target geom.Vec2) []EffectResult {
	return q.apply(ctx, target, func(*entity.Unit) bool { return true })
}
