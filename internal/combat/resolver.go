// Package combat provides the action registry and effect resolution for encounters.
package combat

import (
	"github.com/samdwyer/troupe/internal/gamedata"
)

// Combatant is the interface for any unit an action can reach.
type Combatant interface {
	GetName() string
	IsAlive() bool

	GetHP() int
	GetMaxHP() int
	GetAttack() int
	GetDefense() int

	TakeDamage(amount int) int // Returns actual damage taken
	Heal(amount int) int       // Returns actual amount healed
}

// EffectResult contains the outcome of applying an action to one target.
type EffectResult struct {
	Target  Combatant
	Damage  int
	Healing int
}

// EffectResolver calculates and applies action effects.
type EffectResolver struct{}

// Resolve applies an action definition to a single target.
func (r EffectResolver) Resolve(def *gamedata.ActionDef, target Combatant) EffectResult {
	switch def.EffectType {
	case gamedata.EffectDamage:
		return EffectResult{Target: target, Damage: target.TakeDamage(r.CalculateDamage(def, target))}
	case gamedata.EffectHeal:
		return EffectResult{Target: target, Healing: target.Heal(r.CalculateHealing(def))}
	default:
		return EffectResult{Target: target}
	}
}

// CalculateDamage calculates damage without applying it (for previews).
func (r EffectResolver) CalculateDamage(def *gamedata.ActionDef, target Combatant) int {
	var damage int
	switch def.DamageType {
	case gamedata.DamageTrue:
		// Unmitigated
		return def.Power
	case gamedata.DamageMagical:
		damage = def.Power
	default:
		damage = def.Power - target.GetDefense()
	}
	if damage < 1 {
		damage = 1
	}
	return damage
}

// CalculateHealing calculates healing without applying it.
func (r EffectResolver) CalculateHealing(def *gamedata.ActionDef) int {
	if def.Power < 1 {
		return 1
	}
	return def.Power
}
