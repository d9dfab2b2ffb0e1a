package entity

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/samdwyer/troupe/internal/gamedata"
)

// Troupe owns one side's units in recruitment order.
type Troupe struct {
	Team     Team
	registry *gamedata.UnitRegistry
	order    []uuid.UUID
	units    map[uuid.UUID]*Unit
}

// NewTroupe creates an empty troupe drawing definitions from registry.
func NewTroupe(team Team, registry *gamedata.UnitRegistry) *Troupe {
	return &Troupe{
		Team:     team,
		registry: registry,
		units:    make(map[uuid.UUID]*Unit),
	}
}

// AddUnit recruits a unit of the given type.
func (t *Troupe) AddUnit(typeID string) (*Unit, error) {
	def := t.registry.GetByID(typeID)
	if def == nil {
		return nil, fmt.Errorf("unknown unit type %q", typeID)
	}
	return t.add(def), nil
}

// GenerateUnits recruits n enemy units by weighted draw and returns their ids
// in generation order.
func (t *Troupe) GenerateUnits(n int, rng *rand.Rand) []uuid.UUID {
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		def := t.registry.SpawnRandom(rng)
		if def == nil {
			panic("entity: no spawnable unit definitions")
		}
		ids = append(ids, t.add(def).ID)
	}
	return ids
}

func (t *Troupe) add(def *gamedata.UnitDef) *Unit {
	u := NewUnit(def, t.Team)
	t.units[u.ID] = u
	t.order = append(t.order, u.ID)
	return u
}

// Unit returns the unit with the given id, or nil.
func (t *Troupe) Unit(id uuid.UUID) *Unit {
	return t.units[id]
}

// Units returns the troupe's units in recruitment order.
func (t *Troupe) Units() []*Unit {
	units := make([]*Unit, 0, len(t.order))
	for _, id := range t.order {
		units = append(units, t.units[id])
	}
	return units
}

// Len returns the number of units in the troupe.
func (t *Troupe) Len() int {
	return len(t.order)
}

// RemoveDefeated drops units with no HP left and returns how many were removed.
func (t *Troupe) RemoveDefeated() int {
	kept := t.order[:0]
	removed := 0
	for _, id := range t.order {
		if t.units[id].IsAlive() {
			kept = append(kept, id)
			continue
		}
		delete(t.units, id)
		removed++
	}
	t.order = kept
	return removed
}

// Clear removes every unit.
func (t *Troupe) Clear() {
	t.order = nil
	t.units = make(map[uuid.UUID]*Unit)
}
