package gamedata

import (
	"errors"
	"math/rand"
)

// UnitRegistry holds loaded unit definitions and provides spawning utilities.
type UnitRegistry struct {
	units       []UnitDef
	byID        map[string]*UnitDef
	enemies     []*UnitDef
	totalWeight int
}

// NewUnitRegistry creates a registry from loaded unit definitions.
func NewUnitRegistry(units []UnitDef) *UnitRegistry {
	r := &UnitRegistry{
		units: units,
		byID:  make(map[string]*UnitDef, len(units)),
	}
	for i := range units {
		def := &units[i]
		r.byID[def.ID] = def
		if def.Enemy && def.SpawnWeight > 0 {
			r.enemies = append(r.enemies, def)
			r.totalWeight += def.SpawnWeight
		}
	}
	return r
}

// LoadUnitRegistry loads and creates a registry from the embedded units.json.
func LoadUnitRegistry() (*UnitRegistry, error) {
	units, err := LoadUnits()
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, errors.New("no units loaded from units.json")
	}
	return NewUnitRegistry(units), nil
}

// MustLoadUnitRegistry loads a registry, panicking on error.
func MustLoadUnitRegistry() *UnitRegistry {
	registry, err := LoadUnitRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random enemy definition using weighted probability.
// It draws exactly one float from rng so encounter layouts replay per seed.
func (r *UnitRegistry) SpawnRandom(rng *rand.Rand) *UnitDef {
	if r.totalWeight <= 0 {
		return nil
	}

	roll := int(rng.Float64() * float64(r.totalWeight))

	cumulative := 0
	for _, def := range r.enemies {
		cumulative += def.SpawnWeight
		if roll < cumulative {
			return def
		}
	}
	return r.enemies[len(r.enemies)-1]
}

// GetByID returns the unit definition with the given ID, or nil if not found.
func (r *UnitRegistry) GetByID(id string) *UnitDef {
	return r.byID[id]
}

// Enemies returns the definitions eligible for enemy spawning.
func (r *UnitRegistry) Enemies() []*UnitDef {
	return r.enemies
}

// All returns all unit definitions.
func (r *UnitRegistry) All() []UnitDef {
	return r.units
}

// Count returns the number of unit types in the registry.
func (r *UnitRegistry) Count() int {
	return len(r.units)
}

// =============================================================================
// ActionDefRegistry
// =============================================================================

// ActionDefRegistry holds loaded action definitions keyed by ID.
type ActionDefRegistry struct {
	actions map[string]*ActionDef
	all     []ActionDef
}

// NewActionDefRegistry creates a registry from loaded action definitions.
func NewActionDefRegistry(actions []ActionDef) *ActionDefRegistry {
	registry := &ActionDefRegistry{
		actions: make(map[string]*ActionDef, len(actions)),
		all:     actions,
	}
	for i := range actions {
		registry.actions[actions[i].ID] = &actions[i]
	}
	return registry
}

// LoadActionDefRegistry loads and creates a registry from the embedded actions.json.
func LoadActionDefRegistry() (*ActionDefRegistry, error) {
	actions, err := LoadActions()
	if err != nil {
		return nil, err
	}
	if len(actions) == 0 {
		return nil, errors.New("no actions loaded from actions.json")
	}
	return NewActionDefRegistry(actions), nil
}

// MustLoadActionDefRegistry loads a registry, panicking on error.
func MustLoadActionDefRegistry() *ActionDefRegistry {
	registry, err := LoadActionDefRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the action definition with the given ID, or nil if not found.
func (r *ActionDefRegistry) GetByID(id string) *ActionDef {
	return r.actions[id]
}

// All returns all action definitions.
func (r *ActionDefRegistry) All() []ActionDef {
	return r.all
}

// Count returns the number of actions in the registry.
func (r *ActionDefRegistry) Count() int {
	return len(r.all)
}
