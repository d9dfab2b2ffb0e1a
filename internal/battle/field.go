// Package battle tracks the units present on the battlefield and the camera following them.
package battle

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/samdwyer/troupe/internal/entity"
	"github.com/samdwyer/troupe/internal/geom"
	"github.com/samdwyer/troupe/internal/world"
)

// Field holds the terrain and every unit currently in combat.
type Field struct {
	Terrain *world.Terrain
	units   []*entity.Unit
	present map[uuid.UUID]bool
}

// NewField creates an empty field over the given terrain.
func NewField(terrain *world.Terrain) *Field {
	return &Field{
		Terrain: terrain,
		present: make(map[uuid.UUID]bool),
	}
}

// AddUnit registers a unit as present in combat.
// Registering the same unit twice is a programming error.
func (f *Field) AddUnit(u *entity.Unit) {
	if f.present[u.ID] {
		panic(fmt.Sprintf("battle: unit %s registered twice", u.ID))
	}
	f.present[u.ID] = true
	f.units = append(f.units, u)
}

// Has reports whether the unit is on the field.
func (f *Field) Has(u *entity.Unit) bool {
	return f.present[u.ID]
}

// Units returns the units of one team in registration order.
func (f *Field) Units(team entity.Team) []*entity.Unit {
	var out []*entity.Unit
	for _, u := range f.units {
		if u.Team == team {
			out = append(out, u)
		}
	}
	return out
}

// All returns every unit on the field.
func (f *Field) All() []*entity.Unit {
	return f.units
}

// Len returns the number of units on the field.
func (f *Field) Len() int {
	return len(f.units)
}

// TeamCenter returns the centroid of a team's units, or false if none are present.
func (f *Field) TeamCenter(team entity.Team) (geom.Vec2, bool) {
	var points []geom.Vec2
	for _, u := range f.units {
		if u.Team == team {
			points = append(points, u.Pos)
		}
	}
	return geom.Centroid(points)
}

// UnitsWithin returns the units whose position lies within radius of center.
func (f *Field) UnitsWithin(center geom.Vec2, radius float64) []*entity.Unit {
	var out []*entity.Unit
	r2 := radius * radius
	for _, u := range f.units {
		if u.Pos.DistSq(center) <= r2 {
			out = append(out, u)
		}
	}
	return out
}

// Alive returns how many units of a team are still standing.
func (f *Field) Alive(team entity.Team) int {
	count := 0
	for _, u := range f.units {
		if u.Team == team && u.IsAlive() {
			count++
		}
	}
	return count
}

// RemoveDefeated takes defeated units off the field and returns them.
func (f *Field) RemoveDefeated() []*entity.Unit {
	var defeated []*entity.Unit
	kept := f.units[:0]
	for _, u := range f.units {
		if u.IsAlive() {
			kept = append(kept, u)
			continue
		}
		delete(f.present, u.ID)
		defeated = append(defeated, u)
	}
	f.units = kept
	return defeated
}

// Clear removes every unit from the field.
func (f *Field) Clear() {
	f.units = nil
	f.present = make(map[uuid.UUID]bool)
}
