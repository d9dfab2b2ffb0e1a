// Package spawn places generated enemy units on the right half of the battlefield.
package spawn

import (
	"context"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/troupe/internal/battle"
	"github.com/samdwyer/troupe/internal/entity"
	"github.com/samdwyer/troupe/internal/geom"
	"github.com/samdwyer/troupe/internal/telemetry"
)

// DefaultEnemyCount is the number of enemies placed per encounter.
const DefaultEnemyCount = 2

// Placement records where a generated unit was put.
type Placement struct {
	UnitID uuid.UUID
	Pos    geom.Vec2
}

// Positions draws n positions on the enemy half of a w×h pixel field.
// x falls in [w/2, w) and y in [0, h). Overlaps are allowed.
func Positions(rng *rand.Rand, w, h, n int) []geom.Vec2 {
	half := float64(w) / 2
	positions := make([]geom.Vec2, 0, n)
	for i := 0; i < n; i++ {
		x := half + rng.Float64()*half
		y := rng.Float64() * float64(h)
		positions = append(positions, geom.Vec2{X: x, Y: y})
	}
	return positions
}

// Generate creates n enemy units in troupe and registers them on field.
// Positions are drawn before the units so a seed always yields the same layout.
func Generate(ctx context.Context, field *battle.Field, troupe *entity.Troupe, rng *rand.Rand, n int) []Placement {
	_, span := telemetry.Tracer("spawn").Start(ctx, "enemy.spawn")
	defer span.End()

	w, h := field.Terrain.PixelSize()
	positions := Positions(rng, w, h, n)
	ids := troupe.GenerateUnits(n, rng)

	placements := make([]Placement, 0, n)
	for i, id := range ids {
		u := troupe.Unit(id)
		u.Pos = positions[i]
		field.AddUnit(u)
		placements = append(placements, Placement{UnitID: id, Pos: u.Pos})
		log.Printf("Spawned %s at (%.0f, %.0f)", u.GetName(), u.Pos.X, u.Pos.Y)
	}

	span.SetAttributes(
		attribute.Int("spawn.count", len(placements)),
		attribute.Int("spawn.field_width", w),
		attribute.Int("spawn.field_height", h),
	)
	return placements
}
