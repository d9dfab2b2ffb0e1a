package world

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samdwyer/troupe/internal/geom"
)

func TestTerrainReproducibility(t *testing.T) {
	seed := int64(12345)

	t1 := NewTerrain(DefaultWidth, DefaultHeight, DefaultTileSize, rand.New(rand.NewSource(seed)))
	t2 := NewTerrain(DefaultWidth, DefaultHeight, DefaultTileSize, rand.New(rand.NewSource(seed)))

	ctx := context.Background()
	t1.Generate(ctx)
	t2.Generate(ctx)

	assert.Equal(t, t1.Patches, t2.Patches)
	assert.Equal(t, t1.Tiles, t2.Tiles)
}

func TestTerrainPatchesDoNotOverlap(t *testing.T) {
	terrain := NewTerrain(DefaultWidth, DefaultHeight, DefaultTileSize, rand.New(rand.NewSource(7)))
	terrain.Generate(context.Background())

	for i := range terrain.Patches {
		for j := i + 1; j < len(terrain.Patches); j++ {
			assert.False(t, terrain.Patches[i].Intersects(terrain.Patches[j]), "patches %d and %d overlap", i, j)
		}
	}
}

func TestTerrainPixelSize(t *testing.T) {
	terrain := NewTerrain(40, 24, 8, rand.New(rand.NewSource(1)))

	w, h := terrain.PixelSize()
	assert.Equal(t, 320, w)
	assert.Equal(t, 192, h)
	assert.Equal(t, geom.Vec2{X: 160, Y: 96}, terrain.PixelCenter())

	// integer halves
	odd := NewTerrain(3, 3, 1, rand.New(rand.NewSource(1)))
	assert.Equal(t, geom.Vec2{X: 1, Y: 1}, odd.PixelCenter())
}

func TestTerrainTileAt(t *testing.T) {
	terrain := NewTerrain(4, 4, 8, rand.New(rand.NewSource(1)))
	terrain.Tiles[1][2] = TileRock

	assert.Equal(t, TileRock, terrain.TileAt(geom.Vec2{X: 17, Y: 9}))
	assert.Equal(t, TileGrass, terrain.TileAt(geom.Vec2{X: -5, Y: 3}))
	assert.Equal(t, TileGrass, terrain.GetTile(10, 10))
}

func TestPatchContains(t *testing.T) {
	p := Patch{X: 2, Y: 2, Width: 3, Height: 2}
	assert.True(t, p.Contains(2, 2))
	assert.True(t, p.Contains(4, 3))
	assert.False(t, p.Contains(5, 2))
	assert.False(t, p.Contains(2, 4))
}
