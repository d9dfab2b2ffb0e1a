package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/troupe/internal/geom"
	"github.com/samdwyer/troupe/internal/telemetry"
)

const (
	// Default battlefield dimensions in tiles
	DefaultWidth    = 40
	DefaultHeight   = 24
	DefaultTileSize = 8

	maxPatches    = 6
	minPatchSize  = 2
	maxPatchSize  = 5
	patchAttempts = 30
	brushDensity  = 0.06
)

var patchTiles = []Tile{TileRock, TileWater, TileBrush}

// Terrain is the battlefield ground the encounter plays out on.
type Terrain struct {
	Width    int // In tiles
	Height   int // In tiles
	TileSize int // Pixels per tile edge
	Tiles    [][]Tile
	Patches  []Patch
	rng      *rand.Rand
}

// NewTerrain creates open grassland of the given size.
func NewTerrain(width, height, tileSize int, rng *rand.Rand) *Terrain {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileGrass
		}
	}

	return &Terrain{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		Tiles:    tiles,
		rng:      rng,
	}
}

// PixelSize returns the battlefield size in world pixels.
func (t *Terrain) PixelSize() (int, int) {
	return t.Width * t.TileSize, t.Height * t.TileSize
}

// PixelCenter returns the battlefield center, using integer halves of the pixel size.
func (t *Terrain) PixelCenter() geom.Vec2 {
	w, h := t.PixelSize()
	return geom.Vec2{X: float64(w / 2), Y: float64(h / 2)}
}

// Generate scatters patches and brush over the field.
func (t *Terrain) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "terrain.generate")
	defer span.End()

	startTime := time.Now()

	for attempt := 0; attempt < patchAttempts && len(t.Patches) < maxPatches; attempt++ {
		w := minPatchSize + t.rng.Intn(maxPatchSize-minPatchSize+1)
		h := minPatchSize + t.rng.Intn(maxPatchSize-minPatchSize+1)
		if w >= t.Width || h >= t.Height {
			continue
		}
		p := Patch{
			X:      t.rng.Intn(t.Width - w),
			Y:      t.rng.Intn(t.Height - h),
			Width:  w,
			Height: h,
			Tile:   patchTiles[t.rng.Intn(len(patchTiles))],
		}
		if t.overlaps(p) {
			continue
		}
		t.Patches = append(t.Patches, p)
		t.fill(p)
	}

	for y := range t.Tiles {
		for x := range t.Tiles[y] {
			if t.Tiles[y][x] == TileGrass && t.rng.Float64() < brushDensity {
				t.Tiles[y][x] = TileBrush
			}
		}
	}

	span.SetAttributes(
		attribute.Int("terrain.width", t.Width),
		attribute.Int("terrain.height", t.Height),
		attribute.Int("terrain.patch_count", len(t.Patches)),
		attribute.Int64("terrain.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

func (t *Terrain) overlaps(p Patch) bool {
	for _, other := range t.Patches {
		if p.Intersects(other) {
			return true
		}
	}
	return false
}

func (t *Terrain) fill(p Patch) {
	for y := p.Y; y < p.Y+p.Height; y++ {
		for x := p.X; x < p.X+p.Width; x++ {
			t.Tiles[y][x] = p.Tile
		}
	}
}

// GetTile returns the tile at the given tile coordinates.
// Out-of-bounds coordinates read as grass.
func (t *Terrain) GetTile(x, y int) Tile {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return TileGrass
	}
	return t.Tiles[y][x]
}

// TileAt returns the tile under a world pixel position.
func (t *Terrain) TileAt(pos geom.Vec2) Tile {
	if pos.X < 0 || pos.Y < 0 {
		return TileGrass
	}
	return t.GetTile(int(pos.X)/t.TileSize, int(pos.Y)/t.TileSize)
}
