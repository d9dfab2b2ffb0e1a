// Package world provides battlefield terrain generation and pixel/tile mapping.
package world

// Tile represents a single terrain tile.
type Tile rune

const (
	// TileGrass is open ground.
	TileGrass Tile = '.'
	// TileBrush is scrub scattered over open ground.
	TileBrush Tile = '"'
	// TileRock is a rocky outcrop.
	TileRock Tile = '^'
	// TileWater is a shallow pool.
	TileWater Tile = '~'
)

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// Patch represents a rectangular region of non-grass terrain, in tiles.
type Patch struct {
	X, Y          int // Top-left corner
	Width, Height int
	Tile          Tile
}

// Contains returns true if the given tile is inside the patch.
func (p Patch) Contains(x, y int) bool {
	return x >= p.X && x < p.X+p.Width && y >= p.Y && y < p.Y+p.Height
}

// Intersects returns true if this patch overlaps with another patch.
func (p Patch) Intersects(other Patch) bool {
	return p.X < other.X+other.Width &&
		p.X+p.Width > other.X &&
		p.Y < other.Y+other.Height &&
		p.Y+p.Height > other.Y
}
