package ui

import (
	"math"

	"github.com/samdwyer/troupe/internal/battle"
	"github.com/samdwyer/troupe/internal/geom"
)

const (
	cardSpacing = 8 // Cells between card centres
	cardLift    = 1 // Rows a card moves up when selected or down while aiming
)

// WorldToCell maps a world position to a terminal cell through the camera.
// One cell covers one tile.
func WorldToCell(cam *battle.Camera, pos geom.Vec2, tileSize int) (int, int) {
	p := cam.RenderOffset(pos)
	ts := float64(tileSize)
	return int(math.Floor(p.X / ts)), int(math.Floor(p.Y / ts))
}

// CardSlot is where one card of the hand strip is drawn.
type CardSlot struct {
	X, Y int // Centre cell
}

// CardSlots lays out n cards centred on a screen width columns wide, on baseRow.
// The selected card sits one row higher; while aiming the others drop one row.
func CardSlots(n, selected int, aiming bool, width, baseRow int) []CardSlot {
	slots := make([]CardSlot, n)
	start := width/2 - (n-1)*cardSpacing/2
	for i := range slots {
		y := baseRow
		switch {
		case i == selected:
			y -= cardLift
		case aiming:
			y += cardLift
		}
		slots[i] = CardSlot{X: start + i*cardSpacing, Y: y}
	}
	return slots
}

// terrainPos returns the world position of a tile's top-left corner.
func terrainPos(x, y, tileSize int) geom.Vec2 {
	return geom.Vec2{X: float64(x * tileSize), Y: float64(y * tileSize)}
}
