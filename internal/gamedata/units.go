package gamedata

import "github.com/gdamore/tcell/v2"

// UnitDef defines a combatant type loaded from JSON.
type UnitDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "spearman")
	Name        string `json:"name"`        // Display name
	Glyph       string `json:"glyph"`       // Single character for rendering
	Color       string `json:"color"`       // Hex color code
	Tier        int    `json:"tier"`        // Leadership cost when deployed
	HP          int    `json:"hp"`          // Base hit points
	Attack      int    `json:"attack"`      // Base attack power
	Defense     int    `json:"defense"`     // Base defense value
	Enemy       bool   `json:"enemy"`       // Only fielded by the enemy side
	SpawnWeight int    `json:"spawnWeight"` // Relative enemy spawn frequency
}

// GlyphRune returns the glyph as a rune for rendering.
func (u *UnitDef) GlyphRune() rune {
	if len(u.Glyph) == 0 {
		return '?'
	}
	return rune(u.Glyph[0])
}

// TCellColor returns the unit color, white when the definition is malformed.
func (u *UnitDef) TCellColor() tcell.Color {
	return colorOr(u.Color, tcell.ColorWhite)
}

// UnitsFile represents the structure of units.json.
type UnitsFile struct {
	Units []UnitDef `json:"units"`
}

// LoadUnits loads unit definitions from the embedded units.json file.
func LoadUnits() ([]UnitDef, error) {
	file, err := Load[UnitsFile]("units.json")
	if err != nil {
		return nil, err
	}
	return file.Units, nil
}
