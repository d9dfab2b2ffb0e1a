package gamedata

// TargetMode represents how an action picks its target.
type TargetMode string

const (
	// TargetFree aims at any world position with the free cursor.
	TargetFree TargetMode = "free"
)

// EffectType represents what an action does to the units it reaches.
type EffectType string

const (
	EffectDamage EffectType = "damage"
	EffectHeal   EffectType = "heal"
)

// DamageType represents how damage is calculated.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagical  DamageType = "magical"
	DamageTrue     DamageType = "true"
)

// ActionDef defines a playable action card loaded from JSON.
type ActionDef struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Glyph      string     `json:"glyph"`
	TargetMode TargetMode `json:"targetMode"`
	EffectType EffectType `json:"effectType"`
	DamageType DamageType `json:"damageType,omitempty"`
	Power      int        `json:"power"`
	Radius     float64    `json:"radius"` // World pixels around the target
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *ActionDef) GlyphRune() rune {
	if len(a.Glyph) == 0 {
		return '*'
	}
	return rune(a.Glyph[0])
}

// ActionsFile represents the structure of actions.json.
type ActionsFile struct {
	Actions []ActionDef `json:"actions"`
}

// LoadActions loads action definitions from the embedded actions.json file.
func LoadActions() ([]ActionDef, error) {
	file, err := Load[ActionsFile]("actions.json")
	if err != nil {
		return nil, err
	}
	return file.Actions, nil
}
