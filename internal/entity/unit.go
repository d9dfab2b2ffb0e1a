// Package entity provides combat units and the troupes that own them.
package entity

import (
	"github.com/google/uuid"

	"github.com/samdwyer/troupe/internal/gamedata"
	"github.com/samdwyer/troupe/internal/geom"
)

// Team identifies which side a unit fights for.
type Team int

const (
	TeamPlayer Team = iota
	TeamEnemy
)

// String returns the team name.
func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Unit represents a single combat participant.
type Unit struct {
	ID   uuid.UUID
	Def  *gamedata.UnitDef
	Team Team
	Pos  geom.Vec2 // World position in pixels

	HP, MaxHP int
	Attack    int
	Defense   int
}

// NewUnit creates a unit from a data-driven definition.
func NewUnit(def *gamedata.UnitDef, team Team) *Unit {
	return &Unit{
		ID:      uuid.New(),
		Def:     def,
		Team:    team,
		HP:      def.HP,
		MaxHP:   def.HP,
		Attack:  def.Attack,
		Defense: def.Defense,
	}
}

// Type returns the unit's type tag.
func (u *Unit) Type() string { return u.Def.ID }

// Tier returns the leadership cost of deploying the unit.
func (u *Unit) Tier() int { return u.Def.Tier }

// Glyph returns the display symbol.
func (u *Unit) Glyph() rune { return u.Def.GlyphRune() }

// GetName returns the display name.
func (u *Unit) GetName() string { return u.Def.Name }

// IsAlive returns true if the unit has HP remaining.
func (u *Unit) IsAlive() bool { return u.HP > 0 }

// GetHP returns current HP.
func (u *Unit) GetHP() int { return u.HP }

// GetMaxHP returns maximum HP.
func (u *Unit) GetMaxHP() int { return u.MaxHP }

// GetAttack returns attack stat.
func (u *Unit) GetAttack() int { return u.Attack }

// GetDefense returns defense stat.
func (u *Unit) GetDefense() int { return u.Defense }

// TakeDamage reduces HP and returns actual damage taken.
func (u *Unit) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, u.HP)
	u.HP -= actual
	return actual
}

// Heal restores HP and returns actual amount healed.
func (u *Unit) Heal(amount int) int {
	if amount <= 0 || !u.IsAlive() {
		return 0
	}
	actual := min(amount, u.MaxHP-u.HP)
	u.HP += actual
	return actual
}
