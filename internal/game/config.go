package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/troupe/internal/combat"
	"github.com/samdwyer/troupe/internal/gamedata"
)

// Config holds game configuration options, read from TROUPE_* environment variables.
type Config struct {
	// Seed for random number generation. Used for reproducible encounters.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"TROUPE_SEED" envDefault:"0"`

	Leadership  int      `env:"TROUPE_LEADERSHIP"   envDefault:"7"`
	Units       []string `env:"TROUPE_UNITS"        envDefault:"spearman,spearman,archer,knight" envSeparator:","`
	Actions     []string `env:"TROUPE_ACTIONS"      envDefault:"fireball,rally,quake"            envSeparator:","`
	EnemyCount  int      `env:"TROUPE_ENEMY_COUNT"  envDefault:"2"`
	CursorSpeed float64  `env:"TROUPE_CURSOR_SPEED" envDefault:"75"`

	FieldWidth  int `env:"TROUPE_FIELD_WIDTH"  envDefault:"40"` // Tiles
	FieldHeight int `env:"TROUPE_FIELD_HEIGHT" envDefault:"24"` // Tiles
	TileSize    int `env:"TROUPE_TILE_SIZE"    envDefault:"8"`
	ViewWidth   int `env:"TROUPE_VIEW_WIDTH"   envDefault:"320"`
	ViewHeight  int `env:"TROUPE_VIEW_HEIGHT"  envDefault:"180"`
	FPS         int `env:"TROUPE_FPS"          envDefault:"60"`

	Audio   bool   `env:"TROUPE_AUDIO"    envDefault:"true"`
	LogPath string `env:"TROUPE_LOG_PATH" envDefault:".debug/troupe.log"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks sizes and that every configured unit and action exists.
func (c Config) Validate(units *gamedata.UnitRegistry, actions *gamedata.ActionDefRegistry) error {
	var errs []error

	positive := []struct {
		name  string
		value int
	}{
		{"TROUPE_FIELD_WIDTH", c.FieldWidth},
		{"TROUPE_FIELD_HEIGHT", c.FieldHeight},
		{"TROUPE_TILE_SIZE", c.TileSize},
		{"TROUPE_VIEW_WIDTH", c.ViewWidth},
		{"TROUPE_VIEW_HEIGHT", c.ViewHeight},
		{"TROUPE_FPS", c.FPS},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.name, p.value))
		}
	}
	if c.EnemyCount < 0 {
		errs = append(errs, fmt.Errorf("TROUPE_ENEMY_COUNT must not be negative, got %d", c.EnemyCount))
	}
	if c.Leadership < 0 {
		errs = append(errs, fmt.Errorf("TROUPE_LEADERSHIP must not be negative, got %d", c.Leadership))
	}
	if c.CursorSpeed <= 0 {
		errs = append(errs, fmt.Errorf("TROUPE_CURSOR_SPEED must be positive, got %g", c.CursorSpeed))
	}

	total := 0
	for _, id := range c.Units {
		def := units.GetByID(id)
		switch {
		case def == nil:
			errs = append(errs, fmt.Errorf("unknown unit %q", id))
		case def.Enemy:
			errs = append(errs, fmt.Errorf("unit %q is enemy-only", id))
		default:
			total += def.Tier
		}
	}
	// Cancel does not end deployment, so the whole troupe must be deployable.
	if total > c.Leadership {
		errs = append(errs, fmt.Errorf("leadership %d cannot deploy the troupe (total tier %d)", c.Leadership, total))
	}

	for _, id := range c.Actions {
		if _, err := combat.ParseActionKind(id); err != nil {
			errs = append(errs, err)
			continue
		}
		if actions.GetByID(id) == nil {
			errs = append(errs, fmt.Errorf("no definition for action %q", id))
		}
	}

	return errors.Join(errs...)
}

// FrameInterval returns the time between frames.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// RandSeed returns the configured seed, or a time-based one when unset.
func (c Config) RandSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
