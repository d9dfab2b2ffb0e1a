package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/troupe/internal/audio"
	"github.com/samdwyer/troupe/internal/battle"
	"github.com/samdwyer/troupe/internal/combat"
	"github.com/samdwyer/troupe/internal/encounter"
	"github.com/samdwyer/troupe/internal/entity"
	"github.com/samdwyer/troupe/internal/gamedata"
	"github.com/samdwyer/troupe/internal/hand"
	"github.com/samdwyer/troupe/internal/input"
	"github.com/samdwyer/troupe/internal/scene"
	"github.com/samdwyer/troupe/internal/telemetry"
	"github.com/samdwyer/troupe/internal/world"
)

// Sound is what the combat scene needs from the audio player.
type Sound interface {
	encounter.Observer
	Play(audio.Cue)
}

// CombatScene builds encounters from the player's troupe and watches for their end.
type CombatScene struct {
	cfg        Config
	units      *gamedata.UnitRegistry
	actionDefs *gamedata.ActionDefRegistry
	rng        *rand.Rand
	players    *entity.Troupe
	scenes     scene.Requester
	sound      Sound
	onEnd      func(scene.Outcome)

	enc      *encounter.Encounter
	field    *battle.Field
	enemies  *entity.Troupe
	deployed bool
	frames   int
}

// NewCombatScene creates the combat scene. onEnd receives the outcome of every finished encounter.
func NewCombatScene(cfg Config, units *gamedata.UnitRegistry, actionDefs *gamedata.ActionDefRegistry,
	rng *rand.Rand, players *entity.Troupe, scenes scene.Requester, sound Sound, onEnd func(scene.Outcome)) *CombatScene {
	return &CombatScene{
		cfg:        cfg,
		units:      units,
		actionDefs: actionDefs,
		rng:        rng,
		players:    players,
		scenes:     scenes,
		sound:      sound,
		onEnd:      onEnd,
	}
}

// Begin sets up a fresh encounter and places the enemies.
func (c *CombatScene) Begin(ctx context.Context) {
	if c.players.Len() == 0 {
		c.recruit()
	}

	terrain := world.NewTerrain(c.cfg.FieldWidth, c.cfg.FieldHeight, c.cfg.TileSize, c.rng)
	terrain.Generate(ctx)
	c.field = battle.NewField(terrain)
	c.enemies = entity.NewTroupe(entity.TeamEnemy, c.units)

	actions, err := combat.NewRegistry(c.field, c.actionDefs)
	if err != nil {
		// Definitions are checked by Config.Validate at startup.
		panic(fmt.Sprintf("game: %v", err))
	}

	cards := hand.New()
	for _, u := range c.players.Units() {
		cards.Append(hand.UnitCard(u))
	}

	c.enc = encounter.New(encounter.Deps{
		Hand:        cards,
		Leadership:  hand.NewLeadership(c.cfg.Leadership),
		Field:       c.field,
		Enemies:     c.enemies,
		Actions:     actions,
		Rng:         c.rng,
		Camera:      battle.NewCamera(float64(c.cfg.ViewWidth), float64(c.cfg.ViewHeight)),
		Scenes:      c.scenes,
		Starter:     c,
		Observer:    c.sound,
		EnemyCount:  c.cfg.EnemyCount,
		CursorSpeed: c.cfg.CursorSpeed,
	})
	c.deployed = false
	c.frames = 0
	c.enc.Start(ctx)
}

func (c *CombatScene) recruit() {
	for _, id := range c.cfg.Units {
		if _, err := c.players.AddUnit(id); err != nil {
			panic(fmt.Sprintf("game: %v", err))
		}
	}
	log.Printf("Recruited %d units", c.players.Len())
}

// StartActionPhase deals the configured action deck as a fresh hand.
func (c *CombatScene) StartActionPhase(_ context.Context, h *hand.Hand) {
	h.Clear()
	for _, id := range c.cfg.Actions {
		kind, err := combat.ParseActionKind(id)
		if err != nil {
			panic(fmt.Sprintf("game: %v", err))
		}
		def := c.actionDefs.GetByID(id)
		h.Append(hand.ActionCard(kind, def.Name, def.GlyphRune()))
	}
}

// Update steps the encounter, clears out defeated units and checks for the end of combat.
func (c *CombatScene) Update(ctx context.Context, dt float64, in *input.Snapshot) {
	if c.enc == nil {
		c.Begin(ctx)
	}
	c.frames++
	c.enc.Update(ctx, dt, in)

	if len(c.field.Units(entity.TeamPlayer)) > 0 {
		c.deployed = true
	}
	for _, u := range c.field.RemoveDefeated() {
		log.Printf("%s (%s) was defeated", u.GetName(), u.Team)
	}
	c.enemies.RemoveDefeated()

	switch {
	case c.field.Alive(entity.TeamEnemy) == 0:
		c.end(ctx, scene.Victory)
	case c.deployed && c.field.Alive(entity.TeamPlayer) == 0:
		c.end(ctx, scene.Defeat)
	}
}

func (c *CombatScene) end(ctx context.Context, outcome scene.Outcome) {
	_, span := telemetry.Tracer("game").Start(ctx, "encounter.end")
	span.SetAttributes(
		attribute.String("outcome", outcome.String()),
		attribute.Int("frames", c.frames),
		attribute.Int("leadership_spent", c.enc.Leadership().Spent()),
		attribute.Int("player_units_alive", c.field.Alive(entity.TeamPlayer)),
	)
	span.End()

	log.Printf("Encounter ended in %s", outcome)
	if outcome == scene.Victory {
		c.sound.Play(audio.CueVictory)
	} else {
		c.sound.Play(audio.CueDefeat)
	}
	if c.onEnd != nil {
		c.onEnd(outcome)
	}
	c.scenes.RequestScene(scene.PostCombat)
}

// Reset tears down the encounter; the next Update begins a new one.
// Units lost in the encounter leave the troupe.
func (c *CombatScene) Reset() {
	if n := c.players.RemoveDefeated(); n > 0 {
		log.Printf("%d units lost from the troupe", n)
	}
	if c.field != nil {
		c.field.Clear()
		c.enemies.Clear()
	}
	c.enc = nil
	c.field = nil
	c.enemies = nil
}

// Encounter returns the running encounter, or nil between encounters.
func (c *CombatScene) Encounter() *encounter.Encounter {
	return c.enc
}
