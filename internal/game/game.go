package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/troupe/internal/audio"
	"github.com/samdwyer/troupe/internal/entity"
	"github.com/samdwyer/troupe/internal/gamedata"
	"github.com/samdwyer/troupe/internal/input"
	"github.com/samdwyer/troupe/internal/scene"
	"github.com/samdwyer/troupe/internal/telemetry"
	"github.com/samdwyer/troupe/internal/ui"
)

// Game holds the entire game state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	terminal *input.Terminal
	snapshot input.Snapshot
	sound    *audio.Player

	scenes     *SceneManager
	combat     *CombatScene
	postCombat *PostCombatScene
	troupe     *TroupeScene

	seed    int64
	running bool
}

// New creates a new game instance from a validated configuration.
func New(cfg Config) (*Game, error) {
	units, err := gamedata.LoadUnitRegistry()
	if err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}
	actionDefs, err := gamedata.LoadActionDefRegistry()
	if err != nil {
		return nil, fmt.Errorf("load actions: %w", err)
	}
	if err := cfg.Validate(units, actionDefs); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	sound := audio.NewPlayer(cfg.Audio)
	if err := sound.Init(); err != nil {
		// Non-fatal, game can run without sound
		log.Printf("Audio initialization failed: %v", err)
	}

	seed := cfg.RandSeed()
	rng := rand.New(rand.NewSource(seed))
	players := entity.NewTroupe(entity.TeamPlayer, units)
	scenes := NewSceneManager(scene.Combat)

	g := &Game{
		cfg:        cfg,
		screen:     screen,
		renderer:   ui.NewRenderer(screen, cfg.TileSize),
		terminal:   input.NewTerminal(input.DefaultKeyTable()),
		sound:      sound,
		scenes:     scenes,
		postCombat: NewPostCombatScene(scenes, players),
		troupe:     NewTroupeScene(scenes, players),
		seed:       seed,
		running:    true,
	}
	g.combat = NewCombatScene(cfg, units, actionDefs, rng, players, scenes, sound, g.postCombat.SetOutcome)

	scenes.Register(scene.Combat, g.combat)
	scenes.Register(scene.PostCombat, g.postCombat)
	scenes.Register(scene.ViewTroupe, g.troupe)
	return g, nil
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()

	ctx, initSpan := telemetry.Tracer("game").Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.Int64("seed", g.seed),
		attribute.Int("leadership", g.cfg.Leadership),
		attribute.Int("enemy_count", g.cfg.EnemyCount),
	)
	g.combat.Begin(ctx)
	initSpan.End()
	log.Printf("Game started with seed %d", g.seed)

	// PollEvent blocks, so it gets its own goroutine; everything else stays on this one.
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	screen := g.screen
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(g.cfg.FrameInterval())
	defer ticker.Stop()
	last := time.Now()

	for g.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			g.handleEvent(ev, time.Now())
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			g.frame(ctx, now, dt)
		}
	}
	return nil
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.terminal.HandleKey(ev, now)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// frame steps the active scene once and draws it.
func (g *Game) frame(ctx context.Context, now time.Time, dt float64) {
	g.terminal.Latch(now, &g.snapshot)
	if g.snapshot.Consume(input.Quit) {
		g.running = false
		return
	}

	if g.scenes.Update(ctx, dt, &g.snapshot) {
		// Nothing pressed for one scene may leak into the next.
		g.snapshot.Reset()
		g.terminal.Release()
	}

	switch g.scenes.Current() {
	case scene.Combat:
		g.renderer.RenderCombat(g.combat.Encounter())
	case scene.ViewTroupe:
		g.renderer.RenderTroupe(g.troupe.Units(), g.troupe.Selected())
	case scene.PostCombat:
		g.renderer.RenderPostCombat(g.postCombat.Outcome(), g.postCombat.Survivors())
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.sound.Close()
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
