package encounter

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/troupe/internal/battle"
	"github.com/samdwyer/troupe/internal/combat"
	"github.com/samdwyer/troupe/internal/entity"
	"github.com/samdwyer/troupe/internal/gamedata"
	"github.com/samdwyer/troupe/internal/geom"
	"github.com/samdwyer/troupe/internal/hand"
	"github.com/samdwyer/troupe/internal/input"
	"github.com/samdwyer/troupe/internal/scene"
	"github.com/samdwyer/troupe/internal/world"
)

const speed = 75.0

var center = geom.Vec2{X: 160, Y: 96}

type sceneRecorder struct {
	requests []scene.Type
}

func (r *sceneRecorder) RequestScene(t scene.Type) {
	r.requests = append(r.requests, t)
}

type dealer struct {
	calls int
	cards []hand.Card
}

func (d *dealer) StartActionPhase(_ context.Context, h *hand.Hand) {
	d.calls++
	for _, c := range d.cards {
		h.Append(c)
	}
}

type observer struct {
	deployed []*entity.Unit
	used     []combat.ActionKind
}

func (o *observer) UnitDeployed(u *entity.Unit) { o.deployed = append(o.deployed, u) }

func (o *observer) ActionUsed(kind combat.ActionKind, _ geom.Vec2, _ []combat.EffectResult) {
	o.used = append(o.used, kind)
}

// countingAction records every target it is used at.
type countingAction struct {
	uses *[]geom.Vec2
}

func (a countingAction) TargetMode() combat.TargetMode { return combat.TargetFree }

func (a countingAction) Use(_ context.Context, target geom.Vec2) []combat.EffectResult {
	*a.uses = append(*a.uses, target)
	return nil
}

type fixture struct {
	enc      *Encounter
	hand     *hand.Hand
	lead     *hand.Leadership
	field    *battle.Field
	camera   *battle.Camera
	actions  *combat.Registry
	scenes   *sceneRecorder
	dealer   *dealer
	observer *observer
}

func newFixture(t *testing.T, capacity int, unitTypes ...string) *fixture {
	t.Helper()

	units := gamedata.MustLoadUnitRegistry()
	field := battle.NewField(world.NewTerrain(40, 24, 8, rand.New(rand.NewSource(1))))
	players := entity.NewTroupe(entity.TeamPlayer, units)

	h := hand.New()
	for _, id := range unitTypes {
		u, err := players.AddUnit(id)
		require.NoError(t, err)
		h.Append(hand.UnitCard(u))
	}

	actions, err := combat.NewRegistry(field, gamedata.MustLoadActionDefRegistry())
	require.NoError(t, err)

	f := &fixture{
		hand:     h,
		lead:     hand.NewLeadership(capacity),
		field:    field,
		camera:   battle.NewCamera(320, 180),
		actions:  actions,
		scenes:   &sceneRecorder{},
		dealer:   &dealer{},
		observer: &observer{},
	}
	f.enc = New(Deps{
		Hand:        f.hand,
		Leadership:  f.lead,
		Field:       field,
		Enemies:     entity.NewTroupe(entity.TeamEnemy, units),
		Actions:     actions,
		Rng:         rand.New(rand.NewSource(12345)),
		Camera:      f.camera,
		Scenes:      f.scenes,
		Starter:     f.dealer,
		Observer:    f.observer,
		EnemyCount:  2,
		CursorSpeed: speed,
	})
	return f
}

func (f *fixture) start() {
	f.enc.Start(context.Background())
}

func (f *fixture) step(actions ...input.Action) {
	f.stepDT(1.0/60, actions...)
}

func (f *fixture) stepDT(dt float64, actions ...input.Action) {
	var s input.Snapshot
	for _, a := range actions {
		s.Set(a, true)
	}
	f.enc.Update(context.Background(), dt, &s)
}

// toActionPhase deploys a single spearman, which ends deployment, then opens the action phase.
func toActionPhase(t *testing.T, cards ...hand.Card) (*fixture, *[]geom.Vec2) {
	t.Helper()
	f := newFixture(t, 1, "spearman")
	uses := &[]geom.Vec2{}
	f.actions.Register(combat.ActionFireball, func() combat.Action { return countingAction{uses: uses} })
	f.dealer.cards = cards
	f.start()

	f.step(input.Select)
	f.step(input.Select)
	require.Equal(t, Watch, f.enc.Phase())
	f.step(input.Cancel)
	require.Equal(t, ActionChooseCard, f.enc.Phase())
	return f, uses
}

func fireballCard() hand.Card {
	return hand.ActionCard(combat.ActionFireball, "Fireball", '*')
}

func rallyCard() hand.Card {
	return hand.ActionCard(combat.ActionRally, "Rally", '+')
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "unit_choose_card", UnitChooseCard.String())
	assert.Equal(t, "action_select_target_free", ActionSelectTargetFree.String())
	assert.Equal(t, "watch", Watch.String())
	assert.Equal(t, "unknown", Phase(42).String())
	assert.True(t, UnitSelectTarget.Targeting())
	assert.False(t, Watch.Targeting())
}

func TestStartPlacesEnemies(t *testing.T) {
	f := newFixture(t, 6, "spearman")
	placements := f.enc.Start(context.Background())

	assert.Len(t, placements, 2)
	assert.Len(t, f.field.Units(entity.TeamEnemy), 2)
	assert.Equal(t, UnitChooseCard, f.enc.Phase())
}

func TestStartWithEmptyHandSkipsDeployment(t *testing.T) {
	f := newFixture(t, 6)
	f.start()
	assert.Equal(t, Watch, f.enc.Phase())
}

func TestUpdateBeforeStartPanics(t *testing.T) {
	f := newFixture(t, 6, "spearman")
	assert.Panics(t, func() { f.step() })
}

func TestSelectAffordableCardEntersTargeting(t *testing.T) {
	// Hand = [archer(2), knight(3)], capacity 4, nothing spent.
	t.Run("first card", func(t *testing.T) {
		f := newFixture(t, 4, "archer", "knight")
		f.start()
		f.step(input.Select)

		assert.Equal(t, UnitSelectTarget, f.enc.Phase())
		assert.Equal(t, "archer", f.hand.At(f.enc.Column()).Unit.Type())
		assert.Equal(t, 2, f.hand.Len())
		assert.Zero(t, f.lead.Spent())
	})
	t.Run("second card", func(t *testing.T) {
		f := newFixture(t, 4, "archer", "knight")
		f.start()
		f.step(input.Right)
		f.step(input.Select)

		assert.Equal(t, UnitSelectTarget, f.enc.Phase())
		assert.Equal(t, "knight", f.hand.At(f.enc.Column()).Unit.Type())
	})
}

func TestSelectUnaffordableCardIsIgnored(t *testing.T) {
	f := newFixture(t, 4, "archer")
	f.lead.Spend(3)
	f.start()

	f.step(input.Select)

	assert.Equal(t, UnitChooseCard, f.enc.Phase())
	assert.Equal(t, 3, f.lead.Spent())
	assert.Equal(t, 1, f.hand.Len())
	assert.Equal(t, "not enough leadership for Archer", f.enc.Status())
}

func TestCancelInUnitChooseIsNoop(t *testing.T) {
	f := newFixture(t, 6, "spearman", "archer")
	f.start()
	f.step(input.Cancel)
	assert.Equal(t, UnitChooseCard, f.enc.Phase())
}

func TestCycleWrapsBothWays(t *testing.T) {
	f := newFixture(t, 6, "spearman", "archer", "knight")
	f.start()

	f.step(input.Left)
	assert.Equal(t, 2, f.enc.Column())
	f.step(input.Right)
	assert.Equal(t, 0, f.enc.Column())
	for i := 0; i < 7; i++ {
		f.step(input.Right)
	}
	for i := 0; i < 7; i++ {
		f.step(input.Left)
	}
	assert.Equal(t, 0, f.enc.Column())
}

func TestDeployUnit(t *testing.T) {
	f := newFixture(t, 6, "archer", "spearman")
	f.start()
	unit := f.hand.At(0).Unit

	f.step(input.Select)
	f.stepDT(1, input.HoldRight)
	f.step(input.Select)

	assert.Equal(t, UnitChooseCard, f.enc.Phase())
	assert.Equal(t, 2, f.lead.Spent())
	assert.Equal(t, 1, f.hand.Len())
	assert.Equal(t, "spearman", f.hand.At(0).Unit.Type())
	assert.Len(t, f.field.Units(entity.TeamPlayer), 1)
	assert.True(t, f.field.Has(unit))
	assert.InDelta(t, center.X+speed, unit.Pos.X, 1e-9)
	assert.InDelta(t, center.Y, unit.Pos.Y, 1e-9)
	assert.Equal(t, []*entity.Unit{unit}, f.observer.deployed)
}

func TestDeployClampsColumn(t *testing.T) {
	f := newFixture(t, 6, "spearman", "spearman", "archer")
	f.start()

	f.step(input.Left) // last card
	f.step(input.Select)
	f.step(input.Select)

	assert.Equal(t, UnitChooseCard, f.enc.Phase())
	assert.Equal(t, 2, f.hand.Len())
	assert.Equal(t, 1, f.enc.Column())
}

func TestCancelTargetingKeepsCard(t *testing.T) {
	f := newFixture(t, 6, "knight")
	f.start()

	f.step(input.Select)
	f.step(input.Cancel)

	assert.Equal(t, UnitChooseCard, f.enc.Phase())
	assert.Equal(t, 1, f.hand.Len())
	assert.Zero(t, f.lead.Spent())
	assert.Empty(t, f.field.Units(entity.TeamPlayer))
}

func TestEnteringTargetingResetsCursor(t *testing.T) {
	f := newFixture(t, 6, "knight")
	f.start()

	f.step(input.Select)
	assert.Equal(t, center, f.enc.Cursor())

	f.stepDT(2, input.HoldLeft, input.HoldDown)
	assert.NotEqual(t, center, f.enc.Cursor())

	f.step(input.Cancel)
	f.step(input.Select)
	assert.Equal(t, center, f.enc.Cursor())
}

func TestDiagonalHoldIsNotNormalised(t *testing.T) {
	f := newFixture(t, 6, "knight")
	f.start()
	f.step(input.Select)

	f.stepDT(1.0/60, input.HoldRight, input.HoldUp)

	got := f.enc.Cursor().Sub(center)
	assert.InDelta(t, speed/60, got.X, 1e-9)
	assert.InDelta(t, -speed/60, got.Y, 1e-9)
}

func TestOpposingHoldsCancel(t *testing.T) {
	f := newFixture(t, 6, "knight")
	f.start()
	f.step(input.Select)

	f.stepDT(1, input.HoldLeft, input.HoldRight)
	assert.Equal(t, center, f.enc.Cursor())
}

func TestSelectWinsOverCancel(t *testing.T) {
	f := newFixture(t, 6, "knight", "spearman")
	f.start()
	f.step(input.Select)

	f.step(input.Select, input.Cancel)

	assert.Equal(t, UnitChooseCard, f.enc.Phase())
	assert.Equal(t, 1, f.hand.Len())
	assert.Equal(t, 3, f.lead.Spent())
}

func TestDeployKeepsUnaffordableCards(t *testing.T) {
	f := newFixture(t, 4, "knight", "archer")
	f.start()

	f.step(input.Select)
	f.step(input.Select)

	assert.Equal(t, UnitChooseCard, f.enc.Phase())
	require.Equal(t, 1, f.hand.Len())
	assert.Equal(t, "archer", f.hand.At(0).Unit.Type())
	assert.Equal(t, 3, f.lead.Spent())
	assert.Equal(t, "not enough leadership for Archer", f.enc.Status())

	f.step(input.Select)
	assert.Equal(t, UnitChooseCard, f.enc.Phase())
	assert.Equal(t, 1, f.hand.Len())
	assert.Equal(t, 3, f.lead.Spent())
}

func TestDeploymentEndsWhenHandEmpty(t *testing.T) {
	f := newFixture(t, 6, "spearman")
	f.start()

	f.step(input.Select)
	f.step(input.Select)

	assert.Equal(t, Watch, f.enc.Phase())
	assert.Zero(t, f.dealer.calls)
}

func TestWatchCancelStartsActionPhase(t *testing.T) {
	tests := []struct {
		name  string
		cards []hand.Card
	}{
		{"no cards dealt", nil},
		{"cards dealt", []hand.Card{fireballCard(), rallyCard()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := toActionPhase(t, tt.cards...)
			assert.Equal(t, ActionChooseCard, f.enc.Phase())
			assert.Equal(t, 1, f.dealer.calls)
			assert.Equal(t, len(tt.cards), f.hand.Len())
			assert.Zero(t, f.enc.Column())
		})
	}
}

func TestEmptyActionHandIsSafe(t *testing.T) {
	f, uses := toActionPhase(t)

	f.step(input.Left)
	f.step(input.Right)
	f.step(input.Select)

	assert.Equal(t, ActionChooseCard, f.enc.Phase())
	assert.Zero(t, f.enc.Column())
	assert.Empty(t, *uses)
}

func TestUseActionOnce(t *testing.T) {
	f, uses := toActionPhase(t, rallyCard(), fireballCard())

	f.step(input.Right)
	f.step(input.Select)
	require.Equal(t, ActionSelectTargetFree, f.enc.Phase())
	assert.Equal(t, center, f.enc.Cursor())

	f.stepDT(1, input.HoldDown)
	f.step(input.Select)

	assert.Equal(t, ActionChooseCard, f.enc.Phase())
	require.Len(t, *uses, 1)
	assert.InDelta(t, center.Y+speed, (*uses)[0].Y, 1e-9)
	assert.Equal(t, 1, f.hand.Len())
	assert.Equal(t, combat.ActionRally, f.hand.At(0).Action)
	assert.Zero(t, f.enc.Column())
	assert.Equal(t, []combat.ActionKind{combat.ActionFireball}, f.observer.used)
}

func TestUsingLastActionEndsActionPhase(t *testing.T) {
	f, uses := toActionPhase(t, fireballCard())

	f.step(input.Select)
	f.step(input.Select)

	assert.Len(t, *uses, 1)
	assert.Zero(t, f.hand.Len())
	assert.Equal(t, Watch, f.enc.Phase())
	assert.Equal(t, 1, f.dealer.calls)
}

func TestCancelActionTargetingKeepsCard(t *testing.T) {
	f, uses := toActionPhase(t, fireballCard())

	f.step(input.Select)
	f.step(input.Cancel)

	assert.Equal(t, ActionChooseCard, f.enc.Phase())
	assert.Equal(t, 1, f.hand.Len())
	assert.Empty(t, *uses)
}

func TestCancelActionChooseWatches(t *testing.T) {
	f, _ := toActionPhase(t, fireballCard())

	f.step(input.Cancel)
	assert.Equal(t, Watch, f.enc.Phase())

	f.step(input.Cancel)
	assert.Equal(t, ActionChooseCard, f.enc.Phase())
	assert.Equal(t, 2, f.dealer.calls)
	assert.Equal(t, 2, f.hand.Len())
}

func TestUnknownActionPanics(t *testing.T) {
	f, _ := toActionPhase(t, hand.ActionCard(combat.ActionKind(99), "???", '?'))
	assert.Panics(t, func() { f.step(input.Select) })
}

func TestViewTroupeRequestsScene(t *testing.T) {
	f := newFixture(t, 6, "spearman")
	f.start()

	f.step(input.ViewTroupe)

	assert.Equal(t, []scene.Type{scene.ViewTroupe}, f.scenes.requests)
	assert.Equal(t, UnitChooseCard, f.enc.Phase())
}

func TestCameraFollowsPlayers(t *testing.T) {
	f := newFixture(t, 6, "spearman", "spearman")
	f.start()

	f.step(input.Select)
	f.step(input.Select)
	require.Equal(t, geom.Vec2{}, f.camera.Pos)

	f.step()

	// Target is the centroid minus half the viewport: (0, 6).
	assert.InDelta(t, 0, f.camera.Pos.X, 1e-9)
	assert.InDelta(t, 0.6, f.camera.Pos.Y, 1e-9)
}

func TestCameraReturnsToOriginWithoutPlayers(t *testing.T) {
	f := newFixture(t, 6, "spearman")
	f.start()
	f.camera.Pos = geom.Vec2{X: 50, Y: 50}

	f.step()

	assert.InDelta(t, 45, f.camera.Pos.X, 1e-9)
	assert.InDelta(t, 45, f.camera.Pos.Y, 1e-9)
}

func TestStatus(t *testing.T) {
	f, _ := toActionPhase(t, fireballCard())
	assert.Equal(t, "select an action or press X to watch", f.enc.Status())
	f.step(input.Select)
	assert.Equal(t, "select a target location", f.enc.Status())

	g := newFixture(t, 6, "spearman")
	g.start()
	assert.Equal(t, "select a unit to place", g.enc.Status())
}

func TestReset(t *testing.T) {
	f, _ := toActionPhase(t, fireballCard())
	f.step(input.Select)

	f.enc.Reset()

	assert.Equal(t, UnitChooseCard, f.enc.Phase())
	assert.Zero(t, f.enc.Column())
	assert.Equal(t, geom.Vec2{}, f.enc.Cursor())
	assert.Panics(t, func() { f.step() })
}
