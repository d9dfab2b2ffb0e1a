package combat

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/troupe/internal/battle"
	"github.com/samdwyer/troupe/internal/entity"
	"github.com/samdwyer/troupe/internal/gamedata"
	"github.com/samdwyer/troupe/internal/geom"
	"github.com/samdwyer/troupe/internal/world"
)

// Ensure Unit implements Combatant
var _ Combatant = (*entity.Unit)(nil)

// mockCombatant is a test implementation of the Combatant interface.
type mockCombatant struct {
	name      string
	hp, maxHP int
	attack    int
	defense   int
}

func newMockCombatant(name string, hp, attack, defense int) *mockCombatant {
	return &mockCombatant{name: name, hp: hp, maxHP: hp, attack: attack, defense: defense}
}

func (m *mockCombatant) GetName() string { return m.name }
func (m *mockCombatant) IsAlive() bool   { return m.hp > 0 }
func (m *mockCombatant) GetHP() int      { return m.hp }
func (m *mockCombatant) GetMaxHP() int   { return m.maxHP }
func (m *mockCombatant) GetAttack() int  { return m.attack }
func (m *mockCombatant) GetDefense() int { return m.defense }

func (m *mockCombatant) TakeDamage(amount int) int {
	actual := min(amount, m.hp)
	m.hp -= actual
	return actual
}

func (m *mockCombatant) Heal(amount int) int {
	actual := min(amount, m.maxHP-m.hp)
	m.hp += actual
	return actual
}

func TestResolveDamagePhysical(t *testing.T) {
	def := &gamedata.ActionDef{ID: "stab", EffectType: gamedata.EffectDamage, DamageType: gamedata.DamagePhysical, Power: 8}
	target := newMockCombatant("Goblin", 15, 2, 3)

	result := EffectResolver{}.Resolve(def, target)

	// 8 power - 3 defense
	assert.Equal(t, 5, result.Damage)
	assert.Equal(t, 10, target.GetHP())
}

func TestResolveDamagePhysicalMinimum(t *testing.T) {
	def := &gamedata.ActionDef{ID: "poke", EffectType: gamedata.EffectDamage, DamageType: gamedata.DamagePhysical, Power: 2}
	target := newMockCombatant("Tank", 50, 0, 10)

	assert.Equal(t, 1, EffectResolver{}.Resolve(def, target).Damage)
}

func TestResolveDamageMagicalIgnoresDefense(t *testing.T) {
	def := &gamedata.ActionDef{ID: "fireball", EffectType: gamedata.EffectDamage, DamageType: gamedata.DamageMagical, Power: 9}
	target := newMockCombatant("Armored Orc", 30, 4, 8)

	assert.Equal(t, 9, EffectResolver{}.Resolve(def, target).Damage)
}

func TestResolveDamageTrue(t *testing.T) {
	def := &gamedata.ActionDef{ID: "quake", EffectType: gamedata.EffectDamage, DamageType: gamedata.DamageTrue, Power: 0}
	target := newMockCombatant("Rock", 10, 0, 0)

	// unmitigated and unclamped
	assert.Zero(t, EffectResolver{}.CalculateDamage(def, target))
}

func TestResolveHealCapped(t *testing.T) {
	def := &gamedata.ActionDef{ID: "rally", EffectType: gamedata.EffectHeal, Power: 8}
	wounded := newMockCombatant("Warrior", 30, 8, 6)
	wounded.hp = 28

	result := EffectResolver{}.Resolve(def, wounded)

	assert.Equal(t, 2, result.Healing)
	assert.Equal(t, 30, wounded.GetHP())
}

func TestActionKindString(t *testing.T) {
	tests := []struct {
		kind     ActionKind
		expected string
	}{
		{ActionFireball, "fireball"},
		{ActionRally, "rally"},
		{ActionQuake, "quake"},
		{ActionKind(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.kind.String())
		if tt.expected == "unknown" {
			continue
		}
		parsed, err := ParseActionKind(tt.expected)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, parsed)
	}

	_, err := ParseActionKind("meteor")
	assert.Error(t, err)
}

func newTestField() *battle.Field {
	return battle.NewField(world.NewTerrain(40, 24, 8, rand.New(rand.NewSource(1))))
}

func place(f *battle.Field, def *gamedata.UnitDef, team entity.Team, x, y float64) *entity.Unit {
	u := entity.NewUnit(def, team)
	u.Pos = geom.Vec2{X: x, Y: y}
	f.AddUnit(u)
	return u
}

func newTestRegistry(t *testing.T, field *battle.Field) *Registry {
	t.Helper()
	registry, err := NewRegistry(field, gamedata.MustLoadActionDefRegistry())
	require.NoError(t, err)
	return registry
}

func TestRegistryBuiltins(t *testing.T) {
	registry := newTestRegistry(t, newTestField())

	for _, kind := range []ActionKind{ActionFireball, ActionRally, ActionQuake} {
		require.True(t, registry.Has(kind), kind.String())
		assert.Equal(t, TargetFree, registry.New(kind).TargetMode())
	}
}

func TestRegistryMissingDefinition(t *testing.T) {
	defs := gamedata.NewActionDefRegistry([]gamedata.ActionDef{
		{ID: "fireball", TargetMode: gamedata.TargetFree},
	})
	_, err := NewRegistry(newTestField(), defs)
	assert.Error(t, err)
}

func TestRegistryUnknownKindPanics(t *testing.T) {
	registry := &Registry{factories: map[ActionKind]Factory{}}
	assert.Panics(t, func() { registry.New(ActionKind(42)) })
}

func TestFireballHitsEnemiesInRadius(t *testing.T) {
	field := newTestField()
	registry := newTestRegistry(t, field)

	grunt := &gamedata.UnitDef{ID: "grunt", Name: "Grunt", HP: 30, Defense: 2}
	inside := place(field, grunt, entity.TeamEnemy, 205, 200)
	outside := place(field, grunt, entity.TeamEnemy, 300, 300)
	friendly := place(field, grunt, entity.TeamPlayer, 200, 200)

	results := registry.New(ActionFireball).Use(context.Background(), geom.Vec2{X: 200, Y: 200})

	require.Len(t, results, 1)
	assert.Same(t, inside, results[0].Target)
	assert.Equal(t, 21, inside.HP)
	assert.Equal(t, 30, outside.HP)
	assert.Equal(t, 30, friendly.HP)
}

func TestRallyHealsPlayerUnits(t *testing.T) {
	field := newTestField()
	registry := newTestRegistry(t, field)

	soldier := &gamedata.UnitDef{ID: "soldier", Name: "Soldier", HP: 20}
	ally := place(field, soldier, entity.TeamPlayer, 50, 50)
	foe := place(field, soldier, entity.TeamEnemy, 55, 50)
	ally.HP, foe.HP = 5, 5

	registry.New(ActionRally).Use(context.Background(), geom.Vec2{X: 50, Y: 50})

	assert.Equal(t, 13, ally.HP)
	assert.Equal(t, 5, foe.HP)
}

func TestQuakeHitsBothSides(t *testing.T) {
	field := newTestField()
	registry := newTestRegistry(t, field)

	stone := &gamedata.UnitDef{ID: "stone", Name: "Stone", HP: 20, Defense: 50}
	a := place(field, stone, entity.TeamPlayer, 0, 0)
	b := place(field, stone, entity.TeamEnemy, 10, 10)

	results := registry.New(ActionQuake).Use(context.Background(), geom.Vec2{})

	require.Len(t, results, 2)
	// true damage ignores defense
	assert.Equal(t, 14, a.HP)
	assert.Equal(t, 14, b.HP)
}
