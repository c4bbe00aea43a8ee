package movement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskfield/gridnav/internal/game/grid"
)

func TestCanTraverseTable(t *testing.T) {
	s := NewSystem()

	cases := []struct {
		capability Capability
		cellType   grid.CellType
		want       bool
	}{
		{Walking, grid.Empty, true},
		{Walking, grid.Water, false},
		{Walking, grid.Bridge, true},
		{Walking, grid.Obstacle, false},
		{Flying, grid.Water, true},
		{Flying, grid.Obstacle, true},
		{Flying, grid.Border, false},
		{Flying, grid.Blocked, false},
		{Swimming, grid.Water, true},
		{Swimming, grid.Empty, false},
		{Amphibious, grid.Water, true},
		{Amphibious, grid.Empty, true},
		{Amphibious, grid.Blocked, false},
		{AllTerrain, grid.Water, true},
		{AllTerrain, grid.Tower, true},
		{AllTerrain, grid.Border, false},
	}
	for _, tc := range cases {
		got := s.CanTraverse(tc.capability, tc.cellType)
		assert.Equalf(t, tc.want, got, "%s on %s", tc.capability, tc.cellType)
	}
}

func TestUnknownCapabilityFallsBackToWalking(t *testing.T) {
	s := NewSystem()
	unknown := Capability(200)

	assert.False(t, s.CanTraverse(unknown, grid.Water))
	assert.True(t, s.CanTraverse(unknown, grid.Empty))
}

func TestFlyingIgnoresTerrainPenalties(t *testing.T) {
	s := NewSystem()

	rough := &grid.Cell{Type: grid.RoughTerrain}
	assert.Equal(t, 1.0, s.SpeedMultiplier(Flying, rough))
	assert.Equal(t, 0.5, s.SpeedMultiplier(Walking, rough))

	water := &grid.Cell{Type: grid.Water}
	assert.Equal(t, 1.0, s.SpeedMultiplier(Flying, water))
	assert.Equal(t, 0.0, s.SpeedMultiplier(Flying, &grid.Cell{Type: grid.Border}))
}

func TestSpeedOverrideWins(t *testing.T) {
	s := NewSystem()
	cell := &grid.Cell{Type: grid.RoughTerrain, SpeedOverride: 0.9}

	assert.Equal(t, 0.9, s.SpeedMultiplier(Walking, cell))
}

func TestMoveCostInverseToSpeed(t *testing.T) {
	s := NewSystem()
	g := grid.New(10, 1, 1)
	g.SetCellType(1, 0, grid.RoughTerrain)
	g.SetCellType(2, 0, grid.Water)

	from := g.GridToWorld(grid.Point{X: 0, Y: 0})

	onto := g.GridToWorld(grid.Point{X: 1, Y: 0})
	cost := s.MoveCost(from, onto, g, Walking)
	assert.InDelta(t, 2.0, cost, 1e-9, "half speed doubles cost over unit distance")

	blocked := s.MoveCost(from, g.GridToWorld(grid.Point{X: 2, Y: 0}), g, Walking)
	assert.True(t, math.IsInf(blocked, 1))

	flown := s.MoveCost(from, g.GridToWorld(grid.Point{X: 2, Y: 0}), g, Flying)
	assert.InDelta(t, 2.0, flown, 1e-9, "flying crosses water at multiplier 1")
}

func TestSpeedCacheBounded(t *testing.T) {
	s := NewSystem()
	for i := 0; i < speedCacheCap+50; i++ {
		cell := &grid.Cell{Type: grid.Empty, SpeedOverride: 1 + float64(i)/1000}
		s.SpeedMultiplier(Walking, cell)
	}
	assert.LessOrEqual(t, s.SpeedCacheLen(), speedCacheCap)
}

type testEntity struct {
	pos    grid.WorldPos
	damage float64
	status []string
}

func (e *testEntity) Position() grid.WorldPos   { return e.pos }
func (e *testEntity) ApplyDamage(amount float64) { e.damage += amount }
func (e *testEntity) ApplyStatus(effect string)  { e.status = append(e.status, effect) }

func TestApplyTerrainEffects(t *testing.T) {
	s := NewSystem()
	g := grid.New(4, 4, 1)
	g.SetCellType(1, 1, grid.RoughTerrain)

	// Default table is inert.
	e := &testEntity{pos: g.GridToWorld(grid.Point{X: 1, Y: 1})}
	s.ApplyTerrainEffects(e, 0.5, g)
	assert.Zero(t, e.damage)
	assert.Empty(t, e.status)

	// A hazardous override deals scaled damage and applies the status.
	s.SetTerrainRule(grid.RoughTerrain, TerrainRule{
		Walkable:        true,
		SpeedMultiplier: 0.5,
		DamagePerSecond: 10,
		StatusEffect:    "slowed",
	})
	s.ApplyTerrainEffects(e, 0.5, g)
	require.Equal(t, 5.0, e.damage)
	assert.Equal(t, []string{"slowed"}, e.status)
}

func TestParseCapability(t *testing.T) {
	assert.Equal(t, Flying, ParseCapability("flying"))
	assert.Equal(t, AllTerrain, ParseCapability("all_terrain"))
	assert.Equal(t, Walking, ParseCapability("burrowing"), "unknown names fall back to walking")
}
