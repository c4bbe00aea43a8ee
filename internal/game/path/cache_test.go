package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskfield/gridnav/internal/game/grid"
	"github.com/duskfield/gridnav/internal/game/movement"
)

func TestCacheHitOnUnchangedGrid(t *testing.T) {
	e, _ := newTestEngine(t, 10, 10, nil)

	first := e.FindPath(center(0, 5), center(9, 5), DefaultOptions())
	require.True(t, first.Success)
	require.Equal(t, 1, e.CachedPaths())

	second := e.FindPath(center(0, 5), center(9, 5), DefaultOptions())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.CachedPaths())
}

func TestCacheKeyedByCapability(t *testing.T) {
	e, _ := newTestEngine(t, 10, 10, nil)

	walk := DefaultOptions()
	fly := DefaultOptions()
	fly.Movement = movement.Flying

	e.FindPath(center(0, 0), center(9, 9), walk)
	e.FindPath(center(0, 0), center(9, 9), fly)
	assert.Equal(t, 2, e.CachedPaths())
}

func TestObstacleChangeInvalidatesCrossingPathsOnly(t *testing.T) {
	e, overlay := newTestEngine(t, 10, 10, nil)

	onRoute := e.FindPath(center(0, 5), center(9, 5), DefaultOptions())
	require.True(t, onRoute.Success)
	elsewhere := e.FindPath(center(0, 0), center(9, 0), DefaultOptions())
	require.True(t, elsewhere.Success)
	require.Equal(t, 2, e.CachedPaths())

	// Blocks (5,5), which the first route crosses; the second does not.
	overlay.AddDynamicObstacle(center(5, 5), 0)
	assert.Equal(t, 1, e.CachedPaths())

	refreshed := e.FindPath(center(0, 5), center(9, 5), DefaultOptions())
	require.True(t, refreshed.Success)
	assert.NotEqual(t, onRoute.Waypoints, refreshed.Waypoints,
		"the stale straight route must not come back from the cache")
	assert.NotContains(t, e.routeCells(refreshed.Waypoints), grid.Point{X: 5, Y: 5})
	assert.True(t, e.ValidatePath(refreshed.Waypoints, movement.Walking))
}

func TestObstacleRemovalInvalidatesToo(t *testing.T) {
	e, overlay := newTestEngine(t, 10, 10, nil)
	overlay.AddDynamicObstacle(center(5, 5), 1)

	detour := e.FindPath(center(0, 5), center(9, 5), DefaultOptions())
	require.True(t, detour.Success)

	// Unblocking can shorten routes, so cached detours must go as well
	// if they pass the changed cells.
	overlay.RemoveDynamicObstacle(center(5, 5))
	refreshed := e.FindPath(center(0, 5), center(9, 5), DefaultOptions())
	require.True(t, refreshed.Success)
	assert.LessOrEqual(t, refreshed.Cost, detour.Cost)
}

func TestCacheCapacityFIFO(t *testing.T) {
	c := newResultCache(3)
	mk := func(i int) cacheKey {
		return cacheKey{start: grid.Point{X: i, Y: 0}, goal: grid.Point{X: i, Y: 9}}
	}
	res := Result{Success: true}

	for i := 0; i < 4; i++ {
		c.put(mk(i), res, []grid.Point{{X: i, Y: 0}})
	}
	assert.Equal(t, 3, c.len())

	_, ok := c.get(mk(0))
	assert.False(t, ok, "oldest entry is evicted first")
	_, ok = c.get(mk(3))
	assert.True(t, ok)
}

func TestCacheInvalidateByCell(t *testing.T) {
	c := newResultCache(10)
	keyA := cacheKey{start: grid.Point{X: 0, Y: 0}, goal: grid.Point{X: 5, Y: 0}}
	keyB := cacheKey{start: grid.Point{X: 0, Y: 1}, goal: grid.Point{X: 5, Y: 1}}
	c.put(keyA, Result{Success: true}, []grid.Point{{X: 2, Y: 0}, {X: 3, Y: 0}})
	c.put(keyB, Result{Success: true}, []grid.Point{{X: 2, Y: 1}})

	c.invalidateCell(3, 0)
	_, ok := c.get(keyA)
	assert.False(t, ok)
	_, ok = c.get(keyB)
	assert.True(t, ok, "entries not crossing the cell survive")

	c.clear()
	assert.Equal(t, 0, c.len())
}
