// Package path computes traversable routes between world positions for
// a given movement capability, honoring terrain cost, clearance and
// diagonal legality under a bounded work budget. One engine instance is
// scoped to one map session; it owns the result cache so concurrent map
// instances never share state.
package path

import (
	"math"

	"github.com/duskfield/gridnav/internal/game/grid"
	"github.com/duskfield/gridnav/internal/game/movement"
	"github.com/duskfield/gridnav/internal/game/nav"
)

// Engine is the pathfinding engine for one map session.
type Engine struct {
	terrain *grid.Grid
	rules   *movement.System
	overlay *nav.Grid // optional; nil falls back to raw terrain rules
	cache   *resultCache
}

// NewEngine creates an engine over the given terrain. overlay may be
// nil; when present, its dynamic-obstacle changes invalidate exactly
// the cached paths crossing the changed cells.
func NewEngine(terrain *grid.Grid, rules *movement.System, overlay *nav.Grid) *Engine {
	e := &Engine{
		terrain: terrain,
		rules:   rules,
		overlay: overlay,
		cache:   newResultCache(cacheCapacity),
	}
	if overlay != nil {
		overlay.OnCellChanged(e.cache.invalidateCell)
	}
	return e
}

// FindPath computes a route from start to goal. Results are cached
// under (startCell, goalCell, capability); identical queries against an
// unchanged map return the cached route.
func (e *Engine) FindPath(start, goal grid.WorldPos, opts Options) Result {
	opts = opts.normalized()
	goal = e.projectGoal(goal, opts)

	startCell := e.terrain.WorldToGrid(start)
	goalCell := e.terrain.WorldToGrid(goal)

	key := cacheKey{start: startCell, goal: goalCell, capability: opts.Movement}
	if r, ok := e.cache.get(key); ok {
		return r
	}

	r := e.compute(startCell, goalCell, opts)
	if r.Success && len(r.Waypoints) > 1 {
		e.cache.put(key, r, e.routeCells(r.Waypoints))
	}
	return r
}

// findUncached runs one search without touching the cache. Fallback
// recovery uses it for searches whose options diverge from what the
// cache key encodes.
func (e *Engine) findUncached(start, goal grid.WorldPos, opts Options) Result {
	return e.compute(e.terrain.WorldToGrid(start), e.terrain.WorldToGrid(goal), opts.normalized())
}

// compute runs one uncached search between two cells.
func (e *Engine) compute(startCell, goalCell grid.Point, opts Options) Result {
	if !e.terrain.InBounds(startCell.X, startCell.Y) ||
		!e.terrain.InBounds(goalCell.X, goalCell.Y) {
		return Result{}
	}
	if !e.traversable(goalCell.X, goalCell.Y, opts.Movement, opts.MinObstacleDistance) {
		return Result{}
	}
	if startCell == goalCell {
		return Result{
			Waypoints: []grid.WorldPos{e.terrain.GridToWorld(startCell)},
			Success:   true,
		}
	}

	goalNode, iterations := e.search(startCell, goalCell, opts)
	if goalNode == nil {
		return Result{Iterations: iterations}
	}

	cells := reconstruct(goalNode)
	if opts.SmoothPath {
		cells = e.smooth(cells, opts)
	}

	waypoints := make([]grid.WorldPos, len(cells))
	for i, p := range cells {
		waypoints[i] = e.terrain.GridToWorld(p)
	}
	return Result{
		Waypoints:  waypoints,
		Success:    true,
		Iterations: iterations,
		Cost:       goalNode.g,
	}
}

// projectGoal applies predictive targeting: the goal moves forward by
// the target's velocity unless the projected cell is invalid.
func (e *Engine) projectGoal(goal grid.WorldPos, opts Options) grid.WorldPos {
	if !opts.PredictiveTarget || opts.PredictionTime <= 0 {
		return goal
	}
	projected := grid.WorldPos{
		X: goal.X + opts.TargetVelocity.X*opts.PredictionTime,
		Y: goal.Y + opts.TargetVelocity.Y*opts.PredictionTime,
	}
	cell := e.terrain.WorldToGrid(projected)
	if !e.terrain.InBounds(cell.X, cell.Y) ||
		!e.traversable(cell.X, cell.Y, opts.Movement, opts.MinObstacleDistance) {
		return goal
	}
	return projected
}

// traversable is the single traversability gate for search, smoothing
// and validation. With an overlay it reflects dynamic obstacles and the
// clearance requirement; without one it falls back to the static rule
// table. Out of bounds is never traversable.
func (e *Engine) traversable(x, y int, c movement.Capability, minObstacleDistance float64) bool {
	if e.overlay != nil {
		if !e.overlay.Walkable(x, y, c) {
			return false
		}
		if minObstacleDistance > 0 && groundBound(c) &&
			float64(e.overlay.ObstacleDistance(x, y)) < minObstacleDistance {
			return false
		}
		return true
	}
	if !e.terrain.InBounds(x, y) {
		return false
	}
	return e.rules.CanTraverse(c, e.terrain.CellTypeAt(x, y))
}

// stepCost prices entering cell (x, y): stepDist × 1/speed × the query
// cost multiplier, doubled inside the overlay's soft clearance margin.
func (e *Engine) stepCost(x, y int, stepDist float64, opts Options) float64 {
	mult := e.rules.SpeedMultiplier(opts.Movement, e.terrain.CellAt(x, y))
	if mult <= 0 {
		return math.Inf(1)
	}
	cost := stepDist / mult * opts.TerrainCostMultiplier
	if e.overlay != nil && groundBound(opts.Movement) && e.overlay.WithinBuffer(x, y) {
		cost *= 2
	}
	return cost
}

func groundBound(c movement.Capability) bool {
	return !c.Known() || c != movement.Flying
}

// ValidatePath reports whether an existing route is still fully
// traversable: every waypoint cell and every cell on the straight lines
// between consecutive waypoints.
func (e *Engine) ValidatePath(waypoints []grid.WorldPos, c movement.Capability) bool {
	if len(waypoints) == 0 {
		return false
	}
	prev := e.terrain.WorldToGrid(waypoints[0])
	if !e.traversable(prev.X, prev.Y, c, 0) {
		return false
	}
	for _, wp := range waypoints[1:] {
		cell := e.terrain.WorldToGrid(wp)
		if !e.lineTraversable(prev, cell, c, 0) {
			return false
		}
		prev = cell
	}
	return true
}

// ClearCache drops every cached result, e.g. after direct terrain
// mutation that bypasses the navigation overlay.
func (e *Engine) ClearCache() {
	e.cache.clear()
}

// CachedPaths reports the number of cached results (test hook).
func (e *Engine) CachedPaths() int {
	return e.cache.len()
}

// routeCells returns every grid cell a route passes through, including
// the cells under the straight segments of a smoothed path. The cache
// indexes entries by these cells for exact invalidation.
func (e *Engine) routeCells(waypoints []grid.WorldPos) []grid.Point {
	seen := make(map[grid.Point]struct{}, len(waypoints)*2)
	cells := make([]grid.Point, 0, len(waypoints)*2)
	prev := e.terrain.WorldToGrid(waypoints[0])
	add := func(p grid.Point) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			cells = append(cells, p)
		}
	}
	add(prev)
	for _, wp := range waypoints[1:] {
		cell := e.terrain.WorldToGrid(wp)
		it := newLineIterator(prev, cell)
		for it.next() {
			add(it.point())
		}
		prev = cell
	}
	return cells
}
