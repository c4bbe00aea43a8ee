// Package nav derives a walkability/cost/obstacle-distance overlay from
// the terrain grid so the pathfinder never recomputes terrain semantics
// per query. The overlay is mutable session state: it must be rebuilt
// on map load and is updated in place by dynamic obstacle changes.
package nav

import (
	"log/slog"
	"math"

	"github.com/duskfield/gridnav/internal/game/grid"
	"github.com/duskfield/gridnav/internal/game/movement"
)

// Cell is the derived navigation view of one terrain cell.
type Cell struct {
	Walkable         bool
	Flyable          bool
	Swimmable        bool
	Cost             float64
	ObstacleDistance int // cells to the nearest blocking cell
}

// ChangeFunc is invoked once per cell whose navigation state changed
// outside a full rebuild (dynamic obstacle add/remove). The pathfinder
// hooks this for cache invalidation.
type ChangeFunc func(x, y int)

// Grid is the navigation overlay for one terrain grid.
type Grid struct {
	terrain        *grid.Grid
	rules          *movement.System
	obstacleBuffer int
	cells          []Cell
	obstacles      map[grid.Point][]grid.Point // anchor cell -> covered cells
	covered        map[grid.Point]int          // cell -> covering obstacle count
	onChange       ChangeFunc
}

// New builds the overlay for the given terrain and performs the initial
// Rebuild. obstacleBuffer is the soft clearance margin in cells: cells
// closer than this to a blocking cell cost double.
func New(terrain *grid.Grid, rules *movement.System, obstacleBuffer int) *Grid {
	n := &Grid{
		terrain:        terrain,
		rules:          rules,
		obstacleBuffer: obstacleBuffer,
		cells:          make([]Cell, terrain.Width()*terrain.Height()),
		obstacles:      make(map[grid.Point][]grid.Point),
		covered:        make(map[grid.Point]int),
	}
	n.Rebuild()
	return n
}

// OnCellChanged registers the per-cell change callback.
func (n *Grid) OnCellChanged(fn ChangeFunc) {
	n.onChange = fn
}

// Rebuild recomputes the whole overlay from the terrain: per-cell flags
// and base cost, then a multi-source flood fill for the obstacle
// distance field, then the soft clearance margin, and finally the
// registered dynamic obstacles are re-applied.
func (n *Grid) Rebuild() {
	w, h := n.terrain.Width(), n.terrain.Height()

	seeds := make([]grid.Point, 0, w+h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := n.terrain.CellTypeAt(x, y)
			rule := n.rules.RuleFor(t)

			cost := 1.0
			switch {
			case !rule.Walkable:
				cost = math.Inf(1)
			case t == grid.RoughTerrain:
				cost = 2.0
			}
			n.cells[y*w+x] = Cell{
				Walkable:         rule.Walkable,
				Flyable:          rule.Flyable,
				Swimmable:        rule.Swimmable,
				Cost:             cost,
				ObstacleDistance: -1,
			}

			// A rule override can open a normally blocking type (e.g.
			// fordable water); such cells must not seed the distance
			// field.
			switch t {
			case grid.Obstacle, grid.Blocked, grid.Border, grid.Water:
				if !rule.Walkable {
					seeds = append(seeds, grid.Point{X: x, Y: y})
				}
			}
		}
	}

	n.floodFillDistances(seeds)

	for i := range n.cells {
		c := &n.cells[i]
		if c.ObstacleDistance < 0 {
			// No blocking cell anywhere on the map.
			c.ObstacleDistance = w + h
			continue
		}
		if c.ObstacleDistance == 0 {
			c.Walkable = false
			c.Cost = math.Inf(1)
		} else if c.ObstacleDistance <= n.obstacleBuffer && c.Walkable {
			c.Cost *= 2
		}
	}

	// Dynamic obstacles survive a rebuild; their cells go back to blocked.
	for _, cells := range n.obstacles {
		for _, p := range cells {
			n.blockCell(p.X, p.Y)
		}
	}

	slog.Debug("navigation grid rebuilt",
		"width", w, "height", h, "seeds", len(seeds), "dynamic_obstacles", len(n.obstacles))
}

// floodFillDistances runs a multi-source BFS from every blocking cell
// at distance 0, filling ObstacleDistance in cells for the whole grid.
func (n *Grid) floodFillDistances(seeds []grid.Point) {
	w, h := n.terrain.Width(), n.terrain.Height()

	queue := make([]grid.Point, 0, len(seeds))
	for _, p := range seeds {
		n.cells[p.Y*w+p.X].ObstacleDistance = 0
		queue = append(queue, p)
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		d := n.cells[p.Y*w+p.X].ObstacleDistance

		for _, q := range [4]grid.Point{
			{X: p.X, Y: p.Y - 1}, {X: p.X + 1, Y: p.Y},
			{X: p.X, Y: p.Y + 1}, {X: p.X - 1, Y: p.Y},
		} {
			if q.X < 0 || q.Y < 0 || q.X >= w || q.Y >= h {
				continue
			}
			next := &n.cells[q.Y*w+q.X]
			if next.ObstacleDistance >= 0 {
				continue
			}
			next.ObstacleDistance = d + 1
			queue = append(queue, q)
		}
	}
}

// CellAt returns the overlay cell at (x, y), or nil when out of bounds.
func (n *Grid) CellAt(x, y int) *Cell {
	if !n.terrain.InBounds(x, y) {
		return nil
	}
	return &n.cells[y*n.terrain.Width()+x]
}

// Walkable reports whether the capability may occupy (x, y), taking
// dynamic obstacles and forced-blocked cells into account.
func (n *Grid) Walkable(x, y int, c movement.Capability) bool {
	cell := n.CellAt(x, y)
	if cell == nil {
		return false
	}
	if !c.Known() {
		c = movement.Walking
	}
	switch c {
	case movement.Flying:
		return cell.Flyable
	case movement.Swimming:
		return cell.Swimmable
	case movement.Amphibious:
		return cell.Walkable || cell.Swimmable
	case movement.AllTerrain:
		return cell.Walkable || cell.Flyable || cell.Swimmable
	default:
		return cell.Walkable
	}
}

// Cost returns the ground traversal cost multiplier at (x, y);
// +Inf when blocked or out of bounds.
func (n *Grid) Cost(x, y int) float64 {
	cell := n.CellAt(x, y)
	if cell == nil {
		return math.Inf(1)
	}
	return cell.Cost
}

// WithinBuffer reports whether (x, y) sits inside the soft clearance
// margin: close enough to a blocking cell that traversal cost doubles.
func (n *Grid) WithinBuffer(x, y int) bool {
	cell := n.CellAt(x, y)
	if cell == nil {
		return false
	}
	return cell.ObstacleDistance > 0 && cell.ObstacleDistance <= n.obstacleBuffer
}

// ObstacleDistance returns the distance-in-cells to the nearest
// blocking cell, or 0 when out of bounds. The value is exact after
// Rebuild and approximate after dynamic obstacle changes.
func (n *Grid) ObstacleDistance(x, y int) int {
	cell := n.CellAt(x, y)
	if cell == nil {
		return 0
	}
	return cell.ObstacleDistance
}
