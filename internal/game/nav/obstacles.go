package nav

import (
	"math"

	"github.com/duskfield/gridnav/internal/game/grid"
)

// AddDynamicObstacle blocks the disk of cells covered by a structure
// placed at pos with the given world-space radius. Flags and cost are
// updated exactly; ObstacleDistance of surrounding cells is NOT
// recomputed and stays approximate until the next Rebuild.
func (n *Grid) AddDynamicObstacle(pos grid.WorldPos, radius float64) {
	anchor := n.terrain.WorldToGrid(pos)
	cells := n.diskCells(anchor, radius)
	if len(cells) == 0 {
		return
	}

	n.obstacles[anchor] = cells
	for _, p := range cells {
		n.covered[p]++
		n.blockCell(p.X, p.Y)
		n.notify(p.X, p.Y)
	}
}

// RemoveDynamicObstacle unblocks the obstacle anchored at the cell
// containing pos. Cells still covered by an overlapping obstacle stay
// blocked. Returns false when no obstacle is registered there.
func (n *Grid) RemoveDynamicObstacle(pos grid.WorldPos) bool {
	anchor := n.terrain.WorldToGrid(pos)
	cells, ok := n.obstacles[anchor]
	if !ok {
		return false
	}
	delete(n.obstacles, anchor)

	for _, p := range cells {
		n.covered[p]--
		if n.covered[p] > 0 {
			continue
		}
		delete(n.covered, p)
		n.restoreCell(p.X, p.Y)
		n.notify(p.X, p.Y)
	}
	return true
}

// DynamicObstacleCount reports the number of registered obstacles.
func (n *Grid) DynamicObstacleCount() int {
	return len(n.obstacles)
}

// HasClearance reports whether every cell in the footprint disk around
// pos is walkable, i.e. an entity of the given radius fits there.
func (n *Grid) HasClearance(pos grid.WorldPos, radius float64) bool {
	center := n.terrain.WorldToGrid(pos)
	for _, p := range n.diskCells(center, radius) {
		cell := n.CellAt(p.X, p.Y)
		if cell == nil || !cell.Walkable {
			return false
		}
	}
	return n.terrain.InBounds(center.X, center.Y)
}

// NearestSafePosition searches outward ring by ring for the closest
// position where an entity of the given radius fits. Within the first
// ring containing any fitting cell, the candidate with minimum
// Euclidean distance to pos wins. ok is false when maxSearchRadius
// rings are exhausted.
func (n *Grid) NearestSafePosition(pos grid.WorldPos, radius float64, maxSearchRadius int) (grid.WorldPos, bool) {
	center := n.terrain.WorldToGrid(pos)

	for ring := 0; ring <= maxSearchRadius; ring++ {
		best := grid.WorldPos{}
		bestDist := math.Inf(1)
		for _, p := range ringCells(center, ring) {
			if !n.terrain.InBounds(p.X, p.Y) {
				continue
			}
			candidate := n.terrain.GridToWorld(p)
			if !n.HasClearance(candidate, radius) {
				continue
			}
			dx := candidate.X - pos.X
			dy := candidate.Y - pos.Y
			if d := dx*dx + dy*dy; d < bestDist {
				bestDist = d
				best = candidate
			}
		}
		if !math.IsInf(bestDist, 1) {
			return best, true
		}
	}
	return grid.WorldPos{}, false
}

// blockCell forces a cell non-walkable with infinite ground cost.
// Flyable stays set: runtime structures block the ground, not the air.
func (n *Grid) blockCell(x, y int) {
	cell := n.CellAt(x, y)
	if cell == nil {
		return
	}
	cell.Walkable = false
	cell.Swimmable = false
	cell.Cost = math.Inf(1)
	cell.ObstacleDistance = 0
}

// restoreCell recomputes a cell's flags and cost from the terrain after
// an obstacle is removed. The distance field is only patched locally
// (buffer+1), so clearance costs near the removed obstacle remain
// conservative until the next Rebuild.
func (n *Grid) restoreCell(x, y int) {
	cell := n.CellAt(x, y)
	if cell == nil {
		return
	}
	t := n.terrain.CellTypeAt(x, y)
	rule := n.rules.RuleFor(t)
	cell.Walkable = rule.Walkable
	cell.Swimmable = rule.Swimmable
	cell.Flyable = rule.Flyable
	cell.ObstacleDistance = n.obstacleBuffer + 1
	switch {
	case !rule.Walkable:
		cell.Cost = math.Inf(1)
	case t == grid.RoughTerrain:
		cell.Cost = 2.0
	default:
		cell.Cost = 1.0
	}
}

func (n *Grid) notify(x, y int) {
	if n.onChange != nil {
		n.onChange(x, y)
	}
}

// diskCells lists the in-bounds cells within a world-space radius of a
// center cell. Radius 0 still covers the center cell itself.
func (n *Grid) diskCells(center grid.Point, radius float64) []grid.Point {
	r := int(math.Ceil(radius / n.terrain.CellSize()))
	out := make([]grid.Point, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r && !(dx == 0 && dy == 0) {
				continue
			}
			p := grid.Point{X: center.X + dx, Y: center.Y + dy}
			if n.terrain.InBounds(p.X, p.Y) {
				out = append(out, p)
			}
		}
	}
	return out
}

// ringCells lists the cells at Chebyshev distance exactly ring from
// center. Ring 0 is the center itself.
func ringCells(center grid.Point, ring int) []grid.Point {
	if ring == 0 {
		return []grid.Point{center}
	}
	out := make([]grid.Point, 0, 8*ring)
	for dx := -ring; dx <= ring; dx++ {
		out = append(out, grid.Point{X: center.X + dx, Y: center.Y - ring})
		out = append(out, grid.Point{X: center.X + dx, Y: center.Y + ring})
	}
	for dy := -ring + 1; dy < ring; dy++ {
		out = append(out, grid.Point{X: center.X - ring, Y: center.Y + dy})
		out = append(out, grid.Point{X: center.X + ring, Y: center.Y + dy})
	}
	return out
}
