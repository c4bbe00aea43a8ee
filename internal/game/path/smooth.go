package path

import (
	"github.com/duskfield/gridnav/internal/game/grid"
	"github.com/duskfield/gridnav/internal/game/movement"
)

// smooth performs greedy line-of-sight reduction (string pulling): each
// retained anchor jumps to the furthest later waypoint reachable by an
// unobstructed straight line. Every kept segment is verified cell by
// cell, so smoothing never introduces an invalid shortcut. The pass is
// idempotent: smoothing a smoothed path returns it unchanged.
func (e *Engine) smooth(cells []grid.Point, opts Options) []grid.Point {
	if len(cells) <= 2 {
		return cells
	}

	out := make([]grid.Point, 0, len(cells))
	out = append(out, cells[0])

	cur := 0
	for cur < len(cells)-1 {
		furthest := cur + 1
		for i := len(cells) - 1; i > cur+1; i-- {
			if e.lineTraversable(cells[cur], cells[i], opts.Movement, opts.MinObstacleDistance) {
				furthest = i
				break
			}
		}
		out = append(out, cells[furthest])
		cur = furthest
	}
	return out
}

// lineTraversable walks the straight cell line from a to b and checks
// every cell for traversability.
func (e *Engine) lineTraversable(a, b grid.Point, c movement.Capability, minObstacleDistance float64) bool {
	it := newLineIterator(a, b)
	for it.next() {
		p := it.point()
		if !e.traversable(p.X, p.Y, c, minObstacleDistance) {
			return false
		}
	}
	return true
}
