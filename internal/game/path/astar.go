package path

import (
	"container/heap"
	"math"

	"github.com/duskfield/gridnav/internal/game/grid"
)

// pathNode is a search-scoped A* node; it never outlives one query.
type pathNode struct {
	x, y    int
	g, h, f float64
	parent  *pathNode
	index   int // heap index
}

// search runs A* from start to goal and returns the goal node (nil on
// failure) plus the number of expansions spent. Success requires the
// goal node to be popped; exhausting MaxIterations fails the query
// outright rather than returning a partial path.
func (e *Engine) search(start, goal grid.Point, opts Options) (*pathNode, int) {
	root := &pathNode{x: start.X, y: start.Y}
	root.h = heuristic(start, goal)
	root.f = root.h

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, root)

	gScore := map[grid.Point]float64{start: 0}
	closed := make(map[grid.Point]struct{}, 128)

	iterations := 0
	for open.Len() > 0 && iterations < opts.MaxIterations {
		iterations++
		current := heap.Pop(open).(*pathNode)

		if current.x == goal.X && current.y == goal.Y {
			return current, iterations
		}

		key := grid.Point{X: current.x, Y: current.y}
		if _, ok := closed[key]; ok {
			continue
		}
		closed[key] = struct{}{}

		e.expand(current, goal, opts, open, gScore, closed)
	}
	return nil, iterations
}

// Cardinal directions first, then diagonals.
var directions = [8]grid.Point{
	{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
	{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

func (e *Engine) expand(
	current *pathNode,
	goal grid.Point,
	opts Options,
	open *nodeHeap,
	gScore map[grid.Point]float64,
	closed map[grid.Point]struct{},
) {
	for i, d := range directions {
		diagonal := i >= 4
		if diagonal && !opts.AllowDiagonal {
			continue
		}

		np := grid.Point{X: current.x + d.X, Y: current.y + d.Y}
		if _, ok := closed[np]; ok {
			continue
		}
		if !e.traversable(np.X, np.Y, opts.Movement, opts.MinObstacleDistance) {
			continue
		}
		if diagonal && !e.diagonalAllowed(current.x, current.y, d, opts) {
			continue
		}

		stepDist := 1.0
		if diagonal {
			stepDist = math.Sqrt2
		}
		tentative := current.g + e.stepCost(np.X, np.Y, stepDist, opts)
		if old, ok := gScore[np]; ok && tentative >= old {
			continue
		}
		gScore[np] = tentative

		node := &pathNode{
			x: np.X, y: np.Y,
			g:      tentative,
			h:      heuristic(np, goal),
			parent: current,
		}
		node.f = node.g + node.h
		heap.Push(open, node)
	}
}

// diagonalAllowed blocks corner-cutting: a diagonal step needs both
// orthogonal neighbors traversable, unless the target or either
// orthogonal cell is a bridge (bridges connect land across water, so
// diagonal crossing at them stays legal).
func (e *Engine) diagonalAllowed(x, y int, d grid.Point, opts Options) bool {
	ox1, oy1 := x+d.X, y
	ox2, oy2 := x, y+d.Y
	if e.traversable(ox1, oy1, opts.Movement, opts.MinObstacleDistance) &&
		e.traversable(ox2, oy2, opts.Movement, opts.MinObstacleDistance) {
		return true
	}
	return e.terrain.CellTypeAt(x+d.X, y+d.Y) == grid.Bridge ||
		e.terrain.CellTypeAt(ox1, oy1) == grid.Bridge ||
		e.terrain.CellTypeAt(ox2, oy2) == grid.Bridge
}

// heuristic is the straight-line distance in cell units. It can
// underestimate slightly on speed-bonus terrain; accepted trade-off.
func heuristic(a, b grid.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// reconstruct walks parent links back to the start and reverses.
func reconstruct(goal *pathNode) []grid.Point {
	cells := make([]grid.Point, 0, 32)
	for n := goal; n != nil; n = n.parent {
		cells = append(cells, grid.Point{X: n.x, Y: n.y})
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}

// nodeHeap is the A* open list: a min-heap ordered by f.
type nodeHeap []*pathNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }

func (h *nodeHeap) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // release for GC
	node.index = -1
	*h = old[:n-1]
	return node
}
