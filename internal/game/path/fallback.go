package path

import (
	"math"
	"sort"

	"github.com/duskfield/gridnav/internal/game/grid"
)

// Candidate probe rings around an unreachable goal, in cells.
var fallbackRadii = [3]int{2, 3, 5}

const fallbackAngles = 8

// FindPathWithFallback runs the primary search and, on failure,
// escalates through three recovery stages: a relaxed retry (no
// clearance requirement, doubled iteration budget), alternative goal
// candidates on expanding rings around the original goal, and finally a
// best-effort emergency path that steps straight at the goal and
// deflects around blockers. The emergency path may stop short of the
// goal; its result reports Success only when the goal cell was reached,
// but the waypoints are returned either way.
func (e *Engine) FindPathWithFallback(start, goal grid.WorldPos, opts Options) Result {
	opts = opts.normalized()

	r := e.FindPath(start, goal, opts)
	if r.Success {
		return r
	}

	// Recovery searches bypass the cache: the key carries no clearance,
	// so a cached relaxed route would later satisfy a strict query.
	relaxed := opts
	relaxed.MinObstacleDistance = 0
	relaxed.MaxIterations = opts.MaxIterations * 2
	if r = e.findUncached(start, goal, relaxed); r.Success {
		return r
	}

	for _, candidate := range e.goalCandidates(start, goal, relaxed) {
		if r = e.findUncached(start, candidate, relaxed); r.Success {
			return r
		}
	}

	return e.emergencyPath(start, goal, relaxed)
}

// goalCandidates proposes traversable cells near the goal, ordered by
// how close their bearing is to the start side of the goal (so the
// agent ends up on the approachable flank) and then by ring radius.
func (e *Engine) goalCandidates(start, goal grid.WorldPos, opts Options) []grid.WorldPos {
	bearing := math.Atan2(start.Y-goal.Y, start.X-goal.X)

	type candidate struct {
		pos       grid.WorldPos
		angleDiff float64
		radius    int
	}
	candidates := make([]candidate, 0, len(fallbackRadii)*fallbackAngles)

	for _, radius := range fallbackRadii {
		dist := float64(radius) * e.terrain.CellSize()
		for i := 0; i < fallbackAngles; i++ {
			angle := 2 * math.Pi * float64(i) / fallbackAngles
			pos := grid.WorldPos{
				X: goal.X + dist*math.Cos(angle),
				Y: goal.Y + dist*math.Sin(angle),
			}
			cell := e.terrain.WorldToGrid(pos)
			if !e.traversable(cell.X, cell.Y, opts.Movement, 0) {
				continue
			}
			diff := math.Abs(math.Remainder(angle-bearing, 2*math.Pi))
			candidates = append(candidates, candidate{pos: pos, angleDiff: diff, radius: radius})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].angleDiff != candidates[j].angleDiff {
			return candidates[i].angleDiff < candidates[j].angleDiff
		}
		return candidates[i].radius < candidates[j].radius
	})

	out := make([]grid.WorldPos, len(candidates))
	for i, c := range candidates {
		out[i] = c.pos
	}
	return out
}

// emergencyPath steps directly toward the goal, deflecting around the
// first blocking cell via perpendicular probes. Bounded by the grid
// perimeter; gives up when both probes are blocked.
func (e *Engine) emergencyPath(start, goal grid.WorldPos, opts Options) Result {
	cur := e.terrain.WorldToGrid(start)
	goalCell := e.terrain.WorldToGrid(goal)

	cells := []grid.Point{cur}
	cost := 0.0
	limit := e.terrain.Width() + e.terrain.Height()

	for i := 0; i < limit && cur != goalCell; i++ {
		step := grid.Point{X: sign(goalCell.X - cur.X), Y: sign(goalCell.Y - cur.Y)}
		next := grid.Point{X: cur.X + step.X, Y: cur.Y + step.Y}

		if !e.traversable(next.X, next.Y, opts.Movement, 0) {
			// Perpendicular probes: rotate the step left, then right.
			left := grid.Point{X: cur.X - step.Y, Y: cur.Y + step.X}
			right := grid.Point{X: cur.X + step.Y, Y: cur.Y - step.X}
			if e.traversable(left.X, left.Y, opts.Movement, 0) {
				next = left
			} else if e.traversable(right.X, right.Y, opts.Movement, 0) {
				next = right
			} else {
				break
			}
		}

		stepDist := 1.0
		if next.X != cur.X && next.Y != cur.Y {
			stepDist = math.Sqrt2
		}
		cost += e.stepCost(next.X, next.Y, stepDist, opts)
		cur = next
		cells = append(cells, cur)
	}

	if len(cells) < 2 {
		return Result{}
	}
	waypoints := make([]grid.WorldPos, len(cells))
	for i, p := range cells {
		waypoints[i] = e.terrain.GridToWorld(p)
	}
	return Result{
		Waypoints: waypoints,
		Success:   cur == goalCell,
		Cost:      cost,
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
