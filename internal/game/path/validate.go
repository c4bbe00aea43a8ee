package path

import (
	"fmt"
	"math"

	"github.com/duskfield/gridnav/internal/game/grid"
	"github.com/duskfield/gridnav/internal/game/movement"
)

// Flag a spawn when its path cost exceeds this multiple of the
// straight-line distance to the target.
const longPathRatio = 3.0

// SpawnConnectivity is the reachability verdict for one spawn point.
type SpawnConnectivity struct {
	Spawn    grid.WorldPos
	Valid    bool
	Cost     float64
	Distance float64
	Reason   string
}

// MapConnectivity aggregates per-spawn results for map authoring.
// Warnings and errors are human-readable and advisory only: a map with
// unreachable spawns is flagged, never rejected here.
type MapConnectivity struct {
	ValidSpawns   []SpawnConnectivity
	InvalidSpawns []SpawnConnectivity
	Warnings      []string
	Errors        []string
}

// Valid reports whether every spawn reached the target.
func (m MapConnectivity) Valid() bool {
	return len(m.InvalidSpawns) == 0 && len(m.ValidSpawns) > 0
}

// ValidateSpawnConnectivity checks that a spawn point can reach the
// target: a dedicated uncached search with a larger iteration budget
// and no smoothing.
func (e *Engine) ValidateSpawnConnectivity(spawn, target grid.WorldPos, c movement.Capability) SpawnConnectivity {
	out := SpawnConnectivity{
		Spawn:    spawn,
		Distance: euclid(spawn, target),
	}

	spawnCell := e.terrain.WorldToGrid(spawn)
	targetCell := e.terrain.WorldToGrid(target)
	if !e.terrain.InBounds(spawnCell.X, spawnCell.Y) {
		out.Reason = fmt.Sprintf("spawn point (%.1f, %.1f) is out of bounds", spawn.X, spawn.Y)
		return out
	}
	if !e.terrain.InBounds(targetCell.X, targetCell.Y) {
		out.Reason = fmt.Sprintf("target (%.1f, %.1f) is out of bounds", target.X, target.Y)
		return out
	}
	if !e.traversable(targetCell.X, targetCell.Y, c, 0) {
		out.Reason = fmt.Sprintf("target cell (%d, %d) is not traversable for %s",
			targetCell.X, targetCell.Y, c)
		return out
	}

	opts := DefaultOptions()
	opts.Movement = c
	opts.MaxIterations = validationIterations
	opts.SmoothPath = false

	r := e.compute(spawnCell, targetCell, opts)
	if !r.Success {
		out.Reason = fmt.Sprintf("no path found within %d iterations", opts.MaxIterations)
		return out
	}

	out.Valid = true
	out.Cost = r.Cost
	return out
}

// ValidateAllSpawnPoints checks every spawn against the target and
// aggregates advisory warnings: paths costing more than 3× their
// straight-line distance are unusually long, and a map with fewer than
// two reachable spawns is a design smell.
func (e *Engine) ValidateAllSpawnPoints(spawns []grid.WorldPos, target grid.WorldPos, c movement.Capability) MapConnectivity {
	var report MapConnectivity

	for _, spawn := range spawns {
		result := e.ValidateSpawnConnectivity(spawn, target, c)
		if !result.Valid {
			report.InvalidSpawns = append(report.InvalidSpawns, result)
			report.Errors = append(report.Errors, fmt.Sprintf(
				"spawn point (%.1f, %.1f) cannot reach target: %s",
				spawn.X, spawn.Y, result.Reason))
			continue
		}

		report.ValidSpawns = append(report.ValidSpawns, result)
		// Distance is in world units, cost in cell units.
		distCells := result.Distance / e.terrain.CellSize()
		if distCells > 0 && result.Cost/distCells > longPathRatio {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"unusually long path from spawn (%.1f, %.1f): cost %.1f vs straight-line %.1f",
				spawn.X, spawn.Y, result.Cost, distCells))
		}
	}

	if len(report.ValidSpawns) < 2 {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"only %d reachable spawn point(s); maps should have at least 2",
			len(report.ValidSpawns)))
	}
	return report
}

func euclid(a, b grid.WorldPos) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
