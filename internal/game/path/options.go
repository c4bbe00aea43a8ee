package path

import (
	"github.com/duskfield/gridnav/internal/game/grid"
	"github.com/duskfield/gridnav/internal/game/movement"
)

const (
	defaultMaxIterations = 1000
	validationIterations = 5000
	cacheCapacity        = 50
)

// Options parameterizes one pathfinding query. The zero value disables
// diagonals and smoothing; start from DefaultOptions for the standard
// behavior and adjust fields as needed.
type Options struct {
	// MaxIterations bounds the number of node expansions; the search
	// fails (it never returns a partial path) once exhausted.
	MaxIterations int
	AllowDiagonal bool
	SmoothPath    bool
	Movement      movement.Capability

	// MinObstacleDistance requires this many cells of clearance from
	// the nearest blocking cell (needs a navigation overlay; ignored
	// for flying).
	MinObstacleDistance float64

	// TerrainCostMultiplier scales every step's terrain cost.
	TerrainCostMultiplier float64

	// Predictive targeting: when enabled, the goal is projected
	// forward by TargetVelocity×PredictionTime. A projected cell that
	// is out of bounds or untraversable silently falls back to the
	// original goal.
	PredictiveTarget bool
	TargetVelocity   grid.WorldPos
	PredictionTime   float64
}

// DefaultOptions returns the standard query configuration.
func DefaultOptions() Options {
	return Options{
		MaxIterations:         defaultMaxIterations,
		AllowDiagonal:         true,
		SmoothPath:            true,
		Movement:              movement.Walking,
		TerrainCostMultiplier: 1,
	}
}

// normalized fills in unusable numeric values.
func (o Options) normalized() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
	if o.TerrainCostMultiplier <= 0 {
		o.TerrainCostMultiplier = 1
	}
	return o
}

// Result is the outcome of one pathfinding query. Failure is a value,
// not an error: per-frame AI reacts to Success without exception
// overhead on the hot path.
type Result struct {
	// Waypoints is the ordered route in world coordinates (cell
	// centers). Empty when Success is false, except for best-effort
	// emergency paths from FindPathWithFallback.
	Waypoints  []grid.WorldPos
	Success    bool
	Iterations int
	Cost       float64
}
