package movement

import "github.com/duskfield/gridnav/internal/game/grid"

// TerrainRule describes how a cell type can be traversed and at what
// speed. DamagePerSecond/StatusEffect are an extension point for
// hazardous terrain; the default table leaves them zero.
type TerrainRule struct {
	Walkable        bool
	Flyable         bool
	Swimmable       bool
	SpeedMultiplier float64
	DamagePerSecond float64
	StatusEffect    string
}

var terrainRules = map[grid.CellType]TerrainRule{
	grid.Empty:        {Walkable: true, Flyable: true, SpeedMultiplier: 1.0},
	grid.Path:         {Walkable: true, Flyable: true, SpeedMultiplier: 1.2},
	grid.Tower:        {Flyable: true},
	grid.Blocked:      {},
	grid.Obstacle:     {Flyable: true},
	grid.Decorative:   {Walkable: true, Flyable: true, SpeedMultiplier: 1.0},
	grid.RoughTerrain: {Walkable: true, Flyable: true, SpeedMultiplier: 0.5},
	grid.Water:        {Flyable: true, Swimmable: true, SpeedMultiplier: 0.8},
	grid.Bridge:       {Walkable: true, Flyable: true, SpeedMultiplier: 1.0},
	grid.SpawnZone:    {Walkable: true, Flyable: true, SpeedMultiplier: 1.0},
	grid.Border:       {},
}

// RuleFor returns the terrain rule for a cell type. Types missing from
// the table behave as fully blocked.
func RuleFor(t grid.CellType) TerrainRule {
	return terrainRules[t]
}
