package grid

import "fmt"

// CellType classifies a terrain cell. The type determines default
// traversability and speed unless a per-cell override is present.
type CellType uint8

const (
	Empty CellType = iota
	Path
	Tower
	Blocked
	Obstacle
	Decorative
	RoughTerrain
	Water
	Bridge
	SpawnZone
	Border
)

var cellTypeNames = [...]string{
	Empty:        "empty",
	Path:         "path",
	Tower:        "tower",
	Blocked:      "blocked",
	Obstacle:     "obstacle",
	Decorative:   "decorative",
	RoughTerrain: "rough_terrain",
	Water:        "water",
	Bridge:       "bridge",
	SpawnZone:    "spawn_zone",
	Border:       "border",
}

// String returns the lowercase name used in map documents and logs.
func (t CellType) String() string {
	if int(t) < len(cellTypeNames) {
		return cellTypeNames[t]
	}
	return fmt.Sprintf("celltype(%d)", uint8(t))
}

// ParseCellType resolves a map-document type name to a CellType.
func ParseCellType(name string) (CellType, error) {
	for i, n := range cellTypeNames {
		if n == name {
			return CellType(i), nil
		}
	}
	return Blocked, fmt.Errorf("unknown cell type %q", name)
}

// Cell is the smallest addressable terrain unit.
// SpeedOverride > 0 replaces the type's default speed multiplier.
type Cell struct {
	Type          CellType
	SpeedOverride float64
	Height        float64 // 0..1
	Variant       uint8   // biome variant
	DecorationID  int32   // 0 = none
}

// Point is a grid-cell coordinate.
type Point struct {
	X, Y int
}

// WorldPos is a continuous world-space position. Also used as a
// velocity vector by predictive targeting.
type WorldPos struct {
	X, Y float64
}
