package grid

import "math"

// Grid owns the canonical terrain cells for one map session.
// Width, height and cell size are fixed at construction; terrain
// generation mutates cell contents through the bulk helpers below.
//
// All read accessors are out-of-bounds safe: they return Blocked/nil
// sentinels instead of failing, so callers never need a bounds check
// before a lookup.
type Grid struct {
	width    int
	height   int
	cellSize float64
	cells    []Cell
}

// New creates a grid of Empty cells.
func New(width, height int, cellSize float64) *Grid {
	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cells:    make([]Cell, width*height),
	}
}

func (g *Grid) Width() int        { return g.width }
func (g *Grid) Height() int       { return g.height }
func (g *Grid) CellSize() float64 { return g.cellSize }

// InBounds reports whether (x, y) addresses a real cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// CellAt returns the cell at (x, y), or nil when out of bounds.
func (g *Grid) CellAt(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.cells[y*g.width+x]
}

// CellTypeAt returns the cell type at (x, y). Out-of-bounds reads
// return Blocked.
func (g *Grid) CellTypeAt(x, y int) CellType {
	if !g.InBounds(x, y) {
		return Blocked
	}
	return g.cells[y*g.width+x].Type
}

// SetCellType replaces the type at (x, y), clearing any overrides.
// Out-of-bounds writes are ignored.
func (g *Grid) SetCellType(x, y int, t CellType) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = Cell{Type: t}
}

// SetCell replaces the full cell value at (x, y).
func (g *Grid) SetCell(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = c
}

// WorldToGrid maps a world position to the containing cell (floor division).
func (g *Grid) WorldToGrid(pos WorldPos) Point {
	return Point{
		X: int(math.Floor(pos.X / g.cellSize)),
		Y: int(math.Floor(pos.Y / g.cellSize)),
	}
}

// GridToWorld returns the world-space center of a cell.
func (g *Grid) GridToWorld(p Point) WorldPos {
	return WorldPos{
		X: (float64(p.X) + 0.5) * g.cellSize,
		Y: (float64(p.Y) + 0.5) * g.cellSize,
	}
}

// MovementSpeedAt returns the base speed multiplier at (x, y): 0 for
// impassable ground (water, blocked, obstacle, tower, border), a bonus
// for Path, 1 otherwise. A per-cell override wins over the default.
func (g *Grid) MovementSpeedAt(x, y int) float64 {
	c := g.CellAt(x, y)
	if c == nil {
		return 0
	}
	if c.SpeedOverride > 0 {
		return c.SpeedOverride
	}
	switch c.Type {
	case Water, Blocked, Obstacle, Tower, Border:
		return 0
	case Path:
		return 1.2
	case RoughTerrain:
		return 0.5
	default:
		return 1.0
	}
}

// Neighbors returns the in-bounds 4-cardinal neighbors of (x, y).
// Diagonal legality is the pathfinder's concern, not the grid's.
func (g *Grid) Neighbors(x, y int) []Point {
	out := make([]Point, 0, 4)
	for _, d := range [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		nx, ny := x+d.X, y+d.Y
		if g.InBounds(nx, ny) {
			out = append(out, Point{nx, ny})
		}
	}
	return out
}

// SetPath marks the given cells as Path (generation helper).
func (g *Grid) SetPath(points []Point) {
	for _, p := range points {
		g.SetCellType(p.X, p.Y, Path)
	}
}

// AddObstacles marks the given cells as Obstacle, skipping Path cells
// so generation cannot sever its own routes.
func (g *Grid) AddObstacles(points []Point) {
	for _, p := range points {
		if g.CellTypeAt(p.X, p.Y) == Path {
			continue
		}
		g.SetCellType(p.X, p.Y, Obstacle)
	}
}

// SetBorders marks the outer ring of the grid as Border.
func (g *Grid) SetBorders() {
	for x := 0; x < g.width; x++ {
		g.SetCellType(x, 0, Border)
		g.SetCellType(x, g.height-1, Border)
	}
	for y := 0; y < g.height; y++ {
		g.SetCellType(0, y, Border)
		g.SetCellType(g.width-1, y, Border)
	}
}

// SetSpawnZones marks the given cells as SpawnZone.
func (g *Grid) SetSpawnZones(points []Point) {
	for _, p := range points {
		g.SetCellType(p.X, p.Y, SpawnZone)
	}
}
