// Package data loads authored map documents: YAML files describing the
// terrain layout, spawn points and validation target for one map.
package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/duskfield/gridnav/internal/game/grid"
	"github.com/duskfield/gridnav/internal/game/movement"
)

// defaultLegend maps row runes to cell types. A document legend entry
// overrides or extends it.
var defaultLegend = map[rune]grid.CellType{
	'.': grid.Empty,
	'*': grid.Path,
	'T': grid.Tower,
	'X': grid.Blocked,
	'#': grid.Obstacle,
	'D': grid.Decorative,
	'%': grid.RoughTerrain,
	'~': grid.Water,
	'=': grid.Bridge,
	'S': grid.SpawnZone,
	'B': grid.Border,
}

// Point is a world-space coordinate in a map document.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// MapDocument is the authored description of one map.
type MapDocument struct {
	Name        string            `yaml:"name"`
	CellSize    float64           `yaml:"cell_size"`
	Legend      map[string]string `yaml:"legend"`
	Rows        []string          `yaml:"rows"`
	SpawnPoints []Point           `yaml:"spawn_points"`
	Target      Point             `yaml:"target"`
	Movement    string            `yaml:"movement"`
}

// LoadMap reads and parses a map document from disk.
func LoadMap(path string) (*MapDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map %s: %w", path, err)
	}
	doc, err := ParseMap(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing map %s: %w", path, err)
	}
	slog.Info("map document loaded", "path", path, "name", doc.Name,
		"rows", len(doc.Rows), "spawns", len(doc.SpawnPoints))
	return doc, nil
}

// ParseMap parses a YAML map document and validates its shape.
func ParseMap(raw []byte) (*MapDocument, error) {
	var doc MapDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling map document: %w", err)
	}

	if len(doc.Rows) == 0 {
		return nil, fmt.Errorf("map %q has no rows", doc.Name)
	}
	width := len([]rune(doc.Rows[0]))
	for i, row := range doc.Rows {
		if len([]rune(row)) != width {
			return nil, fmt.Errorf("map %q row %d has %d cells, want %d",
				doc.Name, i, len([]rune(row)), width)
		}
	}
	if doc.CellSize <= 0 {
		doc.CellSize = 1
	}
	return &doc, nil
}

// Capability returns the document's movement capability; an absent or
// unknown name resolves to walking.
func (d *MapDocument) Capability() movement.Capability {
	return movement.ParseCapability(d.Movement)
}

// BuildGrid materializes the terrain grid from the document rows.
func (d *MapDocument) BuildGrid() (*grid.Grid, error) {
	legend, err := d.legend()
	if err != nil {
		return nil, err
	}

	height := len(d.Rows)
	width := len([]rune(d.Rows[0]))
	g := grid.New(width, height, d.CellSize)

	for y, row := range d.Rows {
		for x, r := range []rune(row) {
			t, ok := legend[r]
			if !ok {
				return nil, fmt.Errorf("map %q row %d: no legend entry for %q", d.Name, y, r)
			}
			g.SetCellType(x, y, t)
		}
	}
	return g, nil
}

func (d *MapDocument) legend() (map[rune]grid.CellType, error) {
	legend := make(map[rune]grid.CellType, len(defaultLegend)+len(d.Legend))
	for r, t := range defaultLegend {
		legend[r] = t
	}
	for sym, name := range d.Legend {
		runes := []rune(sym)
		if len(runes) != 1 {
			return nil, fmt.Errorf("map %q legend symbol %q must be a single rune", d.Name, sym)
		}
		t, err := grid.ParseCellType(name)
		if err != nil {
			return nil, fmt.Errorf("map %q legend: %w", d.Name, err)
		}
		legend[runes[0]] = t
	}
	return legend, nil
}

// Spawns converts the document spawn points to world positions.
func (d *MapDocument) Spawns() []grid.WorldPos {
	out := make([]grid.WorldPos, len(d.SpawnPoints))
	for i, p := range d.SpawnPoints {
		out[i] = grid.WorldPos{X: p.X, Y: p.Y}
	}
	return out
}

// TargetPos converts the document target to a world position.
func (d *MapDocument) TargetPos() grid.WorldPos {
	return grid.WorldPos{X: d.Target.X, Y: d.Target.Y}
}
