package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskfield/gridnav/internal/game/grid"
	"github.com/duskfield/gridnav/internal/game/movement"
)

const sampleMap = `
name: crossing
cell_size: 2.0
rows:
  - "....."
  - ".###."
  - "..=.."
  - ".~~~."
  - "....."
spawn_points:
  - {x: 1.0, y: 1.0}
  - {x: 9.0, y: 9.0}
target: {x: 5.0, y: 5.0}
movement: walking
`

func TestParseMap(t *testing.T) {
	doc, err := ParseMap([]byte(sampleMap))
	require.NoError(t, err)

	assert.Equal(t, "crossing", doc.Name)
	assert.Equal(t, 2.0, doc.CellSize)
	assert.Len(t, doc.Rows, 5)
	assert.Len(t, doc.SpawnPoints, 2)
	assert.Equal(t, 5.0, doc.Target.X)
	assert.Equal(t, movement.Walking, doc.Capability())
}

func TestParseMapRaggedRows(t *testing.T) {
	raw := []byte("name: bad\nrows:\n  - \"...\"\n  - \"....\"\n")
	_, err := ParseMap(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestParseMapEmpty(t *testing.T) {
	_, err := ParseMap([]byte("name: empty\n"))
	require.Error(t, err)
}

func TestParseMapDefaultCellSize(t *testing.T) {
	doc, err := ParseMap([]byte("name: tiny\nrows:\n  - \".\"\n"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, doc.CellSize)
}

func TestBuildGrid(t *testing.T) {
	doc, err := ParseMap([]byte(sampleMap))
	require.NoError(t, err)

	g, err := doc.BuildGrid()
	require.NoError(t, err)

	assert.Equal(t, 5, g.Width())
	assert.Equal(t, 5, g.Height())
	assert.Equal(t, grid.Empty, g.CellTypeAt(0, 0))
	assert.Equal(t, grid.Obstacle, g.CellTypeAt(2, 1))
	assert.Equal(t, grid.Bridge, g.CellTypeAt(2, 2))
	assert.Equal(t, grid.Water, g.CellTypeAt(2, 3))
}

func TestBuildGridCustomLegend(t *testing.T) {
	raw := []byte(`
name: custom
legend:
  "o": water
rows:
  - ".o."
`)
	doc, err := ParseMap(raw)
	require.NoError(t, err)

	g, err := doc.BuildGrid()
	require.NoError(t, err)
	assert.Equal(t, grid.Water, g.CellTypeAt(1, 0))
}

func TestBuildGridUnknownSymbol(t *testing.T) {
	doc, err := ParseMap([]byte("name: bad\nrows:\n  - \".?.\"\n"))
	require.NoError(t, err)

	_, err = doc.BuildGrid()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "legend")
}

func TestBuildGridBadLegendName(t *testing.T) {
	raw := []byte("name: bad\nlegend:\n  \"o\": lava\nrows:\n  - \"o\"\n")
	doc, err := ParseMap(raw)
	require.NoError(t, err)

	_, err = doc.BuildGrid()
	require.Error(t, err)
}

func TestLoadMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crossing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleMap), 0o644))

	doc, err := LoadMap(path)
	require.NoError(t, err)
	assert.Equal(t, "crossing", doc.Name)

	_, err = LoadMap(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestSpawnsAndTarget(t *testing.T) {
	doc, err := ParseMap([]byte(sampleMap))
	require.NoError(t, err)

	spawns := doc.Spawns()
	require.Len(t, spawns, 2)
	assert.Equal(t, grid.WorldPos{X: 1, Y: 1}, spawns[0])
	assert.Equal(t, grid.WorldPos{X: 5, Y: 5}, doc.TargetPos())
}
