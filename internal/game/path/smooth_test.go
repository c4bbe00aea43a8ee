package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskfield/gridnav/internal/game/grid"
)

func TestSmoothingIdempotent(t *testing.T) {
	e, _ := newTestEngine(t, 10, 10, buildWallWithGap)

	opts := DefaultOptions()
	opts.SmoothPath = false
	r := e.FindPath(center(0, 2), center(9, 8), opts)
	require.True(t, r.Success)

	raw := cellsOf(e, r)
	once := e.smooth(raw, opts)
	twice := e.smooth(once, opts)
	assert.Equal(t, once, twice)
	assert.LessOrEqual(t, len(once), len(raw))
}

func TestSmoothingNeverCutsThroughObstacles(t *testing.T) {
	e, _ := newTestEngine(t, 10, 10, buildWallWithGap)

	r := e.FindPath(center(0, 2), center(9, 8), DefaultOptions())
	require.True(t, r.Success)

	// Every retained segment must be traversable cell by cell.
	cells := cellsOf(e, r)
	for i := 1; i < len(cells); i++ {
		assert.True(t, e.lineTraversable(cells[i-1], cells[i], DefaultOptions().Movement, 0))
	}
	// The smoothed route still passes the only gap.
	assert.Contains(t, e.routeCells(r.Waypoints), grid.Point{X: 5, Y: 5})
}

func TestSmoothShortPathsUntouched(t *testing.T) {
	e, _ := newTestEngine(t, 5, 5, nil)

	two := []grid.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	assert.Equal(t, two, e.smooth(two, DefaultOptions()))

	one := []grid.Point{{X: 2, Y: 2}}
	assert.Equal(t, one, e.smooth(one, DefaultOptions()))
}

func TestLineIteratorCoversEndpoints(t *testing.T) {
	it := newLineIterator(grid.Point{X: 0, Y: 0}, grid.Point{X: 3, Y: 1})
	var seen []grid.Point
	for it.next() {
		seen = append(seen, it.point())
	}
	require.NotEmpty(t, seen)
	assert.Equal(t, grid.Point{X: 0, Y: 0}, seen[0])
	assert.Equal(t, grid.Point{X: 3, Y: 1}, seen[len(seen)-1])

	// Degenerate single-cell line.
	it = newLineIterator(grid.Point{X: 2, Y: 2}, grid.Point{X: 2, Y: 2})
	seen = seen[:0]
	for it.next() {
		seen = append(seen, it.point())
	}
	assert.Equal(t, []grid.Point{{X: 2, Y: 2}}, seen)
}
