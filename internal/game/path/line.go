package path

import "github.com/duskfield/gridnav/internal/game/grid"

// lineIterator steps through the grid cells under a straight line
// between two cells (Bresenham). Smoothing and path validation use it
// to verify segments cell by cell.
type lineIterator struct {
	x, y     int
	tx, ty   int
	dx, dy   int
	sx, sy   int
	err      int
	started  bool
	finished bool
}

func newLineIterator(a, b grid.Point) *lineIterator {
	it := &lineIterator{x: a.X, y: a.Y, tx: b.X, ty: b.Y}
	it.dx = absInt(b.X - a.X)
	it.dy = absInt(b.Y - a.Y)
	it.sx = 1
	if a.X > b.X {
		it.sx = -1
	}
	it.sy = 1
	if a.Y > b.Y {
		it.sy = -1
	}
	it.err = it.dx - it.dy
	return it
}

// next advances to the following cell; the first call yields the start.
// Returns false once the end cell has been produced.
func (it *lineIterator) next() bool {
	if it.finished {
		return false
	}
	if !it.started {
		it.started = true
		it.finished = it.x == it.tx && it.y == it.ty
		return true
	}

	e2 := it.err * 2
	if e2 > -it.dy {
		it.err -= it.dy
		it.x += it.sx
	}
	if e2 < it.dx {
		it.err += it.dx
		it.y += it.sy
	}
	it.finished = it.x == it.tx && it.y == it.ty
	return true
}

func (it *lineIterator) point() grid.Point {
	return grid.Point{X: it.x, Y: it.y}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
