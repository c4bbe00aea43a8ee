package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskfield/gridnav/internal/game/grid"
)

func TestFingerprintStable(t *testing.T) {
	a := grid.New(8, 6, 1.0)
	b := grid.New(8, 6, 1.0)
	a.SetCellType(3, 2, grid.Water)
	b.SetCellType(3, 2, grid.Water)

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	require.Len(t, Fingerprint(a), 64) // hex of 32 bytes
}

func TestFingerprintSensitivity(t *testing.T) {
	base := grid.New(8, 6, 1.0)

	cellChanged := grid.New(8, 6, 1.0)
	cellChanged.SetCellType(0, 0, grid.Obstacle)
	assert.NotEqual(t, Fingerprint(base), Fingerprint(cellChanged))

	sizeChanged := grid.New(8, 6, 2.0)
	assert.NotEqual(t, Fingerprint(base), Fingerprint(sizeChanged))

	dimsChanged := grid.New(6, 8, 1.0)
	assert.NotEqual(t, Fingerprint(base), Fingerprint(dimsChanged))

	overrideChanged := grid.New(8, 6, 1.0)
	overrideChanged.SetCell(1, 1, grid.Cell{Type: grid.Empty, SpeedOverride: 0.5})
	assert.NotEqual(t, Fingerprint(base), Fingerprint(overrideChanged))
}
