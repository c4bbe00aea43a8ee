package db

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"golang.org/x/crypto/blake2b"

	"github.com/duskfield/gridnav/internal/game/grid"
)

// Fingerprint computes a stable BLAKE2b-256 digest of a terrain grid.
// Two grids with the same dimensions, cell size and cell layout produce
// the same fingerprint.
func Fingerprint(g *grid.Grid) string {
	h, _ := blake2b.New256(nil)

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(g.Width()))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(g.Height()))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(g.CellSize()))
	h.Write(buf[:])

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.CellAt(x, y)
			h.Write([]byte{byte(c.Type)})
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c.SpeedOverride))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
