package maze

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Codes returns the [Cell.Code] of every cell in row-major order.
func (g *Grid) Codes() []uint8 {
	codes := make([]uint8, len(g.cells))
	for i, c := range g.cells {
		codes[i] = c.Code()
	}
	return codes
}

// FromCodes rebuilds a grid from per-cell wall codes. Every code must agree
// with its neighbors and keep the boundary closed.
func FromCodes(rows, cols int, codes []uint8) (*Grid, error) {
	g, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(codes) != g.Len() {
		return nil, fmt.Errorf(
			"%d codes for %dx%d grid: %w", len(codes), rows, cols, ErrLengthMismatch,
		)
	}
	for i, code := range codes {
		if code > 0xf {
			return nil, fmt.Errorf("code %d at %s exceeds 4 bits", code, g.PositionAt(i))
		}
		for _, d := range Directions {
			g.cells[i].Walls[d] = code&(1<<d) != 0
		}
	}
	if err := g.CheckMirrored(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInconsistentWalls, err)
	}
	Log.WithFields(logrus.Fields{
		"rows": rows, "cols": cols,
	}).Debug("grid decoded from wall codes")
	return g, nil
}
