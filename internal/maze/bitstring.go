package maze

import (
	"fmt"
	"strings"
)

// Bitstring is the flat wall chromosome of a grid. true means the wall is
// present.
type Bitstring []bool

// BitstringLen returns the number of internal walls of a rows x cols grid.
func BitstringLen(rows, cols int) int {
	return rows*(cols-1) + cols*(rows-1)
}

// WallBitstring lists every internal wall exactly once: cells are visited
// row-major and each contributes its East wall, then its South wall, skipping
// the ones on the boundary.
func (g *Grid) WallBitstring() Bitstring {
	bits := make(Bitstring, 0, BitstringLen(g.rows, g.cols))
	for row := range g.rows {
		for col := range g.cols {
			c := &g.cells[row*g.cols+col]
			if col < g.cols-1 {
				bits = append(bits, c.Walls[East])
			}
			if row < g.rows-1 {
				bits = append(bits, c.Walls[South])
			}
		}
	}
	return bits
}

// SetWallBitstring is the inverse of [Grid.WallBitstring]. The grid is left
// untouched when the length does not match.
func (g *Grid) SetWallBitstring(bits Bitstring) error {
	if want := BitstringLen(g.rows, g.cols); len(bits) != want {
		return fmt.Errorf(
			"%d bits for %dx%d grid, want %d: %w",
			len(bits), g.rows, g.cols, want, ErrLengthMismatch,
		)
	}
	i := 0
	for row := range g.rows {
		for col := range g.cols {
			p := Position{Row: row, Col: col}
			if col < g.cols-1 {
				g.setWallUnchecked(p, East, bits[i])
				i++
			}
			if row < g.rows-1 {
				g.setWallUnchecked(p, South, bits[i])
				i++
			}
		}
	}
	return nil
}

func (g *Grid) setWallUnchecked(p Position, d Direction, present bool) {
	q := p.Step(d)
	g.cells[g.Index(p)].Walls[d] = present
	g.cells[g.Index(q)].Walls[d.Opposite()] = present
}

func (b Bitstring) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Count returns the number of walls present.
func (b Bitstring) Count() (n int) {
	for _, bit := range b {
		if bit {
			n++
		}
	}
	return
}

func ParseBitstring(s string) (Bitstring, error) {
	bits := make(Bitstring, len(s))
	for i, r := range s {
		switch r {
		case '0':
		case '1':
			bits[i] = true
		default:
			return nil, fmt.Errorf("invalid bit %q at %d", r, i)
		}
	}
	return bits, nil
}
