package generate

import (
	"github.com/gammazero/deque"
	"github.com/vancomm/mazes/internal/maze"
)

// RecursiveDivision starts from an open grid and splits regions with a wall
// that has a single gap. Regions stop splitting once either side is at most
// MinSize cells; MinSize above 1 leaves open rooms and therefore loops.
type RecursiveDivision struct {
	MinSize int
}

func (RecursiveDivision) Name() string { return "recursive-division" }

type region struct {
	row, col      int
	height, width int
}

func (gen RecursiveDivision) Generate(g *maze.Grid, seed uint64) (Result, error) {
	g.Open()
	r := NewRand(seed)
	minSize := max(gen.MinSize, 1)

	var (
		res   Result
		stack deque.Deque[region]
	)
	stack.PushBack(region{0, 0, g.Rows(), g.Cols()})

	for stack.Len() > 0 {
		reg := stack.PopBack()
		if reg.height <= minSize || reg.width <= minSize {
			continue
		}

		horizontal := reg.height > reg.width
		if reg.height == reg.width {
			horizontal = r.IntN(2) == 0
		}

		if horizontal {
			// wall below row at
			at := reg.row + r.IntN(reg.height-1)
			gap := reg.col + r.IntN(reg.width)
			for col := reg.col; col < reg.col+reg.width; col++ {
				if col != gap {
					raise(g, maze.Pos(at, col), maze.South)
					res.Raised++
				}
			}
			stack.PushBack(region{at + 1, reg.col, reg.row + reg.height - at - 1, reg.width})
			stack.PushBack(region{reg.row, reg.col, at - reg.row + 1, reg.width})
		} else {
			// wall right of column at
			at := reg.col + r.IntN(reg.width-1)
			gap := reg.row + r.IntN(reg.height)
			for row := reg.row; row < reg.row+reg.height; row++ {
				if row != gap {
					raise(g, maze.Pos(row, at), maze.East)
					res.Raised++
				}
			}
			stack.PushBack(region{reg.row, at + 1, reg.height, reg.col + reg.width - at - 1})
			stack.PushBack(region{reg.row, reg.col, reg.height, at - reg.col + 1})
		}
	}
	res.Carved = g.OpenEdges()
	return res, nil
}
