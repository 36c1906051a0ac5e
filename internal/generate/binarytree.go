package generate

import "github.com/vancomm/mazes/internal/maze"

// Corner selects the pair of directions a [BinaryTree] carves toward.
type Corner uint8

const (
	NorthWest Corner = iota
	NorthEast
	SouthWest
	SouthEast
)

func (c Corner) directions() (vertical, horizontal maze.Direction) {
	switch c {
	case NorthEast:
		return maze.North, maze.East
	case SouthWest:
		return maze.South, maze.West
	case SouthEast:
		return maze.South, maze.East
	default:
		return maze.North, maze.West
	}
}

// BinaryTree carves every cell toward one of two fixed directions, falling
// back to the other one on the boundary. The two boundary runs facing
// Toward end up fully open.
type BinaryTree struct {
	Toward Corner
}

func (BinaryTree) Name() string { return "binary-tree" }

func (gen BinaryTree) Generate(g *maze.Grid, seed uint64) (Result, error) {
	g.Reset()
	r := NewRand(seed)
	vertical, horizontal := gen.Toward.directions()

	var res Result
	for i := range g.Len() {
		p := g.PositionAt(i)
		first, second := vertical, horizontal
		if r.IntN(2) == 1 {
			first, second = second, first
		}
		switch {
		case g.Contains(p.Step(first)):
			carve(g, p, first)
		case g.Contains(p.Step(second)):
			carve(g, p, second)
		default:
			continue
		}
		res.Carved++
	}
	return res, nil
}
