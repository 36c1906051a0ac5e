package generate

import (
	"github.com/vancomm/mazes/internal/maze"
	"github.com/zyedidia/generic/mapset"
)

// Wilson builds a uniform spanning tree from loop-erased random walks. Walks
// start from each cell not yet in the tree, in row-major order.
type Wilson struct{}

func (Wilson) Name() string { return "wilson" }

func (Wilson) Generate(g *maze.Grid, seed uint64) (Result, error) {
	g.Reset()
	r := NewRand(seed)

	var res Result
	tree := mapset.New[maze.Position]()
	tree.Put(randomPosition(g, r))

	// last exit taken from each cell; overwriting it erases loops
	exit := make([]maze.Direction, g.Len())

	for i := range g.Len() {
		start := g.PositionAt(i)
		if tree.Has(start) {
			continue
		}

		for cur := start; !tree.Has(cur); {
			moves := g.PossibleMoves(cur)
			d := moves[r.IntN(len(moves))]
			exit[g.Index(cur)] = d
			cur = cur.Step(d)
		}

		for cur := start; !tree.Has(cur); {
			d := exit[g.Index(cur)]
			carve(g, cur, d)
			res.Carved++
			tree.Put(cur)
			cur = cur.Step(d)
		}
	}
	return res, nil
}
