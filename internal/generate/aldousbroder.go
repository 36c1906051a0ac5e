package generate

import (
	"github.com/vancomm/mazes/internal/maze"
	"github.com/zyedidia/generic/mapset"
)

// AldousBroder walks uniformly at random and carves into every cell the first
// time it is entered. It yields a uniform spanning tree but needs many steps
// on large grids; prefer [Wilson], [Kruskal] or [HuntAndKill] there.
type AldousBroder struct{}

func (AldousBroder) Name() string { return "aldous-broder" }

func (AldousBroder) Generate(g *maze.Grid, seed uint64) (Result, error) {
	g.Reset()
	r := NewRand(seed)

	var res Result
	visited := mapset.New[maze.Position]()
	cur := randomPosition(g, r)
	visited.Put(cur)

	for visited.Size() < g.Len() {
		moves := g.PossibleMoves(cur)
		d := moves[r.IntN(len(moves))]
		next := cur.Step(d)
		if !visited.Has(next) {
			carve(g, cur, d)
			res.Carved++
			visited.Put(next)
		}
		cur = next
	}
	return res, nil
}
