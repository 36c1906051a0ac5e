package generate

import (
	"github.com/vancomm/mazes/internal/maze"
	"github.com/zyedidia/generic/mapset"
)

// HuntAndKill random-walks until stuck, then scans rows from the origin for
// the first unvisited cell touching the visited region and resumes there.
type HuntAndKill struct {
	Start maze.Position
}

func (HuntAndKill) Name() string { return "hunt-and-kill" }

func (gen HuntAndKill) Generate(g *maze.Grid, seed uint64) (Result, error) {
	if !g.Contains(gen.Start) {
		return Result{}, maze.ErrOutOfBounds
	}
	g.Reset()
	r := NewRand(seed)

	var (
		res     Result
		visited = mapset.New[maze.Position]()
		buf     []maze.Direction
		cur     = gen.Start
		scan    = 0 // cells before scan are all visited
	)
	isUnvisited := func(p maze.Position) bool { return !visited.Has(p) }
	isVisited := func(p maze.Position) bool { return visited.Has(p) }

	visited.Put(cur)
	for visited.Size() < g.Len() {
		// kill
		if buf = neighbors(g, cur, buf, isUnvisited); len(buf) > 0 {
			d := buf[r.IntN(len(buf))]
			carve(g, cur, d)
			res.Carved++
			cur = cur.Step(d)
			visited.Put(cur)
			continue
		}

		// hunt
		for visited.Has(g.PositionAt(scan)) {
			scan++
		}
		found := false
		for i := scan; i < g.Len(); i++ {
			p := g.PositionAt(i)
			if visited.Has(p) {
				continue
			}
			if buf = neighbors(g, p, buf, isVisited); len(buf) > 0 {
				carve(g, p, buf[r.IntN(len(buf))])
				res.Carved++
				cur = p
				visited.Put(cur)
				found = true
				break
			}
		}
		if !found {
			panic(maze.AssertionError{Message: "hunt found no unvisited cell next to the visited region"})
		}
	}
	return res, nil
}
