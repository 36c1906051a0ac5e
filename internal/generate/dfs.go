package generate

import (
	"github.com/gammazero/deque"
	"github.com/vancomm/mazes/internal/maze"
)

// DFS is the randomized depth-first "recursive backtracker", run on an
// explicit stack.
type DFS struct {
	// Bias adds extra lottery tickets per direction. A positive East and
	// West bias yields long horizontal hallways.
	Bias  [4]int
	Start maze.Position
}

func (DFS) Name() string { return "dfs" }

type dfsFrame struct {
	from maze.Position
	to   maze.Position
	root bool
}

func (gen DFS) Generate(g *maze.Grid, seed uint64) (Result, error) {
	if !g.Contains(gen.Start) {
		return Result{}, maze.ErrOutOfBounds
	}
	g.Reset()
	r := NewRand(seed)

	var (
		res     Result
		visited = make([]bool, g.Len())
		stack   deque.Deque[dfsFrame]
		tickets []maze.Direction
		order   []maze.Direction
	)
	stack.PushBack(dfsFrame{to: gen.Start, root: true})

	for stack.Len() > 0 {
		f := stack.PopBack()
		i := g.Index(f.to)
		if visited[i] {
			continue
		}
		visited[i] = true
		if !f.root {
			d, _ := f.from.DirectionTo(f.to)
			carve(g, f.from, d)
			res.Carved++
		}

		tickets = tickets[:0]
		for _, d := range g.PossibleMoves(f.to) {
			if visited[g.Index(f.to.Step(d))] {
				continue
			}
			for range 1 + max(gen.Bias[d], 0) {
				tickets = append(tickets, d)
			}
		}
		r.Shuffle(len(tickets), func(i, j int) {
			tickets[i], tickets[j] = tickets[j], tickets[i]
		})

		// first drawn is explored first, so it is pushed last
		order = order[:0]
		var seen [4]bool
		for _, d := range tickets {
			if !seen[d] {
				seen[d] = true
				order = append(order, d)
			}
		}
		for k := len(order) - 1; k >= 0; k-- {
			stack.PushBack(dfsFrame{from: f.to, to: f.to.Step(order[k])})
		}
	}
	return res, nil
}
