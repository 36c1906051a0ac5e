package solve

import (
	"math"

	"github.com/vancomm/mazes/internal/maze"
	"github.com/zyedidia/generic/heap"
)

// AStar expands cells by steps taken plus the heuristic estimate to the end.
// Ties go to the cell queued first, so the result is deterministic for a
// given grid and heuristic. With a heuristic that overestimates, the path is
// still valid but may not be the shortest.
type AStar struct {
	run
	heuristic Heuristic
}

func NewAStar(g *maze.Grid, opts ...Option) *AStar {
	o := newOptions(g, opts)
	return &AStar{run: newRun(g, o), heuristic: o.heuristic}
}

func (*AStar) Name() string { return "astar" }

func (s *AStar) Solve() (maze.Path, error) {
	return s.solve("astar", s.search)
}

type node struct {
	pos   maze.Position
	steps int
	f     float64
	seq   int
}

func (s *AStar) search() (maze.Path, error) {
	g := s.grid
	open := heap.New[node](func(a, b node) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		return a.seq < b.seq
	})

	best := make([]int, g.Len())
	for i := range best {
		best[i] = math.MaxInt
	}
	parent := make([]int, g.Len())
	closed := make([]bool, g.Len())

	seq := 0
	push := func(p maze.Position, steps int) {
		open.Push(node{pos: p, steps: steps, f: float64(steps) + s.heuristic(p, s.end), seq: seq})
		seq++
	}

	best[g.Index(s.start)] = 0
	parent[g.Index(s.start)] = -1
	push(s.start, 0)
	s.explored = 0

	for open.Size() > 0 {
		cur, _ := open.Pop()
		i := g.Index(cur.pos)
		if closed[i] {
			continue
		}
		closed[i] = true
		s.explored++

		if cur.pos == s.end {
			return backtrack(g, parent, s.start, s.end), nil
		}

		for _, d := range g.OpenMoves(cur.pos) {
			next := cur.pos.Step(d)
			j := g.Index(next)
			if closed[j] || cur.steps+1 >= best[j] {
				continue
			}
			best[j] = cur.steps + 1
			parent[j] = i
			push(next, cur.steps+1)
		}
	}
	return nil, maze.ErrDisconnected
}
