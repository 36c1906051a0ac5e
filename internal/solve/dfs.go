package solve

import (
	"cmp"
	"slices"

	"github.com/vancomm/mazes/internal/maze"
)

// DFS walks a stack of cells, always descending into the first open and
// unvisited neighbor and popping when stuck. The path it returns is valid but
// usually not the shortest.
type DFS struct {
	run
	name  string
	order func(cur maze.Position, moves []maze.Direction)
}

// NewDFS tries neighbors in the fixed North, East, South, West order.
func NewDFS(g *maze.Grid, opts ...Option) *DFS {
	return &DFS{
		run:   newRun(g, newOptions(g, opts)),
		name:  "dfs",
		order: func(maze.Position, []maze.Direction) {},
	}
}

// NewRandomDFS shuffles the neighbors of every cell with the seed from
// [WithSeed].
func NewRandomDFS(g *maze.Grid, opts ...Option) *DFS {
	o := newOptions(g, opts)
	r := newRand(o.seed)
	return &DFS{
		run:  newRun(g, o),
		name: "random-dfs",
		order: func(_ maze.Position, moves []maze.Direction) {
			r.Shuffle(len(moves), func(i, j int) {
				moves[i], moves[j] = moves[j], moves[i]
			})
		},
	}
}

// NewHeuristicDFS tries the neighbor closest to the end first, by Manhattan
// distance. Ties keep the North, East, South, West order.
func NewHeuristicDFS(g *maze.Grid, opts ...Option) *DFS {
	o := newOptions(g, opts)
	s := &DFS{run: newRun(g, o), name: "heuristic-dfs"}
	s.order = func(cur maze.Position, moves []maze.Direction) {
		slices.SortStableFunc(moves, func(a, b maze.Direction) int {
			return cmp.Compare(
				Manhattan(cur.Step(a), s.end), Manhattan(cur.Step(b), s.end),
			)
		})
	}
	return s
}

func (s *DFS) Name() string { return s.name }

func (s *DFS) Solve() (maze.Path, error) {
	return s.solve(s.name, s.search)
}

func (s *DFS) search() (maze.Path, error) {
	g := s.grid
	visited := make([]bool, g.Len())
	visited[g.Index(s.start)] = true
	stack := maze.Path{s.start}
	s.explored = 1

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top == s.end {
			return stack, nil
		}

		moves := g.OpenMoves(top)
		s.order(top, moves)

		descended := false
		for _, d := range moves {
			next := top.Step(d)
			if i := g.Index(next); !visited[i] {
				visited[i] = true
				s.explored++
				stack = append(stack, next)
				descended = true
				break
			}
		}
		if !descended {
			stack = stack[:len(stack)-1]
		}
	}
	return nil, maze.ErrDisconnected
}
