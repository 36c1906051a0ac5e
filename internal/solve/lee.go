package solve

import (
	"github.com/gammazero/deque"
	"github.com/vancomm/mazes/internal/maze"
)

// Lee floods the grid breadth-first from the start, numbering cells by their
// distance, then walks back from the end along decreasing numbers. The path
// is always a shortest one.
type Lee struct {
	run
	dist []int
}

func NewLee(g *maze.Grid, opts ...Option) *Lee {
	return &Lee{run: newRun(g, newOptions(g, opts))}
}

func (*Lee) Name() string { return "lee" }

func (s *Lee) Solve() (maze.Path, error) {
	return s.solve("lee", s.search)
}

// Distances returns the distance table of the last search.
func (s *Lee) Distances() []int { return s.dist }

func (s *Lee) search() (maze.Path, error) {
	g := s.grid
	s.dist = Distances(g, s.start)
	s.explored = 0
	for _, d := range s.dist {
		if d >= 0 {
			s.explored++
		}
	}

	steps := s.dist[g.Index(s.end)]
	if steps < 0 {
		return nil, maze.ErrDisconnected
	}

	path := make(maze.Path, steps+1)
	cur := s.end
	path[steps] = cur
	for k := steps - 1; k >= 0; k-- {
		for _, d := range g.OpenMoves(cur) {
			if prev := cur.Step(d); s.dist[g.Index(prev)] == k {
				cur = prev
				break
			}
		}
		path[k] = cur
	}
	return path, nil
}

// Distances returns, for every cell in row-major order, the number of steps
// from `from`, or -1 where it cannot be reached.
func Distances(g *maze.Grid, from maze.Position) []int {
	dist := make([]int, g.Len())
	for i := range dist {
		dist[i] = -1
	}
	if !g.Contains(from) {
		return dist
	}
	dist[g.Index(from)] = 0

	var queue deque.Deque[maze.Position]
	queue.PushBack(from)
	for queue.Len() > 0 {
		cur := queue.PopFront()
		next := dist[g.Index(cur)] + 1
		for _, d := range g.OpenMoves(cur) {
			p := cur.Step(d)
			if i := g.Index(p); dist[i] < 0 {
				dist[i] = next
				queue.PushBack(p)
			}
		}
	}
	return dist
}

// Components labels connected components and returns their count. labels[i]
// is the component of cell i, numbered in row-major order of first cell.
func Components(g *maze.Grid) (count int, labels []int) {
	labels = make([]int, g.Len())
	for i := range labels {
		labels[i] = -1
	}

	var queue deque.Deque[maze.Position]
	for i := range labels {
		if labels[i] >= 0 {
			continue
		}
		labels[i] = count
		queue.PushBack(g.PositionAt(i))
		for queue.Len() > 0 {
			cur := queue.PopFront()
			for _, d := range g.OpenMoves(cur) {
				p := cur.Step(d)
				if j := g.Index(p); labels[j] < 0 {
					labels[j] = count
					queue.PushBack(p)
				}
			}
		}
		count++
	}
	return count, labels
}

// Regions returns the number of connected areas of the grid.
func Regions(g *maze.Grid) int {
	count, _ := Components(g)
	return count
}

// IsConnected reports whether every cell is reachable from every other.
func IsConnected(g *maze.Grid) bool {
	return Regions(g) == 1
}
