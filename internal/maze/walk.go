package maze

import "github.com/gammazero/deque"

// Reachable returns the number of cells reachable from p, p included.
func (g *Grid) Reachable(p Position) int {
	if !g.Contains(p) {
		return 0
	}
	seen := make([]bool, len(g.cells))
	seen[g.Index(p)] = true
	count := 1

	var queue deque.Deque[Position]
	queue.PushBack(p)
	for queue.Len() > 0 {
		cur := queue.PopFront()
		for _, d := range g.OpenMoves(cur) {
			next := cur.Step(d)
			if i := g.Index(next); !seen[i] {
				seen[i] = true
				count++
				queue.PushBack(next)
			}
		}
	}
	return count
}

// IsSpanning reports whether every cell is reachable from the origin.
func (g *Grid) IsSpanning() bool {
	return g.Reachable(Position{}) == len(g.cells)
}

// OpenEdges returns the number of carved internal walls.
func (g *Grid) OpenEdges() int {
	n := 0
	for i, c := range g.cells {
		p := g.PositionAt(i)
		if p.Col < g.cols-1 && !c.Walls[East] {
			n++
		}
		if p.Row < g.rows-1 && !c.Walls[South] {
			n++
		}
	}
	return n
}

// IsPerfect reports whether the grid is a spanning tree: connected with
// exactly one route between any two cells.
func (g *Grid) IsPerfect() bool {
	return g.OpenEdges() == len(g.cells)-1 && g.IsSpanning()
}

// Adjacency lists, for every cell in row-major order, the indices of the
// neighbors it opens onto, in N, E, S, W order.
func (g *Grid) Adjacency() [][]int {
	adj := make([][]int, len(g.cells))
	for i := range g.cells {
		p := g.PositionAt(i)
		for _, d := range g.OpenMoves(p) {
			adj[i] = append(adj[i], g.Index(p.Step(d)))
		}
	}
	return adj
}
