package generate

import "github.com/vancomm/mazes/internal/maze"

// Kruskal removes walls in random order whenever they separate two
// different components.
type Kruskal struct{}

func (Kruskal) Name() string { return "kruskal" }

type edge struct {
	p maze.Position
	d maze.Direction
}

// internalEdges lists every internal wall once, as the East or South side of
// its upper-left cell.
func internalEdges(g *maze.Grid) []edge {
	edges := make([]edge, 0, maze.BitstringLen(g.Rows(), g.Cols()))
	for i := range g.Len() {
		p := g.PositionAt(i)
		if p.Col < g.Cols()-1 {
			edges = append(edges, edge{p, maze.East})
		}
		if p.Row < g.Rows()-1 {
			edges = append(edges, edge{p, maze.South})
		}
	}
	return edges
}

func (Kruskal) Generate(g *maze.Grid, seed uint64) (Result, error) {
	g.Reset()
	r := NewRand(seed)

	edges := internalEdges(g)
	r.Shuffle(len(edges), func(i, j int) {
		edges[i], edges[j] = edges[j], edges[i]
	})

	var res Result
	sets := newDisjointSet(g.Len())
	for _, e := range edges {
		if sets.union(g.Index(e.p), g.Index(e.p.Step(e.d))) {
			carve(g, e.p, e.d)
			res.Carved++
			if res.Carved == g.Len()-1 {
				break
			}
		}
	}
	return res, nil
}
