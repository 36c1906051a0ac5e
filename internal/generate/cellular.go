package generate

import "github.com/vancomm/mazes/internal/maze"

const (
	DefaultGenerations = 4
	DefaultOpenBelow   = 2
	DefaultCloseAbove  = 5
)

// Cellular relaxes walls with a local rule applied Generations times. For
// every internal wall it counts the other open sides of the two cells it
// separates: fewer than OpenBelow opens the wall, more than CloseAbove closes
// it. Each generation reads the previous one only. Connectivity is not
// preserved.
type Cellular struct {
	Generations int
	OpenBelow   int
	CloseAbove  int
}

func (Cellular) Name() string { return "cellular" }

func (Cellular) Lossy() bool { return true }

func (gen Cellular) withDefaults() Cellular {
	if gen.Generations <= 0 {
		gen.Generations = DefaultGenerations
	}
	if gen.OpenBelow <= 0 {
		gen.OpenBelow = DefaultOpenBelow
	}
	if gen.CloseAbove <= 0 {
		gen.CloseAbove = DefaultCloseAbove
	}
	return gen
}

func openSides(c maze.Cell) int {
	return 4 - c.WallCount()
}

// Generate ignores the seed: the rule is deterministic.
func (gen Cellular) Generate(g *maze.Grid, _ uint64) (Result, error) {
	gen = gen.withDefaults()
	edges := internalEdges(g)

	var res Result
	for range gen.Generations {
		prev := g.Clone()
		changed := false
		for _, e := range edges {
			q := e.p.Step(e.d)
			a, _ := prev.Cell(e.p)
			b, _ := prev.Cell(q)
			open := !a.Walls[e.d]
			around := openSides(a) + openSides(b)
			if open {
				around -= 2
			}

			switch {
			case around < gen.OpenBelow && !open:
				carve(g, e.p, e.d)
				res.Carved++
				changed = true
			case around > gen.CloseAbove && open:
				raise(g, e.p, e.d)
				res.Raised++
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return res, nil
}
