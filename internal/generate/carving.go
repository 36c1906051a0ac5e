package generate

import (
	"fmt"

	"github.com/vancomm/mazes/internal/maze"
)

// GrowthFunc returns the removal chance after streak consecutive refusals.
type GrowthFunc func(base float64, streak int) float64

// LinearGrowth raises the chance by step for every refusal in a row.
func LinearGrowth(step float64) GrowthFunc {
	return func(base float64, streak int) float64 {
		return base + float64(streak)*step
	}
}

const (
	DefaultCarvingChance = 0.05
	DefaultCarvingStep   = 0.01
)

// RandomCarving knocks down extra walls at random, adding loops. It visits
// cells row-major. With Multicell every side of a cell gets its own roll,
// otherwise one random side per cell. Adaptive mode grows the chance with
// each refusal through Growth and resets it after a removal.
type RandomCarving struct {
	Chance    float64
	Multicell bool
	Adaptive  bool
	Growth    GrowthFunc
}

func (RandomCarving) Name() string { return "random-carving" }

func (RandomCarving) Lossy() bool { return true }

func (gen RandomCarving) Generate(g *maze.Grid, seed uint64) (Result, error) {
	if g.Rows() < 2 || g.Cols() < 2 {
		return Result{}, fmt.Errorf("%dx%d: %w", g.Rows(), g.Cols(), ErrDegenerateGrid)
	}
	r := NewRand(seed)

	base := gen.Chance
	if base <= 0 {
		base = DefaultCarvingChance
	}
	growth := gen.Growth
	if growth == nil {
		growth = LinearGrowth(DefaultCarvingStep)
	}

	var (
		res    Result
		chance = base
		streak = 0
	)
	roll := func(p maze.Position, d maze.Direction) {
		if r.Float64() < chance {
			if !g.CanMove(p, d) {
				carve(g, p, d)
				res.Carved++
			}
			streak, chance = 0, base
			return
		}
		streak++
		if gen.Adaptive {
			chance = growth(base, streak)
		}
	}

	for i := range g.Len() {
		p := g.PositionAt(i)
		moves := g.PossibleMoves(p)
		if len(moves) < 2 {
			panic(maze.AssertionError{Message: fmt.Sprintf("%s has %d neighbors", p, len(moves))})
		}
		if gen.Multicell {
			for _, d := range moves {
				roll(p, d)
			}
			continue
		}
		roll(p, moves[r.IntN(len(moves))])
	}
	return res, nil
}
