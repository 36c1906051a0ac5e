/*
Package generate carves mazes out of a [maze.Grid].

Every algorithm is a [Generator] driven by an explicit seed: the same seed on
a same-sized grid always yields the same walls. Spanning generators reset the
grid first and leave a spanning tree; post-processing passes such as
[RandomCarving] and [Cellular] work on whatever walls they are given.
*/
package generate

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/mazes/internal/maze"
)

var Log = logrus.New()

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrDegenerateGrid   = errors.New("grid needs at least 2 rows and 2 columns")
)

type Result struct {
	Carved int `json:"carved"` // walls removed
	Raised int `json:"raised"` // walls put back
}

func (r Result) add(other Result) Result {
	return Result{Carved: r.Carved + other.Carved, Raised: r.Raised + other.Raised}
}

type Generator interface {
	Name() string
	Generate(g *maze.Grid, seed uint64) (Result, error)
}

// Lossy is implemented by generators that may leave cells unreachable.
type Lossy interface {
	Lossy() bool
}

func isLossy(gen Generator) bool {
	l, ok := gen.(Lossy)
	return ok && l.Lossy()
}

// NewRand returns the generator used by every algorithm for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Run applies gen to g and checks the result: walls must mirror, and unless
// gen is [Lossy] every cell must be reachable. Broken invariants come back as
// a [maze.AssertionError].
func Run(g *maze.Grid, gen Generator, seed uint64) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			var ae maze.AssertionError
			if e, ok := r.(error); ok && errors.As(e, &ae) {
				res, err = Result{}, fmt.Errorf("%s: %w", gen.Name(), ae)
				return
			}
			panic(r)
		}
	}()

	log := Log.WithFields(logrus.Fields{
		"algorithm": gen.Name(),
		"seed":      seed,
		"rows":      g.Rows(),
		"cols":      g.Cols(),
	})

	res, err = gen.Generate(g, seed)
	if err != nil {
		return Result{}, err
	}
	if err := g.CheckMirrored(); err != nil {
		panic(maze.AssertionError{Message: err.Error()})
	}
	if !isLossy(gen) && !g.IsSpanning() {
		panic(maze.AssertionError{Message: fmt.Sprintf(
			"%d of %d cells reachable", g.Reachable(maze.Position{}), g.Len(),
		)})
	}

	log.WithFields(logrus.Fields{
		"carved": res.Carved, "raised": res.Raised,
	}).Debug("maze generated")
	return res, nil
}

func carve(g *maze.Grid, p maze.Position, d maze.Direction) {
	if err := g.Carve(p, d); err != nil {
		panic(maze.AssertionError{Message: err.Error()})
	}
}

func raise(g *maze.Grid, p maze.Position, d maze.Direction) {
	if err := g.Raise(p, d); err != nil {
		panic(maze.AssertionError{Message: err.Error()})
	}
}

// neighbors appends to buf the in-bounds directions from p whose target
// satisfies keep.
func neighbors(
	g *maze.Grid, p maze.Position, buf []maze.Direction, keep func(maze.Position) bool,
) []maze.Direction {
	buf = buf[:0]
	for _, d := range g.PossibleMoves(p) {
		if keep(p.Step(d)) {
			buf = append(buf, d)
		}
	}
	return buf
}

func randomPosition(g *maze.Grid, r *rand.Rand) maze.Position {
	return g.PositionAt(r.IntN(g.Len()))
}
