package solve

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vancomm/mazes/internal/maze"
)

// Heuristic estimates the number of steps between two cells. A* only
// guarantees a shortest path when the estimate never exceeds the true
// distance.
type Heuristic func(a, b maze.Position) float64

func Manhattan(a, b maze.Position) float64 {
	return math.Abs(float64(a.Row-b.Row)) + math.Abs(float64(a.Col-b.Col))
}

func Euclidean(a, b maze.Position) float64 {
	return math.Hypot(float64(a.Row-b.Row), float64(a.Col-b.Col))
}

// Minkowski returns the p-norm distance. It is admissible for p >= 1;
// p = +Inf gives the Chebyshev distance.
func Minkowski(p float64) Heuristic {
	if math.IsInf(p, 1) {
		return Chebyshev
	}
	return func(a, b maze.Position) float64 {
		dr := math.Abs(float64(a.Row - b.Row))
		dc := math.Abs(float64(a.Col - b.Col))
		return math.Pow(math.Pow(dr, p)+math.Pow(dc, p), 1/p)
	}
}

func Chebyshev(a, b maze.Position) float64 {
	return math.Max(math.Abs(float64(a.Row-b.Row)), math.Abs(float64(a.Col-b.Col)))
}

// Zero turns A* into Dijkstra's algorithm.
func Zero(_, _ maze.Position) float64 { return 0 }

// HeuristicByName accepts "manhattan", "euclidean", "zero" and "minkowski"
// with an optional ":p" suffix (p defaults to 3, "inf" is Chebyshev).
func HeuristicByName(name string) (Heuristic, error) {
	base, arg, hasArg := strings.Cut(name, ":")
	switch base {
	case "", "manhattan":
		return Manhattan, nil
	case "euclidean":
		return Euclidean, nil
	case "zero", "dijkstra":
		return Zero, nil
	case "minkowski":
		p := 3.0
		if hasArg {
			var err error
			if p, err = strconv.ParseFloat(arg, 64); err != nil || math.IsNaN(p) || p < 1 {
				return nil, fmt.Errorf("minkowski order %q: %w", arg, ErrUnknownHeuristic)
			}
		}
		return Minkowski(p), nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownHeuristic)
}
