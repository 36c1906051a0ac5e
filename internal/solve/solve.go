/*
Package solve finds paths through a carved [maze.Grid].

A solver is bound to one grid and one pair of cells. Start and end default to
the top-left and bottom-right corners. The first successful [Solver.Solve]
caches its path; later calls return the same path without searching again.
Solvers never change walls.
*/
package solve

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/mazes/internal/maze"
)

var Log = logrus.New()

type Solver interface {
	Name() string
	// Solve returns a path from start to end or fails with
	// [maze.ErrDisconnected].
	Solve() (maze.Path, error)
	// Score is the length of the solved path in cells, 0 before solving.
	Score() int
	// Path returns a copy of the solved path, nil before solving.
	Path() maze.Path
}

type options struct {
	start     *maze.Position
	end       *maze.Position
	heuristic Heuristic
	seed      uint64
}

type Option func(*options)

func WithStart(p maze.Position) Option {
	return func(o *options) { o.start = &p }
}

func WithEnd(p maze.Position) Option {
	return func(o *options) { o.end = &p }
}

// WithHeuristic sets the A* distance estimate. Ignored by other solvers.
func WithHeuristic(h Heuristic) Option {
	return func(o *options) { o.heuristic = h }
}

// WithSeed seeds the randomized DFS. Ignored by other solvers.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

func newOptions(g *maze.Grid, opts []Option) options {
	o := options{heuristic: Manhattan}
	for _, opt := range opts {
		opt(&o)
	}
	if o.start == nil {
		o.start = &maze.Position{}
	}
	if o.end == nil {
		end := g.Corner()
		o.end = &end
	}
	return o
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// run is the state shared by every solver.
type run struct {
	grid       *maze.Grid
	start, end maze.Position
	path       maze.Path
	explored   int
}

func newRun(g *maze.Grid, o options) run {
	return run{grid: g, start: *o.start, end: *o.end}
}

func (r *run) Score() int { return len(r.path) }

func (r *run) Path() maze.Path { return slices.Clone(r.path) }

// Explored returns how many cells the last search expanded.
func (r *run) Explored() int { return r.explored }

func (r *run) Start() maze.Position { return r.start }

func (r *run) End() maze.Position { return r.end }

// solve validates the endpoints, runs search once and caches its result.
func (r *run) solve(name string, search func() (maze.Path, error)) (maze.Path, error) {
	if r.path != nil {
		return r.Path(), nil
	}
	for _, p := range []maze.Position{r.start, r.end} {
		if !r.grid.Contains(p) {
			return nil, fmt.Errorf("%s: endpoint %s: %w", name, p, maze.ErrOutOfBounds)
		}
	}

	log := Log.WithFields(logrus.Fields{
		"solver": name,
		"start":  r.start.String(),
		"end":    r.end.String(),
	})

	path, err := search()
	if err != nil {
		log.WithField("explored", r.explored).Debug("no path")
		return nil, fmt.Errorf("%s from %s to %s: %w", name, r.start, r.end, err)
	}
	r.path = path

	log.WithFields(logrus.Fields{
		"length": len(path), "explored": r.explored,
	}).Debug("maze solved")
	return r.Path(), nil
}

// backtrack rebuilds a path from a parent table filled by a search.
func backtrack(g *maze.Grid, parent []int, start, end maze.Position) maze.Path {
	var path maze.Path
	for i := g.Index(end); ; i = parent[i] {
		path = append(path, g.PositionAt(i))
		if i == g.Index(start) {
			break
		}
	}
	slices.Reverse(path)
	return path
}

var names = []string{"dfs", "random-dfs", "heuristic-dfs", "lee", "astar"}

// ByName builds one of the solvers listed by [Names].
func ByName(name string, g *maze.Grid, opts ...Option) (Solver, error) {
	switch name {
	case "dfs":
		return NewDFS(g, opts...), nil
	case "random-dfs":
		return NewRandomDFS(g, opts...), nil
	case "heuristic-dfs":
		return NewHeuristicDFS(g, opts...), nil
	case "lee", "bfs":
		return NewLee(g, opts...), nil
	case "astar", "a*":
		return NewAStar(g, opts...), nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownSolver)
}

func Names() []string {
	return slices.Clone(names)
}
