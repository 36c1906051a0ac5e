package solve

import "errors"

var (
	ErrUnknownSolver    = errors.New("unknown solver")
	ErrUnknownHeuristic = errors.New("unknown heuristic")
)
