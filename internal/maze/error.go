package maze

import "errors"

var (
	ErrInvalidDimensions = errors.New("rows and columns must be at least 1")
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrNotAdjacent       = errors.New("cells are not adjacent")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrDisconnected      = errors.New("no path between cells")
	ErrLengthMismatch    = errors.New("length does not match grid dimensions")
	ErrInconsistentWalls = errors.New("wall codes disagree between neighbors")
)

// AssertionError reports a broken internal invariant. It is raised with
// panic and recovered at package boundaries.
type AssertionError struct {
	Message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.Message
}
