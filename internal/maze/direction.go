package maze

import "fmt"

type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in the fixed N, E, S, W priority order.
var Directions = [4]Direction{North, East, South, West}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the row and column offsets of a single step in d.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	}
	panic(AssertionError{fmt.Sprintf("bad direction %d", uint8(d))})
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Position is a (row, column) cell coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (p Position) Step(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// DirectionTo returns the direction leading from p to an adjacent q.
func (p Position) DirectionTo(q Position) (Direction, bool) {
	switch {
	case q.Row == p.Row-1 && q.Col == p.Col:
		return North, true
	case q.Row == p.Row && q.Col == p.Col+1:
		return East, true
	case q.Row == p.Row+1 && q.Col == p.Col:
		return South, true
	case q.Row == p.Row && q.Col == p.Col-1:
		return West, true
	}
	return 0, false
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Path is an ordered sequence of distinct, pairwise adjacent cells.
type Path []Position

func (p Path) Start() (Position, bool) {
	if len(p) == 0 {
		return Position{}, false
	}
	return p[0], true
}

func (p Path) End() (Position, bool) {
	if len(p) == 0 {
		return Position{}, false
	}
	return p[len(p)-1], true
}

// Validate checks that the path is non-empty, free of repeats and that every
// consecutive pair is adjacent with no wall between them.
func (p Path) Validate(g *Grid) error {
	if len(p) == 0 {
		return fmt.Errorf("empty path")
	}
	seen := make(map[Position]struct{}, len(p))
	for i, cur := range p {
		if !g.IsValidPosition(cur.Row, cur.Col) {
			return fmt.Errorf("path step %d %s: %w", i, cur, ErrOutOfBounds)
		}
		if _, dup := seen[cur]; dup {
			return fmt.Errorf("path visits %s twice", cur)
		}
		seen[cur] = struct{}{}
		if i == 0 {
			continue
		}
		wall, err := g.HasWall(p[i-1], cur)
		if err != nil {
			return fmt.Errorf("path step %d: %w", i, err)
		}
		if wall {
			return fmt.Errorf("path step %d crosses a wall between %s and %s", i, p[i-1], cur)
		}
	}
	return nil
}
