package maze

// Mark is a set of highlight flags read by renderers and game logic. The
// maze core never interprets them.
type Mark uint8

const (
	Current Mark = 1 << iota
	Visited
	VisibleA
	VisibleB
)

// Cell holds the four wall flags of a grid unit, indexed by [Direction].
// A true flag means the wall is present.
type Cell struct {
	Walls [4]bool
	Marks Mark
	Meta  any
}

// Wall reports whether side d is closed. There is no side past West, so any
// other direction reads as a wall.
func (c Cell) Wall(d Direction) bool {
	if d > West {
		return true
	}
	return c.Walls[d]
}

func (c Cell) WallCount() (count int) {
	for _, w := range c.Walls {
		if w {
			count++
		}
	}
	return
}

// Code packs the walls into 4 bits: North=1, East=2, South=4, West=8.
func (c Cell) Code() uint8 {
	var code uint8
	for _, d := range Directions {
		if c.Walls[d] {
			code |= 1 << d
		}
	}
	return code
}

func closedCell() Cell {
	return Cell{Walls: [4]bool{true, true, true, true}}
}
