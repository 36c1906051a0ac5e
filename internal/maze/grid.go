/*
Package maze models a rectangular grid of cells separated by walls.

Every wall between two neighbors is stored on both cells. All mutations go
through [Grid.Carve], [Grid.Raise] and the bit-string setters, which update
both sides at once, so a cleared wall on one cell is always cleared on its
neighbor as well. Walls on the outer boundary are never removed.
*/
package maze

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// New returns a rows x cols grid with every wall present.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%dx%d grid: %w", rows, cols, ErrInvalidDimensions)
	}
	if rows > math.MaxInt/cols {
		return nil, fmt.Errorf("%dx%d grid is too big: %w", rows, cols, ErrInvalidDimensions)
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	g.Reset()
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }

func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

func (g *Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) Contains(p Position) bool {
	return g.IsValidPosition(p.Row, p.Col)
}

// Index returns the row-major index of p. p must be in bounds.
func (g *Grid) Index(p Position) int {
	return p.Row*g.cols + p.Col
}

func (g *Grid) PositionAt(i int) Position {
	return Position{Row: i / g.cols, Col: i % g.cols}
}

// Corner returns the bottom-right cell, the default solver target.
func (g *Grid) Corner() Position {
	return Position{Row: g.rows - 1, Col: g.cols - 1}
}

func (g *Grid) checkBounds(p Position) error {
	if !g.Contains(p) {
		return fmt.Errorf("%s in %dx%d grid: %w", p, g.rows, g.cols, ErrOutOfBounds)
	}
	return nil
}

func checkDirection(d Direction) error {
	if d > West {
		return fmt.Errorf("%s: %w", d, ErrInvalidDirection)
	}
	return nil
}

// Cell returns a copy of the cell at p.
func (g *Grid) Cell(p Position) (Cell, error) {
	if err := g.checkBounds(p); err != nil {
		return Cell{}, err
	}
	return g.cells[g.Index(p)], nil
}

// Wall reports whether p has a wall on side d. Boundary sides always do.
func (g *Grid) Wall(p Position, d Direction) (bool, error) {
	if err := checkDirection(d); err != nil {
		return false, err
	}
	if err := g.checkBounds(p); err != nil {
		return false, err
	}
	return g.cells[g.Index(p)].Walls[d], nil
}

// HasWall reports whether a wall separates the adjacent cells a and b.
func (g *Grid) HasWall(a, b Position) (bool, error) {
	if err := g.checkBounds(a); err != nil {
		return false, err
	}
	d, ok := a.DirectionTo(b)
	if !ok {
		return false, fmt.Errorf("%s and %s: %w", a, b, ErrNotAdjacent)
	}
	if err := g.checkBounds(b); err != nil {
		return false, err
	}
	return g.cells[g.Index(a)].Walls[d], nil
}

// Carve removes the wall on side d of p together with its mirror on the
// neighbor. Carving toward the boundary fails with [ErrOutOfBounds].
func (g *Grid) Carve(p Position, d Direction) error {
	return g.setWall(p, d, false)
}

// CarveBetween removes the wall separating two adjacent cells.
func (g *Grid) CarveBetween(a, b Position) error {
	d, ok := a.DirectionTo(b)
	if !ok {
		return fmt.Errorf("%s and %s: %w", a, b, ErrNotAdjacent)
	}
	return g.setWall(a, d, false)
}

// Raise puts back the wall on side d of p and on the neighbor.
func (g *Grid) Raise(p Position, d Direction) error {
	return g.setWall(p, d, true)
}

func (g *Grid) setWall(p Position, d Direction, present bool) error {
	if err := checkDirection(d); err != nil {
		return err
	}
	if err := g.checkBounds(p); err != nil {
		return err
	}
	q := p.Step(d)
	if !g.Contains(q) {
		return fmt.Errorf("no neighbor %s of %s: %w", d, p, ErrOutOfBounds)
	}
	g.cells[g.Index(p)].Walls[d] = present
	g.cells[g.Index(q)].Walls[d.Opposite()] = present
	return nil
}

// PossibleMoves lists the directions from p that lead to an in-bounds
// neighbor, regardless of walls, in N, E, S, W order.
func (g *Grid) PossibleMoves(p Position) []Direction {
	if !g.Contains(p) {
		return nil
	}
	moves := make([]Direction, 0, 4)
	for _, d := range Directions {
		if g.Contains(p.Step(d)) {
			moves = append(moves, d)
		}
	}
	return moves
}

// OpenMoves lists the directions from p that are not blocked by a wall.
func (g *Grid) OpenMoves(p Position) []Direction {
	if !g.Contains(p) {
		return nil
	}
	c := &g.cells[g.Index(p)]
	moves := make([]Direction, 0, 4)
	for _, d := range Directions {
		if !c.Walls[d] && g.Contains(p.Step(d)) {
			moves = append(moves, d)
		}
	}
	return moves
}

// CanMove reports whether a single step from p in d is possible.
func (g *Grid) CanMove(p Position, d Direction) bool {
	if !g.Contains(p) || !g.Contains(p.Step(d)) {
		return false
	}
	return !g.cells[g.Index(p)].Walls[d]
}

// Reset raises every wall and clears all marks and metadata.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = closedCell()
	}
}

// Open removes every internal wall.
func (g *Grid) Open() {
	for i := range g.cells {
		p := g.PositionAt(i)
		for _, d := range Directions {
			g.cells[i].Walls[d] = !g.Contains(p.Step(d))
		}
	}
}

func (g *Grid) Clone() *Grid {
	clone := &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: make([]Cell, len(g.cells)),
	}
	copy(clone.cells, g.cells)
	return clone
}

// Equal compares dimensions and walls only.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i].Walls != other.cells[i].Walls {
			return false
		}
	}
	return true
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p Position, c Cell)) {
	for i, c := range g.cells {
		fn(g.PositionAt(i), c)
	}
}

// CheckMirrored verifies that every wall agrees with its neighbor's mirror
// and that the boundary is closed.
func (g *Grid) CheckMirrored() error {
	for i, c := range g.cells {
		p := g.PositionAt(i)
		for _, d := range Directions {
			q := p.Step(d)
			if !g.Contains(q) {
				if !c.Walls[d] {
					return fmt.Errorf("%s has an open %s boundary", p, d)
				}
				continue
			}
			if c.Walls[d] != g.cells[g.Index(q)].Walls[d.Opposite()] {
				return fmt.Errorf("%s %s wall does not mirror %s", p, d, q)
			}
		}
	}
	return nil
}

func (g *Grid) Mark(p Position, m Mark) error {
	if err := g.checkBounds(p); err != nil {
		return err
	}
	g.cells[g.Index(p)].Marks |= m
	return nil
}

func (g *Grid) Unmark(p Position, m Mark) error {
	if err := g.checkBounds(p); err != nil {
		return err
	}
	g.cells[g.Index(p)].Marks &^= m
	return nil
}

func (g *Grid) ClearMarks() {
	for i := range g.cells {
		g.cells[i].Marks = 0
	}
}

func (g *Grid) SetMeta(p Position, v any) error {
	if err := g.checkBounds(p); err != nil {
		return err
	}
	g.cells[g.Index(p)].Meta = v
	return nil
}

func (g *Grid) Marked(p Position, m Mark) bool {
	if !g.Contains(p) {
		return false
	}
	return g.cells[g.Index(p)].Marks&m == m
}
