package maze

import "strings"

// FillFunc returns the three-character interior drawn for a cell.
type FillFunc func(p Position, c Cell) string

// RenderFill draws the grid as ASCII art, asking fill for every interior.
func RenderFill(g *Grid, fill FillFunc) string {
	var sb strings.Builder

	// Top boundary
	sb.WriteString("+" + strings.Repeat("---+", g.cols) + "\n")

	for row := range g.rows {
		sb.WriteByte('|')
		for col := range g.cols {
			p := Position{Row: row, Col: col}
			c := g.cells[g.Index(p)]
			sb.WriteString(fill(p, c))
			if c.Walls[East] {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')

		sb.WriteByte('+')
		for col := range g.cols {
			if g.cells[row*g.cols+col].Walls[South] {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Render draws the grid with the cells of path marked by '*' and the
// Current mark by '@'.
func Render(g *Grid, path Path) string {
	onPath := make(map[Position]struct{}, len(path))
	for _, p := range path {
		onPath[p] = struct{}{}
	}
	return RenderFill(g, func(p Position, c Cell) string {
		if _, ok := onPath[p]; ok {
			return " * "
		}
		if c.Marks&Current != 0 {
			return " @ "
		}
		return "   "
	})
}

func (g *Grid) String() string {
	return Render(g, nil)
}
