package main

import (
	"fmt"
	"strings"

	"github.com/gookit/color"

	"github.com/vancomm/mazes/internal/maze"
	"github.com/vancomm/mazes/internal/solve"
)

var (
	colorPath  = color.Style{color.FgGreen}
	colorStart = color.Style{color.FgCyan, color.OpBold}
	colorEnd   = color.Style{color.FgRed, color.OpBold}
)

// renderColored draws g like [maze.Render], with the endpoints and the rest
// of the path in their own colors.
func renderColored(g *maze.Grid, path maze.Path) string {
	onPath := make(map[maze.Position]struct{}, len(path))
	for _, p := range path {
		onPath[p] = struct{}{}
	}
	start, _ := path.Start()
	end, _ := path.End()

	return maze.RenderFill(g, func(p maze.Position, c maze.Cell) string {
		if _, ok := onPath[p]; !ok {
			return "   "
		}
		switch p {
		case start:
			return colorStart.Sprint(" * ")
		case end:
			return colorEnd.Sprint(" * ")
		}
		return colorPath.Sprint(" * ")
	})
}

func stats(g *maze.Grid) string {
	var sb strings.Builder
	counts := g.WallCounts()
	fmt.Fprintf(&sb, "walls per cell: %v\n", counts)
	fmt.Fprintf(&sb, "dead ends: %d\n", g.DeadEnds())
	fmt.Fprintf(&sb, "pattern score: %.3f\n", g.PatternScore())
	fmt.Fprintf(&sb, "regions: %d\n", solve.Regions(g))
	fmt.Fprintf(&sb, "perfect: %t\n", g.IsPerfect())
	return sb.String()
}
