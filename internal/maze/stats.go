package maze

// WallCounts returns how many cells have 0, 1, 2, 3 and 4 walls. Boundary
// walls are counted.
func (g *Grid) WallCounts() (counts [5]int) {
	for _, c := range g.cells {
		counts[c.WallCount()]++
	}
	return
}

// DeadEnds returns the number of cells closed on three sides.
func (g *Grid) DeadEnds() int {
	return g.WallCounts()[3]
}

var patternWeights = [5]float64{-0.1, 0.1, 0.4, 0.2, -1}

// PatternScore rates how corridor-like the grid is, averaged over cells.
// Two-wall cells score best, sealed cells are penalised.
func (g *Grid) PatternScore() float64 {
	counts := g.WallCounts()
	var score float64
	for n, count := range counts {
		score += patternWeights[n] * float64(count)
	}
	return score / float64(len(g.cells))
}
