package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/mazes/internal/dataset"
	"github.com/vancomm/mazes/internal/generate"
	"github.com/vancomm/mazes/internal/maze"
	"github.com/vancomm/mazes/internal/solve"
)

func newMaze(t *testing.T, rows, cols int, alg string, seed uint64) *maze.Grid {
	t.Helper()
	gen, err := generate.ByName(alg)
	require.NoError(t, err)
	g, err := maze.New(rows, cols)
	require.NoError(t, err)
	_, err = generate.Run(g, gen, seed)
	require.NoError(t, err)
	return g
}

func TestRenderColored(t *testing.T) {
	g := newMaze(t, 6, 9, "wilson", 11)
	path, err := solve.NewLee(g).Solve()
	require.NoError(t, err)

	out := renderColored(g, path)
	assert.Equal(t, maze.Render(g, path), color.ClearCode(out))

	assert.Equal(t, g.String(), color.ClearCode(renderColored(g, nil)))
}

func TestStats(t *testing.T) {
	g := newMaze(t, 5, 5, "kruskal", 2)
	out := stats(g)
	assert.Contains(t, out, "regions: 1\n")
	assert.Contains(t, out, "perfect: true\n")
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func openStore(t *testing.T) *dataset.Store {
	t.Helper()
	store, err := dataset.Open(filepath.Join(t.TempDir(), "batch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunBatch(t *testing.T) {
	store := openStore(t)

	stored, err := runBatch(context.Background(), store, batchParams{
		count: 12, workers: 4, rows: 6, cols: 5,
		algorithm: "hunt-and-kill", solver: "astar", seed: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, stored)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	recs, err := store.List(20, 0)
	require.NoError(t, err)
	seeds := make(map[uint64]bool)
	for _, rec := range recs {
		seeds[rec.Seed] = true
		assert.Equal(t, "hunt-and-kill", rec.Algorithm)

		g, err := rec.Grid()
		require.NoError(t, err)
		assert.True(t, g.IsPerfect())

		require.NotEmpty(t, rec.Solution)
		assert.NoError(t, rec.Solution.Validate(g))
		assert.Equal(t, g.Corner(), rec.Solution[len(rec.Solution)-1])

		again := newMaze(t, 6, 5, "hunt-and-kill", rec.Seed)
		assert.True(t, again.Equal(g), "seed %d is not reproducible", rec.Seed)
	}
	for seed := uint64(100); seed < 112; seed++ {
		assert.True(t, seeds[seed], "seed %d missing", seed)
	}
}

func TestRunBatchErrors(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	_, err := runBatch(ctx, store, batchParams{count: 1, rows: 3, cols: 3, algorithm: "maze-o-matic"})
	assert.ErrorIs(t, err, generate.ErrUnknownAlgorithm)

	_, err = runBatch(ctx, store, batchParams{count: 1, rows: 3, cols: 3, algorithm: "dfs", solver: "guess"})
	assert.ErrorIs(t, err, solve.ErrUnknownSolver)

	_, err = runBatch(ctx, store, batchParams{count: 3, rows: 0, cols: 3, algorithm: "dfs"})
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	stored, err := runBatch(cancelled, store, batchParams{count: 5, rows: 3, cols: 3, algorithm: "dfs"})
	assert.Zero(t, stored)
	assert.ErrorIs(t, err, context.Canceled)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}
