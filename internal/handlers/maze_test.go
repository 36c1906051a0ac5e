package handlers

import (
	"bytes"
	"context"
	"encoding/gob"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/mazes/internal/config"
	"github.com/vancomm/mazes/internal/maze"
	"github.com/vancomm/mazes/internal/repository"
)

type solutionKey struct {
	mazeId            int64
	solver, heuristic string
}

type fakeStore struct {
	mu        sync.Mutex
	mazes     []repository.Maze
	solutions map[solutionKey]repository.Solution
}

func newFakeStore() *fakeStore {
	return &fakeStore{solutions: make(map[solutionKey]repository.Solution)}
}

func (s *fakeStore) CreateMaze(_ context.Context, params repository.CreateMazeParams) (*repository.Maze, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.mazes {
		if m.Algorithm == params.Algorithm && m.Rows == params.Rows &&
			m.Cols == params.Cols && m.Seed == int64(params.Seed) {
			return nil, repository.ErrExists
		}
	}
	m := repository.Maze{
		MazeId:    int64(len(s.mazes) + 1),
		Algorithm: params.Algorithm,
		Rows:      params.Rows,
		Cols:      params.Cols,
		Seed:      int64(params.Seed),
		Walls:     params.Walls,
		Carved:    params.Carved,
		CreatedAt: pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	s.mazes = append(s.mazes, m)
	return &m, nil
}

func (s *fakeStore) FetchMaze(_ context.Context, mazeId int64) (*repository.Maze, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mazeId < 1 || mazeId > int64(len(s.mazes)) {
		return nil, repository.ErrNotFound
	}
	m := s.mazes[mazeId-1]
	return &m, nil
}

func (s *fakeStore) FindMaze(_ context.Context, key repository.MazeKey) (*repository.Maze, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.mazes {
		if m.Algorithm == key.Algorithm && m.Rows == key.Rows &&
			m.Cols == key.Cols && m.Seed == int64(key.Seed) {
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeStore) ListMazes(_ context.Context, filter repository.MazeFilter) ([]repository.Maze, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []repository.Maze
	for i := len(s.mazes) - 1; i >= 0 && len(res) < filter.Limit; i-- {
		m := s.mazes[i]
		if filter.Algorithm != nil && *filter.Algorithm != m.Algorithm {
			continue
		}
		if filter.Rows != nil && *filter.Rows != m.Rows {
			continue
		}
		if filter.Cols != nil && *filter.Cols != m.Cols {
			continue
		}
		res = append(res, m)
	}
	return res, nil
}

func (s *fakeStore) CreateSolution(_ context.Context, params repository.CreateSolutionParams) (*repository.Solution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := solutionKey{params.MazeId, params.Solver, params.Heuristic}
	if _, ok := s.solutions[key]; ok {
		return nil, repository.ErrExists
	}
	sol := repository.Solution{
		SolutionId: int64(len(s.solutions) + 1),
		MazeId:     params.MazeId,
		Solver:     params.Solver,
		Heuristic:  params.Heuristic,
		Length:     len(params.Path),
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(params.Path); err != nil {
		return nil, err
	}
	sol.Path = buf.Bytes()
	s.solutions[key] = sol
	return &sol, nil
}

func (s *fakeStore) FetchSolution(_ context.Context, mazeId int64, solver, heuristic string) (*repository.Solution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sol, ok := s.solutions[solutionKey{mazeId, solver, heuristic}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sol, nil
}

func newTestRouter(t *testing.T) (*mux.Router, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewMazeHandler(
		logger,
		store,
		&config.Limits{MaxSide: 32, DefaultAlgorithm: "kruskal"},
		rand.New(rand.NewPCG(1, 2)),
	)
	router := mux.NewRouter()
	h.Register(router)
	return router, store
}

func do(t *testing.T, router http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateMaze(t *testing.T) {
	router, store := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/maze?rows=5&cols=7&algorithm=dfs&seed=42")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	dto := decode[MazeDTO](t, rec)
	assert.Equal(t, "1", dto.MazeId)
	assert.Equal(t, "dfs", dto.Algorithm)
	assert.Equal(t, uint64(42), dto.Seed)
	assert.Len(t, dto.Walls, maze.BitstringLen(5, 7))
	assert.Len(t, dto.Codes, 35)
	assert.Equal(t, 34, dto.Carved)

	bits, err := maze.ParseBitstring(dto.Walls)
	require.NoError(t, err)
	g, err := maze.New(5, 7)
	require.NoError(t, err)
	require.NoError(t, g.SetWallBitstring(bits))
	assert.True(t, g.IsPerfect())

	t.Run("same key is not regenerated", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/maze?rows=5&cols=7&algorithm=dfs&seed=42")
		require.Equal(t, http.StatusOK, rec.Code)
		again := decode[MazeDTO](t, rec)
		assert.Equal(t, dto.MazeId, again.MazeId)
		assert.Equal(t, dto.Walls, again.Walls)
		assert.Equal(t, dto.Codes, again.Codes)
		assert.Equal(t, dto.Carved, again.Carved)
		assert.Len(t, store.mazes, 1)
	})

	t.Run("corrupt stored maze", func(t *testing.T) {
		store.mazes[0].Walls = "01x"
		rec := do(t, router, http.MethodPost, "/maze?rows=5&cols=7&algorithm=dfs&seed=42")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		store.mazes[0].Walls = dto.Walls
	})

	t.Run("default algorithm", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/maze?rows=3&cols=3")
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "kruskal", decode[MazeDTO](t, rec).Algorithm)
	})
}

func TestCreateMazeBadRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, target := range []string{
		"/maze",
		"/maze?rows=5",
		"/maze?rows=0&cols=5",
		"/maze?rows=5&cols=33",
		"/maze?rows=five&cols=5",
		"/maze?rows=5&cols=5&algorithm=labyrinth",
	} {
		t.Run(target, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec), "error")
		})
	}

	t.Run("degenerate random carving", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/maze?rows=1&cols=5&algorithm=random-carving")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestFetchMaze(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := do(t, router, http.MethodPost, "/maze?rows=4&cols=4&algorithm=binary-tree&seed=7")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[MazeDTO](t, rec)

	rec = do(t, router, http.MethodGet, "/maze/1")
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[MazeDTO](t, rec)
	assert.Equal(t, created.Walls, fetched.Walls)
	assert.Equal(t, created.Codes, fetched.Codes)

	rec = do(t, router, http.MethodGet, "/maze/1?format=text")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "+---+---+---+---+\n"))

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/maze/9").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/maze/x").Code)
}

func TestListMazes(t *testing.T) {
	router, _ := newTestRouter(t)
	for _, target := range []string{
		"/maze?rows=3&cols=3&algorithm=dfs&seed=1",
		"/maze?rows=3&cols=4&algorithm=dfs&seed=1",
		"/maze?rows=3&cols=3&algorithm=wilson&seed=1",
	} {
		require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, target).Code)
	}

	rec := do(t, router, http.MethodGet, "/maze")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]MazeDTO](t, rec)
	require.Len(t, all, 3)
	assert.Equal(t, "3", all[0].MazeId)
	assert.Empty(t, all[0].Codes)

	rec = do(t, router, http.MethodGet, "/maze?algorithm=dfs&cols=3")
	filtered := decode[[]MazeDTO](t, rec)
	require.Len(t, filtered, 1)
	assert.Equal(t, "1", filtered[0].MazeId)

	rec = do(t, router, http.MethodGet, "/maze?limit=2")
	assert.Len(t, decode[[]MazeDTO](t, rec), 2)
}

func TestSolveMaze(t *testing.T) {
	router, store := newTestRouter(t)
	require.Equal(t, http.StatusCreated,
		do(t, router, http.MethodPost, "/maze?rows=6&cols=6&algorithm=kruskal&seed=3").Code)

	rec := do(t, router, http.MethodGet, "/maze/1/solve")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	lee := decode[SolutionDTO](t, rec)
	assert.Equal(t, "lee", lee.Solver)
	assert.False(t, lee.Cached)
	assert.Equal(t, maze.Pos(0, 0), lee.Path[0])
	assert.Equal(t, maze.Pos(5, 5), lee.Path[len(lee.Path)-1])
	assert.Equal(t, len(lee.Path), lee.Length)
	assert.Len(t, store.solutions, 1)

	t.Run("cached", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/maze/1/solve?solver=bfs")
		require.Equal(t, http.StatusOK, rec.Code)
		cached := decode[SolutionDTO](t, rec)
		assert.True(t, cached.Cached)
		assert.Equal(t, lee.Path, cached.Path)
	})

	t.Run("astar agrees with lee", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/maze/1/solve?solver=astar&heuristic=euclidean")
		require.Equal(t, http.StatusOK, rec.Code)
		astar := decode[SolutionDTO](t, rec)
		assert.Equal(t, "euclidean", astar.Heuristic)
		assert.Equal(t, lee.Length, astar.Length)
		assert.Len(t, store.solutions, 2)
	})

	t.Run("custom endpoints are not cached", func(t *testing.T) {
		rec := do(t, router, http.MethodGet,
			"/maze/1/solve?solver=dfs&start_row=5&start_col=0&end_row=0&end_col=5")
		require.Equal(t, http.StatusOK, rec.Code)
		sol := decode[SolutionDTO](t, rec)
		assert.Equal(t, maze.Pos(5, 0), sol.Path[0])
		assert.Equal(t, maze.Pos(0, 5), sol.Path[len(sol.Path)-1])
		assert.Len(t, store.solutions, 2)
	})

	t.Run("bad requests", func(t *testing.T) {
		for _, target := range []string{
			"/maze/1/solve?solver=teleport",
			"/maze/1/solve?heuristic=chebyshev",
			"/maze/1/solve?solver=astar&heuristic=minkowski:NaN",
			"/maze/1/solve?start_row=1",
			"/maze/1/solve?end_row=9&end_col=9",
		} {
			assert.Equal(t, http.StatusBadRequest,
				do(t, router, http.MethodGet, target).Code, target)
		}
		assert.Equal(t, http.StatusNotFound,
			do(t, router, http.MethodGet, "/maze/2/solve").Code)
	})
}

func TestSolveDisconnected(t *testing.T) {
	router, store := newTestRouter(t)

	// a closed grid stored directly has no path at all
	g, err := maze.New(3, 3)
	require.NoError(t, err)
	_, err = store.CreateMaze(context.Background(), repository.CreateMazeParams{
		MazeKey: repository.MazeKey{Algorithm: "none", Rows: 3, Cols: 3},
		Walls:   g.WallBitstring().String(),
	})
	require.NoError(t, err)

	rec := do(t, router, http.MethodGet, "/maze/1/solve")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, store.solutions)
}

func TestAlgorithms(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/algorithms")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string][]string](t, rec)
	assert.Contains(t, body["generators"], "wilson")
	assert.Contains(t, body["solvers"], "astar")
}
