package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/vancomm/mazes/internal/config"
	"github.com/vancomm/mazes/internal/generate"
	"github.com/vancomm/mazes/internal/maze"
	"github.com/vancomm/mazes/internal/repository"
	"github.com/vancomm/mazes/internal/solve"
)

// MazeStore is the persistence used by [MazeHandler]; *repository.Queries
// implements it.
type MazeStore interface {
	CreateMaze(ctx context.Context, params repository.CreateMazeParams) (*repository.Maze, error)
	FetchMaze(ctx context.Context, mazeId int64) (*repository.Maze, error)
	FindMaze(ctx context.Context, key repository.MazeKey) (*repository.Maze, error)
	ListMazes(ctx context.Context, filter repository.MazeFilter) ([]repository.Maze, error)
	CreateSolution(ctx context.Context, params repository.CreateSolutionParams) (*repository.Solution, error)
	FetchSolution(ctx context.Context, mazeId int64, solver, heuristic string) (*repository.Solution, error)
}

type MazeHandler struct {
	logger *slog.Logger
	repo   MazeStore
	limits *config.Limits

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewMazeHandler(
	logger *slog.Logger,
	repo MazeStore,
	limits *config.Limits,
	rnd *rand.Rand,
) *MazeHandler {
	return &MazeHandler{
		logger: logger,
		repo:   repo,
		limits: limits,
		rnd:    rnd,
	}
}

func (h *MazeHandler) Register(router *mux.Router) {
	router.Methods("GET").Path("/algorithms").HandlerFunc(h.Algorithms)
	router.Methods("POST").Path("/maze").HandlerFunc(h.Create)
	router.Methods("GET").Path("/maze").HandlerFunc(h.List)
	router.Methods("GET").Path("/maze/{id}").HandlerFunc(h.Fetch)
	router.Methods("GET").Path("/maze/{id}/solve").HandlerFunc(h.Solve)
}

func (h *MazeHandler) seed() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rnd.Uint64()
}

func (h *MazeHandler) Algorithms(w http.ResponseWriter, r *http.Request) {
	SendJSONOrLog(w, h.logger, map[string][]string{
		"generators": generate.Names(),
		"solvers":    solve.Names(),
		"heuristics": {"manhattan", "euclidean", "minkowski", "zero"},
	})
}

func (h *MazeHandler) Create(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateMazeDTO(r.URL.Query())
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if dto.Rows < 1 || dto.Cols < 1 || dto.Rows > h.limits.MaxSide || dto.Cols > h.limits.MaxSide {
		sendError(w, h.logger, http.StatusBadRequest, fmt.Errorf(
			"rows and cols must be between 1 and %d", h.limits.MaxSide,
		))
		return
	}

	if dto.Algorithm == "" {
		dto.Algorithm = h.limits.DefaultAlgorithm
	}
	gen, err := generate.ByName(dto.Algorithm)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	seed := h.seed()
	if dto.Seed != nil {
		seed = *dto.Seed
	}
	key := repository.MazeKey{
		Algorithm: gen.Name(), Rows: dto.Rows, Cols: dto.Cols, Seed: seed,
	}

	existing, err := h.repo.FindMaze(r.Context(), key)
	if err == nil {
		g, err := gridOf(existing)
		if err != nil {
			internalError(w, h.logger, "stored maze is corrupt", err)
			return
		}
		SendJSONOrLog(w, h.logger, NewMazeDTO(existing, g))
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		internalError(w, h.logger, "unable to look up maze", err)
		return
	}

	g, err := maze.New(dto.Rows, dto.Cols)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	res, err := generate.Run(g, gen, seed)
	if err != nil {
		var ae maze.AssertionError
		if errors.As(err, &ae) {
			internalError(w, h.logger, "generator broke an invariant", err)
			return
		}
		sendError(w, h.logger, http.StatusUnprocessableEntity, err)
		return
	}

	m, err := h.repo.CreateMaze(r.Context(), repository.CreateMazeParams{
		MazeKey: key,
		Walls:   g.WallBitstring().String(),
		Carved:  res.Carved,
	})
	if errors.Is(err, repository.ErrExists) {
		// lost a race with an identical request
		m, err = h.repo.FindMaze(r.Context(), key)
	}
	if err != nil {
		internalError(w, h.logger, "unable to save maze", err)
		return
	}

	h.logger.Debug(
		"maze created",
		slog.Int64("id", m.MazeId),
		slog.String("algorithm", m.Algorithm),
		slog.Uint64("seed", seed),
	)
	sendStatus(w, h.logger, http.StatusCreated, NewMazeDTO(m, g))
}

func (h *MazeHandler) List(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseListMazesDTO(r.URL.Query())
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	mazes, err := h.repo.ListMazes(r.Context(), repository.MazeFilter{
		Algorithm: dto.Algorithm,
		Rows:      dto.Rows,
		Cols:      dto.Cols,
		Limit:     min(max(dto.Limit, 1), 100),
	})
	if err != nil {
		internalError(w, h.logger, "unable to list mazes", err)
		return
	}

	dtos := make([]*MazeDTO, len(mazes))
	for i := range mazes {
		dtos[i] = NewMazeDTO(&mazes[i], nil)
	}
	SendJSONOrLog(w, h.logger, dtos)
}

// load fetches the maze named by the {id} route variable and rebuilds its
// grid. It writes the error response itself and returns ok=false on failure.
func (h *MazeHandler) load(w http.ResponseWriter, r *http.Request) (*repository.Maze, *maze.Grid, bool) {
	mazeId, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid maze id"))
		return nil, nil, false
	}

	m, err := h.repo.FetchMaze(r.Context(), mazeId)
	if errors.Is(err, repository.ErrNotFound) {
		sendError(w, h.logger, http.StatusNotFound, fmt.Errorf("maze %d not found", mazeId))
		return nil, nil, false
	}
	if err != nil {
		internalError(w, h.logger, "unable to fetch maze", err)
		return nil, nil, false
	}

	g, err := gridOf(m)
	if err != nil {
		internalError(w, h.logger, "stored maze is corrupt", err)
		return nil, nil, false
	}
	return m, g, true
}

// gridOf rebuilds the grid of a stored maze from its wall bit-string.
func gridOf(m *repository.Maze) (*maze.Grid, error) {
	g, err := maze.New(m.Rows, m.Cols)
	if err != nil {
		return nil, err
	}
	bits, err := maze.ParseBitstring(m.Walls)
	if err != nil {
		return nil, err
	}
	if err := g.SetWallBitstring(bits); err != nil {
		return nil, err
	}
	return g, nil
}

// Fetch returns the maze as JSON, or as ASCII art with ?format=text.
func (h *MazeHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	m, g, ok := h.load(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(g.String())); err != nil {
			h.logger.Error("failed to send maze", slog.Any("error", err))
		}
		return
	}
	SendJSONOrLog(w, h.logger, NewMazeDTO(m, g))
}

// Solve runs a solver on a stored maze. Solutions between the default
// corners are cached per solver and heuristic.
func (h *MazeHandler) Solve(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseSolveDTO(r.URL.Query())
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	start, end, err := dto.Endpoints()
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	heuristic, err := solve.HeuristicByName(dto.Heuristic)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	m, g, ok := h.load(w, r)
	if !ok {
		return
	}

	opts := []solve.Option{solve.WithHeuristic(heuristic), solve.WithSeed(dto.Seed)}
	if start != nil {
		opts = append(opts, solve.WithStart(*start))
	}
	if end != nil {
		opts = append(opts, solve.WithEnd(*end))
	}
	solver, err := solve.ByName(dto.Solver, g, opts...)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if solver.Name() != "astar" {
		dto.Heuristic = ""
	}
	cacheable := start == nil && end == nil && solver.Name() != "random-dfs"

	if cacheable {
		cached, err := h.repo.FetchSolution(r.Context(), m.MazeId, solver.Name(), dto.Heuristic)
		if err == nil {
			path, err := cached.DecodePath()
			if err == nil {
				SendJSONOrLog(w, h.logger, &SolutionDTO{
					MazeId:    strconv.FormatInt(m.MazeId, 10),
					Solver:    cached.Solver,
					Heuristic: cached.Heuristic,
					Length:    cached.Length,
					Path:      path,
					Cached:    true,
				})
				return
			}
			h.logger.Warn("cached solution is corrupt", slog.Any("error", err))
		} else if !errors.Is(err, repository.ErrNotFound) {
			internalError(w, h.logger, "unable to fetch solution", err)
			return
		}
	}

	path, err := solver.Solve()
	switch {
	case errors.Is(err, maze.ErrDisconnected):
		sendError(w, h.logger, http.StatusUnprocessableEntity, err)
		return
	case errors.Is(err, maze.ErrOutOfBounds):
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	case err != nil:
		internalError(w, h.logger, "unable to solve maze", err)
		return
	}

	if cacheable {
		_, err := h.repo.CreateSolution(r.Context(), repository.CreateSolutionParams{
			MazeId:    m.MazeId,
			Solver:    solver.Name(),
			Heuristic: dto.Heuristic,
			Path:      path,
		})
		if err != nil && !errors.Is(err, repository.ErrExists) {
			h.logger.Error("unable to cache solution", slog.Any("error", err))
		}
	}

	SendJSONOrLog(w, h.logger, &SolutionDTO{
		MazeId:    strconv.FormatInt(m.MazeId, 10),
		Solver:    solver.Name(),
		Heuristic: dto.Heuristic,
		Length:    solver.Score(),
		Path:      path,
	})
}
