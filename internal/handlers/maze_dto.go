package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/vancomm/mazes/internal/maze"
	"github.com/vancomm/mazes/internal/repository"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type CreateMazeDTO struct {
	Rows      int     `schema:"rows,required"`
	Cols      int     `schema:"cols,required"`
	Algorithm string  `schema:"algorithm"`
	Seed      *uint64 `schema:"seed"`
}

func ParseCreateMazeDTO(src map[string][]string) (CreateMazeDTO, error) {
	var dto CreateMazeDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type SolveDTO struct {
	Solver    string `schema:"solver"`
	Heuristic string `schema:"heuristic"`
	Seed      uint64 `schema:"seed"`
	StartRow  *int   `schema:"start_row"`
	StartCol  *int   `schema:"start_col"`
	EndRow    *int   `schema:"end_row"`
	EndCol    *int   `schema:"end_col"`
}

func ParseSolveDTO(src map[string][]string) (SolveDTO, error) {
	dto := SolveDTO{Solver: "lee"}
	err := decoder.Decode(&dto, src)
	return dto, err
}

func position(row, col *int) (*maze.Position, error) {
	switch {
	case row == nil && col == nil:
		return nil, nil
	case row == nil || col == nil:
		return nil, errors.New("both row and column are required")
	}
	p := maze.Pos(*row, *col)
	return &p, nil
}

// Endpoints returns the custom start and end, nil where unset.
func (dto SolveDTO) Endpoints() (start, end *maze.Position, err error) {
	if start, err = position(dto.StartRow, dto.StartCol); err != nil {
		return nil, nil, fmt.Errorf("start: %w", err)
	}
	if end, err = position(dto.EndRow, dto.EndCol); err != nil {
		return nil, nil, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}

type ListMazesDTO struct {
	Algorithm *string `schema:"algorithm"`
	Rows      *int    `schema:"rows"`
	Cols      *int    `schema:"cols"`
	Limit     int     `schema:"limit"`
}

func ParseListMazesDTO(src map[string][]string) (ListMazesDTO, error) {
	dto := ListMazesDTO{Limit: 20}
	err := decoder.Decode(&dto, src)
	return dto, err
}

type MazeDTO struct {
	MazeId    string `json:"maze_id"`
	Algorithm string `json:"algorithm"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	Seed      uint64 `json:"seed"`
	Walls     string `json:"walls"`
	Codes     []int  `json:"codes,omitempty"`
	Carved    int    `json:"carved"`
	CreatedAt int64  `json:"created_at"`
}

// NewMazeDTO describes m; codes are included when g is given.
func NewMazeDTO(m *repository.Maze, g *maze.Grid) *MazeDTO {
	dto := &MazeDTO{
		MazeId:    strconv.FormatInt(m.MazeId, 10),
		Algorithm: m.Algorithm,
		Rows:      m.Rows,
		Cols:      m.Cols,
		Seed:      uint64(m.Seed),
		Walls:     m.Walls,
		Carved:    m.Carved,
		CreatedAt: m.CreatedAt.Time.UnixMilli(),
	}
	if g != nil {
		codes := g.Codes()
		dto.Codes = make([]int, len(codes))
		for i, c := range codes {
			dto.Codes[i] = int(c)
		}
	}
	return dto
}

type SolutionDTO struct {
	MazeId    string          `json:"maze_id"`
	Solver    string          `json:"solver"`
	Heuristic string          `json:"heuristic,omitempty"`
	Length    int             `json:"length"`
	Path      []maze.Position `json:"path"`
	Cached    bool            `json:"cached"`
}
