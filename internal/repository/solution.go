package repository

import (
	"bytes"
	"context"
	"encoding/gob"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vancomm/mazes/internal/maze"
)

type Solution struct {
	SolutionId int64
	MazeId     int64
	Solver     string
	Heuristic  string
	Length     int
	Path       []byte
	CreatedAt  pgtype.Timestamptz
}

func (s Solution) DecodePath() (maze.Path, error) {
	var path maze.Path
	err := gob.NewDecoder(bytes.NewReader(s.Path)).Decode(&path)
	return path, err
}

type CreateSolutionParams struct {
	MazeId    int64
	Solver    string
	Heuristic string
	Path      maze.Path
}

func encodePath(path maze.Path) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(path); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (q *Queries) CreateSolution(ctx context.Context, params CreateSolutionParams) (*Solution, error) {
	path, err := encodePath(params.Path)
	if err != nil {
		return nil, err
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO solution (maze_id, solver, heuristic, length, path)
		VALUES (@maze_id, @solver, @heuristic, @length, @path)
		RETURNING *;`,
		pgx.NamedArgs{
			"maze_id":   params.MazeId,
			"solver":    params.Solver,
			"heuristic": params.Heuristic,
			"length":    len(params.Path),
			"path":      path,
		},
	)
	solution, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Solution])
	return solution, translate(err)
}

func (q *Queries) FetchSolution(
	ctx context.Context, mazeId int64, solver, heuristic string,
) (*Solution, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT * FROM solution
		WHERE maze_id = $1 AND solver = $2 AND heuristic = $3`,
		mazeId, solver, heuristic,
	)
	solution, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Solution])
	return solution, translate(err)
}
