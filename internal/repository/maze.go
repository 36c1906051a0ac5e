package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Maze struct {
	MazeId    int64
	Algorithm string
	Rows      int
	Cols      int
	Seed      int64
	Walls     string
	Carved    int
	CreatedAt pgtype.Timestamptz
}

// MazeKey identifies a maze by everything needed to regenerate it.
type MazeKey struct {
	Algorithm string
	Rows      int
	Cols      int
	Seed      uint64
}

func (k MazeKey) args() pgx.NamedArgs {
	return pgx.NamedArgs{
		"algorithm": k.Algorithm,
		"rows":      k.Rows,
		"cols":      k.Cols,
		"seed":      int64(k.Seed),
	}
}

type CreateMazeParams struct {
	MazeKey
	Walls  string
	Carved int
}

// CreateMaze fails with [ErrExists] when a maze with the same key is stored.
func (q *Queries) CreateMaze(ctx context.Context, params CreateMazeParams) (*Maze, error) {
	args := params.args()
	args["walls"] = params.Walls
	args["carved"] = params.Carved

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO maze (algorithm, rows, cols, seed, walls, carved)
		VALUES (@algorithm, @rows, @cols, @seed, @walls, @carved)
		RETURNING *;`,
		args,
	)
	maze, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Maze])
	return maze, translate(err)
}

func (q *Queries) FetchMaze(ctx context.Context, mazeId int64) (*Maze, error) {
	rows, _ := q.db.Query(ctx, "SELECT * FROM maze WHERE maze_id = $1", mazeId)
	maze, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Maze])
	return maze, translate(err)
}

func (q *Queries) FindMaze(ctx context.Context, key MazeKey) (*Maze, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT * FROM maze
		WHERE algorithm = @algorithm AND rows = @rows AND cols = @cols AND seed = @seed`,
		key.args(),
	)
	maze, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Maze])
	return maze, translate(err)
}

type MazeFilter struct {
	Algorithm *string
	Rows      *int
	Cols      *int
	Limit     int
}

func (f MazeFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Algorithm != nil {
		clauses = append(clauses, "algorithm = @algorithm")
		args["algorithm"] = *f.Algorithm
	}
	if f.Rows != nil {
		clauses = append(clauses, "rows = @rows")
		args["rows"] = *f.Rows
	}
	if f.Cols != nil {
		clauses = append(clauses, "cols = @cols")
		args["cols"] = *f.Cols
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) ListMazes(ctx context.Context, filter MazeFilter) ([]Maze, error) {
	query := "SELECT * FROM maze"
	where, args := filter.WhereClause()
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY maze_id DESC LIMIT @limit"
	args["limit"] = max(filter.Limit, 1)

	rows, _ := q.db.Query(ctx, query, args)
	return pgx.CollectRows(rows, pgx.RowToStructByName[Maze])
}
