/*
Package dataset archives generated mazes in a SQLite table, one row per maze,
walls kept as the canonical bit-string and the solution gob-encoded.
*/
package dataset

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/mazes/internal/maze"
)

var Log = logrus.New()

var (
	ErrBadName  = errors.New("bad name for dataset table")
	ErrNotFound = errors.New("maze not found")
)

type Record struct {
	ID        string
	Algorithm string
	Rows      int
	Cols      int
	Seed      uint64
	Walls     maze.Bitstring
	Solution  maze.Path
	CreatedAt time.Time
}

// NewRecord captures the current walls of g.
func NewRecord(g *maze.Grid, algorithm string, seed uint64, solution maze.Path) Record {
	return Record{
		Algorithm: algorithm,
		Rows:      g.Rows(),
		Cols:      g.Cols(),
		Seed:      seed,
		Walls:     g.WallBitstring(),
		Solution:  solution,
	}
}

// Grid rebuilds the stored maze.
func (r Record) Grid() (*maze.Grid, error) {
	g, err := maze.New(r.Rows, r.Cols)
	if err != nil {
		return nil, err
	}
	if err := g.SetWallBitstring(r.Walls); err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	return g, nil
}

type Store struct {
	mu   sync.Mutex
	name string
	db   *sql.DB
}

func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isLetter(c) {
			return false
		}
	}
	return true
}

// Open opens (or creates) the SQLite file at path with a "mazes" table.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	s, err := New(db, "mazes")
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New creates the table name in db if needed. name may only contain Latin
// letters and underscores since it is spliced into the statements.
func New(db *sql.DB, name string) (*Store, error) {
	if !isLetters(name) {
		return nil, ErrBadName
	}

	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + name + ` (
	id			TEXT PRIMARY KEY,
	algorithm	TEXT NOT NULL,
	rows		INTEGER NOT NULL,
	cols		INTEGER NOT NULL,
	seed		INTEGER NOT NULL,
	walls		TEXT NOT NULL,
	solution	BLOB,
	created_at	TIMESTAMP NOT NULL
);`)
	if err != nil {
		return nil, err
	}
	return &Store{name: name, db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts rec, assigning a fresh ID and creation time when unset. The
// stored record is returned.
func (s *Store) Put(rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	var buf bytes.Buffer
	if len(rec.Solution) > 0 {
		if err := gob.NewEncoder(&buf).Encode(rec.Solution); err != nil {
			return Record{}, err
		}
	}

	_, err := s.db.Exec(`
INSERT INTO `+s.name+` (id, algorithm, rows, cols, seed, walls, solution, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		rec.ID, rec.Algorithm, rec.Rows, rec.Cols, int64(rec.Seed),
		rec.Walls.String(), buf.Bytes(), rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}

	Log.WithFields(logrus.Fields{
		"id": rec.ID, "algorithm": rec.Algorithm,
		"rows": rec.Rows, "cols": rec.Cols, "seed": rec.Seed,
	}).Debug("maze archived")
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec      Record
		seed     int64
		walls    string
		solution []byte
	)
	err := row.Scan(
		&rec.ID, &rec.Algorithm, &rec.Rows, &rec.Cols, &seed, &walls, &solution, &rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	rec.Seed = uint64(seed)
	if rec.Walls, err = maze.ParseBitstring(walls); err != nil {
		return Record{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	if len(solution) > 0 {
		if err := gob.NewDecoder(bytes.NewReader(solution)).Decode(&rec.Solution); err != nil {
			return Record{}, fmt.Errorf("record %s solution: %w", rec.ID, err)
		}
	}
	return rec, nil
}

const columns = `id, algorithm, rows, cols, seed, walls, solution, created_at`

// Get returns [ErrNotFound] when id is not stored.
func (s *Store) Get(id string) (Record, error) {
	rec, err := scanRecord(s.db.QueryRow(
		`SELECT `+columns+` FROM `+s.name+` WHERE id = ?;`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// List returns up to limit records in insertion order, skipping offset.
func (s *Store) List(limit, offset int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT `+columns+` FROM `+s.name+` ORDER BY created_at, rowid LIMIT ? OFFSET ?;`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) Count() (n int, err error) {
	err = s.db.QueryRow(`SELECT COUNT(*) FROM ` + s.name + `;`).Scan(&n)
	return
}

// Delete removes id without checking that it existed.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM `+s.name+` WHERE id = ?;`, id)
	return err
}
