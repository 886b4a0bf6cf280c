// Package history records every analysis run in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Outcomes stored per run.
const (
	OutcomeScored       = "scored"
	OutcomeInsufficient = "insufficient_content"
	OutcomeNoFiles      = "no_language_files"
	OutcomeTooSmall     = "file_too_small"
	OutcomeFailed       = "failed"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("history record not found")

// Record is one analysis run.
type Record struct {
	ID        string    `json:"id"`
	World     string    `json:"world"`
	File      string    `json:"file"`
	Language  string    `json:"language"`
	Outcome   string    `json:"outcome"`
	Words     int       `json:"words"`
	Accepted  int       `json:"accepted"`
	Rejected  int       `json:"rejected"`
	Grade     float64   `json:"grade"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a SQLite-backed run log. It is safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	world TEXT NOT NULL,
	file TEXT NOT NULL DEFAULT '',
	language TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	words INTEGER NOT NULL DEFAULT 0,
	accepted INTEGER NOT NULL DEFAULT 0,
	rejected INTEGER NOT NULL DEFAULT 0,
	grade REAL NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_world ON runs(world);
`

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history db path not configured")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores r, assigning an id and timestamp when missing, and returns the
// stored record.
func (s *Store) Add(ctx context.Context, r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC()
	if r.Outcome == "" {
		r.Outcome = OutcomeFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, world, file, language, outcome, words, accepted, rejected, grade, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.World, r.File, r.Language, r.Outcome, r.Words, r.Accepted, r.Rejected, r.Grade, r.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert run: %w", err)
	}
	log.Debug().Str("id", r.ID).Str("world", r.World).Str("outcome", r.Outcome).Msg("history recorded")
	return r, nil
}

// timeLayout is fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectColumns = "SELECT id, world, file, language, outcome, words, accepted, rejected, grade, created_at FROM runs"

// Recent returns up to limit runs, newest first. A non-positive limit
// returns 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get returns the run with id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := scanRecord(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var r Record
	var created string
	if err := sc.Scan(&r.ID, &r.World, &r.File, &r.Language, &r.Outcome, &r.Words, &r.Accepted, &r.Rejected, &r.Grade, &created); err != nil {
		return Record{}, err
	}
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	r.CreatedAt = t
	return r, nil
}
