// Package sqlite persists the project collection to a single SQLite table as
// a JSON blob. It is the durable local storage used when no remote session
// exists, and the offline cache when one does.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"electroplan/pkg/domain"
)

var _ domain.Sink = (*Sink)(nil)

const projectsBucket = "projects"

// Sink stores the serialized collection under one bucket row.
type Sink struct {
	db   *sql.DB
	path string
}

// NewSink opens (or creates) the database file and ensures the state table
// exists.
func NewSink(path string) (*Sink, error) {
	if path == "" {
		path = "electroplan.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Sink{db: db, path: path}, nil
}

// Save replaces the persisted collection.
func (s *Sink) Save(ctx context.Context, projects []domain.Project) error {
	payload, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		projectsBucket, payload); err != nil {
		return fmt.Errorf("upsert %s: %w", projectsBucket, err)
	}
	return nil
}

// Load returns the persisted collection, or an empty one when nothing has
// been saved yet.
func (s *Sink) Load(ctx context.Context) ([]domain.Project, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, projectsBucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", projectsBucket, err)
	}
	var projects []domain.Project
	if err := json.Unmarshal(payload, &projects); err != nil {
		return nil, fmt.Errorf("decode %s: %w", projectsBucket, err)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}

// Close closes the database.
func (s *Sink) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Sink) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Sink) Path() string { return s.path }
