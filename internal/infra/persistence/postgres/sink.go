// Package postgres persists the project collection to a Postgres table,
// mirroring the sqlite sink's single-bucket JSON layout. Suited to deployments
// where the local cache should live in a shared database instead of a file.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"electroplan/pkg/domain"
)

var _ domain.Sink = (*Sink)(nil)

const (
	defaultDriver  = "pgx"
	defaultDSN     = "postgres://localhost/electroplan?sslmode=disable"
	projectsBucket = "projects"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Sink stores the serialized collection under one bucket row.
type Sink struct {
	db *sql.DB
}

// NewSink connects using the provided DSN (falls back to defaultDSN) and
// ensures the state table exists.
func NewSink(ctx context.Context, dsn string) (*Sink, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("ensure state table: %w", err)
	}
	return &Sink{db: db}, nil
}

// Save replaces the persisted collection.
func (s *Sink) Save(ctx context.Context, projects []domain.Project) error {
	payload, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES($1,$2) ON CONFLICT(bucket) DO UPDATE SET payload=EXCLUDED.payload`,
		projectsBucket, payload); err != nil {
		return fmt.Errorf("upsert %s: %w", projectsBucket, err)
	}
	return nil
}

// Load returns the persisted collection, or an empty one when nothing has
// been saved yet.
func (s *Sink) Load(ctx context.Context) ([]domain.Project, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = $1`, projectsBucket).Scan(&payload)
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

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore
// function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
