// Package persistence selects concrete storage backends from configuration.
package persistence

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"electroplan/internal/config"
	"electroplan/internal/infra/persistence/memory"
	"electroplan/internal/infra/persistence/postgres"
	"electroplan/internal/infra/persistence/remote"
	"electroplan/internal/infra/persistence/sqlite"
	"electroplan/pkg/domain"
)

// Driver identifies a concrete local sink implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory only (tests / ephemeral)
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // PostgreSQL server
)

// OpenSink builds the configured local sink. Defaults to sqlite.
func OpenSink(ctx context.Context, cfg *config.Config) (domain.Sink, error) {
	driver := Driver(cfg.StorageDriver)
	if driver == "" {
		driver = DriverSQLite
	}
	switch driver {
	case DriverMemory:
		return memory.NewSink(), nil
	case DriverSQLite:
		return sqlite.NewSink(cfg.SQLitePath)
	case DriverPostgres:
		return postgres.NewSink(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

// OpenRemote builds the autosave client when a base URL is configured, and
// returns nil otherwise: no session means the store runs offline against the
// local sink alone.
func OpenRemote(cfg *config.Config, log zerolog.Logger) (domain.RemoteStore, error) {
	if cfg.RemoteBaseURL == "" {
		return nil, nil
	}
	client, err := remote.NewClient(remote.Options{
		BaseURL: cfg.RemoteBaseURL,
		Token:   cfg.RemoteToken,
		Timeout: cfg.RemoteTimeout,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
