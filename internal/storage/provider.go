// Package storage persists generated feature tables as export runs in SQLite
// or PostgreSQL.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/julianstephens/datefeatures/internal/config"
	"github.com/julianstephens/datefeatures/internal/models"
	"github.com/julianstephens/datefeatures/internal/output"
)

// ErrRunNotFound is returned when an export run id does not exist.
var ErrRunNotFound = errors.New("export run not found")

type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error

	// Runs
	SaveRun(ctx context.Context, run models.ExportRun, records []output.Record) (models.ExportRun, error)
	GetRun(ctx context.Context, id string) (models.ExportRun, error)
	GetRunRecords(ctx context.Context, id string) ([]output.Record, error)
	ListRuns(ctx context.Context) ([]models.ExportRun, error)

	// Utils
	GetConfigPath() string
}

// IsPostgresTarget reports whether target is a PostgreSQL URL or key=value DSN
// rather than a SQLite file path.
func IsPostgresTarget(target string) bool {
	return strings.HasPrefix(target, "postgres://") ||
		strings.HasPrefix(target, "postgresql://") ||
		strings.Contains(target, "host=") ||
		strings.Contains(target, "dbname=")
}

// Open returns an uninitialized provider for target. Call Init before use.
func Open(target string) (Provider, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, errors.New("no export target given")
	}
	if IsPostgresTarget(target) {
		if _, err := ValidateConnString(target); err != nil {
			return nil, err
		}
		return NewPostgresStore(target), nil
	}
	return NewSQLiteStore(config.ExpandHome(target)), nil
}
