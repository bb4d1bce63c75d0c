package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	pq "github.com/lib/pq"

	"github.com/julianstephens/datefeatures/internal/constants"
	"github.com/julianstephens/datefeatures/internal/logger"
	"github.com/julianstephens/datefeatures/internal/migration"
	"github.com/julianstephens/datefeatures/internal/models"
	"github.com/julianstephens/datefeatures/internal/output"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

type PostgresStore struct {
	sqlStore
	connStr string
}

// NewPostgresStore returns a store that keeps its tables in the datefeatures
// schema unless connStr sets its own search_path.
func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		sqlStore: sqlStore{driver: migration.DriverPostgres},
		connStr:  withSearchPath(connStr),
	}
}

func withSearchPath(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if _, ok := dsnParam(connStr, "search_path"); ok {
		return connStr
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

// dsnParam looks up a key in a space-separated key=value DSN, ignoring case.
func dsnParam(connStr, key string) (string, bool) {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), key) {
			return kv[1], true
		}
	}
	return "", false
}

func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	_, ok := dsnParam(connStr, "sslmode")
	return ok
}

// ValidateConnString checks that connStr is a PostgreSQL URL or DSN that
// carries no password. Passwords belong in the keyring, .pgpass or PGPASSWORD.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	if _, ok := dsnParam(connStr, "password"); ok {
		return false, ErrEmbeddedCredentials
	}
	return true, nil
}

func (s *PostgresStore) Init(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	connector, err := pq.NewConnector(s.connStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	db := sql.OpenDB(connector)

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if err := s.runMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun streams the feature rows with COPY inside the run's transaction.
func (s *PostgresStore) SaveRun(ctx context.Context, run models.ExportRun, records []output.Record) (models.ExportRun, error) {
	run, err := prepareRun(run, records, uuid.NewString)
	if err != nil {
		return models.ExportRun{}, err
	}
	if _, err := uuid.Parse(run.ID); err != nil {
		return models.ExportRun{}, fmt.Errorf("export run id %q is not a UUID: %w", run.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.ExportRun{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.insertRun(ctx, tx, run); err != nil {
		return models.ExportRun{}, err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("date_features", featureColumns...))
	if err != nil {
		return models.ExportRun{}, fmt.Errorf("failed to start copy: %w", err)
	}
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, recordValues(run.ID, r)...); err != nil {
			stmt.Close()
			return models.ExportRun{}, fmt.Errorf("failed to copy feature row %s: %w", r.Date, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return models.ExportRun{}, fmt.Errorf("failed to flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return models.ExportRun{}, fmt.Errorf("failed to finish copy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.ExportRun{}, fmt.Errorf("failed to commit export run: %w", err)
	}
	logger.Debug("Copied feature rows", "run", run.ID, "rows", run.RowCount)
	return run, nil
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (models.ExportRun, error) {
	return s.getRun(ctx, id)
}

func (s *PostgresStore) GetRunRecords(ctx context.Context, id string) ([]output.Record, error) {
	return s.getRunRecords(ctx, id)
}

func (s *PostgresStore) ListRuns(ctx context.Context) ([]models.ExportRun, error) {
	return s.listRuns(ctx)
}

// GetConfigPath returns a non-sensitive identifier instead of the connection string.
func (s *PostgresStore) GetConfigPath() string {
	return "postgresql"
}
