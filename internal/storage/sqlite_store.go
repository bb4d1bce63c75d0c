package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/datefeatures/internal/migration"
	"github.com/julianstephens/datefeatures/internal/models"
	"github.com/julianstephens/datefeatures/internal/output"
)

type SQLiteStore struct {
	sqlStore
	path string
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		sqlStore: sqlStore{driver: migration.DriverSQLite},
		path:     path,
	}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	// Create the database directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// Serialize writers on the single file.
	db.SetMaxOpenConns(1)
	s.db = db

	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := s.runMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run models.ExportRun, records []output.Record) (models.ExportRun, error) {
	run, err := prepareRun(run, records, uuid.NewString)
	if err != nil {
		return models.ExportRun{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.ExportRun{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.insertRun(ctx, tx, run); err != nil {
		return models.ExportRun{}, err
	}
	if err := s.insertRecords(ctx, tx, run.ID, records); err != nil {
		return models.ExportRun{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.ExportRun{}, fmt.Errorf("failed to commit export run: %w", err)
	}
	return run, nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (models.ExportRun, error) {
	return s.getRun(ctx, id)
}

func (s *SQLiteStore) GetRunRecords(ctx context.Context, id string) ([]output.Record, error) {
	return s.getRunRecords(ctx, id)
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]models.ExportRun, error) {
	return s.listRuns(ctx)
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
