package migration

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestApplyMigrations(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	runner, err := NewRunner(db, migrationFS(map[string]string{
		"002_rows.sql": "CREATE TABLE rows (id INTEGER);",
		"001_runs.sql": "CREATE TABLE runs (id TEXT);",
		"README.md":    "ignored",
	}), DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	var logged []string
	applied, err := runner.ApplyMigrations(ctx, func(msg string) { logged = append(logged, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}
	if len(logged) == 0 || !strings.Contains(logged[0], "001") {
		t.Errorf("expected migration 001 to be applied first, log: %v", logged)
	}

	version, err := runner.GetCurrentVersion(ctx)
	if err != nil || version != 2 {
		t.Errorf("GetCurrentVersion = %d, %v; want 2", version, err)
	}

	// Second run is a no-op.
	applied, err = runner.ApplyMigrations(ctx, nil)
	if err != nil || applied != 0 {
		t.Errorf("re-apply = %d, %v; want 0, nil", applied, err)
	}
	if err := runner.ValidateVersion(ctx); err != nil {
		t.Errorf("ValidateVersion failed: %v", err)
	}
}

func TestApplyMigrations_FailedMigrationRollsBack(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	runner, _ := NewRunner(db, migrationFS(map[string]string{
		"001_ok.sql":     "CREATE TABLE ok (id INTEGER);",
		"002_broken.sql": "CREATE TABLE broken (",
	}), DriverSQLite)

	applied, err := runner.ApplyMigrations(ctx, nil)
	if err == nil {
		t.Fatalf("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 applied migration, got %d", applied)
	}
	if version, _ := runner.GetCurrentVersion(ctx); version != 1 {
		t.Errorf("expected version 1 after failure, got %d", version)
	}
}

func TestReadMigrationFiles_Invalid(t *testing.T) {
	db := setupTestDB(t)
	tests := map[string]map[string]string{
		"no underscore": {"001.sql": "SELECT 1;"},
		"not a number":  {"abc_init.sql": "SELECT 1;"},
		"zero version":  {"000_init.sql": "SELECT 1;"},
		"duplicate":     {"001_a.sql": "SELECT 1;", "1_b.sql": "SELECT 1;"},
	}

	for name, files := range tests {
		t.Run(name, func(t *testing.T) {
			runner, _ := NewRunner(db, migrationFS(files), DriverSQLite)
			if _, err := runner.ReadMigrationFiles(); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestValidateVersion_DatabaseNewer(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	runner, _ := NewRunner(db, migrationFS(map[string]string{"001_a.sql": "SELECT 1;"}), DriverSQLite)
	if err := runner.EnsureSchemaVersionTable(ctx); err != nil {
		t.Fatalf("EnsureSchemaVersionTable failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (7)"); err != nil {
		t.Fatalf("insert version: %v", err)
	}

	if err := runner.ValidateVersion(ctx); err == nil {
		t.Errorf("expected error for newer database schema")
	}
}

func TestNewRunner_UnknownDriver(t *testing.T) {
	if _, err := NewRunner(nil, fstest.MapFS{}, Driver("mysql")); err == nil {
		t.Errorf("expected error for unknown driver")
	}
}
