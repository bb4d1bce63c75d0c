package backup

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T, rows int) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "features.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE export_runs (id TEXT PRIMARY KEY)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	for i := 0; i < rows; i++ {
		if _, err := db.Exec("INSERT INTO export_runs (id) VALUES (?)", i); err != nil {
			t.Fatalf("failed to insert test data: %v", err)
		}
	}
	return dbPath
}

func countRuns(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM export_runs").Scan(&n); err != nil {
		t.Fatalf("failed to count rows in %s: %v", path, err)
	}
	return n
}

// fixedClock advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(time.Second)
		return t
	}
}

func TestSnapshot(t *testing.T) {
	dbPath := setupTestDB(t, 2)
	mgr := NewManager(dbPath)

	path, err := mgr.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("snapshot written to %s, want dir %s", path, mgr.Dir())
	}
	if got := countRuns(t, path); got != 2 {
		t.Errorf("snapshot has %d rows, want 2", got)
	}
}

func TestSnapshot_NoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Snapshot(context.Background()); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("expected ErrNoDatabase, got %v", err)
	}
}

func TestSnapshot_Rotation(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath).WithKeep(3)
	mgr.now = fixedClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local))

	var last string
	for i := 0; i < 5; i++ {
		p, err := mgr.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot #%d failed: %v", i+1, err)
		}
		last = p
	}

	infos, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("expected 3 snapshots after rotation, got %d", len(infos))
	}
	if infos[0].Path != last {
		t.Errorf("newest snapshot = %s, want %s", infos[0].Path, last)
	}
	for i := 1; i < len(infos); i++ {
		if infos[i].Timestamp.After(infos[i-1].Timestamp) {
			t.Errorf("snapshots not sorted newest first: %v", infos)
		}
	}
}

func TestSnapshot_SameSecondCollision(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)
	stamp := time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return stamp }

	first, err := mgr.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	second, err := mgr.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct snapshot paths, got %s twice", first)
	}

	infos, _ := mgr.List()
	if len(infos) != 2 {
		t.Errorf("expected both snapshots listed, got %d", len(infos))
	}
}

func TestList_IgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "features-garbage.db", "other-20250101-120000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), nil, 0600); err != nil {
			t.Fatal(err)
		}
	}

	infos, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected no snapshots, got %v", infos)
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local))

	snap, err := mgr.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO export_runs (id) VALUES ('later')"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if err := mgr.Restore(ctx, snap); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := countRuns(t, dbPath); got != 1 {
		t.Errorf("restored database has %d rows, want 1", got)
	}

	// The pre-restore state was kept as its own snapshot.
	infos, _ := mgr.List()
	if len(infos) != 2 || countRuns(t, infos[0].Path) != 2 {
		t.Errorf("expected pre-restore snapshot with 2 rows, got %v", infos)
	}
}

func TestRestore_InvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Restore(context.Background(), bogus); err == nil {
		t.Errorf("expected error restoring a non-database file")
	}
	if err := mgr.Restore(context.Background(), filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Errorf("expected error for missing backup")
	}
}
