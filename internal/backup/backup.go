// Package backup snapshots a SQLite export database before it is written to.
package backup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/datefeatures/internal/constants"
	"github.com/julianstephens/datefeatures/internal/logger"
)

const (
	// DefaultKeep is how many snapshots survive rotation
	DefaultKeep = 14
	DirName     = "backups"
	FileSuffix  = ".db"

	timestampFormat = "20060102-150405"
)

// ErrNoDatabase is returned when the database to snapshot does not exist yet.
var ErrNoDatabase = errors.New("database does not exist")

// Info describes one snapshot file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager keeps rotating snapshots next to a SQLite database file.
type Manager struct {
	dbPath string
	dir    string
	keep   int
	now    func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		keep:   DefaultKeep,
		now:    time.Now,
	}
}

// WithKeep sets how many snapshots rotation retains. Values below 1 keep one.
func (m *Manager) WithKeep(n int) *Manager {
	if n < 1 {
		n = 1
	}
	m.keep = n
	return m
}

func (m *Manager) Dir() string {
	return m.dir
}

func (m *Manager) prefix() string {
	base := strings.TrimSuffix(filepath.Base(m.dbPath), filepath.Ext(m.dbPath))
	if base == "" {
		base = constants.AppName
	}
	return base + "-"
}

// Snapshot copies the database into the backup directory and rotates old
// snapshots. It returns ErrNoDatabase when there is nothing to copy.
func (m *Manager) Snapshot(ctx context.Context) (string, error) {
	return m.snapshot(ctx, true)
}

func (m *Manager) snapshot(ctx context.Context, rotate bool) (string, error) {
	if _, err := os.Stat(m.dbPath); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := m.vacuumInto(ctx, path); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Debug("Created database snapshot", "path", path)

	if rotate {
		if err := m.rotate(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return path, nil
}

func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(timestampFormat)
	path := filepath.Join(m.dir, m.prefix()+stamp+FileSuffix)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if i > 100 {
			return "", errors.New("failed to generate unique backup filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", m.prefix(), stamp, i, FileSuffix))
	}
}

// vacuumInto writes a consistent copy with VACUUM INTO, falling back to a
// plain file copy.
func (m *Manager) vacuumInto(ctx context.Context, dest string) error {
	src, err := sql.Open("sqlite", m.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	if err := verify(ctx, src); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := src.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		return copyFile(m.dbPath, dest)
	}
	return nil
}

// List returns the snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, m.prefix()) || !strings.HasSuffix(name, FileSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, m.prefix()), FileSuffix)
		if len(stamp) > len(timestampFormat) {
			// Drop the "-N" collision counter.
			stamp = stamp[:len(timestampFormat)]
		}
		ts, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
		if err != nil {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Path:      filepath.Join(m.dir, name),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].Timestamp.Equal(infos[j].Timestamp) {
			return infos[i].Path > infos[j].Path
		}
		return infos[i].Timestamp.After(infos[j].Timestamp)
	})
	return infos, nil
}

func (m *Manager) rotate() error {
	infos, err := m.List()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(infos); i++ {
		if err := os.Remove(infos[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", infos[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the database with a snapshot. The current database is
// snapshotted first, without rotation.
func (m *Manager) Restore(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup file does not exist: %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	err = verify(ctx, db)
	db.Close()
	if err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := m.snapshot(ctx, false); err != nil && !errors.Is(err, ErrNoDatabase) {
		return fmt.Errorf("failed to backup current database before restore: %w", err)
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

func verify(ctx context.Context, db *sql.DB) error {
	var count int
	return db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
