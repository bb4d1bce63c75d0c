package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/datefeatures/internal/backup"
	"github.com/julianstephens/datefeatures/internal/storage"
)

func (c *Context) sqlitePath(flag string) (string, error) {
	target := c.ResolveTarget(flag)
	if target == KeyringTarget || storage.IsPostgresTarget(target) {
		return "", errors.New("backups are only available for SQLite export targets")
	}
	return target, nil
}

// BackupCreateCmd snapshots the SQLite export database.
type BackupCreateCmd struct {
	DB string `name:"db" help:"SQLite export database."`
}

func (cmd *BackupCreateCmd) Run(ctx *Context) error {
	path, err := ctx.sqlitePath(cmd.DB)
	if err != nil {
		return err
	}
	snap, err := backup.NewManager(path).Snapshot(ctx.context())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.out(), "Backup created: %s\n", snap)
	return err
}

// BackupListCmd lists snapshots of the SQLite export database.
type BackupListCmd struct {
	DB string `name:"db" help:"SQLite export database."`
}

func (cmd *BackupListCmd) Run(ctx *Context) error {
	path, err := ctx.sqlitePath(cmd.DB)
	if err != nil {
		return err
	}
	mgr := backup.NewManager(path)
	infos, err := mgr.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		_, err := fmt.Fprintf(ctx.out(), "No backups found in %s\n", mgr.Dir())
		return err
	}
	for _, info := range infos {
		fmt.Fprintf(ctx.out(), "%s\t%s\t%.1f KB\n",
			filepath.Base(info.Path), info.Timestamp.Format("2006-01-02 15:04:05"), float64(info.Size)/1024)
	}
	return nil
}

// BackupRestoreCmd replaces the SQLite export database with a snapshot.
type BackupRestoreCmd struct {
	File string `arg:"" help:"Snapshot file, or its name inside the backup directory."`
	DB   string `name:"db" help:"SQLite export database."`
}

func (cmd *BackupRestoreCmd) Run(ctx *Context) error {
	path, err := ctx.sqlitePath(cmd.DB)
	if err != nil {
		return err
	}
	mgr := backup.NewManager(path)

	file := cmd.File
	if !filepath.IsAbs(file) && filepath.Dir(file) == "." {
		file = filepath.Join(mgr.Dir(), file)
	}
	if err := mgr.Restore(ctx.context(), file); err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.out(), "Restored %s from %s\n", path, filepath.Base(file))
	return err
}
