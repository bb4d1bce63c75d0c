package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/datefeatures/internal/backup"
	"github.com/julianstephens/datefeatures/internal/features"
	"github.com/julianstephens/datefeatures/internal/logger"
	"github.com/julianstephens/datefeatures/internal/models"
	"github.com/julianstephens/datefeatures/internal/output"
	"github.com/julianstephens/datefeatures/internal/storage"
)

// ExportCmd generates a feature table and stores it as an export run.
type ExportCmd struct {
	Start    string `arg:"" name:"startdate" help:"First date (YYYY-MM-DD)."`
	End      string `arg:"" name:"enddate" help:"Last date (YYYY-MM-DD), inclusive."`
	DB       string `name:"db" help:"SQLite file, PostgreSQL connection string without password, or 'keyring'."`
	NoBackup bool   `help:"Skip the snapshot of an existing SQLite database."`
}

func (cmd *ExportCmd) Run(ctx *Context) error {
	start, end, err := parseRange(cmd.Start, cmd.End)
	if err != nil {
		return err
	}
	table, err := features.GenerateContext(ctx.context(), start, end)
	if err != nil {
		return err
	}

	if target := ctx.ResolveTarget(cmd.DB); !cmd.NoBackup && target != KeyringTarget && !storage.IsPostgresTarget(target) {
		snapshotBeforeWrite(ctx, target)
	}

	store, err := ctx.OpenStore(cmd.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.SaveRun(ctx.context(), models.ExportRun{
		Start: start.String(),
		End:   end.String(),
	}, output.Records(table))
	if err != nil {
		return err
	}

	logger.Info("Saved export run", "id", run.ID, "rows", run.RowCount, "target", store.GetConfigPath())
	_, err = fmt.Fprintf(ctx.out(), "Saved run %s (%d rows, %s to %s) to %s\n",
		run.ID, run.RowCount, run.Start, run.End, store.GetConfigPath())
	return err
}

// snapshotBeforeWrite keeps a copy of an existing database. Failures are
// logged, not returned.
func snapshotBeforeWrite(ctx *Context, dbPath string) {
	path, err := backup.NewManager(dbPath).Snapshot(ctx.context())
	switch {
	case errors.Is(err, backup.ErrNoDatabase):
	case err != nil:
		logger.Warn("Automatic backup failed", "error", err)
	default:
		logger.Debug("Automatic backup created", "path", path)
	}
}
