package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/datefeatures/internal/cli"
	"github.com/julianstephens/datefeatures/internal/config"
	"github.com/julianstephens/datefeatures/internal/constants"
	apperrors "github.com/julianstephens/datefeatures/internal/errors"
	"github.com/julianstephens/datefeatures/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/datefeatures/config.yaml"`
	Debug   bool   `help:"Log debug output to stderr."`

	Generate cli.GenerateCmd `cmd:"" help:"Print the calendar feature table for a date range." default:"withargs"`
	Holidays cli.HolidaysCmd `cmd:"" help:"List Norwegian public holidays for years."`
	Easter   cli.EasterCmd   `cmd:"" help:"Print Easter Sunday for years."`
	Export   cli.ExportCmd   `cmd:"" help:"Generate a feature table and store it in SQLite or PostgreSQL."`
	Runs     struct {
		List cli.RunsListCmd `cmd:"" help:"List stored export runs." default:"1"`
		Show cli.RunsShowCmd `cmd:"" help:"Print the rows of a stored export run."`
	} `cmd:"" help:"Inspect stored export runs."`
	Browse cli.BrowseCmd `cmd:"" help:"Browse a feature table interactively."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Snapshot the SQLite export database." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List snapshots."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the SQLite export database from a snapshot."`
	} `cmd:"" help:"Manage SQLite export database snapshots."`
	Keyring struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status cli.KeyringStatusCmd `cmd:"" help:"Check the OS keyring." default:"1"`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Norwegian calendar features: holidays, workdays and days squeezed between freedays"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}
	if err := logger.Init(logger.Config{
		Debug:  cfg.Log.Debug,
		LogDir: config.ExpandHome(cfg.Log.Dir),
	}); err != nil {
		apperrors.Fatal(err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	appCtx := &cli.Context{
		Ctx:    runCtx,
		Config: cfg,
		Out:    os.Stdout,
	}

	if err := ctx.Run(appCtx); err != nil {
		stop()
		apperrors.Fatal(err)
	}
}
