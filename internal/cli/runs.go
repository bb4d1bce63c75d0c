package cli

import (
	"fmt"

	"github.com/julianstephens/datefeatures/internal/output"
)

// RunsListCmd lists persisted export runs, newest first.
type RunsListCmd struct {
	DB     string `name:"db" help:"Export target to read from."`
	Format string `help:"Output format (table, csv, json)." default:"table"`
}

func (cmd *RunsListCmd) Run(ctx *Context) error {
	format, err := output.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	store, err := ctx.OpenStore(cmd.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(ctx.context())
	if err != nil {
		return err
	}
	if len(runs) == 0 && format == output.FormatTable {
		_, err := fmt.Fprintln(ctx.out(), "No export runs found.")
		return err
	}
	return output.WriteRuns(ctx.out(), format, runs)
}

// RunsShowCmd prints the feature rows of one export run.
type RunsShowCmd struct {
	ID     string `arg:"" help:"Export run id."`
	DB     string `name:"db" help:"Export target to read from."`
	Format string `help:"Output format (table, csv, json)." default:"csv"`
}

func (cmd *RunsShowCmd) Run(ctx *Context) error {
	format, err := output.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	store, err := ctx.OpenStore(cmd.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.GetRunRecords(ctx.context(), cmd.ID)
	if err != nil {
		return err
	}
	return output.WriteRecords(ctx.out(), format, records)
}
