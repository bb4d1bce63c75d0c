package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/datefeatures/internal/calendar"
	"github.com/julianstephens/datefeatures/internal/dateparts"
	"github.com/julianstephens/datefeatures/internal/features"
	"github.com/julianstephens/datefeatures/internal/logger"
	"github.com/julianstephens/datefeatures/internal/output"
)

// GenerateCmd prints the feature table for an inclusive date range.
type GenerateCmd struct {
	Start  string `arg:"" name:"startdate" help:"First date (YYYY-MM-DD)."`
	End    string `arg:"" name:"enddate" help:"Last date (YYYY-MM-DD), inclusive."`
	CSV    bool   `short:"c" name:"csv" help:"Write CSV to stdout."`
	Format string `help:"Output format (table, csv, json). Defaults to the config value."`
	Output string `short:"o" help:"Write to FILE instead of stdout." type:"path"`
}

func parseRange(start, end string) (calendar.Date, calendar.Date, error) {
	s, err := calendar.ParseDate(start)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	e, err := calendar.ParseDate(end)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	if err := checkYears([]int{s.Year, e.Year}); err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	return s, e, nil
}

func (cmd *GenerateCmd) format(ctx *Context) (output.Format, error) {
	switch {
	case cmd.CSV:
		return output.FormatCSV, nil
	case cmd.Format != "":
		return output.ParseFormat(cmd.Format)
	default:
		return output.ParseFormat(ctx.config().Output.Format)
	}
}

func (cmd *GenerateCmd) Run(ctx *Context) error {
	start, end, err := parseRange(cmd.Start, cmd.End)
	if err != nil {
		return err
	}
	format, err := cmd.format(ctx)
	if err != nil {
		return err
	}

	table, err := features.GenerateContext(ctx.context(), start, end)
	if err != nil {
		return err
	}
	logger.Info("Generated feature table", "start", start, "end", end, "rows", table.Len())

	if cmd.Output == "" {
		return writeTable(ctx.out(), format, table)
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeTable(f, format, table); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, format output.Format, table features.FeatureTable[dateparts.Parts]) error {
	if err := output.Write(w, format, table); err != nil {
		return fmt.Errorf("failed to write %s output: %w", format, err)
	}
	return nil
}
