package cli

import (
	"fmt"

	"github.com/julianstephens/datefeatures/internal/calendar"
	"github.com/julianstephens/datefeatures/internal/output"
)

// MinYear is the first Gregorian year Easter is computed for.
const MinYear = 1583

func checkYears(years []int) error {
	for _, y := range years {
		if y < MinYear {
			return fmt.Errorf("year %d is before %d, the first supported Gregorian year", y, MinYear)
		}
	}
	return nil
}

// HolidaysCmd lists the Norwegian public holidays for one or more years.
type HolidaysCmd struct {
	Years  []int  `arg:"" name:"year" help:"Years to list."`
	Format string `help:"Output format (table, csv, json). Defaults to the config value."`
}

func (cmd *HolidaysCmd) Run(ctx *Context) error {
	if err := checkYears(cmd.Years); err != nil {
		return err
	}
	name := cmd.Format
	if name == "" {
		name = ctx.config().Output.Format
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return err
	}
	return output.WriteHolidays(ctx.out(), format, calendar.HolidaysForYears(cmd.Years).Sorted())
}

// EasterCmd prints Easter Sunday for each year.
type EasterCmd struct {
	Years []int `arg:"" name:"year" help:"Years to compute Easter Sunday for."`
}

func (cmd *EasterCmd) Run(ctx *Context) error {
	if err := checkYears(cmd.Years); err != nil {
		return err
	}
	for _, y := range cmd.Years {
		if _, err := fmt.Fprintf(ctx.out(), "%d\t%s\n", y, calendar.Easter(y)); err != nil {
			return err
		}
	}
	return nil
}
