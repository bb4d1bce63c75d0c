package cli

import (
	"github.com/julianstephens/datefeatures/internal/calendar"
	"github.com/julianstephens/datefeatures/internal/features"
	"github.com/julianstephens/datefeatures/internal/tui"
)

// BrowseCmd opens the interactive feature browser.
type BrowseCmd struct {
	Start string `arg:"" optional:"" name:"startdate" help:"First date (YYYY-MM-DD). Prompted for when missing."`
	End   string `arg:"" optional:"" name:"enddate" help:"Last date (YYYY-MM-DD). Prompted for when missing."`
}

func (cmd *BrowseCmd) Run(ctx *Context) error {
	start, end, err := tui.PromptDateRange(cmd.Start, cmd.End)
	if err != nil {
		return err
	}
	if err := checkYears([]int{start.Year, end.Year}); err != nil {
		return err
	}
	table, err := features.GenerateContext(ctx.context(), start, end)
	if err != nil {
		return err
	}

	var years []int
	for y := start.Year; y <= end.Year; y++ {
		years = append(years, y)
	}
	return tui.Run(tui.NewModel(table, calendar.HolidaysForYears(years)))
}
