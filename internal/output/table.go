package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/datefeatures/internal/dateparts"
	"github.com/julianstephens/datefeatures/internal/features"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	freedayStyle = cellStyle.
			Foreground(lipgloss.Color("240"))

	holidayStyle = cellStyle.
			Foreground(lipgloss.Color("196")).
			Bold(true)

	squeezedStyle = cellStyle.
			Foreground(lipgloss.Color("214")).
			Italic(true)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
)

type rowKind int

const (
	rowWorkday rowKind = iota
	rowFreeday
	rowHoliday
	rowSqueezed
)

// TableHeader lists the columns shown in the terminal view.
func TableHeader() []string {
	return []string{"date", "weekday", "week", "holiday", "workday", "since", "until", "inneklemt"}
}

// TableRow renders the terminal view cells for a feature row.
func TableRow(row features.FeatureRow[dateparts.Parts]) []string {
	return NewRecord(row).Cells()
}

// Cells renders the terminal view cells of a record.
func (r Record) Cells() []string {
	// Dayofweek counts from Monday.
	weekday := time.Weekday((r.Dayofweek + 1) % 7)
	return []string{
		r.Date,
		weekday.String()[:3],
		strconv.Itoa(r.Week),
		r.PublicHolidayName,
		yesNo(r.Workday),
		features.Distance(r.DaysSinceFreeday).String(),
		features.Distance(r.DaysUntilFreeday).String(),
		yesNo(r.Inneklemt),
	}
}

func (r Record) kind() rowKind {
	switch {
	case r.PublicHoliday:
		return rowHoliday
	case r.Inneklemt:
		return rowSqueezed
	case r.Freeday:
		return rowFreeday
	}
	return rowWorkday
}

// WriteTable renders a compact, highlighted view of the feature table. Use
// CSV or JSON for the complete column set.
func WriteTable(w io.Writer, t features.FeatureTable[dateparts.Parts]) error {
	return writeRecordTable(w, Records(t))
}

func writeRecordTable(w io.Writer, records []Record) error {
	cells := make([][]string, len(records))
	kinds := make([]rowKind, len(records))
	for i, r := range records {
		cells[i] = r.Cells()
		kinds[i] = r.kind()
	}

	_, err := fmt.Fprintln(w, renderTable(TableHeader(), cells, kinds))
	return err
}

func renderTable(headers []string, rows [][]string, kinds []rowKind) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(kinds) {
				return cellStyle
			}
			switch kinds[row] {
			case rowHoliday:
				return holidayStyle
			case rowSqueezed:
				return squeezedStyle
			case rowFreeday:
				return freedayStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
