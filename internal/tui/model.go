// Package tui implements the interactive feature table browser.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/datefeatures/internal/calendar"
	"github.com/julianstephens/datefeatures/internal/dateparts"
	"github.com/julianstephens/datefeatures/internal/features"
	"github.com/julianstephens/datefeatures/internal/output"
)

type SessionState int

const (
	StateFeatures SessionState = iota
	StateHolidays
	stateCount
)

func (s SessionState) String() string {
	switch s {
	case StateFeatures:
		return "Features"
	case StateHolidays:
		return "Holidays"
	}
	return "Unknown"
}

// Filter restricts which feature rows are listed.
type Filter int

const (
	FilterAll Filter = iota
	FilterFreedays
	FilterHolidays
	FilterSqueezed
	filterCount
)

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all days"
	case FilterFreedays:
		return "freedays"
	case FilterHolidays:
		return "public holidays"
	case FilterSqueezed:
		return "inneklemte dager"
	}
	return "unknown"
}

func (f Filter) keep(row features.FeatureRow[dateparts.Parts]) bool {
	switch f {
	case FilterFreedays:
		return row.Freeday
	case FilterHolidays:
		return row.PublicHoliday
	case FilterSqueezed:
		return row.Squeezed
	}
	return true
}

type Model struct {
	rows     []features.FeatureRow[dateparts.Parts]
	holidays calendar.HolidayTable

	state         SessionState
	filter        Filter
	keys          KeyMap
	help          help.Model
	featureTable  table.Model
	holidayTable  table.Model
	quitting      bool
	width, height int
}

func NewModel(t features.FeatureTable[dateparts.Parts], holidays calendar.HolidayTable) Model {
	m := Model{
		rows:     t.Rows(),
		holidays: holidays.Sorted(),
		state:    StateFeatures,
		filter:   FilterAll,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}

	m.featureTable = table.New(
		table.WithColumns(columns(output.TableHeader(), m.featureCells(FilterAll))),
		table.WithFocused(true),
		table.WithHeight(20),
		table.WithStyles(tableStyles()),
	)
	m.featureTable.SetRows(m.featureCells(m.filter))

	holidayHeader := []string{"date", "weekday", "public_holiday_name"}
	holidayCells := m.holidayCells()
	m.holidayTable = table.New(
		table.WithColumns(columns(holidayHeader, holidayCells)),
		table.WithRows(holidayCells),
		table.WithHeight(20),
		table.WithStyles(tableStyles()),
	)

	return m
}

// Run starts the browser in the alternate screen and blocks until it exits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Visible returns how many feature rows pass the current filter.
func (m Model) Visible() int {
	return len(m.featureTable.Rows())
}

func (m Model) State() SessionState { return m.state }

func (m Model) Filter() Filter { return m.filter }

// Selected returns the feature row under the cursor.
func (m Model) Selected() (features.FeatureRow[dateparts.Parts], bool) {
	sel := m.featureTable.SelectedRow()
	if len(sel) == 0 {
		return features.FeatureRow[dateparts.Parts]{}, false
	}
	for _, row := range m.rows {
		if row.Date.String() == sel[0] {
			return row, true
		}
	}
	return features.FeatureRow[dateparts.Parts]{}, false
}

func (m Model) featureCells(f Filter) []table.Row {
	var cells []table.Row
	for _, row := range m.rows {
		if f.keep(row) {
			cells = append(cells, table.Row(output.TableRow(row)))
		}
	}
	return cells
}

func (m Model) holidayCells() []table.Row {
	cells := make([]table.Row, len(m.holidays))
	for i, h := range m.holidays {
		cells[i] = table.Row{h.Date.String(), h.Date.Weekday().String(), h.Name.String()}
	}
	return cells
}

// columns sizes each column to its widest cell.
func columns(header []string, rows []table.Row) []table.Column {
	cols := make([]table.Column, len(header))
	for i, title := range header {
		width := len(title)
		for _, row := range rows {
			if i < len(row) && len([]rune(row[i])) > width {
				width = len([]rune(row[i]))
			}
		}
		cols[i] = table.Column{Title: title, Width: width}
	}
	return cols
}
