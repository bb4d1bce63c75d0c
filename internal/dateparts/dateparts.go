// Package dateparts expands a date into the generic calendar columns used as
// model features: year, month, ISO week, day, weekday, day of year, period
// boundaries and elapsed seconds.
package dateparts

import (
	"time"

	"github.com/julianstephens/datefeatures/internal/calendar"
)

// Parts holds the calendar columns derived from a single date.
type Parts struct {
	Date           calendar.Date
	Year           int
	Month          int
	Week           int // ISO 8601 week number
	Day            int
	Dayofweek      int // Monday=0 ... Sunday=6
	Dayofyear      int
	IsMonthEnd     bool
	IsMonthStart   bool
	IsQuarterEnd   bool
	IsQuarterStart bool
	IsYearEnd      bool
	IsYearStart    bool
	Elapsed        int64 // seconds since the Unix epoch at midnight UTC
}

var columns = []string{
	"Year",
	"Month",
	"Week",
	"Day",
	"Dayofweek",
	"Dayofyear",
	"Is_month_end",
	"Is_month_start",
	"Is_quarter_end",
	"Is_quarter_start",
	"Is_year_end",
	"Is_year_start",
	"Elapsed",
}

// Columns returns the names of the generated columns in output order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// For computes the calendar parts of d.
func For(d calendar.Date) Parts {
	t := d.Time()
	_, week := t.ISOWeek()
	tomorrow := d.AddDays(1)

	return Parts{
		Date:           d,
		Year:           d.Year,
		Month:          int(d.Month),
		Week:           week,
		Day:            d.Day,
		Dayofweek:      mondayFirst(t.Weekday()),
		Dayofyear:      t.YearDay(),
		IsMonthEnd:     tomorrow.Day == 1,
		IsMonthStart:   d.Day == 1,
		IsQuarterEnd:   tomorrow.Day == 1 && isQuarterStartMonth(tomorrow.Month),
		IsQuarterStart: d.Day == 1 && isQuarterStartMonth(d.Month),
		IsYearEnd:      d.Month == time.December && d.Day == 31,
		IsYearStart:    d.Month == time.January && d.Day == 1,
		Elapsed:        t.Unix(),
	}
}

// ForAll computes the calendar parts for every date, preserving order.
func ForAll(dates []calendar.Date) []Parts {
	out := make([]Parts, len(dates))
	for i, d := range dates {
		out[i] = For(d)
	}
	return out
}

// DateOf is the date accessor used when joining parts against other tables.
func DateOf(p Parts) calendar.Date {
	return p.Date
}

func mondayFirst(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func isQuarterStartMonth(m time.Month) bool {
	return (m-1)%3 == 0
}
