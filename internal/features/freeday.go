package features

import (
	"slices"
	"strconv"
	"time"

	"github.com/julianstephens/datefeatures/internal/constants"
	"github.com/julianstephens/datefeatures/internal/logger"
)

// Distance counts rows to the nearest freeday on one side of a row.
type Distance int

// NoFreeday marks a row with no freeday on that side within the table.
const NoFreeday Distance = -1

// Known reports whether a freeday was found.
func (d Distance) Known() bool {
	return d >= 0
}

// String renders the distance, or "" for NoFreeday.
func (d Distance) String() string {
	if !d.Known() {
		return ""
	}
	return strconv.Itoa(int(d))
}

// FeatureRow is an annotated row with the workday/freeday features added.
type FeatureRow[T any] struct {
	AnnotatedRow[T]
	Workday          bool
	Freeday          bool
	DaysSinceFreeday Distance
	DaysUntilFreeday Distance
	// Squeezed ("inneklemt") is a lone workday with a freeday on both sides.
	Squeezed bool
}

// FeatureTable is the output of DeriveFreedays.
type FeatureTable[T any] struct {
	rows []FeatureRow[T]
}

// Rows returns a copy of the feature rows.
func (t FeatureTable[T]) Rows() []FeatureRow[T] {
	return slices.Clone(t.rows)
}

func (t FeatureTable[T]) Len() int {
	return len(t.rows)
}

// Row returns the i-th row.
func (t FeatureTable[T]) Row(i int) FeatureRow[T] {
	return t.rows[i]
}

// IsWorkday reports whether a day with the given weekday and holiday flag is worked.
func IsWorkday(wd time.Weekday, publicHoliday bool) bool {
	return wd >= constants.FirstWorkday && wd <= constants.LastWorkday && !publicHoliday
}

// DeriveFreedays classifies each row as workday or freeday and computes the
// distance to the previous and next freeday. Rows must be in strictly
// ascending date order; distances are counted in rows.
func DeriveFreedays[T any](in AnnotatedTable[T]) (FeatureTable[T], error) {
	for i := 1; i < len(in.rows); i++ {
		if !in.rows[i-1].Date.Before(in.rows[i].Date) {
			return FeatureTable[T]{}, &PreconditionError{
				Reason: "dates must be strictly ascending, got " + in.rows[i].Date.String() + " after " + in.rows[i-1].Date.String(),
				Index:  i,
			}
		}
	}

	out := make([]FeatureRow[T], len(in.rows))
	for i, row := range in.rows {
		workday := IsWorkday(row.Date.Weekday(), row.PublicHoliday)
		out[i] = FeatureRow[T]{
			AnnotatedRow: row,
			Workday:      workday,
			Freeday:      !workday,
		}
	}

	since := NoFreeday
	for i := range out {
		switch {
		case out[i].Freeday:
			since = 0
		case since.Known():
			since++
		}
		out[i].DaysSinceFreeday = since
	}

	until := NoFreeday
	for i := len(out) - 1; i >= 0; i-- {
		switch {
		case out[i].Freeday:
			until = 0
		case until.Known():
			until++
		}
		out[i].DaysUntilFreeday = until
	}

	squeezed := 0
	for i := range out {
		out[i].Squeezed = out[i].DaysSinceFreeday == 1 && out[i].DaysUntilFreeday == 1
		if out[i].Squeezed {
			squeezed++
		}
	}

	logger.Debug("derived freeday features", "rows", len(out), "squeezed", squeezed)
	return FeatureTable[T]{rows: out}, nil
}
