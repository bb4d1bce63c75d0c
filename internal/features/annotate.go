package features

import (
	"slices"

	"github.com/julianstephens/datefeatures/internal/calendar"
	"github.com/julianstephens/datefeatures/internal/logger"
)

// AnnotatedRow is a source row joined with its public holiday, if any.
type AnnotatedRow[T any] struct {
	Source        T
	Date          calendar.Date
	PublicHoliday bool
	HolidayName   calendar.HolidayName
}

// AnnotatedTable is the output of Annotate. It can only be built through
// Annotate or AnnotateYears, which is what lets DeriveFreedays rely on the
// holiday columns being present.
type AnnotatedTable[T any] struct {
	rows []AnnotatedRow[T]
}

// Rows returns a copy of the annotated rows.
func (t AnnotatedTable[T]) Rows() []AnnotatedRow[T] {
	return slices.Clone(t.rows)
}

func (t AnnotatedTable[T]) Len() int {
	return len(t.rows)
}

// Annotate left-joins holidays onto rows by exact date. Every input row yields
// exactly one output row in the same order; rows without a holiday keep a zero
// HolidayName and PublicHoliday=false.
func Annotate[T any](rows []T, dateOf func(T) calendar.Date, holidays calendar.HolidayTable) AnnotatedTable[T] {
	idx := holidays.ByDate()
	out := make([]AnnotatedRow[T], len(rows))
	matched := 0

	for i, row := range rows {
		d := dateOf(row)
		out[i] = AnnotatedRow[T]{Source: row, Date: d}
		if h, ok := idx[d]; ok {
			out[i].PublicHoliday = true
			out[i].HolidayName = h.Name
			matched++
		}
	}

	logger.Debug("annotated public holidays", "rows", len(rows), "holidays", matched)
	return AnnotatedTable[T]{rows: out}
}

// AnnotateYears is Annotate with the holiday table built for every distinct
// year found in the date column.
func AnnotateYears[T any](rows []T, dateOf func(T) calendar.Date) AnnotatedTable[T] {
	years := make([]int, 0, len(rows))
	for _, row := range rows {
		years = append(years, dateOf(row).Year)
	}
	return Annotate(rows, dateOf, calendar.HolidaysForYears(years))
}
