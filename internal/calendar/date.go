package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/datefeatures/internal/constants"
)

// Date is a calendar day without a time of day. The zero value is not a valid date.
// Dates are comparable with == and can be used as map keys.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for the given year, month and day. Out-of-range
// values are normalized the same way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateParseError is returned when a string is not an ISO (YYYY-MM-DD) date.
type DateParseError struct {
	Input string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid date %q, use YYYY-MM-DD: %v", e.Input, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// ParseDate parses an ISO date. Surrounding whitespace is ignored.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(constants.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &DateParseError{Input: s, Err: err}
	}
	return DateOf(t), nil
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d (before d when n is negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) YearDay() int {
	return d.Time().YearDay()
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) After(other Date) bool {
	return other.Before(d)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Before(other):
		return -1
	case other.Before(d):
		return 1
	default:
		return 0
	}
}

const secondsPerDay = 24 * 60 * 60

// DaysUntil returns the number of days from d to other; negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int((other.Time().Unix() - d.Time().Unix()) / secondsPerDay)
}

func (d Date) String() string {
	return d.Time().Format(constants.DateFormat)
}

// MarshalText implements encoding.TextMarshaler so dates encode as ISO strings.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
