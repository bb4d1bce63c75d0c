package calendar

import (
	"testing"
	"time"
)

func TestEaster_KnownDates(t *testing.T) {
	tests := []struct {
		year int
		want Date
	}{
		{1818, Date{1818, time.March, 22}},
		{1943, Date{1943, time.April, 25}},
		{2000, Date{2000, time.April, 23}},
		{2008, Date{2008, time.March, 23}},
		{2019, Date{2019, time.April, 21}},
		{2024, Date{2024, time.March, 31}},
		{2025, Date{2025, time.April, 20}},
		{2038, Date{2038, time.April, 25}},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if got := Easter(tt.year); got != tt.want {
				t.Errorf("Easter(%d) = %s, want %s", tt.year, got, tt.want)
			}
		})
	}
}

func TestEaster_SundayWithinBounds(t *testing.T) {
	for year := 1900; year <= 2100; year++ {
		e := Easter(year)
		if e.Year != year {
			t.Fatalf("Easter(%d) returned year %d", year, e.Year)
		}
		if wd := e.Weekday(); wd != time.Sunday {
			t.Errorf("Easter(%d) = %s is a %s", year, e, wd)
		}
		earliest := Date{year, time.March, 22}
		latest := Date{year, time.April, 25}
		if e.Before(earliest) || e.After(latest) {
			t.Errorf("Easter(%d) = %s outside [%s, %s]", year, e, earliest, latest)
		}
	}
}
