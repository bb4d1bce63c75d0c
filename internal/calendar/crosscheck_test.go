package calendar

import (
	"testing"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/no"
)

// Independent reference: the Norwegian rule set shipped with rickar/cal.
func TestEaster_MatchesRickarCal(t *testing.T) {
	for year := 1583; year <= 3000; year++ {
		monday, _ := no.AndrePaaskedag.Calc(year)
		if monday.IsZero() {
			continue
		}
		if got, want := Easter(year), DateOf(monday).AddDays(-1); got != want {
			t.Errorf("Easter(%d) = %s, rickar/cal says %s", year, got, want)
		}
	}
}

func TestHolidaysForYear_MatchesRickarCal(t *testing.T) {
	moveable := []struct {
		ref  *cal.Holiday
		name HolidayName
	}{
		{no.Skjaertorsdag, Skjaertorsdag},
		{no.Langfredag, Langfredag},
		{no.AndrePaaskedag, AndrePaskedag},
		{no.Kristihimmelfartsdag, KristiHimmelfartsdag},
		{no.AndrePinsedag, AndrePinsedag},
	}

	for year := 1583; year <= 3000; year++ {
		table := HolidaysForYear(year)
		byName := make(map[HolidayName]Date, len(table))
		byDate := make(map[Date]bool, len(table))
		for _, h := range table {
			byName[h.Name] = h.Date
			byDate[h.Date] = true
		}

		for _, m := range moveable {
			actual, _ := m.ref.Calc(year)
			if actual.IsZero() {
				continue
			}
			if got, want := byName[m.name], DateOf(actual); got != want {
				t.Errorf("%d: %s = %s, rickar/cal says %s", year, m.name, got, want)
			}
		}

		for _, ref := range no.Holidays {
			if ref.Type != cal.ObservancePublic {
				continue
			}
			actual, _ := ref.Calc(year)
			if actual.IsZero() {
				continue
			}
			if d := DateOf(actual); !byDate[d] {
				t.Errorf("%d: rickar/cal holiday %q on %s missing from table", year, ref.Name, d)
			}
		}
	}
}
