// Package calendar computes the Norwegian public holidays: the Easter-relative
// moveable feasts and the fixed-date holidays, for any Gregorian year.
//
//	table := calendar.HolidaysForYears([]int{2024, 2025})
//	byDate := table.ByDate()
//	h, ok := byDate[calendar.NewDate(2024, time.December, 25)] // juledag
package calendar

import (
	"slices"
	"sort"
	"time"
)

// Holiday is a single public holiday occurrence.
type Holiday struct {
	Name HolidayName
	Date Date
}

// HolidayTable is a flat list of holidays, 13 per year. Row order carries no
// meaning beyond being deterministic; use ByDate or Sorted to query it.
type HolidayTable []Holiday

// easterOffsets are the moveable feasts in days relative to Easter Sunday.
var easterOffsets = []struct {
	name   HolidayName
	offset int
}{
	{Paskedag, 0},
	{Palmesondag, -7},
	{Skjaertorsdag, -3},
	{AndrePaskedag, 1},
	{Langfredag, -2},
	{KristiHimmelfartsdag, 39},
	{Pinsedag, 49},
	{AndrePinsedag, 50},
}

var fixedHolidays = []struct {
	name  HolidayName
	month time.Month
	day   int
}{
	{Nyttarsdag, time.January, 1},
	{Arbeiderenesdag, time.May, 1},
	{Grunnlovsdag, time.May, 17},
	{Juledag, time.December, 25},
	{Andrejuledag, time.December, 26},
}

// HolidaysForYear returns the 13 public holidays of a single year.
func HolidaysForYear(year int) HolidayTable {
	easter := Easter(year)
	table := make(HolidayTable, 0, len(easterOffsets)+len(fixedHolidays))

	for _, h := range easterOffsets {
		table = append(table, Holiday{Name: h.name, Date: easter.AddDays(h.offset)})
	}
	for _, h := range fixedHolidays {
		table = append(table, Holiday{Name: h.name, Date: Date{Year: year, Month: h.month, Day: h.day}})
	}

	return table
}

// HolidaysForYears returns the public holidays of every distinct year in years,
// in ascending year order. Repeated years are only expanded once.
func HolidaysForYears(years []int) HolidayTable {
	distinct := slices.Clone(years)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	table := make(HolidayTable, 0, len(distinct)*(len(easterOffsets)+len(fixedHolidays)))
	for _, year := range distinct {
		table = append(table, HolidaysForYear(year)...)
	}
	return table
}

// ByDate indexes the table by date. If two rows share a date the one that comes
// first in display order wins; the built-in rule set never produces such a collision.
func (t HolidayTable) ByDate() map[Date]Holiday {
	idx := make(map[Date]Holiday, len(t))
	for _, h := range t {
		if existing, ok := idx[h.Date]; ok && existing.Name.Order() <= h.Name.Order() {
			continue
		}
		idx[h.Date] = h
	}
	return idx
}

// Sorted returns a copy of the table ordered by date, then by display order.
func (t HolidayTable) Sorted() HolidayTable {
	out := slices.Clone(t)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Name.Order() < out[j].Name.Order()
	})
	return out
}

// Lookup returns the holiday falling on d, if any.
func (t HolidayTable) Lookup(d Date) (Holiday, bool) {
	for _, h := range t {
		if h.Date == d {
			return h, true
		}
	}
	return Holiday{}, false
}

// Years returns the distinct years covered by the table in ascending order.
func (t HolidayTable) Years() []int {
	var years []int
	for _, h := range t {
		years = append(years, h.Date.Year)
	}
	slices.Sort(years)
	return slices.Compact(years)
}
