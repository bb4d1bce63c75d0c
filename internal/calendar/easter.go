package calendar

import "time"

// Easter returns Easter Sunday (Western church) for the given year using
// Butcher's anonymous Gregorian algorithm. Only years from 1583 onward are
// meaningful; earlier years predate the Gregorian calendar.
func Easter(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := (19*a + b - b/4 - (b-(b+8)/25+1)/3 + 15) % 30
	e := (32 + 2*(b%4) + 2*(c/4) - d - c%4) % 7
	f := d + e - 7*((a+11*d+22*e)/451) + 114
	month := f / 31
	day := f%31 + 1
	return Date{Year: year, Month: time.Month(month), Day: day}
}
