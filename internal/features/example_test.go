package features_test

import (
	"fmt"
	"time"

	"github.com/julianstephens/datefeatures/internal/calendar"
	"github.com/julianstephens/datefeatures/internal/features"
)

func ExampleGenerate() {
	table, err := features.Generate(
		calendar.NewDate(2024, time.May, 8),
		calendar.NewDate(2024, time.May, 12),
	)
	if err != nil {
		panic(err)
	}

	show := func(d features.Distance) string {
		if !d.Known() {
			return "-"
		}
		return d.String()
	}
	for _, row := range table.Rows() {
		name := row.HolidayName.String()
		if name == "" {
			name = "-"
		}
		fmt.Printf("%s %s %s since=%s until=%s inneklemt=%t\n",
			row.Date, row.Date.Weekday().String()[:3], name,
			show(row.DaysSinceFreeday), show(row.DaysUntilFreeday), row.Squeezed)
	}
	// Output:
	// 2024-05-08 Wed - since=- until=1 inneklemt=false
	// 2024-05-09 Thu kristi_himmelfartsdag since=0 until=0 inneklemt=false
	// 2024-05-10 Fri - since=1 until=1 inneklemt=true
	// 2024-05-11 Sat - since=0 until=0 inneklemt=false
	// 2024-05-12 Sun - since=0 until=0 inneklemt=false
}

func ExampleDeriveFreedays() {
	type sale struct {
		Day   calendar.Date
		Units int
	}
	sales := []sale{
		{calendar.NewDate(2025, time.April, 16), 40},
		{calendar.NewDate(2025, time.April, 17), 3},
		{calendar.NewDate(2025, time.April, 22), 35},
	}

	annotated := features.AnnotateYears(sales, func(s sale) calendar.Date { return s.Day })
	table, err := features.DeriveFreedays(annotated)
	if err != nil {
		panic(err)
	}
	for _, row := range table.Rows() {
		fmt.Printf("%d workday=%t holiday=%q\n", row.Source.Units, row.Workday, row.HolidayName.String())
	}
	// Output:
	// 40 workday=true holiday=""
	// 3 workday=false holiday="skjærtorsdag"
	// 35 workday=true holiday=""
}
