package output

import (
	"encoding/json"

	"github.com/julianstephens/datefeatures/internal/dateparts"
	"github.com/julianstephens/datefeatures/internal/features"
)

// Distance renders a features.Distance as an empty CSV cell or JSON null when
// no freeday was found.
type Distance features.Distance

func (d Distance) MarshalCSV() (string, error) {
	return features.Distance(d).String(), nil
}

func (d Distance) MarshalJSON() ([]byte, error) {
	if !features.Distance(d).Known() {
		return []byte("null"), nil
	}
	return json.Marshal(int(d))
}

// Record is one flattened output row.
type Record struct {
	Date              string   `csv:"date" json:"date"`
	Year              int      `csv:"Year" json:"year"`
	Month             int      `csv:"Month" json:"month"`
	Week              int      `csv:"Week" json:"week"`
	Day               int      `csv:"Day" json:"day"`
	Dayofweek         int      `csv:"Dayofweek" json:"dayofweek"`
	Dayofyear         int      `csv:"Dayofyear" json:"dayofyear"`
	IsMonthEnd        bool     `csv:"Is_month_end" json:"is_month_end"`
	IsMonthStart      bool     `csv:"Is_month_start" json:"is_month_start"`
	IsQuarterEnd      bool     `csv:"Is_quarter_end" json:"is_quarter_end"`
	IsQuarterStart    bool     `csv:"Is_quarter_start" json:"is_quarter_start"`
	IsYearEnd         bool     `csv:"Is_year_end" json:"is_year_end"`
	IsYearStart       bool     `csv:"Is_year_start" json:"is_year_start"`
	Elapsed           int64    `csv:"Elapsed" json:"elapsed"`
	PublicHolidayName string   `csv:"public_holiday_name" json:"public_holiday_name,omitempty"`
	PublicHoliday     bool     `csv:"public_holiday" json:"public_holiday"`
	Workday           bool     `csv:"workday" json:"workday"`
	Freeday           bool     `csv:"freeday" json:"freeday"`
	DaysSinceFreeday  Distance `csv:"days_since_last_freeday" json:"days_since_last_freeday"`
	DaysUntilFreeday  Distance `csv:"days_until_next_freeday" json:"days_until_next_freeday"`
	Inneklemt         bool     `csv:"inneklemt" json:"inneklemt"`
}

// Header lists the output columns in order.
func Header() []string {
	header := []string{"date"}
	header = append(header, dateparts.Columns()...)
	return append(header,
		"public_holiday_name",
		"public_holiday",
		"workday",
		"freeday",
		"days_since_last_freeday",
		"days_until_next_freeday",
		"inneklemt",
	)
}

// NewRecord flattens a feature row.
func NewRecord(row features.FeatureRow[dateparts.Parts]) Record {
	p := row.Source
	return Record{
		Date:              row.Date.String(),
		Year:              p.Year,
		Month:             p.Month,
		Week:              p.Week,
		Day:               p.Day,
		Dayofweek:         p.Dayofweek,
		Dayofyear:         p.Dayofyear,
		IsMonthEnd:        p.IsMonthEnd,
		IsMonthStart:      p.IsMonthStart,
		IsQuarterEnd:      p.IsQuarterEnd,
		IsQuarterStart:    p.IsQuarterStart,
		IsYearEnd:         p.IsYearEnd,
		IsYearStart:       p.IsYearStart,
		Elapsed:           p.Elapsed,
		PublicHolidayName: row.HolidayName.String(),
		PublicHoliday:     row.PublicHoliday,
		Workday:           row.Workday,
		Freeday:           row.Freeday,
		DaysSinceFreeday:  Distance(row.DaysSinceFreeday),
		DaysUntilFreeday:  Distance(row.DaysUntilFreeday),
		Inneklemt:         row.Squeezed,
	}
}

// Records flattens a whole feature table.
func Records(table features.FeatureTable[dateparts.Parts]) []Record {
	rows := table.Rows()
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = NewRecord(row)
	}
	return out
}
