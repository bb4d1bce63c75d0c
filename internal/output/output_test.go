package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/datefeatures/internal/calendar"
	"github.com/julianstephens/datefeatures/internal/dateparts"
	"github.com/julianstephens/datefeatures/internal/features"
	"github.com/julianstephens/datefeatures/internal/models"
)

func generate(t *testing.T, start, end calendar.Date) features.FeatureTable[dateparts.Parts] {
	t.Helper()
	table, err := features.Generate(start, end)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return table
}

func TestWriteCSV_HeaderAndSentinel(t *testing.T) {
	// Saturday, Sunday, Monday: the Monday has no freeday after it in range.
	table := generate(t, calendar.NewDate(2024, time.January, 6), calendar.NewDate(2024, time.January, 8))

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}

	header := records[0]
	if strings.Join(header, ",") != strings.Join(Header(), ",") {
		t.Errorf("header = %v\nwant     %v", header, Header())
	}

	col := make(map[string]int)
	for i, name := range header {
		col[name] = i
	}

	monday := records[3]
	checks := map[string]string{
		"date":                    "2024-01-08",
		"Week":                    "2",
		"Dayofweek":               "0",
		"Elapsed":                 "1704672000",
		"public_holiday_name":     "",
		"workday":                 "true",
		"days_since_last_freeday": "1",
		"days_until_next_freeday": "",
		"inneklemt":               "false",
	}
	for name, want := range checks {
		if got := monday[col[name]]; got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestWriteJSON_NullDistance(t *testing.T) {
	table := generate(t, calendar.NewDate(2024, time.December, 24), calendar.NewDate(2024, time.December, 25))

	var buf bytes.Buffer
	if err := WriteJSON(&buf, table); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// 2024-12-24 is a Tuesday workday with no earlier freeday in range.
	if first["days_since_last_freeday"] != nil {
		t.Errorf("expected null days_since_last_freeday, got %v", first["days_since_last_freeday"])
	}
	if first["days_until_next_freeday"] != float64(1) {
		t.Errorf("expected days_until_next_freeday=1, got %v", first["days_until_next_freeday"])
	}

	var second map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if second["public_holiday_name"] != "juledag" || second["public_holiday"] != true {
		t.Errorf("expected juledag, got %v", second)
	}
}

func TestWriteTable_ContainsHolidays(t *testing.T) {
	table := generate(t, calendar.NewDate(2024, time.May, 8), calendar.NewDate(2024, time.May, 11))

	var buf bytes.Buffer
	if err := Write(&buf, FormatTable, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"date", "inneklemt", "2024-05-09", "kristi_himmelfartsdag", "Fri"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteHolidays(t *testing.T) {
	holidays := calendar.HolidaysForYears([]int{2025})

	var buf bytes.Buffer
	if err := WriteHolidays(&buf, FormatCSV, holidays); err != nil {
		t.Fatalf("WriteHolidays failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(records) != 14 {
		t.Fatalf("expected header + 13 rows, got %d", len(records))
	}
	if records[1][0] != "2025-01-01" || records[1][2] != "nyttårsdag" {
		t.Errorf("first row = %v", records[1])
	}
	if records[13][2] != "andrejuledag" {
		t.Errorf("last row = %v", records[13])
	}

	buf.Reset()
	if err := WriteHolidays(&buf, FormatTable, holidays); err != nil {
		t.Fatalf("WriteHolidays table failed: %v", err)
	}
	if !strings.Contains(buf.String(), "langfredag") {
		t.Errorf("table missing langfredag:\n%s", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"csv", "CSV", " json ", "table"} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", in, err)
		}
	}
	if _, err := ParseFormat("xlsx"); err == nil {
		t.Errorf("expected error for xlsx")
	}
}

func TestWriteRecords_Table(t *testing.T) {
	records := Records(generate(t, calendar.NewDate(2024, time.May, 9), calendar.NewDate(2024, time.May, 10)))

	var buf bytes.Buffer
	if err := WriteRecords(&buf, FormatTable, records); err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Thu", "Fri", "kristi_himmelfartsdag"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if cells := records[1].Cells(); cells[1] != "Fri" || cells[7] != "yes" {
		t.Errorf("cells for 2024-05-10 = %v", cells)
	}
}

func TestWriteRuns(t *testing.T) {
	runs := []models.ExportRun{{
		ID:        "0b6f3c1e-4c1f-4a53-9d55-0e8f4c6b2a11",
		Start:     "2024-01-01",
		End:       "2024-12-31",
		RowCount:  366,
		CreatedAt: time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC),
	}}

	var buf bytes.Buffer
	if err := WriteRuns(&buf, FormatCSV, runs); err != nil {
		t.Fatalf("WriteRuns failed: %v", err)
	}
	want := "id,start,end,rows,created_at\n0b6f3c1e-4c1f-4a53-9d55-0e8f4c6b2a11,2024-01-01,2024-12-31,366,2025-02-03T04:05:06Z\n"
	if buf.String() != want {
		t.Errorf("csv = %q\nwant  %q", buf.String(), want)
	}

	buf.Reset()
	if err := WriteRuns(&buf, FormatTable, runs); err != nil {
		t.Fatalf("WriteRuns table failed: %v", err)
	}
	if !strings.Contains(buf.String(), "366") {
		t.Errorf("table missing row count:\n%s", buf.String())
	}
}
