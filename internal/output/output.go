// Package output renders feature and holiday tables as CSV, JSON lines or a
// human-readable terminal table.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/julianstephens/datefeatures/internal/calendar"
	"github.com/julianstephens/datefeatures/internal/dateparts"
	"github.com/julianstephens/datefeatures/internal/features"
	"github.com/julianstephens/datefeatures/internal/models"
)

type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatTable, FormatCSV, FormatJSON}
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (expected table, csv or json)", s)
}

// Write renders the feature table in the given format.
func Write(w io.Writer, format Format, table features.FeatureTable[dateparts.Parts]) error {
	return WriteRecords(w, format, Records(table))
}

// WriteRecords renders flattened rows, such as those read back from an export run.
func WriteRecords(w io.Writer, format Format, records []Record) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	case FormatTable:
		return writeRecordTable(w, records)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteCSV writes the full output schema, one row per date.
func WriteCSV(w io.Writer, table features.FeatureTable[dateparts.Parts]) error {
	return writeCSV(w, Records(table))
}

// WriteJSON writes one JSON object per line.
func WriteJSON(w io.Writer, table features.FeatureTable[dateparts.Parts]) error {
	return writeJSON(w, Records(table))
}

func writeCSV[T any](w io.Writer, records []T) error {
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func writeJSON[T any](w io.Writer, records []T) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to write json: %w", err)
		}
	}
	return nil
}

type runRecord struct {
	ID        string `csv:"id" json:"id"`
	Start     string `csv:"start" json:"start"`
	End       string `csv:"end" json:"end"`
	RowCount  int    `csv:"rows" json:"rows"`
	CreatedAt string `csv:"created_at" json:"created_at"`
}

// WriteRuns lists persisted export runs.
func WriteRuns(w io.Writer, format Format, runs []models.ExportRun) error {
	records := make([]runRecord, len(runs))
	for i, r := range runs {
		records[i] = runRecord{
			ID:        r.ID,
			Start:     r.Start,
			End:       r.End,
			RowCount:  r.RowCount,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		}
	}

	switch format {
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	case FormatTable:
		rows := make([][]string, len(records))
		for i, rec := range records {
			rows[i] = []string{rec.ID, rec.Start, rec.End, strconv.Itoa(rec.RowCount), rec.CreatedAt}
		}
		_, err := fmt.Fprintln(w, renderTable([]string{"id", "start", "end", "rows", "created"}, rows, nil))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

type holidayRecord struct {
	Date    string `csv:"date" json:"date"`
	Weekday string `csv:"weekday" json:"weekday"`
	Name    string `csv:"public_holiday_name" json:"public_holiday_name"`
}

// WriteHolidays renders a holiday table sorted by date.
func WriteHolidays(w io.Writer, format Format, holidays calendar.HolidayTable) error {
	sorted := holidays.Sorted()
	records := make([]holidayRecord, len(sorted))
	for i, h := range sorted {
		records[i] = holidayRecord{
			Date:    h.Date.String(),
			Weekday: h.Date.Weekday().String(),
			Name:    h.Name.String(),
		}
	}

	switch format {
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	case FormatTable:
		rows := make([][]string, len(records))
		for i, rec := range records {
			rows[i] = []string{rec.Date, rec.Weekday, rec.Name}
		}
		_, err := fmt.Fprintln(w, renderTable([]string{"date", "weekday", "holiday"}, rows, nil))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
