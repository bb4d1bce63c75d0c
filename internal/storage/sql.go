package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/datefeatures/internal/features"
	"github.com/julianstephens/datefeatures/internal/logger"
	"github.com/julianstephens/datefeatures/internal/migration"
	"github.com/julianstephens/datefeatures/internal/models"
	"github.com/julianstephens/datefeatures/internal/output"
	"github.com/julianstephens/datefeatures/migrations"
)

var featureColumns = []string{
	"run_id", "date",
	"year", "month", "week", "day", "dayofweek", "dayofyear",
	"is_month_end", "is_month_start", "is_quarter_end", "is_quarter_start", "is_year_end", "is_year_start",
	"elapsed",
	"public_holiday_name", "public_holiday", "workday", "freeday",
	"days_since_last_freeday", "days_until_next_freeday", "inneklemt",
}

// sqlStore holds the queries shared by the SQLite and PostgreSQL stores.
// Queries are written with ? placeholders and rebound for PostgreSQL.
type sqlStore struct {
	db     *sql.DB
	driver migration.Driver
}

func (s *sqlStore) rebind(query string) string {
	if s.driver != migration.DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlStore) runMigrations(ctx context.Context) error {
	subFS, err := fs.Sub(migrations.FS, string(s.driver))
	if err != nil {
		return fmt.Errorf("failed to access %s migrations: %w", s.driver, err)
	}
	runner, err := migration.NewRunner(s.db, subFS, s.driver)
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(ctx, func(msg string) {
		logger.Info(msg, "driver", s.driver)
	})
	return err
}

// sqliteTimeLayout is fixed width so text order in SQLite matches time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// timeValue converts created_at for the column type of the driver.
func (s *sqlStore) timeValue(t time.Time) any {
	if s.driver == migration.DriverPostgres {
		return t.UTC()
	}
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected created_at type %T", v)
	}
}

func nullDistance(d output.Distance) sql.NullInt64 {
	if !features.Distance(d).Known() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(d), Valid: true}
}

func distanceFrom(n sql.NullInt64) output.Distance {
	if !n.Valid {
		return output.Distance(features.NoFreeday)
	}
	return output.Distance(n.Int64)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func recordValues(runID string, r output.Record) []any {
	return []any{
		runID, r.Date,
		r.Year, r.Month, r.Week, r.Day, r.Dayofweek, r.Dayofyear,
		r.IsMonthEnd, r.IsMonthStart, r.IsQuarterEnd, r.IsQuarterStart, r.IsYearEnd, r.IsYearStart,
		r.Elapsed,
		nullString(r.PublicHolidayName), r.PublicHoliday, r.Workday, r.Freeday,
		nullDistance(r.DaysSinceFreeday), nullDistance(r.DaysUntilFreeday), r.Inneklemt,
	}
}

func (s *sqlStore) insertRun(ctx context.Context, tx *sql.Tx, run models.ExportRun) error {
	_, err := tx.ExecContext(ctx, s.rebind(`
		INSERT INTO export_runs (id, start_date, end_date, row_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), run.ID, run.Start, run.End, run.RowCount, s.timeValue(run.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert export run: %w", err)
	}
	return nil
}

// insertRecords writes rows with a single prepared INSERT.
func (s *sqlStore) insertRecords(ctx context.Context, tx *sql.Tx, runID string, records []output.Record) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(featureColumns)), ", ")
	stmt, err := tx.PrepareContext(ctx, s.rebind(
		"INSERT INTO date_features ("+strings.Join(featureColumns, ", ")+") VALUES ("+placeholders+")",
	))
	if err != nil {
		return fmt.Errorf("failed to prepare feature insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, recordValues(runID, r)...); err != nil {
			return fmt.Errorf("failed to insert feature row %s: %w", r.Date, err)
		}
	}
	return nil
}

func (s *sqlStore) getRun(ctx context.Context, id string) (models.ExportRun, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, CAST(start_date AS TEXT), CAST(end_date AS TEXT), row_count, created_at
		FROM export_runs WHERE CAST(id AS TEXT) = ?
	`), id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ExportRun{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return models.ExportRun{}, err
	}
	return run, nil
}

func (s *sqlStore) listRuns(ctx context.Context) ([]models.ExportRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, CAST(start_date AS TEXT), CAST(end_date AS TEXT), row_count, created_at
		FROM export_runs ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list export runs: %w", err)
	}
	defer rows.Close()

	var runs []models.ExportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *sqlStore) getRunRecords(ctx context.Context, id string) ([]output.Record, error) {
	if _, err := s.getRun(ctx, id); err != nil {
		return nil, err
	}

	cols := make([]string, len(featureColumns)-1)
	copy(cols, featureColumns[1:])
	cols[0] = "CAST(date AS TEXT)"

	rows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT "+strings.Join(cols, ", ")+" FROM date_features WHERE CAST(run_id AS TEXT) = ? ORDER BY date",
	), id)
	if err != nil {
		return nil, fmt.Errorf("failed to query feature rows: %w", err)
	}
	defer rows.Close()

	var records []output.Record
	for rows.Next() {
		var (
			r            output.Record
			name         sql.NullString
			since, until sql.NullInt64
		)
		if err := rows.Scan(
			&r.Date,
			&r.Year, &r.Month, &r.Week, &r.Day, &r.Dayofweek, &r.Dayofyear,
			&r.IsMonthEnd, &r.IsMonthStart, &r.IsQuarterEnd, &r.IsQuarterStart, &r.IsYearEnd, &r.IsYearStart,
			&r.Elapsed,
			&name, &r.PublicHoliday, &r.Workday, &r.Freeday,
			&since, &until, &r.Inneklemt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feature row: %w", err)
		}
		r.PublicHolidayName = name.String
		r.DaysSinceFreeday = distanceFrom(since)
		r.DaysUntilFreeday = distanceFrom(until)
		records = append(records, r)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (models.ExportRun, error) {
	var (
		run       models.ExportRun
		createdAt any
	)
	if err := row.Scan(&run.ID, &run.Start, &run.End, &run.RowCount, &createdAt); err != nil {
		return models.ExportRun{}, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return models.ExportRun{}, fmt.Errorf("failed to parse created_at for run %s: %w", run.ID, err)
	}
	run.CreatedAt = t
	return run, nil
}

// prepareRun fills in the id, creation time and row count of a run about to be saved.
func prepareRun(run models.ExportRun, records []output.Record, newID func() string) (models.ExportRun, error) {
	if len(records) == 0 {
		return models.ExportRun{}, errors.New("refusing to save an export run with no rows")
	}
	if run.ID == "" {
		run.ID = newID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if run.Start == "" {
		run.Start = records[0].Date
	}
	if run.End == "" {
		run.End = records[len(records)-1].Date
	}
	run.RowCount = len(records)
	return run, nil
}
