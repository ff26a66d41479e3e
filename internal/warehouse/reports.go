package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/openforest/millpulse/schema"
)

// SaveReport persists a rendered report so past briefings stay queryable.
func (s *Store) SaveReport(ctx context.Context, kind string, runDate string, body string) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (kind, run_date, body, created_at) VALUES (%s)",
		quoteTableName(reportsTable, s.backend), placeholders(4, s.backend))

	if _, err := s.db.ExecContext(ctx, query, kind, runDate, body, s.formatTimestamp(time.Now())); err != nil {
		return fmt.Errorf("failed to save %s report: %w", kind, err)
	}
	return nil
}

// ReportRecord is one persisted report row.
type ReportRecord struct {
	ReportID  int64
	Kind      string
	RunDate   string
	Body      string
	CreatedAt string
}

// ListReports returns the most recent persisted reports, newest first.
func (s *Store) ListReports(ctx context.Context, limit int) ([]ReportRecord, error) {
	query := fmt.Sprintf(
		"SELECT report_id, kind, run_date, body, created_at FROM %s ORDER BY report_id DESC LIMIT %d",
		quoteTableName(reportsTable, s.backend), limit)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ReportRecord
	for rows.Next() {
		var rec ReportRecord
		var createdAt nullTimestamp
		if err := rows.Scan(&rec.ReportID, &rec.Kind, &rec.RunDate, &rec.Body, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		rec.CreatedAt = createdAt.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

// formatTimestamp converts a timestamp into the backend's insert value.
func (s *Store) formatTimestamp(t time.Time) any {
	if s.backend == schema.SQLiteBackend {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t
}

// nullTimestamp scans a timestamp column from any backend into a string.
type nullTimestamp struct {
	String string
}

func (ts *nullTimestamp) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		ts.String = ""
	case time.Time:
		ts.String = v.UTC().Format(time.RFC3339Nano)
	case []byte:
		ts.String = string(v)
	case string:
		ts.String = v
	default:
		return fmt.Errorf("cannot scan %T into timestamp", value)
	}
	return nil
}
