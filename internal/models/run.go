package models

import "time"

// ExportRun describes one persisted feature table.
type ExportRun struct {
	ID        string    `json:"id"`
	Start     string    `json:"start"` // YYYY-MM-DD format
	End       string    `json:"end"`   // YYYY-MM-DD format
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}
