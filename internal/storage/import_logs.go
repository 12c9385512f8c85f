package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Import log statuses.
const (
	ImportStatusRunning = "running"
	ImportStatusSuccess = "success"
	ImportStatusError   = "error"
)

// ImportLog records the outcome of one import run (HTTP or offline).
type ImportLog struct {
	ID              int64     `json:"id"`
	RunID           uuid.UUID `json:"run_id"`
	CreatedAt       time.Time `json:"created_at"`
	Source          string    `json:"source"`
	Status          string    `json:"status"`
	RecordsParsed   int       `json:"records_parsed"`
	RecordsInserted int64     `json:"records_inserted"`
	DurationMs      *int      `json:"duration_ms"`
	ErrorMessage    *string   `json:"error_message"`
}

// InsertImportLog creates a new import log entry and returns its ID.
func (db *DB) InsertImportLog(ctx context.Context, log ImportLog) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO import_logs (run_id, source, status, records_parsed, records_inserted, duration_ms, error_message)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING id`,
		log.RunID, log.Source, log.Status, log.RecordsParsed, log.RecordsInserted,
		log.DurationMs, log.ErrorMessage,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting import log: %w", err)
	}
	return id, nil
}

// UpdateImportLog moves an import log entry from "running" to its final
// status and fills in the counts.
func (db *DB) UpdateImportLog(ctx context.Context, id int64, log ImportLog) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE import_logs SET
		 status = $2, records_parsed = $3, records_inserted = $4,
		 duration_ms = $5, error_message = $6
		 WHERE id = $1`,
		id, log.Status, log.RecordsParsed, log.RecordsInserted, log.DurationMs, log.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("updating import log %d: %w", id, err)
	}
	return nil
}

// QueryImportLogs returns the most recent import logs.
func (db *DB) QueryImportLogs(ctx context.Context, limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, run_id, created_at, source, status, records_parsed, records_inserted, duration_ms, error_message
		 FROM import_logs
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying import logs: %w", err)
	}
	defer rows.Close()

	var result []ImportLog
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(&l.ID, &l.RunID, &l.CreatedAt, &l.Source, &l.Status,
			&l.RecordsParsed, &l.RecordsInserted, &l.DurationMs, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
