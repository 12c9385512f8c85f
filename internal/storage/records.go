package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/claude/liftlog/internal/models"
)

// listRecordsQuery fixes the read ordering: most recent date first, sets
// in their logged order within a date. Fakes that stand in for this store
// must sort the same way.
const listRecordsQuery = `SELECT id, record_date, exercise_type, weight, reps, sets, estimated_1rm
	 FROM records
	 ORDER BY record_date DESC, sets ASC`

// InsertRecords batch-inserts workout records. All rows go into a single
// multi-VALUES statement, so the batch is all-or-nothing: a backend error
// means zero rows were written. Empty input returns 0 without touching the
// database.
func (db *DB) InsertRecords(ctx context.Context, records []models.WorkoutRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	query := `INSERT INTO records (record_date, exercise_type, weight, reps, sets, estimated_1rm) VALUES `
	args := make([]any, 0, len(records)*6)
	valueStrings := make([]string, 0, len(records))

	for i, r := range records {
		base := i * 6
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		args = append(args, r.RecordDate, r.ExerciseType, r.Weight, r.Reps, r.SetNumber, r.Estimated1RM)
	}

	tag, err := db.Pool.Exec(ctx, query+strings.Join(valueStrings, ","), args...)
	if err != nil {
		return 0, fmt.Errorf("inserting records: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListRecords returns every workout record in listRecordsQuery order.
func (db *DB) ListRecords(ctx context.Context) ([]models.StoredRecord, error) {
	rows, err := db.Pool.Query(ctx, listRecordsQuery)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var result []models.StoredRecord
	for rows.Next() {
		var r models.StoredRecord
		if err := rows.Scan(&r.ID, &r.RecordDate, &r.ExerciseType,
			&r.Weight, &r.Reps, &r.SetNumber, &r.Estimated1RM); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetRecord returns a single record by ID, or ErrNotFound.
func (db *DB) GetRecord(ctx context.Context, id int64) (*models.StoredRecord, error) {
	var r models.StoredRecord
	err := db.Pool.QueryRow(ctx,
		`SELECT id, record_date, exercise_type, weight, reps, sets, estimated_1rm
		 FROM records WHERE id = $1`, id).
		Scan(&r.ID, &r.RecordDate, &r.ExerciseType, &r.Weight, &r.Reps, &r.SetNumber, &r.Estimated1RM)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying record %d: %w", id, err)
	}
	return &r, nil
}
