package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// ValidationError reports a caller-correctable input problem. The HTTP
// layer maps it to 400; it is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// DatabaseServiceError is the service's own assertion that storage did not
// do what was asked, e.g. a non-empty batch inserting zero rows. The HTTP
// layer maps it to 500.
type DatabaseServiceError struct {
	Reason string
	Err    error
}

func (e *DatabaseServiceError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *DatabaseServiceError) Unwrap() error { return e.Err }

// Store is the persistence capability the service requires. *storage.DB is
// the production implementer; tests use an in-memory fake.
type Store interface {
	// InsertRecords batch-inserts records all-or-nothing. Empty input
	// returns (0, nil) without touching the database.
	InsertRecords(ctx context.Context, records []models.WorkoutRecord) (int64, error)
	// ListRecords returns all records ordered by date descending, then
	// set number ascending.
	ListRecords(ctx context.Context) ([]models.StoredRecord, error)
	// GetRecord returns the record with the given ID, or an error
	// matching storage.ErrNotFound when it does not exist.
	GetRecord(ctx context.Context, id int64) (*models.StoredRecord, error)
}

// WorkoutService orchestrates validation, record construction and
// persistence for the workout log.
type WorkoutService struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// New creates a WorkoutService with an explicitly injected store.
func New(store Store, log *slog.Logger) *WorkoutService {
	return &WorkoutService{store: store, log: log, now: time.Now}
}

// validatedInput holds the typed fields of a create request after
// validation, plus the server-assigned record date.
type validatedInput struct {
	exerciseType string
	weight       int
	reps         int
	setNumber    int
	recordDate   models.Date
}

var requiredFields = []string{"exercise_type", "weight", "reps", "sets"}

// validate applies the create-record rules in order, first failure wins.
// The record date is always server-assigned, never taken from the client.
func (s *WorkoutService) validate(raw map[string]any) (*validatedInput, error) {
	for _, f := range requiredFields {
		if _, ok := raw[f]; !ok {
			return nil, &ValidationError{Reason: "missing required fields"}
		}
	}

	exerciseRaw, ok := raw["exercise_type"].(string)
	if !ok {
		return nil, &ValidationError{Reason: "invalid data type for exercise_type: must be a string"}
	}
	exerciseType := strings.TrimSpace(exerciseRaw)
	if !models.IsAllowedExercise(exerciseType) {
		return nil, &ValidationError{Reason: fmt.Sprintf(
			"invalid exercise type: '%s'. Allowed types are: %s",
			exerciseType, strings.Join(models.AllowedExerciseTypes, ", "))}
	}

	weight, werr := coerceInt(raw["weight"])
	reps, rerr := coerceInt(raw["reps"])
	setNumber, serr := coerceInt(raw["sets"])
	if werr != nil || rerr != nil || serr != nil {
		return nil, &ValidationError{Reason: "invalid data type for weight, reps, or sets: must be integers"}
	}

	if weight < 0 || reps < 0 || setNumber <= 0 {
		return nil, &ValidationError{Reason: "weight, reps must be non-negative, sets must be positive"}
	}

	return &validatedInput{
		exerciseType: exerciseType,
		weight:       weight,
		reps:         reps,
		setNumber:    setNumber,
		recordDate:   models.DateOf(s.now()),
	}, nil
}

// coerceInt converts the stringly-typed values JSON decoding produces into
// an int. Floats are accepted only when integral.
func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

// AddRecord validates raw input, constructs a record with its derived 1RM
// and persists it as a single-element batch. Validation failures propagate
// unchanged; a zero-row insert becomes a DatabaseServiceError.
func (s *WorkoutService) AddRecord(ctx context.Context, raw map[string]any) (*models.WorkoutRecord, error) {
	in, err := s.validate(raw)
	if err != nil {
		return nil, err
	}

	record := models.NewWorkoutRecord(in.recordDate, in.exerciseType, in.weight, in.reps, in.setNumber)

	inserted, err := s.store.InsertRecords(ctx, []models.WorkoutRecord{record})
	if err != nil {
		s.log.Error("record insert failed", "error", err)
		return nil, &DatabaseServiceError{Reason: "failed to save workout record to database", Err: err}
	}
	if inserted == 0 {
		return nil, &DatabaseServiceError{Reason: "failed to save workout record to database"}
	}

	return &record, nil
}

// GetAllRecords returns every record, newest date first and sets in order
// within a date. Storage failures propagate rather than masquerading as an
// empty result.
func (s *WorkoutService) GetAllRecords(ctx context.Context) ([]models.StoredRecord, error) {
	return s.store.ListRecords(ctx)
}

// GetRecord returns a single record by ID. A storage.ErrNotFound from the
// store propagates for the caller's 404 mapping.
func (s *WorkoutService) GetRecord(ctx context.Context, id int64) (*models.StoredRecord, error) {
	return s.store.GetRecord(ctx, id)
}
