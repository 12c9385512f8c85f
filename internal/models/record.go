package models

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strings"
	"time"
)

// Date is a calendar date with no time component. It marshals as
// "YYYY-MM-DD" and maps to a DATE column.
type Date struct {
	time.Time
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string, accepting one- or two-digit
// month and day as the text-log format does.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-1-2", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	*d = DateOf(t)
	return nil
}

// Value implements driver.Valuer for DATE column parameters.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner for DATE column results.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Canonical exercise types. The records table carries a matching CHECK
// constraint, so nothing outside this set ever reaches storage.
const (
	ExerciseBenchPress = "bench_press"
	ExerciseDeadlift   = "deadlift"
	ExerciseSquat      = "squat"
)

// AllowedExerciseTypes lists the closed exercise vocabulary in the order
// used in validation error messages.
var AllowedExerciseTypes = []string{ExerciseBenchPress, ExerciseDeadlift, ExerciseSquat}

// exerciseAliases maps text-log shorthand (and the canonical names
// themselves) to canonical exercise types.
var exerciseAliases = map[string]string{
	"bench":            ExerciseBenchPress,
	"dead":             ExerciseDeadlift,
	ExerciseBenchPress: ExerciseBenchPress,
	ExerciseDeadlift:   ExerciseDeadlift,
	ExerciseSquat:      ExerciseSquat,
}

// CanonicalExercise trims s and resolves it through the alias table.
// Returns false when s is not a recognized exercise.
func CanonicalExercise(s string) (string, bool) {
	canonical, ok := exerciseAliases[strings.TrimSpace(s)]
	return canonical, ok
}

// IsAllowedExercise reports whether s is a member of the canonical vocabulary.
func IsAllowedExercise(s string) bool {
	for _, t := range AllowedExerciseTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Estimate1RM computes the Epley one-rep-max estimate
// round(weight * (1 + reps/30)), rounding half away from zero.
// Returns ok=false when weight <= 0 or reps < 0.
func Estimate1RM(weight, reps int) (int, bool) {
	if weight <= 0 || reps < 0 {
		return 0, false
	}
	est := math.Round(float64(weight) * (1 + float64(reps)/30))
	return int(est), true
}

// WorkoutRecord is one completed set. Records are immutable once created;
// there are no update or delete paths anywhere in the system.
//
// SetNumber is the set's ordinal within its date/exercise block, not a set
// count: the text-log format numbers sets 1..N as they appear. It is
// serialized as "sets" to match the wire and column name.
type WorkoutRecord struct {
	RecordDate   Date   `json:"record_date"`
	ExerciseType string `json:"exercise_type"`
	Weight       int    `json:"weight"`
	Reps         int    `json:"reps"`
	SetNumber    int    `json:"sets"`
	Estimated1RM *int   `json:"estimated_1rm"`
}

// NewWorkoutRecord builds a record and derives its estimated 1RM. The
// estimate is left nil when Estimate1RM reports it undefined.
func NewWorkoutRecord(date Date, exerciseType string, weight, reps, setNumber int) WorkoutRecord {
	r := WorkoutRecord{
		RecordDate:   date,
		ExerciseType: exerciseType,
		Weight:       weight,
		Reps:         reps,
		SetNumber:    setNumber,
	}
	if est, ok := Estimate1RM(weight, reps); ok {
		r.Estimated1RM = &est
	}
	return r
}

// StoredRecord is a WorkoutRecord as read back from the records table,
// with its store-assigned ID.
type StoredRecord struct {
	ID int64 `json:"id"`
	WorkoutRecord
}
