package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/service"
	"github.com/claude/liftlog/internal/storage"
)

// stubStore implements service.Store in memory for handler tests.
type stubStore struct {
	records   []models.StoredRecord
	nextID    int64
	insertErr error
}

func (f *stubStore) InsertRecords(_ context.Context, records []models.WorkoutRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	for _, r := range records {
		f.nextID++
		f.records = append(f.records, models.StoredRecord{ID: f.nextID, WorkoutRecord: r})
	}
	return int64(len(records)), nil
}

func (f *stubStore) ListRecords(_ context.Context) ([]models.StoredRecord, error) {
	return f.records, nil
}

func (f *stubStore) GetRecord(_ context.Context, id int64) (*models.StoredRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

func newTestServer(store service.Store) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(nil, service.New(store, log), nil, "test-key", log)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return m
}

func TestAddWorkoutCreated(t *testing.T) {
	store := &stubStore{}
	s := newTestServer(store)

	body := `{"exercise_type": "bench_press", "weight": 100, "reps": 5, "sets": 1}`
	req := httptest.NewRequest(http.MethodPost, "/workouts/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body)
	}
	m := decodeBody(t, rec)
	if m["message"] != "Workout record saved successfully" {
		t.Errorf("message = %v", m["message"])
	}
	if m["estimated_1rm_for_set"] != float64(117) {
		t.Errorf("estimated_1rm_for_set = %v, want 117", m["estimated_1rm_for_set"])
	}
	if len(store.records) != 1 {
		t.Errorf("store has %d records, want 1", len(store.records))
	}
}

func TestAddWorkoutNumericStrings(t *testing.T) {
	s := newTestServer(&stubStore{})

	body := `{"exercise_type": " bench_press ", "weight": "100", "reps": "5", "sets": "1"}`
	req := httptest.NewRequest(http.MethodPost, "/workouts/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body)
	}
}

func TestAddWorkoutValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing fields", `{"weight": 100, "reps": 5, "sets": 1}`, "missing required fields"},
		{"bad exercise", `{"exercise_type": "running", "weight": 100, "reps": 5, "sets": 1}`,
			"invalid exercise type: 'running'. Allowed types are: bench_press, deadlift, squat"},
		{"negative weight", `{"exercise_type": "bench_press", "weight": -1, "reps": 5, "sets": 1}`,
			"weight, reps must be non-negative, sets must be positive"},
	}

	s := newTestServer(&stubStore{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/workouts/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if m := decodeBody(t, rec); m["message"] != tt.want {
				t.Errorf("message = %v, want %q", m["message"], tt.want)
			}
		})
	}
}

func TestAddWorkoutMalformedJSON(t *testing.T) {
	s := newTestServer(&stubStore{})
	req := httptest.NewRequest(http.MethodPost, "/workouts/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAddWorkoutStorageFailure(t *testing.T) {
	s := newTestServer(&stubStore{insertErr: io.ErrUnexpectedEOF})
	body := `{"exercise_type": "squat", "weight": 140, "reps": 3, "sets": 1}`
	req := httptest.NewRequest(http.MethodPost, "/workouts/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if m := decodeBody(t, rec); m["message"] != "failed to save workout record to database" {
		t.Errorf("message = %v", m["message"])
	}
}

func TestListWorkouts(t *testing.T) {
	store := &stubStore{}
	d, _ := models.ParseDate("2024-1-10")
	store.records = []models.StoredRecord{
		{ID: 1, WorkoutRecord: models.NewWorkoutRecord(d, models.ExerciseBenchPress, 100, 5, 1)},
		{ID: 2, WorkoutRecord: models.NewWorkoutRecord(d, models.ExerciseBenchPress, 80, 8, 2)},
	}
	s := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/workouts/", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var list []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list has %d entries, want 2", len(list))
	}
	if list[0]["record_date"] != "2024-01-10" {
		t.Errorf("record_date = %v", list[0]["record_date"])
	}
}

func TestListWorkoutsEmptyIsArray(t *testing.T) {
	s := newTestServer(&stubStore{})
	req := httptest.NewRequest(http.MethodGet, "/workouts/", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestGetWorkoutByID(t *testing.T) {
	store := &stubStore{}
	d, _ := models.ParseDate("2024-1-10")
	store.records = []models.StoredRecord{
		{ID: 5, WorkoutRecord: models.NewWorkoutRecord(d, models.ExerciseDeadlift, 180, 2, 1)},
	}
	s := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/workouts/5", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	m := decodeBody(t, rec)
	if m["id"] != float64(5) || m["exercise_type"] != "deadlift" {
		t.Errorf("body = %v", m)
	}
}

func TestGetWorkoutNotFound(t *testing.T) {
	s := newTestServer(&stubStore{})
	req := httptest.NewRequest(http.MethodGet, "/workouts/42", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if m := decodeBody(t, rec); m["message"] != "Record with id 42 not found" {
		t.Errorf("message = %v", m["message"])
	}
}

func TestGetWorkoutBadID(t *testing.T) {
	s := newTestServer(&stubStore{})
	req := httptest.NewRequest(http.MethodGet, "/workouts/abc", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
