package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/service"
	"github.com/claude/liftlog/internal/storage"
)

func (s *Server) handleAddWorkout(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON: " + err.Error()})
		return
	}

	record, err := s.svc.AddRecord(r.Context(), raw)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": verr.Reason})
			return
		}
		var derr *service.DatabaseServiceError
		if errors.As(err, &derr) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": derr.Reason})
			return
		}
		// Anything else stays server-side; the caller gets no detail.
		s.log.Error("add workout failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "an unexpected server error occurred"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":               "Workout record saved successfully",
		"estimated_1rm_for_set": record.Estimated1RM,
	})
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	records, err := s.svc.GetAllRecords(r.Context())
	if err != nil {
		s.log.Error("list workouts failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "failed to fetch workout records"})
		return
	}
	if records == nil {
		records = []models.StoredRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid record id"})
		return
	}

	record, err := s.svc.GetRecord(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"message": "Record with id " + idStr + " not found",
		})
		return
	}
	if err != nil {
		s.log.Error("get workout failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "failed to fetch workout record"})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleImportText(w http.ResponseWriter, r *http.Request) {
	result, err := s.textlog.Ingest(r.Context(), r.Body)
	if err != nil {
		s.log.Error("text import failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "failed to import text log"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	logs, err := s.db.QueryImportLogs(r.Context(), 50)
	if err != nil {
		s.log.Error("list imports failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "failed to fetch import logs"})
		return
	}
	if logs == nil {
		logs = []storage.ImportLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
