package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/claude/aceest/internal/models"
	"github.com/claude/aceest/internal/storage"
)

// maxBodyBytes caps API request bodies.
const maxBodyBytes = 1 << 20

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, total := s.store.Snapshot()
	writeJSON(w, http.StatusOK, models.WorkoutsResponse{
		Workouts:      workouts,
		TotalDuration: total,
	})
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	var req models.AddWorkoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "workout_name must be a string")
		return
	}

	res, err := s.store.Add(strings.TrimSpace(req.WorkoutName), req.DurationText())
	if err != nil {
		if storage.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("add workout failed", "error", err, "request_id", requestIDFromContext(r))
		writeError(w, http.StatusInternalServerError, "failed to save workout")
		return
	}

	writeJSON(w, http.StatusCreated, models.AddWorkoutResponse{
		Message:  res.Message,
		Workouts: res.Workouts,
	})
}

func (s *Server) handleResetWorkouts(w http.ResponseWriter, r *http.Request) {
	msg, err := s.store.Reset()
	if err != nil {
		s.log.Error("reset workouts failed", "error", err, "request_id", requestIDFromContext(r))
		writeError(w, http.StatusInternalServerError, "failed to reset workouts")
		return
	}
	writeJSON(w, http.StatusOK, models.AddWorkoutResponse{
		Message:  msg,
		Workouts: []models.WorkoutRecord{},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "healthy", Service: s.service})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}
