package server

import (
	"net/http"
	"strings"

	"github.com/claude/aceest/internal/models"
	"github.com/claude/aceest/internal/storage"
)

type indexPage struct {
	Flashes       []flash
	Workouts      []models.WorkoutRecord
	TotalDuration int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	workouts, total := s.store.Snapshot()
	page := indexPage{
		Flashes:       popFlashes(w, r),
		Workouts:      workouts,
		TotalDuration: total,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.pages.ExecuteTemplate(w, "index.html", page); err != nil {
		s.log.Error("render index", "error", err)
	}
}

func (s *Server) handleAddWorkoutForm(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PostFormValue("workout_name"))
	duration := strings.TrimSpace(r.PostFormValue("duration"))

	res, err := s.store.Add(name, duration)
	switch {
	case err == nil:
		addFlash(w, r, flashSuccess, res.Message)
	case storage.IsValidation(err):
		addFlash(w, r, flashError, err.Error())
	default:
		s.log.Error("add workout failed", "error", err, "request_id", requestIDFromContext(r))
		addFlash(w, r, flashError, "Could not save the workout. Please try again.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleResetForm(w http.ResponseWriter, r *http.Request) {
	msg, err := s.store.Reset()
	if err != nil {
		s.log.Error("reset workouts failed", "error", err, "request_id", requestIDFromContext(r))
		addFlash(w, r, flashError, "Could not reset workouts. Please try again.")
	} else {
		addFlash(w, r, flashSuccess, msg)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
