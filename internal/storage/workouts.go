package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/claude/aceest/internal/models"
	"github.com/claude/aceest/internal/observability"
)

// ResetMessage is returned by a successful Reset.
const ResetMessage = "All workouts have been reset successfully!"

// AddResult describes a successfully stored workout. Workouts is the full
// list as it stood right after the insert.
type AddResult struct {
	Record   models.WorkoutRecord
	Message  string
	Workouts []models.WorkoutRecord
}

// Add validates and appends a workout. name must already be trimmed.
// Validation failures are returned as *ValidationError and leave both the
// list and the file untouched; any other error means the write failed.
func (s *Store) Add(name, duration string) (AddResult, error) {
	minutes, err := parseDuration(name, duration)
	if err != nil {
		observability.RecordValidationFailure(err.(*ValidationError).Reason)
		return AddResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := models.WorkoutRecord{
		Workout:  name,
		Duration: minutes,
		ID:       len(s.records) + 1,
	}
	next := make([]models.WorkoutRecord, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, rec)

	if err := s.persist(next, s.raw); err != nil {
		return AddResult{}, fmt.Errorf("saving workout %q: %w", name, err)
	}
	s.records = next
	observability.RecordWorkoutAdded(rec.Duration, len(next))

	s.log.Debug("workout added", "id", rec.ID, "workout", rec.Workout, "duration", rec.Duration)
	snapshot := make([]models.WorkoutRecord, len(next))
	copy(snapshot, next)
	return AddResult{
		Record:   rec,
		Message:  fmt.Sprintf("'%s' added successfully!", name),
		Workouts: snapshot,
	}, nil
}

// parseDuration applies the Add checks in order; the first failure wins.
// "0" counts as present and is rejected as non-positive.
func parseDuration(name, duration string) (int, error) {
	if name == "" || duration == "" {
		return 0, ErrMissingField
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(duration))
	if err != nil {
		return 0, ErrInvalidDurationFormat
	}
	if minutes <= 0 {
		return 0, ErrNonPositiveDuration
	}
	return minutes, nil
}

// Reset removes every workout and persists the empty list. Ids restart at 1
// on the next Add.
func (s *Store) Reset() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(nil, nil); err != nil {
		return "", fmt.Errorf("resetting workouts: %w", err)
	}
	s.records = []models.WorkoutRecord{}
	s.raw = nil
	observability.RecordReset()

	s.log.Info("workouts reset", "path", s.path)
	return ResetMessage, nil
}

// List returns a copy of all workouts in insertion order.
func (s *Store) List() []models.WorkoutRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.WorkoutRecord, len(s.records))
	copy(out, s.records)
	return out
}

// TotalDuration returns the summed duration of all workouts in minutes.
func (s *Store) TotalDuration() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, r := range s.records {
		total += r.Duration
	}
	return total
}

// Count returns the number of stored workouts.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Snapshot returns a copy of all workouts and their total duration, read
// under one lock so the two agree.
func (s *Store) Snapshot() ([]models.WorkoutRecord, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.WorkoutRecord, len(s.records))
	copy(out, s.records)
	total := 0
	for _, r := range s.records {
		total += r.Duration
	}
	return out, total
}
