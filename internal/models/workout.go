package models

import (
	"bytes"
	"encoding/json"
)

// WorkoutRecord is one logged workout as held by the store and written to the
// workouts file. Field order matches the persisted layout.
type WorkoutRecord struct {
	Workout  string `json:"workout"`
	Duration int    `json:"duration"`
	ID       int    `json:"id"`
}

// WorkoutsResponse is the body of GET /api/workouts.
type WorkoutsResponse struct {
	Workouts      []WorkoutRecord `json:"workouts"`
	TotalDuration int             `json:"total_duration"`
}

// AddWorkoutResponse is the body of a successful POST /api/workouts.
type AddWorkoutResponse struct {
	Message  string          `json:"message"`
	Workouts []WorkoutRecord `json:"workouts"`
}

// ErrorResponse is the body of every JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// AddWorkoutRequest is the body of POST /api/workouts. Duration is kept raw so
// that both "30" and 30 are accepted.
type AddWorkoutRequest struct {
	WorkoutName string          `json:"workout_name"`
	Duration    json.RawMessage `json:"duration,omitempty"`
}

// DurationText returns the duration as the text the store validates.
// A JSON string yields its value, an absent field yields "", and any other
// JSON value yields its literal text (so 30 -> "30", 12.5 -> "12.5", null -> "null").
func (r AddWorkoutRequest) DurationText() string {
	raw := bytes.TrimSpace(r.Duration)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
