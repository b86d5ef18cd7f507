package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/claude/aceest/internal/models"
	"github.com/claude/aceest/internal/observability"
)

// Options tunes how a Store treats its backing file.
type Options struct {
	// StrictLoad makes Open fail on an unreadable or malformed file instead of
	// starting empty.
	StrictLoad bool
}

// Store owns the ordered list of workout records and the JSON file that
// mirrors it. Every mutation rewrites the whole file before returning.
type Store struct {
	mu      sync.RWMutex
	path    string
	records []models.WorkoutRecord
	// raw holds the file text of each loaded record, parallel to records.
	// Entries are nil for records added by this process.
	raw []json.RawMessage
	log *slog.Logger
}

// Open creates a Store backed by the file at path, loading any records
// already stored there. A missing file yields an empty store.
func Open(path string, opts Options, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{path: path, log: log}

	records, raw, loose, err := readRecords(path)
	switch {
	case err == nil:
		s.records, s.raw = records, raw
		if loose > 0 {
			log.Warn("workouts file has records with unexpected values, kept as stored",
				"path", path, "records", loose)
		}
	case errors.Is(err, os.ErrNotExist):
		s.records = []models.WorkoutRecord{}
	case opts.StrictLoad:
		return nil, fmt.Errorf("%w %s: %v", ErrStorageRead, path, err)
	default:
		// Unreadable or corrupt files are treated as empty and get replaced
		// on the next mutation.
		log.Warn("workouts file unusable, starting empty", "path", path, "error", err)
		s.records = []models.WorkoutRecord{}
	}

	observability.SetWorkoutCount(len(s.records))
	log.Info("workouts loaded", "path", path, "count", len(s.records))
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// readRecords parses the workouts file. Only a file that is not a JSON list
// is an error; each element is decoded leniently and its text kept so that a
// rewrite reproduces it unchanged. loose counts elements that did not match
// the record layout.
func readRecords(path string) ([]models.WorkoutRecord, []json.RawMessage, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, 0, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, 0, fmt.Errorf("parsing workouts: %w", err)
	}
	if raw == nil {
		// A literal null decodes without error.
		return nil, nil, 0, fmt.Errorf("parsing workouts: not a list")
	}

	records := make([]models.WorkoutRecord, len(raw))
	loose := 0
	for i, r := range raw {
		rec, ok := decodeRecord(r)
		if !ok {
			loose++
		}
		records[i] = rec
	}
	return records, raw, loose, nil
}

// decodeRecord converts one stored element to a WorkoutRecord. ok is false
// when a field had to be coerced or the element is not an object.
func decodeRecord(raw json.RawMessage) (models.WorkoutRecord, bool) {
	var fields struct {
		Workout  json.RawMessage `json:"workout"`
		Duration json.RawMessage `json:"duration"`
		ID       json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.WorkoutRecord{}, false
	}
	name, okName := looseString(fields.Workout)
	duration, okDuration := looseInt(fields.Duration)
	id, okID := looseInt(fields.ID)
	return models.WorkoutRecord{Workout: name, Duration: duration, ID: id},
		okName && okDuration && okID
}

func looseString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), false
}

// looseInt reads an integer field. Fractions truncate toward zero and numeric
// strings are parsed; anything else is 0.
func looseInt(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, false
		}
		return n, false
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, false
	}
	if n, err := strconv.Atoi(num.String()); err == nil {
		return n, true
	}
	f, err := num.Float64()
	if err != nil || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), false
}

// persist writes records to a temp file beside the target and renames it
// into place. Records with a raw entry are written as loaded. Caller must
// hold mu for writing.
func (s *Store) persist(records []models.WorkoutRecord, raw []json.RawMessage) error {
	out := make([]json.RawMessage, len(records))
	for i, rec := range records {
		if i < len(raw) && raw[i] != nil {
			out[i] = raw[i]
			continue
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding workout %d: %w", rec.ID, err)
		}
		out[i] = b
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding workouts: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data dir %s: %w", dir, err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing workouts temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing workouts file: %w", err)
	}
	return nil
}
