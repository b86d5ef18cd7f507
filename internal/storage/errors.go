package storage

import "errors"

// ValidationError is a user-facing rejection of Add input. The message is
// shown verbatim in flash banners and API error bodies.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation failures, checked in this order by Add.
var (
	ErrMissingField = &ValidationError{
		Reason:  "missing_field",
		Message: "Please enter both workout name and duration.",
	}
	ErrInvalidDurationFormat = &ValidationError{
		Reason:  "invalid_duration_format",
		Message: "Duration must be a valid number.",
	}
	ErrNonPositiveDuration = &ValidationError{
		Reason:  "non_positive_duration",
		Message: "Duration must be a positive number.",
	}
)

// ErrStorageRead is returned by Open in strict mode when the workouts file
// exists but cannot be read or parsed.
var ErrStorageRead = errors.New("reading workouts file")

// IsValidation reports whether err is one of the Add validation failures.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
