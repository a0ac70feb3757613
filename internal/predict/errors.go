package predict

import (
	"errors"
	"fmt"
)

// ErrBackend matches any BackendError via errors.Is.
var ErrBackend = errors.New("backend error")

// BackendError is returned when the classifier cannot be reached or answers
// with a non-success status. Message is the best text available for the user.
type BackendError struct {
	StatusCode int
	Status     string
	Message    string
	Err        error
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("Backend error: %d %s", e.StatusCode, e.Status)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ErrBackend.Error()
}

// Unwrap returns the underlying transport error, if any.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBackend) true for every BackendError.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}
