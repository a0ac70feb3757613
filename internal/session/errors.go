package session

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingResult means no prediction has been stored yet.
	ErrMissingResult = errors.New("no result yet")

	// ErrBusy means another prediction is in flight.
	ErrBusy = errors.New("a prediction is already in progress")
)

// BusyError identifies the process holding the prediction lock.
type BusyError struct {
	PID int
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("%s (pid %d)", ErrBusy, e.PID)
}

func (e *BusyError) Is(target error) bool {
	return target == ErrBusy
}
