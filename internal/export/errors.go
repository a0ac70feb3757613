package export

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSurface is returned when the drawing surface cannot be created.
	ErrNoSurface = errors.New("no drawing surface available")

	// ErrTooManyColours is returned when a section would spill into the next.
	ErrTooManyColours = errors.New("too many colours for section")
)

// RenderError reports which rendering stage failed.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render palette image: %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
