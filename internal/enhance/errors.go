package enhance

import (
	"errors"
	"fmt"
)

// ErrMissingImage indicates a 2xx response without the enhanced image payload.
var ErrMissingImage = errors.New("no enhanced image returned")

// UnreachableError indicates the backend could not be reached at all.
type UnreachableError struct {
	Endpoint string
	Err      error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("cannot reach enhancement server at %s: %v", e.Endpoint, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// StatusError indicates the backend answered with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Body)
}
