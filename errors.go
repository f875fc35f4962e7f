package inkcut

import (
	"errors"
	"fmt"
)

// Sentinel errors for inkcut.
var (
	// ErrNotReady is returned when a preview or export is requested before a
	// base was built successfully.
	ErrNotReady = errors.New("inkcut: distance field not ready")

	// ErrTimeout is returned when a request exceeds its time budget. The
	// worker state is left untouched and the request is not retried.
	ErrTimeout = errors.New("inkcut: request timed out")

	// ErrSuperseded is returned to the waiter of a request replaced by a newer
	// request of the same kind.
	ErrSuperseded = errors.New("inkcut: request superseded")

	// ErrClosed is returned when the worker has been shut down.
	ErrClosed = errors.New("inkcut: worker closed")

	// ErrInvalidInput is returned for malformed pixel buffers, sizes or
	// threshold overrides.
	ErrInvalidInput = errors.New("inkcut: invalid input")

	// ErrEmptyMask is returned when a cropped export finds no foreground.
	ErrEmptyMask = errors.New("inkcut: no foreground in mask")

	// ErrUnknownRequest is returned for a request type the worker does not
	// handle.
	ErrUnknownRequest = errors.New("inkcut: unknown request")
)

// RequestError reports the failure of one worker request.
// Use errors.Is on it to test for the sentinel errors above.
type RequestError struct {
	Kind RequestKind
	ID   uint64
	Err  error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request %d: %v", e.Kind, e.ID, e.Err)
}

// Unwrap returns the underlying error.
func (e *RequestError) Unwrap() error {
	return e.Err
}
