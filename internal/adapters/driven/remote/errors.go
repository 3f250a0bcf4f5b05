package remote

import "fmt"

// TransportError indicates the remote service was unreachable, timed
// out, returned a server-side failure, or produced a response the
// client could not decode. Callers keep their previous state and
// surface the error as a dismissible notice; nothing about it is
// fatal.
type TransportError struct {
	// Op is the operation that failed, e.g. "GET /api/documents".
	Op string

	// StatusCode is the HTTP status, or 0 when the exchange never
	// completed.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: service returned status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}
