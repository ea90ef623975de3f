package probe

import (
	"errors"
	"fmt"
)

// Terminal probe failures. The messages are fixed; callers match them with
// errors.Is.
var (
	ErrFetchFailed = errors.New("Failed to fetch image")
	ErrParseFailed = errors.New("Failed to parse the size")
)

// TransportError reports a fetch that failed before parsing could begin, or a
// body that broke off mid-stream. Its message is always that of
// ErrFetchFailed; the cause stays reachable through errors.Is and errors.As.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return ErrFetchFailed.Error()
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetchFailed}
	}
	return []error{ErrFetchFailed, e.Err}
}

// Detail describes the underlying cause for logs.
func (e *TransportError) Detail() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("status %d: %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.StatusCode != 0:
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return "unknown cause"
}
