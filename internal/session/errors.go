package session

import (
	"errors"
	"fmt"
)

// ErrNoCatalog indicates the knowledge-unit catalog is empty. Fatal for
// the turn; nothing is written.
var ErrNoCatalog = errors.New("no knowledge units available: ingest content before starting a session")

// ValidationError reports a malformed request payload. Surfaced to the
// caller; no state mutation occurs.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid request: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }
