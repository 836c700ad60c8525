package persona

import "fmt"

var (
	// ErrNotFound is returned when no persona definition matches an agent
	// name. Use errors.Is against it regardless of the concrete error type.
	ErrNotFound = fmt.Errorf("persona not found")
)

// NotFoundError reports which agent name failed resolution. It unwraps to
// ErrNotFound so callers can match the condition without the name.
type NotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("persona not found for agent %q", e.Name)
}

// Unwrap ties the typed error to the ErrNotFound sentinel.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }
