package results

import "fmt"

var (
	// ErrNotFound is returned when no result exists for the given agent / run
	// pair in the underlying store.
	ErrNotFound = fmt.Errorf("result not found")
)
