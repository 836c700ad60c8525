package core

import (
	"fmt"
	"maps"
)

// Input is the open-ended keyed bag of arguments supplied by a caller to one
// pipeline run. No fixed shape is imposed; the active Process behavior decides
// what it requires. A nil Input is treated as empty by the pipeline, so the
// default Process behavior never fails on it.
type Input map[string]any

// Clone returns an independent shallow copy so a run can never mutate the
// caller's map. Clone of nil returns an empty, non-nil Input.
func (in Input) Clone() Input {
	c := make(Input, len(in))
	maps.Copy(c, in)
	return c
}

// Get returns the raw value and existence flag for a key.
func (in Input) Get(key string) (any, bool) {
	v, ok := in[key]
	return v, ok
}

// String returns the value for key as a string. The second return is false
// when the key is absent or holds a non-string value.
func (in Input) String(key string) (string, bool) {
	v, ok := in[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Vars exposes the input as a plain map for template rendering.
func (in Input) Vars() map[string]any { return in }

// MissingKeyError reports an Input lacking a key the active Process behavior
// requires. Overrides use it to satisfy the carry-the-input failure contract
// through ProcessingError.
type MissingKeyError struct {
	Key string
}

// Error implements the error interface.
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("input missing required key %q", e.Key)
}
