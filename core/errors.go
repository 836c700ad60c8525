package core

import (
	"errors"
	"fmt"
)

// ErrPromptUnavailable reports that prompt preparation could not produce a
// usable prompt even though persona resolution itself did not fail, for
// example malformed persona content, or a PreparePrompt override returning
// neither a prompt nor an error. Distinct from persona.ErrNotFound so callers
// can tell "no persona for this name" apart from "persona content unusable".
var ErrPromptUnavailable = fmt.Errorf("prompt not available")

// ProcessingError reports a data processing failure. It always carries the
// original input alongside the cause, so a caller can see exactly what could
// not be processed. Process overrides return one directly (or any error,
// which the pipeline normalizes into one); a partially populated result is
// never returned silently.
type ProcessingError struct {
	Input Input // the input as handed to Process
	Err   error // underlying cause
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing failed for input with %d key(s): %v", len(e.Input), e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProcessingError) Unwrap() error { return e.Err }

// NewProcessingError creates a ProcessingError carrying the offending input.
func NewProcessingError(input Input, err error) *ProcessingError {
	return &ProcessingError{Input: input, Err: err}
}

// SaveError reports a result persistence failure. It carries the parsed
// result that could not be saved alongside the cause.
type SaveError struct {
	Result any   // the result as handed to SaveResult
	Err    error // underlying cause
}

// Error implements the error interface.
func (e *SaveError) Error() string {
	return fmt.Sprintf("persistence failed for result %T: %v", e.Result, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SaveError) Unwrap() error { return e.Err }

// NewSaveError creates a SaveError carrying the unsaved result.
func NewSaveError(result any, err error) *SaveError {
	return &SaveError{Result: result, Err: err}
}

// StageError identifies which lifecycle stage a run failed in. The pipeline
// wraps every stage failure in one before surfacing it, so the invoker of a
// run can always recover the failing stage (errors.As) and the leaf cause
// (errors.Is) from a single returned error. The pipeline performs no local
// recovery or retry; the wrapped error is the stage's error verbatim.
type StageError struct {
	Stage Phase // phase the run was in when it failed
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

// Unwrap returns the stage's underlying error.
func (e *StageError) Unwrap() error { return e.Err }

// FailedStage extracts the failing stage from an error returned by a run.
// The second return is false when err carries no stage information.
func FailedStage(err error) (Phase, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
