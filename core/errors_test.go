package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestProcessingError_CarriesInputAndCause(t *testing.T) {
	cause := errors.New("unparseable payload")
	input := Input{"text": 42}
	err := NewProcessingError(input, cause)

	if !errors.Is(err, cause) {
		t.Error("ProcessingError should unwrap to its cause")
	}
	if err.Input["text"].(int) != 42 {
		t.Errorf("ProcessingError lost the original input: %+v", err.Input)
	}
}

func TestSaveError_CarriesResultAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewSaveError(map[string]any{"summary": "x"}, cause)

	if !errors.Is(err, cause) {
		t.Error("SaveError should unwrap to its cause")
	}
	if err.Result.(map[string]any)["summary"].(string) != "x" {
		t.Errorf("SaveError lost the unsaved result: %+v", err.Result)
	}
}

func TestStageError_IdentifiesStage(t *testing.T) {
	inner := NewProcessingError(Input{}, errors.New("boom"))
	err := fmt.Errorf("run aborted: %w", &StageError{Stage: PhaseProcessingData, Err: inner})

	stage, ok := FailedStage(err)
	if !ok || stage != PhaseProcessingData {
		t.Fatalf("Expected processing stage, got %v (ok=%v)", stage, ok)
	}

	var pe *ProcessingError
	if !errors.As(err, &pe) {
		t.Error("Wrapped ProcessingError should remain extractable")
	}
}

func TestFailedStage_NoStageInfo(t *testing.T) {
	if _, ok := FailedStage(errors.New("plain")); ok {
		t.Error("Plain errors carry no stage information")
	}
}

func TestErrPromptUnavailable_Distinct(t *testing.T) {
	wrapped := &StageError{Stage: PhasePreparingPrompt, Err: ErrPromptUnavailable}
	if !errors.Is(wrapped, ErrPromptUnavailable) {
		t.Error("StageError should unwrap to ErrPromptUnavailable")
	}
}
