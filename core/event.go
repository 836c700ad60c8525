package core

import (
	"time"

	"github.com/google/uuid"
)

// EventType categorizes lifecycle events emitted during a pipeline run.
type EventType string

const (
	// EventRunStarted marks the beginning of a pipeline run.
	EventRunStarted EventType = "run.started"
	// EventStageStarted marks a lifecycle stage beginning execution.
	EventStageStarted EventType = "stage.started"
	// EventStageCompleted marks a lifecycle stage finishing successfully.
	EventStageCompleted EventType = "stage.completed"
	// EventResultSaved marks the parsed result having been handed to SaveResult.
	EventResultSaved EventType = "result.saved"
	// EventRunCompleted marks a run reaching the Completed phase.
	EventRunCompleted EventType = "run.completed"
	// EventRunFailed marks a run entering the Failed phase.
	EventRunFailed EventType = "run.failed"
)

// Event is the primary unit of communication between the pipeline, the engine
// and external clients. After emission it should be treated as immutable. It
// captures:
//   - Correlation (RunID, ID, Agent)
//   - The lifecycle transition (Type, Phase)
//   - Stage payloads (resolved Prompt, parsed Result) where applicable
//   - Failure metadata (FailedStage, ErrorMessage)
//   - High precision UTC timestamp
//
// Prompt and Result may be nil for control or error-only events. Timestamp
// uses a native time.Time (UTC). Use UnixSeconds if numeric forms are needed
// for metrics or legacy clients.
type Event struct {
	ID           string            `json:"id"`
	RunID        string            `json:"run_id"`
	Agent        string            `json:"agent"`
	Type         EventType         `json:"type"`
	Phase        Phase             `json:"phase"`
	Timestamp    time.Time         `json:"timestamp"`
	Prompt       *Prompt           `json:"prompt,omitempty"`
	Result       any               `json:"result,omitempty"`
	FailedStage  *Phase            `json:"failed_stage,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// NewEvent creates a bare event of the given type bound to a run.
// Prefer helper constructors for common semantic categories (stage
// transition, completion, failure).
func NewEvent(runID, agent string, typ EventType, phase Phase) Event {
	return Event{
		ID:        NewID(),
		RunID:     runID,
		Agent:     agent,
		Type:      typ,
		Phase:     phase,
		Timestamp: time.Now().UTC(),
	}
}

// NewRunStartedEvent marks a run leaving the Created phase.
func NewRunStartedEvent(runID, agent string) Event {
	return NewEvent(runID, agent, EventRunStarted, PhaseCreated)
}

// NewStageStartedEvent marks the given stage beginning execution.
func NewStageStartedEvent(runID, agent string, stage Phase) Event {
	return NewEvent(runID, agent, EventStageStarted, stage)
}

// NewStageCompletedEvent marks the given stage finishing successfully.
func NewStageCompletedEvent(runID, agent string, stage Phase) Event {
	return NewEvent(runID, agent, EventStageCompleted, stage)
}

// NewPromptPreparedEvent records the prompt produced by the preparation stage.
func NewPromptPreparedEvent(runID, agent string, prompt *Prompt) Event {
	e := NewEvent(runID, agent, EventStageCompleted, PhasePreparingPrompt)
	e.Prompt = prompt
	return e
}

// NewResultSavedEvent records the parsed result after persistence succeeded.
func NewResultSavedEvent(runID, agent string, result any) Event {
	e := NewEvent(runID, agent, EventResultSaved, PhaseSavingResult)
	e.Result = result
	return e
}

// NewRunCompletedEvent marks a run reaching the Completed phase, carrying the
// run's parsed result.
func NewRunCompletedEvent(runID, agent string, result any) Event {
	e := NewEvent(runID, agent, EventRunCompleted, PhaseCompleted)
	e.Result = result
	return e
}

// NewRunFailedEvent marks a run entering the Failed phase, recording the
// failing stage and the reason.
func NewRunFailedEvent(runID, agent string, stage Phase, err error) Event {
	e := NewEvent(runID, agent, EventRunFailed, PhaseFailed)
	e.FailedStage = &stage
	if err != nil {
		msg := err.Error()
		e.ErrorMessage = &msg
	}
	return e
}

// NewID generates a new unique identifier for runs and events.
//
// This function creates a UUID-based unique identifier that can be used
// for event tracking and correlation throughout the framework.
//
// Returns a string representation of a new UUID.
func NewID() string { return uuid.NewString() }

// IsTerminal reports whether this event ends its run (completion or failure).
func (e Event) IsTerminal() bool {
	return e.Type == EventRunCompleted || e.Type == EventRunFailed
}

// IsFailure reports whether this event records a run failure.
func (e Event) IsFailure() bool { return e.Type == EventRunFailed }

// Reason returns the failure message carried by a run.failed event, or the
// empty string for any other event.
func (e Event) Reason() string {
	if e.ErrorMessage == nil {
		return ""
	}
	return *e.ErrorMessage
}

// UnixSeconds returns the timestamp as fractional seconds since Unix epoch.
// Useful for metrics & numeric serialization paths.
func (e Event) UnixSeconds() float64 { return float64(e.Timestamp.UnixNano()) / 1e9 }
