package core

import (
	"context"
	"fmt"

	"maps"

	"github.com/Tpanarchist/AgentForge/logging"
)

// RunContext carries execution state & helpers for one pipeline run.
// It encapsulates the mutable, per-run execution scope handed to each
// lifecycle stage. It aggregates:
//   - The ambient cancellation Context
//   - Identifiers (RunID, Agent info)
//   - The caller's Input for this run
//   - The Prompt resolved by the preparation stage (nil before it)
//   - Emission channel for lifecycle events
//   - The ResultStore backing RunContext.Persist (optional)
//   - A model call Limiter and a scratch Values buffer
//
// Every run gets a fresh RunContext; nothing in it survives into the next
// run, which is what keeps agent instances reusable. Values accumulates
// scratch state stage overrides want to share within a single run.
type RunContext struct {
	Context       context.Context
	RunID         string
	Agent         AgentInfo
	Input         Input
	Prompt        *Prompt
	MaxModelCalls int
	Emit          chan<- Event
	Results       ResultStore
	Limiter       *ModelLimiter
	Values        map[string]any

	*loggerAdapter
}

// NewRunContext constructs a RunContext with a cloned input and an empty
// scratch buffer.
func NewRunContext(
	ctx context.Context,
	runID string,
	agent AgentInfo,
	input Input,
	maxModelCalls int,
	emit chan<- Event,
	results ResultStore,
	logger logging.Logger,
) *RunContext {
	return &RunContext{
		Context:       ctx,
		RunID:         runID,
		Agent:         agent,
		Input:         input.Clone(),
		MaxModelCalls: maxModelCalls,
		Emit:          emit,
		Results:       results,
		Limiter:       NewModelLimiter(maxModelCalls),
		Values:        map[string]any{},
		loggerAdapter: newLoggerAdapter(logger),
	}
}

// Done returns a channel closed when the underlying context is cancelled.
func (rc *RunContext) Done() <-chan struct{} { return rc.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (rc *RunContext) Err() error { return rc.Context.Err() }

// GetValue returns a scratch value staged earlier in this run.
func (rc *RunContext) GetValue(k string) (any, bool) {
	v, ok := rc.Values[k]
	return v, ok
}

// SetValue stages a scratch value visible to later stages of this run.
func (rc *RunContext) SetValue(k string, v any) { rc.Values[k] = v }

// Persist stores a parsed result for this run's agent in the ResultStore.
// SaveResult overrides that want durable output call this; the base lifecycle
// never does.
func (rc *RunContext) Persist(result any) error {
	if rc.Results == nil {
		return fmt.Errorf("result store not configured")
	}

	return rc.Results.Save(rc.Agent.Name, rc.RunID, result)
}

// LoadResult retrieves the result previously persisted for a run of this
// agent.
func (rc *RunContext) LoadResult(runID string) (any, error) {
	if rc.Results == nil {
		return nil, fmt.Errorf("result store not configured")
	}

	return rc.Results.Get(rc.Agent.Name, runID)
}

// ListResults returns all results persisted for this agent in save order.
func (rc *RunContext) ListResults() ([]any, error) {
	if rc.Results == nil {
		return []any{}, nil
	}

	return rc.Results.List(rc.Agent.Name)
}

// GetAgentName returns the logical agent name for this run.
func (rc *RunContext) GetAgentName() string { return rc.Agent.Name }

// GetAgentType returns a categorization label for the agent.
func (rc *RunContext) GetAgentType() string { return rc.Agent.Type }

// RenderPrompt binds the resolved prompt template against this run's input.
// It fails with ErrPromptUnavailable when called before prompt preparation.
func (rc *RunContext) RenderPrompt() (string, error) {
	if rc.Prompt == nil {
		return "", ErrPromptUnavailable
	}

	return rc.Prompt.Render(rc.Input.Vars())
}

// Clone returns a copy with deep-copied input & scratch buffers, sharing the
// context, channels and stores.
func (rc *RunContext) Clone() *RunContext {
	c := &RunContext{
		Context:       rc.Context,
		RunID:         rc.RunID,
		Agent:         rc.Agent,
		Input:         rc.Input.Clone(),
		Prompt:        rc.Prompt,
		MaxModelCalls: rc.MaxModelCalls,
		Emit:          rc.Emit,
		Results:       rc.Results,
		Limiter:       rc.Limiter,
		Values:        map[string]any{},
		loggerAdapter: rc.loggerAdapter,
	}

	maps.Copy(c.Values, rc.Values)

	return c
}

// EmitEvent delivers a lifecycle event to the run's event channel, honoring
// context cancellation. Runs without an event channel drop events silently.
func (rc *RunContext) EmitEvent(ev Event) error {
	if rc.Emit == nil {
		return nil
	}

	select {
	case <-rc.Context.Done():
		return rc.Context.Err()
	case rc.Emit <- ev:
	}

	return nil
}
