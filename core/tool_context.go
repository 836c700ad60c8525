package core

import (
	"context"
	"fmt"

	"github.com/Tpanarchist/AgentForge/logging"
)

// ToolContext provides a constrained, auditable surface for tool / function
// implementations invoked from a processing stage. Tools see the run's scratch
// values and result persistence helpers without gaining access to the full
// RunContext, keeping side effects visible to the owning run.
type ToolContext struct {
	runCtx *RunContext
	callID string
	agent  AgentInfo
	valid  bool

	*loggerAdapter
}

// NewToolContext constructs a tool context bound to a parent RunContext.
// Each tool invocation gets a unique call identifier for correlation.
func NewToolContext(runCtx *RunContext) *ToolContext {
	return &ToolContext{
		runCtx:        runCtx,
		callID:        NewID(),
		agent:         runCtx.Agent,
		valid:         true,
		loggerAdapter: newLoggerAdapter(runCtx.Logger()),
	}
}

// Context returns the context associated with the tool invocation.
func (tc *ToolContext) Context() context.Context { return tc.runCtx.Context }

// RunID returns the run ID associated with the tool invocation.
func (tc *ToolContext) RunID() string { return tc.runCtx.RunID }

// Logger returns the logger associated with the tool invocation.
func (tc *ToolContext) Logger() logging.Logger { return tc.loggerAdapter.Logger() }

// CallID returns the unique identifier of this tool invocation.
func (tc *ToolContext) CallID() string { return tc.callID }

// AgentName returns the agent name associated with the tool invocation.
func (tc *ToolContext) AgentName() string { return tc.agent.Name }

// AgentType returns the agent type associated with the tool invocation.
func (tc *ToolContext) AgentType() string { return tc.agent.Type }

// GetValue retrieves a scratch value staged earlier in the owning run.
func (tc *ToolContext) GetValue(k string) (any, bool) {
	return tc.runCtx.GetValue(k)
}

// SetValue stages a scratch value on the owning run for later stages.
func (tc *ToolContext) SetValue(k string, v any) {
	tc.runCtx.SetValue(k, v)
}

// Persist stores a result for the owning run's agent through the run's
// ResultStore.
func (tc *ToolContext) Persist(result any) error {
	return tc.runCtx.Persist(result)
}

// EmitEvent sends an event on the owning run's event channel.
func (tc *ToolContext) EmitEvent(ev Event) error {
	return tc.runCtx.EmitEvent(ev)
}

// Validate performs a structural sanity check of the context.
func (tc *ToolContext) Validate() error {
	if !tc.valid || tc.runCtx == nil || tc.runCtx.RunID == "" || tc.callID == "" {
		return fmt.Errorf("invalid ToolContext")
	}

	return nil
}

// IsValid reports whether Validate would succeed (fast path).
func (tc *ToolContext) IsValid() bool {
	return tc.valid && tc.runCtx != nil && tc.runCtx.RunID != "" && tc.callID != ""
}

// InternalRunContext returns the internal run context.
func (tc *ToolContext) InternalRunContext() *RunContext { return tc.runCtx }
