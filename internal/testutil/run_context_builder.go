package testutil

import (
	"context"

	"github.com/Tpanarchist/AgentForge/core"
	"github.com/Tpanarchist/AgentForge/logging"
)

// RunContextBuilder provides a fluent helper for constructing run contexts in
// tests.
// Example:
//
//	runCtx := NewRunContextBuilder().Agent("Summarizer").Input(core.Input{"text": "hi"}).Build()
//
// Chain only the parts you need; sensible defaults are applied.
type RunContextBuilder struct {
	ctx           context.Context
	runID         string
	agent         core.AgentInfo
	input         core.Input
	prompt        *core.Prompt
	maxModelCalls int
	emit          chan<- core.Event
	results       core.ResultStore
	logger        logging.Logger
}

// NewRunContextBuilder creates a builder with run ID "run-1" and a generic
// test agent.
func NewRunContextBuilder() *RunContextBuilder {
	return &RunContextBuilder{
		ctx:    context.Background(),
		runID:  "run-1",
		agent:  core.AgentInfo{Name: "agent", Type: "test"},
		input:  core.Input{},
		logger: logging.NoOpLogger{},
	}
}

// Context sets the ambient context for the run (chainable).
func (b *RunContextBuilder) Context(ctx context.Context) *RunContextBuilder { b.ctx = ctx; return b }

// RunID overrides the default run identifier (chainable).
func (b *RunContextBuilder) RunID(id string) *RunContextBuilder { b.runID = id; return b }

// Agent sets the agent name, keeping the default type (chainable).
func (b *RunContextBuilder) Agent(name string) *RunContextBuilder { b.agent.Name = name; return b }

// AgentType sets the agent categorization label (chainable).
func (b *RunContextBuilder) AgentType(t string) *RunContextBuilder { b.agent.Type = t; return b }

// Input sets the caller input for the run (chainable).
func (b *RunContextBuilder) Input(in core.Input) *RunContextBuilder { b.input = in; return b }

// Prompt pre-binds a resolved prompt, as the preparation stage would
// (chainable).
func (b *RunContextBuilder) Prompt(p *core.Prompt) *RunContextBuilder { b.prompt = p; return b }

// MaxModelCalls caps model invocations for the run (chainable).
func (b *RunContextBuilder) MaxModelCalls(n int) *RunContextBuilder { b.maxModelCalls = n; return b }

// Emit attaches an event channel (chainable).
func (b *RunContextBuilder) Emit(ch chan<- core.Event) *RunContextBuilder { b.emit = ch; return b }

// Results attaches a result store backing Persist (chainable).
func (b *RunContextBuilder) Results(store core.ResultStore) *RunContextBuilder {
	b.results = store
	return b
}

// Logger overrides the default no-op logger (chainable).
func (b *RunContextBuilder) Logger(l logging.Logger) *RunContextBuilder { b.logger = l; return b }

// Build constructs the *core.RunContext value.
func (b *RunContextBuilder) Build() *core.RunContext {
	runCtx := core.NewRunContext(
		b.ctx,
		b.runID,
		b.agent,
		b.input,
		b.maxModelCalls,
		b.emit,
		b.results,
		b.logger,
	)
	runCtx.Prompt = b.prompt

	return runCtx
}
