package agent

import (
	"github.com/Tpanarchist/AgentForge/core"
	"github.com/Tpanarchist/AgentForge/persona"
)

// PreparePromptFunc produces the prompt for a run.
type PreparePromptFunc func(runCtx *core.RunContext) (*core.Prompt, error)

// ProcessFunc transforms the run input into a result.
type ProcessFunc func(runCtx *core.RunContext, input core.Input) (any, error)

// SaveResultFunc persists a result produced by Process.
type SaveResultFunc func(runCtx *core.RunContext, result any) error

// FuncAgentOptions configures a FuncAgent instance.
//
// Any stage function left nil falls back to the BaseAgent default for that
// stage: persona resolution, identity pass-through, or no-op persistence.
type FuncAgentOptions struct {
	Description   string
	Resolver      persona.Resolver
	Persona       string
	PreparePrompt PreparePromptFunc
	Process       ProcessFunc
	SaveResult    SaveResultFunc
}

// FuncAgent customizes individual lifecycle stages with plain functions
// instead of a dedicated type. It is the lightest way to build an agent that
// differs from the base behavior in one or two stages, e.g. a custom Process
// that extracts fields from the input plus a SaveResult that appends to a
// store, while inheriting persona resolution unchanged.
type FuncAgent struct {
	BaseAgent
	prepareFn PreparePromptFunc
	processFn ProcessFunc
	saveFn    SaveResultFunc
}

// NewFuncAgent creates an agent whose stages are supplied as functions.
func NewFuncAgent(name string, optFns ...func(o *FuncAgentOptions)) *FuncAgent {
	opts := FuncAgentOptions{
		Persona: name,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	base := NewBaseAgent(name, func(o *BaseAgentOptions) {
		if opts.Description != "" {
			o.Description = opts.Description
		}
		o.Resolver = opts.Resolver
		o.Persona = opts.Persona
	})

	return &FuncAgent{
		BaseAgent: base,
		prepareFn: opts.PreparePrompt,
		processFn: opts.Process,
		saveFn:    opts.SaveResult,
	}
}

// PreparePrompt runs the configured prompt function, or the base persona
// resolution when none is set.
func (a *FuncAgent) PreparePrompt(runCtx *core.RunContext) (*core.Prompt, error) {
	if a.prepareFn != nil {
		return a.prepareFn(runCtx)
	}
	return a.BaseAgent.PreparePrompt(runCtx)
}

// Process runs the configured processing function, or passes the input
// through when none is set.
func (a *FuncAgent) Process(runCtx *core.RunContext, input core.Input) (any, error) {
	if a.processFn != nil {
		return a.processFn(runCtx, input)
	}
	return a.BaseAgent.Process(runCtx, input)
}

// SaveResult runs the configured persistence function, or does nothing when
// none is set.
func (a *FuncAgent) SaveResult(runCtx *core.RunContext, result any) error {
	if a.saveFn != nil {
		return a.saveFn(runCtx, result)
	}
	return a.BaseAgent.SaveResult(runCtx, result)
}
