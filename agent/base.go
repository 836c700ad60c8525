package agent

import (
	"fmt"

	"github.com/Tpanarchist/AgentForge/core"
	"github.com/Tpanarchist/AgentForge/persona"
)

// BaseAgentOptions configures a BaseAgent instance.
//
// Use functional options with NewBaseAgent to override defaults.
type BaseAgentOptions struct {
	// Description overrides the generated agent description.
	Description string
	// Resolver supplies persona definitions during PreparePrompt. Agents
	// without a resolver fail the prompt stage with a not-found error.
	Resolver persona.Resolver
	// Persona names the persona to resolve. Defaults to the agent name.
	Persona string
}

// BaseAgent provides the default behavior for every lifecycle stage: persona
// resolution in PreparePrompt, identity pass-through in Process, and a no-op
// SaveResult. Embed it in concrete agent implementations and override only
// the stages that differ; the run order itself is fixed by the pipeline
// package and cannot be changed here.
//
// A BaseAgent holds no per-run state, so a single instance can serve any
// number of sequential or concurrent runs.
type BaseAgent struct {
	name        string           // Human-readable name
	description string           // Detailed description of agent's purpose
	resolver    persona.Resolver // Source of persona definitions
	personaName string           // Persona to resolve, defaults to name
}

// NewBaseAgent constructs a BaseAgent with generated description (customizable via options).
func NewBaseAgent(name string, optFns ...func(o *BaseAgentOptions)) BaseAgent {
	opts := BaseAgentOptions{
		Description: fmt.Sprintf("Agent %s", name),
		Persona:     name,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return BaseAgent{
		name:        name,
		description: opts.Description,
		resolver:    opts.Resolver,
		personaName: opts.Persona,
	}
}

// Name returns the human-readable name for this agent.
func (b *BaseAgent) Name() string { return b.name }

// Description returns a detailed description of this agent's purpose.
func (b *BaseAgent) Description() string { return b.description }

// SetDescription updates the agent's description.
// This is useful for providing more detailed information about the agent's capabilities.
func (b *BaseAgent) SetDescription(desc string) { b.description = desc }

// Persona returns the persona name this agent resolves during PreparePrompt.
func (b *BaseAgent) Persona() string { return b.personaName }

// PreparePrompt resolves the agent's persona and converts it into a prompt.
//
// Resolution happens on every run, so persona definitions registered or
// changed between runs take effect without rebuilding the agent. A missing
// persona (or a missing resolver) yields a persona.NotFoundError before any
// data processing begins.
func (b *BaseAgent) PreparePrompt(runCtx *core.RunContext) (*core.Prompt, error) {
	if b.resolver == nil {
		runCtx.LogWarn("agent.persona.no_resolver", "agent", b.name)
		return nil, &persona.NotFoundError{Name: b.personaName}
	}

	def, err := b.resolver.Resolve(b.personaName)
	if err != nil {
		return nil, err
	}

	runCtx.LogDebug(
		"agent.persona.resolved",
		"agent", b.name,
		"persona", def.Name,
	)

	return &core.Prompt{
		Persona:     def.Name,
		Role:        def.Role,
		Template:    def.Prompt,
		Constraints: def.Constraints,
		Metadata:    def.Metadata,
	}, nil
}

// Process passes the input through unchanged. An empty or nil input is valid
// and produces an empty result.
func (b *BaseAgent) Process(_ *core.RunContext, input core.Input) (any, error) {
	return input, nil
}

// SaveResult does nothing. Agents that need persistence override this stage,
// typically delegating to runCtx.Persist.
func (b *BaseAgent) SaveResult(_ *core.RunContext, _ any) error {
	return nil
}
