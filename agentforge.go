// Package agentforge provides a high-level façade over the core Engine,
// persona resolution and result storage, enabling rapid construction of
// lifecycle-driven agents. Most applications interact with this package by:
//  1. Creating an AgentForge via New() (optionally overriding default in-memory services)
//  2. Registering personas (inline definitions or YAML directories)
//  3. Registering one or more agents (base, func, model, custom)
//  4. Running agents asynchronously (Run) or synchronously (RunSync)
//
// The façade delegates execution to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable result store
// and a structured logger.
package agentforge

import (
	"context"

	"github.com/Tpanarchist/AgentForge/core"
	"github.com/Tpanarchist/AgentForge/engine"
	"github.com/Tpanarchist/AgentForge/logging"
	"github.com/Tpanarchist/AgentForge/persona"
	"github.com/Tpanarchist/AgentForge/results"
)

// Options configures the AgentForge instance.
type Options struct {
	// Engine configuration (concurrency, model-call limits, buffers)
	EngineConfig engine.Config

	// Personas seeds the persona store at construction time. Definitions
	// that fail validation are logged and skipped; use RegisterPersona when
	// the error matters.
	Personas []persona.Definition

	// Results receives everything agents persist (defaults to an in-memory
	// store if not provided).
	Results core.ResultStore

	// Hooks are registered with the engine before any run starts.
	Hooks []engine.Hook

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentForge is the high-level façade aggregating the underlying engine,
// persona store and result store.
type AgentForge struct {
	opts     Options
	engine   *engine.Engine
	personas *persona.InMemoryStore
}

// New creates a new AgentForge instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *AgentForge {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Results:      results.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	eng := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Results = opts.Results
		o.Logger = opts.Logger
		o.Hooks = opts.Hooks
	})

	personas := persona.NewInMemoryStore()
	for _, def := range opts.Personas {
		if err := personas.Register(def); err != nil {
			opts.Logger.Warn("agentforge.persona.skipped", "persona", def.Name, "error", err.Error())
		}
	}

	return &AgentForge{opts: opts, engine: eng, personas: personas}
}

// RegisterAgent adds an agent to the underlying engine.
func (f *AgentForge) RegisterAgent(a core.Agent) { f.engine.Register(a) }

// RegisterPersona stores a persona definition under its name, overwriting any
// previous definition with the same name.
func (f *AgentForge) RegisterPersona(def persona.Definition) error {
	return f.personas.Register(def)
}

// LoadPersonas loads every YAML persona definition in dir into the persona
// store.
func (f *AgentForge) LoadPersonas(dir string) error {
	return persona.LoadDirInto(dir, f.personas)
}

// Resolver exposes the façade's persona store as a Resolver, ready to be
// handed to agent constructors:
//
//	summarizer := agent.NewBaseAgent("Summarizer", func(o *agent.BaseAgentOptions) {
//	    o.Resolver = forge.Resolver()
//	})
//	forge.RegisterAgent(&summarizer)
func (f *AgentForge) Resolver() persona.Resolver {
	return persona.NewStoreResolver(f.personas)
}

// Run starts an asynchronous run returning event & error channels.
func (f *AgentForge) Run(
	ctx context.Context,
	agentName string,
	input core.Input,
) (string, <-chan core.Event, <-chan error, error) {
	return f.engine.Run(ctx, agentName, input)
}

// RunSync executes a run to completion and returns its report.
func (f *AgentForge) RunSync(
	ctx context.Context,
	agentName string,
	input core.Input,
) (*engine.Report, error) {
	return f.engine.RunSync(ctx, agentName, input)
}

// StopRun cancels an in-flight run by its ID.
func (f *AgentForge) StopRun(runID string) error {
	return f.engine.StopRun(runID)
}

// GetResult retrieves a persisted result for a given agent run.
func (f *AgentForge) GetResult(agentName, runID string) (any, error) {
	return f.engine.GetResult(agentName, runID)
}

// ListResults returns all results persisted for an agent in save order.
func (f *AgentForge) ListResults(agentName string) ([]any, error) {
	return f.engine.ListResults(agentName)
}
