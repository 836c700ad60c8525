package agent

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Tpanarchist/AgentForge/core"
	"github.com/Tpanarchist/AgentForge/model"
	"github.com/Tpanarchist/AgentForge/persona"
)

// ModelAgentOptions configures a ModelAgent instance.
//
// Use functional options with NewModelAgent to override defaults.
type ModelAgentOptions struct {
	Description string
	Resolver    persona.Resolver
	Persona     string
	// Temperature, TopP, MaxTokens and Stop override the model adapter's
	// defaults per request. Zero values defer to the adapter.
	Temperature float64
	TopP        float64
	MaxTokens   int
	Stop        []string
	// ExtractPath selects a field from a JSON model response using gjson
	// path syntax (e.g. "summary" or "choices.0.text"). When empty the raw
	// response text becomes the result.
	ExtractPath string
	// OutputKey stores the result in the run context's value map so later
	// consumers within the same run can read it.
	OutputKey string
	// PersistResults saves each result to the run's result store during
	// SaveResult. Off by default; the base behavior is no persistence.
	PersistResults bool
}

// ModelAgent generates its result by sending the rendered persona prompt to
// a language model.
//
// The agent keeps the standard lifecycle: PreparePrompt resolves the persona
// as usual, Process renders the prompt template against the run input and
// calls the model, and SaveResult optionally records the response. Each model
// call counts against the run's model-call limit.
//
// ModelAgent embeds BaseAgent to inherit persona resolution and defaults for
// the stages it does not override.
type ModelAgent struct {
	BaseAgent
	llm            model.Model // Language model interface
	temperature    float64
	topP           float64
	maxTokens      int
	stop           []string
	extractPath    string // gjson path into JSON responses
	outputKey      string // Key for exposing the result in run values
	persistResults bool   // Whether SaveResult writes to the result store
}

// NewModelAgent creates a new model-backed agent with sensible defaults.
//
// The agent is initialized with:
//   - Standard lifecycle stages inherited from BaseAgent
//   - Persona resolution under the agent's own name
//   - Model sampling parameters deferred to the adapter
//   - No persistence until PersistResults is enabled
//
// Parameters:
//   - name: Human-readable name, also the default persona to resolve
//   - llm: Language model implementation for text generation
//
// Returns a fully configured ModelAgent ready to run.
func NewModelAgent(name string, llm model.Model, optFns ...func(o *ModelAgentOptions)) *ModelAgent {
	opts := ModelAgentOptions{
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

	return &ModelAgent{
		BaseAgent:      base,
		llm:            llm,
		temperature:    opts.Temperature,
		topP:           opts.TopP,
		maxTokens:      opts.MaxTokens,
		stop:           opts.Stop,
		extractPath:    opts.ExtractPath,
		outputKey:      opts.OutputKey,
		persistResults: opts.PersistResults,
	}
}

// GetLLM returns the language model instance.
func (a *ModelAgent) GetLLM() model.Model {
	return a.llm
}

// Process renders the prepared prompt against the run input and generates a
// response from the model. With an ExtractPath configured, the response is
// treated as JSON and the value at that path becomes the result; otherwise
// the raw response text does.
func (a *ModelAgent) Process(runCtx *core.RunContext, input core.Input) (any, error) {
	if a.llm == nil {
		return nil, fmt.Errorf("model agent %s has no model configured", a.Name())
	}

	rendered, err := runCtx.RenderPrompt()
	if err != nil {
		return nil, err
	}

	if err := runCtx.Limiter.Increment(); err != nil {
		return nil, err
	}

	system := ""
	if runCtx.Prompt != nil {
		system = runCtx.Prompt.System()
	}

	req := model.NewRequest(system, rendered)
	req.Temperature = a.temperature
	req.TopP = a.topP
	req.MaxTokens = a.maxTokens
	req.Stop = a.stop

	info := a.llm.Info()

	runCtx.LogDebug(
		"agent.model.generate",
		"agent", a.Name(),
		"model", info.Name,
		"provider", info.Provider,
	)

	start := time.Now()

	resp, err := a.llm.Generate(runCtx.Context, req)
	if err != nil {
		runCtx.LogError(
			"agent.model.generate.error",
			"agent", a.Name(),
			"model", info.Name,
			"error", err.Error(),
		)

		return nil, fmt.Errorf("model %s: %w", info.Name, err)
	}

	tokens := 0
	if resp.Usage != nil {
		tokens = resp.Usage.TotalTokens
	}

	runCtx.LogDebug(
		"agent.model.generate.complete",
		"agent", a.Name(),
		"model", info.Name,
		"tokens", tokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if a.extractPath == "" {
		return resp.Content, nil
	}

	value := gjson.Get(resp.Content, a.extractPath)
	if !value.Exists() {
		return nil, fmt.Errorf("no value at path %q in model response", a.extractPath)
	}

	return value.Value(), nil
}

// SaveResult exposes the result under the configured output key and, when
// persistence is enabled, writes it to the run's result store. With neither
// configured it inherits the base no-op behavior.
func (a *ModelAgent) SaveResult(runCtx *core.RunContext, result any) error {
	if a.outputKey != "" {
		runCtx.SetValue(a.outputKey, result)
	}

	if a.persistResults {
		return runCtx.Persist(result)
	}

	return nil
}
