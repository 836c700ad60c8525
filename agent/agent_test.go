package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tpanarchist/AgentForge/core"
	"github.com/Tpanarchist/AgentForge/internal/testutil"
	"github.com/Tpanarchist/AgentForge/persona"
)

// Compile-time checks that every agent satisfies the lifecycle interface.
var (
	_ core.Agent = (*BaseAgent)(nil)
	_ core.Agent = (*FuncAgent)(nil)
	_ core.Agent = (*ModelAgent)(nil)
)

// newTestRunContext builds a run context suitable for exercising stages
// directly, without the pipeline.
func newTestRunContext(agentName string, input core.Input, store core.ResultStore) *core.RunContext {
	return testutil.NewRunContextBuilder().Agent(agentName).Input(input).Results(store).Build()
}

// newTestResolver registers the given personas in a fresh store.
func newTestResolver(t *testing.T, defs ...persona.Definition) persona.Resolver {
	t.Helper()

	store := persona.NewInMemoryStore()
	require.NoError(t, store.RegisterAll(defs...))

	return persona.NewStoreResolver(store)
}

func TestBaseAgent_Identity(t *testing.T) {
	base := NewBaseAgent("Plain")

	assert.Equal(t, "Plain", base.Name())
	assert.Equal(t, "Agent Plain", base.Description())
	assert.Equal(t, "Plain", base.Persona())

	base.SetDescription("does nothing in particular")
	assert.Equal(t, "does nothing in particular", base.Description())
}

func TestBaseAgent_Options(t *testing.T) {
	base := NewBaseAgent("Plain", func(o *BaseAgentOptions) {
		o.Description = "custom"
		o.Persona = "Shared"
	})

	assert.Equal(t, "custom", base.Description())
	assert.Equal(t, "Shared", base.Persona())
}

func TestBaseAgent_PreparePrompt_ResolvesPersona(t *testing.T) {
	resolver := newTestResolver(t, persona.Definition{
		Name:        "Summarizer",
		Role:        "You condense text.",
		Prompt:      "Summarize: {{.text}}",
		Constraints: []string{"Be brief."},
	})

	base := NewBaseAgent("Summarizer", func(o *BaseAgentOptions) {
		o.Resolver = resolver
	})

	runCtx := newTestRunContext("Summarizer", core.Input{"text": "hello"}, nil)

	prompt, err := base.PreparePrompt(runCtx)
	require.NoError(t, err)
	require.NotNil(t, prompt)

	assert.Equal(t, "Summarizer", prompt.Persona)
	assert.Equal(t, "You condense text.", prompt.Role)
	assert.Equal(t, "Summarize: {{.text}}", prompt.Template)
	assert.Equal(t, []string{"Be brief."}, prompt.Constraints)
}

func TestBaseAgent_PreparePrompt_PersonaNotFound(t *testing.T) {
	resolver := newTestResolver(t, persona.Definition{Name: "Summarizer", Prompt: "x"})

	base := NewBaseAgent("Ghost", func(o *BaseAgentOptions) {
		o.Resolver = resolver
	})

	runCtx := newTestRunContext("Ghost", core.Input{}, nil)

	prompt, err := base.PreparePrompt(runCtx)
	assert.Nil(t, prompt)
	require.Error(t, err)
	assert.ErrorIs(t, err, persona.ErrNotFound)

	var notFound *persona.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Ghost", notFound.Name)
}

func TestBaseAgent_PreparePrompt_NoResolver(t *testing.T) {
	base := NewBaseAgent("Orphan")

	runCtx := newTestRunContext("Orphan", core.Input{}, nil)

	prompt, err := base.PreparePrompt(runCtx)
	assert.Nil(t, prompt)
	assert.ErrorIs(t, err, persona.ErrNotFound)
}

func TestBaseAgent_PreparePrompt_ResolvesPerRun(t *testing.T) {
	store := persona.NewInMemoryStore()
	require.NoError(t, store.Register(persona.Definition{Name: "Shifty", Prompt: "v1"}))

	base := NewBaseAgent("Shifty", func(o *BaseAgentOptions) {
		o.Resolver = persona.NewStoreResolver(store)
	})

	runCtx := newTestRunContext("Shifty", core.Input{}, nil)

	first, err := base.PreparePrompt(runCtx)
	require.NoError(t, err)
	assert.Equal(t, "v1", first.Template)

	// A definition change between runs is visible to the next run.
	require.NoError(t, store.Register(persona.Definition{Name: "Shifty", Prompt: "v2"}))

	second, err := base.PreparePrompt(runCtx)
	require.NoError(t, err)
	assert.Equal(t, "v2", second.Template)
}

func TestBaseAgent_Process_Identity(t *testing.T) {
	base := NewBaseAgent("Plain")
	runCtx := newTestRunContext("Plain", core.Input{"text": "hello"}, nil)

	result, err := base.Process(runCtx, core.Input{"text": "hello"})
	require.NoError(t, err)
	assert.Equal(t, core.Input{"text": "hello"}, result)
}

func TestBaseAgent_Process_EmptyInput(t *testing.T) {
	base := NewBaseAgent("Plain")
	runCtx := newTestRunContext("Plain", core.Input{}, nil)

	result, err := base.Process(runCtx, core.Input{})
	require.NoError(t, err)
	assert.Equal(t, core.Input{}, result)
}

func TestBaseAgent_SaveResult_NoOp(t *testing.T) {
	base := NewBaseAgent("Plain")
	runCtx := newTestRunContext("Plain", core.Input{}, nil)

	assert.NoError(t, base.SaveResult(runCtx, map[string]any{"anything": true}))
	assert.NoError(t, base.SaveResult(runCtx, nil))
}
