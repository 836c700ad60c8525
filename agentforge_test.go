package agentforge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tpanarchist/AgentForge/agent"
	"github.com/Tpanarchist/AgentForge/core"
	"github.com/Tpanarchist/AgentForge/persona"
)

func TestNew_SeedsPersonas(t *testing.T) {
	forge := New(func(o *Options) {
		o.Personas = []persona.Definition{
			{Name: "Summarizer", Prompt: "Summarize: {{.text}}"},
			{Prompt: "missing a name, should be skipped"},
		}
	})

	def, err := forge.Resolver().Resolve("Summarizer")
	require.NoError(t, err)
	assert.Equal(t, "Summarize: {{.text}}", def.Prompt)

	_, err = forge.Resolver().Resolve("Ghost")
	var notFound *persona.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Ghost", notFound.Name)
}

func TestAgentForge_RunSync(t *testing.T) {
	forge := New(func(o *Options) {
		o.Personas = []persona.Definition{
			{Name: "Summarizer", Prompt: "Summarize: {{.text}}"},
		}
	})

	forge.RegisterAgent(agent.NewFuncAgent("Summarizer", func(o *agent.FuncAgentOptions) {
		o.Resolver = forge.Resolver()
		o.Process = func(runCtx *core.RunContext, input core.Input) (any, error) {
			text, _ := input["text"].(string)
			return map[string]any{"summary": text[:10]}, nil
		}
		o.SaveResult = func(runCtx *core.RunContext, result any) error {
			return runCtx.Persist(result)
		}
	}))

	report, err := forge.RunSync(context.Background(), "Summarizer", core.Input{"text": "hello world example"})
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, core.PhaseCompleted, report.Phase)
	assert.Equal(t, map[string]any{"summary": "hello worl"}, report.Result)

	stored, err := forge.GetResult("Summarizer", report.RunID)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"summary": "hello worl"}, stored)

	all, err := forge.ListResults("Summarizer")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAgentForge_LoadPersonas(t *testing.T) {
	dir := t.TempDir()
	data := []byte("name: Researcher\nrole: You dig up facts.\nprompt: \"Research: {{.topic}}\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "researcher.yaml"), data, 0o600))

	forge := New()
	require.NoError(t, forge.LoadPersonas(dir))

	def, err := forge.Resolver().Resolve("Researcher")
	require.NoError(t, err)
	assert.Equal(t, "You dig up facts.", def.Role)
}
