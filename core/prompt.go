package core

import (
	"maps"
	"strings"

	"github.com/Tpanarchist/AgentForge/internal/util"
)

// Prompt is the instruction content a run carries out of the prompt
// preparation stage. It binds the originating persona name to the prompt
// template text plus whatever role/constraint metadata the persona supplied.
//
// An empty Template is a valid prompt: agents whose personas carry no
// instruction text still complete their lifecycle. Absence of a prompt is
// expressed through errors (ErrPromptUnavailable), never through a nil
// Prompt paired with a nil error.
type Prompt struct {
	Persona     string            `json:"persona"`
	Role        string            `json:"role,omitempty"`
	Template    string            `json:"template"`
	Constraints []string          `json:"constraints,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewPrompt creates a prompt bound to the given persona name.
func NewPrompt(persona, template string) *Prompt {
	return &Prompt{Persona: persona, Template: template}
}

// Render binds the template against the run input and returns the final
// prompt text. Plain text without template markers passes through verbatim,
// so personas are never required to use template syntax.
func (p *Prompt) Render(vars map[string]any) (string, error) {
	return util.RenderTemplate(p.Template, vars)
}

// System composes the system-message view of the prompt: the role line (when
// present) followed by any constraints. Model-backed stages use it as the
// system message and the rendered template as the user message.
func (p *Prompt) System() string {
	parts := make([]string, 0, 1+len(p.Constraints))
	if p.Role != "" {
		parts = append(parts, p.Role)
	}
	parts = append(parts, p.Constraints...)
	return strings.Join(parts, "\n")
}

// IsEmpty reports whether the prompt carries no instruction content at all.
func (p *Prompt) IsEmpty() bool {
	return p.Template == "" && p.Role == "" && len(p.Constraints) == 0
}

// Clone returns a deep copy safe for independent mutation.
func (p *Prompt) Clone() *Prompt {
	c := &Prompt{Persona: p.Persona, Role: p.Role, Template: p.Template}
	if len(p.Constraints) > 0 {
		c.Constraints = append([]string{}, p.Constraints...)
	}
	if len(p.Metadata) > 0 {
		c.Metadata = make(map[string]string, len(p.Metadata))
		maps.Copy(c.Metadata, p.Metadata)
	}
	return c
}
