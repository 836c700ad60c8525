package model

import (
	"context"
	"fmt"
)

// Conversation roles normalized across providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversational turn handed to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request captures the normalized model input produced by agents. System
// carries the persona-derived instructions; Messages the ordered turns
// (typically a single rendered user prompt). Zero-valued tuning fields leave
// the provider defaults untouched.
type Request struct {
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	TopP        float64   `json:"top_p,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stop        []string  `json:"stop,omitempty"`
}

// NewRequest builds the canonical system + user message pair.
func NewRequest(system, user string) Request {
	req := Request{System: system}
	if user != "" {
		req.Messages = []Message{{Role: RoleUser, Content: user}}
	}
	return req
}

// LastUserContent returns the content of the most recent user message, or the
// empty string when the request carries none.
func (r Request) LastUserContent() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return r.Messages[i].Content
		}
	}
	return ""
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the final completion returned by a provider.
type Response struct {
	ID           string      `json:"id"`
	Content      string      `json:"content"`
	FinishReason string      `json:"finish_reason"` // "stop", "length", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by agents to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
type MockModel struct {
	info      Info
	responses map[string]string
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// Generate implements Model; replies with the canned completion for the
// request's user content, or an echo when none is registered.
func (m *MockModel) Generate(ctx context.Context, req Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	input := req.LastUserContent()
	full := m.responses[input]
	if full == "" {
		full = fmt.Sprintf("Mock response to: %s", input)
	}

	return &Response{
		Content:      full,
		FinishReason: "stop",
		Usage: &TokenUsage{
			PromptTokens:     len(input),
			CompletionTokens: len(full),
			TotalTokens:      len(input) + len(full),
		},
	}, nil
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
