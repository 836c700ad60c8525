// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API. It adapts AgentForge's normalized Request/Response
// structures into the SDK's message format and back, with a bounded retry
// loop around transient API failures (rate limits, connection drops, bad
// gateways).
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"

	"github.com/Tpanarchist/AgentForge/model"
)

const (
	// rateLimitWait is the pause after a 429 before the next attempt.
	rateLimitWait = 20 * time.Second
	// connectionWait is the pause after a transport-level failure.
	connectionWait = 2 * time.Second
)

// Options configure the OpenAI model adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	TopP                float64
	MaxCompletionTokens int64
	MaxRetries          int
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a new OpenAI model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
		MaxRetries:          5,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate implements model.Model. Transient failures are retried up to
// MaxRetries attempts: rate limits pause 20s, connection errors 2s, bad
// gateways back off exponentially (4s, 8s, ...). Any other API error fails
// immediately. Exhausting all attempts yields a terminal error.
func (m *Model) Generate(ctx context.Context, req model.Request) (*model.Response, error) {
	params := m.buildParams(req)

	for attempt := 0; attempt < m.opts.MaxRetries; attempt++ {
		backoff := time.Duration(1<<(attempt+2)) * time.Second

		resp, err := m.client.Chat.Completions.New(ctx, params)
		if err == nil {
			return buildResponse(resp)
		}

		wait, retryable := classify(err, backoff)
		if !retryable {
			return nil, fmt.Errorf("openai api error: %w", err)
		}

		if err := sleepCtx(ctx, wait); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("openai: no response after %d attempts", m.opts.MaxRetries)
}

// classify maps an SDK error onto a retry wait. Cancellation is never
// retried; unknown API statuses fail fast like the non-transient errors they
// usually are.
func classify(err error, backoff time.Duration) (time.Duration, bool) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}

	var apierr *openai.Error
	if !errors.As(err, &apierr) {
		// Transport-level failure (connection reset, DNS, timeouts).
		return connectionWait, true
	}

	switch apierr.StatusCode {
	case 429:
		return rateLimitWait, true
	case 502:
		return backoff, true
	default:
		return 0, false
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// buildParams assembles the OpenAI request parameters from adapter defaults
// plus any per-request overrides.
func (m *Model) buildParams(req model.Request) openai.ChatCompletionNewParams {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, msg := range req.Messages {
		switch msg.Role {
		case model.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case model.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	temperature := m.opts.Temperature
	if req.Temperature != 0 {
		temperature = req.Temperature
	}

	maxTokens := m.opts.MaxCompletionTokens
	if req.MaxTokens != 0 {
		maxTokens = int64(req.MaxTokens)
	}

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               m.opts.Model,
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(maxTokens),
	}

	topP := m.opts.TopP
	if req.TopP != 0 {
		topP = req.TopP
	}
	if topP != 0 {
		params.TopP = openai.Float(topP)
	}

	if len(req.Stop) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: req.Stop}
	}

	return params
}

// buildResponse converts an SDK completion into the normalized response.
func buildResponse(resp *openai.ChatCompletion) (*model.Response, error) {
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	ch0 := resp.Choices[0]

	return &model.Response{
		ID:           resp.ID,
		Content:      ch0.Message.Content,
		FinishReason: ch0.FinishReason,
		Usage: &model.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:     m.opts.Model,
		Provider: "openai",
	}
}
