package engine

import (
	"context"

	"github.com/Tpanarchist/AgentForge/core"
	"github.com/Tpanarchist/AgentForge/logging"
	"github.com/Tpanarchist/AgentForge/pipeline"
)

// HookType defines the specific lifecycle points where hooks can be executed.
//
// Hooks provide a flexible mechanism for observing and constraining the
// engine's execution pipeline without modifying core logic. Each type
// represents a specific point in the run lifecycle where custom logic can be
// injected.
//
// Available hook types:
//   - BeforeRun/AfterRun: Around a complete run
//   - OnEvent: For each lifecycle event the engine forwards
//   - OnError: When a run reaches the Failed phase
//
// Hooks are executed synchronously. A BeforeRun or OnEvent hook returning an
// error terminates the associated operation; AfterRun and OnError hooks are
// observational and their errors are logged rather than propagated, because
// the run is already terminal when they fire.
type HookType string

const (
	// HookBeforeRun is triggered before a run's pipeline starts.
	// Use for setup, input validation, or instrumentation. An error here
	// prevents the run from starting.
	HookBeforeRun HookType = "before_run"

	// HookAfterRun is triggered after a run reaches a terminal phase.
	// Use for cleanup, metrics collection, or post-processing.
	HookAfterRun HookType = "after_run"

	// HookOnEvent is triggered for each lifecycle event before it is
	// forwarded to the client. An error terminates event delivery for the run.
	HookOnEvent HookType = "on_event"

	// HookOnError is triggered when a run fails.
	// Use for alerting or failure bookkeeping.
	HookOnError HookType = "on_error"
)

// HookContext provides context information for hook execution.
//
// The engine populates the fields relevant to the firing hook type: Event is
// set for OnEvent, Outcome for AfterRun and OnError, and RunContext whenever
// the run's context still exists. Metadata is an extensible bag for custom
// hook implementations.
type HookContext struct {
	// RunContext provides access to the run's execution scope. May be nil
	// for hooks firing outside an active run.
	RunContext *core.RunContext

	// Event is the lifecycle event being processed. Only set for OnEvent.
	Event *core.Event

	// Outcome describes the finished run. Only set for AfterRun and OnError.
	Outcome *pipeline.Outcome

	// Agent names the agent associated with this hook invocation.
	Agent string

	// HookType indicates which lifecycle point triggered this execution.
	HookType HookType

	// Metadata provides extensible storage for custom hook data.
	Metadata map[string]any
}

// Hook defines the interface for run lifecycle extensions.
//
// Implementations should be fast (hooks run synchronously on the run path),
// safe (no panics) and stateless between invocations.
type Hook interface {
	// Type returns the hook type this implementation handles.
	Type() HookType

	// Execute performs the hook logic with the provided context.
	Execute(ctx context.Context, hookCtx *HookContext) error
}

// FunctionHook wraps a plain function as a Hook implementation.
//
// Example:
//
//	auditHook := engine.NewFunctionHook(
//	    engine.HookBeforeRun,
//	    func(ctx context.Context, hookCtx *engine.HookContext) error {
//	        log.Printf("starting run for %s", hookCtx.Agent)
//	        return nil
//	    },
//	)
type FunctionHook struct {
	hookType HookType
	fn       func(ctx context.Context, hookCtx *HookContext) error
}

// NewFunctionHook creates a new function-based hook for the given type.
func NewFunctionHook(
	hookType HookType,
	fn func(ctx context.Context, hookCtx *HookContext) error,
) *FunctionHook {
	return &FunctionHook{
		hookType: hookType,
		fn:       fn,
	}
}

// Type returns the hook type this function handles.
func (h *FunctionHook) Type() HookType {
	return h.hookType
}

// Execute calls the wrapped function with the provided context.
func (h *FunctionHook) Execute(ctx context.Context, hookCtx *HookContext) error {
	return h.fn(ctx, hookCtx)
}

// HookManager orchestrates hook execution throughout the engine lifecycle.
//
// The manager keeps a registry of hooks by type and executes them in
// registration order. The first hook returning an error stops execution of
// the remaining hooks for that firing.
//
// Registration is not synchronized; register hooks before starting runs.
// Execution against a populated manager is safe for concurrent use.
type HookManager struct {
	hooks map[HookType][]Hook
}

// NewHookManager creates an empty hook manager.
func NewHookManager() *HookManager {
	return &HookManager{
		hooks: make(map[HookType][]Hook),
	}
}

// Register adds a hook to the manager under its declared type.
// Multiple hooks of the same type run in registration order.
func (hm *HookManager) Register(hook Hook) {
	hookType := hook.Type()
	hm.hooks[hookType] = append(hm.hooks[hookType], hook)
}

// Execute runs all registered hooks of the given type.
// Returns the first error produced, or nil when every hook succeeds.
func (hm *HookManager) Execute(ctx context.Context, hookType HookType, hookCtx *HookContext) error {
	hooks, exists := hm.hooks[hookType]
	if !exists {
		return nil
	}

	for _, hook := range hooks {
		if err := hook.Execute(ctx, hookCtx); err != nil {
			return err
		}
	}

	return nil
}

// LoggingHook writes a structured log line for each firing of its hook type.
//
// Useful as a lightweight audit trail during development:
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Hooks = []engine.Hook{engine.NewLoggingHook(engine.HookOnEvent, logger)}
//	})
type LoggingHook struct {
	hookType HookType
	logger   logging.Logger
}

// NewLoggingHook creates a hook that logs firings of hookType via logger.
func NewLoggingHook(hookType HookType, logger logging.Logger) *LoggingHook {
	return &LoggingHook{
		hookType: hookType,
		logger:   logger,
	}
}

// Type returns the hook type this logger handles.
func (h *LoggingHook) Type() HookType {
	return h.hookType
}

// Execute logs the firing with agent and event context when available.
func (h *LoggingHook) Execute(ctx context.Context, hookCtx *HookContext) error {
	if h.logger == nil {
		return nil
	}

	if hookCtx.Event != nil {
		h.logger.Debug(
			"engine.hook",
			"type", string(h.hookType),
			"agent", hookCtx.Agent,
			"event_type", string(hookCtx.Event.Type),
			"phase", hookCtx.Event.Phase.String(),
		)
		return nil
	}

	h.logger.Debug("engine.hook", "type", string(h.hookType), "agent", hookCtx.Agent)

	return nil
}

// ResultValidationHook checks parsed results as their events pass through the
// engine.
//
// The validator runs against result-carrying events (result.saved and
// run.completed). Returning an error terminates event delivery and surfaces
// through the run's error channel. Note the persistence stage has already
// executed by the time this fires; a validator that must gate persistence
// itself belongs in the agent's SaveResult stage.
type ResultValidationHook struct {
	validator func(result any) error
}

// NewResultValidationHook creates a hook validating results carried by
// lifecycle events.
func NewResultValidationHook(validator func(result any) error) *ResultValidationHook {
	return &ResultValidationHook{
		validator: validator,
	}
}

// Type returns the hook type (always HookOnEvent).
func (h *ResultValidationHook) Type() HookType {
	return HookOnEvent
}

// Execute validates the result carried by the event, if any.
func (h *ResultValidationHook) Execute(ctx context.Context, hookCtx *HookContext) error {
	if h.validator == nil || hookCtx.Event == nil {
		return nil
	}

	switch hookCtx.Event.Type {
	case core.EventResultSaved, core.EventRunCompleted:
		return h.validator(hookCtx.Event.Result)
	default:
		return nil
	}
}
