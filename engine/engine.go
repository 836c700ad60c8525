package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Tpanarchist/AgentForge/core"
	"github.com/Tpanarchist/AgentForge/logging"
	"github.com/Tpanarchist/AgentForge/pipeline"
	"github.com/Tpanarchist/AgentForge/results"
)

// Config defines tuning parameters for the Engine's operational behavior.
//
// This configuration focuses on core performance and behavioral aspects:
//   - Concurrency: How many runs can execute simultaneously
//   - Model budget: How many model calls a single run may make
//   - Buffering: Channel buffer sizes for event delivery
//
// Additional concerns should be configured via functional options rather
// than expanding this struct, to keep it small and focused.
//
// Example:
//
//	cfg := Config{
//	    MaxConcurrentRuns: 50,
//	    MaxModelCalls: 5,
//	    EventBufferSize: 256,
//	}
type Config struct {
	// MaxConcurrentRuns limits the number of pipelines that can execute
	// simultaneously. Additional runs wait for a free slot. Set to 0 for
	// unlimited (not recommended).
	MaxConcurrentRuns int

	// MaxModelCalls caps the model calls a single run may make, guarding
	// against runaway generation loops in custom stages. Set to 0 for
	// unlimited.
	MaxModelCalls int

	// EventBufferSize sets the channel buffer size for event delivery.
	// Larger buffers reduce blocking but increase memory usage.
	EventBufferSize int
}

// DefaultConfig provides production-ready default configuration values.
//
// These defaults are chosen for:
//   - Safety: Conservative concurrency limits prevent resource exhaustion
//   - Predictability: A bounded model budget per run
//   - Performance: Reasonable buffer sizes for typical workloads
//
// Configuration values:
//   - MaxConcurrentRuns: 10 (safe for most environments)
//   - MaxModelCalls: 10 (generous for single-agent lifecycles)
//   - EventBufferSize: 100 (balances memory usage and performance)
var DefaultConfig = Config{
	MaxConcurrentRuns: 10,
	MaxModelCalls:     10,
	EventBufferSize:   100,
}

// Options configures an Engine instance using the functional options pattern.
//
// Default implementations are provided for all dependencies so a bare New()
// yields a working engine for development and testing.
//
// Example:
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Config.MaxConcurrentRuns = 50
//	    o.Results = myStore
//	    o.Logger = myLogger
//	})
type Options struct {
	// Config contains operational parameters for the engine behavior.
	// Defaults to DefaultConfig if not specified.
	Config Config

	// Results receives whatever agents persist through their SaveResult
	// stage. Defaults to an in-memory implementation; production
	// deployments inject their own core.ResultStore backend.
	Results core.ResultStore

	// Logger provides structured logging for debugging and monitoring.
	// Defaults to a no-op logger if nil.
	Logger logging.Logger

	// Hooks are registered with the engine's hook manager at construction.
	Hooks []Hook
}

// Engine orchestrates agent runs through the lifecycle pipeline.
//
// The Engine serves as the central coordination point between callers and
// agent implementations. It provides:
//
// Core Responsibilities:
//   - Agent Registry: Thread-safe registration and lookup of named agents
//   - Run Management: Async/sync execution with proper lifecycle cleanup
//   - Event Delivery: Real-time lifecycle event streaming per run
//   - Resource Management: Concurrency limits and model call budgets
//   - Extension Points: Hook execution around runs and events
//
// Concurrency Model:
//   - Thread-safe agent registration and lookup via RWMutex
//   - Bounded concurrent runs to prevent resource exhaustion
//   - Per-run goroutines with proper cancellation propagation
//   - Per-run event channels, so event order is deterministic within a run
//
// Error Handling:
//   - Startup failures (unknown agent, rejected hook) return immediately
//   - Pipeline failures are delivered once via the run's error channel
//   - Context cancellation provides timeout and cleanup mechanisms
//
// The design keeps orchestration concerns out of agent implementations:
// agents implement stages, the pipeline fixes their order, and the Engine
// makes many such runs safe, observable and addressable.
type Engine struct {
	// Core dependencies - immutable after construction
	results core.ResultStore // Persisted agent output
	logger  logging.Logger   // Structured logging interface
	hooks   *HookManager     // Lifecycle extension points

	// Configuration - immutable after construction
	config Config

	// Agent registry - protected by mutex for thread-safe access
	agents map[string]core.Agent
	mu     sync.RWMutex

	// Active run tracking - protected by separate mutex
	activeRuns map[string]context.CancelFunc
	runsMu     sync.RWMutex

	// Concurrency semaphore - nil means unlimited
	sem chan struct{}
}

// New creates a new Engine instance with sensible defaults and optional
// configuration.
//
// Default Dependencies:
//   - Results: In-memory result storage with thread-safe operations
//   - Logger: No-op logger that discards all messages
//
// The defaults enable immediate use without external dependencies, making
// the engine suitable for prototyping and testing. Production deployments
// should typically inject their own result store and logger.
//
// The returned Engine is immediately ready for use and safe for concurrent
// access. The Engine does not take ownership of provided dependencies;
// callers remain responsible for their lifecycle.
//
// Examples:
//
//	// Minimal setup with all defaults
//	eng := engine.New()
//
//	// Production setup
//	eng := engine.New(func(o *engine.Options) {
//	    o.Config = customConfig
//	    o.Results = durableStore
//	    o.Logger = structuredLogger
//	})
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config:  DefaultConfig,
		Results: results.NewInMemoryStore(),
		Logger:  logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	hooks := NewHookManager()
	for _, h := range opts.Hooks {
		hooks.Register(h)
	}

	var sem chan struct{}
	if opts.Config.MaxConcurrentRuns > 0 {
		sem = make(chan struct{}, opts.Config.MaxConcurrentRuns)
	}

	return &Engine{
		results:    opts.Results,
		logger:     opts.Logger,
		hooks:      hooks,
		config:     opts.Config,
		agents:     make(map[string]core.Agent),
		activeRuns: make(map[string]context.CancelFunc),
		sem:        sem,
	}
}

// Register adds an agent to the engine's registry, making it available for
// execution by name.
//
// The agent is registered under agent.Name(). Registering a second agent
// with the same name replaces the first without warning. Registration is
// thread-safe, but completing all registration before starting runs avoids
// replacing an agent that is mid-run.
//
// The engine does not take ownership of the agent; since agents hold no
// per-run state, one registered instance serves any number of runs.
//
// Example:
//
//	eng.Register(agent.NewModelAgent("Assistant", llm))
//	report, err := eng.RunSync(ctx, "Assistant", input)
func (e *Engine) Register(a core.Agent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.agents[a.Name()] = a
}

// GetAgent retrieves a registered agent by name.
//
// The boolean return reports whether an agent with the given name exists.
// Primarily used internally during run startup; exposed for debugging and
// introspection.
func (e *Engine) GetAgent(name string) (core.Agent, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, ok := e.agents[name]
	return a, ok
}

// AgentNames returns the names of all registered agents.
func (e *Engine) AgentNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.agents))
	for name := range e.agents {
		names = append(names, name)
	}
	return names
}

// Run executes an agent asynchronously and returns channels for real-time
// event streaming.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - agentName: Name of the registered agent to execute
//   - input: Caller input for this run; nil behaves like an empty input
//
// Returns:
//   - runID: Unique identifier for this run (use with StopRun)
//   - events: Channel streaming lifecycle events as they occur
//   - errs: Channel receiving the terminal error, if any
//   - error: Immediate error if the run cannot be started
//
// Event Streaming:
// Events are streamed in the order the pipeline produces them. The events
// channel is closed when the run reaches a terminal phase; the error channel
// is closed right after. A failed run delivers exactly one error.
//
// Error Handling:
// Three kinds of errors are possible:
//  1. Immediate errors (returned directly): unknown agent, rejected BeforeRun hook
//  2. Terminal errors (via errs): stage failures wrapped in *core.StageError
//  3. Context cancellation: caller timeout or StopRun
//
// Concurrency:
// Runs execute in their own goroutines, bounded by MaxConcurrentRuns. When
// the limit is reached, a new run waits for a slot (respecting ctx).
//
// Example:
//
//	runID, events, errs, err := eng.Run(ctx, "Summarizer", core.Input{"text": doc})
//	if err != nil {
//	    return err
//	}
//	_ = runID
//	for ev := range events {
//	    handleEvent(ev)
//	}
//	if err := <-errs; err != nil {
//	    return err
//	}
func (e *Engine) Run(
	ctx context.Context,
	agentName string,
	input core.Input,
) (string, <-chan core.Event, <-chan error, error) {
	a, ok := e.GetAgent(agentName)
	if !ok {
		return "", nil, nil, fmt.Errorf("agent %s not found", agentName)
	}

	runID := uuid.NewString()

	eventsCh := make(chan core.Event, e.config.EventBufferSize)
	errorsCh := make(chan error, 1)
	agentEmit := make(chan core.Event, e.config.EventBufferSize)

	runContext, cancel := context.WithCancel(ctx)

	agentInfo := core.AgentInfo{Name: a.Name(), Type: fmt.Sprintf("%T", a)}

	runCtx := core.NewRunContext(
		runContext,
		runID,
		agentInfo,
		input,
		e.config.MaxModelCalls,
		agentEmit,
		e.results,
		e.logger,
	)

	// BeforeRun hooks may veto the run before anything starts.
	hookCtx := &HookContext{RunContext: runCtx, Agent: a.Name(), HookType: HookBeforeRun}
	if err := e.hooks.Execute(runContext, HookBeforeRun, hookCtx); err != nil {
		cancel()
		return "", nil, nil, fmt.Errorf("before run hook: %w", err)
	}

	e.runsMu.Lock()
	e.activeRuns[runID] = cancel
	e.runsMu.Unlock()

	e.logger.Debug("engine.run.start", "agent", a.Name(), "run", runID)

	// runErrCh hands the pipeline's terminal error to the forwarding
	// goroutine. Written exactly once, after the emit channel is closed and
	// the run untracked, so callers observing the error see a fully released
	// run.
	runErrCh := make(chan error, 1)

	// Execute the lifecycle in its own goroutine. The explicit cleanup
	// ordering matters: the emit channel closes before the run is untracked,
	// and the terminal error is published last.
	go func() {
		var runErr error

		acquired := false
		if e.sem != nil {
			select {
			case e.sem <- struct{}{}:
				acquired = true
			case <-runContext.Done():
				runErr = runContext.Err()
			}
		}

		if runErr == nil {
			outcome, err := pipeline.Execute(runCtx, a)
			runErr = err

			if err != nil {
				errHookCtx := &HookContext{RunContext: runCtx, Agent: a.Name(), Outcome: outcome, HookType: HookOnError}
				if hookErr := e.hooks.Execute(runContext, HookOnError, errHookCtx); hookErr != nil {
					e.logger.Warn("engine.hook.on_error.failed", "run", runID, "error", hookErr.Error())
				}
			}

			afterCtx := &HookContext{RunContext: runCtx, Agent: a.Name(), Outcome: outcome, HookType: HookAfterRun}
			if hookErr := e.hooks.Execute(runContext, HookAfterRun, afterCtx); hookErr != nil {
				e.logger.Warn("engine.hook.after_run.failed", "run", runID, "error", hookErr.Error())
			}
		}

		if acquired {
			<-e.sem
		}

		close(agentEmit)

		e.runsMu.Lock()
		delete(e.activeRuns, runID)
		e.runsMu.Unlock()

		runErrCh <- runErr
	}()

	// Forward events to the client in a separate goroutine. It owns closing
	// the client-facing channels and merges the pipeline's terminal error
	// with any event hook rejection. The run context is cancelled here, after
	// the drain, so buffered events of a completed run are never dropped.
	go func() {
		defer func() {
			cancel()
			close(eventsCh)
			close(errorsCh)
		}()

		hookErr := e.forwardEvents(runContext, cancel, runID, a.Name(), runCtx, agentEmit, eventsCh)

		runErr := <-runErrCh

		switch {
		case runErr != nil:
			errorsCh <- runErr
		case hookErr != nil:
			errorsCh <- hookErr
		}
	}()

	return runID, eventsCh, errorsCh, nil
}

// forwardEvents relays lifecycle events from the pipeline to the client,
// running OnEvent hooks on each. It returns when the pipeline closes its
// emit channel, the context is cancelled, or a hook rejects an event; in the
// hook case the run context is cancelled so the pipeline cannot block on a
// channel nobody drains, and the rejection is returned.
func (e *Engine) forwardEvents(
	ctx context.Context,
	cancel context.CancelFunc,
	runID string,
	agentName string,
	runCtx *core.RunContext,
	agentEmit <-chan core.Event,
	eventsCh chan<- core.Event,
) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-agentEmit:
			if !ok {
				return nil
			}

			hookCtx := &HookContext{RunContext: runCtx, Event: &ev, Agent: agentName, HookType: HookOnEvent}
			if err := e.hooks.Execute(ctx, HookOnEvent, hookCtx); err != nil {
				cancel()
				return fmt.Errorf("event hook: %w", err)
			}

			select {
			case <-ctx.Done():
				return nil
			case eventsCh <- ev:
				e.logger.Debug("engine.event.delivered", "run", runID, "event_id", ev.ID, "type", string(ev.Type))
			}
		}
	}
}

// Report summarizes a synchronous run: its terminal phase, the result (for
// completed runs), the failing stage and error (for failed runs), and every
// lifecycle event collected along the way.
type Report struct {
	// RunID is the unique identifier assigned to this run.
	RunID string

	// Agent names the agent that was executed.
	Agent string

	// Phase is the terminal phase the run reached.
	Phase core.Phase

	// FailedStage names the stage that failed. Zero unless Phase is Failed.
	FailedStage core.Phase

	// Result is the parsed result of a completed run.
	Result any

	// Err is the terminal error of a failed run.
	Err error

	// Events are the lifecycle events in emission order.
	Events []core.Event
}

// Failed reports whether the run ended in the Failed phase.
func (r *Report) Failed() bool { return r.Phase == core.PhaseFailed }

// summarize derives the terminal fields from the collected events.
func (r *Report) summarize() {
	for i := len(r.Events) - 1; i >= 0; i-- {
		ev := r.Events[i]
		if !ev.IsTerminal() {
			continue
		}

		r.Phase = ev.Phase
		if ev.FailedStage != nil {
			r.FailedStage = *ev.FailedStage
		}
		if ev.Type == core.EventRunCompleted {
			r.Result = ev.Result
		}
		return
	}

	if r.Err != nil {
		r.Phase = core.PhaseFailed
	}
}

// RunSync executes an agent synchronously and returns a report of the run.
//
// This is a convenience wrapper around Run that blocks until the run reaches
// a terminal phase, collecting all lifecycle events along the way. It is the
// natural entry point for request-response use where streaming is not
// needed.
//
// The returned Report is non-nil whenever the run started, including failed
// runs; inspect Report.Phase, Report.FailedStage and Report.Result. The
// error return mirrors Report.Err for failed runs so callers can use either.
//
// Example:
//
//	report, err := eng.RunSync(ctx, "Summarizer", core.Input{"text": doc})
//	if err != nil {
//	    var stageErr *core.StageError
//	    if errors.As(err, &stageErr) {
//	        log.Printf("failed during %s: %v", stageErr.Stage, stageErr.Err)
//	    }
//	    return err
//	}
//	use(report.Result)
func (e *Engine) RunSync(
	ctx context.Context,
	agentName string,
	input core.Input,
) (*Report, error) {
	runID, eventsCh, errorsCh, err := e.Run(ctx, agentName, input)
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: runID, Agent: agentName}

	var runErr error
	events, errs := eventsCh, errorsCh

	for events != nil {
		select {
		case <-ctx.Done():
			report.Err = ctx.Err()
			report.summarize()
			return report, ctx.Err()

		case err, ok := <-errs:
			if ok && err != nil {
				runErr = err
			}
			// Keep collecting events after the terminal error arrives.
			errs = nil

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			report.Events = append(report.Events, ev)
		}
	}

	if errs != nil {
		if err, ok := <-errs; ok && err != nil {
			runErr = err
		}
	}

	report.Err = runErr
	report.summarize()

	if runErr != nil {
		return report, runErr
	}
	return report, nil
}

// StopRun forcibly terminates a specific run by its ID.
//
// The run's context is cancelled: in-flight model calls are interrupted, the
// run's goroutines terminate, and its channels close. Returns an error when
// no run with the given ID is active (including runs that already finished).
//
// Thread-safe; the cancellation takes effect immediately.
func (e *Engine) StopRun(runID string) error {
	e.runsMu.Lock()
	cancel, exists := e.activeRuns[runID]
	e.runsMu.Unlock()

	if !exists {
		return fmt.Errorf("run %s not found", runID)
	}

	cancel()
	return nil
}

// GetResult retrieves the result persisted for a given agent run.
//
// Only runs whose SaveResult stage actually persisted something (the base
// stage does not) have results here. Delegates to the engine's result store.
func (e *Engine) GetResult(agentName, runID string) (any, error) {
	return e.results.Get(agentName, runID)
}

// ListResults returns all results persisted for an agent in save order.
func (e *Engine) ListResults(agentName string) ([]any, error) {
	return e.results.List(agentName)
}
