// Package engine implements the run orchestration layer for AgentForge.
//
// The Engine is the coordination hub that takes registered agents and
// executes them through the fixed lifecycle pipeline, managing run identity,
// concurrency limits, event delivery and result access. It bridges the gap
// between high-level AgentForge operations and the per-stage agent
// implementations.
//
// # Core Responsibilities
//
// Agent Management:
//   - Thread-safe agent registry with name-based lookup
//   - Dynamic agent registration and replacement
//
// Run Orchestration:
//   - Asynchronous (Run) and synchronous (RunSync) execution patterns
//   - Bounded concurrency with configurable limits
//   - Context-aware cancellation via StopRun
//   - Graceful resource cleanup and error propagation
//
// Event Processing:
//   - Real-time lifecycle event streaming with configurable buffering
//   - Hook execution for cross-cutting concerns
//
// Service Integration:
//   - Result store coordination for persisted agent output
//   - Structured logging through the logging package
//
// # Architecture
//
// The engine follows a layered architecture with clear separation of concerns:
//
//	┌─────────────────────────────────────────────────────────┐
//	│                    Client Layer                         │
//	├─────────────────────────────────────────────────────────┤
//	│                  Engine Interface                       │
//	│  ┌─────────────┐ ┌─────────────┐ ┌─────────────────┐    │
//	│  │    Run      │ │   RunSync   │ │   Register      │    │
//	│  └─────────────┘ └─────────────┘ └─────────────────┘    │
//	├─────────────────────────────────────────────────────────┤
//	│                 Orchestration Layer                     │
//	│  ┌─────────────┐ ┌─────────────┐ ┌─────────────────┐    │
//	│  │   Events    │ │    Hook     │ │  Concurrency    │    │
//	│  │ Forwarding  │ │   Manager   │ │   Control       │    │
//	│  └─────────────┘ └─────────────┘ └─────────────────┘    │
//	├─────────────────────────────────────────────────────────┤
//	│                  Lifecycle Layer                        │
//	│  ┌─────────────┐ ┌─────────────┐ ┌─────────────────┐    │
//	│  │  Pipeline   │ │   Persona   │ │     Result      │    │
//	│  │  Execute    │ │  Resolution │ │     Store       │    │
//	│  └─────────────┘ └─────────────┘ └─────────────────┘    │
//	└─────────────────────────────────────────────────────────┘
//
// # Usage Patterns
//
// Basic setup:
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Logger = logger
//	    o.Results = myResultStore
//	})
//
// Agent registration:
//
//	summarizer := agent.NewFuncAgent("Summarizer", ...)
//	eng.Register(summarizer)
//
// Streaming execution:
//
//	runID, events, errs, err := eng.Run(ctx, "Summarizer", input)
//	if err != nil {
//	    return err
//	}
//	_ = runID // use for StopRun or correlation
//	for event := range events {
//	    handleEvent(event)
//	}
//	if err := <-errs; err != nil {
//	    return err
//	}
//
// Synchronous execution:
//
//	report, err := eng.RunSync(ctx, "Summarizer", input)
//	if err != nil {
//	    return err
//	}
//	use(report.Result)
//
// # Concurrency Model
//
// Runs execute in independent goroutines with isolated run contexts, so a
// single engine instance can drive many agents (or many runs of one agent)
// simultaneously. MaxConcurrentRuns bounds how many pipelines execute at
// once; additional runs queue until a slot frees. Each run's events flow
// through its own channel pair, keeping ordering deterministic per run.
//
// # Error Handling
//
//   - Immediate errors: returned directly when a run cannot start
//   - Terminal errors: delivered once via the run's error channel
//   - Context cancellation: handled gracefully with proper cleanup
//
// The engine deliberately stays out of stage semantics: what happens inside
// PreparePrompt, Process and SaveResult belongs to agents and the pipeline
// package. The engine's job is making many such runs safe, observable and
// addressable.
package engine
