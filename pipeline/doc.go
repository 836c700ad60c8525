// Package pipeline drives the agent lifecycle for AgentForge runs.
//
// The pipeline owns the execution order: prompt preparation, data
// processing, then result persistence, with a terminal Completed or Failed
// phase. Agents customize what happens inside a stage by implementing the
// core.Agent interface; they cannot reorder, skip or re-enter stages because
// the sequence lives here rather than on the agent. This design keeps every
// agent's externally observable behavior uniform regardless of how heavily
// its stages are customized.
//
// Execute is synchronous: one call runs one agent over one input to its
// terminal phase. Lifecycle events are emitted along the way for callers
// that subscribe via the run context's event channel.
package pipeline
