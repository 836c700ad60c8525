// Package core provides the foundational domain types, interfaces and execution
// contexts used by AgentForge. It defines the core abstractions for:
//
//   - Agents (the three-stage lifecycle contract every variant implements)
//   - Runs (phase machine, immutable lifecycle events)
//   - RunContext (scoped per-run execution state)
//   - Pluggable result persistence via the ResultStore interface
//
// The package intentionally keeps implementation concerns (persistence, run
// orchestration, concrete agents) out of scope, exposing small interfaces to
// enable custom backends and extensions. All exported identifiers include
// concise documentation to aid discoverability and external consumption.
package core
