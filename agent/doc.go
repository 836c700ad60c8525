// Package agent contains first-class agent implementations and supporting
// utilities for building persona-driven processing units in AgentForge. The
// package focuses on three concerns:
//
//  1. Base lifecycle stages + persona resolution (BaseAgent)
//  2. Per-stage customization without subclassing ceremony (FuncAgent)
//  3. Model-centric text generation agent (ModelAgent)
//
// Design principles:
//   - Minimal hidden global state – explicit wiring via Engine/RunContext
//   - Uniform lifecycle – every agent exposes the same three stages
//     (PreparePrompt, Process, SaveResult); orchestration order lives in the
//     pipeline package and is not overridable here
//   - Extensibility – embed BaseAgent; override only the stages that differ
//
// Execution Model:
//   - Each stage receives a *core.RunContext (one per run)
//   - BaseAgent resolves its persona through a persona.Resolver each run
//   - ModelAgent integrates with the model package to generate responses
//
// The package intentionally keeps persistence, model specifics and tool
// registry abstractions in their respective packages to avoid cyclic deps.
package agent
