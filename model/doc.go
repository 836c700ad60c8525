// Package model defines the provider-agnostic abstractions and concrete
// helpers for interacting with language / reasoning models inside AgentForge.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Mirror the system + user prompt split model-backed agents produce
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so higher layers (agents, the pipeline) remain decoupled from
// vendor SDKs. Generation is synchronous: a pipeline stage blocks on its
// model call, so Generate returns one final response rather than a stream.
package model
