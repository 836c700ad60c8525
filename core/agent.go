package core

// Agent defines the core interface that all agents in AgentForge must implement.
//
// Agents are the primary processing units in the AgentForge framework. An agent
// exposes exactly the three lifecycle stages of a pipeline run: prompt
// preparation, data processing and result persistence. Orchestration of the
// stages is deliberately NOT part of this interface: the pipeline package
// sequences them, so a variant can substitute individual stages without ever
// touching (or being able to touch) the run order.
//
// Variants embed agent.BaseAgent to inherit default behavior for any stage they
// do not override. A caller holding an Agent can run any variant uniformly
// regardless of which stages are overridden.
//
// Implementations must:
//   - Return a non-nil Prompt or an error from PreparePrompt, never (nil, nil)
//   - Not fail Process on well-formed input unless domain logic demands it,
//     reporting failures with the original input attached (ProcessingError)
//   - Keep SaveResult safe to call once per run with the unmodified Process
//     result
type Agent interface {
	Name() string
	Description() string
	PreparePrompt(rc *RunContext) (*Prompt, error)
	Process(rc *RunContext, input Input) (any, error)
	SaveResult(rc *RunContext, result any) error
}

// AgentInfo carries identifying details about an agent used in contexts & events.
// Name is the external identifier; Type categorizes implementation (e.g. "base", "model").
type AgentInfo struct{ Name, Type string }
