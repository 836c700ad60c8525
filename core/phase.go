package core

// Phase identifies where a pipeline run currently is in its lifecycle.
//
// A run moves strictly forward through
//
//	Created → PreparingPrompt → ProcessingData → SavingResult → Completed
//
// with PhaseFailed reachable from any non-terminal phase. No phase is ever
// re-entered; a new run starts a fresh phase machine.
type Phase string

const (
	// PhaseCreated is the initial phase before any stage has started.
	PhaseCreated Phase = "created"
	// PhasePreparingPrompt covers the prompt preparation stage.
	PhasePreparingPrompt Phase = "preparing_prompt"
	// PhaseProcessingData covers the data processing stage.
	PhaseProcessingData Phase = "processing_data"
	// PhaseSavingResult covers the result persistence stage.
	PhaseSavingResult Phase = "saving_result"
	// PhaseCompleted is the successful terminal phase.
	PhaseCompleted Phase = "completed"
	// PhaseFailed is the terminal phase for a run aborted by a stage failure.
	PhaseFailed Phase = "failed"
)

// String returns the phase identifier.
func (p Phase) String() string { return string(p) }

// Terminal reports whether the phase ends a run.
func (p Phase) Terminal() bool { return p == PhaseCompleted || p == PhaseFailed }

// next maps each phase to its single forward successor.
var next = map[Phase]Phase{
	PhaseCreated:         PhasePreparingPrompt,
	PhasePreparingPrompt: PhaseProcessingData,
	PhaseProcessingData:  PhaseSavingResult,
	PhaseSavingResult:    PhaseCompleted,
}

// CanTransition reports whether moving from p to to is a legal lifecycle
// transition: the single forward step, or entering PhaseFailed from any
// non-terminal phase.
func (p Phase) CanTransition(to Phase) bool {
	if p.Terminal() {
		return false
	}
	if to == PhaseFailed {
		return true
	}
	return next[p] == to
}
