package core

import "testing"

func TestPhase_ForwardTransitions(t *testing.T) {
	order := []Phase{PhaseCreated, PhasePreparingPrompt, PhaseProcessingData, PhaseSavingResult, PhaseCompleted}
	for i := 0; i < len(order)-1; i++ {
		if !order[i].CanTransition(order[i+1]) {
			t.Errorf("Expected %s -> %s to be legal", order[i], order[i+1])
		}
	}
}

func TestPhase_NoSkippingOrReentry(t *testing.T) {
	if PhaseCreated.CanTransition(PhaseProcessingData) {
		t.Error("Skipping the prompt stage should be illegal")
	}
	if PhaseProcessingData.CanTransition(PhasePreparingPrompt) {
		t.Error("Moving backwards should be illegal")
	}
	if PhaseProcessingData.CanTransition(PhaseProcessingData) {
		t.Error("Re-entering a phase should be illegal")
	}
}

func TestPhase_FailureReachableFromNonTerminal(t *testing.T) {
	for _, p := range []Phase{PhaseCreated, PhasePreparingPrompt, PhaseProcessingData, PhaseSavingResult} {
		if !p.CanTransition(PhaseFailed) {
			t.Errorf("Expected %s -> failed to be legal", p)
		}
	}
}

func TestPhase_TerminalIsFinal(t *testing.T) {
	for _, p := range []Phase{PhaseCompleted, PhaseFailed} {
		if !p.Terminal() {
			t.Errorf("Expected %s to be terminal", p)
		}
		for _, to := range []Phase{PhaseCreated, PhasePreparingPrompt, PhaseProcessingData, PhaseSavingResult, PhaseCompleted, PhaseFailed} {
			if p.CanTransition(to) {
				t.Errorf("Terminal phase %s must not transition to %s", p, to)
			}
		}
	}
}
