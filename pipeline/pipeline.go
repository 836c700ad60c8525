package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tpanarchist/AgentForge/core"
)

// Outcome describes a run that has reached a terminal phase.
//
// Phase is either PhaseCompleted or PhaseFailed. On failure, FailedStage
// names the lifecycle stage that raised the error and Err carries a
// *core.StageError wrapping the stage's failure. On success, Result holds
// whatever the processing stage produced, exactly as it was handed to
// SaveResult.
type Outcome struct {
	RunID       string
	Agent       string
	Phase       core.Phase
	FailedStage core.Phase
	Prompt      *core.Prompt
	Result      any
	Err         error
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Failed reports whether the run ended in the Failed phase.
func (o *Outcome) Failed() bool { return o.Phase == core.PhaseFailed }

// machine tracks the run's phase and rejects transitions the lifecycle does
// not allow: skipping forward, moving backward, or leaving a terminal phase.
type machine struct {
	phase core.Phase
}

func (m *machine) advance(next core.Phase) error {
	if !m.phase.CanTransition(next) {
		return fmt.Errorf("invalid phase transition %s -> %s", m.phase, next)
	}
	m.phase = next
	return nil
}

// Execute runs one agent through the full lifecycle and returns its outcome.
//
// The stage order is fixed: PreparePrompt, then Process on the run's input,
// then SaveResult with the unmodified processing result. A stage error moves
// the run to the Failed phase immediately; later stages do not execute and
// nothing is retried. SaveResult is invoked exactly once per successful
// processing stage and never after a failure.
//
// Stage errors come back wrapped in a *core.StageError naming the failing
// stage. Processing errors additionally carry the input (as a
// *core.ProcessingError) and persistence errors the result (as a
// *core.SaveError); errors already of those types pass through unwrapped.
// The same error is recorded on the returned Outcome.
//
// Event emission is best effort: a missing or saturated event channel never
// changes the run's outcome.
func Execute(runCtx *core.RunContext, a core.Agent) (*Outcome, error) {
	name := a.Name()

	m := machine{phase: core.PhaseCreated}
	out := &Outcome{
		RunID:     runCtx.RunID,
		Agent:     name,
		StartedAt: time.Now().UTC(),
	}

	runCtx.LogDebug("pipeline.run.start", "agent", name, "run", runCtx.RunID)
	_ = runCtx.EmitEvent(core.NewRunStartedEvent(runCtx.RunID, name))

	// Stage 1: resolve persona and prompt.
	if err := m.advance(core.PhasePreparingPrompt); err != nil {
		return fail(runCtx, out, &m, core.PhasePreparingPrompt, err)
	}
	_ = runCtx.EmitEvent(core.NewStageStartedEvent(runCtx.RunID, name, core.PhasePreparingPrompt))

	prompt, err := a.PreparePrompt(runCtx)
	if err == nil && prompt == nil {
		// A stage that returns neither prompt nor error has nothing for the
		// rest of the run to work with.
		err = core.ErrPromptUnavailable
	}
	if err != nil {
		return fail(runCtx, out, &m, core.PhasePreparingPrompt, err)
	}

	runCtx.Prompt = prompt
	out.Prompt = prompt

	runCtx.LogDebug("pipeline.prompt.prepared", "agent", name, "persona", prompt.Persona)
	_ = runCtx.EmitEvent(core.NewPromptPreparedEvent(runCtx.RunID, name, prompt))

	// Stage 2: process the run input.
	if err := m.advance(core.PhaseProcessingData); err != nil {
		return fail(runCtx, out, &m, core.PhaseProcessingData, err)
	}
	_ = runCtx.EmitEvent(core.NewStageStartedEvent(runCtx.RunID, name, core.PhaseProcessingData))

	result, err := a.Process(runCtx, runCtx.Input)
	if err != nil {
		return fail(runCtx, out, &m, core.PhaseProcessingData, normalizeProcessing(runCtx.Input, err))
	}

	out.Result = result

	_ = runCtx.EmitEvent(core.NewStageCompletedEvent(runCtx.RunID, name, core.PhaseProcessingData))

	// Stage 3: hand the result to the agent's persistence stage.
	if err := m.advance(core.PhaseSavingResult); err != nil {
		return fail(runCtx, out, &m, core.PhaseSavingResult, err)
	}
	_ = runCtx.EmitEvent(core.NewStageStartedEvent(runCtx.RunID, name, core.PhaseSavingResult))

	if err := a.SaveResult(runCtx, result); err != nil {
		return fail(runCtx, out, &m, core.PhaseSavingResult, normalizeSave(result, err))
	}

	_ = runCtx.EmitEvent(core.NewResultSavedEvent(runCtx.RunID, name, result))

	if err := m.advance(core.PhaseCompleted); err != nil {
		return fail(runCtx, out, &m, core.PhaseSavingResult, err)
	}

	out.Phase = core.PhaseCompleted
	out.FinishedAt = time.Now().UTC()

	runCtx.LogDebug("pipeline.run.complete", "agent", name, "run", runCtx.RunID)
	_ = runCtx.EmitEvent(core.NewRunCompletedEvent(runCtx.RunID, name, result))

	return out, nil
}

// fail transitions the run to the Failed phase and finalizes the outcome.
func fail(runCtx *core.RunContext, out *Outcome, m *machine, stage core.Phase, err error) (*Outcome, error) {
	wrapped := &core.StageError{Stage: stage, Err: err}

	_ = m.advance(core.PhaseFailed)

	out.Phase = core.PhaseFailed
	out.FailedStage = stage
	out.Err = wrapped
	out.FinishedAt = time.Now().UTC()

	runCtx.LogError(
		"pipeline.run.failed",
		"agent", out.Agent,
		"run", runCtx.RunID,
		"stage", stage.String(),
		"error", err.Error(),
	)
	_ = runCtx.EmitEvent(core.NewRunFailedEvent(runCtx.RunID, out.Agent, stage, wrapped))

	return out, wrapped
}

// normalizeProcessing guarantees processing failures carry the input that
// provoked them.
func normalizeProcessing(input core.Input, err error) error {
	var perr *core.ProcessingError
	if errors.As(err, &perr) {
		return err
	}
	return core.NewProcessingError(input, err)
}

// normalizeSave guarantees persistence failures carry the result that could
// not be saved.
func normalizeSave(result any, err error) error {
	var serr *core.SaveError
	if errors.As(err, &serr) {
		return err
	}
	return core.NewSaveError(result, err)
}
