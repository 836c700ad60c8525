package core

import (
	"context"
	"errors"
	"testing"
)

func TestRunContext_EmitEvent(t *testing.T) {
	rc, emitCh := newRunContextForTest()
	ev := NewStageStartedEvent(rc.RunID, rc.Agent.Name, PhasePreparingPrompt)
	if err := rc.EmitEvent(ev); err != nil {
		t.Fatalf("EmitEvent error: %v", err)
	}
	received := <-emitCh
	if received.ID != ev.ID || received.Phase != PhasePreparingPrompt {
		t.Fatalf("Unexpected event received: %+v", received)
	}
}

func TestRunContext_EmitEventWithoutChannel(t *testing.T) {
	rc, _ := newRunContextForTest()
	rc.Emit = nil
	if err := rc.EmitEvent(NewRunStartedEvent(rc.RunID, rc.Agent.Name)); err != nil {
		t.Fatalf("EmitEvent without channel should be a no-op, got %v", err)
	}
}

func TestRunContext_PersistAndList(t *testing.T) {
	rc, _ := newRunContextForTest()
	if err := rc.Persist(map[string]any{"summary": "hello worl"}); err != nil {
		t.Fatalf("Persist error: %v", err)
	}
	results, err := rc.ListResults()
	if err != nil {
		t.Fatalf("ListResults error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	got, err := rc.LoadResult(rc.RunID)
	if err != nil {
		t.Fatalf("LoadResult error: %v", err)
	}
	if got.(map[string]any)["summary"].(string) != "hello worl" {
		t.Fatalf("Unexpected persisted result: %+v", got)
	}
}

func TestRunContext_PersistWithoutStore(t *testing.T) {
	rc, _ := newRunContextForTest()
	rc.Results = nil
	if err := rc.Persist("x"); err == nil {
		t.Fatal("Expected error when result store not configured")
	}
	results, err := rc.ListResults()
	if err != nil || len(results) != 0 {
		t.Fatalf("ListResults without store should return empty: %v %v", results, err)
	}
}

func TestRunContext_InputIsolation(t *testing.T) {
	emit := make(chan Event, 1)
	callerInput := Input{"text": "hello"}
	rc := NewRunContext(context.Background(), "run-1", AgentInfo{Name: "A"}, callerInput, 0, emit, nil, testLogger{})
	rc.Input["text"] = "mutated"
	if callerInput["text"].(string) != "hello" {
		t.Error("RunContext must not share the caller's input map")
	}
}

func TestRunContext_CloneIsolation(t *testing.T) {
	rc, _ := newRunContextForTest()
	rc.SetValue("a", 1)
	clone := rc.Clone()
	if clone.Limiter != rc.Limiter {
		t.Error("Limiter pointer should be shared")
	}
	clone.SetValue("b", 2)
	if _, exists := rc.Values["b"]; exists {
		t.Error("Original should not have clone's new value")
	}
	if v, _ := clone.GetValue("a"); v.(int) != 1 {
		t.Error("Clone missing original value")
	}
	clone.Input["text"] = "changed"
	if rc.Input["text"].(string) != "hello" {
		t.Error("Clone input should be isolated")
	}
}

func TestRunContext_RenderPrompt(t *testing.T) {
	rc, _ := newRunContextForTest()
	if _, err := rc.RenderPrompt(); !errors.Is(err, ErrPromptUnavailable) {
		t.Fatalf("Expected ErrPromptUnavailable before preparation, got %v", err)
	}

	rc.Prompt = NewPrompt("Echo", "Echo: {{.text}}")
	text, err := rc.RenderPrompt()
	if err != nil {
		t.Fatalf("RenderPrompt error: %v", err)
	}
	if text != "Echo: hello" {
		t.Fatalf("Unexpected rendered prompt: %q", text)
	}
}

func TestRunContext_RenderPromptPassthrough(t *testing.T) {
	rc, _ := newRunContextForTest()
	rc.Prompt = NewPrompt("Summarizer", "Summarize: {text}")
	text, err := rc.RenderPrompt()
	if err != nil {
		t.Fatalf("RenderPrompt error: %v", err)
	}
	if text != "Summarize: {text}" {
		t.Fatalf("Plain prompt should pass through verbatim, got %q", text)
	}
}
