package core

import (
	"context"
)

type testLogger struct{}

func (l testLogger) Debug(string, ...interface{}) {}
func (l testLogger) Info(string, ...interface{})  {}
func (l testLogger) Warn(string, ...interface{})  {}
func (l testLogger) Error(string, ...interface{}) {}

type mockResultStore struct {
	saved map[string][]any
	byRun map[string]map[string]any
	fail  error
}

func (s *mockResultStore) Save(agent, runID string, result any) error {
	if s.fail != nil {
		return s.fail
	}
	if s.saved == nil {
		s.saved = map[string][]any{}
		s.byRun = map[string]map[string]any{}
	}
	s.saved[agent] = append(s.saved[agent], result)
	if _, ok := s.byRun[agent]; !ok {
		s.byRun[agent] = map[string]any{}
	}
	s.byRun[agent][runID] = result
	return nil
}

func (s *mockResultStore) Get(agent, runID string) (any, error) {
	if m, ok := s.byRun[agent]; ok {
		return m[runID], nil
	}
	return nil, nil
}

func (s *mockResultStore) List(agent string) ([]any, error) {
	res := append([]any{}, s.saved[agent]...)
	return res, nil
}

func (s *mockResultStore) Delete(agent, runID string) error { return nil }

func newRunContextForTest() (*RunContext, chan Event) {
	emit := make(chan Event, 5)
	store := &mockResultStore{}
	input := Input{"text": "hello"}
	rc := NewRunContext(context.Background(), "run-x", AgentInfo{Name: "Agent1", Type: "test"}, input, 0, emit, store, testLogger{})
	return rc, emit
}
