package results

import "sync"

// entry pairs a run identifier with its saved result, preserving save order.
type entry struct {
	runID  string
	result any
}

// InMemoryStore is a trivial in-process ResultStore implementation useful for
// tests, examples and single-process prototypes. It keeps all results in an
// agent-keyed ordered list guarded by an RWMutex, so List returns an agent's
// results in the order they were saved (the append-to-a-list persistence
// shape SaveResult overrides typically want).
//
// Results are stored as handed in: the lifecycle contract passes parsed
// results through unmodified, and this store honors that by never copying or
// transforming them. Callers that share mutable results across goroutines
// must synchronize themselves.
//
// This implementation is intentionally minimal; it does not enforce retention
// limits or eviction. For production, prefer a durable implementation that
// can scale and survive process restarts.
type InMemoryStore struct {
	mu      sync.RWMutex
	results map[string][]entry // agent -> ordered saved results
}

// NewInMemoryStore returns an empty in-memory result store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{results: make(map[string][]entry)}
}

// Save appends the result for the given agent, indexed by run id. Saving
// twice under one run id overwrites the earlier result in place.
func (s *InMemoryStore) Save(agent, runID string, result any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.results[agent]
	for i := range list {
		if list[i].runID == runID {
			list[i].result = result
			return nil
		}
	}
	s.results[agent] = append(list, entry{runID: runID, result: result})

	return nil
}

// Get returns the result saved for the agent / run pair or ErrNotFound.
func (s *InMemoryStore) Get(agent, runID string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.results[agent] {
		if e.runID == runID {
			return e.result, nil
		}
	}

	return nil, ErrNotFound
}

// List returns the agent's results in save order. The slice is a snapshot
// and safe for caller mutation.
func (s *InMemoryStore) List(agent string) ([]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.results[agent]
	out := make([]any, 0, len(list))
	for _, e := range list {
		out = append(out, e.result)
	}

	return out, nil
}

// Delete removes the result for the agent / run pair or returns ErrNotFound.
func (s *InMemoryStore) Delete(agent, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.results[agent]
	if !ok {
		return ErrNotFound
	}
	for i, e := range list {
		if e.runID == runID {
			s.results[agent] = append(list[:i], list[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
