package persona

import (
	"fmt"
	"maps"
	"sync"
)

// Definition is the content associated with a persona name: the prompt
// template text plus optional role, constraints and metadata. Definitions are
// owned by persona storage; resolvers and agents only read them.
type Definition struct {
	Name        string            `yaml:"name" json:"name"`
	Role        string            `yaml:"role,omitempty" json:"role,omitempty"`
	Prompt      string            `yaml:"prompt" json:"prompt"`
	Constraints []string          `yaml:"constraints,omitempty" json:"constraints,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Validate reports whether the definition is structurally usable. A name is
// the only hard requirement; an empty prompt is valid persona content.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("persona definition missing name")
	}
	return nil
}

// Clone returns a deep copy safe for independent mutation.
func (d Definition) Clone() Definition {
	c := Definition{Name: d.Name, Role: d.Role, Prompt: d.Prompt}
	if len(d.Constraints) > 0 {
		c.Constraints = append([]string{}, d.Constraints...)
	}
	if len(d.Metadata) > 0 {
		c.Metadata = make(map[string]string, len(d.Metadata))
		maps.Copy(c.Metadata, d.Metadata)
	}
	return c
}

// Store is the persona storage collaborator: a name-keyed read surface over
// persona content. Implementations must be safe for concurrent lookups by
// multiple agents; if the backing content is mutable at runtime, the store
// (not the agent) defines the consistency contract.
type Store interface {
	Lookup(name string) (Definition, bool)
}

// InMemoryStore is a trivial in-process Store implementation useful for
// tests, examples and single-process prototypes. It keeps definitions in a
// name-keyed map guarded by an RWMutex and hands out deep copies so callers
// can never mutate stored content.
//
// It is typically populated once at startup (explicit registration or YAML
// loading via LoadDir) and treated as read-only afterwards.
type InMemoryStore struct {
	mu       sync.RWMutex
	personas map[string]Definition
}

// NewInMemoryStore returns an empty in-memory persona store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{personas: make(map[string]Definition)}
}

// Register stores (or overwrites) the definition under its name.
func (s *InMemoryStore) Register(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.personas[def.Name] = def.Clone()

	return nil
}

// RegisterAll stores every definition, stopping at the first invalid one.
func (s *InMemoryStore) RegisterAll(defs ...Definition) error {
	for _, def := range defs {
		if err := s.Register(def); err != nil {
			return err
		}
	}

	return nil
}

// Lookup returns a copy of the definition for the exact name, if present.
func (s *InMemoryStore) Lookup(name string) (Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.personas[name]
	if !ok {
		return Definition{}, false
	}

	return def.Clone(), true
}

// Names returns a snapshot of the registered persona names.
func (s *InMemoryStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.personas))
	for name := range s.personas {
		names = append(names, name)
	}

	return names
}
