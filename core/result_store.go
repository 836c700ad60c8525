package core

// ResultStore defines the interface for parsed-result persistence. The base
// lifecycle never requires one (the default SaveResult behavior is a no-op),
// but SaveResult overrides that want durable output persist through it via
// RunContext.Persist. Implementations should be thread-safe and keep results
// grouped per agent in save order. Short method names (Save/Get/List/Delete)
// mirror other store interfaces for consistency.
type ResultStore interface {
	Save(agent, runID string, result any) error
	Get(agent, runID string) (any, error)
	List(agent string) ([]any, error)
	Delete(agent, runID string) error
}
