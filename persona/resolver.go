package persona

// Resolver maps an agent name to its persona definition. The base contract is
// exact-name matching with no fuzzy or hierarchical fallback; resolution is a
// capability, so specialized resolvers may add caching or fallback layers as
// long as the same name keeps resolving to the same definition within a
// process run.
type Resolver interface {
	Resolve(name string) (Definition, error)
}

// Func is a functional adapter to allow ordinary functions to be used as Resolvers.
type Func func(name string) (Definition, error)

// Resolve implements Resolver.
func (f Func) Resolve(name string) (Definition, error) { return f(name) }

// StoreResolver resolves names against an injected Store. It is the base
// resolver: a pure lookup, reporting absence as NotFoundError rather than
// substituting any default.
type StoreResolver struct {
	store Store
}

// NewStoreResolver creates a resolver backed by the given store.
func NewStoreResolver(store Store) *StoreResolver {
	return &StoreResolver{store: store}
}

// Resolve returns the definition registered under exactly this name.
func (r *StoreResolver) Resolve(name string) (Definition, error) {
	if r.store == nil {
		return Definition{}, &NotFoundError{Name: name}
	}

	def, ok := r.store.Lookup(name)
	if !ok {
		return Definition{}, &NotFoundError{Name: name}
	}

	return def, nil
}

// Static builds a resolver over a fixed name → definition set without an
// explicit store. Useful in tests and small programs.
func Static(defs ...Definition) Resolver {
	store := NewInMemoryStore()
	for _, def := range defs {
		// Validation failures surface on first resolve instead.
		_ = store.Register(def)
	}

	return NewStoreResolver(store)
}
