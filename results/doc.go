// Package results provides the in-process reference implementation of
// core.ResultStore, the persistence collaborator behind SaveResult overrides.
//
// InMemoryStore keeps parsed results grouped per agent in save order, which is
// what tests, examples and single-process prototypes need. Durable backends
// (database, object storage, files) are deliberately not implemented here:
// the lifecycle only ever sees the core.ResultStore interface, so callers
// inject whatever persistence they run in production. Keep such an
// implementation's configuration explicit via a small Config struct and its
// dependency surface narrow.
package results
