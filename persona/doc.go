// Package persona implements the persona resolution protocol that binds agent
// names to prompt-bearing persona definitions.
//
// A Definition is the unit of persona content: prompt template text plus
// optional role, constraints and metadata. Definitions live in a name-keyed
// Store, the persona storage collaborator callers inject; InMemoryStore is
// the in-process reference implementation, typically seeded at startup from
// YAML files via LoadDir.
//
// The Resolver interface maps an agent name to its Definition. Resolution is
// a capability, not a fixed algorithm: StoreResolver performs the base
// exact-name lookup, and specialized resolvers may layer caching or fallback
// on top. Absence is always reported through ErrNotFound: an agent with no
// persona has no valid prompt, so resolution failure must reach the caller
// rather than being papered over with a default.
package persona
