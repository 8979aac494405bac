// Package union merges an ordered list of resource stores into one logical
// store.
//
// A union resolves a path by asking every member store for it and wrapping
// the per-member handles in a single composite resource. Reads search the
// members in declared order, rotated to start at the index where content
// was last found, so that stable content is usually hit on the first probe.
// A member that does not have the content is skipped; a member that fails
// is not — backend errors surface immediately rather than being masked by
// silent failover.
//
// Union stores are interned through a Registry: one instance per distinct
// ordered member list, so repeated composition of the same stores reuses
// one store. Composite resources themselves are rebuilt on every
// resolution and carry only per-instance state.
//
// Since a union store satisfies resources.Store, unions can be members of
// other unions.
package union
