package union

import (
	"errors"
	"iter"
	"strings"
	"sync"

	"resource-union/resources"
)

// ErrNoStores is returned when a union is requested over an empty store list.
var ErrNoStores = errors.New("at least one store required")

// Registry interns union stores by their ordered member list. One Store
// exists per distinct list for the lifetime of the registry; entries are
// never evicted. The zero value is not usable, call NewRegistry.
//
// Two lists intern to the same Store only when they hold the same member
// stores in the same order. Lists equal as sets but ordered differently are
// distinct unions, since member order is the fallback search order.
type Registry struct {
	mu      sync.Mutex
	entries []*Store
}

// NewRegistry creates an empty registry. The composition root typically
// owns a single registry for the process.
func NewRegistry() *Registry {
	return &Registry{}
}

// Union returns the interned union over the given stores, creating it if
// this exact ordered list has not been seen before.
func (reg *Registry) Union(stores ...resources.Store) (*Store, error) {
	list := make([]resources.Store, len(stores))
	copy(list, stores)
	return reg.intern(list)
}

// UnionSeq is like Union but collects the member stores from a sequence.
// The sequence is consumed exactly once.
func (reg *Registry) UnionSeq(stores iter.Seq[resources.Store]) (*Store, error) {
	var list []resources.Store
	for store := range stores {
		list = append(list, store)
	}
	return reg.intern(list)
}

func (reg *Registry) intern(stores []resources.Store) (*Store, error) {
	if len(stores) == 0 {
		return nil, ErrNoStores
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, existing := range reg.entries {
		if equalStores(existing.stores, stores) {
			return existing, nil
		}
	}
	store := &Store{stores: stores}
	reg.entries = append(reg.entries, store)
	return store, nil
}

// equalStores reports element-wise identity of two ordered store lists.
func equalStores(a, b []resources.Store) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Store combines an ordered list of member stores into a single logical
// store. Resolution asks every member for the same path and wraps the
// results in a Resource that falls back across members by existence.
type Store struct {
	stores []resources.Store
}

// Stores returns a copy of the ordered member list.
func (s *Store) Stores() []resources.Store {
	stores := make([]resources.Store, len(s.stores))
	copy(stores, s.stores)
	return stores
}

// GetResource resolves the path against every member store in order and
// returns a fresh composite resource over the results. Nothing is cached
// across calls, so each resolution reflects the members' current handles.
func (s *Store) GetResource(path string) resources.Resource {
	members := make([]resources.Resource, len(s.stores))
	for i, store := range s.stores {
		members[i] = store.GetResource(path)
	}
	return newResource(s, path, members)
}

func (s *Store) String() string {
	var sb strings.Builder
	sb.WriteString("union(")
	for i, store := range s.stores {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(store.String())
	}
	sb.WriteString("):")
	return sb.String()
}
