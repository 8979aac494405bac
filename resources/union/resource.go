package union

import (
	"sync/atomic"

	"resource-union/resources"
)

// Resource combines the per-member resources resolved for one path into a
// single logical resource. Operations search the members in order, starting
// at the index where content was last found.
//
// TODO: searches are sequential; a future version could keep a map of which
// members hold which paths and distribute reads between duplicates.
type Resource struct {
	store   *Store
	path    string
	members []resources.Resource

	// lastExists is the member index where content was last found.
	// Searches start here. It is a hint only: concurrent updates may
	// race, and a stale value merely costs extra scanning.
	lastExists atomic.Int32
}

func newResource(store *Store, path string, members []resources.Resource) *Resource {
	if len(members) == 0 {
		panic("union: at least one member resource required")
	}
	return &Resource{store: store, path: path, members: members}
}

// Store returns the owning union store.
func (r *Resource) Store() resources.Store { return r.store }

// Path returns the path this resource was resolved for.
func (r *Resource) Path() string { return r.path }

// Exists reports whether any member has the content.
func (r *Resource) Exists() (bool, error) {
	start := int(r.lastExists.Load())
	n := len(r.members)
	for k := 0; k < n; k++ {
		i := (start + k) % n
		exists, err := r.members[i].Exists()
		if err != nil {
			return false, err
		}
		if exists {
			if i != start {
				r.lastExists.Store(int32(i))
			}
			return true, nil
		}
	}
	return false, nil
}

// IsFilePreferred returns IsFilePreferred from the first member, in search
// order, whose content exists. When no member has the content it falls back
// to the member at the search start, so the call never fails solely due to
// non-existence.
func (r *Resource) IsFilePreferred() (bool, error) {
	start := int(r.lastExists.Load())
	n := len(r.members)
	for k := 0; k < n; k++ {
		i := (start + k) % n
		member := r.members[i]
		exists, err := member.Exists()
		if err != nil {
			return false, err
		}
		if exists {
			if i != start {
				r.lastExists.Store(int32(i))
			}
			return member.IsFilePreferred()
		}
	}
	return r.members[start].IsFilePreferred()
}

// File returns the local file of the first member, in search order, that
// both has the content and is file-backed. When no such member is found:
// if any member has the content the result is empty, so a local file is
// never claimed for content that logically lives elsewhere; otherwise the
// file of the lowest-index file-backed member is returned, or empty when
// there is none.
func (r *Resource) File() (string, error) {
	start := int(r.lastExists.Load())
	n := len(r.members)
	anyExists := false
	lowestFile := ""
	lowestIndex := 0
	for k := 0; k < n; k++ {
		i := (start + k) % n
		member := r.members[i]
		exists, err := member.Exists()
		if err != nil {
			return "", err
		}
		if exists {
			anyExists = true
		}
		file, err := member.File()
		if err != nil {
			return "", err
		}
		if file != "" {
			if exists {
				if i != start {
					r.lastExists.Store(int32(i))
				}
				return file, nil
			}
			if lowestFile == "" || i < lowestIndex {
				lowestFile = file
				lowestIndex = i
			}
		}
	}
	if anyExists {
		return "", nil
	}
	return lowestFile, nil
}

// Open opens a connection to the first member, in search order, whose
// content exists. The connection opened at the search start is held as a
// fallback: when no member has the content it is returned as-is, matching
// the fallback of IsFilePreferred. Every other connection opened along the
// way is closed before Open returns, on error paths included, so exactly
// one underlying connection escapes alive.
func (r *Resource) Open() (resources.Connection, error) {
	start := int(r.lastExists.Load())
	n := len(r.members)
	var first resources.Connection
	for k := 0; k < n; k++ {
		i := (start + k) % n
		conn, err := r.members[i].Open()
		if err != nil {
			return nil, closeDiscarded(err, first)
		}
		if first == nil {
			first = conn
		}
		exists, err := conn.Exists()
		if err != nil {
			if conn != first {
				err = closeDiscarded(err, conn)
			}
			return nil, closeDiscarded(err, first)
		}
		if exists {
			if i != start {
				r.lastExists.Store(int32(i))
			}
			if conn != first {
				// The fallback is no longer needed. If releasing it
				// fails, the winner must not leak either.
				if cerr := first.Close(); cerr != nil {
					return nil, closeDiscarded(cerr, conn)
				}
			}
			return &Connection{resource: r, wrapped: conn}, nil
		}
		if conn != first {
			if cerr := conn.Close(); cerr != nil {
				return nil, closeDiscarded(cerr, first)
			}
		}
	}
	return &Connection{resource: r, wrapped: first}, nil
}
