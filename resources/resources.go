package resources

import (
	"fmt"
	"io"
	"time"
)

// Store is a named provider of resources, addressed by slash-separated paths.
//
// GetResource never fails merely because content is absent: absence is
// reported by the returned Resource's Exists, not by an error. Obtaining a
// handle performs no I/O.
type Store interface {
	fmt.Stringer

	// GetResource returns a handle for the resource at the given path.
	// The handle is lazy; no backend access happens until it is queried.
	GetResource(path string) Resource
}

// Resource is a lazy handle to content at a path within a Store.
//
// A Resource may be queried repeatedly; each operation may touch the
// underlying storage and may block on it.
type Resource interface {
	// Store returns the store this resource was resolved from.
	Store() Store

	// Path returns the path this resource was resolved for.
	Path() string

	// Exists reports whether the content is present in the store.
	Exists() (bool, error)

	// IsFilePreferred reports whether callers should prefer File over
	// Open for this resource, such as when content is a plain local file.
	IsFilePreferred() (bool, error)

	// File returns the local filesystem path backing this resource, or
	// the empty string when the content is not file-backed. A non-empty
	// result does not imply the content exists.
	File() (string, error)

	// Open establishes a connection to the content. The caller owns the
	// returned connection and must close it.
	Open() (Connection, error)
}

// Connection is an open handle to a resource's content. It pins whatever
// backend state is needed so that repeated metadata and content reads are
// consistent with each other. Connections are single-use: once closed,
// every other operation fails with ErrClosed.
type Connection interface {
	// Resource returns the resource this connection was opened from.
	Resource() Resource

	// Exists reports whether the content was present when the
	// connection was established.
	Exists() (bool, error)

	// Length returns the content length in bytes. Fails with ErrNotFound
	// when the content does not exist.
	Length() (int64, error)

	// LastModified returns the content's modification time, or the zero
	// time when unknown. Fails with ErrNotFound when the content does
	// not exist.
	LastModified() (time.Time, error)

	// Reader returns the content as a stream. The stream is closed by
	// closing the connection. Fails with ErrNotFound when the content
	// does not exist.
	Reader() (io.ReadCloser, error)

	// File returns the local filesystem path backing this connection's
	// content, or the empty string when not file-backed.
	File() (string, error)

	// Close releases the connection. Closing twice is an error.
	Close() error
}
