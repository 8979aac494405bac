// Package zipfile provides a read-only resource store over the entries of
// a zip archive. The archive is opened once when the store is created and
// shared by all resources; entry content is decompressed on demand.
package zipfile

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"resource-union/resources"
)

// Store serves resources from the entries of one zip archive.
type Store struct {
	name    string
	archive *zip.ReadCloser
	entries map[string]*zip.File
}

// NewStore opens the archive at the given filesystem path and indexes its
// entries. Directory entries are skipped; entry names are normalized to
// leading-slash resource paths.
func NewStore(name string) (*Store, error) {
	archive, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %q: %w", name, err)
	}
	entries := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries[normalize(f.Name)] = f
	}
	return &Store{name: name, archive: archive, entries: entries}, nil
}

// Close releases the underlying archive. Resources resolved from the store
// must not be used afterwards.
func (s *Store) Close() error {
	return s.archive.Close()
}

func (s *Store) String() string {
	return fmt.Sprintf("zip(%s):", s.name)
}

// GetResource returns a handle for the archive entry at the given path.
func (s *Store) GetResource(p string) resources.Resource {
	return &Resource{store: s, path: p, entry: s.entries[normalize(p)]}
}

func normalize(p string) string {
	return path.Clean("/" + strings.TrimPrefix(p, "/"))
}

// Resource is a handle to one archive entry. A nil entry means the path is
// not present in the archive.
type Resource struct {
	store *Store
	path  string
	entry *zip.File
}

func (r *Resource) Store() resources.Store { return r.store }

func (r *Resource) Path() string { return r.path }

func (r *Resource) Exists() (bool, error) { return r.entry != nil, nil }

// IsFilePreferred is always false: archive content has no standalone local
// file and must be streamed.
func (r *Resource) IsFilePreferred() (bool, error) { return false, nil }

// File always returns empty: entries are compressed inside the archive.
func (r *Resource) File() (string, error) { return "", nil }

func (r *Resource) Open() (resources.Connection, error) {
	return &Connection{resource: r}, nil
}

// Connection serves metadata from the entry header and streams content
// through the entry reader, opened lazily.
type Connection struct {
	resource *Resource
	reader   io.ReadCloser
	closed   bool
}

func (c *Connection) Resource() resources.Resource { return c.resource }

func (c *Connection) Exists() (bool, error) {
	if c.closed {
		return false, resources.ErrClosed
	}
	return c.resource.entry != nil, nil
}

func (c *Connection) Length() (int64, error) {
	if c.closed {
		return 0, resources.ErrClosed
	}
	entry := c.resource.entry
	if entry == nil {
		return 0, resources.ErrNotFound
	}
	return int64(entry.UncompressedSize64), nil
}

func (c *Connection) LastModified() (time.Time, error) {
	if c.closed {
		return time.Time{}, resources.ErrClosed
	}
	entry := c.resource.entry
	if entry == nil {
		return time.Time{}, resources.ErrNotFound
	}
	return entry.Modified, nil
}

func (c *Connection) Reader() (io.ReadCloser, error) {
	if c.closed {
		return nil, resources.ErrClosed
	}
	entry := c.resource.entry
	if entry == nil {
		return nil, resources.ErrNotFound
	}
	if c.reader == nil {
		rc, err := entry.Open()
		if err != nil {
			return nil, err
		}
		c.reader = rc
	}
	return c.reader, nil
}

func (c *Connection) File() (string, error) {
	if c.closed {
		return "", resources.ErrClosed
	}
	return "", nil
}

func (c *Connection) Close() error {
	if c.closed {
		return resources.ErrClosed
	}
	c.closed = true
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
