// Package local provides a resource store over a directory of the OS
// filesystem. Paths are rooted and cleaned before joining, so a resource
// path cannot escape the store's root.
package local

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"resource-union/resources"
)

// Store serves resources from files under a root directory.
type Store struct {
	root string
}

// NewStore creates a store rooted at the given directory. The directory is
// not required to exist yet; resources under a missing root simply do not
// exist.
func NewStore(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *Store) Root() string { return s.root }

func (s *Store) String() string {
	return fmt.Sprintf("local(%s):", s.root)
}

// GetResource returns a handle for the file at path under the root. No
// filesystem access happens until the handle is queried.
func (s *Store) GetResource(p string) resources.Resource {
	return &Resource{store: s, path: p, file: s.localPath(p)}
}

// localPath maps a resource path to an absolute filesystem path under the
// root. Rooting the path before cleaning folds any ".." away, so the
// result stays under the root.
func (s *Store) localPath(p string) string {
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+p)))
}

// Resource is a lazy handle to one file under the store root.
type Resource struct {
	store *Store
	path  string
	file  string
}

func (r *Resource) Store() resources.Store { return r.store }

func (r *Resource) Path() string { return r.path }

func (r *Resource) Exists() (bool, error) {
	info, err := os.Stat(r.file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// IsFilePreferred is always true: local content is best consumed through
// its file path.
func (r *Resource) IsFilePreferred() (bool, error) { return true, nil }

// File returns the path the file has, or would have, under the root. It is
// non-empty even when the file does not exist.
func (r *Resource) File() (string, error) { return r.file, nil }

// Open stats the file once and pins the result. Content reads go through a
// file handle opened lazily on the first Reader call.
func (r *Resource) Open() (resources.Connection, error) {
	conn := &Connection{resource: r}
	info, err := os.Stat(r.file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return conn, nil
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return conn, nil
	}
	conn.info = info
	return conn, nil
}

// Connection pins one stat result for a local file.
type Connection struct {
	resource *Resource
	info     fs.FileInfo
	reader   *os.File
	closed   bool
}

func (c *Connection) Resource() resources.Resource { return c.resource }

func (c *Connection) Exists() (bool, error) {
	if c.closed {
		return false, resources.ErrClosed
	}
	return c.info != nil, nil
}

func (c *Connection) Length() (int64, error) {
	if c.closed {
		return 0, resources.ErrClosed
	}
	if c.info == nil {
		return 0, resources.ErrNotFound
	}
	return c.info.Size(), nil
}

func (c *Connection) LastModified() (time.Time, error) {
	if c.closed {
		return time.Time{}, resources.ErrClosed
	}
	if c.info == nil {
		return time.Time{}, resources.ErrNotFound
	}
	return c.info.ModTime(), nil
}

func (c *Connection) Reader() (io.ReadCloser, error) {
	if c.closed {
		return nil, resources.ErrClosed
	}
	if c.info == nil {
		return nil, resources.ErrNotFound
	}
	if c.reader == nil {
		f, err := os.Open(c.resource.file)
		if err != nil {
			return nil, err
		}
		c.reader = f
	}
	return c.reader, nil
}

func (c *Connection) File() (string, error) {
	if c.closed {
		return "", resources.ErrClosed
	}
	return c.resource.file, nil
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
