// Package dbstore provides a resource store over a MySQL blob table,
// accessed through GORM. Each row of resource_blobs holds one resource:
// the path is the primary key, the content a longblob.
package dbstore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"gorm.io/gorm"

	"resource-union/resources"
)

// Blob maps to one row of the resource_blobs table.
type Blob struct {
	Path      string    `gorm:"column:path;primaryKey"`
	Content   []byte    `gorm:"column:content"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides GORM's pluralized default.
func (Blob) TableName() string { return "resource_blobs" }

// Store serves resources from blob rows.
type Store struct {
	db   *gorm.DB
	name string
}

// NewStore creates a store over the given database connection. The name is
// used only for diagnostics.
func NewStore(db *gorm.DB, name string) *Store {
	return &Store{db: db, name: name}
}

func (s *Store) String() string {
	return fmt.Sprintf("db(%s):", s.name)
}

// GetResource returns a handle for the row at the given path. No query is
// issued until the handle is queried.
func (s *Store) GetResource(p string) resources.Resource {
	return &Resource{store: s, path: p, key: normalize(p)}
}

// normalize maps a resource path to the stored primary key form, which
// always carries a leading slash.
func normalize(p string) string {
	return path.Clean("/" + strings.TrimPrefix(p, "/"))
}

// Resource is a lazy handle to one blob row.
type Resource struct {
	store *Store
	path  string
	key   string
}

func (r *Resource) Store() resources.Store { return r.store }

func (r *Resource) Path() string { return r.path }

func (r *Resource) Exists() (bool, error) {
	var count int64
	if err := r.store.db.Model(&Blob{}).Where("path = ?", r.key).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check blob %q: %w", r.key, err)
	}
	return count > 0, nil
}

// IsFilePreferred is always false: blob content lives in the database.
func (r *Resource) IsFilePreferred() (bool, error) { return false, nil }

// File always returns empty: blobs have no local file.
func (r *Resource) File() (string, error) { return "", nil }

// Open loads the row once so that metadata and content reads are
// consistent with each other.
func (r *Resource) Open() (resources.Connection, error) {
	conn := &Connection{resource: r}
	var blob Blob
	err := r.store.db.Where("path = ?", r.key).First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return conn, nil
		}
		return nil, fmt.Errorf("failed to load blob %q: %w", r.key, err)
	}
	conn.blob = &blob
	return conn, nil
}

// Connection pins one loaded blob row.
type Connection struct {
	resource *Resource
	blob     *Blob
	closed   bool
}

func (c *Connection) Resource() resources.Resource { return c.resource }

func (c *Connection) Exists() (bool, error) {
	if c.closed {
		return false, resources.ErrClosed
	}
	return c.blob != nil, nil
}

func (c *Connection) Length() (int64, error) {
	if c.closed {
		return 0, resources.ErrClosed
	}
	if c.blob == nil {
		return 0, resources.ErrNotFound
	}
	return int64(len(c.blob.Content)), nil
}

func (c *Connection) LastModified() (time.Time, error) {
	if c.closed {
		return time.Time{}, resources.ErrClosed
	}
	if c.blob == nil {
		return time.Time{}, resources.ErrNotFound
	}
	return c.blob.UpdatedAt, nil
}

func (c *Connection) Reader() (io.ReadCloser, error) {
	if c.closed {
		return nil, resources.ErrClosed
	}
	if c.blob == nil {
		return nil, resources.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(c.blob.Content)), nil
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
	c.blob = nil
	return nil
}
