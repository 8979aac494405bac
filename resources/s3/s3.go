// Package s3 provides a resource store over an S3/MinIO bucket, built on
// the storage client wrapper. Resource paths map to object keys by
// stripping the leading slash.
//
// The store performs requests with a background context; deadlines come
// from the storage client's transport timeouts rather than from callers.
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"resource-union/core/storage"
	"resource-union/resources"
)

// Store serves resources from objects in one bucket.
type Store struct {
	client storage.Client
	bucket string
}

// NewStore creates a store over the given bucket.
func NewStore(client storage.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

func (s *Store) String() string {
	return fmt.Sprintf("s3(%s):", s.bucket)
}

// GetResource returns a handle for the object at the given path. No
// request is made until the handle is queried.
func (s *Store) GetResource(p string) resources.Resource {
	return &Resource{store: s, path: p, key: strings.TrimPrefix(p, "/")}
}

// Resource is a lazy handle to one object.
type Resource struct {
	store *Store
	path  string
	key   string
}

func (r *Resource) Store() resources.Store { return r.store }

func (r *Resource) Path() string { return r.path }

func (r *Resource) Exists() (bool, error) {
	_, err := r.stat()
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsFilePreferred is always false: object content is remote and must be
// streamed.
func (r *Resource) IsFilePreferred() (bool, error) { return false, nil }

// File always returns empty: objects have no local file.
func (r *Resource) File() (string, error) { return "", nil }

// Open stats the object once and pins the result; content reads issue a
// GetObject lazily on the first Reader call.
func (r *Resource) Open() (resources.Connection, error) {
	conn := &Connection{resource: r}
	info, err := r.stat()
	if err != nil {
		if isNoSuchKey(err) {
			return conn, nil
		}
		return nil, err
	}
	conn.info = &info
	return conn, nil
}

func (r *Resource) stat() (minio.ObjectInfo, error) {
	return r.store.client.StatObject(context.Background(), r.store.bucket, r.key, minio.StatObjectOptions{})
}

// isNoSuchKey reports whether the error means the object is absent rather
// than the request having failed.
func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey"
}

// Connection pins one object stat result.
type Connection struct {
	resource *Resource
	info     *minio.ObjectInfo
	reader   io.ReadCloser
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
	return c.info.Size, nil
}

func (c *Connection) LastModified() (time.Time, error) {
	if c.closed {
		return time.Time{}, resources.ErrClosed
	}
	if c.info == nil {
		return time.Time{}, resources.ErrNotFound
	}
	return c.info.LastModified, nil
}

func (c *Connection) Reader() (io.ReadCloser, error) {
	if c.closed {
		return nil, resources.ErrClosed
	}
	if c.info == nil {
		return nil, resources.ErrNotFound
	}
	if c.reader == nil {
		obj, err := c.resource.store.client.GetObject(context.Background(), c.resource.store.bucket, c.resource.key, minio.GetObjectOptions{})
		if err != nil {
			return nil, err
		}
		c.reader = obj
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
