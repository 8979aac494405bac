package union

import (
	"errors"
	"io"
	"time"

	"resource-union/resources"
)

// Connection wraps the one member connection chosen by Resource.Open so
// that callers see the union's identity while every operation delegates to
// the member that actually holds the content.
type Connection struct {
	resource *Resource
	wrapped  resources.Connection
}

// Resource returns the owning union resource, not the member's own.
func (c *Connection) Resource() resources.Resource { return c.resource }

func (c *Connection) Exists() (bool, error) { return c.wrapped.Exists() }

func (c *Connection) Length() (int64, error) { return c.wrapped.Length() }

func (c *Connection) LastModified() (time.Time, error) { return c.wrapped.LastModified() }

func (c *Connection) Reader() (io.ReadCloser, error) { return c.wrapped.Reader() }

func (c *Connection) File() (string, error) { return c.wrapped.File() }

func (c *Connection) Close() error { return c.wrapped.Close() }

// closeDiscarded closes a connection that will not be returned to the
// caller, combining any close failure with the error already in flight.
func closeDiscarded(err error, conn resources.Connection) error {
	if conn == nil {
		return err
	}
	if cerr := conn.Close(); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}
