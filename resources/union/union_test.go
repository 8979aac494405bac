package union_test

import (
	"io"
	"strings"
	"time"

	"resource-union/resources"
)

// visitLog records the order in which member resources are probed, so
// tests can assert where a search started.
type visitLog struct {
	names []string
}

func (l *visitLog) reset() { l.names = nil }

// fakeStore hands out one pre-configured resource regardless of path.
type fakeStore struct {
	name string
	res  *fakeResource
}

func newFakeStore(name string, res *fakeResource) *fakeStore {
	res.name = name
	return &fakeStore{name: name, res: res}
}

func (s *fakeStore) String() string { return s.name }

func (s *fakeStore) GetResource(path string) resources.Resource {
	s.res.path = path
	return s.res
}

// fakeResource is a scriptable member resource. Its connections report the
// resource's configured existence and collect into conns so tests can
// verify cleanup.
type fakeResource struct {
	name          string
	path          string
	exists        bool
	existsErr     error
	filePreferred bool
	file          string
	content       string
	modified      time.Time
	openErr       error
	connExistsErr error
	closeErr      error
	log           *visitLog
	conns         []*fakeConn
}

func (r *fakeResource) visit() {
	if r.log != nil {
		r.log.names = append(r.log.names, r.name)
	}
}

func (r *fakeResource) Store() resources.Store { return nil }

func (r *fakeResource) Path() string { return r.path }

func (r *fakeResource) Exists() (bool, error) {
	r.visit()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	return r.exists, nil
}

func (r *fakeResource) IsFilePreferred() (bool, error) { return r.filePreferred, nil }

func (r *fakeResource) File() (string, error) { return r.file, nil }

func (r *fakeResource) Open() (resources.Connection, error) {
	r.visit()
	if r.openErr != nil {
		return nil, r.openErr
	}
	conn := &fakeConn{res: r}
	r.conns = append(r.conns, conn)
	return conn, nil
}

// openConns counts connections that are still open.
func (r *fakeResource) openConns() int {
	open := 0
	for _, c := range r.conns {
		if !c.closed {
			open++
		}
	}
	return open
}

type fakeConn struct {
	res    *fakeResource
	closed bool
}

func (c *fakeConn) Resource() resources.Resource { return c.res }

func (c *fakeConn) Exists() (bool, error) {
	if c.res.connExistsErr != nil {
		return false, c.res.connExistsErr
	}
	return c.res.exists, nil
}

func (c *fakeConn) Length() (int64, error) {
	if !c.res.exists {
		return 0, resources.ErrNotFound
	}
	return int64(len(c.res.content)), nil
}

func (c *fakeConn) LastModified() (time.Time, error) {
	if !c.res.exists {
		return time.Time{}, resources.ErrNotFound
	}
	return c.res.modified, nil
}

func (c *fakeConn) Reader() (io.ReadCloser, error) {
	if !c.res.exists {
		return nil, resources.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(c.res.content)), nil
}

func (c *fakeConn) File() (string, error) { return c.res.file, nil }

func (c *fakeConn) Close() error {
	if c.closed {
		return resources.ErrClosed
	}
	c.closed = true
	return c.res.closeErr
}
