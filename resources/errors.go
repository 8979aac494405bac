package resources

import "errors"

var (
	// ErrNotFound is returned by connection operations that require the
	// content to exist (Length, LastModified, Reader) when it does not.
	ErrNotFound = errors.New("resource does not exist")

	// ErrClosed is returned when a connection is used after Close.
	ErrClosed = errors.New("connection is closed")
)
