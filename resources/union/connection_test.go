package union_test

import (
	"io"
	"testing"
	"time"

	"resource-union/resources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionDelegation(t *testing.T) {
	modified := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := &fakeResource{exists: true, content: "payload", file: "/b/a.txt", modified: modified}
	res := resolve(t, nil, &fakeResource{}, b)

	conn, err := res.Open()
	require.NoError(t, err)

	t.Run("ResourceIsUnionIdentity", func(t *testing.T) {
		// The connection reports the union resource, not the member's.
		assert.Same(t, res, conn.Resource())
	})

	t.Run("OperationsDelegate", func(t *testing.T) {
		exists, err := conn.Exists()
		require.NoError(t, err)
		assert.True(t, exists)

		length, err := conn.Length()
		require.NoError(t, err)
		assert.Equal(t, int64(len("payload")), length)

		lastModified, err := conn.LastModified()
		require.NoError(t, err)
		assert.Equal(t, modified, lastModified)

		file, err := conn.File()
		require.NoError(t, err)
		assert.Equal(t, "/b/a.txt", file)

		reader, err := conn.Reader()
		require.NoError(t, err)
		content, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(content))
	})

	t.Run("CloseClosesWrappedOnly", func(t *testing.T) {
		require.NoError(t, conn.Close())
		assert.Equal(t, 0, b.openConns())

		_, err := conn.Exists()
		assert.ErrorIs(t, err, resources.ErrClosed)
	})
}
