package local_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"resource-union/resources"
	"resource-union/resources/local"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*local.Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := local.NewStore(root)
	require.NoError(t, err)
	return store, root
}

func TestResourceExists(t *testing.T) {
	store, root := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0644))

	t.Run("Present", func(t *testing.T) {
		exists, err := store.GetResource("/a.txt").Exists()
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Missing", func(t *testing.T) {
		exists, err := store.GetResource("/missing.txt").Exists()
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Directory", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0755))
		exists, err := store.GetResource("/dir").Exists()
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("DotDotConfined", func(t *testing.T) {
		// ".." folds away during cleaning, so the path stays under root.
		res := store.GetResource("/../a.txt")
		file, err := res.File()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "a.txt"), file)

		exists, err := res.Exists()
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestResourceFile(t *testing.T) {
	store, root := newStore(t)

	// The file path is reported even when the file does not exist yet.
	file, err := store.GetResource("/sub/a.txt").File()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sub", "a.txt"), file)

	preferred, err := store.GetResource("/sub/a.txt").IsFilePreferred()
	require.NoError(t, err)
	assert.True(t, preferred)
}

func TestConnection(t *testing.T) {
	store, root := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0644))

	t.Run("Present", func(t *testing.T) {
		conn, err := store.GetResource("/a.txt").Open()
		require.NoError(t, err)

		exists, err := conn.Exists()
		require.NoError(t, err)
		assert.True(t, exists)

		length, err := conn.Length()
		require.NoError(t, err)
		assert.Equal(t, int64(5), length)

		modified, err := conn.LastModified()
		require.NoError(t, err)
		assert.False(t, modified.IsZero())

		reader, err := conn.Reader()
		require.NoError(t, err)
		content, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(content))

		require.NoError(t, conn.Close())
	})

	t.Run("Missing", func(t *testing.T) {
		conn, err := store.GetResource("/missing.txt").Open()
		require.NoError(t, err)
		defer conn.Close()

		exists, err := conn.Exists()
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = conn.Length()
		assert.ErrorIs(t, err, resources.ErrNotFound)

		_, err = conn.Reader()
		assert.ErrorIs(t, err, resources.ErrNotFound)
	})

	t.Run("PinsStat", func(t *testing.T) {
		conn, err := store.GetResource("/a.txt").Open()
		require.NoError(t, err)
		defer conn.Close()

		// The stat result is pinned at open time; a later rewrite does
		// not change the reported length.
		require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello world"), 0644))

		length, err := conn.Length()
		require.NoError(t, err)
		assert.Equal(t, int64(5), length)
	})

	t.Run("ClosedConnection", func(t *testing.T) {
		conn, err := store.GetResource("/a.txt").Open()
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		_, err = conn.Exists()
		assert.ErrorIs(t, err, resources.ErrClosed)

		err = conn.Close()
		assert.ErrorIs(t, err, resources.ErrClosed)
	})
}

func TestStoreString(t *testing.T) {
	store, root := newStore(t)
	assert.Equal(t, "local("+root+"):", store.String())
}
