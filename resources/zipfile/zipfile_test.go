package zipfile_test

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"resource-union/resources"
	"resource-union/resources/zipfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArchive builds a small zip fixture and returns its path.
func writeArchive(t *testing.T) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "resources.zip")

	f, err := os.Create(name)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for entry, content := range map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "nested",
	} {
		header := &zip.FileHeader{Name: entry, Method: zip.Deflate}
		header.Modified = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		ew, err := w.CreateHeader(header)
		require.NoError(t, err)
		_, err = ew.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return name
}

func newStore(t *testing.T) *zipfile.Store {
	t.Helper()
	store, err := zipfile.NewStore(writeArchive(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStoreMissingArchive(t *testing.T) {
	_, err := zipfile.NewStore(filepath.Join(t.TempDir(), "nope.zip"))
	assert.Error(t, err)
}

func TestResource(t *testing.T) {
	store := newStore(t)

	t.Run("Present", func(t *testing.T) {
		res := store.GetResource("/a.txt")

		exists, err := res.Exists()
		require.NoError(t, err)
		assert.True(t, exists)

		preferred, err := res.IsFilePreferred()
		require.NoError(t, err)
		assert.False(t, preferred)

		file, err := res.File()
		require.NoError(t, err)
		assert.Empty(t, file)
	})

	t.Run("Nested", func(t *testing.T) {
		exists, err := store.GetResource("/sub/b.txt").Exists()
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("LeadingSlashOptional", func(t *testing.T) {
		exists, err := store.GetResource("a.txt").Exists()
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Missing", func(t *testing.T) {
		exists, err := store.GetResource("/missing.txt").Exists()
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestConnection(t *testing.T) {
	store := newStore(t)

	t.Run("Present", func(t *testing.T) {
		conn, err := store.GetResource("/a.txt").Open()
		require.NoError(t, err)

		length, err := conn.Length()
		require.NoError(t, err)
		assert.Equal(t, int64(5), length)

		modified, err := conn.LastModified()
		require.NoError(t, err)
		assert.Equal(t, 2024, modified.Year())

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

	t.Run("ClosedConnection", func(t *testing.T) {
		conn, err := store.GetResource("/a.txt").Open()
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		_, err = conn.Reader()
		assert.ErrorIs(t, err, resources.ErrClosed)

		err = conn.Close()
		assert.ErrorIs(t, err, resources.ErrClosed)
	})
}

func TestStoreString(t *testing.T) {
	name := writeArchive(t)
	store, err := zipfile.NewStore(name)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "zip("+name+"):", store.String())
}
