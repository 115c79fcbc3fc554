package filestorages

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) FileStorage {
	t.Helper()

	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return storage
}

func TestNewFileStorage_EmptyRootDir(t *testing.T) {
	t.Parallel()

	storage, err := NewFileStorage("")
	assert.Nil(t, storage)
	assert.ErrorIs(t, err, ErrInvalidRootDir)
}

func TestPut_ValidKeys(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	validKeys := []string{
		"file.json",
		"snapshots/latest.json",
		"nested/deep/path/file.json",
	}

	for _, key := range validKeys {
		t.Run(key, func(t *testing.T) {
			data := "test data"
			err := storage.Put(ctx, key, strings.NewReader(data))
			require.NoError(t, err, "key %q should be valid", key)

			fullPath := filepath.Join(storage.(*fileStorage).dir, key)
			content, err := os.ReadFile(fullPath)
			require.NoError(t, err)
			assert.Equal(t, data, string(content))
		})
	}
}

func TestPut_InvalidKeys(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	invalidKeys := []string{
		"",
		".",
		"..",
		"../escape.json",
		"/absolute/path.json",
		"nested/../../escape.json",
	}

	for _, key := range invalidKeys {
		t.Run(key, func(t *testing.T) {
			err := storage.Put(ctx, key, strings.NewReader("data"))
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestPut_Overwrites(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	key := "snapshots/latest.json"
	require.NoError(t, storage.Put(ctx, key, strings.NewReader("first")))
	require.NoError(t, storage.Put(ctx, key, strings.NewReader("second")))

	rc, err := storage.Get(ctx, key)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	rc, err := storage.Get(context.Background(), "missing.json")
	assert.Nil(t, rc)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestPut_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	storage, err := NewFileStorage(root)
	require.NoError(t, err)

	require.NoError(t, storage.Put(context.Background(), "file.json", strings.NewReader("data")))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "file.json", entries[0].Name())
}
