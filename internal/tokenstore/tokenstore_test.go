package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todosync/internal/tokenstore"
)

func TestFileStore_GetMissing(t *testing.T) {
	store := tokenstore.NewFileStore(filepath.Join(t.TempDir(), "token"))

	token, ok, err := store.Get()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestFileStore_SetThenGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := tokenstore.NewFileStore(path)

	require.NoError(t, store.Set("gho_abc123"))

	token, ok, err := store.Get()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "gho_abc123", token)
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := tokenstore.NewFileStore(path)
	require.NoError(t, store.Set("secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_GetTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("gho_abc123\n"), 0600))

	token, ok, err := tokenstore.NewFileStore(path).Get()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "gho_abc123", token)
}

func TestFileStore_EmptyFileIsNotLoggedIn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0600))

	_, ok, err := tokenstore.NewFileStore(path).Get()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := tokenstore.NewFileStore(path)
	require.NoError(t, store.Set("secret"))

	require.NoError(t, store.Clear())
	_, ok, err := store.Get()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing again is fine.
	require.NoError(t, store.Clear())
}
