package attend_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attend "github.com/smartattend/go-attend"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "token")
	store := attend.NewFileTokenStore(path)

	_, present := store.Get()
	assert.False(t, present)

	require.NoError(t, store.Set("abc.def.ghi"))

	token, present := store.Get()
	assert.True(t, present)
	assert.Equal(t, "abc.def.ghi", token)

	// Overwrite replaces the prior value.
	require.NoError(t, store.Set("second.token.value"))
	token, _ = store.Get()
	assert.Equal(t, "second.token.value", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileTokenStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	require.NoError(t, attend.NewFileTokenStore(path).Set("persisted.token.here"))

	token, present := attend.NewFileTokenStore(path).Get()
	assert.True(t, present)
	assert.Equal(t, "persisted.token.here", token)
}

func TestFileTokenStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := attend.NewFileTokenStore(path)

	require.NoError(t, store.Set("abc"))
	require.NoError(t, store.Clear())

	_, present := store.Get()
	assert.False(t, present)

	// Clearing an already-empty store is fine.
	require.NoError(t, store.Clear())
}

func TestFileTokenStoreEmptyFileMeansNoToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, present := attend.NewFileTokenStore(path).Get()
	assert.False(t, present)
}

func TestMemoryTokenStore(t *testing.T) {
	store := attend.NewMemoryTokenStore()

	_, present := store.Get()
	assert.False(t, present)

	require.NoError(t, store.Set("tok"))
	token, present := store.Get()
	assert.True(t, present)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Clear())
	_, present = store.Get()
	assert.False(t, present)
}
