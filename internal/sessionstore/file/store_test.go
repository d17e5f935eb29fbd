package sessionfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionfile "github.com/redhi-dex/wallet-connector/internal/sessionstore/file"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := sessionfile.NewStore(path)

	t.Run("load before save is empty", func(t *testing.T) {
		username, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, username)
	})

	t.Run("save creates parent dir and persists", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "alice"))

		username, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("survives a fresh store instance", func(t *testing.T) {
		username, err := sessionfile.NewStore(path).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("clear removes the file", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))

		require.NoError(t, store.Clear(ctx))
	})
}

func TestStore_LoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := sessionfile.NewStore(path).Load(t.Context())
	assert.Error(t, err)
}
