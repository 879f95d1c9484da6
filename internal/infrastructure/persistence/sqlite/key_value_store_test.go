package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *KeyValueStore {
	t.Helper()
	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestKeyValueStore(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "store.db"))

	_, ok, err := store.GetItem(ctx, "ws1:filePath")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetItem(ctx, "ws1:filePath", "/a.json"))
	require.NoError(t, store.SetItem(ctx, "ws1:env_a:secret:tok", "v1"))
	require.NoError(t, store.SetItem(ctx, "ws1:filePath", "/b.json"))

	value, ok, err := store.GetItem(ctx, "ws1:filePath")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/b.json", value)

	entries, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ports.StoreEntry{
		{Key: "ws1:filePath", Value: "/b.json"},
		{Key: "ws1:env_a:secret:tok", Value: "v1"},
	}, entries)

	require.NoError(t, store.RemoveItem(ctx, "ws1:filePath"))
	require.NoError(t, store.RemoveItem(ctx, "missing"))

	entries, err = store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ports.StoreEntry{{Key: "ws1:env_a:secret:tok", Value: "v1"}}, entries)
}

func TestKeyValueStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.db")

	first, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.SetItem(ctx, "ws1:env_a:secret:tok", "persisted"))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	value, ok, err := second.GetItem(ctx, "ws1:env_a:secret:tok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}
