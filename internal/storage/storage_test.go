package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saucerburger/pos-service/internal/storage"
)

// Both implementations must behave identically; the service treats them as
// interchangeable.
func openStores(t *testing.T) map[string]storage.Store {
	t.Helper()

	boltStore, err := storage.OpenBolt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = boltStore.Close() })

	return map[string]storage.Store{
		"bolt":   boltStore,
		"memory": storage.NewMemStore(),
	}
}

func TestStorePutGetDelete(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(t, err, storage.ErrNotFound)

			require.NoError(t, store.Put(ctx, "k1", []byte("v1")))
			got, err := store.Get(ctx, "k1")
			require.NoError(t, err)
			assert.Equal(t, []byte("v1"), got)

			require.NoError(t, store.Put(ctx, "k1", []byte("v2")))
			got, err = store.Get(ctx, "k1")
			require.NoError(t, err)
			assert.Equal(t, []byte("v2"), got)

			require.NoError(t, store.Delete(ctx, "k1"))
			_, err = store.Get(ctx, "k1")
			assert.ErrorIs(t, err, storage.ErrNotFound)

			// Deleting an absent key is not an error.
			assert.NoError(t, store.Delete(ctx, "k1"))
		})
	}
}

func TestStoreKeysPrefixScan(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "backup_2", []byte("b")))
			require.NoError(t, store.Put(ctx, "backup_1", []byte("a")))
			require.NoError(t, store.Put(ctx, "backup_3", []byte("c")))
			require.NoError(t, store.Put(ctx, "other", []byte("x")))

			keys, err := store.Keys(ctx, "backup_")
			require.NoError(t, err)
			assert.Equal(t, []string{"backup_1", "backup_2", "backup_3"}, keys, "ascending and prefix-bounded")

			keys, err = store.Keys(ctx, "nomatch_")
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	store, err := storage.OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "k", []byte("v")))
	require.NoError(t, store.Close())

	reopened, err := storage.OpenBolt(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
