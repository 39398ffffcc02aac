package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	sqlite, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	bdg, err := OpenBadger(InMemoryDSN)
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
		"redis":  rdb,
		"badger": bdg,
	}
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		pg, err := OpenPostgres(ctx, dsn)
		require.NoError(t, err)
		_, err = pg.db.ExecContext(ctx, `DELETE FROM settings`)
		require.NoError(t, err)
		stores["postgres"] = pg
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStores_GetUnknownNamespace(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			values, err := store.Get(context.Background(), "custom.settings")
			require.NoError(t, err)
			assert.Empty(t, values)
		})
	}
}

func TestStores_SetOverwritesGivenKeysOnly(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "custom.settings", Values{"a": "1", "b": "2"}))
			require.NoError(t, store.Set(ctx, "custom.settings", Values{"b": "3", "c": ""}))
			require.NoError(t, store.Set(ctx, "other", Values{"a": "x"}))

			got, err := store.Get(ctx, "custom.settings")
			require.NoError(t, err)
			assert.Equal(t, Values{"a": "1", "b": "3", "c": ""}, got)

			other, err := store.Get(ctx, "other")
			require.NoError(t, err)
			assert.Equal(t, Values{"a": "x"}, other)
		})
	}
}

func TestStores_NamespacesSharingAPrefixStayApart(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "custom", Values{"a": "1"}))
			require.NoError(t, store.Set(ctx, "custom/x", Values{"b": "2"}))
			require.NoError(t, store.Set(ctx, "custom.settings", Values{"c": "3"}))

			got, err := store.Get(ctx, "custom")
			require.NoError(t, err)
			assert.Equal(t, Values{"a": "1"}, got)

			nested, err := store.Get(ctx, "custom/x")
			require.NoError(t, err)
			assert.Equal(t, Values{"b": "2"}, nested)
		})
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "ns", Values{"k": "v"}))

	got, err := store.Get(ctx, "ns")
	require.NoError(t, err)
	got["k"] = "mutated"

	again, err := store.Get(ctx, "ns")
	require.NoError(t, err)
	assert.Equal(t, "v", again["k"])
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "etcd", "")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpen_Memory(t *testing.T) {
	store, err := Open(context.Background(), "memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}
