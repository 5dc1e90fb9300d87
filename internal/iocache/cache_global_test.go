package iocache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hpmalabs/hpma/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearCacheSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, ClearCache(schema.SQLiteBackend, path, ""))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine
	assert.NoError(t, ClearCache(schema.SQLiteBackend, path, ""))
}

func TestClearHistorySQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearHistory(schema.SQLiteBackend, path, ""))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestClearTablesErrors(t *testing.T) {
	assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	assert.Error(t, ClearCache("oracle", "x", ""))
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
}

func TestInitStoresDisabled(t *testing.T) {
	require.NoError(t, InitStores(schema.NoneBackend, "", "", ""))
	assert.NotNil(t, Manager.GetProfileStore())
	assert.Nil(t, Manager.GetHistoryStore())
	CloseStores()
}
