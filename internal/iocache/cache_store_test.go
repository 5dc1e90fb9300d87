package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/hpmalabs/hpma/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteCacheStore(t *testing.T) *CacheStoreImpl {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(profileTable, schema.SQLiteBackend, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	impl, ok := store.(*CacheStoreImpl)
	require.True(t, ok)
	return impl
}

func TestNewCacheStoreInvalidTableName(t *testing.T) {
	store, err := NewCacheStore("bad-name", schema.SQLiteBackend, ":memory:")
	assert.Nil(t, store)
	assert.Error(t, err)
}

func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore(profileTable, schema.NoneBackend, "")
	require.NoError(t, err)

	_, _, _, err = store.Get("key")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, store.Set("key", []byte("{}"), 1, time.Now().Unix()))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestCacheStoreSQLiteRoundTrip(t *testing.T) {
	store := newSQLiteCacheStore(t)

	_, _, _, err := store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, store.Set("k1", []byte(`{"respondent":"ada"}`), 1, 1000))
	data, version, ts, err := store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, `{"respondent":"ada"}`, string(data))
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(1000), ts)

	// Upsert replaces the previous value
	require.NoError(t, store.Set("k1", []byte(`{}`), 2, 2000))
	data, version, ts, err = store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(2000), ts)
}

func TestCacheStoreSQLiteStatus(t *testing.T) {
	store := newSQLiteCacheStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalEntries)
	assert.True(t, status.LastEntryTime.IsZero())

	require.NoError(t, store.Set("a", []byte("1"), 1, 100))
	require.NoError(t, store.Set("b", []byte("2"), 1, 300))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, time.Unix(300, 0), status.LastEntryTime)
	assert.Equal(t, time.Unix(100, 0), status.OldestEntryTime)
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestGetCreateTableQuery(t *testing.T) {
	assert.Contains(t, getCreateTableQuery("t", schema.MySQLBackend), "MEDIUMBLOB")
	assert.Contains(t, getCreateTableQuery("t", schema.PostgreSQLBackend), "BYTEA")
	assert.Contains(t, getCreateTableQuery("t", schema.SQLiteBackend), "BLOB")
}

func TestUpsertQueryPerBackend(t *testing.T) {
	mysqlStore := &CacheStoreImpl{tableName: "t", backend: schema.MySQLBackend}
	assert.Contains(t, mysqlStore.getUpsertQuery(), "ON DUPLICATE KEY UPDATE")

	pgStore := &CacheStoreImpl{tableName: "t", backend: schema.PostgreSQLBackend}
	assert.Contains(t, pgStore.getUpsertQuery(), "ON CONFLICT (cache_key)")
	assert.Contains(t, pgStore.getUpsertQuery(), "$4")

	sqliteStore := &CacheStoreImpl{tableName: "t", backend: schema.SQLiteBackend}
	assert.Contains(t, sqliteStore.getUpsertQuery(), "INSERT OR REPLACE")
}
