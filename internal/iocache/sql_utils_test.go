package iocache

import (
	"testing"
	"time"

	"github.com/hpmalabs/hpma/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{"simple", "hpma_runs", false},
		{"leading underscore", "_cache", false},
		{"digits", "cache2", false},
		{"empty", "", true},
		{"leading digit", "2cache", true},
		{"injection", "runs; DROP TABLE x", true},
		{"quote", `runs"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`hpma_runs`", quoteTableName("hpma_runs", schema.MySQLBackend))
	assert.Equal(t, `"hpma_runs"`, quoteTableName("hpma_runs", schema.PostgreSQLBackend))
	assert.Equal(t, `"hpma_runs"`, quoteTableName("hpma_runs", schema.SQLiteBackend))
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "mysql", driverName(schema.MySQLBackend))
	assert.Equal(t, "pgx", driverName(schema.PostgreSQLBackend))
	assert.Equal(t, "sqlite", driverName(schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"$1", "$2", "$3"}, placeholders(schema.PostgreSQLBackend, 3))
	assert.Equal(t, []string{"?", "?"}, placeholders(schema.MySQLBackend, 2))
	assert.Equal(t, []string{"?"}, placeholders(schema.SQLiteBackend, 1))
	assert.Empty(t, placeholders(schema.SQLiteBackend, 0))
}

func TestFormatAndParseTime(t *testing.T) {
	ts := time.Date(2026, 5, 4, 3, 2, 1, 123456789, time.FixedZone("CEST", 2*3600))

	formatted := formatTime(ts, schema.SQLiteBackend)
	s, ok := formatted.(string)
	require.True(t, ok, "SQLite timestamps are stored as text")
	assert.Equal(t, "2026-05-04T01:02:01.123456789Z", s)

	parsed, err := parseTime(s)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
	assert.Equal(t, ts, formatTime(ts, schema.MySQLBackend))

	_, err = parseTime("yesterday")
	assert.Error(t, err)
}

func TestOpenDBUnsupportedBackend(t *testing.T) {
	db, err := openDB("oracle", "whatever", "")
	assert.Nil(t, db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
