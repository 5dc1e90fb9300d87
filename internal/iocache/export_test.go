package iocache

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hpmalabs/hpma/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHistory(t *testing.T) {
	store := &MockHistoryStore{}
	store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true, TotalRuns: 1, TotalAssessments: 1}, nil)
	store.On("GetAllRuns").Return([]schema.RunRecord{{RunID: 1, StartTime: time.Now(), TotalAssessments: 1}}, nil)
	store.On("GetAllAssessments").Return([]schema.AssessmentRecord{{RunID: 1, AssessmentID: "a", Respondent: "ada", ScoredAt: time.Now()}}, nil)

	base := filepath.Join(t.TempDir(), "hpma")
	var out bytes.Buffer
	require.NoError(t, ExportHistory(store, base, &out))

	for _, suffix := range []string{".runs.parquet", ".assessments.parquet"} {
		info, err := os.Stat(base + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, out.String(), "Exported 1 runs")
	assert.Contains(t, out.String(), "Exported 1 assessments")
	store.AssertExpectations(t)
}

func TestExportHistoryErrors(t *testing.T) {
	var out bytes.Buffer

	t.Run("missing output file", func(t *testing.T) {
		err := ExportHistory(&MockHistoryStore{}, "", &out)
		assert.ErrorContains(t, err, "--output-file")
	})

	t.Run("history disabled", func(t *testing.T) {
		err := ExportHistory(nil, "out", &out)
		assert.ErrorContains(t, err, "not enabled")
	})

	t.Run("no runs", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{}, nil)
		err := ExportHistory(store, "out", &out)
		assert.ErrorContains(t, err, "no history data")
	})

	t.Run("status failure", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{}, errors.New("boom"))
		err := ExportHistory(store, "out", &out)
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("query failure", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{TotalRuns: 1}, nil)
		store.On("GetAllRuns").Return(nil, errors.New("query failed"))
		err := ExportHistory(store, "out", &out)
		assert.ErrorContains(t, err, "failed to retrieve runs")
	})
}
