package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hpmalabs/hpma/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBack[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func sampleRuns() []Run {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	config := `{"workers":4}`
	return []Run{
		{RunID: 1, StartTime: start, EndTime: &end, RunDurationMs: &duration, TotalAssessments: 3, ConfigParams: &config},
		{RunID: 2, StartTime: start.Add(time.Hour)},
	}
}

func sampleAssessments() []Assessment {
	at := time.Date(2026, 3, 1, 9, 0, 1, 0, time.UTC)
	return []Assessment{
		{
			RunID: 1, AssessmentID: "a-1", Respondent: "ada", Source: "ada.json", ScoredAt: at,
			Structure: "DUET", Mode: "TWIN_HELIX", SummaryLabel: "Duet: Explorer Organizer", Confidence: "MEDIUM",
			Primary: "explorer", Secondary: "organizer", Tertiary: "connector",
			Uncertainty: 0.82, EntropyN: 0.79, ScoreH: 4.5, ScoreE: 3.25, ScoreX: 5, ScoreA: 4, ScoreC: 4.75, ScoreO: 6,
		},
		{
			RunID: 1, AssessmentID: "a-2", Respondent: "bo", Source: "bo.yaml", ScoredAt: at,
			Structure: "MIST", Mode: "NONE", SummaryLabel: "Mist", Confidence: "LOW",
			Primary: "philosopher", Secondary: "explorer", Tertiary: "protector",
			Uncertainty: 0.99, EntropyN: 0.99, ScoreH: 4, ScoreE: 4, ScoreX: 4, ScoreA: 4, ScoreC: 4, ScoreO: 4, Flagged: true,
		},
	}
}

func TestRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Run))
	require.NotNil(t, s)

	for _, colName := range []string{"run_id", "start_time", "end_time", "run_duration_ms", "total_assessments", "config_params"} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestAssessmentStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Assessment))
	require.NotNil(t, s)

	expectedColumns := []string{
		"run_id", "assessment_id", "respondent", "source", "scored_at",
		"structure", "mode", "summary_label", "confidence",
		"primary_archetype", "secondary_archetype", "tertiary_archetype",
		"uncertainty", "entropy_n",
		"score_h", "score_e", "score_x", "score_a", "score_c", "score_o",
		"flagged",
	}
	for _, colName := range expectedColumns {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := sampleRuns()

	require.NoError(t, WriteRunsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	readData := readBack[Run](t, outputPath)
	require.Len(t, readData, len(data))

	assert.Equal(t, int64(1), readData[0].RunID)
	assert.Equal(t, int32(3), readData[0].TotalAssessments)
	require.NotNil(t, readData[0].EndTime)
	assert.WithinDuration(t, *data[0].EndTime, *readData[0].EndTime, time.Millisecond)
	require.NotNil(t, readData[0].RunDurationMs)
	assert.Equal(t, int32(1500), *readData[0].RunDurationMs)
	require.NotNil(t, readData[0].ConfigParams)
	assert.Equal(t, `{"workers":4}`, *readData[0].ConfigParams)

	// Unfinished run keeps its nullable fields empty
	assert.Nil(t, readData[1].EndTime)
	assert.Nil(t, readData[1].RunDurationMs)
	assert.Nil(t, readData[1].ConfigParams)
}

func TestWriteAssessmentsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "assessments.parquet")
	data := sampleAssessments()

	require.NoError(t, WriteAssessmentsParquet(data, outputPath))

	readData := readBack[Assessment](t, outputPath)
	require.Len(t, readData, len(data))
	for i := range data {
		assert.Equal(t, data[i].AssessmentID, readData[i].AssessmentID)
		assert.Equal(t, data[i].Respondent, readData[i].Respondent)
		assert.Equal(t, data[i].Mode, readData[i].Mode)
		assert.Equal(t, data[i].Primary, readData[i].Primary)
		assert.InDelta(t, data[i].ScoreO, readData[i].ScoreO, 1e-9)
		assert.Equal(t, data[i].Flagged, readData[i].Flagged)
		assert.WithinDuration(t, data[i].ScoredAt, readData[i].ScoredAt, time.Millisecond)
	}
}

func TestWriteParquet_EmptyData(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteRunsParquet([]Run{}, filepath.Join(dir, "runs.parquet")))
	require.NoError(t, WriteAssessmentsParquet([]Assessment{}, filepath.Join(dir, "assessments.parquet")))

	assert.Empty(t, readBack[Run](t, filepath.Join(dir, "runs.parquet")))
	assert.Empty(t, readBack[Assessment](t, filepath.Join(dir, "assessments.parquet")))
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	invalidPath := filepath.Join(t.TempDir(), "missing", "dir", "out.parquet")

	assert.Error(t, WriteRunsParquet(sampleRuns(), invalidPath))
	assert.Error(t, WriteAssessmentsParquet(sampleAssessments(), invalidPath))
}

func TestConvertRunRecords(t *testing.T) {
	end := time.Now()
	duration := int32(42)
	records := []schema.RunRecord{
		{RunID: 7, StartTime: end.Add(-time.Second), EndTime: &end, RunDurationMs: &duration, TotalAssessments: 2},
	}

	runs := ConvertRunRecords(records)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, &end, runs[0].EndTime)
	assert.Equal(t, int32(2), runs[0].TotalAssessments)
	assert.Nil(t, runs[0].ConfigParams)
}

func TestConvertAssessmentRecords(t *testing.T) {
	records := []schema.AssessmentRecord{
		{RunID: 7, AssessmentID: "x", Respondent: "ada", Structure: "SOLO", Mode: "SOLO", ScoreH: 5.5, Flagged: true},
	}

	out := ConvertAssessmentRecords(records)
	require.Len(t, out, 1)
	assert.Equal(t, "x", out[0].AssessmentID)
	assert.Equal(t, "SOLO", out[0].Mode)
	assert.Equal(t, 5.5, out[0].ScoreH)
	assert.True(t, out[0].Flagged)
}

func TestConvertBatchResults(t *testing.T) {
	profile := &schema.Profile{
		Respondent: "ada",
		HEXACO: schema.DomainScores{
			schema.HonestyHumility: 4.5, schema.Openness: 6,
		},
		Archetypes: schema.ArchetypeProbabilities{
			schema.Explorer: 0.7, schema.Organizer: 0.3,
		},
		Uncertainty: 0.5,
		Roster: schema.RosterClassification{
			Structure:    schema.Solo,
			SummaryLabel: "Solo: Explorer",
			Confidence:   schema.Confidence{Level: schema.HighConfidence},
			Metrics:      schema.DerivedMetrics{EntropyN: 0.34},
		},
		ClassName:  schema.ClassName{Display: "Curious Explorer"},
		Attachment: schema.AttachmentProfile{Style: schema.Secure},
		Antagonism: schema.AntagonismProfile{Composite: 2.5},
		Validity:   schema.ValidityFlags{Idealized: true},
	}
	results := []schema.BatchResult{
		{Source: "ada.json", Profile: profile},
		{Source: "broken.csv", Error: "unknown question id 999"},
	}

	rows := ConvertBatchResults(results)
	require.Len(t, rows, 2)

	ok := rows[0]
	assert.Equal(t, "ada", ok.Respondent)
	assert.Equal(t, "ada.json", ok.Source)
	assert.Nil(t, ok.Error)
	assert.Equal(t, "SOLO", ok.Structure)
	assert.Equal(t, "SOLO", ok.Mode)
	assert.Equal(t, "HIGH", ok.Confidence)
	assert.Equal(t, "Curious Explorer", ok.ClassName)
	assert.Equal(t, 4.5, ok.ScoreH)
	assert.Equal(t, 6.0, ok.ScoreO)
	assert.Equal(t, 0.7, ok.ProbExplorer)
	assert.Equal(t, 0.0, ok.ProbPhilosopher)
	assert.Equal(t, 0.34, ok.EntropyN)
	assert.Equal(t, "SECURE", ok.AttachmentStyle)
	assert.Equal(t, 2.5, ok.AntagonismComposite)
	assert.True(t, ok.Flagged)

	failed := rows[1]
	assert.Equal(t, "broken.csv", failed.Source)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "unknown question id 999", *failed.Error)
	assert.Empty(t, failed.Structure)
}

func TestWriteProfileRows(t *testing.T) {
	var buf bytes.Buffer
	msg := "parse error"
	rows := []ProfileRow{
		{Respondent: "ada", Structure: "DUET", Mode: "TWIN_HELIX", ScoreO: 5.25, ProbExplorer: 0.41},
		{Source: "bad.json", Error: &msg},
	}

	require.NoError(t, WriteProfileRows(rows, &buf))
	require.Greater(t, buf.Len(), 0)

	readData, err := parquet.Read[ProfileRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, readData, 2)
	assert.Equal(t, "ada", readData[0].Respondent)
	assert.Equal(t, 5.25, readData[0].ScoreO)
	assert.Nil(t, readData[0].Error)
	require.NotNil(t, readData[1].Error)
	assert.Equal(t, "parse error", *readData[1].Error)
}
