package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func duetRoster() schema.RosterClassification {
	return schema.RosterClassification{
		Version:   schema.RosterVersion,
		Structure: schema.Duet,
		Ranked: []schema.RankedArchetype{
			{Archetype: schema.Explorer, Probability: 0.40},
			{Archetype: schema.Philosopher, Probability: 0.38},
			{Archetype: schema.Organizer, Probability: 0.10},
			{Archetype: schema.Connector, Probability: 0.06},
			{Archetype: schema.Protector, Probability: 0.04},
			{Archetype: schema.Performer, Probability: 0.02},
		},
		Metrics: schema.DerivedMetrics{S2: 0.78, S3: 0.88, R2: 0.95, G12: 0.02, EntropyN: 0.71},
		Duet: &schema.DuetRecord{
			Mode:     schema.TwinHelix,
			Anchor:   schema.Explorer,
			Lens:     schema.Philosopher,
			Identity: "Seeker-Sage",
			Label:    "Twin-Helix",
		},
		Confidence:   schema.Confidence{Level: schema.HighConfidence, DistanceFromBoundary: 0.08, Notes: []string{"S2 clears the duet floor"}},
		SummaryLabel: "Duet: Seeker-Sage",
		Description:  "Two voices in near balance",
	}
}

func sampleProfile() *schema.Profile {
	return &schema.Profile{
		Respondent: "ada",
		HEXACO: schema.DomainScores{
			schema.HonestyHumility:   4.25,
			schema.Emotionality:      3.5,
			schema.Extraversion:      4,
			schema.Agreeableness:     4.5,
			schema.Conscientiousness: 5,
			schema.Openness:          6,
		},
		Motives:    schema.MotiveScores{schema.Mastery: 5.5},
		Affects:    schema.AffectScores{schema.Seeking: 6.25},
		Attachment: schema.AttachmentProfile{Style: schema.Secure, Anxiety: 2.5, Avoidance: 2},
		Archetypes: schema.ArchetypeProbabilities{
			schema.Explorer:    0.40,
			schema.Philosopher: 0.38,
			schema.Organizer:   0.10,
			schema.Connector:   0.06,
			schema.Protector:   0.04,
			schema.Performer:   0.02,
		},
		Uncertainty: 0.29,
		Roster:      duetRoster(),
		ClassName:   schema.ClassName{Display: "The Curious Seeker-Sage"},
		Answered:    120,
		ComputedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteProfilesTextDetail(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut, Precision: 2, Workers: 4, CacheBackend: schema.NoneBackend, Width: 120}
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	results := []schema.BatchResult{{Source: "ada.json", Profile: sampleProfile()}}
	err := writeProfilesText(&buf, results, cfg, fmtFloat, fmtPercent, 100*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "👤 ada — The Curious Seeker-Sage")
	assert.Contains(t, out, "Duet: Seeker-Sage")
	assert.Contains(t, out, "Honesty-Humility")
	assert.Contains(t, out, "6.00")
	assert.Contains(t, out, "Explorer")
	assert.Contains(t, out, "40.0%")
	assert.Contains(t, out, "Strong")
	assert.Contains(t, out, "Twin-Helix")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "mastery 5.50")
	assert.Contains(t, out, "Scored 1 of 1 response file(s)")
	assert.Contains(t, out, "Scoring completed in 100ms with 4 workers. Cache backend: none")
	assert.NotContains(t, out, "Overall volatility")
}

func TestWriteProfilesTextDetailWithContexts(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut, Precision: 2, Width: 120}
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	p := sampleProfile()
	p.ValidityMessages = []string{"Answers may be idealized."}
	p.ContextDependence = &schema.ContextDependence{
		Contexts: []schema.ContextProfile{{
			Context:      schema.StressContext,
			Pattern:      schema.VolatileShift,
			AverageShift: 1.25,
			TopShifts:    []schema.ContextShift{{Facet: schema.Anxiety, Delta: 2.5}},
		}},
		OverallVolatility: 0.75,
	}

	var buf bytes.Buffer
	err := writeProfilesText(&buf, []schema.BatchResult{{Source: "ada.json", Profile: p}}, cfg, fmtFloat, fmtPercent, time.Second)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "STRESS")
	assert.Contains(t, out, "VOLATILE")
	assert.Contains(t, out, "anxiety +2.50")
	assert.Contains(t, out, "Overall volatility: 0.75")
	assert.Contains(t, out, "⚠️  Answers may be idealized.")
}

func TestWriteProfilesTextBatch(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut, Precision: 2, Workers: 2, CacheBackend: schema.SQLiteBackend, Width: 160}
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	results := []schema.BatchResult{
		{Source: "ada.json", Profile: sampleProfile()},
		{Source: "broken.json", Error: "invalid rating 9 for question 3"},
	}

	var buf bytes.Buffer
	err := writeProfilesText(&buf, results, cfg, fmtFloat, fmtPercent, 2*time.Second)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "Duet: Seeker-Sage")
	assert.Contains(t, out, "Explorer 40.0%")
	assert.Contains(t, out, "broken.json")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "invalid rating 9")
	assert.Contains(t, out, "Scored 1 of 2 response file(s)")
	assert.Contains(t, out, "Cache backend: sqlite")
	assert.NotContains(t, out, "👤")
}

func TestWriteProfilesCSV(t *testing.T) {
	fmtFloat, fmtPercent := createFormatters(2)
	results := []schema.BatchResult{
		{Source: "ada.json", Profile: sampleProfile()},
		{Source: "broken.json", Error: "no answers"},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeProfilesCSV(w, results, fmtFloat, fmtPercent))
	w.Flush()
	require.NoError(t, w.Error())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Respondent,Source\nada,ada.json\n\nCategory,Dimension,Score\n"))
	assert.Contains(t, out, "HEXACO,Honesty-Humility,4.25\n")
	assert.Contains(t, out, "HEXACO,Openness,6.00\n")
	assert.Contains(t, out, "Motive,mastery,5.50\n")
	assert.Contains(t, out, "Affect,seeking,6.25\n")
	assert.Contains(t, out, "\nArchetype,Probability\nExplorer,40.0%\n")
	assert.Contains(t, out, "Completed,2026-03-01T12:00:00Z\n")
	assert.Contains(t, out, "Validity Flag,Status\nIdealized,OK\nRandom,OK\nInattentive,OK\n")
	assert.Contains(t, out, "Summary,Duet: Seeker-Sage\n")
	assert.Contains(t, out, "S2 (Top 2 Sum),78.0%\n")
	assert.Contains(t, out, "Entropy (Normalized),71.0%\n")
	assert.Contains(t, out, "Duet Details,Value\nMode,TWIN_HELIX\nAnchor,Explorer\nLens,Philosopher\nIdentity,Seeker-Sage\n")
	assert.True(t, strings.HasSuffix(out, "\nRespondent,Source\nbroken.json,broken.json\n\nError\nno answers\n"))
}

func TestWriteProfilesJSONFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "profiles.json")
	cfg := &contract.Config{Output: schema.JSONOut, Precision: 2, OutputFile: outFile}

	results := []schema.BatchResult{{Source: "ada.json", Profile: sampleProfile()}}
	require.NoError(t, WriteProfiles(results, cfg, time.Second))

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var decoded []schema.BatchResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	require.NotNil(t, decoded[0].Profile)
	assert.Equal(t, "ada", decoded[0].Profile.Respondent)
	assert.Equal(t, "Seeker-Sage", decoded[0].Profile.Roster.Duet.Identity)
}

func TestWriteProfilesParquet(t *testing.T) {
	t.Run("requires output file", func(t *testing.T) {
		cfg := &contract.Config{Output: schema.ParquetOut, Precision: 2}
		err := WriteProfiles(nil, cfg, time.Second)
		require.ErrorIs(t, err, errParquetNeedsFile)
	})

	t.Run("writes parquet file", func(t *testing.T) {
		outFile := filepath.Join(t.TempDir(), "profiles.parquet")
		cfg := &contract.Config{Output: schema.ParquetOut, Precision: 2, OutputFile: outFile}
		results := []schema.BatchResult{
			{Source: "ada.json", Profile: sampleProfile()},
			{Source: "broken.json", Error: "no answers"},
		}
		require.NoError(t, WriteProfiles(results, cfg, time.Second))

		data, err := os.ReadFile(outFile)
		require.NoError(t, err)
		require.Greater(t, len(data), 8)
		assert.Equal(t, "PAR1", string(data[:4]))
		assert.Equal(t, "PAR1", string(data[len(data)-4:]))
	})
}

func TestRespondentName(t *testing.T) {
	assert.Equal(t, "ada", respondentName(schema.BatchResult{Source: "x.json", Profile: sampleProfile()}))
	assert.Equal(t, "x.json", respondentName(schema.BatchResult{Source: "x.json", Profile: &schema.Profile{}}))
	assert.Equal(t, "y.json", respondentName(schema.BatchResult{Source: "y.json", Error: "boom"}))
}
