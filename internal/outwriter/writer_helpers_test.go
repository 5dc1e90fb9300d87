package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name        string
		precision   int
		value       float64
		wantFloat   string
		wantPercent string
	}{
		{"archetype probability", 2, 0.40, "0.40", "40.0%"},
		{"probability at default precision", 3, 0.1234, "0.123", "12.34%"},
		{"negative z-score", 2, -1.3333, "-1.33", "-133.3%"},
		{"zero precision", 0, 0.40, "0", "40%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, fmtPercent := createFormatters(tt.precision)
			assert.Equal(t, tt.wantFloat, fmtFloat(tt.value))
			assert.Equal(t, tt.wantPercent, fmtPercent(tt.value))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{
			name: "ranked archetypes",
			data: []schema.RankedArchetype{{Archetype: schema.Explorer, Probability: 0.4}},
			want: "[\n  {\n    \"archetype\": \"explorer\",\n    \"probability\": 0.4\n  }\n]\n",
		},
		{
			name: "empty batch",
			data: []schema.RankedArchetype{},
			want: "[]\n",
		},
		{
			name: "structure code",
			data: schema.Duet,
			want: "\"DUET\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeJSON(&buf, tt.data))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteJSONRejectsNaNScore(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, schema.DomainScores{schema.Openness: math.NaN()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		rows   [][]string
		want   string
	}{
		{
			name:   "domain scores",
			header: []string{"Dimension", "Score", "Z"},
			rows: [][]string{
				{"Openness", "6.00", "1.33"},
				{"Emotionality", "3.25", "-0.50"},
			},
			want: "Dimension,Score,Z\nOpenness,6.00,1.33\nEmotionality,3.25,-0.50\n",
		},
		{
			name:   "no respondents",
			header: []string{"Respondent", "Structure"},
			rows:   [][]string{},
			want:   "Respondent,Structure\n",
		},
		{
			name:   "summary label with a comma",
			header: []string{"Respondent", "Summary"},
			rows:   [][]string{{"ada", "Duet: Visionary Builder, Twin-Helix"}},
			want:   "Respondent,Summary\nada,\"Duet: Visionary Builder, Twin-Helix\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeCSVWithHeader(&buf, tt.header, func(w *csv.Writer) error {
				return w.WriteAll(tt.rows)
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteCSVWithHeaderRowError(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"Facet"}, func(*csv.Writer) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}

func TestCSVSections(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	s := &csvSections{w: w}

	require.NoError(t, s.section([]string{"Archetype", "Probability"}, [][]string{{"Explorer", "40.0%"}}))
	require.NoError(t, s.section([]string{"Metadata", "Value"}, [][]string{{"Answered", "120"}}))
	w.Flush()
	require.NoError(t, w.Error())

	assert.Equal(t, "Archetype,Probability\nExplorer,40.0%\n\nMetadata,Value\nAnswered,120\n", buf.String())
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{{"explorer", "40.0%"}, {"organizer", "38.0%"}}
	require.NoError(t, renderTable(&buf, []string{"Archetype", "Probability"}, rows, tw.AlignLeft))

	out := buf.String()
	assert.Contains(t, out, "explorer")
	assert.Contains(t, out, "38.0%")
	assert.Less(t, strings.Index(out, "explorer"), strings.Index(out, "organizer"))
}

func TestLabels(t *testing.T) {
	plain := &contract.Config{}
	assert.Equal(t, "HIGH", confidenceLabel(plain, schema.HighConfidence))
	assert.Equal(t, "LOW", confidenceLabel(plain, ""))
	assert.Equal(t, contract.FlaggedValue, validityLabel(plain, true))
	assert.Equal(t, contract.OKValue, validityLabel(plain, false))

	colored := &contract.Config{UseColors: true}
	assert.Contains(t, confidenceLabel(colored, schema.MediumConfidence), "MEDIUM")
	assert.Contains(t, validityLabel(colored, true), contract.FlaggedValue)
}

func TestWriteWithFileStdout(t *testing.T) {
	var notice bytes.Buffer
	logOut = &notice
	t.Cleanup(func() { logOut = os.Stderr })

	called := false
	err := writeWithFile("", func(w io.Writer) error {
		called = true
		return nil
	}, "Wrote profiles")

	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, notice.String(), "no save notice for stdout")
}

func TestWriteWithFileProfiles(t *testing.T) {
	var notice bytes.Buffer
	logOut = &notice
	t.Cleanup(func() { logOut = os.Stderr })

	path := filepath.Join(t.TempDir(), "profiles.json")
	ranked := []schema.RankedArchetype{
		{Archetype: schema.Explorer, Probability: 0.4},
		{Archetype: schema.Organizer, Probability: 0.38},
	}

	err := writeWithFile(path, func(w io.Writer) error {
		return writeJSON(w, ranked)
	}, "Wrote JSON")
	require.NoError(t, err)
	assert.Equal(t, "💾 Wrote JSON to "+path+"\n", notice.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []schema.RankedArchetype
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, ranked, got)
}

func TestWriteWithFileCSVDimensions(t *testing.T) {
	logOut = io.Discard
	t.Cleanup(func() { logOut = os.Stderr })

	path := filepath.Join(t.TempDir(), "dimensions.csv")
	err := writeWithFile(path, func(w io.Writer) error {
		return writeCSVWithHeader(w, []string{"Dimension", "Score"}, func(cw *csv.Writer) error {
			return cw.WriteAll([][]string{{"Openness", "6.00"}, {"Security", "4.50"}})
		})
	}, "Wrote CSV")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dimension,Score", "Openness,6.00", "Security,4.50"},
		strings.Split(strings.TrimSpace(string(data)), "\n"))
}

func TestWriteWithFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	err := writeWithFile(path, func(io.Writer) error { return assert.AnError }, "Wrote markdown")
	assert.Equal(t, assert.AnError, err)

	err = writeWithFile("/nonexistent/dir/report.md", func(io.Writer) error { return nil }, "Wrote markdown")
	require.Error(t, err)
}
