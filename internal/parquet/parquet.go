// Package parquet provides data structures and functions for exporting hpma
// profiles and assessment history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hpmalabs/hpma/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single scoring run with metadata.
// This struct maps to the hpma_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalAssessments is the number of profiles scored in this run
	TotalAssessments int32 `parquet:"total_assessments,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Assessment is the summary of one scored profile.
// This struct maps to the hpma_assessments database table.
type Assessment struct {
	RunID        int64     `parquet:"run_id,snappy"`
	AssessmentID string    `parquet:"assessment_id,snappy"`
	Respondent   string    `parquet:"respondent,snappy,dict"`
	Source       string    `parquet:"source,snappy"`
	ScoredAt     time.Time `parquet:"scored_at,snappy"`
	Structure    string    `parquet:"structure,snappy,dict"`
	Mode         string    `parquet:"mode,snappy,dict"`
	SummaryLabel string    `parquet:"summary_label,snappy"`
	Confidence   string    `parquet:"confidence,snappy,dict"`
	Primary      string    `parquet:"primary_archetype,snappy,dict"`
	Secondary    string    `parquet:"secondary_archetype,snappy,dict"`
	Tertiary     string    `parquet:"tertiary_archetype,snappy,dict"`
	Uncertainty  float64   `parquet:"uncertainty,snappy"`
	EntropyN     float64   `parquet:"entropy_n,snappy"`
	ScoreH       float64   `parquet:"score_h,snappy"`
	ScoreE       float64   `parquet:"score_e,snappy"`
	ScoreX       float64   `parquet:"score_x,snappy"`
	ScoreA       float64   `parquet:"score_a,snappy"`
	ScoreC       float64   `parquet:"score_c,snappy"`
	ScoreO       float64   `parquet:"score_o,snappy"`
	Flagged      bool      `parquet:"flagged,snappy"`
}

// ProfileRow is the flat, one-row-per-respondent rendering of a scored profile.
type ProfileRow struct {
	Respondent   string  `parquet:"respondent,snappy"`
	Source       string  `parquet:"source,snappy"`
	Error        *string `parquet:"error,optional,snappy"`
	Structure    string  `parquet:"structure,snappy,dict"`
	Mode         string  `parquet:"mode,snappy,dict"`
	SummaryLabel string  `parquet:"summary_label,snappy"`
	ClassName    string  `parquet:"class_name,snappy"`
	Confidence   string  `parquet:"confidence,snappy,dict"`
	Uncertainty  float64 `parquet:"uncertainty,snappy"`
	EntropyN     float64 `parquet:"entropy_n,snappy"`

	ScoreH float64 `parquet:"score_h,snappy"`
	ScoreE float64 `parquet:"score_e,snappy"`
	ScoreX float64 `parquet:"score_x,snappy"`
	ScoreA float64 `parquet:"score_a,snappy"`
	ScoreC float64 `parquet:"score_c,snappy"`
	ScoreO float64 `parquet:"score_o,snappy"`

	ProbExplorer    float64 `parquet:"prob_explorer,snappy"`
	ProbOrganizer   float64 `parquet:"prob_organizer,snappy"`
	ProbConnector   float64 `parquet:"prob_connector,snappy"`
	ProbProtector   float64 `parquet:"prob_protector,snappy"`
	ProbPerformer   float64 `parquet:"prob_performer,snappy"`
	ProbPhilosopher float64 `parquet:"prob_philosopher,snappy"`

	AttachmentStyle     string  `parquet:"attachment_style,snappy,dict"`
	AntagonismComposite float64 `parquet:"antagonism_composite,snappy"`
	Flagged             bool    `parquet:"flagged,snappy"`
}

// write streams rows of any parquet-tagged struct to w.
func write[T any](rows []T, w io.Writer) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows to it.
func writeFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return write(rows, file)
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteAssessmentsParquet writes a slice of Assessment structs to a Parquet file.
func WriteAssessmentsParquet(data []Assessment, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteProfileRows writes profile rows to w.
func WriteProfileRows(data []ProfileRow, w io.Writer) error {
	return write(data, w)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:            record.RunID,
			StartTime:        record.StartTime,
			EndTime:          record.EndTime,
			RunDurationMs:    record.RunDurationMs,
			TotalAssessments: record.TotalAssessments,
			ConfigParams:     record.ConfigParams,
		}
	}
	return result
}

// ConvertAssessmentRecords converts schema.AssessmentRecord to Assessment for Parquet export.
func ConvertAssessmentRecords(records []schema.AssessmentRecord) []Assessment {
	result := make([]Assessment, len(records))
	for i, r := range records {
		result[i] = Assessment(r)
	}
	return result
}

// ConvertBatchResults flattens scored results into profile rows. Failed results keep their error.
func ConvertBatchResults(results []schema.BatchResult) []ProfileRow {
	rows := make([]ProfileRow, len(results))
	for i, res := range results {
		row := ProfileRow{Source: res.Source}
		if res.Profile == nil {
			msg := res.Error
			row.Error = &msg
			rows[i] = row
			continue
		}

		p := res.Profile
		row.Respondent = p.Respondent
		row.Structure = string(p.Roster.Structure)
		row.Mode = p.Roster.ModeName()
		row.SummaryLabel = p.Roster.SummaryLabel
		row.ClassName = p.ClassName.Display
		row.Confidence = string(p.Roster.Confidence.Level)
		row.Uncertainty = p.Uncertainty
		row.EntropyN = p.Roster.Metrics.EntropyN

		row.ScoreH = p.HEXACO[schema.HonestyHumility]
		row.ScoreE = p.HEXACO[schema.Emotionality]
		row.ScoreX = p.HEXACO[schema.Extraversion]
		row.ScoreA = p.HEXACO[schema.Agreeableness]
		row.ScoreC = p.HEXACO[schema.Conscientiousness]
		row.ScoreO = p.HEXACO[schema.Openness]

		row.ProbExplorer = p.Archetypes[schema.Explorer]
		row.ProbOrganizer = p.Archetypes[schema.Organizer]
		row.ProbConnector = p.Archetypes[schema.Connector]
		row.ProbProtector = p.Archetypes[schema.Protector]
		row.ProbPerformer = p.Archetypes[schema.Performer]
		row.ProbPhilosopher = p.Archetypes[schema.Philosopher]

		row.AttachmentStyle = string(p.Attachment.Style)
		row.AntagonismComposite = p.Antagonism.Composite
		row.Flagged = p.Validity.Any()
		rows[i] = row
	}
	return rows
}
