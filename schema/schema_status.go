package schema

import "time"

// CacheStatus represents the status of the profile cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the assessment history store.
type HistoryStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	TotalRuns        int              `json:"total_runs"`
	LastRunID        int64            `json:"last_run_id"`
	LastRunTime      time.Time        `json:"last_run_time"`
	OldestRunTime    time.Time        `json:"oldest_run_time"`
	TotalAssessments int              `json:"total_assessments"`
	TableSizes       map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the hpma_runs table.
type RunRecord struct {
	RunID            int64
	StartTime        time.Time
	EndTime          *time.Time
	RunDurationMs    *int32
	TotalAssessments int32
	ConfigParams     *string
}

// AssessmentRecord represents a row from the hpma_assessments table.
type AssessmentRecord struct {
	RunID        int64
	AssessmentID string
	Respondent   string
	Source       string
	ScoredAt     time.Time
	Structure    string
	Mode         string
	SummaryLabel string
	Confidence   string
	Primary      string
	Secondary    string
	Tertiary     string
	Uncertainty  float64
	EntropyN     float64
	ScoreH       float64
	ScoreE       float64
	ScoreX       float64
	ScoreA       float64
	ScoreC       float64
	ScoreO       float64
	Flagged      bool
}
