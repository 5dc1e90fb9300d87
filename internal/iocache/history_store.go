package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
)

// Table names for history tracking.
const (
	runsTable        = "hpma_runs"
	assessmentsTable = "hpma_assessments"
)

// assessmentColumns lists the assessment columns in insert and select order.
var assessmentColumns = []string{
	"run_id", "assessment_id", "respondent", "source", "scored_at",
	"structure", "mode", "summary_label", "confidence",
	"primary_archetype", "secondary_archetype", "tertiary_archetype",
	"uncertainty", "entropy_n",
	"score_h", "score_e", "score_x", "score_a", "score_c", "score_o",
	"flagged",
}

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore and migrates its schema to the latest version.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history store: %w", err)
	}

	if err := applyMigrations(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// disabled reports whether the store is a no-op.
func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new scoring run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	values := strings.Join(placeholders(hs.backend, 2), ", ")

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (%s) RETURNING run_id`, quotedTableName, values)
		err = hs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (%s)`, quotedTableName, values)
		var result sql.Result
		result, err = hs.db.Exec(query, formatTime(startTime, hs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// EndRun updates the scoring run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalAssessments int) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	p := placeholders(hs.backend, 4)

	// First, get the start_time to calculate duration
	row := hs.db.QueryRow(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, p[0]), runID)
	startTime, err := hs.scanTime(row)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()
	query := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_assessments = %s WHERE run_id = %s`,
		quotedTableName, p[0], p[1], p[2], p[3])
	if _, err := hs.db.Exec(query, formatTime(endTime, hs.backend), durationMs, totalAssessments, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	return nil
}

// scanTime reads a single timestamp column, parsing SQLite text timestamps.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if hs.backend != schema.SQLiteBackend {
		var t time.Time
		err := row.Scan(&t)
		return t, err
	}
	var s string
	if err := row.Scan(&s); err != nil {
		return time.Time{}, err
	}
	return parseTime(s)
}

// newAssessmentRecord flattens a profile into a history row.
func newAssessmentRecord(runID int64, source string, p *schema.Profile) schema.AssessmentRecord {
	return schema.AssessmentRecord{
		RunID:        runID,
		AssessmentID: uuid.NewString(),
		Respondent:   p.Respondent,
		Source:       source,
		ScoredAt:     p.ComputedAt,
		Structure:    string(p.Roster.Structure),
		Mode:         p.Roster.ModeName(),
		SummaryLabel: p.Roster.SummaryLabel,
		Confidence:   string(p.Roster.Confidence.Level),
		Primary:      string(p.Roster.Top(0)),
		Secondary:    string(p.Roster.Top(1)),
		Tertiary:     string(p.Roster.Top(2)),
		Uncertainty:  p.Uncertainty,
		EntropyN:     p.Roster.Metrics.EntropyN,
		ScoreH:       p.HEXACO[schema.HonestyHumility],
		ScoreE:       p.HEXACO[schema.Emotionality],
		ScoreX:       p.HEXACO[schema.Extraversion],
		ScoreA:       p.HEXACO[schema.Agreeableness],
		ScoreC:       p.HEXACO[schema.Conscientiousness],
		ScoreO:       p.HEXACO[schema.Openness],
		Flagged:      p.Validity.Any(),
	}
}

// RecordAssessment stores the summary of one scored profile.
func (hs *HistoryStoreImpl) RecordAssessment(runID int64, source string, profile *schema.Profile) error {
	if hs.disabled() || profile == nil {
		return nil
	}

	r := newAssessmentRecord(runID, source, profile)
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteTableName(assessmentsTable, hs.backend),
		strings.Join(assessmentColumns, ", "),
		strings.Join(placeholders(hs.backend, len(assessmentColumns)), ", "))

	_, err := hs.db.Exec(query,
		r.RunID, r.AssessmentID, r.Respondent, r.Source, formatTime(r.ScoredAt, hs.backend),
		r.Structure, r.Mode, r.SummaryLabel, r.Confidence,
		r.Primary, r.Secondary, r.Tertiary,
		r.Uncertainty, r.EntropyN,
		r.ScoreH, r.ScoreE, r.ScoreX, r.ScoreA, r.ScoreC, r.ScoreO,
		r.Flagged,
	)
	if err != nil {
		return fmt.Errorf("failed to insert assessment: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.disabled() {
		return status, nil
	}

	runs := quoteTableName(runsTable, hs.backend)

	row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row = hs.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY run_id DESC LIMIT 1", runs))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		var err error
		row = hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", runs))
		if status.LastRunTime, err = hs.scanTime(row); err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}

		row = hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runs))
		if status.OldestRunTime, err = hs.scanTime(row); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
	}

	for _, table := range []string{runsTable, assessmentsTable} {
		var count int64
		row = hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalAssessments = int(status.TableSizes[assessmentsTable])

	return status, nil
}

// GetAllRuns retrieves all runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, start_time, end_time, run_duration_ms, total_assessments, config_params FROM %s ORDER BY run_id",
		quoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.RunDurationMs, &record.TotalAssessments, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			if record.StartTime, err = parseTime(startTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.RunDurationMs, &record.TotalAssessments, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllAssessments retrieves all assessments from the store.
func (hs *HistoryStoreImpl) GetAllAssessments() ([]schema.AssessmentRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY run_id, scored_at, assessment_id",
		strings.Join(assessmentColumns, ", "), quoteTableName(assessmentsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AssessmentRecord
	for rows.Next() {
		var r schema.AssessmentRecord
		var scoredAtStr string
		var scoredAt any = &r.ScoredAt
		if hs.backend == schema.SQLiteBackend {
			scoredAt = &scoredAtStr
		}

		if err := rows.Scan(
			&r.RunID, &r.AssessmentID, &r.Respondent, &r.Source, scoredAt,
			&r.Structure, &r.Mode, &r.SummaryLabel, &r.Confidence,
			&r.Primary, &r.Secondary, &r.Tertiary,
			&r.Uncertainty, &r.EntropyN,
			&r.ScoreH, &r.ScoreE, &r.ScoreX, &r.ScoreA, &r.ScoreC, &r.ScoreO,
			&r.Flagged,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		if hs.backend == schema.SQLiteBackend {
			if r.ScoredAt, err = parseTime(scoredAtStr); err != nil {
				return nil, fmt.Errorf("failed to parse scored_at: %w", err)
			}
		}

		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessments: %w", err)
	}
	return results, nil
}
