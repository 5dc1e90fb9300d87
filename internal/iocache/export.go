package iocache

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/internal/parquet"
)

// ExecuteHistoryExport exports the global history store to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	return ExportHistory(Manager.GetHistoryStore(), outputFile, os.Stdout)
}

// ExportHistory writes every run and assessment of store to
// outputFile+".runs.parquet" and outputFile+".assessments.parquet".
func ExportHistory(store contract.HistoryStore, outputFile string, w io.Writer) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is not enabled")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total assessments: %d\n", status.TotalAssessments)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	assessments, err := store.GetAllAssessments()
	if err != nil {
		return fmt.Errorf("failed to retrieve assessments: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetAssessments := parquet.ConvertAssessmentRecords(assessments)

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	assessmentsFile := outputFile + ".assessments.parquet"
	if err := parquet.WriteAssessmentsParquet(parquetAssessments, assessmentsFile); err != nil {
		return fmt.Errorf("failed to write assessments: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d assessments to: %s\n", len(parquetAssessments), assessmentsFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be read with DuckDB, Pandas (via pyarrow), Apache Arrow or Spark.")
	return nil
}
