package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(logOut, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// csvSections writes blocks of header plus rows separated by an empty line.
type csvSections struct {
	w       *csv.Writer
	started bool
}

func (s *csvSections) section(header []string, rows [][]string) error {
	if s.started {
		if err := s.w.Write([]string{}); err != nil {
			return err
		}
	}
	s.started = true
	if err := s.w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	return s.w.WriteAll(rows)
}

// createFormatters creates the common formatter closures used across multiple output types.
// Percentages carry one decimal less than plain scores.
func createFormatters(precision int) (fmtFloat, fmtPercent func(float64) string) {
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	fmtPercent = func(v float64) string {
		return fmt.Sprintf("%.*f%%", max(precision-1, 0), v*100)
	}
	return fmtFloat, fmtPercent
}

// renderTable writes a single table with the given row alignment.
func renderTable(w io.Writer, headers []string, rows [][]string, align tw.Align) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = align
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// confidenceLabel returns the confidence level, colored when the config asks for it.
func confidenceLabel(cfg *contract.Config, level schema.ConfidenceLevel) string {
	if cfg.UseColors {
		return contract.GetColorConfidenceLabel(level)
	}
	return contract.GetPlainConfidenceLabel(level)
}

// validityLabel returns FLAGGED or OK, colored when the config asks for it.
func validityLabel(cfg *contract.Config, flagged bool) string {
	if cfg.UseColors {
		return contract.GetColorValidityLabel(flagged)
	}
	return contract.GetPlainValidityLabel(flagged)
}
