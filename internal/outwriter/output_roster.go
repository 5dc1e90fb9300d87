package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRoster outputs a single roster classification, dispatching based on the output format configured.
func WriteRoster(roster schema.RosterClassification, cfg *contract.Config) error {
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, roster)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeRosterCSV(csvWriter, roster, fmtPercent)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("%s output is only available for scored profiles", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRosterText(w, roster, cfg, fmtFloat, fmtPercent)
		}, "Wrote table")
	}
	return nil
}

// writeRosterText prints the ranked vector followed by the classification.
func writeRosterText(w io.Writer, roster schema.RosterClassification, cfg *contract.Config, fmtFloat, fmtPercent func(float64) string) error {
	var ranked [][]string
	for _, a := range schema.EnrichArchetypes(roster.Ranked) {
		ranked = append(ranked, []string{
			strconv.Itoa(a.Rank),
			schema.TitleName(a.Archetype),
			fmtPercent(a.Probability),
			a.Label,
		})
	}
	if err := renderTable(w, []string{"Rank", "Archetype", "Probability", "Label"}, ranked, tw.AlignRight); err != nil {
		return err
	}

	m := roster.Metrics
	facts := [][]string{
		{"Summary", roster.SummaryLabel},
		{"Structure", schema.StructureLabel(roster.Structure)},
		{"Mode", schema.ModeLabel(roster.ModeName())},
		{"Description", roster.Description},
		{"Confidence", confidenceLabel(cfg, roster.Confidence.Level)},
		{"Distance From Boundary", fmtFloat(roster.Confidence.DistanceFromBoundary)},
		{"S2 / S3", fmt.Sprintf("%s / %s", fmtPercent(m.S2), fmtPercent(m.S3))},
		{"r2 / g12", fmt.Sprintf("%s / %s", fmtPercent(m.R2), fmtPercent(m.G12))},
		{"Entropy", fmtPercent(m.EntropyN)},
	}
	if len(roster.Confidence.Notes) > 0 {
		facts = append(facts, []string{"Notes", strings.Join(roster.Confidence.Notes, "; ")})
	}
	if err := renderTable(w, []string{"Measure", "Value"}, facts, tw.AlignLeft); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Vocabulary: %s\n", roster.Version)
	return err
}

// writeRosterCSV writes the ranked vector and the classification sections.
func writeRosterCSV(w *csv.Writer, roster schema.RosterClassification, fmtPercent func(float64) string) error {
	s := &csvSections{w: w}
	var ranked [][]string
	for _, a := range roster.Ranked {
		ranked = append(ranked, []string{schema.TitleName(a.Archetype), fmtPercent(a.Probability)})
	}
	if err := s.section([]string{"Archetype", "Probability"}, ranked); err != nil {
		return err
	}
	return writeRosterCSVSections(s, roster, fmtPercent)
}
