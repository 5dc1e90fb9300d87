package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/internal/parquet"
	"github.com/hpmalabs/hpma/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// errParquetNeedsFile is returned when parquet output would go to the terminal.
var errParquetNeedsFile = errors.New("parquet output requires --output-file")

// WriteProfiles outputs scored profiles, dispatching based on the output format configured.
func WriteProfiles(results []schema.BatchResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeProfilesCSV(csvWriter, results, fmtFloat, fmtPercent)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteProfileRows(parquet.ConvertBatchResults(results), w)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfilesText(w, results, cfg, fmtFloat, fmtPercent, duration)
		}, "Wrote table")
	}
	return nil
}

// writeProfilesText prints the detailed view for a single profile and a summary table for a batch.
func writeProfilesText(w io.Writer, results []schema.BatchResult, cfg *contract.Config, fmtFloat, fmtPercent func(float64) string, duration time.Duration) error {
	if len(results) == 1 && results[0].Profile != nil {
		if err := writeProfileDetail(w, results[0], cfg, fmtFloat, fmtPercent); err != nil {
			return err
		}
	} else if err := writeProfileSummaryTable(w, results, cfg, fmtPercent); err != nil {
		return err
	}

	scored := 0
	for _, r := range results {
		if r.Profile != nil {
			scored++
		}
	}
	if _, err := fmt.Fprintf(w, "Scored %d of %d response file(s)\n", scored, len(results)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scoring completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeProfileSummaryTable prints one row per input file.
func writeProfileSummaryTable(w io.Writer, results []schema.BatchResult, cfg *contract.Config, fmtPercent func(float64) string) error {
	textWidth := getMaxTableTextWidth(cfg, 60)

	var data [][]string
	for i, r := range results {
		if r.Profile == nil {
			data = append(data, []string{
				strconv.Itoa(i + 1),
				contract.TruncateText(respondentName(r), textWidth),
				"ERROR",
				contract.TruncateText(r.Error, textWidth),
				"-", "-", "-",
			})
			continue
		}
		p := r.Profile
		top := "-"
		if len(p.Roster.Ranked) > 0 {
			top = fmt.Sprintf("%s %s", schema.TitleName(p.Roster.Ranked[0].Archetype), fmtPercent(p.Roster.Ranked[0].Probability))
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(respondentName(r), textWidth),
			schema.StructureLabel(p.Roster.Structure),
			contract.TruncateText(p.Roster.SummaryLabel, textWidth),
			top,
			confidenceLabel(cfg, p.Roster.Confidence.Level),
			validityLabel(cfg, p.Validity.Any()),
		})
	}

	headers := []string{"#", "Respondent", "Structure", "Summary", "Top", "Confidence", "Validity"}
	return renderTable(w, headers, data, tw.AlignRight)
}

// writeProfileDetail prints every section of one profile.
func writeProfileDetail(w io.Writer, r schema.BatchResult, cfg *contract.Config, fmtFloat, fmtPercent func(float64) string) error {
	p := r.Profile

	if _, err := fmt.Fprintf(w, "👤 %s — %s\n", respondentName(r), p.ClassName.Display); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "🎼 %s (%s)\n", p.Roster.SummaryLabel, p.Roster.Description); err != nil {
		return err
	}

	// HEXACO
	var hexaco [][]string
	for _, d := range schema.AllDomains {
		hexaco = append(hexaco, []string{schema.DomainLabels[d], fmtFloat(p.HEXACO[d])})
	}
	if err := renderTable(w, []string{"Domain", "Score"}, hexaco, tw.AlignRight); err != nil {
		return err
	}

	// Archetypes
	var archetypes [][]string
	for _, a := range schema.EnrichArchetypes(p.Roster.Ranked) {
		archetypes = append(archetypes, []string{
			strconv.Itoa(a.Rank),
			schema.TitleName(a.Archetype),
			fmtPercent(a.Probability),
			a.Label,
		})
	}
	if err := renderTable(w, []string{"Rank", "Archetype", "Probability", "Label"}, archetypes, tw.AlignRight); err != nil {
		return err
	}

	// Roster and scales
	if err := renderTable(w, []string{"Measure", "Value"}, profileFacts(p, cfg, fmtFloat, fmtPercent), tw.AlignLeft); err != nil {
		return err
	}

	// Context dependence
	if cd := p.ContextDependence; cd != nil && len(cd.Contexts) > 0 {
		var contexts [][]string
		for _, c := range cd.Contexts {
			top := "-"
			if len(c.TopShifts) > 0 {
				top = fmt.Sprintf("%s %+.2f", c.TopShifts[0].Facet, c.TopShifts[0].Delta)
			}
			contexts = append(contexts, []string{string(c.Context), string(c.Pattern), fmtFloat(c.AverageShift), top})
		}
		if err := renderTable(w, []string{"Context", "Pattern", "Avg Shift", "Top Shift"}, contexts, tw.AlignRight); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Overall volatility: %s\n", fmtFloat(cd.OverallVolatility)); err != nil {
			return err
		}
	}

	for _, msg := range p.ValidityMessages {
		if _, err := fmt.Fprintf(w, "⚠️  %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}

// profileFacts lists the roster, scale and validity values of a profile as key/value rows.
func profileFacts(p *schema.Profile, cfg *contract.Config, fmtFloat, fmtPercent func(float64) string) [][]string {
	m := p.Roster.Metrics
	rows := [][]string{
		{"Structure", schema.StructureLabel(p.Roster.Structure)},
		{"Mode", schema.ModeLabel(p.Roster.ModeName())},
		{"Confidence", confidenceLabel(cfg, p.Roster.Confidence.Level)},
		{"Distance From Boundary", fmtFloat(p.Roster.Confidence.DistanceFromBoundary)},
		{"S2 / S3", fmt.Sprintf("%s / %s", fmtPercent(m.S2), fmtPercent(m.S3))},
		{"r2 / g12", fmt.Sprintf("%s / %s", fmtPercent(m.R2), fmtPercent(m.G12))},
		{"Entropy", fmtPercent(m.EntropyN)},
		{"Uncertainty", fmtPercent(p.Uncertainty)},
	}
	if p.Roster.FaultReason != "" {
		rows = append(rows, []string{"Fault Reason", p.Roster.FaultReason})
	}

	motives := make([]string, 0, len(schema.AllMotives))
	for _, mo := range schema.AllMotives {
		motives = append(motives, fmt.Sprintf("%s %s", mo, fmtFloat(p.Motives[mo])))
	}
	affects := make([]string, 0, len(schema.AllAffects))
	for _, af := range schema.AllAffects {
		affects = append(affects, fmt.Sprintf("%s %s", af, fmtFloat(p.Affects[af])))
	}
	rows = append(rows,
		[]string{"Motives", strings.Join(motives, ", ")},
		[]string{"Affects", strings.Join(affects, ", ")},
		[]string{"Attachment", fmt.Sprintf("%s (anxiety %s, avoidance %s)", p.Attachment.Style, fmtFloat(p.Attachment.Anxiety), fmtFloat(p.Attachment.Avoidance))},
		[]string{"Antagonism", fmt.Sprintf("%s (elevated: %t)", fmtFloat(p.Antagonism.Composite), p.Antagonism.Elevated)},
		[]string{"Idealized", validityLabel(cfg, p.Validity.Idealized)},
		[]string{"Random", validityLabel(cfg, p.Validity.Random)},
		[]string{"Inattentive", validityLabel(cfg, p.Validity.Inattentive)},
		[]string{"Answered", strconv.Itoa(p.Answered)},
	)
	return rows
}

// writeProfilesCSV writes each result as a block of sections, one block per input file.
func writeProfilesCSV(w *csv.Writer, results []schema.BatchResult, fmtFloat, fmtPercent func(float64) string) error {
	s := &csvSections{w: w}
	for _, r := range results {
		if err := s.section([]string{"Respondent", "Source"}, [][]string{{respondentName(r), r.Source}}); err != nil {
			return err
		}
		if r.Profile == nil {
			if err := s.section([]string{"Error"}, [][]string{{r.Error}}); err != nil {
				return err
			}
			continue
		}
		if err := writeProfileCSVSections(s, r.Profile, fmtFloat, fmtPercent); err != nil {
			return err
		}
	}
	return nil
}

// writeProfileCSVSections writes the score, archetype, validity and roster sections of one profile.
func writeProfileCSVSections(s *csvSections, p *schema.Profile, fmtFloat, fmtPercent func(float64) string) error {
	var scores [][]string
	for _, d := range schema.AllDomains {
		scores = append(scores, []string{"HEXACO", schema.DomainLabels[d], fmtFloat(p.HEXACO[d])})
	}
	for _, m := range schema.AllMotives {
		scores = append(scores, []string{"Motive", string(m), fmtFloat(p.Motives[m])})
	}
	for _, a := range schema.AllAffects {
		scores = append(scores, []string{"Affect", string(a), fmtFloat(p.Affects[a])})
	}
	if err := s.section([]string{"Category", "Dimension", "Score"}, scores); err != nil {
		return err
	}

	var archetypes [][]string
	for _, a := range schema.AllArchetypes {
		archetypes = append(archetypes, []string{schema.TitleName(a), fmtPercent(p.Archetypes[a])})
	}
	if err := s.section([]string{"Archetype", "Probability"}, archetypes); err != nil {
		return err
	}

	metadata := [][]string{
		{"Completed", p.ComputedAt.Format(time.RFC3339)},
		{"Answered", strconv.Itoa(p.Answered)},
		{"Uncertainty", fmtPercent(p.Uncertainty)},
		{"Class Name", p.ClassName.Display},
	}
	if err := s.section([]string{"Metadata", "Value"}, metadata); err != nil {
		return err
	}

	validity := [][]string{
		{"Idealized", contract.GetPlainValidityLabel(p.Validity.Idealized)},
		{"Random", contract.GetPlainValidityLabel(p.Validity.Random)},
		{"Inattentive", contract.GetPlainValidityLabel(p.Validity.Inattentive)},
	}
	if err := s.section([]string{"Validity Flag", "Status"}, validity); err != nil {
		return err
	}

	return writeRosterCSVSections(s, p.Roster, fmtPercent)
}

// writeRosterCSVSections writes the classification, derived metrics and structure details.
func writeRosterCSVSections(s *csvSections, r schema.RosterClassification, fmtPercent func(float64) string) error {
	classification := [][]string{
		{"Version", r.Version},
		{"Structure", string(r.Structure)},
		{"Mode", r.ModeName()},
		{"Summary", r.SummaryLabel},
		{"Confidence", contract.GetPlainConfidenceLabel(r.Confidence.Level)},
	}
	if r.FaultReason != "" {
		classification = append(classification, []string{"Fault Reason", r.FaultReason})
	}
	if err := s.section([]string{"Roster Classification", "Value"}, classification); err != nil {
		return err
	}

	metrics := [][]string{
		{"S2 (Top 2 Sum)", fmtPercent(r.Metrics.S2)},
		{"S3 (Top 3 Sum)", fmtPercent(r.Metrics.S3)},
		{"r2 (Blend Ratio)", fmtPercent(r.Metrics.R2)},
		{"g12 (Gap)", fmtPercent(r.Metrics.G12)},
		{"Entropy (Normalized)", fmtPercent(r.Metrics.EntropyN)},
	}
	if err := s.section([]string{"Derived Metric", "Value"}, metrics); err != nil {
		return err
	}

	switch {
	case r.Duet != nil:
		return s.section([]string{"Duet Details", "Value"}, [][]string{
			{"Mode", string(r.Duet.Mode)},
			{"Anchor", schema.TitleName(r.Duet.Anchor)},
			{"Lens", schema.TitleName(r.Duet.Lens)},
			{"Identity", r.Duet.Identity},
			{"Label", r.Duet.Label},
		})
	case r.Trio != nil:
		return s.section([]string{"Trio Details", "Value"}, [][]string{
			{"Mode", string(r.Trio.Mode)},
			{"Primary", schema.TitleName(r.Trio.Primary)},
			{"Secondary", schema.TitleName(r.Trio.Secondary)},
			{"Tertiary", schema.TitleName(r.Trio.Tertiary)},
			{"Label", r.Trio.Label},
		})
	case r.Choral != nil:
		return s.section([]string{"Polyphonic Details", "Value"}, [][]string{
			{"Mode", string(r.Choral.Mode)},
			{"Contributing", strings.Join(schema.TitleNames(r.Choral.Contributing), "; ")},
			{"Label", r.Choral.Label},
		})
	}
	return nil
}

// respondentName prefers the respondent recorded in the profile over the source file.
func respondentName(r schema.BatchResult) string {
	if r.Profile != nil && r.Profile.Respondent != "" {
		return r.Profile.Respondent
	}
	return r.Source
}
