package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// questionRow is a question together with the prompt shown to the respondent.
type questionRow struct {
	schema.Question
	Prompt string `json:"prompt"`
}

// WriteQuestions outputs bank questions, dispatching based on the output format configured.
// The prompt function renders the text shown to respondents, including context stems.
func WriteQuestions(questions []schema.Question, prompt func(schema.Question) string, cfg *contract.Config) error {
	rows := make([]questionRow, len(questions))
	for i, q := range questions {
		rows[i] = questionRow{Question: q, Prompt: prompt(q)}
	}

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQuestionsCSV(w, rows)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("%s output is only available for scored profiles", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQuestionsTable(w, rows, cfg)
		}, "Wrote table")
	}
	return nil
}

// writeQuestionsTable prints one row per question with the prompt truncated to the terminal.
func writeQuestionsTable(w io.Writer, rows []questionRow, cfg *contract.Config) error {
	promptWidth := getMaxTableTextWidth(cfg, 45)

	var data [][]string
	for _, r := range rows {
		reversed := ""
		if r.Reversed {
			reversed = "R"
		}
		data = append(data, []string{
			strconv.Itoa(r.ID),
			string(r.Module),
			r.FacetID,
			reversed,
			contract.TruncateText(r.Prompt, promptWidth),
		})
	}
	if err := renderTable(w, []string{"ID", "Module", "Facet", "Rev", "Question"}, data, tw.AlignLeft); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d questions\n", len(rows))
	return err
}

// writeQuestionsCSV writes one flat row per question.
func writeQuestionsCSV(w io.Writer, rows []questionRow) error {
	header := []string{"id", "module", "domain", "subdomain", "facet_id", "reversed", "context", "prompt"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range rows {
			record := []string{
				strconv.Itoa(r.ID),
				string(r.Module),
				string(r.Domain),
				r.Subdomain,
				r.FacetID,
				strconv.FormatBool(r.Reversed),
				string(r.Context),
				r.Prompt,
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
