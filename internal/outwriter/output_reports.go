package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/hpmalabs/hpma/core/report"
	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
)

// batchReportTitle titles the HTML page of more than one report.
const batchReportTitle = "HPMA Reports"

// WriteReports outputs assembled reports in the configured report format.
func WriteReports(reports []*schema.Report, cfg *contract.Config) error {
	switch cfg.Format {
	case schema.JSONReport:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, reports)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.HTMLReport:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := w.Write(renderReportsHTML(reports))
			return err
		}, "Wrote HTML"); err != nil {
			return fmt.Errorf("error writing HTML output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := io.WriteString(w, renderReportsMarkdown(reports))
			return err
		}, "Wrote markdown"); err != nil {
			return fmt.Errorf("error writing markdown output: %w", err)
		}
	}
	return nil
}

// renderReportsMarkdown renders every report, separated by a blank line.
func renderReportsMarkdown(reports []*schema.Report) string {
	docs := make([]string, len(reports))
	for i, r := range reports {
		docs[i] = report.RenderMarkdown(r)
	}
	return strings.Join(docs, "\n\n") + "\n"
}

// renderReportsHTML renders a single report as its own page and a batch as one shared page.
func renderReportsHTML(reports []*schema.Report) []byte {
	if len(reports) == 1 {
		return report.RenderHTML(reports[0])
	}
	return report.MarkdownToHTML(renderReportsMarkdown(reports), batchReportTitle)
}
