package cmd

import (
	"github.com/hpmalabs/hpma/core"
	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd scores response files into profiles.
var scoreCmd = &cobra.Command{
	Use:   "score <responses...>",
	Short: "Score response files into HEXACO profiles and roster classifications.",
	Long: `Score one or more response files concurrently.

Each file yields:
- HEXACO domain and facet scores, motives, affects and attachment style
- Archetype probabilities and the roster classification (structure, mode, confidence)
- Validity flags and, when context answers exist, context dependence
- A class name built from the roster and trait epithets

Response files are JSON or YAML ({"respondent": "...", "baseline": {...}, "contexts": {"WORK": {...}}})
or flat id,rating CSV.
Use "-" to read a single response set from standard input.

Examples:
  # Score one respondent
  hpma score ada.json

  # Score a folder of respondents with 8 workers
  hpma score 'responses/*.json' --workers 8

  # Keep rosters even when responding looks random
  hpma score ada.json --fault-on-invalid no

  # Export profiles for analytics
  hpma score 'responses/*.json' --output parquet --output-file profiles.parquet`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot score responses", err)
		}
	},
}

// reportCmd renders narrative reports for response files.
var reportCmd = &cobra.Command{
	Use:   "report <responses...>",
	Short: "Render narrative reports from scored response files.",
	Long: `Score response files and assemble a narrative report for each profile.

Report content comes from the embedded YAML bundle (or --content-dir) and is
selected by rule conditions over the profile. Named rule thresholds can be
overridden with --thresholds-override or a 'thresholds' map in the config file.

Examples:
  # Markdown report to the terminal
  hpma report ada.json

  # HTML page written to a file
  hpma report ada.json --format html --output-file ada.html

  # Stricter trait cut-offs
  hpma report ada.json --thresholds-override 'high:6,low:2.5'`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot render reports", err)
		}
	},
}
