package cmd

import (
	"fmt"
	"strings"

	"github.com/hpmalabs/hpma/core"
	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// classifyCmd classifies a raw probability vector.
var classifyCmd = &cobra.Command{
	Use:   "classify <probabilities>",
	Short: "Classify an archetype probability vector into a roster.",
	Long: `Run the roster classifier on probabilities given directly.

Probabilities are comma-separated name:value pairs that must sum to 1.
Omitted archetypes count as 0.

Examples:
  hpma classify 'explorer:0.4,philosopher:0.38,organizer:0.1,connector:0.06,protector:0.04,performer:0.02'
  hpma classify 'explorer=1' --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: outputSetup,
	Run: func(_ *cobra.Command, args []string) {
		probs, err := core.ParseProbabilities(args[0])
		if err != nil {
			contract.LogFatal("Invalid probabilities", err)
		}
		if err := core.ExecuteClassify(rootCtx, cfg, probs); err != nil {
			contract.LogFatal("Cannot classify probabilities", err)
		}
	},
}

// questionsCmd lists the question bank.
var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questionnaire items.",
	Long: `Print the question bank with module, facet and reverse-keying.

Examples:
  # Every item, including context items
  hpma questions

  # Only the HEXACO items as CSV
  hpma questions --module hexaco --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: outputSetup,
	Run: func(_ *cobra.Command, _ []string) {
		module, err := parseModule(viper.GetString("module"))
		if err != nil {
			contract.LogFatal("Invalid module", err)
		}
		if err := core.ExecuteQuestions(rootCtx, cfg, module); err != nil {
			contract.LogFatal("Cannot list questions", err)
		}
	},
}

// parseModule maps a --module value to a module. Empty means all modules.
func parseModule(s string) (schema.Module, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, m := range []schema.Module{
		schema.HEXACOModule, schema.MotiveModule, schema.AffectModule, schema.ValidityModule,
		schema.AttachmentModule, schema.AntagonismModule, schema.ContextModule,
	} {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown module %q", s)
}
