// Package core has core logic for scoring, classification and report assembly.
package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hpmalabs/hpma/core/report"
	"github.com/hpmalabs/hpma/internal/bank"
	"github.com/hpmalabs/hpma/internal/content"
	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/internal/outwriter"
	"github.com/hpmalabs/hpma/schema"
)

// ExecutorFunc defines the function signature for executing the scoring commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// probabilitySumTolerance bounds how far user-supplied probabilities may drift from 1.
const probabilitySumTolerance = 1e-6

// ExecuteScore scores every input file and prints the profiles.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	b, err := bank.Default()
	if err != nil {
		return err
	}
	results, err := runScoringCore(ctx, cfg, b, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteProfiles(results, cfg, duration)
}

// ExecuteReport scores every input file and prints one narrative report per profile.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	b, err := bank.Default()
	if err != nil {
		return err
	}
	bundle, err := content.Load(cfg.ContentDir)
	if err != nil {
		return err
	}
	results, err := runScoringCore(withSuppressHeader(ctx), cfg, b, mgr)
	if err != nil {
		return err
	}

	reports := BuildReports(results, bundle, cfg.ThresholdOverrides)
	if len(reports) == 0 {
		return errors.New("no profile could be scored")
	}
	return outwriter.WriteReports(reports, cfg)
}

// BuildReports assembles a report for every scored result. Failed results are logged and skipped.
func BuildReports(results []schema.BatchResult, bundle *schema.ContentBundle, thresholds map[string]float64) []*schema.Report {
	reports := make([]*schema.Report, 0, len(results))
	for _, r := range results {
		if r.Profile == nil {
			contract.LogWarn(fmt.Sprintf("Skipping report for %s", r.Source), errors.New(r.Error))
			continue
		}
		reports = append(reports, report.Assemble(r.Profile, bundle, report.Options{Thresholds: thresholds}))
	}
	return reports
}

// ExecuteClassify classifies a probability vector and prints the roster.
// It serves as the main entry point for the 'classify' command.
func ExecuteClassify(_ context.Context, cfg *contract.Config, probs schema.ArchetypeProbabilities) error {
	roster := ClassifyRoster(probs)
	return outwriter.WriteRoster(roster, cfg)
}

// ExecuteQuestions prints the question bank, optionally limited to one module.
// It serves as the main entry point for the 'questions' command.
func ExecuteQuestions(_ context.Context, cfg *contract.Config, module schema.Module) error {
	b, err := bank.Default()
	if err != nil {
		return err
	}

	var questions []schema.Question
	switch module {
	case "":
		questions = append(b.Questions(), b.ContextItems()...)
	default:
		questions = b.ByModule(module)
		if len(questions) == 0 {
			return fmt.Errorf("unknown module %q", module)
		}
	}
	return outwriter.WriteQuestions(questions, b.Prompt, cfg)
}

// ParseProbabilities parses "explorer:0.4,organizer:0.38,..." into a probability vector.
// Every value must lie in [0,1] and the values must sum to 1. Omitted archetypes are 0.
func ParseProbabilities(s string) (schema.ArchetypeProbabilities, error) {
	probs := make(schema.ArchetypeProbabilities, len(schema.AllArchetypes))
	for _, a := range schema.AllArchetypes {
		probs[a] = 0
	}

	var sum float64
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			name, value, ok = strings.Cut(part, "=")
		}
		if !ok {
			return nil, fmt.Errorf("invalid probability %q (expected name:value)", part)
		}
		a, known := schema.ParseArchetype(name)
		if !known {
			return nil, fmt.Errorf("unknown archetype %q", strings.TrimSpace(name))
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid probability for %s: %w", a, err)
		}
		if p < 0 || p > 1 || math.IsNaN(p) {
			return nil, fmt.Errorf("probability for %s must be within [0,1], got %v", a, p)
		}
		sum += p - probs[a]
		probs[a] = p
	}

	if math.Abs(sum-1) > probabilitySumTolerance {
		return nil, fmt.Errorf("probabilities must sum to 1, got %v", sum)
	}
	return probs, nil
}
