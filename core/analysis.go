package core

import (
	"context"
	"fmt"
	"time"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/internal/outwriter"
	"github.com/hpmalabs/hpma/internal/responses"
	"github.com/hpmalabs/hpma/schema"
	"golang.org/x/sync/errgroup"
)

// runScoringCore loads and scores every input file, tracking the run in history when configured.
// Results keep the order of cfg.InputPaths. Per-file failures are reported in the result,
// not as an error; the returned error is only set when the batch itself is cancelled.
func runScoringCore(ctx context.Context, cfg *contract.Config, bank contract.QuestionBank, mgr contract.CacheManager) ([]schema.BatchResult, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogScoringHeader(cfg, bank.Version())
	}

	// Add cache manager to context for use in worker goroutines
	ctx = contextWithCacheManager(ctx, mgr)

	// --- 0. Begin History Tracking (if configured) ---
	var runID int64
	historyStore := historyStoreOf(mgr)
	if historyStore != nil {
		configParams := map[string]any{
			"inputs":           len(cfg.InputPaths),
			"workers":          cfg.Workers,
			"fault_on_invalid": cfg.FaultOnInvalid,
			"strict":           cfg.Strict,
			"bank_version":     bank.Version(),
		}
		var err error
		runID, err = historyStore.BeginRun(time.Now(), configParams)
		if err != nil {
			contract.LogWarn("History tracking initialization failed", err)
		} else if runID > 0 {
			ctx = withRunID(ctx, runID)
		}
	}

	// --- 1. Scoring ---
	results, err := scoreFiles(ctx, cfg, bank)
	if err != nil {
		return nil, err
	}

	// --- 2. End History Tracking ---
	if historyStore != nil && runID > 0 {
		if err := historyStore.EndRun(runID, time.Now(), countScored(results)); err != nil {
			contract.LogWarn("Failed to finalize history tracking", err)
		}
	}

	return results, nil
}

// scoreFiles scores the input files concurrently with at most cfg.Workers in flight.
func scoreFiles(ctx context.Context, cfg *contract.Config, bank contract.QuestionBank) ([]schema.BatchResult, error) {
	results := make([]schema.BatchResult, len(cfg.InputPaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))

	for i, path := range cfg.InputPaths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = scoreFile(gctx, cfg, bank, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// scoreFile loads, scores and records a single response file.
func scoreFile(ctx context.Context, cfg *contract.Config, bank contract.QuestionBank, path string) schema.BatchResult {
	result := schema.BatchResult{Source: path}

	rs, err := responses.LoadFile(path, bank, cfg.Strict)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if rs.Respondent == "" {
		rs.Respondent = responses.RespondentFromPath(path)
	}

	result.Profile = ScoreResponseSet(rs, bank, cfg, cacheManagerFromContext(ctx))

	if runID, ok := getRunID(ctx); ok && runID > 0 {
		recordAssessment(ctx, runID, path, result.Profile)
	}
	return result
}

// ScoreResponseSet scores one response set, reusing the profile cache of mgr when one is configured.
func ScoreResponseSet(rs schema.ResponseSet, bank contract.QuestionBank, cfg *contract.Config, mgr contract.CacheManager) *schema.Profile {
	opts := ProfileOptions{FaultOnInvalid: cfg.FaultOnInvalid}
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetProfileStore()
	}
	return cachedProfile(rs, bank, opts, store)
}

// recordAssessment stores the profile summary in the history store.
func recordAssessment(ctx context.Context, runID int64, source string, p *schema.Profile) {
	historyStore := historyStoreOf(cacheManagerFromContext(ctx))
	if historyStore == nil {
		return
	}
	if err := historyStore.RecordAssessment(runID, source, p); err != nil {
		logTrackingError("RecordAssessment", source, err)
	}
}

// historyStoreOf returns the history store of a manager, tolerating a nil manager.
func historyStoreOf(mgr contract.CacheManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

// countScored counts the results that produced a profile.
func countScored(results []schema.BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Profile != nil {
			n++
		}
	}
	return n
}

// logTrackingError logs database tracking errors to stderr without disrupting scoring.
func logTrackingError(operation, source string, err error) {
	contract.LogWarn(fmt.Sprintf("History tracking failed for %s on %s", operation, source), err)
}
