package core

import (
	"math"
	"sort"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
	"gonum.org/v1/gonum/stat"
)

// Context shift thresholds over the mean absolute delta.
const (
	stableShiftMax   = 0.5
	moderateShiftMax = 1.5
	topShiftCount    = 3
	volatilityCount  = 3
)

// shiftPattern grades a mean absolute delta.
func shiftPattern(avg float64) schema.ShiftPattern {
	switch {
	case avg < stableShiftMax:
		return schema.StableShift
	case avg < moderateShiftMax:
		return schema.ModerateShift
	default:
		return schema.VolatileShift
	}
}

// meanOrZero is the mean of xs, or 0 when empty.
func meanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// ComputeContextDependence compares every context re-ask of the sentinel items
// with the baseline answer. An unanswered context item counts as no shift;
// an unanswered baseline sentinel scores 0 like any unanswered item, so a
// context answer against it shows as a full-size shift.
func ComputeContextDependence(rs schema.ResponseSet, bank contract.QuestionBank) *schema.ContextDependence {
	sentinels := bank.Sentinels()
	result := &schema.ContextDependence{}

	var allDeltas []float64
	facetDeltas := make(map[schema.Facet][]float64)

	for _, ctx := range schema.AllContexts {
		answers := rs.Contexts[ctx]
		start := schema.ContextStart[ctx]

		profile := schema.ContextProfile{Context: ctx, Shifts: make([]schema.ContextShift, 0, len(sentinels))}
		absDeltas := make([]float64, 0, len(sentinels))

		for i, sentinel := range sentinels {
			facet := schema.Facet(sentinel.Subdomain)
			baseline := ItemScore(rs.Baseline, sentinel)

			contextScore := baseline
			if v, ok := answers[start+i]; ok {
				contextScore = float64(v)
			}
			delta := contextScore - baseline

			profile.Shifts = append(profile.Shifts, schema.ContextShift{
				Facet:    facet,
				FacetID:  sentinel.FacetID,
				Baseline: baseline,
				Context:  contextScore,
				Delta:    delta,
			})
			absDeltas = append(absDeltas, math.Abs(delta))
			facetDeltas[facet] = append(facetDeltas[facet], math.Abs(delta))
		}

		sorted := make([]schema.ContextShift, len(profile.Shifts))
		copy(sorted, profile.Shifts)
		sort.SliceStable(sorted, func(i, j int) bool {
			return math.Abs(sorted[i].Delta) > math.Abs(sorted[j].Delta)
		})
		profile.TopShifts = sorted[:min(topShiftCount, len(sorted))]
		profile.AverageShift = meanOrZero(absDeltas)
		profile.Pattern = shiftPattern(profile.AverageShift)

		result.Contexts = append(result.Contexts, profile)
		allDeltas = append(allDeltas, absDeltas...)
	}

	result.OverallVolatility = meanOrZero(allDeltas)

	var volatility []schema.FacetVolatility
	for _, f := range schema.AllFacets {
		if deltas, ok := facetDeltas[f]; ok && len(deltas) > 0 {
			volatility = append(volatility, schema.FacetVolatility{Facet: f, Volatility: meanOrZero(deltas)})
		}
	}
	sort.SliceStable(volatility, func(i, j int) bool {
		return volatility[i].Volatility > volatility[j].Volatility
	})

	n := min(volatilityCount, len(volatility))
	result.MostContextDependent = append([]schema.FacetVolatility{}, volatility[:n]...)
	result.MostStable = make([]schema.FacetVolatility, 0, n)
	for i := len(volatility) - 1; i >= len(volatility)-n; i-- {
		result.MostStable = append(result.MostStable, volatility[i])
	}
	return result
}
