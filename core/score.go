package core

import (
	"github.com/hpmalabs/hpma/schema"
)

// Scale constants of the 1-7 rating format. They are part of the scoring
// contract and are not configurable.
const (
	scaleMidpoint = 4.0 // neutral rating, also the fallback for empty groups
	defaultMean   = 4.0 // normalisation mean
	defaultSD     = 1.5 // normalisation standard deviation
	reversePivot  = 8.0 // 1 <-> 7, 2 <-> 6, ...
)

// ItemScore returns the effective score of a question: 0 when unanswered,
// 8 - raw when the item is reverse-keyed, raw otherwise.
// Values are not range-checked here; input validation happens at load time.
func ItemScore(responses schema.Responses, q schema.Question) float64 {
	raw, ok := responses[q.ID]
	if !ok {
		return 0
	}
	if q.Reversed {
		return ReverseScore(float64(raw))
	}
	return float64(raw)
}

// ReverseScore mirrors a rating around the scale midpoint.
func ReverseScore(v float64) float64 {
	return reversePivot - v
}

// ZScore normalises a raw 1-7 score against the fixed population constants.
func ZScore(raw float64) float64 {
	return (raw - defaultMean) / defaultSD
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
