package core

import (
	"math"
	"sort"

	"github.com/hpmalabs/hpma/schema"
	"gonum.org/v1/gonum/stat"
)

// RankArchetypes sorts the six archetypes by probability in descending order.
// Ties keep canonical archetype order. Missing archetypes rank with probability 0.
func RankArchetypes(probs schema.ArchetypeProbabilities) []schema.RankedArchetype {
	ranked := make([]schema.RankedArchetype, len(schema.AllArchetypes))
	for i, a := range schema.AllArchetypes {
		ranked[i] = schema.RankedArchetype{Archetype: a, Probability: probs[a]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Probability > ranked[j].Probability
	})
	return ranked
}

// probabilityAt returns the i-th sorted probability, or 0 past the end.
func probabilityAt(ranked []schema.RankedArchetype, i int) float64 {
	if i < 0 || i >= len(ranked) {
		return 0
	}
	return ranked[i].Probability
}

// ComputeMetrics derives the concentration metrics of a sorted vector.
func ComputeMetrics(ranked []schema.RankedArchetype) schema.DerivedMetrics {
	p1 := probabilityAt(ranked, 0)
	p2 := probabilityAt(ranked, 1)
	p3 := probabilityAt(ranked, 2)

	m := schema.DerivedMetrics{
		S2:  p1 + p2,
		S3:  p1 + p2 + p3,
		G12: p1 - p2,
	}
	if m.S2 > 0 {
		m.R2 = p1 / m.S2
	}

	probs := make([]float64, len(ranked))
	for i, r := range ranked {
		probs[i] = r.Probability
	}
	m.EntropyN = normalizedEntropy(probs)
	return m
}

// normalizedEntropy is the Shannon entropy divided by its maximum ln(n).
// Zero probabilities contribute nothing; n <= 1 yields 0.
func normalizedEntropy(probs []float64) float64 {
	n := len(probs)
	if n <= 1 {
		return 0
	}
	positive := make([]float64, 0, n)
	for _, p := range probs {
		if p > 0 {
			positive = append(positive, p)
		}
	}
	return stat.Entropy(positive) / math.Log(float64(n))
}
