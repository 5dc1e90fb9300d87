package core

import (
	"math"

	"github.com/hpmalabs/hpma/schema"
	"gonum.org/v1/gonum/floats"
)

// softmaxTemperature flattens the archetype distribution; lower values sharpen it.
const softmaxTemperature = 0.8

// archetypePrototype is the weighted linear profile of one archetype.
type archetypePrototype struct {
	traits  map[schema.Domain]float64
	motives map[schema.Motive]float64
	affects map[schema.Affect]float64
}

// archetypePrototypes defines each archetype as weights over z-scored inputs.
var archetypePrototypes = map[schema.Archetype]archetypePrototype{
	schema.Explorer: {
		traits:  map[schema.Domain]float64{schema.Openness: 1.2},
		motives: map[schema.Motive]float64{schema.Autonomy: 0.8},
		affects: map[schema.Affect]float64{schema.Seeking: 1.0},
	},
	schema.Organizer: {
		traits:  map[schema.Domain]float64{schema.Conscientiousness: 1.2},
		motives: map[schema.Motive]float64{schema.Mastery: 1.0},
		affects: map[schema.Affect]float64{schema.Seeking: -0.5},
	},
	schema.Connector: {
		traits:  map[schema.Domain]float64{schema.Agreeableness: 1.2},
		motives: map[schema.Motive]float64{schema.Belonging: 1.0},
		affects: map[schema.Affect]float64{schema.Care: 0.8},
	},
	schema.Protector: {
		traits:  map[schema.Domain]float64{schema.Emotionality: 0.6},
		motives: map[schema.Motive]float64{schema.Security: 1.0},
		affects: map[schema.Affect]float64{schema.Fear: 0.8},
	},
	schema.Performer: {
		traits:  map[schema.Domain]float64{schema.Extraversion: 1.2},
		motives: map[schema.Motive]float64{schema.Status: 1.0},
		affects: map[schema.Affect]float64{schema.Play: 0.8},
	},
	schema.Philosopher: {
		traits:  map[schema.Domain]float64{schema.Openness: 1.0},
		motives: map[schema.Motive]float64{schema.Purpose: 1.2},
		affects: map[schema.Affect]float64{schema.Seeking: 0.6},
	},
}

// rawOrMidpoint reads a score from a map, treating a missing key as neutral.
func rawOrMidpoint[K comparable](scores map[K]float64, key K) float64 {
	if v, ok := scores[key]; ok {
		return v
	}
	return scaleMidpoint
}

// archetypeScore computes the unnormalised score of one prototype.
func archetypeScore(p archetypePrototype, hexaco schema.DomainScores, motives schema.MotiveScores, affects schema.AffectScores) float64 {
	var score float64
	for d, w := range p.traits {
		score += ZScore(rawOrMidpoint(hexaco, d)) * w
	}
	for m, w := range p.motives {
		score += ZScore(rawOrMidpoint(motives, m)) * w
	}
	for a, w := range p.affects {
		score += ZScore(rawOrMidpoint(affects, a)) * w
	}
	return score
}

// softmax turns scores into a probability simplex at the given temperature.
// The maximum is subtracted before exponentiating to keep exp in range.
func softmax(scores []float64, temperature float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}
	copy(out, scores)
	floats.Scale(1/temperature, out)
	floats.AddConst(-floats.Max(out), out)
	for i, v := range out {
		out[i] = math.Exp(v)
	}
	floats.Scale(1/floats.Sum(out), out)
	return out
}

// InferArchetypes computes the archetype probabilities from raw domain, motive
// and affect scores. Uncertainty is one minus the gap between the top two.
func InferArchetypes(hexaco schema.DomainScores, motives schema.MotiveScores, affects schema.AffectScores) schema.ArchetypeResult {
	raw := make([]float64, len(schema.AllArchetypes))
	for i, a := range schema.AllArchetypes {
		raw[i] = archetypeScore(archetypePrototypes[a], hexaco, motives, affects)
	}

	probs := softmax(raw, softmaxTemperature)
	result := schema.ArchetypeResult{
		Probabilities: make(schema.ArchetypeProbabilities, len(probs)),
	}
	for i, a := range schema.AllArchetypes {
		result.Probabilities[a] = probs[i]
	}

	ranked := RankArchetypes(result.Probabilities)
	result.Uncertainty = 1 - (ranked[0].Probability - ranked[1].Probability)
	return result
}
