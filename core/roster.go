package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/hpmalabs/hpma/schema"
)

// Structure thresholds over the sorted probability vector.
const (
	mistP1Max      = 0.35 // below this the top voice is too weak to name
	soloP1Min      = 0.70
	soloP2Max      = 0.20
	duetS2Min      = 0.70
	duetP3Max      = 0.20
	trioS3Min      = 0.80
	trioP4Max      = 0.15
	activeVoiceMin = 0.12 // a voice at or above this counts as active
	chordP1Min     = 0.25
	chordMaxVoices = 4
)

// Mode thresholds.
const (
	trioBalancedGap = 0.08
	trioLensGap     = 0.05
)

// Confidence thresholds.
const (
	lowConfidenceGap    = 0.05
	mediumConfidenceGap = 0.10
	duetBoundaryGap     = 0.02
	highEntropy         = 0.90
)

// duetBoundaries are the r2 edges between duet modes.
var duetBoundaries = []float64{0.45, 0.55, 0.65, 0.80, 0.92}

// structureDescriptions explain each structure in one sentence.
var structureDescriptions = map[schema.Structure]string{
	schema.Solo:    "A single archetype strongly dominates your profile, with minimal influence from others.",
	schema.Duet:    "Two archetypes form a clear pair that together define your expression.",
	schema.Trio:    "Three archetypes form a stable triangle, each contributing meaningfully.",
	schema.Chord:   "A few archetypes contribute in a structured way, led by a clear anchor.",
	schema.Chorus:  "Many archetypes contribute without a clear pair or triad structure.",
	schema.Mist:    "No single archetype stands out strongly. Your profile is distributed broadly.",
	schema.Faulted: "Response quality checks failed, so no structure is reported.",
}

// ClassifyRoster computes the roster classification of a probability vector.
// It is a total, deterministic function of its input.
func ClassifyRoster(probs schema.ArchetypeProbabilities) schema.RosterClassification {
	ranked := RankArchetypes(probs)
	metrics := ComputeMetrics(ranked)
	structure := classifyStructure(ranked, metrics)

	r := schema.RosterClassification{
		Version:     schema.RosterVersion,
		Structure:   structure,
		Ranked:      ranked,
		Metrics:     metrics,
		Description: structureDescriptions[structure],
	}

	switch structure {
	case schema.Duet:
		r.Duet = buildDuet(ranked, metrics)
	case schema.Trio:
		r.Trio = buildTrio(ranked)
	case schema.Chord, schema.Chorus:
		r.Choral = buildChoral(structure, ranked)
	}

	r.Confidence = computeConfidence(structure, ranked, metrics)
	r.SummaryLabel = summaryLabel(r)
	return r
}

// classifyStructure applies the ordered structure rules; the first match wins.
func classifyStructure(ranked []schema.RankedArchetype, m schema.DerivedMetrics) schema.Structure {
	p1 := probabilityAt(ranked, 0)
	p2 := probabilityAt(ranked, 1)
	p3 := probabilityAt(ranked, 2)
	p4 := probabilityAt(ranked, 3)

	switch {
	case p1 < mistP1Max:
		return schema.Mist
	case p1 >= soloP1Min && p2 <= soloP2Max:
		return schema.Solo
	case m.S2 >= duetS2Min && p3 <= duetP3Max:
		return schema.Duet
	case m.S3 >= trioS3Min && p4 <= trioP4Max:
		return schema.Trio
	}

	if len(activeVoices(ranked)) <= chordMaxVoices && p1 >= chordP1Min {
		return schema.Chord
	}
	return schema.Chorus
}

// activeVoices lists the archetypes at or above the active threshold, in rank order.
func activeVoices(ranked []schema.RankedArchetype) []schema.Archetype {
	var voices []schema.Archetype
	for _, r := range ranked {
		if r.Probability >= activeVoiceMin {
			voices = append(voices, r.Archetype)
		}
	}
	return voices
}

// classifyDuetMode maps the anchor share r2 to a duet mode. The bands are
// contiguous; values below 0.45 cannot occur for a sorted vector and fall in the first.
func classifyDuetMode(r2 float64) schema.DuetMode {
	switch {
	case r2 <= 0.55:
		return schema.TwinHelix
	case r2 <= 0.65:
		return schema.LeaningHelix
	case r2 <= 0.80:
		return schema.KeystoneLens
	case r2 <= 0.92:
		return schema.SignatureAccent
	default:
		return schema.Pureline
	}
}

func buildDuet(ranked []schema.RankedArchetype, m schema.DerivedMetrics) *schema.DuetRecord {
	anchor := ranked[0].Archetype
	lens := ranked[1].Archetype
	mode := classifyDuetMode(m.R2)
	identity := DyadIdentity(anchor, lens)

	return &schema.DuetRecord{
		Mode:        mode,
		Anchor:      anchor,
		Lens:        lens,
		Identity:    identity,
		Label:       fmt.Sprintf("Duet: %s — %s", identity, schema.ModeLabel(string(mode))),
		Description: duetDescription(mode, schema.TitleName(anchor), schema.TitleName(lens)),
	}
}

func duetDescription(mode schema.DuetMode, anchor, lens string) string {
	switch mode {
	case schema.TwinHelix:
		return fmt.Sprintf("A balanced 50/50 blend where %s and %s co-drive behavior equally. Context determines which takes the lead in any moment.", anchor, lens)
	case schema.LeaningHelix:
		return fmt.Sprintf("%s slightly leads (~60/40), but %s remains a strong co-driver. Both archetypes actively shape your expression.", anchor, lens)
	case schema.KeystoneLens:
		return fmt.Sprintf("%s is your engine (~75/25). %s colors how that engine runs, acting as a consistent interpretive filter.", anchor, lens)
	case schema.SignatureAccent:
		return fmt.Sprintf("Strong %s dominance (~85/15). %s appears as a signature accent rather than an active co-pilot.", anchor, lens)
	default:
		return fmt.Sprintf("Near-pure %s orientation (~95/5). %s provides only a trace coloring to your dominant archetype.", anchor, lens)
	}
}

// classifyTrioMode inspects the gaps between the top three probabilities.
func classifyTrioMode(p1, p2, p3 float64) schema.TrioMode {
	maxDiff := max(math.Abs(p1-p2), math.Abs(p2-p3), math.Abs(p1-p3))
	gap12 := p1 - p2
	gap23 := p2 - p3

	switch {
	case maxDiff <= trioBalancedGap:
		return schema.TriHelix
	case gap12 > trioBalancedGap && gap23 <= trioLensGap:
		return schema.KeystonePrism
	case gap12 > trioLensGap && gap23 > trioLensGap:
		return schema.KeystoneOrbit
	default:
		return schema.TriadStack
	}
}

func buildTrio(ranked []schema.RankedArchetype) *schema.TrioRecord {
	t := &schema.TrioRecord{
		Mode:      classifyTrioMode(ranked[0].Probability, ranked[1].Probability, ranked[2].Probability),
		Primary:   ranked[0].Archetype,
		Secondary: ranked[1].Archetype,
		Tertiary:  ranked[2].Archetype,
	}
	a, b, c := schema.TitleName(t.Primary), schema.TitleName(t.Secondary), schema.TitleName(t.Tertiary)

	switch t.Mode {
	case schema.TriHelix:
		t.Label = fmt.Sprintf("Trio: %s–%s–%s Tri-Helix", a, b, c)
		t.Description = fmt.Sprintf("A balanced triad where %s, %s, and %s all contribute roughly equally. You draw from all three depending on context.", a, b, c)
	case schema.KeystonePrism:
		t.Label = fmt.Sprintf("Trio: %s Keystone Prism (Lenses: %s + %s)", a, b, c)
		t.Description = fmt.Sprintf("%s anchors your expression, while %s and %s act as dual lenses, both coloring how your anchor manifests.", a, b, c)
	case schema.KeystoneOrbit:
		t.Label = fmt.Sprintf("Trio: %s Keystone Orbit (Lens: %s; Shadow: %s)", a, b, c)
		t.Description = fmt.Sprintf("%s leads as anchor, %s provides the primary lens, and %s operates as a background shadow influence.", a, b, c)
	default:
		t.Label = fmt.Sprintf("Trio: %s–%s–%s Triad Stack", a, b, c)
		t.Description = fmt.Sprintf("%s, %s, and %s form a triad without a clean ratio pattern. Their balance shifts with circumstance.", a, b, c)
	}
	return t
}

// choralShortNames are the label fragments of the polyphonic modes.
var choralShortNames = map[schema.PolyphonicMode]string{
	schema.ChordTop4:          "Top-4",
	schema.ChordTopHeavy:      "Top-Heavy",
	schema.ChorusDistributed:  "Distributed",
	schema.ChorusContextSplit: "Context-Split",
}

func buildChoral(structure schema.Structure, ranked []schema.RankedArchetype) *schema.ChoralRecord {
	voices := activeVoices(ranked)
	names := strings.Join(schema.TitleNames(voices), ", ")
	c := &schema.ChoralRecord{Contributing: voices}

	if structure == schema.Chord {
		c.Anchor = ranked[0].Archetype
		c.Mode = schema.ChordTopHeavy
		if len(voices) == chordMaxVoices {
			c.Mode = schema.ChordTop4
		}
		c.Label = fmt.Sprintf("Chord: %s-anchored %s (%s)", schema.TitleName(c.Anchor), choralShortNames[c.Mode], names)
		c.Description = fmt.Sprintf("%s anchors a structured chord of voices: %s. No single pair or triad dominates, but the lead voice is clear.", schema.TitleName(c.Anchor), names)
		return c
	}

	c.Mode = schema.ChorusDistributed
	c.Label = fmt.Sprintf("Chorus: %s (%s)", choralShortNames[c.Mode], names)
	c.Description = fmt.Sprintf("Multiple archetypes contribute meaningfully to your profile: %s. No single pair or triad dominates, so you draw flexibly from several sources.", names)
	return c
}

// computeConfidence measures the distance from the nearest deciding threshold.
func computeConfidence(structure schema.Structure, ranked []schema.RankedArchetype, m schema.DerivedMetrics) schema.Confidence {
	p1 := probabilityAt(ranked, 0)
	p2 := probabilityAt(ranked, 1)
	p3 := probabilityAt(ranked, 2)
	p4 := probabilityAt(ranked, 3)

	c := schema.Confidence{Level: schema.HighConfidence, Notes: []string{}}
	nearNote := fmt.Sprintf("Near threshold for %s classification", strings.ToLower(string(structure)))

	switch structure {
	case schema.Solo:
		c.DistanceFromBoundary = min(p1-soloP1Min, soloP2Max-p2)
		c.Level, c.Notes = gradeDistance(c.DistanceFromBoundary, c.Level, c.Notes, nearNote)
	case schema.Duet:
		c.DistanceFromBoundary = min(m.S2-duetS2Min, duetP3Max-p3)
		if nearDuetBoundary(m.R2) {
			c.Notes = append(c.Notes, "Near blend class boundary")
			c.Level = schema.MediumConfidence
		}
		c.Level, c.Notes = gradeDistance(c.DistanceFromBoundary, c.Level, c.Notes, nearNote)
	case schema.Trio:
		c.DistanceFromBoundary = min(m.S3-trioS3Min, trioP4Max-p4)
		c.Level, c.Notes = gradeDistance(c.DistanceFromBoundary, c.Level, c.Notes, nearNote)
	case schema.Chord, schema.Chorus:
		c.DistanceFromBoundary = p1 - mistP1Max
		c.Level = schema.MediumConfidence
		c.Notes = append(c.Notes, "Chord and chorus profiles have inherently lower classification confidence")
	case schema.Mist:
		c.DistanceFromBoundary = mistP1Max - p1
		c.Level = schema.LowConfidence
		c.Notes = append(c.Notes, "Diffuse profile: no clear archetype dominance")
	}

	if m.EntropyN > highEntropy {
		c.Notes = append(c.Notes, "Very high entropy suggests dispersed profile")
	}
	return c
}

// gradeDistance downgrades a confidence level based on the threshold distance.
// It never upgrades a level that was already lowered.
func gradeDistance(distance float64, level schema.ConfidenceLevel, notes []string, nearNote string) (schema.ConfidenceLevel, []string) {
	switch {
	case distance < lowConfidenceGap:
		return schema.LowConfidence, append(notes, nearNote)
	case distance < mediumConfidenceGap && level == schema.HighConfidence:
		return schema.MediumConfidence, notes
	}
	return level, notes
}

func nearDuetBoundary(r2 float64) bool {
	for _, b := range duetBoundaries {
		if math.Abs(r2-b) < duetBoundaryGap {
			return true
		}
	}
	return false
}

// summaryLabel builds the one-line label of a classification.
func summaryLabel(r schema.RosterClassification) string {
	switch r.Structure {
	case schema.Solo:
		return fmt.Sprintf("Solo: %s Dominant", schema.TitleName(r.Top(0)))
	case schema.Duet:
		return r.Duet.Label
	case schema.Trio:
		return r.Trio.Label
	case schema.Chord, schema.Chorus:
		return r.Choral.Label
	case schema.Faulted:
		return fmt.Sprintf("Faulted: %s", r.FaultReason)
	default:
		return "Mist: Diffuse Profile"
	}
}

// FaultRoster replaces a classification with FAULTED. Ranked probabilities
// and metrics are kept so the underlying vector stays inspectable.
func FaultRoster(r schema.RosterClassification, reason string) schema.RosterClassification {
	r.Structure = schema.Faulted
	r.Duet = nil
	r.Trio = nil
	r.Choral = nil
	r.FaultReason = reason
	r.Description = structureDescriptions[schema.Faulted]
	r.Confidence = schema.Confidence{
		Level:                schema.LowConfidence,
		DistanceFromBoundary: 0,
		Notes:                []string{"Classification withheld: " + reason},
	}
	r.SummaryLabel = summaryLabel(r)
	return r
}
