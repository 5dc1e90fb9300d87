package core

import (
	"math"
	"sort"
	"strings"

	"github.com/hpmalabs/hpma/schema"
)

// lexiconEntry holds the words for the two poles of a dimension and its salience weight.
type lexiconEntry struct {
	positive string
	negative string
	weight   float64
}

var facetLexicon = map[schema.Facet]lexiconEntry{
	schema.Sincerity:      {"Plainspoken", "Tactical", 1.0},
	schema.Fairness:       {"Equitable", "Expedient", 1.0},
	schema.GreedAvoidance: {"Modest", "Acquisitive", 0.8},
	schema.Modesty:        {"Unassuming", "Self-Promoting", 0.8},

	schema.Fearfulness:    {"Cautious", "Unflinching", 0.9},
	schema.Anxiety:        {"Vigilant", "Untroubled", 0.9},
	schema.Dependence:     {"Bonded", "Self-Sufficient", 0.8},
	schema.Sentimentality: {"Tender", "Composed", 0.8},

	schema.SocialBoldness: {"Stage-Ready", "Behind-Scenes", 1.1},
	schema.Sociability:    {"Gathering-Drawn", "Solitude-Seeking", 1.0},
	schema.Liveliness:     {"Spark-Carrier", "Even-Keeled", 1.0},
	schema.SelfEsteem:     {"Self-Assured", "Self-Doubting", 0.9},

	schema.Forgivingness: {"Mercy-Given", "Score-Keeping", 1.0},
	schema.Gentleness:    {"Soft-Touch", "Sharp-Edged", 0.9},
	schema.Flexibility:   {"Yielding", "Stance-Holding", 0.8},
	schema.Patience:      {"Long-Fused", "Quick-Sparked", 0.9},

	schema.Organization:  {"Order-Keeper", "Flow-State", 1.0},
	schema.Diligence:     {"Grindstone", "Drift-Prone", 1.1},
	schema.Perfectionism: {"Detail-Bound", "Good-Enough", 0.8},
	schema.Prudence:      {"Foresighted", "Moment-Living", 0.9},

	schema.AestheticAppreciation: {"Beauty-Seeking", "Function-First", 0.8},
	schema.Inquisitiveness:       {"Cipher-Sighted", "Routine-Bound", 1.2},
	schema.Creativity:            {"Pattern-Breaking", "Convention-Keeping", 1.1},
	schema.Unconventionality:     {"Edge-Walking", "Path-Following", 1.0},
}

var motiveLexicon = map[schema.Motive]lexiconEntry{
	schema.Security:  {"Fortress-Minded", "Risk-Embracing", 1.0},
	schema.Belonging: {"Circle-Seeking", "Lone-Wolf", 1.0},
	schema.Status:    {"Rank-Conscious", "Status-Blind", 0.9},
	schema.Mastery:   {"Craftbound", "Enough-Is-Enough", 1.1},
	schema.Autonomy:  {"Unshackled", "Structure-Seeking", 1.1},
	schema.Purpose:   {"Mission-Driven", "Present-Focused", 1.0},
}

var affectLexicon = map[schema.Affect]lexiconEntry{
	schema.Seeking: {"Horizon-Chasing", "Here-Rooted", 1.0},
	schema.Fear:    {"Threat-Scanning", "Danger-Blind", 0.9},
	schema.Anger:   {"Fire-Carrying", "Cool-Blooded", 0.8},
	schema.Care:    {"Heart-Forward", "Arms-Length", 1.0},
	schema.Grief:   {"Loss-Touched", "Moving-On", 0.7},
	schema.Play:    {"Joy-Sparking", "Serious-Minded", 0.9},
	schema.Desire:  {"Pull-Feeling", "Steady-State", 0.7},
}

// attachmentLexicon has a word only on the pole each style reads as.
var attachmentLexicon = map[schema.AttachmentStyle]lexiconEntry{
	schema.Secure:      {"Safe-Landed", "", 0.8},
	schema.Preoccupied: {"", "Bond-Anxious", 0.9},
	schema.Dismissive:  {"Self-Contained", "", 0.8},
	schema.Fearful:     {"", "Approach-Avoidant", 1.0},
}

var antagonismLexicon = map[string]lexiconEntry{
	schema.Exploitative: {"", "Game-Playing", 1.1},
	schema.Callous:      {"", "Stone-Hearted", 1.0},
	schema.Combative:    {"", "Fight-Ready", 0.9},
	schema.ImageDriven:  {"", "Mirror-Watching", 0.8},
}

// Epithet selection thresholds.
const (
	epithetZThreshold             = 1.0
	antagonismEpithetThreshold    = 5.0
	attachmentConfidenceThreshold = 0.3
	classNameWords                = 3
)

// EpithetInputs are the profile parts that epithets are drawn from.
type EpithetInputs struct {
	Facets     schema.FacetProfile
	Motives    schema.MotiveScores
	Affects    schema.AffectScores
	Attachment schema.AttachmentProfile
	Antagonism schema.AntagonismProfile
}

// newEpithet builds a z-scored epithet, choosing the word by direction.
func newEpithet(category schema.EpithetCategory, key string, z float64, lex lexiconEntry) schema.Epithet {
	e := schema.Epithet{
		Category:     category,
		SourceKey:    key,
		ZScore:       z,
		Salience:     lex.weight * math.Abs(z),
		PositiveWord: lex.positive,
		NegativeWord: lex.negative,
		Direction:    "low",
		Word:         lex.negative,
	}
	if z >= 0 {
		e.Direction = "high"
		e.Word = lex.positive
	}
	return e
}

// ComputeEpithets derives every notable epithet of a profile, most salient first.
// Equal salience keeps facet, motive, affect, attachment, antagonism order.
func ComputeEpithets(in EpithetInputs) []schema.Epithet {
	var out []schema.Epithet

	for _, f := range schema.AllFacets {
		z, ok := in.Facets.ZScores[f]
		if !ok || math.Abs(z) < epithetZThreshold {
			continue
		}
		out = append(out, newEpithet(schema.FacetEpithet, "facet."+string(f), z, facetLexicon[f]))
	}
	for _, m := range schema.AllMotives {
		z := ZScore(rawOrMidpoint(in.Motives, m))
		if math.Abs(z) < epithetZThreshold {
			continue
		}
		out = append(out, newEpithet(schema.MotiveEpithet, "motive."+string(m), z, motiveLexicon[m]))
	}
	for _, a := range schema.AllAffects {
		z := ZScore(rawOrMidpoint(in.Affects, a))
		if math.Abs(z) < epithetZThreshold {
			continue
		}
		out = append(out, newEpithet(schema.AffectEpithet, "affect."+string(a), z, affectLexicon[a]))
	}

	if e, ok := attachmentEpithet(in.Attachment); ok {
		out = append(out, e)
	}
	if in.Antagonism.Elevated {
		for _, axis := range schema.AntagonismAxes {
			score := in.Antagonism.Axis(axis)
			lex := antagonismLexicon[axis]
			if score < antagonismEpithetThreshold || lex.negative == "" {
				continue
			}
			pseudoZ := (score - scaleMidpoint) / defaultSD
			out = append(out, schema.Epithet{
				Category:     schema.AntagonismEpithet,
				SourceKey:    "antagonism." + axis,
				ZScore:       pseudoZ,
				Salience:     lex.weight * pseudoZ,
				PositiveWord: lex.positive,
				NegativeWord: lex.negative,
				Direction:    "high",
				Word:         lex.negative,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Salience > out[j].Salience
	})
	return out
}

// attachmentEpithet reads a confident attachment style as a pseudo-z epithet.
// Secure reads on the positive pole, insecure styles on the negative pole.
func attachmentEpithet(att schema.AttachmentProfile) (schema.Epithet, bool) {
	lex, ok := attachmentLexicon[att.Style]
	if !ok || att.Confidence <= attachmentConfidenceThreshold {
		return schema.Epithet{}, false
	}

	secure := att.Style == schema.Secure
	word, direction := lex.negative, "low"
	if secure {
		word, direction = lex.positive, "high"
	}
	if word == "" {
		return schema.Epithet{}, false
	}

	pseudoZ := att.Confidence * 2
	return schema.Epithet{
		Category:     schema.AttachmentEpithet,
		SourceKey:    "attachment." + string(att.Style),
		ZScore:       pseudoZ,
		Salience:     lex.weight * pseudoZ,
		PositiveWord: lex.positive,
		NegativeWord: lex.negative,
		Direction:    direction,
		Word:         word,
	}, true
}

// GenerateClassName builds the short, standard and full names from the top epithets
// and frames the full name with the roster structure.
func GenerateClassName(r schema.RosterClassification, epithets []schema.Epithet) schema.ClassName {
	top := make([]schema.Epithet, 0, classNameWords)
	for _, e := range epithets {
		if e.Word == "" {
			continue
		}
		top = append(top, e)
		if len(top) == classNameWords {
			break
		}
	}

	words := make([]string, len(top))
	for i, e := range top {
		words[i] = e.Word
	}

	cn := schema.ClassName{Short: "Balanced", Epithets: top}
	if len(words) > 0 {
		cn.Short = words[0]
	}
	cn.Standard = strings.Join(words[:min(2, len(words))], " ")
	if cn.Standard == "" {
		cn.Standard = cn.Short
	}
	cn.Full = strings.Join(words, " ")
	if cn.Full == "" {
		cn.Full = cn.Standard
	}

	switch r.Structure {
	case schema.Solo:
		cn.Display = r.SummaryLabel + ": " + cn.Full
	case schema.Duet:
		prefix := "Duet"
		if r.Duet != nil {
			prefix = r.Duet.Identity
		}
		cn.Display = prefix + ": " + cn.Full
	case schema.Trio:
		prefix := "Trio"
		if r.Trio != nil {
			prefix, _, _ = strings.Cut(r.Trio.Label, ":")
		}
		cn.Display = prefix + ": " + cn.Full
	case schema.Chord, schema.Chorus:
		cn.Display = string(r.Structure) + ": " + cn.Full
	case schema.Mist:
		cn.Display = "Diffuse: " + cn.Full
	case schema.Faulted:
		cn.Display = "Faulted: " + cn.Full
	default:
		cn.Display = cn.Full
	}
	return cn
}

// ComputeClassName derives epithets and the class name in one step.
func ComputeClassName(in EpithetInputs, r schema.RosterClassification) schema.ClassName {
	return GenerateClassName(r, ComputeEpithets(in))
}
