package schema

// StructureLabels are the display names of each structure.
var StructureLabels = map[Structure]string{
	Solo:    "Solo",
	Duet:    "Duet",
	Trio:    "Trio",
	Chord:   "Chord",
	Chorus:  "Chorus",
	Mist:    "Mist",
	Faulted: "Faulted",
}

// ModeLabels are the display names of every mode code.
var ModeLabels = map[string]string{
	string(TwinHelix):          "Twin-Helix",
	string(LeaningHelix):       "Leaning Helix",
	string(KeystoneLens):       "Keystone & Lens",
	string(SignatureAccent):    "Signature & Accent",
	string(Pureline):           "Pureline",
	string(TriHelix):           "Tri-Helix",
	string(KeystonePrism):      "Keystone Prism",
	string(KeystoneOrbit):      "Keystone Orbit",
	string(TriadStack):         "Triad Stack",
	string(ChordTop4):          "Chord (Top-4)",
	string(ChordTopHeavy):      "Chord (Top-Heavy)",
	string(ChorusDistributed):  "Chorus (Distributed)",
	string(ChorusContextSplit): "Chorus (Context-Split)",
	string(Solo):               "Solo",
	"NONE":                     "Unclassified",
}

// DomainLabels are the display names of the HEXACO domains.
var DomainLabels = map[Domain]string{
	HonestyHumility:   "Honesty-Humility",
	Emotionality:      "Emotionality",
	Extraversion:      "Extraversion",
	Agreeableness:     "Agreeableness",
	Conscientiousness: "Conscientiousness",
	Openness:          "Openness",
}

// StructureLabel returns the display label of a structure, falling back to its code.
func StructureLabel(s Structure) string {
	if l, ok := StructureLabels[s]; ok {
		return l
	}
	return string(s)
}

// ModeLabel returns the display label of a mode code, falling back to the code.
func ModeLabel(mode string) string {
	if l, ok := ModeLabels[mode]; ok {
		return l
	}
	return mode
}

// EnrichedArchetype adds presentation data to a ranked archetype.
type EnrichedArchetype struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	RankedArchetype
}

// GetPlainLabel returns a plain text label indicating how strongly an archetype
// is expressed based on its probability.
func GetPlainLabel(p float64) string {
	switch {
	case p >= 0.70:
		return "Dominant"
	case p >= 0.35:
		return "Strong"
	case p >= 0.12:
		return "Active"
	default:
		return "Quiet"
	}
}

// EnrichArchetypes adds rank and label to a ranked archetype list.
func EnrichArchetypes(ranked []RankedArchetype) []EnrichedArchetype {
	output := make([]EnrichedArchetype, len(ranked))
	for i, r := range ranked {
		output[i] = EnrichedArchetype{
			Rank:            i + 1,
			Label:           GetPlainLabel(r.Probability),
			RankedArchetype: r,
		}
	}
	return output
}
