package report

import (
	"testing"

	"github.com/hpmalabs/hpma/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBundle() *schema.ContentBundle {
	return &schema.ContentBundle{
		Version: "test",
		Identities: schema.Identities{
			Primaries: map[string]schema.PrimaryIdentity{
				"EXPLORER": {Name: "The Explorer", Tagline: "Always past the next ridge"},
			},
		},
		Modes: schema.Modes{
			DuetModes: map[string]schema.ModeModifier{
				"TWIN_HELIX": {
					Name:  "Twin-Helix",
					Ratio: "50:50",
					Adds: schema.ModeAdds{
						Strengths:     []string{"Two engines"},
						Watchouts:     []string{},
						Prescriptions: []string{"Pick a lead per project"},
					},
				},
			},
			TrioModes: map[string]schema.ModeModifier{
				"TRI_HELIX": {Name: "Tri-Helix", Adds: schema.ModeAdds{Watchouts: []string{"Three-way stalls"}}},
			},
		},
		Dyads: map[string]schema.IdentityContent{
			"VISIONARY_BUILDER": {
				Tagline: "Dreams with a project plan",
				Domains: schema.DomainBlocks{
					Strengths: &schema.StrengthsBlock{Bullets: []string{"Turns ideas into systems"}},
					Career:    &schema.CareerBlock{BestEnvironments: []string{"Early-stage teams"}},
					Compatibility: &schema.CompatibilityBlock{
						Complimentary: []schema.CompatibilityMatch{{Match: "Charismatic Host", Why: "Carries the story"}},
					},
				},
			},
		},
		Primaries: map[string]schema.IdentityContent{
			"explorer": {
				Tagline: "Primary explorer",
				Domains: schema.DomainBlocks{
					Watchouts: &schema.WatchoutsBlock{Bullets: []string{"Leaves before finishing"}},
				},
			},
		},
		Rules: schema.RuleSet{
			Version:    "test",
			Thresholds: map[string]float64{"high": 6.0},
			Rules: []schema.Rule{
				{
					ID:       "high-openness",
					When:     "scores.hexaco.O >= thresholds.high",
					AddFlags: []string{"HIGH_O"},
					AddSnippets: map[string][]string{
						"strengths.notes": {"Curiosity is a core engine"},
						"hobbies.play":    {"Unstructured exploration"},
					},
				},
				{
					ID:          "twin",
					When:        "roster.duet.mode == 'TWIN_HELIX'",
					AddFlags:    []string{"TWIN"},
					AddSnippets: map[string][]string{"compatibility.friction": {"Rigid planners"}, "nowhere": {"ignored"}},
				},
				{ID: "bad", When: "not a condition"},
			},
		},
	}
}

func duetProfile() *schema.Profile {
	return &schema.Profile{
		Respondent: "ada",
		HEXACO:     schema.DomainScores{schema.Openness: 6.0},
		Archetypes: schema.ArchetypeProbabilities{schema.Explorer: 0.40, schema.Organizer: 0.38},
		Roster: schema.RosterClassification{
			Structure: schema.Duet,
			Ranked: []schema.RankedArchetype{
				{Archetype: schema.Explorer, Probability: 0.40},
				{Archetype: schema.Organizer, Probability: 0.38},
			},
			Duet: &schema.DuetRecord{
				Mode:     schema.TwinHelix,
				Anchor:   schema.Explorer,
				Lens:     schema.Organizer,
				Identity: "Visionary Builder",
			},
		},
	}
}

func quiet(string, error) {}

func TestAssemble_Duet(t *testing.T) {
	var warnings []string
	r := Assemble(duetProfile(), testBundle(), Options{Warn: func(msg string, _ error) { warnings = append(warnings, msg) }})

	assert.Equal(t, schema.ReportVersion, r.Version)
	assert.Equal(t, "ada", r.Respondent)
	assert.Equal(t, schema.Duet, r.Structure)
	assert.Equal(t, "Duet", r.StructureLabel)
	assert.Equal(t, "Visionary Builder", r.IdentityName)
	assert.Equal(t, "Dreams with a project plan", r.IdentityTagline)
	assert.Equal(t, "Twin-Helix", r.ModeName)
	assert.Equal(t, "50:50", r.ModeRatio)
	assert.Equal(t, "Duet: Visionary Builder — Twin-Helix", r.SummaryLabel)

	require.NotNil(t, r.Roles.Anchor)
	assert.Equal(t, "Anchor", r.Roles.Anchor.Name)
	assert.Equal(t, schema.Explorer, r.Roles.Anchor.Archetype)
	require.NotNil(t, r.Roles.Lens)
	assert.Equal(t, schema.Organizer, r.Roles.Lens.Archetype)

	d := r.Domains
	assert.Equal(t, []string{"Turns ideas into systems"}, d.Strengths.Bullets)
	assert.Equal(t, []string{"Two engines", "Curiosity is a core engine"}, d.Strengths.Notes)
	assert.Equal(t, []string{"Pick a lead per project"}, d.SelfImprovement.Notes)
	assert.Equal(t, []string{"Unstructured exploration"}, d.Hobbies.Play)
	assert.Equal(t, []schema.CompatibilityMatch{{Match: "Rigid planners"}}, d.Compatibility.Friction)
	assert.Empty(t, d.Watchouts.Notes)
	assert.NotNil(t, d.Money.Style)
	assert.Nil(t, d.Validity)

	assert.Equal(t, []string{"HIGH_O", "TWIN"}, r.Trace.Flags)
	assert.Equal(t, []string{"high-openness", "twin"}, r.Trace.MatchedRules)
	assert.Equal(t, []string{
		"identity:strengths",
		"identity:career",
		"identity:compatibility",
		"mode:strengths",
		"mode:watchouts",
		"mode:prescriptions",
		"rule:hobbies.play",
		"rule:strengths.notes",
		"rule:compatibility.friction",
	}, r.Trace.SelectedBlocks)

	assert.Len(t, warnings, 1)
}

func TestAssemble_ThresholdOverride(t *testing.T) {
	r := Assemble(duetProfile(), testBundle(), Options{
		Thresholds: map[string]float64{"high": 6.5},
		Warn:       quiet,
	})
	assert.Equal(t, []string{"twin"}, r.Trace.MatchedRules)
}

func TestAssemble_Solo(t *testing.T) {
	p := &schema.Profile{
		Archetypes: schema.ArchetypeProbabilities{schema.Explorer: 0.7},
		Roster: schema.RosterClassification{
			Structure: schema.Solo,
			Ranked:    []schema.RankedArchetype{{Archetype: schema.Explorer, Probability: 0.7}},
		},
	}
	r := Assemble(p, testBundle(), Options{Warn: quiet})

	assert.Equal(t, "The Explorer", r.IdentityName)
	assert.Equal(t, "Primary explorer", r.IdentityTagline)
	assert.Equal(t, "Solo", r.ModeName)
	assert.Equal(t, "Solo: The Explorer — Solo", r.SummaryLabel)
	assert.True(t, r.Roles.Empty())
	assert.Equal(t, []string{"Leaves before finishing"}, r.Domains.Watchouts.Bullets)
	assert.Equal(t, []string{"identity:watchouts"}, r.Trace.SelectedBlocks)
}

func TestAssemble_TrioFallsBackToPrimary(t *testing.T) {
	p := &schema.Profile{
		Roster: schema.RosterClassification{
			Structure: schema.Trio,
			Ranked: []schema.RankedArchetype{
				{Archetype: schema.Explorer, Probability: 0.34},
				{Archetype: schema.Philosopher, Probability: 0.33},
				{Archetype: schema.Connector, Probability: 0.30},
			},
			Trio: &schema.TrioRecord{Mode: schema.TriHelix, Primary: schema.Explorer, Secondary: schema.Philosopher, Tertiary: schema.Connector},
		},
	}
	r := Assemble(p, testBundle(), Options{Warn: quiet})

	assert.Equal(t, "Trio: The Explorer — Tri-Helix", r.SummaryLabel)
	require.NotNil(t, r.Roles.Keystone)
	assert.Equal(t, schema.Explorer, r.Roles.Keystone.Archetype)
	assert.Equal(t, schema.Philosopher, r.Roles.Lens.Archetype)
	assert.Equal(t, schema.Connector, r.Roles.Shadow.Archetype)
	assert.Equal(t, []string{"Leaves before finishing"}, r.Domains.Watchouts.Bullets)
	assert.Equal(t, []string{"Three-way stalls"}, r.Domains.Watchouts.Notes)
	assert.Equal(t, []string{"identity:watchouts", "mode:watchouts"}, r.Trace.SelectedBlocks)
}

func TestAssemble_TriadContentWins(t *testing.T) {
	bundle := testBundle()
	bundle.Triads = map[string]schema.IdentityContent{
		"EXPLORER_PHILOSOPHER_CONNECTOR": {Tagline: "Triad"},
	}
	p := &schema.Profile{
		Roster: schema.RosterClassification{
			Structure: schema.Trio,
			Ranked:    []schema.RankedArchetype{{Archetype: schema.Explorer, Probability: 0.34}},
			Trio:      &schema.TrioRecord{Mode: schema.TriHelix, Primary: schema.Explorer, Secondary: schema.Philosopher, Tertiary: schema.Connector},
		},
	}
	r := Assemble(p, bundle, Options{Warn: quiet})
	assert.Equal(t, "Triad", r.IdentityTagline)
}

func TestAssemble_ChoralAndFaulted(t *testing.T) {
	chord := &schema.Profile{
		Roster: schema.RosterClassification{
			Structure: schema.Chord,
			Ranked:    []schema.RankedArchetype{{Archetype: schema.Performer, Probability: 0.3}},
			Choral: &schema.ChoralRecord{
				Mode:         schema.ChordTopHeavy,
				Anchor:       schema.Performer,
				Contributing: []schema.Archetype{schema.Performer, schema.Connector, schema.Explorer, schema.Organizer, schema.Protector},
			},
		},
	}
	r := Assemble(chord, testBundle(), Options{Warn: quiet})
	assert.Equal(t, "Chord: Performer — Chord (Top-Heavy)", r.SummaryLabel)
	require.NotNil(t, r.Roles.Anchor)
	assert.Len(t, r.Roles.Voices, 5)
	assert.Equal(t, "Voice", r.Roles.Voices[0].Name)

	faulted := &schema.Profile{
		Validity:         schema.ValidityFlags{Random: true},
		ValidityMessages: []string{"Responses look random."},
		Roster: schema.RosterClassification{
			Structure: schema.Faulted,
			Ranked:    []schema.RankedArchetype{{Archetype: schema.Explorer, Probability: 0.3}},
		},
	}
	r = Assemble(faulted, testBundle(), Options{Warn: quiet})
	assert.Equal(t, "Faulted: The Explorer — Unclassified", r.SummaryLabel)
	require.NotNil(t, r.Domains.Validity)
	assert.Equal(t, []string{"Responses look random."}, r.Domains.Validity.Notes)
	assert.Contains(t, r.Trace.SelectedBlocks, "validity:notes")
}

func TestAssemble_EmptyBundle(t *testing.T) {
	r := Assemble(duetProfile(), nil, Options{})

	assert.Equal(t, "Duet: Visionary Builder — Twin-Helix", r.SummaryLabel)
	assert.Empty(t, r.IdentityTagline)
	assert.Empty(t, r.ModeRatio)
	assert.NotNil(t, r.Domains.Strengths.Bullets)
	assert.Empty(t, r.Trace.Flags)
	assert.Empty(t, r.Trace.MatchedRules)
	assert.Empty(t, r.Trace.SelectedBlocks)
}

func TestAssemble_VocabLabelsOverride(t *testing.T) {
	bundle := testBundle()
	bundle.Vocab = schema.Vocab{
		StructureLabels: map[string]string{"DUET": "Pair"},
		ModeLabels:      map[string]string{"TWIN_HELIX": "Twins"},
		Roles:           map[string]string{"anchor": "Root"},
	}
	r := Assemble(duetProfile(), bundle, Options{Warn: quiet})

	assert.Equal(t, "Pair: Visionary Builder — Twins", r.SummaryLabel)
	assert.Equal(t, "Root", r.Roles.Anchor.Name)
	assert.Equal(t, "Lens", r.Roles.Lens.Name)
}
