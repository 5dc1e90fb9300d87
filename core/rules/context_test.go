package rules

import (
	"testing"

	"github.com/hpmalabs/hpma/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func duetProfile() *schema.Profile {
	return &schema.Profile{
		HEXACO:     schema.DomainScores{schema.Openness: 6.25, schema.Conscientiousness: 3},
		Motives:    schema.MotiveScores{schema.Mastery: 5.5},
		Affects:    schema.AffectScores{schema.Play: 2},
		Archetypes: schema.ArchetypeProbabilities{schema.Explorer: 0.4, schema.Organizer: 0.38},
		Attachment: schema.AttachmentProfile{Anxiety: 2, Avoidance: 2, Style: schema.Secure, Confidence: 0.5},
		Antagonism: schema.AntagonismProfile{Combative: 5.5, Composite: 4.5, Elevated: true},
		Validity:   schema.ValidityFlags{Idealized: true},
		Roster: schema.RosterClassification{
			Structure:    schema.Duet,
			Metrics:      schema.DerivedMetrics{S2: 0.78, S3: 0.8, R2: 0.95, G12: 0.02, EntropyN: 0.6},
			Duet:         &schema.DuetRecord{Mode: schema.TwinHelix, Anchor: schema.Explorer, Lens: schema.Organizer, Identity: "Trailblazer"},
			Confidence:   schema.Confidence{Level: schema.HighConfidence},
			SummaryLabel: "Duet: Trailblazer",
		},
	}
}

func TestBuildContext(t *testing.T) {
	ctx := BuildContext(duetProfile())

	tests := []struct {
		path string
		want any
	}{
		{"scores.hexaco.O", 6.25},
		{"scores.hexaco.H", 0.0},
		{"scores.motives.mastery", 5.5},
		{"scores.affects.play", 2.0},
		{"archetypes.explorer", 0.4},
		{"archetypes.philosopher", 0.0},
		{"validity.idealized", true},
		{"validity.random", false},
		{"attachment.style", "SECURE"},
		{"attachment.confidence", 0.5},
		{"antagonism.combative", 5.5},
		{"antagonism.elevated", true},
		{"roster.structure", "DUET"},
		{"roster.confidence", "HIGH"},
		{"roster.summary_label", "Duet: Trailblazer"},
		{"roster.duet.mode", "TWIN_HELIX"},
		{"roster.duet.identity", "Trailblazer"},
		{"roster.duet.anchor", "explorer"},
		{"roster.duet.lens", "organizer"},
		{"roster.metrics.S2", 0.78},
		{"roster.metrics.r2", 0.95},
		{"roster.metrics.entropy_n", 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, ok := ctx.Lookup(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}

	_, ok := ctx.Lookup("roster.trio.mode")
	assert.False(t, ok)
	_, ok = ctx.Lookup("roster.choral")
	assert.False(t, ok)
}

func TestBuildContext_ChoralAndTrio(t *testing.T) {
	p := duetProfile()
	p.Roster.Duet = nil
	p.Roster.Structure = schema.Chord
	p.Roster.Choral = &schema.ChoralRecord{
		Mode:         schema.ChordTop4,
		Contributing: []schema.Archetype{schema.Explorer, schema.Organizer, schema.Connector, schema.Protector},
	}
	p.Roster.Trio = &schema.TrioRecord{Mode: schema.TriHelix, Primary: schema.Explorer}

	ctx := BuildContext(p)

	v, ok := ctx.Lookup("roster.choral.contributing")
	require.True(t, ok)
	assert.Equal(t, []string{"explorer", "organizer", "connector", "protector"}, v)
	_, ok = ctx.Lookup("roster.choral.anchor")
	assert.False(t, ok)

	v, ok = ctx.Lookup("roster.trio.primary")
	require.True(t, ok)
	assert.Equal(t, "explorer", v)
}

func TestBuildContext_DrivesRules(t *testing.T) {
	e := NewEvaluator(map[string]float64{"high": 6.0})
	ctx := BuildContext(duetProfile())

	assert.True(t, e.EvaluateCondition("scores.hexaco.O >= thresholds.high AND roster.duet.mode == 'TWIN_HELIX'", ctx))
	assert.True(t, e.EvaluateCondition("antagonism.elevated == true", ctx))
	assert.False(t, e.EvaluateCondition("roster.trio.mode == 'TRI_HELIX'", ctx))
}
