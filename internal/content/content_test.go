package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hpmalabs/hpma/core/report"
	"github.com/hpmalabs/hpma/core/rules"
	"github.com/hpmalabs/hpma/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "HPMA-Content-1.0", b.Version)
	assert.Len(t, b.Identities.Primaries, len(schema.AllArchetypes))
	assert.Len(t, b.Identities.Dyads, 15)
	assert.Len(t, b.Primaries, len(schema.AllArchetypes))
	assert.Len(t, b.Dyads, 15)
	assert.Equal(t, 6.0, b.Rules.Thresholds["high"])
	assert.NotEmpty(t, b.Rules.Rules)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, b, again)
}

func TestDefault_CoversEveryMode(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)

	for _, m := range []schema.DuetMode{schema.TwinHelix, schema.LeaningHelix, schema.KeystoneLens, schema.SignatureAccent, schema.Pureline} {
		assert.Contains(t, b.Modes.DuetModes, string(m))
	}
	for _, m := range []schema.TrioMode{schema.TriHelix, schema.KeystonePrism, schema.KeystoneOrbit, schema.TriadStack} {
		assert.Contains(t, b.Modes.TrioModes, string(m))
	}
	for _, m := range []schema.PolyphonicMode{schema.ChordTop4, schema.ChordTopHeavy, schema.ChorusDistributed, schema.ChorusContextSplit} {
		assert.Contains(t, b.Modes.PolyphonicModes, string(m))
	}
}

func TestDefault_DyadContentMatchesIdentities(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)

	for key, id := range b.Identities.Dyads {
		content, ok := b.Dyads[key]
		require.True(t, ok, "missing dyad content for %s", key)
		assert.Equal(t, id.Tagline, content.Tagline)
	}
	for _, a := range schema.AllArchetypes {
		assert.Contains(t, b.Primaries, string(a))
	}
}

func TestDefault_RulesParse(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)

	for _, r := range b.Rules.Rules {
		_, err := rules.Parse(r.When)
		assert.NoError(t, err, "rule %s", r.ID)
	}
}

func TestDefault_AssemblesReport(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)

	p := &schema.Profile{
		HEXACO: schema.DomainScores{schema.Openness: 6.2, schema.Conscientiousness: 4},
		Roster: schema.RosterClassification{
			Structure: schema.Duet,
			Ranked: []schema.RankedArchetype{
				{Archetype: schema.Explorer, Probability: 0.40},
				{Archetype: schema.Philosopher, Probability: 0.38},
			},
			Duet: &schema.DuetRecord{Mode: schema.TwinHelix, Anchor: schema.Explorer, Lens: schema.Philosopher, Identity: "Seeker-Sage"},
		},
	}
	r := report.Assemble(p, b, report.Options{Warn: func(string, error) { t.Fail() }})

	assert.Equal(t, "Duet: Seeker-Sage — Twin-Helix", r.SummaryLabel)
	assert.Equal(t, "Wanders far to understand deeply", r.IdentityTagline)
	assert.Contains(t, r.Trace.Flags, "HIGH_OPENNESS")
	assert.Contains(t, r.Trace.Flags, "BALANCED_DUET")
	assert.Contains(t, r.Trace.SelectedBlocks, "identity:strengths")
	assert.Contains(t, r.Trace.SelectedBlocks, "mode:strengths")
}

func writeFile(t *testing.T, dir, name, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
}

func TestLoad_OverridesSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, RulesFile, `
version: custom
thresholds:
  high: 5
rules:
  - id: only
    when: scores.hexaco.O >= thresholds.high
    add_flags: [CUSTOM]
`)

	b, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "custom", b.Rules.Version)
	require.Len(t, b.Rules.Rules, 1)
	assert.Equal(t, 5.0, b.Rules.Thresholds["high"])
	assert.Len(t, b.Dyads, 15, "missing files fall back to the defaults")
}

func TestLoad_EmptyDirUsesDefault(t *testing.T) {
	b, err := Load("")
	require.NoError(t, err)
	def, err := Default()
	require.NoError(t, err)
	assert.Same(t, def, b)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			file:    ModesFile,
			data:    "duet_modes: [",
			wantErr: "failed to decode modes.yaml",
		},
		{
			name:    "rule without condition",
			file:    RulesFile,
			data:    "rules:\n  - id: x\n",
			wantErr: "invalid rules",
		},
		{
			name:    "duplicate rule",
			file:    RulesFile,
			data:    "rules:\n  - id: x\n    when: a.b == 1\n  - id: x\n    when: a.b == 2\n",
			wantErr: `duplicate rule id "x"`,
		},
		{
			name:    "misnamed dyad key",
			file:    IdentitiesFile,
			data:    "dyads:\n  WRONG:\n    pair: [explorer, organizer]\n    name: Visionary Builder\n",
			wantErr: "expected VISIONARY_BUILDER",
		},
		{
			name:    "dyad with unknown archetype",
			file:    IdentitiesFile,
			data:    "dyads:\n  A_B:\n    pair: [explorer, wizard]\n    name: A B\n",
			wantErr: `unknown archetype "wizard"`,
		},
		{
			name:    "dyad with one archetype",
			file:    IdentitiesFile,
			data:    "dyads:\n  A:\n    pair: [explorer]\n    name: A\n",
			wantErr: "invalid identities",
		},
		{
			name:    "unknown primary",
			file:    PrimariesFile,
			data:    "wizard:\n  tagline: nope\n",
			wantErr: `unknown archetype "wizard"`,
		},
		{
			name:    "mode without name",
			file:    ModesFile,
			data:    "duet_modes:\n  PURELINE:\n    ratio: \"90:10\"\n",
			wantErr: "invalid modes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.data)
			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_BadDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = Load(file)
	assert.ErrorContains(t, err, "is not a directory")
}
