package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		combinator Combinator
		count      int
		first      Comparison
	}{
		{
			name:       "threshold reference",
			input:      "scores.hexaco.O >= thresholds.high",
			combinator: Single,
			count:      1,
			first:      Comparison{Left: "scores.hexaco.O", Op: OpGTE, Right: Operand{Kind: ThresholdOperand, Threshold: "high"}},
		},
		{
			name:       "single quoted string",
			input:      "roster.structure == 'DUET'",
			combinator: Single,
			count:      1,
			first:      Comparison{Left: "roster.structure", Op: OpEQ, Right: Operand{Kind: LiteralOperand, Literal: "DUET"}},
		},
		{
			name:       "double quoted string",
			input:      `roster.duet.mode != "PURELINE"`,
			combinator: Single,
			count:      1,
			first:      Comparison{Left: "roster.duet.mode", Op: OpNEQ, Right: Operand{Kind: LiteralOperand, Literal: "PURELINE"}},
		},
		{
			name:       "boolean",
			input:      "validity.random == true",
			combinator: Single,
			count:      1,
			first:      Comparison{Left: "validity.random", Op: OpEQ, Right: Operand{Kind: LiteralOperand, Literal: true}},
		},
		{
			name:       "number without spaces",
			input:      "archetypes.explorer>0.3",
			combinator: Single,
			count:      1,
			first:      Comparison{Left: "archetypes.explorer", Op: OpGT, Right: Operand{Kind: LiteralOperand, Literal: 0.3}},
		},
		{
			name:       "path on the right",
			input:      "scores.hexaco.O > scores.hexaco.C",
			combinator: Single,
			count:      1,
			first:      Comparison{Left: "scores.hexaco.O", Op: OpGT, Right: Operand{Kind: PathOperand, Path: "scores.hexaco.C"}},
		},
		{
			name:       "conjunction",
			input:      "scores.hexaco.O >= 5 AND scores.hexaco.C <= 3 AND validity.random == false",
			combinator: AllOf,
			count:      3,
			first:      Comparison{Left: "scores.hexaco.O", Op: OpGTE, Right: Operand{Kind: LiteralOperand, Literal: 5.0}},
		},
		{
			name:       "disjunction",
			input:      "roster.structure == 'SOLO' OR roster.structure == 'DUET'",
			combinator: AnyOf,
			count:      2,
			first:      Comparison{Left: "roster.structure", Op: OpEQ, Right: Operand{Kind: LiteralOperand, Literal: "SOLO"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.combinator, c.Combinator)
			require.Len(t, c.Comparisons, tt.count)
			assert.Equal(t, tt.first, c.Comparisons[0])
		})
	}
}

func TestParse_MixedCombinatorsRejected(t *testing.T) {
	// AND wins the split, so the OR stays inside an atomic part and cannot be read.
	_, err := Parse("a.b == 1 AND c.d == 2 OR e.f == 3")
	assert.ErrorIs(t, err, ErrInvalidCondition)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "   "},
		{"no operator", "scores.hexaco.O"},
		{"bad left side", "scores hexaco >= 3"},
		{"empty threshold", "scores.hexaco.O >= thresholds."},
		{"garbage right side", "scores.hexaco.O >= 3 apples"},
		{"bad part in conjunction", "scores.hexaco.O >= 3 AND nonsense"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCondition)
		})
	}
}
