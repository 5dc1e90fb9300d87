package core

import (
	"testing"

	"github.com/hpmalabs/hpma/schema"
	"github.com/stretchr/testify/assert"
)

// TestItemScore tests forward, reversed and unanswered items.
func TestItemScore(t *testing.T) {
	forward := schema.Question{ID: 1, Subdomain: "sincerity"}
	reversed := schema.Question{ID: 2, Subdomain: "sincerity", Reversed: true}
	responses := schema.Responses{1: 5, 2: 2}

	tests := []struct {
		name     string
		question schema.Question
		want     float64
	}{
		{"forward item keeps the rating", forward, 5},
		{"reversed item mirrors the rating", reversed, 6},
		{"unanswered item scores zero", schema.Question{ID: 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ItemScore(responses, tt.question))
		})
	}
}

// TestReverseScore tests that reversing is an involution over the scale.
func TestReverseScore(t *testing.T) {
	for v := 1; v <= 7; v++ {
		r := ReverseScore(float64(v))
		assert.Equal(t, float64(8-v), r)
		assert.Equal(t, float64(v), ReverseScore(r))
	}
	assert.Equal(t, 4.0, ReverseScore(4))
}

// TestZScore tests normalisation against the fixed constants.
func TestZScore(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{4, 0},
		{7, 2},
		{1, -2},
		{5.5, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ZScore(tt.raw), 1e-12, "raw=%v", tt.raw)
	}
}

// TestClamp01 tests bounding to the unit interval.
func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.5))
	assert.Equal(t, 0.25, clamp01(0.25))
	assert.Equal(t, 1.0, clamp01(1.5))
}
