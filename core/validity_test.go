package core

import (
	"testing"

	"github.com/hpmalabs/hpma/schema"
	"github.com/stretchr/testify/assert"
)

func TestCheckValidity(t *testing.T) {
	tests := []struct {
		name      string
		responses schema.Responses
		want      schema.ValidityFlags
	}{
		{"unanswered raises nothing", schema.Responses{}, schema.ValidityFlags{}},
		{"plain answers", schema.Responses{107: 3, 109: 4, 111: 6, 112: 1}, schema.ValidityFlags{}},
		{"never lied", schema.Responses{107: 6}, schema.ValidityFlags{Idealized: true}},
		{"always calm", schema.Responses{109: 7}, schema.ValidityFlags{Idealized: true}},
		{"idealized just below cut-off", schema.Responses{107: 5, 109: 5}, schema.ValidityFlags{}},
		{"random at cut-off", schema.Responses{112: 4}, schema.ValidityFlags{Random: true}},
		{"random below cut-off", schema.Responses{112: 3}, schema.ValidityFlags{}},
		{"inattentive at cut-off", schema.Responses{111: 3}, schema.ValidityFlags{Inattentive: true}},
		{"attentive above cut-off", schema.Responses{111: 4}, schema.ValidityFlags{}},
		{"all flags", schema.Responses{107: 7, 111: 1, 112: 7}, schema.ValidityFlags{Idealized: true, Random: true, Inattentive: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckValidity(tt.responses))
		})
	}
}

func TestValidityMessages(t *testing.T) {
	assert.Empty(t, ValidityMessages(schema.ValidityFlags{}))

	msgs := ValidityMessages(schema.ValidityFlags{Idealized: true, Inattentive: true})
	assert.Equal(t, []string{idealizedMessage, inattentiveMessage}, msgs)

	msgs = ValidityMessages(schema.ValidityFlags{Idealized: true, Random: true, Inattentive: true})
	assert.Len(t, msgs, 3)
	assert.Equal(t, randomMessage, msgs[1])
}

func TestFaultReason(t *testing.T) {
	assert.Equal(t, "", faultReason(schema.ValidityFlags{Idealized: true}))
	assert.Equal(t, "random responding", faultReason(schema.ValidityFlags{Random: true}))
	assert.Equal(t, "inattentive responding", faultReason(schema.ValidityFlags{Inattentive: true}))
	assert.Equal(t, "random and inattentive responding", faultReason(schema.ValidityFlags{Random: true, Inattentive: true}))
}
