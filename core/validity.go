package core

import (
	"strings"

	"github.com/hpmalabs/hpma/schema"
)

// Validity item ids and their cut-offs.
const (
	neverLiedItem        = 107 // idealized when >= 6
	alwaysCalmItem       = 109 // idealized when >= 6
	readCarefullyItem    = 111 // inattentive when <= 3
	answeredRandomlyItem = 112 // random when >= 4

	idealizedMin   = 6
	randomMin      = 4
	inattentiveMax = 3
)

// Validity messages shown to the respondent.
const (
	idealizedMessage   = "Some responses suggest idealized self-presentation. Results may reflect aspirational rather than typical behavior."
	randomMessage      = "You indicated some responses may have been random. Results should be interpreted with caution."
	inattentiveMessage = "Low attention to items detected. Consider retaking the assessment with more focus."
)

// answeredAtLeast reports whether id was answered with a rating >= threshold.
func answeredAtLeast(responses schema.Responses, id, threshold int) bool {
	v, ok := responses[id]
	return ok && v >= threshold
}

// answeredAtMost reports whether id was answered with a rating <= threshold.
func answeredAtMost(responses schema.Responses, id, threshold int) bool {
	v, ok := responses[id]
	return ok && v <= threshold
}

// CheckValidity evaluates the advisory response-quality flags.
// Unanswered validity items never raise a flag.
func CheckValidity(responses schema.Responses) schema.ValidityFlags {
	return schema.ValidityFlags{
		Idealized:   answeredAtLeast(responses, neverLiedItem, idealizedMin) || answeredAtLeast(responses, alwaysCalmItem, idealizedMin),
		Random:      answeredAtLeast(responses, answeredRandomlyItem, randomMin),
		Inattentive: answeredAtMost(responses, readCarefullyItem, inattentiveMax),
	}
}

// ValidityMessages returns one message per raised flag, in flag order.
func ValidityMessages(flags schema.ValidityFlags) []string {
	var messages []string
	if flags.Idealized {
		messages = append(messages, idealizedMessage)
	}
	if flags.Random {
		messages = append(messages, randomMessage)
	}
	if flags.Inattentive {
		messages = append(messages, inattentiveMessage)
	}
	return messages
}

// faultReason names the flags that fault a classification, or "" when none do.
func faultReason(flags schema.ValidityFlags) string {
	var reasons []string
	if flags.Random {
		reasons = append(reasons, "random")
	}
	if flags.Inattentive {
		reasons = append(reasons, "inattentive")
	}
	if len(reasons) == 0 {
		return ""
	}
	return strings.Join(reasons, " and ") + " responding"
}
