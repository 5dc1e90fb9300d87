package schema

import (
	"strings"
	"unicode"
)

// TitleName formats an archetype code for display, e.g. "explorer" to "Explorer".
func TitleName(a Archetype) string {
	rr := []rune(string(a))
	if len(rr) == 0 {
		return ""
	}
	rr[0] = unicode.ToUpper(rr[0])
	return string(rr)
}

// TitleNames formats a list of archetypes for display.
func TitleNames(as []Archetype) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = TitleName(a)
	}
	return out
}

// IdentityKey turns an identity name into a content key, e.g. "Seeker-Sage" to "SEEKER_SAGE".
func IdentityKey(name string) string {
	key := strings.ReplaceAll(name, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ToUpper(key)
}

// ParseArchetype resolves a case-insensitive archetype name.
func ParseArchetype(s string) (Archetype, bool) {
	a := Archetype(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllArchetypes {
		if a == known {
			return a, true
		}
	}
	return "", false
}
