package core

import (
	"fmt"

	"github.com/hpmalabs/hpma/schema"
)

// dyadKey is an unordered archetype pair.
type dyadKey struct{ a, b schema.Archetype }

// newDyadKey orders the pair canonically so lookups are symmetric.
func newDyadKey(x, y schema.Archetype) dyadKey {
	if archetypeIndex(y) < archetypeIndex(x) {
		x, y = y, x
	}
	return dyadKey{x, y}
}

// archetypeIndex returns the canonical position of an archetype, or len when unknown.
func archetypeIndex(a schema.Archetype) int {
	for i, known := range schema.AllArchetypes {
		if a == known {
			return i
		}
	}
	return len(schema.AllArchetypes)
}

// dyadNames are the canonical identities of the fifteen archetype pairs.
var dyadNames = map[dyadKey]string{
	newDyadKey(schema.Explorer, schema.Philosopher):  "Seeker-Sage",
	newDyadKey(schema.Explorer, schema.Organizer):    "Visionary Builder",
	newDyadKey(schema.Explorer, schema.Connector):    "Wayfinder Diplomat",
	newDyadKey(schema.Explorer, schema.Protector):    "Sentinel Scout",
	newDyadKey(schema.Explorer, schema.Performer):    "Spotlight Pioneer",
	newDyadKey(schema.Philosopher, schema.Organizer): "Systems Theorist",
	newDyadKey(schema.Philosopher, schema.Connector): "Bridge Scholar",
	newDyadKey(schema.Philosopher, schema.Protector): "Vigilant Stoic",
	newDyadKey(schema.Philosopher, schema.Performer): "Public Intellectual",
	newDyadKey(schema.Organizer, schema.Connector):   "Community Operator",
	newDyadKey(schema.Organizer, schema.Protector):   "Risk Steward",
	newDyadKey(schema.Organizer, schema.Performer):   "Showrunner Executive",
	newDyadKey(schema.Connector, schema.Protector):   "Guardian Caretaker",
	newDyadKey(schema.Connector, schema.Performer):   "Charismatic Host",
	newDyadKey(schema.Protector, schema.Performer):   "Watchful Champion",
}

// LookupDyad returns the canonical identity of an archetype pair in either order.
func LookupDyad(a, b schema.Archetype) (string, bool) {
	name, ok := dyadNames[newDyadKey(a, b)]
	return name, ok
}

// DyadIdentity returns the canonical identity of a pair, or a synthesized hybrid name.
func DyadIdentity(anchor, lens schema.Archetype) string {
	if name, ok := LookupDyad(anchor, lens); ok {
		return name
	}
	return fmt.Sprintf("%s–%s Hybrid", schema.TitleName(anchor), schema.TitleName(lens))
}
