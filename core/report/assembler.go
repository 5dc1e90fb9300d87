// Package report assembles narrative reports from a scored profile and a content bundle.
package report

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/hpmalabs/hpma/core/rules"
	"github.com/hpmalabs/hpma/schema"
)

// Options tune report assembly.
type Options struct {
	// Thresholds override the named thresholds of the bundle's rule set.
	Thresholds map[string]float64
	// Warn receives rule parse warnings. Defaults to stderr.
	Warn rules.WarnFunc
}

var defaultRoleNames = map[string]string{
	"anchor":   "Anchor",
	"keystone": "Keystone",
	"lens":     "Lens",
	"shadow":   "Shadow",
	"voice":    "Voice",
}

// Assemble builds the report of a profile. Content that is missing from the bundle
// leaves the matching blocks empty; assembly never fails.
func Assemble(p *schema.Profile, bundle *schema.ContentBundle, opts Options) *schema.Report {
	if bundle == nil {
		bundle = &schema.ContentBundle{}
	}

	thresholds := make(map[string]float64, len(bundle.Rules.Thresholds)+len(opts.Thresholds))
	maps.Copy(thresholds, bundle.Rules.Thresholds)
	maps.Copy(thresholds, opts.Thresholds)

	var evalOpts []rules.Option
	if opts.Warn != nil {
		evalOpts = append(evalOpts, rules.WithWarn(opts.Warn))
	}
	evaluator := rules.NewEvaluator(thresholds, evalOpts...)
	matches := evaluator.EvaluateAll(bundle.Rules.Rules, rules.BuildContext(p))

	identity := identityContent(p, bundle)
	modifier := modeModifier(p.Roster, bundle)

	a := &assembly{domains: newDomains()}
	if identity != nil {
		a.mergeIdentity(identity.Domains)
	}
	if modifier != nil {
		a.mergeMode(modifier.Adds)
	}
	a.mergeSnippets(matches)
	if p.Validity.Any() {
		a.domains.Validity = &schema.ValidityBlock{Notes: append([]string{}, p.ValidityMessages...)}
		a.selected = append(a.selected, "validity:notes")
	}

	r := &schema.Report{
		Version:        schema.ReportVersion,
		GeneratedAt:    time.Now().UTC(),
		Respondent:     p.Respondent,
		Structure:      p.Roster.Structure,
		StructureLabel: vocabLabel(bundle.Vocab.StructureLabels, string(p.Roster.Structure), schema.StructureLabel(p.Roster.Structure)),
		IdentityName:   identityName(p, bundle),
		ModeName:       modeName(p.Roster, bundle),
		Roles:          buildRoles(p.Roster, bundle.Vocab.Roles),
		Domains:        a.domains,
		Trace: schema.ReportTrace{
			Flags:          rules.CollectFlags(matches),
			MatchedRules:   matchedRuleIDs(matches),
			SelectedBlocks: a.selected,
		},
	}
	if identity != nil {
		r.IdentityTagline = identity.Tagline
	}
	if modifier != nil {
		r.ModeRatio = modifier.Ratio
	}
	r.SummaryLabel = fmt.Sprintf("%s: %s — %s", r.StructureLabel, r.IdentityName, r.ModeName)
	return r
}

// topArchetype returns the most probable archetype of the profile.
func topArchetype(p *schema.Profile) schema.Archetype {
	if top := p.Roster.Top(0); top != "" {
		return top
	}
	var best schema.Archetype
	for _, a := range schema.AllArchetypes {
		if v, ok := p.Archetypes[a]; ok && (best == "" || v > p.Archetypes[best]) {
			best = a
		}
	}
	return best
}

// identityContent picks the authored narrative for the profile's structure.
func identityContent(p *schema.Profile, bundle *schema.ContentBundle) *schema.IdentityContent {
	top := topArchetype(p)
	lookup := func(m map[string]schema.IdentityContent, key string) *schema.IdentityContent {
		if c, ok := m[key]; ok {
			return &c
		}
		return nil
	}

	switch {
	case p.Roster.Structure == schema.Solo:
		return lookup(bundle.Primaries, strings.ToLower(string(top)))
	case p.Roster.Duet != nil:
		return lookup(bundle.Dyads, schema.IdentityKey(p.Roster.Duet.Identity))
	}

	if t := p.Roster.Trio; t != nil {
		key := schema.IdentityKey(strings.Join([]string{string(t.Primary), string(t.Secondary), string(t.Tertiary)}, "_"))
		if c := lookup(bundle.Triads, key); c != nil {
			return c
		}
	}
	if c := lookup(bundle.Dyads, schema.IdentityKey(string(top))); c != nil {
		return c
	}
	return lookup(bundle.Primaries, strings.ToLower(string(top)))
}

// modeModifier returns the content attached to the roster's mode, if any.
func modeModifier(r schema.RosterClassification, bundle *schema.ContentBundle) *schema.ModeModifier {
	var (
		m  schema.ModeModifier
		ok bool
	)
	switch {
	case r.Duet != nil:
		m, ok = bundle.Modes.DuetModes[string(r.Duet.Mode)]
	case r.Trio != nil:
		m, ok = bundle.Modes.TrioModes[string(r.Trio.Mode)]
	case r.Choral != nil:
		m, ok = bundle.Modes.PolyphonicModes[string(r.Choral.Mode)]
	}
	if !ok {
		return nil
	}
	return &m
}

func identityName(p *schema.Profile, bundle *schema.ContentBundle) string {
	if p.Roster.Duet != nil {
		return p.Roster.Duet.Identity
	}
	top := topArchetype(p)
	if top == "" {
		return "Unknown"
	}
	if primary, ok := bundle.Identities.Primaries[strings.ToUpper(string(top))]; ok && primary.Name != "" {
		return primary.Name
	}
	return schema.TitleName(top)
}

func modeName(r schema.RosterClassification, bundle *schema.ContentBundle) string {
	mode := r.ModeName()
	return vocabLabel(bundle.Vocab.ModeLabels, mode, schema.ModeLabel(mode))
}

// vocabLabel prefers the bundle's label for a code over the built-in fallback.
func vocabLabel(custom map[string]string, code, fallback string) string {
	if l, ok := custom[code]; ok && l != "" {
		return l
	}
	return fallback
}

func buildRoles(r schema.RosterClassification, names map[string]string) schema.ReportRoles {
	role := func(key string, a schema.Archetype) *schema.ReportRole {
		return &schema.ReportRole{Name: vocabLabel(names, key, defaultRoleNames[key]), Archetype: a}
	}

	var roles schema.ReportRoles
	if d := r.Duet; d != nil {
		roles.Anchor = role("anchor", d.Anchor)
		roles.Lens = role("lens", d.Lens)
	}
	if t := r.Trio; t != nil {
		roles.Keystone = role("keystone", t.Primary)
		roles.Lens = role("lens", t.Secondary)
		roles.Shadow = role("shadow", t.Tertiary)
	}
	if c := r.Choral; c != nil {
		if c.Anchor != "" {
			roles.Anchor = role("anchor", c.Anchor)
		}
		for _, a := range c.Contributing {
			roles.Voices = append(roles.Voices, *role("voice", a))
		}
	}
	return roles
}

func matchedRuleIDs(matches []schema.RuleMatch) []string {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.RuleID
	}
	return ids
}
