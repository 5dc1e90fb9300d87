package rules

import (
	"github.com/hpmalabs/hpma/schema"
)

// BuildContext flattens a profile into the nested mapping rule conditions read.
// Absent roster sub-records are left out so that their paths resolve as missing.
func BuildContext(p *schema.Profile) Context {
	hexaco := make(map[string]any, len(schema.AllDomains))
	for _, d := range schema.AllDomains {
		hexaco[string(d)] = p.HEXACO[d]
	}
	motives := make(map[string]any, len(schema.AllMotives))
	for _, m := range schema.AllMotives {
		motives[string(m)] = p.Motives[m]
	}
	affects := make(map[string]any, len(schema.AllAffects))
	for _, a := range schema.AllAffects {
		affects[string(a)] = p.Affects[a]
	}
	archetypes := make(map[string]any, len(schema.AllArchetypes))
	for _, a := range schema.AllArchetypes {
		archetypes[string(a)] = p.Archetypes[a]
	}

	return Context{
		"scores": map[string]any{
			"hexaco":  hexaco,
			"motives": motives,
			"affects": affects,
		},
		"archetypes": archetypes,
		"validity": map[string]any{
			"idealized":   p.Validity.Idealized,
			"random":      p.Validity.Random,
			"inattentive": p.Validity.Inattentive,
		},
		"attachment": map[string]any{
			"anxiety":    p.Attachment.Anxiety,
			"avoidance":  p.Attachment.Avoidance,
			"style":      string(p.Attachment.Style),
			"confidence": p.Attachment.Confidence,
		},
		"antagonism": map[string]any{
			"exploitative": p.Antagonism.Exploitative,
			"callous":      p.Antagonism.Callous,
			"combative":    p.Antagonism.Combative,
			"image_driven": p.Antagonism.ImageDriven,
			"composite":    p.Antagonism.Composite,
			"elevated":     p.Antagonism.Elevated,
		},
		"roster": rosterContext(p.Roster),
	}
}

func rosterContext(r schema.RosterClassification) map[string]any {
	m := map[string]any{
		"structure":     string(r.Structure),
		"confidence":    string(r.Confidence.Level),
		"summary_label": r.SummaryLabel,
		"metrics": map[string]any{
			"S2":        r.Metrics.S2,
			"S3":        r.Metrics.S3,
			"r2":        r.Metrics.R2,
			"g12":       r.Metrics.G12,
			"entropy_n": r.Metrics.EntropyN,
		},
	}
	if d := r.Duet; d != nil {
		m["duet"] = map[string]any{
			"mode":     string(d.Mode),
			"identity": d.Identity,
			"anchor":   string(d.Anchor),
			"lens":     string(d.Lens),
		}
	}
	if t := r.Trio; t != nil {
		m["trio"] = map[string]any{
			"mode":      string(t.Mode),
			"primary":   string(t.Primary),
			"secondary": string(t.Secondary),
			"tertiary":  string(t.Tertiary),
		}
	}
	if c := r.Choral; c != nil {
		contributing := make([]string, len(c.Contributing))
		for i, a := range c.Contributing {
			contributing[i] = string(a)
		}
		choral := map[string]any{
			"mode":         string(c.Mode),
			"contributing": contributing,
		}
		if c.Anchor != "" {
			choral["anchor"] = string(c.Anchor)
		}
		m["choral"] = choral
	}
	return m
}
