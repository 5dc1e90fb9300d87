package report

import (
	"strings"

	"github.com/hpmalabs/hpma/core/rules"
	"github.com/hpmalabs/hpma/schema"
)

// assembly accumulates domain content and the trace of the blocks it used.
type assembly struct {
	domains  schema.ReportDomains
	selected []string
}

// newDomains returns domains whose lists are all empty rather than nil.
func newDomains() schema.ReportDomains {
	return schema.ReportDomains{
		Strengths:       schema.StrengthsBlock{Bullets: []string{}, Notes: []string{}, Evidence: []string{}},
		Watchouts:       schema.WatchoutsBlock{Bullets: []string{}, Telltales: []string{}, Notes: []string{}},
		Career:          schema.CareerBlock{BestEnvironments: []string{}, RolePatterns: []string{}, AntiPatterns: []string{}, Collaboration: []string{}, Notes: []string{}},
		Money:           schema.MoneyBlock{Style: []string{}, Risks: []string{}, Guardrails: []string{}, Notes: []string{}},
		Relationships:   schema.RelationshipsBlock{Offers: []string{}, Needs: []string{}, Triggers: []string{}, Repair: []string{}, Notes: []string{}},
		Parenting:       schema.ParentingBlock{Strengths: []string{}, Traps: []string{}, DoMore: []string{}, DoLess: []string{}, Notes: []string{}},
		Hobbies:         schema.HobbiesBlock{Recharge: []string{}, Play: []string{}, WarningSigns: []string{}, Notes: []string{}},
		SelfImprovement: schema.SelfImprovementBlock{Leverage: []string{}, KeystoneConstraints: []string{}, IfThenRules: []string{}, GrowthEdges: []string{}, Notes: []string{}},
		Compatibility:   schema.CompatibilityBlock{Complimentary: []schema.CompatibilityMatch{}, Friction: []schema.CompatibilityMatch{}, Conflict: []schema.CompatibilityMatch{}, GeneralNotes: []string{}},
	}
}

func (a *assembly) use(block string) {
	a.selected = append(a.selected, block)
}

// mergeIdentity appends every present identity block.
func (a *assembly) mergeIdentity(d schema.DomainBlocks) {
	out := &a.domains
	if b := d.Strengths; b != nil {
		out.Strengths.Bullets = append(out.Strengths.Bullets, b.Bullets...)
		out.Strengths.Evidence = append(out.Strengths.Evidence, b.Evidence...)
		a.use("identity:strengths")
	}
	if b := d.Watchouts; b != nil {
		out.Watchouts.Bullets = append(out.Watchouts.Bullets, b.Bullets...)
		out.Watchouts.Telltales = append(out.Watchouts.Telltales, b.Telltales...)
		a.use("identity:watchouts")
	}
	if b := d.Career; b != nil {
		out.Career.BestEnvironments = append(out.Career.BestEnvironments, b.BestEnvironments...)
		out.Career.RolePatterns = append(out.Career.RolePatterns, b.RolePatterns...)
		out.Career.AntiPatterns = append(out.Career.AntiPatterns, b.AntiPatterns...)
		out.Career.Collaboration = append(out.Career.Collaboration, b.Collaboration...)
		a.use("identity:career")
	}
	if b := d.Money; b != nil {
		out.Money.Style = append(out.Money.Style, b.Style...)
		out.Money.Risks = append(out.Money.Risks, b.Risks...)
		out.Money.Guardrails = append(out.Money.Guardrails, b.Guardrails...)
		a.use("identity:money")
	}
	if b := d.Relationships; b != nil {
		out.Relationships.Offers = append(out.Relationships.Offers, b.Offers...)
		out.Relationships.Needs = append(out.Relationships.Needs, b.Needs...)
		out.Relationships.Triggers = append(out.Relationships.Triggers, b.Triggers...)
		out.Relationships.Repair = append(out.Relationships.Repair, b.Repair...)
		a.use("identity:relationships")
	}
	if b := d.Parenting; b != nil {
		out.Parenting.Strengths = append(out.Parenting.Strengths, b.Strengths...)
		out.Parenting.Traps = append(out.Parenting.Traps, b.Traps...)
		out.Parenting.DoMore = append(out.Parenting.DoMore, b.DoMore...)
		out.Parenting.DoLess = append(out.Parenting.DoLess, b.DoLess...)
		a.use("identity:parenting")
	}
	if b := d.Hobbies; b != nil {
		out.Hobbies.Recharge = append(out.Hobbies.Recharge, b.Recharge...)
		out.Hobbies.Play = append(out.Hobbies.Play, b.Play...)
		out.Hobbies.WarningSigns = append(out.Hobbies.WarningSigns, b.WarningSigns...)
		a.use("identity:hobbies")
	}
	if b := d.SelfImprovement; b != nil {
		out.SelfImprovement.Leverage = append(out.SelfImprovement.Leverage, b.Leverage...)
		out.SelfImprovement.KeystoneConstraints = append(out.SelfImprovement.KeystoneConstraints, b.KeystoneConstraints...)
		out.SelfImprovement.IfThenRules = append(out.SelfImprovement.IfThenRules, b.IfThenRules...)
		out.SelfImprovement.GrowthEdges = append(out.SelfImprovement.GrowthEdges, b.GrowthEdges...)
		a.use("identity:self_improvement")
	}
	if b := d.Compatibility; b != nil {
		out.Compatibility.Complimentary = append(out.Compatibility.Complimentary, b.Complimentary...)
		out.Compatibility.Friction = append(out.Compatibility.Friction, b.Friction...)
		out.Compatibility.Conflict = append(out.Compatibility.Conflict, b.Conflict...)
		out.Compatibility.GeneralNotes = append(out.Compatibility.GeneralNotes, b.GeneralNotes...)
		a.use("identity:compatibility")
	}
}

// mergeMode appends the mode's additions as notes. A list that is present
// but empty is still recorded in the trace.
func (a *assembly) mergeMode(adds schema.ModeAdds) {
	out := &a.domains
	if adds.Strengths != nil {
		out.Strengths.Notes = append(out.Strengths.Notes, adds.Strengths...)
		a.use("mode:strengths")
	}
	if adds.Watchouts != nil {
		out.Watchouts.Notes = append(out.Watchouts.Notes, adds.Watchouts...)
		a.use("mode:watchouts")
	}
	if adds.Prescriptions != nil {
		out.SelfImprovement.Notes = append(out.SelfImprovement.Notes, adds.Prescriptions...)
		a.use("mode:prescriptions")
	}
}

// mergeSnippets appends rule snippets to their "domain.field" target.
// Snippets for a compatibility match list become matches without a reason.
// Paths naming no list are skipped.
func (a *assembly) mergeSnippets(matches []schema.RuleMatch) {
	merged := rules.MergeSnippets(matches)
	for _, path := range rules.SnippetPaths(matches) {
		if target := a.field(path); target != nil {
			*target = append(*target, merged[path]...)
		} else if list := a.matchField(path); list != nil {
			for _, s := range merged[path] {
				*list = append(*list, schema.CompatibilityMatch{Match: s})
			}
		} else {
			continue
		}
		a.use("rule:" + path)
	}
}

// matchField resolves a "compatibility.<list>" path to its match list.
func (a *assembly) matchField(path string) *[]schema.CompatibilityMatch {
	c := &a.domains.Compatibility
	switch path {
	case "compatibility.complimentary":
		return &c.Complimentary
	case "compatibility.friction":
		return &c.Friction
	case "compatibility.conflict":
		return &c.Conflict
	}
	return nil
}

// field resolves a "domain.field" path to its text list.
func (a *assembly) field(path string) *[]string {
	domain, name, ok := strings.Cut(path, ".")
	if !ok {
		return nil
	}
	d := &a.domains
	fields := map[string]map[string]*[]string{
		"strengths": {"bullets": &d.Strengths.Bullets, "notes": &d.Strengths.Notes, "evidence": &d.Strengths.Evidence},
		"watchouts": {"bullets": &d.Watchouts.Bullets, "telltales": &d.Watchouts.Telltales, "notes": &d.Watchouts.Notes},
		"career": {
			"best_environments": &d.Career.BestEnvironments, "role_patterns": &d.Career.RolePatterns,
			"anti_patterns": &d.Career.AntiPatterns, "collaboration": &d.Career.Collaboration, "notes": &d.Career.Notes,
		},
		"money": {"style": &d.Money.Style, "risks": &d.Money.Risks, "guardrails": &d.Money.Guardrails, "notes": &d.Money.Notes},
		"relationships": {
			"offers": &d.Relationships.Offers, "needs": &d.Relationships.Needs, "triggers": &d.Relationships.Triggers,
			"repair": &d.Relationships.Repair, "notes": &d.Relationships.Notes,
		},
		"parenting": {
			"strengths": &d.Parenting.Strengths, "traps": &d.Parenting.Traps, "do_more": &d.Parenting.DoMore,
			"do_less": &d.Parenting.DoLess, "notes": &d.Parenting.Notes,
		},
		"hobbies": {"recharge": &d.Hobbies.Recharge, "play": &d.Hobbies.Play, "warning_signs": &d.Hobbies.WarningSigns, "notes": &d.Hobbies.Notes},
		"self_improvement": {
			"leverage": &d.SelfImprovement.Leverage, "keystone_constraints": &d.SelfImprovement.KeystoneConstraints,
			"if_then_rules": &d.SelfImprovement.IfThenRules, "growth_edges": &d.SelfImprovement.GrowthEdges,
			"notes": &d.SelfImprovement.Notes,
		},
		"compatibility": {"general_notes": &d.Compatibility.GeneralNotes},
	}
	return fields[domain][name]
}
