package schema

import "time"

// Vocab holds display labels for structures, modes and roles.
type Vocab struct {
	Version         string            `json:"version" yaml:"version"`
	StructureLabels map[string]string `json:"structure_labels" yaml:"structure_labels"`
	ModeLabels      map[string]string `json:"mode_labels" yaml:"mode_labels"`
	Roles           map[string]string `json:"roles" yaml:"roles"`
}

// PrimaryIdentity is the display identity of a single archetype.
type PrimaryIdentity struct {
	Name      string `json:"name" yaml:"name" validate:"required"`
	Tagline   string `json:"tagline" yaml:"tagline"`
	CoreDrive string `json:"core_drive" yaml:"core_drive"`
	Icon      string `json:"icon" yaml:"icon"`
}

// DyadIdentity is the display identity of an archetype pair.
type DyadIdentity struct {
	Pair    []string `json:"pair" yaml:"pair" validate:"len=2"`
	Name    string   `json:"name" yaml:"name" validate:"required"`
	Tagline string   `json:"tagline" yaml:"tagline"`
}

// Identities groups primary and dyad identities.
type Identities struct {
	Primaries        map[string]PrimaryIdentity `json:"primaries" yaml:"primaries" validate:"dive"`
	Dyads            map[string]DyadIdentity    `json:"dyads" yaml:"dyads" validate:"dive"`
	FallbackTemplate string                     `json:"fallback_template" yaml:"fallback_template"`
}

// ModeAdds are the extra lines a mode contributes to a report.
type ModeAdds struct {
	Strengths     []string `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	Watchouts     []string `json:"watchouts,omitempty" yaml:"watchouts,omitempty"`
	Prescriptions []string `json:"prescriptions,omitempty" yaml:"prescriptions,omitempty"`
}

// ModeModifier is the content attached to a duet, trio or polyphonic mode.
type ModeModifier struct {
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Ratio       string   `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Adds        ModeAdds `json:"adds" yaml:"adds"`
}

// Modes groups mode modifiers per structure family.
type Modes struct {
	DuetModes       map[string]ModeModifier `json:"duet_modes" yaml:"duet_modes" validate:"dive"`
	TrioModes       map[string]ModeModifier `json:"trio_modes" yaml:"trio_modes" validate:"dive"`
	PolyphonicModes map[string]ModeModifier `json:"polyphonic_modes" yaml:"polyphonic_modes" validate:"dive"`
}

// CompatibilityMatch pairs another profile with the reason it fits or clashes.
type CompatibilityMatch struct {
	Match string `json:"match" yaml:"match"`
	Why   string `json:"why" yaml:"why"`
}

// StrengthsBlock is the strengths domain.
type StrengthsBlock struct {
	Bullets  []string `json:"bullets" yaml:"bullets,omitempty"`
	Notes    []string `json:"notes" yaml:"notes,omitempty"`
	Evidence []string `json:"evidence" yaml:"evidence,omitempty"`
}

// WatchoutsBlock is the watchouts domain.
type WatchoutsBlock struct {
	Bullets   []string `json:"bullets" yaml:"bullets,omitempty"`
	Telltales []string `json:"telltales" yaml:"telltales,omitempty"`
	Notes     []string `json:"notes" yaml:"notes,omitempty"`
}

// CareerBlock is the career domain.
type CareerBlock struct {
	BestEnvironments []string `json:"best_environments" yaml:"best_environments,omitempty"`
	RolePatterns     []string `json:"role_patterns" yaml:"role_patterns,omitempty"`
	AntiPatterns     []string `json:"anti_patterns" yaml:"anti_patterns,omitempty"`
	Collaboration    []string `json:"collaboration" yaml:"collaboration,omitempty"`
	Notes            []string `json:"notes" yaml:"notes,omitempty"`
}

// MoneyBlock is the money domain.
type MoneyBlock struct {
	Style      []string `json:"style" yaml:"style,omitempty"`
	Risks      []string `json:"risks" yaml:"risks,omitempty"`
	Guardrails []string `json:"guardrails" yaml:"guardrails,omitempty"`
	Notes      []string `json:"notes" yaml:"notes,omitempty"`
}

// RelationshipsBlock is the relationships domain.
type RelationshipsBlock struct {
	Offers   []string `json:"offers" yaml:"offers,omitempty"`
	Needs    []string `json:"needs" yaml:"needs,omitempty"`
	Triggers []string `json:"triggers" yaml:"triggers,omitempty"`
	Repair   []string `json:"repair" yaml:"repair,omitempty"`
	Notes    []string `json:"notes" yaml:"notes,omitempty"`
}

// ParentingBlock is the parenting domain.
type ParentingBlock struct {
	Strengths []string `json:"strengths" yaml:"strengths,omitempty"`
	Traps     []string `json:"traps" yaml:"traps,omitempty"`
	DoMore    []string `json:"do_more" yaml:"do_more,omitempty"`
	DoLess    []string `json:"do_less" yaml:"do_less,omitempty"`
	Notes     []string `json:"notes" yaml:"notes,omitempty"`
}

// HobbiesBlock is the hobbies domain.
type HobbiesBlock struct {
	Recharge     []string `json:"recharge" yaml:"recharge,omitempty"`
	Play         []string `json:"play" yaml:"play,omitempty"`
	WarningSigns []string `json:"warning_signs" yaml:"warning_signs,omitempty"`
	Notes        []string `json:"notes" yaml:"notes,omitempty"`
}

// SelfImprovementBlock is the self-improvement domain.
type SelfImprovementBlock struct {
	Leverage            []string `json:"leverage" yaml:"leverage,omitempty"`
	KeystoneConstraints []string `json:"keystone_constraints" yaml:"keystone_constraints,omitempty"`
	IfThenRules         []string `json:"if_then_rules" yaml:"if_then_rules,omitempty"`
	GrowthEdges         []string `json:"growth_edges" yaml:"growth_edges,omitempty"`
	Notes               []string `json:"notes" yaml:"notes,omitempty"`
}

// CompatibilityBlock is the compatibility domain.
type CompatibilityBlock struct {
	Complimentary []CompatibilityMatch `json:"complimentary" yaml:"complimentary,omitempty"`
	Friction      []CompatibilityMatch `json:"friction" yaml:"friction,omitempty"`
	Conflict      []CompatibilityMatch `json:"conflict" yaml:"conflict,omitempty"`
	GeneralNotes  []string             `json:"general_notes" yaml:"general_notes,omitempty"`
}

// ValidityBlock carries response-quality caveats.
type ValidityBlock struct {
	Notes []string `json:"notes" yaml:"notes,omitempty"`
}

// DomainBlocks is authored content. Every block is optional.
type DomainBlocks struct {
	Strengths       *StrengthsBlock       `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	Watchouts       *WatchoutsBlock       `json:"watchouts,omitempty" yaml:"watchouts,omitempty"`
	Career          *CareerBlock          `json:"career,omitempty" yaml:"career,omitempty"`
	Money           *MoneyBlock           `json:"money,omitempty" yaml:"money,omitempty"`
	Relationships   *RelationshipsBlock   `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Parenting       *ParentingBlock       `json:"parenting,omitempty" yaml:"parenting,omitempty"`
	Hobbies         *HobbiesBlock         `json:"hobbies,omitempty" yaml:"hobbies,omitempty"`
	SelfImprovement *SelfImprovementBlock `json:"self_improvement,omitempty" yaml:"self_improvement,omitempty"`
	Compatibility   *CompatibilityBlock   `json:"compatibility,omitempty" yaml:"compatibility,omitempty"`
}

// IdentityContent is the authored narrative for a primary, dyad or triad.
type IdentityContent struct {
	Tagline string       `json:"tagline" yaml:"tagline"`
	Domains DomainBlocks `json:"domains" yaml:"domains"`
}

// Rule is a declarative condition with the flags and snippets it contributes.
type Rule struct {
	ID          string              `json:"id" yaml:"id" validate:"required"`
	When        string              `json:"when" yaml:"when" validate:"required"`
	AddFlags    []string            `json:"add_flags,omitempty" yaml:"add_flags,omitempty"`
	AddSnippets map[string][]string `json:"add_snippets,omitempty" yaml:"add_snippets,omitempty"`
}

// RuleSet is a versioned list of rules sharing named thresholds.
type RuleSet struct {
	Version    string             `json:"version" yaml:"version"`
	Thresholds map[string]float64 `json:"thresholds" yaml:"thresholds"`
	Rules      []Rule             `json:"rules" yaml:"rules" validate:"dive"`
}

// RuleMatch is the contribution of one matched rule.
type RuleMatch struct {
	RuleID   string              `json:"rule_id"`
	Flags    []string            `json:"flags"`
	Snippets map[string][]string `json:"snippets"`
}

// ContentBundle is everything the report assembler reads.
type ContentBundle struct {
	Version    string                     `json:"version" yaml:"version"`
	Vocab      Vocab                      `json:"vocab" yaml:"vocab"`
	Identities Identities                 `json:"identities" yaml:"identities"`
	Modes      Modes                      `json:"modes" yaml:"modes"`
	Dyads      map[string]IdentityContent `json:"dyads" yaml:"dyads"`
	Primaries  map[string]IdentityContent `json:"primaries" yaml:"primaries"`
	Triads     map[string]IdentityContent `json:"triads" yaml:"triads"`
	Rules      RuleSet                    `json:"rules" yaml:"rules"`
}

// ReportRole names the archetype filling a role.
type ReportRole struct {
	Name      string    `json:"name"`
	Archetype Archetype `json:"archetype"`
}

// ReportRoles are the voices of a report.
type ReportRoles struct {
	Anchor   *ReportRole  `json:"anchor,omitempty"`
	Keystone *ReportRole  `json:"keystone,omitempty"`
	Lens     *ReportRole  `json:"lens,omitempty"`
	Shadow   *ReportRole  `json:"shadow,omitempty"`
	Voices   []ReportRole `json:"voices,omitempty"`
}

// Empty reports whether no role is set.
func (r ReportRoles) Empty() bool {
	return r.Anchor == nil && r.Keystone == nil && r.Lens == nil && r.Shadow == nil && len(r.Voices) == 0
}

// ReportDomains are fully populated blocks after merging.
type ReportDomains struct {
	Strengths       StrengthsBlock       `json:"strengths"`
	Watchouts       WatchoutsBlock       `json:"watchouts"`
	Career          CareerBlock          `json:"career"`
	Money           MoneyBlock           `json:"money"`
	Relationships   RelationshipsBlock   `json:"relationships"`
	Parenting       ParentingBlock       `json:"parenting"`
	Hobbies         HobbiesBlock         `json:"hobbies"`
	SelfImprovement SelfImprovementBlock `json:"self_improvement"`
	Compatibility   CompatibilityBlock   `json:"compatibility"`
	Validity        *ValidityBlock       `json:"validity,omitempty"`
}

// ReportTrace records which content sources shaped a report.
type ReportTrace struct {
	Flags          []string `json:"flags"`
	MatchedRules   []string `json:"matched_rules"`
	SelectedBlocks []string `json:"selected_blocks"`
}

// Report is the assembled narrative for one profile.
type Report struct {
	Version         string        `json:"version"`
	GeneratedAt     time.Time     `json:"generated_at"`
	Respondent      string        `json:"respondent,omitempty"`
	Structure       Structure     `json:"structure"`
	StructureLabel  string        `json:"structure_label"`
	IdentityName    string        `json:"identity_name"`
	IdentityTagline string        `json:"identity_tagline"`
	ModeName        string        `json:"mode_name"`
	ModeRatio       string        `json:"mode_ratio,omitempty"`
	SummaryLabel    string        `json:"summary_label"`
	Roles           ReportRoles   `json:"roles"`
	Domains         ReportDomains `json:"domains"`
	Trace           ReportTrace   `json:"trace"`
}
