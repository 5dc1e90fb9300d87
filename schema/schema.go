// Package schema has models, vocabularies and global tables for all parts of hpma.
package schema

import "time"

// Responses maps a question id to a 1-7 rating.
type Responses map[int]int

// ResponseSet is one respondent's answers: the baseline block plus optional context re-asks.
type ResponseSet struct {
	Respondent string                    `json:"respondent,omitempty" yaml:"respondent,omitempty"`
	Baseline   Responses                 `json:"baseline" yaml:"baseline"`
	Contexts   map[ContextType]Responses `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	Source     string                    `json:"-" yaml:"-"` // file the set was loaded from
}

// HasContexts reports whether any context block carries at least one answer.
func (rs ResponseSet) HasContexts() bool {
	for _, r := range rs.Contexts {
		if len(r) > 0 {
			return true
		}
	}
	return false
}

// Question describes a single questionnaire item.
type Question struct {
	ID        int         `json:"id" yaml:"id" validate:"required,min=1"`
	FacetID   string      `json:"facet_id" yaml:"facet_id" validate:"required"`
	Module    Module      `json:"module" yaml:"module" validate:"required"`
	Domain    Domain      `json:"domain,omitempty" yaml:"domain,omitempty"`
	Subdomain string      `json:"subdomain" yaml:"subdomain" validate:"required"`
	Reversed  bool        `json:"reversed" yaml:"reversed"`
	Sentinel  bool        `json:"sentinel,omitempty" yaml:"sentinel,omitempty"`
	Context   ContextType `json:"context,omitempty" yaml:"context,omitempty"`
	Text      string      `json:"text" yaml:"text"`
}

// FacetScores maps each HEXACO facet to a score.
type FacetScores map[Facet]float64

// DomainScores maps each HEXACO domain to a score.
type DomainScores map[Domain]float64

// MotiveScores maps each motive to a score.
type MotiveScores map[Motive]float64

// AffectScores maps each affect to a score.
type AffectScores map[Affect]float64

// ArchetypeProbabilities maps each archetype to its softmax probability.
type ArchetypeProbabilities map[Archetype]float64

// FacetProfile holds raw facet means and their z-scores.
type FacetProfile struct {
	Scores  FacetScores `json:"scores"`
	ZScores FacetScores `json:"z_scores"`
}

// AttachmentProfile places the respondent on the anxiety/avoidance plane.
type AttachmentProfile struct {
	Anxiety    float64         `json:"anxiety"`
	Avoidance  float64         `json:"avoidance"`
	Style      AttachmentStyle `json:"style"`
	Confidence float64         `json:"confidence"`
}

// AntagonismProfile holds the four antagonism subscales and their composite.
type AntagonismProfile struct {
	Exploitative float64 `json:"exploitative"`
	Callous      float64 `json:"callous"`
	Combative    float64 `json:"combative"`
	ImageDriven  float64 `json:"image_driven"`
	Composite    float64 `json:"composite"`
	Elevated     bool    `json:"elevated"`
}

// Axis returns the subscale score for an antagonism axis name.
func (a AntagonismProfile) Axis(name string) float64 {
	switch name {
	case Exploitative:
		return a.Exploitative
	case Callous:
		return a.Callous
	case Combative:
		return a.Combative
	case ImageDriven:
		return a.ImageDriven
	}
	return 0
}

// ArchetypeResult is the output of archetype inference.
type ArchetypeResult struct {
	Probabilities ArchetypeProbabilities `json:"probabilities"`
	Uncertainty   float64                `json:"uncertainty"`
}

// ValidityFlags are the advisory response-quality checks.
type ValidityFlags struct {
	Idealized   bool `json:"idealized"`
	Random      bool `json:"random"`
	Inattentive bool `json:"inattentive"`
}

// Any reports whether at least one flag is raised.
func (v ValidityFlags) Any() bool {
	return v.Idealized || v.Random || v.Inattentive
}

// Faulting reports whether the flags are severe enough to fault a classification.
func (v ValidityFlags) Faulting() bool {
	return v.Random || v.Inattentive
}

// Profile is the full result of scoring one respondent.
type Profile struct {
	Respondent        string                 `json:"respondent,omitempty"`
	Facets            FacetProfile           `json:"facets"`
	HEXACO            DomainScores           `json:"hexaco"`
	Motives           MotiveScores           `json:"motives"`
	Affects           AffectScores           `json:"affects"`
	Attachment        AttachmentProfile      `json:"attachment"`
	Antagonism        AntagonismProfile      `json:"antagonism"`
	Archetypes        ArchetypeProbabilities `json:"archetypes"`
	Uncertainty       float64                `json:"uncertainty"`
	Roster            RosterClassification   `json:"roster"`
	ClassName         ClassName              `json:"class_name"`
	Validity          ValidityFlags          `json:"validity"`
	ValidityMessages  []string               `json:"validity_messages,omitempty"`
	ContextDependence *ContextDependence     `json:"context_dependence,omitempty"`
	Answered          int                    `json:"answered"`
	ComputedAt        time.Time              `json:"computed_at"`
}

// BatchResult pairs a scored profile with the file it came from.
type BatchResult struct {
	Source  string   `json:"source"`
	Profile *Profile `json:"profile,omitempty"`
	Error   string   `json:"error,omitempty"`
}
