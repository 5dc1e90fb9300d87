package schema

// RankedArchetype is one entry of the descending-sorted probability vector.
type RankedArchetype struct {
	Archetype   Archetype `json:"archetype"`
	Probability float64   `json:"probability"`
}

// DerivedMetrics are concentration measures over the sorted vector.
type DerivedMetrics struct {
	S2       float64 `json:"S2"`
	S3       float64 `json:"S3"`
	R2       float64 `json:"r2"`
	G12      float64 `json:"g12"`
	EntropyN float64 `json:"entropy_n"`
}

// Confidence records how far a classification sits from the thresholds that decided it.
type Confidence struct {
	Level                ConfidenceLevel `json:"level"`
	DistanceFromBoundary float64         `json:"distance_from_boundary"`
	Notes                []string        `json:"notes"`
}

// DuetRecord describes a two-voice structure.
type DuetRecord struct {
	Mode        DuetMode  `json:"mode"`
	Anchor      Archetype `json:"anchor"`
	Lens        Archetype `json:"lens"`
	Identity    string    `json:"identity"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
}

// TrioRecord describes a three-voice structure.
type TrioRecord struct {
	Mode        TrioMode  `json:"mode"`
	Primary     Archetype `json:"primary"`
	Secondary   Archetype `json:"secondary"`
	Tertiary    Archetype `json:"tertiary"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
}

// ChoralRecord describes a CHORD or CHORUS structure.
type ChoralRecord struct {
	Mode         PolyphonicMode `json:"mode"`
	Anchor       Archetype      `json:"anchor,omitempty"`
	Contributing []Archetype    `json:"contributing"`
	Label        string         `json:"label"`
	Description  string         `json:"description"`
}

// RosterClassification is the discrete structure assigned to a probability vector.
type RosterClassification struct {
	Version      string            `json:"version"`
	Structure    Structure         `json:"structure"`
	Ranked       []RankedArchetype `json:"ranked"`
	Metrics      DerivedMetrics    `json:"metrics"`
	Duet         *DuetRecord       `json:"duet,omitempty"`
	Trio         *TrioRecord       `json:"trio,omitempty"`
	Choral       *ChoralRecord     `json:"choral,omitempty"`
	Confidence   Confidence        `json:"confidence"`
	SummaryLabel string            `json:"summary_label"`
	Description  string            `json:"description"`
	FaultReason  string            `json:"fault_reason,omitempty"`
}

// ModeName returns the mode code of whichever sub-record is set, or "SOLO"/"NONE".
func (r RosterClassification) ModeName() string {
	switch {
	case r.Duet != nil:
		return string(r.Duet.Mode)
	case r.Trio != nil:
		return string(r.Trio.Mode)
	case r.Choral != nil:
		return string(r.Choral.Mode)
	case r.Structure == Solo:
		return string(Solo)
	}
	return "NONE"
}

// Top returns the i-th ranked archetype, or empty when the vector is shorter.
func (r RosterClassification) Top(i int) Archetype {
	if i < 0 || i >= len(r.Ranked) {
		return ""
	}
	return r.Ranked[i].Archetype
}

// Epithet is a single descriptive word candidate derived from a salient score.
type Epithet struct {
	Category     EpithetCategory `json:"category"`
	SourceKey    string          `json:"source_key"`
	ZScore       float64         `json:"z_score"`
	Salience     float64         `json:"salience"`
	PositiveWord string          `json:"positive_word"`
	NegativeWord string          `json:"negative_word"`
	Direction    string          `json:"direction"`
	Word         string          `json:"word"`
}

// ClassName is the generated epithet-based name of a profile.
type ClassName struct {
	Short    string    `json:"short"`
	Standard string    `json:"standard"`
	Full     string    `json:"full"`
	Display  string    `json:"display"`
	Epithets []Epithet `json:"epithets"`
}

// ContextShift is the movement of one sentinel facet inside one context.
type ContextShift struct {
	Facet    Facet   `json:"facet"`
	FacetID  string  `json:"facet_id"`
	Baseline float64 `json:"baseline"`
	Context  float64 `json:"context"`
	Delta    float64 `json:"delta"`
}

// ContextProfile summarizes the shifts observed for one context.
type ContextProfile struct {
	Context      ContextType    `json:"context"`
	Shifts       []ContextShift `json:"shifts"`
	TopShifts    []ContextShift `json:"top_shifts"`
	AverageShift float64        `json:"average_shift"`
	Pattern      ShiftPattern   `json:"pattern"`
}

// FacetVolatility is the mean absolute shift of a facet across contexts.
type FacetVolatility struct {
	Facet      Facet   `json:"facet"`
	Volatility float64 `json:"volatility"`
}

// ContextDependence is the cross-context comparison of sentinel items.
type ContextDependence struct {
	Contexts             []ContextProfile  `json:"contexts"`
	OverallVolatility    float64           `json:"overall_volatility"`
	MostContextDependent []FacetVolatility `json:"most_context_dependent"`
	MostStable           []FacetVolatility `json:"most_stable"`
}
