package schema

// Custom string types for type safety.
type (
	// Domain represents one of the six HEXACO trait domains.
	Domain string

	// Facet represents one of the 24 HEXACO facets.
	Facet string

	// Motive represents one of the six motivational drives.
	Motive string

	// Affect represents one of the seven primary affect systems.
	Affect string

	// Archetype represents one of the six behavioral prototypes.
	Archetype string

	// Module groups questions by what they measure.
	Module string

	// ContextType names a situational re-ask of the sentinel items.
	ContextType string

	// Structure is the discrete roster classification of a probability vector.
	Structure string

	// DuetMode is the ratio pattern of a two-voice structure.
	DuetMode string

	// TrioMode is the ratio pattern of a three-voice structure.
	TrioMode string

	// PolyphonicMode is the pattern of a multi-voice structure.
	PolyphonicMode string

	// ConfidenceLevel grades how far a classification sits from its thresholds.
	ConfidenceLevel string

	// AttachmentStyle is a quadrant of the anxiety/avoidance plane.
	AttachmentStyle string

	// ShiftPattern summarizes how much scores move inside one context.
	ShiftPattern string

	// EpithetCategory tags where an epithet came from.
	EpithetCategory string

	// OutputMode represents the format of the output.
	OutputMode string

	// ReportFormat represents the rendering of a narrative report.
	ReportFormat string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// Versions stamped on generated artifacts.
const (
	RosterVersion = "HPMA-Vocabulary-1.0"
	ReportVersion = "HPMA-Report-1.0"
)

// HEXACO domains.
const (
	HonestyHumility   Domain = "H"
	Emotionality      Domain = "E"
	Extraversion      Domain = "X"
	Agreeableness     Domain = "A"
	Conscientiousness Domain = "C"
	Openness          Domain = "O"
)

// HEXACO facets, four per domain.
const (
	Sincerity      Facet = "sincerity"
	Fairness       Facet = "fairness"
	GreedAvoidance Facet = "greed_avoidance"
	Modesty        Facet = "modesty"

	Fearfulness    Facet = "fearfulness"
	Anxiety        Facet = "anxiety"
	Dependence     Facet = "dependence"
	Sentimentality Facet = "sentimentality"

	SocialBoldness Facet = "social_boldness"
	Sociability    Facet = "sociability"
	Liveliness     Facet = "liveliness"
	SelfEsteem     Facet = "self_esteem"

	Forgivingness Facet = "forgivingness"
	Gentleness    Facet = "gentleness"
	Flexibility   Facet = "flexibility"
	Patience      Facet = "patience"

	Organization  Facet = "organization"
	Diligence     Facet = "diligence"
	Perfectionism Facet = "perfectionism"
	Prudence      Facet = "prudence"

	AestheticAppreciation Facet = "aesthetic_appreciation"
	Inquisitiveness       Facet = "inquisitiveness"
	Creativity            Facet = "creativity"
	Unconventionality     Facet = "unconventionality"
)

// Motives.
const (
	Security  Motive = "security"
	Belonging Motive = "belonging"
	Status    Motive = "status"
	Mastery   Motive = "mastery"
	Autonomy  Motive = "autonomy"
	Purpose   Motive = "purpose"
)

// Affects.
const (
	Seeking Affect = "seeking"
	Fear    Affect = "fear"
	Anger   Affect = "anger"
	Care    Affect = "care"
	Grief   Affect = "grief"
	Play    Affect = "play"
	Desire  Affect = "desire"
)

// Archetypes.
const (
	Explorer    Archetype = "explorer"
	Organizer   Archetype = "organizer"
	Connector   Archetype = "connector"
	Protector   Archetype = "protector"
	Performer   Archetype = "performer"
	Philosopher Archetype = "philosopher"
)

// Question modules.
const (
	HEXACOModule     Module = "hexaco"
	MotiveModule     Module = "motive"
	AffectModule     Module = "affect"
	ValidityModule   Module = "validity"
	AttachmentModule Module = "attachment"
	AntagonismModule Module = "antagonism"
	ContextModule    Module = "context"
)

// Attachment and antagonism subdomains (no facet layer).
const (
	AttachmentAnxiety   = "anxiety"
	AttachmentAvoidance = "avoidance"

	Exploitative = "exploitative"
	Callous      = "callous"
	Combative    = "combative"
	ImageDriven  = "image_driven"
)

// Context types.
const (
	BaselineContext ContextType = "BASELINE"
	WorkContext     ContextType = "WORK"
	StressContext   ContextType = "STRESS"
	IntimacyContext ContextType = "INTIMACY"
	PublicContext   ContextType = "PUBLIC"
)

// Roster structures.
const (
	Solo    Structure = "SOLO"
	Duet    Structure = "DUET"
	Trio    Structure = "TRIO"
	Chord   Structure = "CHORD"
	Chorus  Structure = "CHORUS"
	Mist    Structure = "MIST"
	Faulted Structure = "FAULTED"
)

// Duet modes ordered by anchor share.
const (
	TwinHelix       DuetMode = "TWIN_HELIX"
	LeaningHelix    DuetMode = "LEANING_HELIX"
	KeystoneLens    DuetMode = "KEYSTONE_LENS"
	SignatureAccent DuetMode = "SIGNATURE_ACCENT"
	Pureline        DuetMode = "PURELINE"
)

// Trio modes.
const (
	TriHelix      TrioMode = "TRI_HELIX"
	KeystonePrism TrioMode = "KEYSTONE_PRISM"
	KeystoneOrbit TrioMode = "KEYSTONE_ORBIT"
	TriadStack    TrioMode = "TRIAD_STACK"
)

// Polyphonic modes.
const (
	ChordTop4          PolyphonicMode = "CHORD_TOP4"
	ChordTopHeavy      PolyphonicMode = "CHORD_TOP_HEAVY"
	ChorusDistributed  PolyphonicMode = "CHORUS_DISTRIBUTED"
	ChorusContextSplit PolyphonicMode = "CHORUS_CONTEXT_SPLIT" // reserved, never emitted
)

// Confidence levels.
const (
	HighConfidence   ConfidenceLevel = "HIGH"
	MediumConfidence ConfidenceLevel = "MEDIUM"
	LowConfidence    ConfidenceLevel = "LOW"
)

// Attachment styles (Bartholomew quadrants).
const (
	Secure      AttachmentStyle = "SECURE"
	Preoccupied AttachmentStyle = "PREOCCUPIED"
	Dismissive  AttachmentStyle = "DISMISSIVE"
	Fearful     AttachmentStyle = "FEARFUL"
)

// Context shift patterns.
const (
	StableShift   ShiftPattern = "STABLE"
	ModerateShift ShiftPattern = "MODERATE"
	VolatileShift ShiftPattern = "VOLATILE"
)

// Epithet categories.
const (
	FacetEpithet      EpithetCategory = "trait_facet"
	MotiveEpithet     EpithetCategory = "motive"
	AffectEpithet     EpithetCategory = "affect"
	AttachmentEpithet EpithetCategory = "attachment"
	AntagonismEpithet EpithetCategory = "antagonism"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All report formats supported.
const (
	MarkdownReport ReportFormat = "markdown" // default
	HTMLReport     ReportFormat = "html"
	JSONReport     ReportFormat = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllDomains lists the HEXACO domains in canonical order.
var AllDomains = []Domain{HonestyHumility, Emotionality, Extraversion, Agreeableness, Conscientiousness, Openness}

// AllFacets lists the facets in question-bank order.
var AllFacets = []Facet{
	Sincerity, Fairness, GreedAvoidance, Modesty,
	Fearfulness, Anxiety, Dependence, Sentimentality,
	SocialBoldness, Sociability, Liveliness, SelfEsteem,
	Forgivingness, Gentleness, Flexibility, Patience,
	Organization, Diligence, Perfectionism, Prudence,
	AestheticAppreciation, Inquisitiveness, Creativity, Unconventionality,
}

// FacetDomain maps each facet to its parent domain.
var FacetDomain = map[Facet]Domain{
	Sincerity: HonestyHumility, Fairness: HonestyHumility, GreedAvoidance: HonestyHumility, Modesty: HonestyHumility,
	Fearfulness: Emotionality, Anxiety: Emotionality, Dependence: Emotionality, Sentimentality: Emotionality,
	SocialBoldness: Extraversion, Sociability: Extraversion, Liveliness: Extraversion, SelfEsteem: Extraversion,
	Forgivingness: Agreeableness, Gentleness: Agreeableness, Flexibility: Agreeableness, Patience: Agreeableness,
	Organization: Conscientiousness, Diligence: Conscientiousness, Perfectionism: Conscientiousness, Prudence: Conscientiousness,
	AestheticAppreciation: Openness, Inquisitiveness: Openness, Creativity: Openness, Unconventionality: Openness,
}

// AllMotives lists the motives in canonical order.
var AllMotives = []Motive{Security, Belonging, Status, Mastery, Autonomy, Purpose}

// AllAffects lists the affects in canonical order.
var AllAffects = []Affect{Seeking, Fear, Anger, Care, Grief, Play, Desire}

// AllArchetypes lists the archetypes in canonical order.
var AllArchetypes = []Archetype{Explorer, Organizer, Connector, Protector, Performer, Philosopher}

// AntagonismAxes lists the antagonism subscales in canonical order.
var AntagonismAxes = []string{Exploitative, Callous, Combative, ImageDriven}

// AllContexts lists the non-baseline contexts in presentation order.
var AllContexts = []ContextType{WorkContext, StressContext, IntimacyContext, PublicContext}

// ContextStart is the first question id of each context block.
var ContextStart = map[ContextType]int{
	WorkContext:     401,
	StressContext:   425,
	IntimacyContext: 449,
	PublicContext:   473,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidReportFormats lists all valid report formats.
var ValidReportFormats = map[ReportFormat]struct{}{
	MarkdownReport: {},
	HTMLReport:     {},
	JSONReport:     {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidContexts lists the context names accepted in response files.
var ValidContexts = map[ContextType]struct{}{
	WorkContext:     {},
	StressContext:   {},
	IntimacyContext: {},
	PublicContext:   {},
}
