package core

import (
	"time"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
)

// ProfileOptions tune how a profile is classified.
type ProfileOptions struct {
	// FaultOnInvalid turns random or inattentive responding into a FAULTED roster.
	FaultOnInvalid bool
}

// ComputeProfile runs the full pipeline for one response set. It never fails:
// unanswered and unknown items fall back to neutral scores.
func ComputeProfile(rs schema.ResponseSet, bank contract.QuestionBank, opts ProfileOptions) *schema.Profile {
	baseline := rs.Baseline

	facets, hexaco := Aggregate(baseline, bank)
	motives := ScoreMotives(baseline, bank)
	affects := ScoreAffects(baseline, bank)
	attachment := ScoreAttachment(baseline, bank)
	antagonism := ScoreAntagonism(baseline, bank)

	archetypes := InferArchetypes(hexaco, motives, affects)
	roster := ClassifyRoster(archetypes.Probabilities)

	validity := CheckValidity(baseline)
	if opts.FaultOnInvalid && validity.Faulting() {
		roster = FaultRoster(roster, faultReason(validity))
	}

	p := &schema.Profile{
		Respondent:       rs.Respondent,
		Facets:           facets,
		HEXACO:           hexaco,
		Motives:          motives,
		Affects:          affects,
		Attachment:       attachment,
		Antagonism:       antagonism,
		Archetypes:       archetypes.Probabilities,
		Uncertainty:      archetypes.Uncertainty,
		Roster:           roster,
		Validity:         validity,
		ValidityMessages: ValidityMessages(validity),
		Answered:         countAnswered(baseline, bank),
		ComputedAt:       time.Now().UTC(),
	}
	p.ClassName = ComputeClassName(EpithetInputs{
		Facets:     facets,
		Motives:    motives,
		Affects:    affects,
		Attachment: attachment,
		Antagonism: antagonism,
	}, roster)

	if rs.HasContexts() {
		p.ContextDependence = ComputeContextDependence(rs, bank)
	}
	return p
}

// countAnswered counts the baseline answers that resolve to a bank question.
func countAnswered(responses schema.Responses, bank contract.QuestionBank) int {
	n := 0
	for id := range responses {
		if q, ok := bank.Lookup(id); ok && q.Module != schema.ContextModule {
			n++
		}
	}
	return n
}
