package core

import (
	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
	"gonum.org/v1/gonum/stat"
)

// groupBySubdomain averages the answered items of a module per subdomain.
// Every subdomain that has at least one item in the bank is present in the
// result; groups without an answered item fall back to the scale midpoint.
func groupBySubdomain(responses schema.Responses, questions []schema.Question) map[string]float64 {
	groups := make(map[string][]float64)
	for _, q := range questions {
		score := ItemScore(responses, q)
		if _, ok := groups[q.Subdomain]; !ok {
			groups[q.Subdomain] = nil
		}
		if score > 0 {
			groups[q.Subdomain] = append(groups[q.Subdomain], score)
		}
	}

	result := make(map[string]float64, len(groups))
	for subdomain, scores := range groups {
		result[subdomain] = meanOrMidpoint(scores)
	}
	return result
}

// meanOrMidpoint returns the mean of scores, or the scale midpoint when empty.
func meanOrMidpoint(scores []float64) float64 {
	if len(scores) == 0 {
		return scaleMidpoint
	}
	return stat.Mean(scores, nil)
}

// valueOrMidpoint reads a grouped score, treating a missing group as neutral.
func valueOrMidpoint(grouped map[string]float64, key string) float64 {
	if v, ok := grouped[key]; ok && v != 0 {
		return v
	}
	return scaleMidpoint
}

// Subdomains returns the per-subdomain means of one module.
func Subdomains(responses schema.Responses, bank contract.QuestionBank, module schema.Module) map[string]float64 {
	return groupBySubdomain(responses, bank.ByModule(module))
}

// ScoreFacets computes the 24 facet means and their z-scores.
func ScoreFacets(responses schema.Responses, bank contract.QuestionBank) schema.FacetProfile {
	grouped := Subdomains(responses, bank, schema.HEXACOModule)

	profile := schema.FacetProfile{
		Scores:  make(schema.FacetScores, len(schema.AllFacets)),
		ZScores: make(schema.FacetScores, len(schema.AllFacets)),
	}
	for _, facet := range schema.AllFacets {
		score := valueOrMidpoint(grouped, string(facet))
		profile.Scores[facet] = score
		profile.ZScores[facet] = ZScore(score)
	}
	return profile
}

// DomainsFromFacets averages the four facets of every HEXACO domain.
func DomainsFromFacets(facets schema.FacetScores) schema.DomainScores {
	perDomain := make(map[schema.Domain][]float64, len(schema.AllDomains))
	for _, facet := range schema.AllFacets {
		domain := schema.FacetDomain[facet]
		score, ok := facets[facet]
		if !ok {
			score = scaleMidpoint
		}
		perDomain[domain] = append(perDomain[domain], score)
	}

	domains := make(schema.DomainScores, len(schema.AllDomains))
	for _, d := range schema.AllDomains {
		domains[d] = meanOrMidpoint(perDomain[d])
	}
	return domains
}

// Aggregate scores the facets of a response set and rolls them up into domains.
func Aggregate(responses schema.Responses, bank contract.QuestionBank) (schema.FacetProfile, schema.DomainScores) {
	facets := ScoreFacets(responses, bank)
	return facets, DomainsFromFacets(facets.Scores)
}

// ScoreMotives computes the six motive means.
func ScoreMotives(responses schema.Responses, bank contract.QuestionBank) schema.MotiveScores {
	grouped := Subdomains(responses, bank, schema.MotiveModule)
	motives := make(schema.MotiveScores, len(schema.AllMotives))
	for _, m := range schema.AllMotives {
		motives[m] = valueOrMidpoint(grouped, string(m))
	}
	return motives
}

// ScoreAffects computes the seven affect means.
func ScoreAffects(responses schema.Responses, bank contract.QuestionBank) schema.AffectScores {
	grouped := Subdomains(responses, bank, schema.AffectModule)
	affects := make(schema.AffectScores, len(schema.AllAffects))
	for _, a := range schema.AllAffects {
		affects[a] = valueOrMidpoint(grouped, string(a))
	}
	return affects
}

// ScoreAttachment places the respondent in one of the four attachment quadrants.
// A dimension counts as high at or above the scale midpoint.
func ScoreAttachment(responses schema.Responses, bank contract.QuestionBank) schema.AttachmentProfile {
	grouped := Subdomains(responses, bank, schema.AttachmentModule)
	anxiety := valueOrMidpoint(grouped, schema.AttachmentAnxiety)
	avoidance := valueOrMidpoint(grouped, schema.AttachmentAvoidance)
	return AttachmentFromScores(anxiety, avoidance)
}

// AttachmentFromScores classifies an anxiety/avoidance pair.
func AttachmentFromScores(anxiety, avoidance float64) schema.AttachmentProfile {
	anxiousHigh := anxiety >= scaleMidpoint
	avoidantHigh := avoidance >= scaleMidpoint

	var style schema.AttachmentStyle
	var confidence float64
	switch {
	case !anxiousHigh && !avoidantHigh:
		style = schema.Secure
		confidence = min(scaleMidpoint-anxiety, scaleMidpoint-avoidance) / scaleMidpoint
	case anxiousHigh && !avoidantHigh:
		style = schema.Preoccupied
		confidence = min(anxiety-scaleMidpoint, scaleMidpoint-avoidance) / 3
	case !anxiousHigh && avoidantHigh:
		style = schema.Dismissive
		confidence = min(scaleMidpoint-anxiety, avoidance-scaleMidpoint) / 3
	default:
		style = schema.Fearful
		confidence = min(anxiety-scaleMidpoint, avoidance-scaleMidpoint) / 3
	}

	return schema.AttachmentProfile{
		Anxiety:    anxiety,
		Avoidance:  avoidance,
		Style:      style,
		Confidence: clamp01(confidence),
	}
}

// antagonismThreshold is the composite at which antagonism counts as elevated.
const antagonismThreshold = 5.0

// ScoreAntagonism computes the four antagonism subscales and their composite.
func ScoreAntagonism(responses schema.Responses, bank contract.QuestionBank) schema.AntagonismProfile {
	grouped := Subdomains(responses, bank, schema.AntagonismModule)
	profile := schema.AntagonismProfile{
		Exploitative: valueOrMidpoint(grouped, schema.Exploitative),
		Callous:      valueOrMidpoint(grouped, schema.Callous),
		Combative:    valueOrMidpoint(grouped, schema.Combative),
		ImageDriven:  valueOrMidpoint(grouped, schema.ImageDriven),
	}
	profile.Composite = (profile.Exploitative + profile.Callous + profile.Combative + profile.ImageDriven) / 4
	profile.Elevated = profile.Composite >= antagonismThreshold
	return profile
}
