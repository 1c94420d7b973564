package scorer

import (
	"github.com/sells-group/namecast/internal/model"
)

const comTLD = ".com"

// DomainScore scores TLD availability. .com is worth 50 points and the
// remaining TLDs split the other 50 by the fraction available. Unknown
// lookups are excluded: when one side is entirely unknown the other side
// carries the full 100.
func DomainScore(domains map[string]model.DomainStatus) float64 {
	if len(domains) == 0 {
		return 0
	}

	com, hasCom := domains[comTLD]
	comKnown := hasCom && com != model.DomainUnknown

	var others, otherKnown, otherAvail int
	for tld, status := range domains {
		if tld == comTLD {
			continue
		}
		others++
		switch status {
		case model.DomainAvailable:
			otherKnown++
			otherAvail++
		case model.DomainTaken:
			otherKnown++
		}
	}

	var otherFrac float64
	if otherKnown > 0 {
		otherFrac = float64(otherAvail) / float64(otherKnown)
	}
	comPoints := 0.0
	if com == model.DomainAvailable {
		comPoints = 1
	}

	switch {
	case comKnown && otherKnown > 0:
		return 50*comPoints + 50*otherFrac
	case comKnown && others > 0:
		return 100 * comPoints
	case comKnown:
		return 50 * comPoints
	case hasCom && otherKnown > 0:
		return 100 * otherFrac
	case otherKnown > 0:
		return 50 * otherFrac
	default:
		return 0
	}
}

// SocialScore averages per-platform scores: 100 for the exact handle, 70
// when only an alternative is free, 0 otherwise.
func SocialScore(social map[string]model.SocialHandleResult) float64 {
	if len(social) == 0 {
		return 0
	}

	var total float64
	for _, r := range social {
		switch {
		case r.ExactAvailable:
			total += 100
		case r.BestAlternative != "":
			total += 70
		}
	}
	return total / float64(len(social))
}

// TrademarkScore maps trademark risk to a score.
func TrademarkScore(risk model.RiskLevel) float64 {
	switch risk {
	case model.RiskLow:
		return 100
	case model.RiskMedium:
		return 50
	default:
		return 10
	}
}

// PronunciationScore scales a 0-10 pronunciation score to 0-100.
func PronunciationScore(raw float64) float64 {
	return clamp(raw*10, 0, 100)
}

// InternationalScore deducts 20 points per language with an issue.
func InternationalScore(international map[string]model.InternationalResult) float64 {
	if len(international) == 0 {
		return 100
	}

	issues := 0
	for _, r := range international {
		if r.HasIssue {
			issues++
		}
	}
	return max(0, 100-20*float64(issues))
}

// SimilarCompaniesScore penalizes confusable existing companies by risk.
func SimilarCompaniesScore(similar *model.SimilarCompaniesResult) float64 {
	if similar == nil || len(similar.Matches) == 0 {
		return 100
	}

	switch similar.ConfusionRisk {
	case model.RiskHigh:
		return 20
	case model.RiskMedium:
		return 60
	default:
		return 85
	}
}
