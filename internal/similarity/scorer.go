package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/sells-group/namecast/internal/model"
)

// Component weights for Similarity.
const (
	editWeight     = 0.4
	phoneticWeight = 0.4
	prefixWeight   = 0.2

	phoneticPrefixCredit = 0.7
)

// Similarity combines spelling, sound and shared-prefix closeness of two
// names into a score in [0,1]. Callers lower-case both inputs.
func Similarity(a, b string) float64 {
	score := editWeight*editSimilarity(a, b) +
		phoneticWeight*phoneticSimilarity(a, b) +
		prefixWeight*SharedPrefixRatio(a, b)
	return min(1, max(0, score))
}

// Reason names the first rule that explains why a and b are similar.
// Callers lower-case both inputs.
func Reason(a, b string) model.ReasonCode {
	if a == b {
		return model.ReasonIdentical
	}
	if strings.HasPrefix(a, b) || strings.HasPrefix(b, a) {
		return model.ReasonSharesPrefix
	}
	if PhoneticKey(a) == PhoneticKey(b) {
		return model.ReasonSoundsSimilar
	}
	switch d := EditDistance(a, b); {
	case d <= 2:
		return model.ReasonVeryCloseSpelling
	case d <= 4:
		return model.ReasonSimilarSpelling
	default:
		return model.ReasonPartiallySimilar
	}
}

func editSimilarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(EditDistance(a, b))/float64(maxLen)
}

func phoneticSimilarity(a, b string) float64 {
	ka, kb := PhoneticKey(a), PhoneticKey(b)
	switch {
	case ka == kb:
		return 1
	case strings.HasPrefix(ka, kb) || strings.HasPrefix(kb, ka):
		return phoneticPrefixCredit
	default:
		return 0
	}
}
