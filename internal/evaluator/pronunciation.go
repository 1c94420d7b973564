package evaluator

import (
	"strings"

	"github.com/sells-group/namecast/internal/model"
)

var (
	difficultClusters = []string{"xw", "zx", "ptl", "tch", "sch"}
	unusualSpellings  = []string{"ph", "gh", "ough", "tion", "sion", "xc", "cq"}
	hardSpellings     = []string{"ph", "gh", "ough"}
)

// clusterPenalty is subtracted once for each distinct difficult cluster present.
const clusterPenalty = 1.5

// ScorePronunciation returns how easy name is to say, from 0 to 10.
func ScorePronunciation(name string) float64 {
	return AnalyzePronunciation(name).Score
}

// AnalyzePronunciation estimates syllables, pronunciation ease and spelling
// difficulty for name.
func AnalyzePronunciation(name string) model.PronunciationResult {
	lower := strings.ToLower(name)
	syllables := countSyllables(lower)

	var score float64
	switch {
	case syllables <= 2:
		score = 9.0
	case syllables <= 3:
		score = 7.0
	case syllables <= 4:
		score = 5.0
	default:
		score = 3.0
	}

	for _, c := range difficultClusters {
		if strings.Contains(lower, c) {
			score -= clusterPenalty
		}
	}

	return model.PronunciationResult{
		Score:              min(10, max(0, score)),
		Syllables:          syllables,
		SpellingDifficulty: spellingDifficulty(lower),
	}
}

// countSyllables counts vowel groups, treating y as a vowel and a trailing
// e as silent when more than one group exists.
func countSyllables(word string) int {
	count := 0
	prevVowel := false
	for _, r := range word {
		v := strings.ContainsRune("aeiouy", r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	return max(1, count)
}

func spellingDifficulty(lower string) string {
	if !containsAny(lower, unusualSpellings) {
		return model.SpellingEasy
	}
	if containsAny(lower, hardSpellings) {
		return model.SpellingHard
	}
	return model.SpellingMedium
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
