package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/namecast/internal/model"
)

func TestAnalyzePronunciation_Syllables(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"Spotify", 3},
		{"Stripe", 1},
		{"Acme", 1},
		{"Zoom", 1},
		{"Globex", 2},
		{"Initech", 3},
		{"Supercalifragilistic", 8},
		{"xx", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzePronunciation(tt.name).Syllables)
		})
	}
}

func TestScorePronunciation(t *testing.T) {
	assert.Equal(t, 9.0, ScorePronunciation("Stripe"))
	assert.Equal(t, 7.0, ScorePronunciation("Spotify"))
	assert.Equal(t, 3.0, ScorePronunciation("Supercalifragilistic"))
	assert.Greater(t, ScorePronunciation("Stripe"), ScorePronunciation("Supercalifragilistic"))
}

func TestScorePronunciation_DifficultClusters(t *testing.T) {
	// Two vowel groups, one cluster.
	assert.Equal(t, 7.5, ScorePronunciation("Kitchen"))
	// Each distinct cluster costs 1.5, floored at zero.
	assert.Equal(t, 6.0, ScorePronunciation("Schatch"))
	assert.Equal(t, 0.0, ScorePronunciation("Xwzxptltchschionariumology"))
}

func TestAnalyzePronunciation_Spelling(t *testing.T) {
	assert.Equal(t, model.SpellingEasy, AnalyzePronunciation("Stripe").SpellingDifficulty)
	assert.Equal(t, model.SpellingHard, AnalyzePronunciation("Phonic").SpellingDifficulty)
	assert.Equal(t, model.SpellingHard, AnalyzePronunciation("Brightly").SpellingDifficulty)
	assert.Equal(t, model.SpellingMedium, AnalyzePronunciation("Nation").SpellingDifficulty)
	assert.Equal(t, model.SpellingMedium, AnalyzePronunciation("Excel").SpellingDifficulty)
}
