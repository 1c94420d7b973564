// Package scorer maps each evaluation dimension to a 0-100 sub-score and
// combines the sub-scores into one weighted overall score.
package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/namecast/internal/config"
)

// DefaultWeights returns the reference dimension weights.
// Weights sum to 1.
func DefaultWeights() config.WeightsConfig {
	return config.WeightsConfig{
		Domain:           0.20,
		Social:           0.10,
		Trademark:        0.20,
		Pronunciation:    0.15,
		International:    0.15,
		SimilarCompanies: 0.20,
	}
}

// WeightSum returns the sum of all dimension weights.
func WeightSum(w config.WeightsConfig) float64 {
	return w.Domain + w.Social + w.Trademark +
		w.Pronunciation + w.International + w.SimilarCompanies
}

// ValidateWeights checks that a WeightsConfig is internally consistent.
func ValidateWeights(w config.WeightsConfig) error {
	var errs []string

	weights := []struct {
		name  string
		value float64
	}{
		{"domain", w.Domain},
		{"social", w.Social},
		{"trademark", w.Trademark},
		{"pronunciation", w.Pronunciation},
		{"international", w.International},
		{"similar_companies", w.SimilarCompanies},
	}
	for _, x := range weights {
		if x.value < 0 {
			errs = append(errs, fmt.Sprintf("weights.%s must be >= 0", x.name))
		}
	}

	// Allow tolerance for floating-point.
	if sum := WeightSum(w); math.Abs(sum-1) > 0.001 {
		errs = append(errs, fmt.Sprintf("weights should sum to 1, got %.3f", sum))
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: weights validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// SubScores are the six weighted dimension scores, each in [0,100].
type SubScores struct {
	Domain           float64
	Social           float64
	Trademark        float64
	Pronunciation    float64
	International    float64
	SimilarCompanies float64
}

// Overall combines sub-scores with weights, clamped to [0,100].
func Overall(s SubScores, w config.WeightsConfig) float64 {
	total := s.Domain*w.Domain +
		s.Social*w.Social +
		s.Trademark*w.Trademark +
		s.Pronunciation*w.Pronunciation +
		s.International*w.International +
		s.SimilarCompanies*w.SimilarCompanies
	return clamp(total, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
