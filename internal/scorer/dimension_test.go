package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/namecast/internal/model"
)

const (
	avail   = model.DomainAvailable
	taken   = model.DomainTaken
	unknown = model.DomainUnknown
)

func TestDomainScore(t *testing.T) {
	tests := []struct {
		name    string
		domains map[string]model.DomainStatus
		want    float64
	}{
		{"empty", nil, 0},
		{"all available", map[string]model.DomainStatus{".com": avail, ".io": avail, ".co": avail, ".ai": avail, ".app": avail}, 100},
		{"none available", map[string]model.DomainStatus{".com": taken, ".io": taken, ".co": taken, ".ai": taken, ".app": taken}, 0},
		{"only com", map[string]model.DomainStatus{".com": avail, ".io": taken, ".co": taken, ".ai": taken, ".app": taken}, 50},
		{"half others", map[string]model.DomainStatus{".com": taken, ".io": avail, ".co": avail, ".ai": taken, ".app": taken}, 25},
		{"com alone available", map[string]model.DomainStatus{".com": avail}, 50},
		{"no com", map[string]model.DomainStatus{".io": avail, ".ai": taken}, 25},
		{"unknown other excluded", map[string]model.DomainStatus{".com": avail, ".io": avail, ".ai": unknown}, 100},
		{"unknown other partial", map[string]model.DomainStatus{".com": taken, ".io": avail, ".co": taken, ".ai": unknown}, 25},
		{"com unknown others carry all", map[string]model.DomainStatus{".com": unknown, ".io": avail, ".co": taken}, 50},
		{"others unknown com carries all", map[string]model.DomainStatus{".com": avail, ".io": unknown, ".co": unknown}, 100},
		{"all unknown", map[string]model.DomainStatus{".com": unknown, ".io": unknown}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DomainScore(tt.domains), 1e-9)
		})
	}
}

func TestSocialScore(t *testing.T) {
	assert.Equal(t, 0.0, SocialScore(nil))

	social := map[string]model.SocialHandleResult{
		"twitter":   {Platform: "twitter", ExactAvailable: true},
		"instagram": {Platform: "instagram", BestAlternative: "acmehq"},
		"github":    {Platform: "github"},
	}
	assert.InDelta(t, 170.0/3.0, SocialScore(social), 1e-9)

	all := map[string]model.SocialHandleResult{
		"twitter": {ExactAvailable: true},
		"github":  {ExactAvailable: true, BestAlternative: "ignored"},
	}
	assert.Equal(t, 100.0, SocialScore(all))
}

func TestTrademarkScore(t *testing.T) {
	assert.Equal(t, 100.0, TrademarkScore(model.RiskLow))
	assert.Equal(t, 50.0, TrademarkScore(model.RiskMedium))
	assert.Equal(t, 10.0, TrademarkScore(model.RiskHigh))
}

func TestPronunciationScore(t *testing.T) {
	assert.Equal(t, 90.0, PronunciationScore(9))
	assert.Equal(t, 0.0, PronunciationScore(0))
	assert.Equal(t, 100.0, PronunciationScore(10))
}

func TestInternationalScore(t *testing.T) {
	assert.Equal(t, 100.0, InternationalScore(nil))
	assert.Equal(t, 80.0, InternationalScore(map[string]model.InternationalResult{
		"german":  {HasIssue: true, Meaning: "manure/dung"},
		"spanish": {},
	}))

	many := map[string]model.InternationalResult{}
	for _, lang := range []string{"a", "b", "c", "d", "e", "f"} {
		many[lang] = model.InternationalResult{HasIssue: true}
	}
	assert.Equal(t, 0.0, InternationalScore(many))
}

func TestSimilarCompaniesScore(t *testing.T) {
	match := []model.SimilarityMatch{{Name: "Stripe", Score: 0.9}}

	assert.Equal(t, 100.0, SimilarCompaniesScore(nil))
	assert.Equal(t, 100.0, SimilarCompaniesScore(&model.SimilarCompaniesResult{ConfusionRisk: model.RiskHigh}))
	assert.Equal(t, 20.0, SimilarCompaniesScore(&model.SimilarCompaniesResult{Matches: match, ConfusionRisk: model.RiskHigh}))
	assert.Equal(t, 60.0, SimilarCompaniesScore(&model.SimilarCompaniesResult{Matches: match, ConfusionRisk: model.RiskMedium}))
	assert.Equal(t, 85.0, SimilarCompaniesScore(&model.SimilarCompaniesResult{Matches: match, ConfusionRisk: model.RiskLow}))
}
