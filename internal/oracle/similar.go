package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/sells-group/namecast/internal/model"
	"github.com/sells-group/namecast/pkg/anthropic"
)

// SimilarCompanies proposes real companies whose names could be confused
// with a candidate. It implements similarity.Oracle.
type SimilarCompanies struct {
	caller
}

// NewSimilarCompanies creates a similar-company oracle.
func NewSimilarCompanies(client anthropic.Client, cfg Config) *SimilarCompanies {
	return &SimilarCompanies{caller: newCaller(client, cfg)}
}

type similarReply struct {
	Matches []struct {
		Name     string  `json:"name"`
		Industry string  `json:"industry"`
		Score    float64 `json:"similarity_score"`
		Reason   string  `json:"reason"`
	} `json:"matches"`
	ConfusionRisk string `json:"confusion_risk"`
}

// Propose asks the model for confusable companies. Scores are clamped to
// [0,1] and unnamed entries dropped.
func (o *SimilarCompanies) Propose(ctx context.Context, name string) (*model.SimilarCompaniesResult, error) {
	req := o.request(nil, similarPrompt(name), 1000)
	text, err := o.complete(ctx, "similar_companies", req, direct)
	if err != nil {
		return nil, err
	}

	var reply similarReply
	if err := decode(text, similarSchema, &reply); err != nil {
		return nil, err
	}

	res := &model.SimilarCompaniesResult{
		Matches:       make([]model.SimilarityMatch, 0, len(reply.Matches)),
		ConfusionRisk: model.ParseRiskLevel(reply.ConfusionRisk),
	}
	for _, m := range reply.Matches {
		n := strings.TrimSpace(m.Name)
		if n == "" {
			continue
		}
		res.Matches = append(res.Matches, model.SimilarityMatch{
			Name:     n,
			Score:    clamp(m.Score, 0, 1),
			Category: m.Industry,
			Reason:   m.Reason,
		})
	}
	return res, nil
}

func similarPrompt(name string) string {
	return fmt.Sprintf(`Find existing companies with names that could be confused with %q.

Consider every kind of similarity:
1. Phonetic: names that sound alike when spoken ("Lyft" and "Lift").
2. Visual: names that look alike when written ("Stripe" and "Stripey").
3. Semantic: names with similar meanings ("CloudBase" and "Firebase").
4. Morphological: shared prefixes, suffixes or word parts ("Datadog" and "Databricks").
5. Industry: names that suggest the same product category ("ChatBot AI" and "ChatGPT").

Only include real companies someone might confuse with %q.

Respond in JSON:
{
  "matches": [
    {"name": "CompanyName", "industry": "their industry", "similarity_score": 0.7, "reason": "phonetically similar"}
  ],
  "confusion_risk": "low|medium|high"
}

Use "high" when the name is very close to a well-known company or has several close matches,
"medium" when some confusion is possible and "low" otherwise.
Only include companies with similarity_score above 0.4. Respond ONLY with valid JSON.`, name, name)
}
