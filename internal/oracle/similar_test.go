package oracle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/namecast/internal/model"
	"github.com/sells-group/namecast/pkg/anthropic"
	anthropicmocks "github.com/sells-group/namecast/pkg/anthropic/mocks"
)

func TestSimilarCompanies_Propose(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return req.Model == "claude-haiku-4-5-20251001" &&
			len(req.Messages) == 1 &&
			strings.Contains(req.Messages[0].Content, `"Stripey"`)
	})).Return(reply("```json\n"+`{
  "matches": [
    {"name": "Stripe", "industry": "payments", "similarity_score": 1.3, "reason": "visually similar"},
    {"name": "  ", "industry": "unknown", "similarity_score": 0.9},
    {"name": "Stripo", "industry": "email design", "similarity_score": 0.55, "reason": "shared prefix"}
  ],
  "confusion_risk": "HIGH"
}`+"\n```"), nil).Once()

	o := NewSimilarCompanies(client, testConfig())
	res, err := o.Propose(context.Background(), "Stripey")
	require.NoError(t, err)

	assert.Equal(t, model.RiskHigh, res.ConfusionRisk)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, model.SimilarityMatch{Name: "Stripe", Score: 1, Category: "payments", Reason: "visually similar"}, res.Matches[0])
	assert.Equal(t, "Stripo", res.Matches[1].Name)
	assert.InDelta(t, 0.55, res.Matches[1].Score, 1e-9)
}

func TestSimilarCompanies_MissingRiskIsLow(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(reply(`{"matches": []}`), nil).Once()

	res, err := NewSimilarCompanies(client, testConfig()).Propose(context.Background(), "Qxjvwk")
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
	assert.Equal(t, model.RiskLow, res.ConfusionRisk)
}

func TestSimilarCompanies_MalformedNotRetried(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "I could not find any companies."},
		{"schema violation", `{"matches": [{"industry": "payments"}]}`},
		{"wrong type", `{"matches": [{"name": "Stripe", "similarity_score": "high"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := anthropicmocks.NewMockClient(t)
			client.On("CreateMessage", mock.Anything, mock.Anything).Return(reply(tt.text), nil).Once()

			_, err := NewSimilarCompanies(client, testConfig()).Propose(context.Background(), "Stripey")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestSimilarCompanies_RetriesTransient(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("anthropic: create message: 529 overloaded")).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(reply(`{"matches": [], "confusion_risk": "medium"}`), nil).Once()

	res, err := NewSimilarCompanies(client, testConfig()).Propose(context.Background(), "Brexor")
	require.NoError(t, err)
	assert.Equal(t, model.RiskMedium, res.ConfusionRisk)
}

func TestSimilarCompanies_PermanentError(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("invalid x-api-key")).Once()

	_, err := NewSimilarCompanies(client, testConfig()).Propose(context.Background(), "Brexor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle: similar_companies")
	assert.NotErrorIs(t, err, ErrMalformedResponse)
}
