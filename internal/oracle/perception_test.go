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

func promptContains(s string) any {
	return mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return len(req.Messages) == 1 && strings.Contains(req.Messages[0].Content, s)
	})
}

func personaPromptFor(persona string) any {
	return mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return len(req.System) == 1 &&
			req.System[0].CacheControl != nil &&
			req.System[0].CacheControl.TTL == "5m" &&
			strings.Contains(req.Messages[0].Content, "You are "+persona+",")
	})
}

func TestPerception_Perceive(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, personaPromptFor("Sarah")).Return(reply(
		`{"evokes": "Fast payments", "industry_guess": "fintech", "would_trust": true, "memorable": true, "explanation": "Crisp."}`), nil).Once()
	client.On("CreateMessage", mock.Anything, personaPromptFor("Robert")).Return(reply(
		`{"evokes": "A bank", "industry_guess": "Fintech", "would_trust": false, "memorable": true}`), nil).Once()
	client.On("CreateMessage", mock.Anything, personaPromptFor("Maya")).Return(reply(
		"```json\n{\"evokes\": \"Generic\", \"industry_guess\": \"payments\", \"would_trust\": true, \"memorable\": false}\n```"), nil).Once()
	client.On("CreateMessage", mock.Anything, personaPromptFor("James")).Return(nil, errors.New("invalid request")).Once()
	client.On("CreateMessage", mock.Anything, personaPromptFor("Lisa")).Return(reply(
		`{"evokes": "An app my friends use", "industry_guess": "social media"}`), nil).Once()
	client.On("CreateMessage", mock.Anything, promptContains("Synthesize")).Return(reply(
		"  A quick, friendly payments brand.  "), nil).Once()
	client.On("CreateMessage", mock.Anything, promptContains("Mission: Move money for small shops")).Return(reply(
		`{"score": 12, "explanation": "Strong fit."}`), nil).Once()

	p := NewPerception(client, testConfig())
	res, err := p.Perceive(context.Background(), "Paylo", "Move money for small shops")
	require.NoError(t, err)

	assert.Equal(t, model.PerceptionSourceOracle, res.Source)
	assert.Equal(t, "A quick, friendly payments brand.", res.Evokes)
	assert.Equal(t, []string{"fintech", "payments", "social media"}, res.IndustryAssociation)
	assert.Equal(t, "medium", res.Memorability)
	assert.InDelta(t, 0.75, res.ConsensusScore, 1e-9)
	require.NotNil(t, res.MissionAlignment)
	assert.InDelta(t, 10.0, *res.MissionAlignment, 1e-9)
	assert.Equal(t, "Strong fit.", res.MissionExplanation)

	require.Len(t, res.Personas, 4)
	names := make([]string, len(res.Personas))
	for i, r := range res.Personas {
		names[i] = r.Persona
	}
	assert.Equal(t, []string{"Sarah", "Robert", "Maya", "Lisa"}, names)
	assert.True(t, res.Personas[3].WouldTrust)
	assert.True(t, res.Personas[3].Memorable)
	assert.Equal(t, 55, res.Personas[1].Age)
	assert.Equal(t, "Small Business Owner", res.Personas[1].Occupation)
}

func TestPerception_LimitedPanelWithoutMission(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, personaPromptFor("Sarah")).Return(reply(
		`{"evokes": "Light", "industry_guess": "design", "would_trust": true, "memorable": true}`), nil).Once()
	client.On("CreateMessage", mock.Anything, personaPromptFor("Robert")).Return(reply(
		`{"evokes": "Lamps", "industry_guess": "retail", "would_trust": true, "memorable": true}`), nil).Once()
	client.On("CreateMessage", mock.Anything, promptContains("Synthesize")).
		Return(nil, errors.New("invalid request")).Once()

	cfg := testConfig()
	cfg.Personas = 2
	res, err := NewPerception(client, cfg).Perceive(context.Background(), "Luma", "")
	require.NoError(t, err)

	assert.Equal(t, "Light", res.Evokes)
	assert.Equal(t, "high", res.Memorability)
	assert.InDelta(t, 1.0, res.ConsensusScore, 1e-9)
	assert.Nil(t, res.MissionAlignment)
	assert.Empty(t, res.MissionExplanation)
	assert.Len(t, res.Personas, 2)
}

func TestPerception_AlignmentFallback(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, personaPromptFor("Sarah")).Return(reply(
		`{"evokes": "Light", "industry_guess": "design"}`), nil).Once()
	client.On("CreateMessage", mock.Anything, promptContains("Synthesize")).Return(reply("Light and airy."), nil).Once()
	client.On("CreateMessage", mock.Anything, promptContains("Mission:")).Return(reply("ten out of ten"), nil).Once()

	cfg := testConfig()
	cfg.Personas = 1
	res, err := NewPerception(client, cfg).Perceive(context.Background(), "Luma", "Brighten homes")
	require.NoError(t, err)
	require.NotNil(t, res.MissionAlignment)
	assert.InDelta(t, 5.0, *res.MissionAlignment, 1e-9)
	assert.Equal(t, "Unable to evaluate alignment.", res.MissionExplanation)
}

func TestPerception_NoAnswers(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, mock.Anything).Return(reply("no"), nil).Times(2)

	cfg := testConfig()
	cfg.Personas = 2
	_, err := NewPerception(client, cfg).Perceive(context.Background(), "Luma", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no persona answered")
}

func TestNewPerception_PanelSize(t *testing.T) {
	assert.Len(t, NewPerception(nil, Config{}).personas, 5)
	assert.Len(t, NewPerception(nil, Config{Personas: 3}).personas, 3)
	assert.Len(t, NewPerception(nil, Config{Personas: 12}).personas, 5)
}

func TestAggregate(t *testing.T) {
	responses := []model.PersonaResponse{
		{Persona: "A", Evokes: "speed", IndustryGuess: "logistics", WouldTrust: true, Memorable: true},
		{Persona: "B", IndustryGuess: "shipping", WouldTrust: true, Memorable: true},
		{Persona: "C", IndustryGuess: "travel", WouldTrust: false, Memorable: true},
		{Persona: "D", IndustryGuess: "fitness", WouldTrust: false, Memorable: true},
		{Persona: "E", IndustryGuess: "automotive", WouldTrust: false, Memorable: false},
	}

	res := Aggregate(responses)
	assert.Equal(t, "speed", res.Evokes)
	assert.Equal(t, "high", res.Memorability)
	assert.InDelta(t, (0.4+0.8)/2, res.ConsensusScore, 1e-9)
	assert.Equal(t, []string{"logistics", "shipping", "travel", "fitness"}, res.IndustryAssociation)
	assert.Equal(t, model.PerceptionSourceOracle, res.Source)
}

func TestAggregate_LowMemorability(t *testing.T) {
	res := Aggregate([]model.PersonaResponse{
		{Persona: "A", Memorable: false},
		{Persona: "B", Memorable: true},
		{Persona: "C", Memorable: false},
	})
	assert.Equal(t, "low", res.Memorability)
	assert.Empty(t, res.IndustryAssociation)
}
