package anthropic

import (
	"context"
	"errors"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubClient implements Client for testing.
type stubClient struct {
	mock.Mock
}

func (m *stubClient) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MessageResponse), args.Error(1)
}

func TestMessageResponse_Text(t *testing.T) {
	resp := &MessageResponse{Content: []ContentBlock{
		{Type: "text", Text: `{"matches":`},
		{Type: "tool_use", Text: "ignored"},
		{Type: "text", Text: `[]}`},
	}}
	assert.Equal(t, `{"matches":[]}`, resp.Text())
	assert.Empty(t, (&MessageResponse{}).Text())
}

func TestBuildCachedSystemBlocks(t *testing.T) {
	blocks := BuildCachedSystemBlocks("You are Maya, 34, a Marketing Director.")

	require.Len(t, blocks, 1)
	assert.Equal(t, "You are Maya, 34, a Marketing Director.", blocks[0].Text)
	require.NotNil(t, blocks[0].CacheControl)
	assert.Equal(t, "5m", blocks[0].CacheControl.TTL)
}

func TestPrimerRequest(t *testing.T) {
	mc := new(stubClient)
	ctx := context.Background()
	req := MessageRequest{
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 128,
		System:    BuildCachedSystemBlocks("shared persona rubric"),
		Messages:  []Message{{Role: "user", Content: "Evaluate Namecast"}},
	}
	mc.On("CreateMessage", ctx, req).Return(&MessageResponse{
		ID:    "msg_primer",
		Usage: TokenUsage{CacheCreationInputTokens: 1200},
	}, nil).Once()

	resp, err := PrimerRequest(ctx, mc, req)
	require.NoError(t, err)
	assert.Equal(t, "msg_primer", resp.ID)
	assert.Equal(t, int64(1200), resp.Usage.CacheCreationInputTokens)
	mc.AssertExpectations(t)
}

func TestPrimerRequest_Error(t *testing.T) {
	mc := new(stubClient)
	mc.On("CreateMessage", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited"))

	_, err := PrimerRequest(context.Background(), mc, MessageRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic: primer request")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestEstimateCost(t *testing.T) {
	u := TokenUsage{InputTokens: 1_000_000, OutputTokens: 1_000_000}
	assert.InDelta(t, 18.0, u.EstimateCost("claude-sonnet-4-5-20250929"), 1e-9)
	assert.InDelta(t, 4.8, u.EstimateCost("claude-haiku-4-5-20251001"), 1e-9)
	assert.Equal(t, 0.0, u.EstimateCost("unknown-model"))
	assert.Equal(t, 0.0, TokenUsage{}.EstimateCost("claude-sonnet-4-5-20250929"))
}

func TestEstimateCost_WithCache(t *testing.T) {
	u := TokenUsage{CacheCreationInputTokens: 1_000_000, CacheReadInputTokens: 1_000_000}
	// 3.00*1.25 + 3.00*0.1
	assert.InDelta(t, 4.05, u.EstimateCost("claude-sonnet-4-5-20250929"), 1e-9)
}

func TestLogCost_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		TokenUsage{InputTokens: 10}.LogCost("claude-sonnet-4-5-20250929", "similar_companies")
	})
}

func TestNewResponse(t *testing.T) {
	resp := newResponse(&sdk.Message{
		ID:         "msg_test_123",
		Model:      "claude-sonnet-4-5-20250929",
		StopReason: "end_turn",
		Content: []sdk.ContentBlockUnion{
			{Type: "text", Text: `{"score": 8}`},
		},
		Usage: sdk.Usage{InputTokens: 100, OutputTokens: 50, CacheReadInputTokens: 3000},
	})

	require.NotNil(t, resp)
	assert.Equal(t, "msg_test_123", resp.ID)
	assert.Equal(t, "end_turn", resp.StopReason)
	assert.Equal(t, `{"score": 8}`, resp.Text())
	assert.Equal(t, int64(100), resp.Usage.InputTokens)
	assert.Equal(t, int64(3000), resp.Usage.CacheReadInputTokens)
}

func TestMessageParams(t *testing.T) {
	out := messageParams([]Message{
		{Role: "user", Content: "Evaluate Luma"},
		{Role: "assistant", Content: "{"},
		{Role: "system", Content: "falls back to user"},
	})

	require.Len(t, out, 3)
	assert.Equal(t, "user", string(out[0].Role))
	assert.Equal(t, "assistant", string(out[1].Role))
	assert.Equal(t, "user", string(out[2].Role))
	assert.Empty(t, messageParams(nil))
}

func TestSystemParams(t *testing.T) {
	out := systemParams([]SystemBlock{
		{Text: "plain"},
		{Text: "cached", CacheControl: &CacheControl{TTL: "5m"}},
	})

	require.Len(t, out, 2)
	assert.Equal(t, "plain", out[0].Text)
	assert.Equal(t, "cached", out[1].Text)
	assert.Equal(t, "5m", string(out[1].CacheControl.TTL))
}

func TestMessageRequest_Params(t *testing.T) {
	temp := 0.2
	p := MessageRequest{
		Model:       "claude-haiku-4-5-20251001",
		MaxTokens:   150,
		System:      BuildCachedSystemBlocks("panel"),
		Messages:    []Message{{Role: RoleUser, Content: "Luma"}},
		Temperature: &temp,
	}.params()

	assert.Equal(t, "claude-haiku-4-5-20251001", string(p.Model))
	assert.Equal(t, int64(150), p.MaxTokens)
	assert.Len(t, p.System, 1)
	assert.Len(t, p.Messages, 1)

	bare := MessageRequest{Model: "m", MaxTokens: 1}.params()
	assert.Empty(t, bare.System)
}

func TestNewClient_ReturnsNonNil(t *testing.T) {
	assert.NotNil(t, NewClient("sk-ant-test"))
}
