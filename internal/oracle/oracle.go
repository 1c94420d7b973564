// Package oracle asks Anthropic models for the judgment calls the static
// evaluators cannot make: which real companies a name could be confused
// with, how different people perceive it, and what a new project could be
// called.
package oracle

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/namecast/internal/config"
	"github.com/sells-group/namecast/internal/resilience"
	"github.com/sells-group/namecast/pkg/anthropic"
)

// ErrMalformedResponse is returned when a model reply is not the JSON the
// prompt asked for. It is never retried.
var ErrMalformedResponse = eris.New("oracle: malformed response")

// Config tunes the oracles.
type Config struct {
	Model     string
	MaxTokens int64
	// Personas is how many of DefaultPersonas are consulted. Zero means all.
	Personas int
	Retry    resilience.Policy
	// Breaker is shared by every oracle built from this config. Nil disables it.
	Breaker *resilience.Breaker
}

// ConfigFromApp maps application config onto oracle config with the
// default retry policy and a fresh breaker.
func ConfigFromApp(cfg *config.Config) Config {
	return Config{
		Model:     cfg.Anthropic.Model,
		MaxTokens: int64(cfg.Anthropic.MaxTokens),
		Personas:  cfg.Anthropic.Personas,
		Retry:     resilience.DefaultPolicy(),
		Breaker: resilience.NewBreaker("anthropic", resilience.BreakerConfig{
			Threshold: 5,
			Cooldown:  time.Minute,
		}),
	}
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = "claude-sonnet-4-5-20250929"
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 1000
	}
	if c.Retry.OnRetry == nil {
		c.Retry.OnRetry = resilience.LogRetries("anthropic")
	}
	return c
}

type sendFunc func(ctx context.Context, client anthropic.Client, req anthropic.MessageRequest) (*anthropic.MessageResponse, error)

func direct(ctx context.Context, client anthropic.Client, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	return client.CreateMessage(ctx, req)
}

// caller sends prompts through the retry policy and breaker.
type caller struct {
	client anthropic.Client
	cfg    Config
}

func newCaller(client anthropic.Client, cfg Config) caller {
	return caller{client: client, cfg: cfg.withDefaults()}
}

func (c caller) request(system []anthropic.SystemBlock, prompt string, maxTokens int64) anthropic.MessageRequest {
	return anthropic.MessageRequest{
		Model:     c.cfg.Model,
		MaxTokens: min(maxTokens, c.cfg.MaxTokens),
		System:    system,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	}
}

func (c caller) complete(ctx context.Context, oracle string, req anthropic.MessageRequest, send sendFunc) (string, error) {
	resp, err := resilience.Call(ctx, c.cfg.Breaker, c.cfg.Retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return send(ctx, c.client, req)
	})
	if err != nil {
		return "", eris.Wrapf(err, "oracle: %s", oracle)
	}
	resp.Usage.LogCost(req.Model, oracle)
	return resp.Text(), nil
}

// cleanJSON extracts a JSON object from text that may be wrapped in
// markdown code fences or surrounding prose.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func clamp(v, lo, hi float64) float64 {
	return min(hi, max(lo, v))
}
