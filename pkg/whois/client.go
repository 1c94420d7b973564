// Package whois checks domain registration over WHOIS.
package whois

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"github.com/rotisserie/eris"

	"github.com/sells-group/namecast/internal/resilience"
)

// QueryFunc returns the raw WHOIS response for a domain.
type QueryFunc func(domain string) (string, error)

// Client reports whether domains are registered. It implements
// evaluator.DomainLookup.
type Client struct {
	query   QueryFunc
	timeout time.Duration
	policy  resilience.Policy
	breaker *resilience.Breaker
}

// Option configures a Client.
type Option func(*Client)

// WithQuery replaces the network query, e.g. in tests.
func WithQuery(q QueryFunc) Option {
	return func(c *Client) { c.query = q }
}

// WithTimeout bounds a single query. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetries sets how many times a transient failure is retried. Default: 2.
func WithRetries(n int) Option {
	return func(c *Client) { c.policy = resilience.PolicyFromRetries(n) }
}

// WithBreaker guards queries with a circuit breaker.
func WithBreaker(b *resilience.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// NewClient creates a WHOIS client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout: 10 * time.Second,
		policy:  resilience.PolicyFromRetries(2),
	}
	for _, o := range opts {
		o(c)
	}
	if c.query == nil {
		wc := whois.NewClient().SetTimeout(c.timeout)
		c.query = func(domain string) (string, error) {
			return wc.Whois(domain)
		}
	}
	c.policy.OnRetry = resilience.LogRetries("whois")
	return c
}

// Registered looks domain up. Network failures and rate limiting are
// retried; a response that cannot be classified is an error.
func (c *Client) Registered(ctx context.Context, domain string) (bool, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return false, eris.New("whois: empty domain")
	}

	registered, err := resilience.Call(ctx, c.breaker, c.policy, func(ctx context.Context) (bool, error) {
		text, err := c.lookup(ctx, domain)
		if err != nil {
			return false, resilience.Transient(err)
		}
		return classify(text)
	})
	if err != nil {
		return false, eris.Wrapf(err, "whois: lookup %s", domain)
	}
	return registered, nil
}

type queryResult struct {
	text string
	err  error
}

// lookup runs the blocking query so that ctx can abandon it.
func (c *Client) lookup(ctx context.Context, domain string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan queryResult, 1)
	go func() {
		text, err := c.query(domain)
		done <- queryResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}

// classify decides registration from a raw response.
func classify(text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, eris.New("whois: empty response")
	}

	_, err := whoisparser.Parse(text)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, whoisparser.ErrNotFoundDomain):
		return false, nil
	case errors.Is(err, whoisparser.ErrReservedDomain), errors.Is(err, whoisparser.ErrPremiumDomain):
		return true, nil
	case errors.Is(err, whoisparser.ErrDomainLimitExceed):
		return false, resilience.Transient(err)
	default:
		return false, eris.Wrap(err, "whois: parse response")
	}
}
