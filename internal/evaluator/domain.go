package evaluator

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/idna"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/namecast/internal/metrics"
	"github.com/sells-group/namecast/internal/model"
)

// DomainLookup reports whether a fully qualified domain is registered.
type DomainLookup interface {
	Registered(ctx context.Context, domain string) (bool, error)
}

// CheckDomains looks up name under every configured TLD. Lookups run
// concurrently under the evaluator's rate limit; a failed lookup is
// recorded as unknown, never as available or taken. So is every TLD when
// name has no usable domain label.
func (e *Evaluator) CheckDomains(ctx context.Context, name string) map[string]model.DomainStatus {
	return e.checkTLDs(ctx, name, e.opts.TLDs)
}

func (e *Evaluator) checkTLDs(ctx context.Context, name string, tlds []string) map[string]model.DomainStatus {
	out := make(map[string]model.DomainStatus, len(tlds))
	label, err := asciiLabel(name)
	if err != nil || e.domains == nil {
		if err != nil {
			zap.L().Debug("evaluator: no domain label", zap.String("name", name), zap.Error(err))
		}
		for _, tld := range tlds {
			out[tld] = model.DomainUnknown
		}
		return out
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(e.opts.MaxConcurrent)
	for _, tld := range tlds {
		g.Go(func() error {
			status := e.lookupDomain(ctx, label+tld)
			mu.Lock()
			out[tld] = status
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (e *Evaluator) lookupDomain(ctx context.Context, domain string) model.DomainStatus {
	log := zap.L().With(zap.String("domain", domain))

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			log.Debug("evaluator: domain rate limit wait aborted", zap.Error(err))
			return model.DomainUnknown
		}
	}

	registered, err := e.domains.Registered(ctx, domain)
	if err != nil {
		log.Warn("evaluator: domain lookup failed", zap.Error(err))
		metrics.CollaboratorFailures.WithLabelValues("domain").Inc()
		return model.DomainUnknown
	}
	if registered {
		return model.DomainTaken
	}
	return model.DomainAvailable
}

// asciiLabel returns the domain label for name in its ASCII form, e.g.
// "xn--wgv71a119e" for "日本語".
func asciiLabel(name string) (string, error) {
	label := domainLabel(name)
	if label == "" {
		return "", eris.Errorf("evaluator: %q has no domain label", name)
	}
	ascii, err := idna.Lookup.ToASCII(label)
	if err != nil {
		return "", eris.Wrapf(err, "evaluator: encode domain label %q", label)
	}
	return ascii, nil
}

// domainLabel lower-cases name and keeps letters, digits and hyphens.
func domainLabel(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
