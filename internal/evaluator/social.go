package evaluator

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/sells-group/namecast/internal/metrics"
	"github.com/sells-group/namecast/internal/model"
)

// maxAlternatives bounds the generated handle alternatives per platform.
const maxAlternatives = 10

// SocialChecker reports whether a handle is free on a platform.
type SocialChecker interface {
	Available(ctx context.Context, platform, handle string) (bool, error)
}

// PlaceholderSocialChecker reports every handle as available.
type PlaceholderSocialChecker struct{}

// Available implements SocialChecker.
func (PlaceholderSocialChecker) Available(context.Context, string, string) (bool, error) {
	return true, nil
}

// CheckSocial checks the exact handle for name on each platform, then walks
// the generated alternatives until one is free. Checker errors count as
// taken. A name with no handle characters is taken everywhere.
func (e *Evaluator) CheckSocial(ctx context.Context, name, plannedDomain string) map[string]model.SocialHandleResult {
	handle := handleFor(name)
	out := make(map[string]model.SocialHandleResult, len(e.opts.Platforms))
	if handle == "" {
		for _, platform := range e.opts.Platforms {
			out[platform] = model.SocialHandleResult{Platform: platform, AlternativesChecked: []string{}}
		}
		return out
	}
	alternatives := HandleAlternatives(handle, plannedDomain)

	for _, platform := range e.opts.Platforms {
		res := model.SocialHandleResult{
			Platform:            platform,
			AlternativesChecked: []string{handle},
		}
		if e.handleAvailable(ctx, platform, handle) {
			res.ExactAvailable = true
			out[platform] = res
			continue
		}
		for _, alt := range alternatives {
			res.AlternativesChecked = append(res.AlternativesChecked, alt)
			if e.handleAvailable(ctx, platform, alt) {
				res.BestAlternative = alt
				break
			}
		}
		out[platform] = res
	}
	return out
}

func (e *Evaluator) handleAvailable(ctx context.Context, platform, handle string) bool {
	ok, err := e.social.Available(ctx, platform, handle)
	if err != nil {
		zap.L().Debug("evaluator: social check failed",
			zap.String("platform", platform),
			zap.String("handle", handle),
			zap.Error(err),
		)
		metrics.CollaboratorFailures.WithLabelValues("social").Inc()
		return false
	}
	return ok
}

// HandleAlternatives generates fallback handles for when the exact handle is
// taken. A planned domain such as "acme.ai" contributes domain-derived
// handles first. The result is unique, excludes handle itself and holds at
// most ten entries.
func HandleAlternatives(handle, plannedDomain string) []string {
	var candidates []string

	domain := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(plannedDomain), "https://"), "http://")
	if i := strings.LastIndex(domain, "."); i > 0 && i < len(domain)-1 {
		base, tld := domain[:i], domain[i+1:]
		candidates = append(candidates,
			base+tld,
			base+"_"+tld,
			base+"."+tld,
			"get"+base,
			base+"hq",
			base+"app",
		)
	}

	candidates = append(candidates,
		handle+"hq",
		handle+"app",
		"get"+handle,
		"try"+handle,
		"use"+handle,
		handle+"_",
		"_"+handle,
		handle+"io",
		handle+"ai",
		"the"+handle,
		handle+"official",
	)

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, maxAlternatives)
	for _, c := range candidates {
		if c == handle || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == maxAlternatives {
			break
		}
	}
	return out
}

// handleFor lower-cases name and drops everything but letters, digits and
// underscores.
func handleFor(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
