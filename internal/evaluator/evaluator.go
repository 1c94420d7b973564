// Package evaluator scores a candidate brand name across every dimension
// and combines the results into one weighted evaluation.
package evaluator

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/namecast/internal/config"
	"github.com/sells-group/namecast/internal/metrics"
	"github.com/sells-group/namecast/internal/model"
	"github.com/sells-group/namecast/internal/scorer"
	"github.com/sells-group/namecast/internal/similarity"
)

// MinNameLength is the shortest name accepted for evaluation.
const MinNameLength = 2

var (
	// ErrNameTooShort is returned for names shorter than MinNameLength.
	ErrNameTooShort = eris.New("evaluator: name must be at least 2 characters")
	// ErrNameUnusable is returned for names with fewer than MinNameLength
	// letters or digits, such as "!!".
	ErrNameUnusable = eris.New("evaluator: name must contain at least 2 letters or digits")
	// ErrTooFewNames is returned when a comparison has fewer than two names.
	ErrTooFewNames = eris.New("evaluator: at least 2 names are required to compare")
)

// SimilarFinder finds existing companies that could be confused with name.
type SimilarFinder interface {
	Find(ctx context.Context, name string) *model.SimilarCompaniesResult
}

// Options holds the evaluator's configurable defaults.
type Options struct {
	TLDs      []string
	Platforms []string
	Languages []string
	Weights   config.WeightsConfig
	// MaxConcurrent bounds concurrent domain lookups and compared names. Default: 5.
	MaxConcurrent int
	// DomainRPS limits domain lookups per second. Zero disables the limit.
	DomainRPS float64
	// PerceptionTimeout bounds the whole perception oracle call. Default: 60s.
	PerceptionTimeout time.Duration
	// MaxToEvaluate bounds how many workflow candidates get a full
	// evaluation. Default: 5.
	MaxToEvaluate int
	// GenerateCount is how many names a workflow asks the generator for.
	// Default: 10.
	GenerateCount int
}

// DefaultOptions returns the reference defaults.
func DefaultOptions() Options {
	return Options{
		TLDs:              []string{".com", ".io", ".co", ".ai", ".app"},
		Platforms:         []string{"twitter", "instagram", "linkedin", "tiktok", "github"},
		Languages:         DefaultLanguages,
		Weights:           scorer.DefaultWeights(),
		MaxConcurrent:     5,
		PerceptionTimeout: 60 * time.Second,
		MaxToEvaluate:     5,
		GenerateCount:     10,
	}
}

// OptionsFromConfig maps application config onto evaluator options. Unset
// lists keep their defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if len(cfg.Evaluator.TLDs) > 0 {
		opts.TLDs = cfg.Evaluator.TLDs
	}
	if len(cfg.Evaluator.Platforms) > 0 {
		opts.Platforms = cfg.Evaluator.Platforms
	}
	if len(cfg.Evaluator.Languages) > 0 {
		opts.Languages = cfg.Evaluator.Languages
	}
	if cfg.Evaluator.MaxConcurrent > 0 {
		opts.MaxConcurrent = cfg.Evaluator.MaxConcurrent
	}
	opts.DomainRPS = cfg.Evaluator.DomainRPS
	if cfg.Anthropic.TimeoutSecs > 0 {
		opts.PerceptionTimeout = time.Duration(cfg.Anthropic.TimeoutSecs) * time.Second
	}
	if cfg.Evaluator.MaxToEvaluate > 0 {
		opts.MaxToEvaluate = cfg.Evaluator.MaxToEvaluate
	}
	if cfg.Evaluator.GenerateCount > 0 {
		opts.GenerateCount = cfg.Evaluator.GenerateCount
	}
	opts.Weights = cfg.Weights
	return opts
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithDomainLookup sets the domain registration lookup.
func WithDomainLookup(d DomainLookup) Option {
	return func(e *Evaluator) { e.domains = d }
}

// WithSocialChecker sets the social handle checker.
func WithSocialChecker(s SocialChecker) Option {
	return func(e *Evaluator) { e.social = s }
}

// WithTrademarkSearcher sets the trademark searcher.
func WithTrademarkSearcher(t TrademarkSearcher) Option {
	return func(e *Evaluator) { e.trademark = t }
}

// WithPerceptionOracle sets the perception oracle.
func WithPerceptionOracle(p PerceptionOracle) Option {
	return func(e *Evaluator) { e.perception = p }
}

// WithFinder sets the similar-company finder.
func WithFinder(f SimilarFinder) Option {
	return func(e *Evaluator) { e.finder = f }
}

// WithNameGenerator sets the workflow's candidate name generator.
func WithNameGenerator(g NameGenerator) Option {
	return func(e *Evaluator) { e.generator = g }
}

// WithSource labels evaluation metrics, e.g. "cli" or "api".
func WithSource(source string) Option {
	return func(e *Evaluator) { e.source = source }
}

// Evaluator runs every sub-evaluation for a name. Collaborator failures
// degrade the affected dimension and never abort an evaluation.
type Evaluator struct {
	opts       Options
	domains    DomainLookup
	social     SocialChecker
	trademark  TrademarkSearcher
	perception PerceptionOracle
	finder     SimilarFinder
	generator  NameGenerator
	limiter    *rate.Limiter
	source     string
}

// New creates an Evaluator. Without options it uses placeholder social and
// trademark collaborators, the built-in catalog and no domain lookup.
func New(opts Options, options ...Option) *Evaluator {
	d := DefaultOptions()
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = d.MaxConcurrent
	}
	if opts.PerceptionTimeout <= 0 {
		opts.PerceptionTimeout = d.PerceptionTimeout
	}
	if opts.MaxToEvaluate <= 0 {
		opts.MaxToEvaluate = d.MaxToEvaluate
	}
	if opts.GenerateCount <= 0 {
		opts.GenerateCount = d.GenerateCount
	}
	if opts.Weights == (config.WeightsConfig{}) {
		opts.Weights = scorer.DefaultWeights()
	}

	e := &Evaluator{
		opts:      opts,
		social:    PlaceholderSocialChecker{},
		trademark: PlaceholderTrademarkSearcher{},
		source:    "cli",
	}
	for _, o := range options {
		o(e)
	}
	if e.finder == nil {
		e.finder = similarity.NewFinder(nil, nil, similarity.DefaultOptions())
	}
	if opts.DomainRPS > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(opts.DomainRPS), 1)
	}
	return e
}

// Request is a single evaluation request.
type Request struct {
	Name    string
	Mission string
	// PlannedDomain, e.g. "acme.ai", seeds social handle alternatives.
	PlannedDomain string
}

// Evaluate scores name, optionally against a company mission. The only
// errors are ErrNameTooShort and ErrNameUnusable.
func (e *Evaluator) Evaluate(ctx context.Context, name, mission string) (*model.EvaluationResult, error) {
	return e.EvaluateRequest(ctx, Request{Name: name, Mission: mission})
}

// EvaluateRequest runs the seven sub-evaluations concurrently, scores each
// dimension and combines the sub-scores with the configured weights.
func (e *Evaluator) EvaluateRequest(ctx context.Context, req Request) (*model.EvaluationResult, error) {
	name := strings.TrimSpace(req.Name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	start := time.Now()
	log := zap.L().With(zap.String("name", name))

	var (
		domains       map[string]model.DomainStatus
		social        map[string]model.SocialHandleResult
		trademark     *model.TrademarkResult
		pronunciation model.PronunciationResult
		international map[string]model.InternationalResult
		perception    *model.PerceptionResult
		similar       *model.SimilarCompaniesResult
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		domains = e.CheckDomains(ctx, name)
		return nil
	})
	g.Go(func() error {
		social = e.CheckSocial(ctx, name, req.PlannedDomain)
		return nil
	})
	g.Go(func() error {
		trademark = e.CheckTrademark(ctx, name)
		return nil
	})
	g.Go(func() error {
		pronunciation = AnalyzePronunciation(name)
		return nil
	})
	g.Go(func() error {
		international = CheckInternational(name, e.opts.Languages)
		return nil
	})
	g.Go(func() error {
		perception = e.AnalyzePerception(ctx, name, req.Mission)
		return nil
	})
	g.Go(func() error {
		similar = e.finder.Find(ctx, name)
		return nil
	})
	_ = g.Wait()

	sub := scorer.SubScores{
		Domain:           scorer.DomainScore(domains),
		Social:           scorer.SocialScore(social),
		Trademark:        scorer.TrademarkScore(trademark.RiskLevel),
		Pronunciation:    scorer.PronunciationScore(pronunciation.Score),
		International:    scorer.InternationalScore(international),
		SimilarCompanies: scorer.SimilarCompaniesScore(similar),
	}

	result := &model.EvaluationResult{
		Name:                  name,
		OverallScore:          scorer.Overall(sub, e.opts.Weights),
		DomainScore:           sub.Domain,
		SocialScore:           sub.Social,
		TrademarkScore:        sub.Trademark,
		PronunciationScore:    sub.Pronunciation,
		InternationalScore:    sub.International,
		SimilarCompaniesScore: sub.SimilarCompanies,
		Domains:               domains,
		Social:                social,
		Trademark:             trademark,
		Pronunciation:         &pronunciation,
		International:         international,
		Perception:            perception,
		SimilarCompanies:      similar,
		EvaluatedAt:           time.Now().UTC(),
	}

	metrics.EvaluationsTotal.WithLabelValues(e.source).Inc()
	metrics.EvaluationDuration.WithLabelValues(e.source).Observe(time.Since(start).Seconds())
	log.Info("evaluator: evaluated name",
		zap.Float64("overall_score", result.OverallScore),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

// IsInputError reports whether err rejects the caller's input rather than
// reporting a failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNameTooShort) ||
		errors.Is(err, ErrNameUnusable) ||
		errors.Is(err, ErrTooFewNames) ||
		errors.Is(err, ErrDescriptionTooShort)
}

// ValidateName rejects names shorter than MinNameLength runes and names
// without MinNameLength letters or digits.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < MinNameLength {
		return ErrNameTooShort
	}
	alnum := 0
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}
	if alnum < MinNameLength {
		return ErrNameUnusable
	}
	return nil
}
