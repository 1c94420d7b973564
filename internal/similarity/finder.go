package similarity

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/namecast/internal/metrics"
	"github.com/sells-group/namecast/internal/model"
)

// Oracle independently proposes companies that could be confused with name,
// typically backed by a language model.
type Oracle interface {
	Propose(ctx context.Context, name string) (*model.SimilarCompaniesResult, error)
}

// Options tunes the static pass and the oracle call.
type Options struct {
	// Threshold is the exclusive minimum similarity for a catalog match. Default: 0.5.
	Threshold float64
	// MaxMatches bounds every returned match list. Default: 5.
	MaxMatches int
	// HighRisk and MediumRisk are exclusive score cutoffs for confusion risk.
	// Defaults: 0.8 and 0.6.
	HighRisk   float64
	MediumRisk float64
	// OracleTimeout bounds a single oracle call. Default: 30s.
	OracleTimeout time.Duration
}

// DefaultOptions returns the reference tuning.
func DefaultOptions() Options {
	return Options{
		Threshold:     0.5,
		MaxMatches:    5,
		HighRisk:      0.8,
		MediumRisk:    0.6,
		OracleTimeout: 30 * time.Second,
	}
}

func applyDefaults(o Options) Options {
	d := DefaultOptions()
	if o.Threshold <= 0 {
		o.Threshold = d.Threshold
	}
	if o.MaxMatches <= 0 {
		o.MaxMatches = d.MaxMatches
	}
	if o.HighRisk <= 0 {
		o.HighRisk = d.HighRisk
	}
	if o.MediumRisk <= 0 {
		o.MediumRisk = d.MediumRisk
	}
	if o.OracleTimeout <= 0 {
		o.OracleTimeout = d.OracleTimeout
	}
	return o
}

// Finder looks up confusable companies. The static catalog pass always runs;
// when an oracle is configured its proposals are merged in, and any oracle
// failure falls back to the static result alone.
type Finder struct {
	catalog *Catalog
	oracle  Oracle
	opts    Options
}

// NewFinder creates a Finder. A nil catalog uses DefaultCatalog; a nil
// oracle disables the oracle pass.
func NewFinder(catalog *Catalog, oracle Oracle, opts Options) *Finder {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Finder{
		catalog: catalog,
		oracle:  oracle,
		opts:    applyDefaults(opts),
	}
}

// Find returns the static result, reconciled with the oracle's when one is
// configured and answers in time.
func (f *Finder) Find(ctx context.Context, name string) *model.SimilarCompaniesResult {
	static := f.FindStatic(name)
	if f.oracle == nil {
		return static
	}

	proposed, err := f.FindWithOracle(ctx, name)
	if err != nil {
		zap.L().Warn("similarity: oracle unavailable, using catalog matches",
			zap.String("name", name),
			zap.Error(err),
		)
		metrics.OracleCalls.WithLabelValues("similar_companies", "failed").Inc()
		return static
	}
	metrics.OracleCalls.WithLabelValues("similar_companies", "ok").Inc()

	return f.Reconcile(static, proposed)
}

// FindStatic compares name against every catalog entry.
func (f *Finder) FindStatic(name string) *model.SimilarCompaniesResult {
	lower := strings.ToLower(strings.TrimSpace(name))
	title := cases.Title(language.English)

	var matches []model.SimilarityMatch
	for _, e := range f.catalog.entities {
		score := Similarity(lower, e.Name)
		if score <= f.opts.Threshold {
			continue
		}
		matches = append(matches, model.SimilarityMatch{
			Name:     title.String(e.Name),
			Score:    score,
			Category: e.Category,
			Reason:   string(Reason(lower, e.Name)),
		})
	}

	matches = f.rank(matches)
	return &model.SimilarCompaniesResult{
		Matches:       matches,
		ConfusionRisk: f.riskFor(matches),
	}
}

// FindWithOracle asks the oracle for proposals, bounded by OracleTimeout.
func (f *Finder) FindWithOracle(ctx context.Context, name string) (*model.SimilarCompaniesResult, error) {
	if f.oracle == nil {
		return nil, eris.New("similarity: no oracle configured")
	}

	ctx, cancel := context.WithTimeout(ctx, f.opts.OracleTimeout)
	defer cancel()

	res, err := f.oracle.Propose(ctx, name)
	if err != nil {
		return nil, eris.Wrap(err, "similarity: oracle propose")
	}
	if res == nil {
		return nil, eris.New("similarity: oracle returned no result")
	}
	return res, nil
}

// Reconcile merges oracle proposals with static matches. Oracle matches come
// first and win on duplicate names (case-insensitive); the merged list is
// ranked and truncated, and the risk is the more severe of the two inputs.
func (f *Finder) Reconcile(static, oracle *model.SimilarCompaniesResult) *model.SimilarCompaniesResult {
	if oracle == nil {
		return static
	}
	if static == nil {
		static = &model.SimilarCompaniesResult{ConfusionRisk: model.RiskLow}
	}

	seen := make(map[string]bool, len(oracle.Matches)+len(static.Matches))
	merged := make([]model.SimilarityMatch, 0, len(oracle.Matches)+len(static.Matches))
	for _, src := range [][]model.SimilarityMatch{oracle.Matches, static.Matches} {
		for _, m := range src {
			key := strings.ToLower(m.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, m)
		}
	}

	return &model.SimilarCompaniesResult{
		Matches:       f.rank(merged),
		ConfusionRisk: model.MaxRisk(static.ConfusionRisk, oracle.ConfusionRisk),
	}
}

// rank sorts by score descending, keeping input order on ties, and truncates.
func (f *Finder) rank(matches []model.SimilarityMatch) []model.SimilarityMatch {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > f.opts.MaxMatches {
		matches = matches[:f.opts.MaxMatches]
	}
	return matches
}

func (f *Finder) riskFor(matches []model.SimilarityMatch) model.RiskLevel {
	best := 0.0
	for _, m := range matches {
		best = max(best, m.Score)
	}
	switch {
	case best > f.opts.HighRisk:
		return model.RiskHigh
	case best > f.opts.MediumRisk:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
