package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/namecast/internal/cache"
	"github.com/sells-group/namecast/internal/evaluator"
	"github.com/sells-group/namecast/internal/oracle"
	"github.com/sells-group/namecast/internal/resilience"
	"github.com/sells-group/namecast/internal/scorer"
	"github.com/sells-group/namecast/internal/similarity"
	"github.com/sells-group/namecast/internal/store"
	"github.com/sells-group/namecast/pkg/anthropic"
	"github.com/sells-group/namecast/pkg/whois"
)

// appEnv holds the collaborators a command runs against.
type appEnv struct {
	Evaluator *evaluator.Evaluator
	Finder    *similarity.Finder
	Catalog   *similarity.Catalog
	// Store is nil when history is disabled or not requested.
	Store store.Store

	cache *cache.Cache
}

// Close releases the store and cache connections.
func (e *appEnv) Close() {
	if e.Store != nil {
		if err := e.Store.Close(); err != nil {
			zap.L().Warn("close store", zap.Error(err))
		}
	}
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			zap.L().Warn("close cache", zap.Error(err))
		}
	}
}

// validateFor checks cfg for mode. Modes that score names also check the
// weights.
func validateFor(mode string) error {
	if err := cfg.Validate(mode); err != nil {
		return err
	}
	if mode == "history" {
		return nil
	}
	return scorer.ValidateWeights(cfg.Weights)
}

// initEnv builds the evaluator from cfg. Oracles are enabled by an
// Anthropic key, which also enables workflow name generation, and cached when a Redis URL is set; an unreachable cache
// is logged and skipped. The store is opened only when withStore is true.
func initEnv(ctx context.Context, source string, withStore bool) (*appEnv, error) {
	env := &appEnv{Catalog: similarity.DefaultCatalog()}
	if cfg.Similarity.CatalogPath != "" {
		c, err := similarity.LoadCatalog(cfg.Similarity.CatalogPath)
		if err != nil {
			return nil, err
		}
		env.Catalog = c
	}

	var (
		proposer  similarity.Oracle
		perceiver evaluator.PerceptionOracle
		generator evaluator.NameGenerator
	)
	if cfg.Anthropic.Key != "" {
		client := anthropic.NewClient(cfg.Anthropic.Key)
		ocfg := oracle.ConfigFromApp(cfg)
		sim := oracle.NewSimilarCompanies(client, ocfg)
		per := oracle.NewPerception(client, ocfg)
		proposer, perceiver = sim, per
		generator = oracle.NewNames(client, ocfg)

		if cfg.Cache.RedisURL != "" {
			c, err := cache.Open(ctx, cfg.Cache.RedisURL, time.Duration(cfg.Cache.TTLHours)*time.Hour)
			if err != nil {
				zap.L().Warn("oracle cache unavailable, continuing uncached", zap.Error(err))
			} else {
				env.cache = c
				proposer, perceiver = c.WrapSimilar(sim), c.WrapPerception(per)
			}
		}
	} else {
		zap.L().Debug("no anthropic key configured, oracles disabled")
	}

	env.Finder = similarity.NewFinder(env.Catalog, proposer, similarity.Options{
		Threshold:     cfg.Similarity.Threshold,
		MaxMatches:    cfg.Similarity.MaxMatches,
		OracleTimeout: time.Duration(cfg.Similarity.OracleTimeoutSecs) * time.Second,
	})

	domains := whois.NewClient(
		whois.WithTimeout(time.Duration(cfg.Whois.TimeoutSecs)*time.Second),
		whois.WithRetries(cfg.Whois.Retries),
		whois.WithBreaker(resilience.NewBreaker("whois", resilience.BreakerConfig{
			Threshold: 10,
			Cooldown:  30 * time.Second,
		})),
	)

	options := []evaluator.Option{
		evaluator.WithDomainLookup(domains),
		evaluator.WithFinder(env.Finder),
		evaluator.WithSource(source),
	}
	if perceiver != nil {
		options = append(options, evaluator.WithPerceptionOracle(perceiver))
	}
	if generator != nil {
		options = append(options, evaluator.WithNameGenerator(generator))
	}
	env.Evaluator = evaluator.New(evaluator.OptionsFromConfig(cfg), options...)

	if withStore {
		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			env.Close()
			return nil, eris.Wrap(err, "open store")
		}
		env.Store = st
	}

	return env, nil
}
