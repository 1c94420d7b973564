// Package cache stores oracle answers in Redis so repeated evaluations of a
// name do not pay for the same model calls twice.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/namecast/internal/metrics"
	"github.com/sells-group/namecast/internal/model"
)

const keyPrefix = "namecast:"

// Cache is a TTL-bounded JSON store in Redis.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// Open connects to the Redis server at url, e.g. redis://localhost:6379/0.
func Open(ctx context.Context, url string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, eris.Wrap(err, "cache: parse redis url")
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	c := New(redis.NewClient(opts), ttl)
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		_ = c.rdb.Close()
		return nil, eris.Wrap(err, "cache: ping redis")
	}
	return c, nil
}

// New wraps an existing client. A non-positive ttl defaults to 24h.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// load reports whether key held a decodable value. Redis errors are logged
// and treated as misses.
func load[T any](ctx context.Context, c *Cache, key string) (*T, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		zap.L().Warn("cache: get failed", zap.String("key", key), zap.Error(err))
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		zap.L().Warn("cache: discarding undecodable entry", zap.String("key", key), zap.Error(err))
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return &v, true
}

func store(ctx context.Context, c *Cache, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		zap.L().Warn("cache: encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		zap.L().Warn("cache: set failed", zap.String("key", key), zap.Error(err))
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func similarKey(name string) string {
	return keyPrefix + "similar:" + nameKey(name)
}

func perceptionKey(name, mission string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(mission)))
	return keyPrefix + "perception:" + nameKey(name) + ":" + hex.EncodeToString(sum[:8])
}

// Proposer is the similar-company oracle being cached.
type Proposer interface {
	Propose(ctx context.Context, name string) (*model.SimilarCompaniesResult, error)
}

// Perceiver is the perception oracle being cached.
type Perceiver interface {
	Perceive(ctx context.Context, name, mission string) (*model.PerceptionResult, error)
}

// SimilarOracle serves similar-company proposals from the cache.
type SimilarOracle struct {
	cache *Cache
	next  Proposer
}

// WrapSimilar caches next's successful proposals.
func (c *Cache) WrapSimilar(next Proposer) *SimilarOracle {
	return &SimilarOracle{cache: c, next: next}
}

// Propose returns a cached proposal or asks the wrapped oracle.
func (o *SimilarOracle) Propose(ctx context.Context, name string) (*model.SimilarCompaniesResult, error) {
	key := similarKey(name)
	if res, ok := load[model.SimilarCompaniesResult](ctx, o.cache, key); ok {
		return res, nil
	}
	res, err := o.next.Propose(ctx, name)
	if err != nil {
		return nil, err
	}
	if res != nil {
		store(ctx, o.cache, key, res)
	}
	return res, nil
}

// PerceptionOracle serves perception results from the cache, keyed by name
// and mission.
type PerceptionOracle struct {
	cache *Cache
	next  Perceiver
}

// WrapPerception caches next's successful results.
func (c *Cache) WrapPerception(next Perceiver) *PerceptionOracle {
	return &PerceptionOracle{cache: c, next: next}
}

// Perceive returns a cached result or asks the wrapped oracle.
func (o *PerceptionOracle) Perceive(ctx context.Context, name, mission string) (*model.PerceptionResult, error) {
	key := perceptionKey(name, mission)
	if res, ok := load[model.PerceptionResult](ctx, o.cache, key); ok {
		return res, nil
	}
	res, err := o.next.Perceive(ctx, name, mission)
	if err != nil {
		return nil, err
	}
	if res != nil {
		store(ctx, o.cache, key, res)
	}
	return res, nil
}
