package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Evaluator  EvaluatorConfig  `yaml:"evaluator" mapstructure:"evaluator"`
	Similarity SimilarityConfig `yaml:"similarity" mapstructure:"similarity"`
	Whois      WhoisConfig      `yaml:"whois" mapstructure:"whois"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Weights    WeightsConfig    `yaml:"weights" mapstructure:"weights"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// StoreConfig configures the evaluation history backend.
// Driver is one of sqlite, postgres or none.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings. An empty key disables the
// language-model oracles. TimeoutSecs bounds one perception panel run.
type AnthropicConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	Model       string `yaml:"model" mapstructure:"model"`
	MaxTokens   int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	Personas    int    `yaml:"personas" mapstructure:"personas"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// EvaluatorConfig configures the per-name sub-evaluations.
type EvaluatorConfig struct {
	TLDs          []string `yaml:"tlds" mapstructure:"tlds"`
	Platforms     []string `yaml:"platforms" mapstructure:"platforms"`
	Languages     []string `yaml:"languages" mapstructure:"languages"`
	MaxConcurrent int      `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	DomainRPS     float64  `yaml:"domain_rps" mapstructure:"domain_rps"`
	MaxToEvaluate int      `yaml:"max_to_evaluate" mapstructure:"max_to_evaluate"`
	GenerateCount int      `yaml:"generate_count" mapstructure:"generate_count"`
}

// SimilarityConfig configures the similar-company finder.
type SimilarityConfig struct {
	Threshold         float64 `yaml:"threshold" mapstructure:"threshold"`
	MaxMatches        int     `yaml:"max_matches" mapstructure:"max_matches"`
	OracleTimeoutSecs int     `yaml:"oracle_timeout_secs" mapstructure:"oracle_timeout_secs"`
	CatalogPath       string  `yaml:"catalog_path" mapstructure:"catalog_path"`
}

// WhoisConfig configures domain lookups.
type WhoisConfig struct {
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Retries     int `yaml:"retries" mapstructure:"retries"`
}

// CacheConfig configures the Redis oracle cache. An empty URL disables it.
type CacheConfig struct {
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// WeightsConfig holds the dimension weights for the overall score.
// Weights sum to 1.
type WeightsConfig struct {
	Domain           float64 `yaml:"domain" mapstructure:"domain"`
	Social           float64 `yaml:"social" mapstructure:"social"`
	Trademark        float64 `yaml:"trademark" mapstructure:"trademark"`
	Pronunciation    float64 `yaml:"pronunciation" mapstructure:"pronunciation"`
	International    float64 `yaml:"international" mapstructure:"international"`
	SimilarCompanies float64 `yaml:"similar_companies" mapstructure:"similar_companies"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("NAMECAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "namecast.db")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 1000)
	v.SetDefault("anthropic.personas", 5)
	v.SetDefault("anthropic.timeout_secs", 60)
	v.SetDefault("evaluator.tlds", []string{".com", ".io", ".co", ".ai", ".app"})
	v.SetDefault("evaluator.platforms", []string{"twitter", "instagram", "linkedin", "tiktok", "github"})
	v.SetDefault("evaluator.languages", []string{"spanish", "french", "german", "mandarin", "japanese", "portuguese", "arabic"})
	v.SetDefault("evaluator.max_concurrent", 5)
	v.SetDefault("evaluator.domain_rps", 2.0)
	v.SetDefault("evaluator.max_to_evaluate", 5)
	v.SetDefault("evaluator.generate_count", 10)
	v.SetDefault("similarity.threshold", 0.5)
	v.SetDefault("similarity.max_matches", 5)
	v.SetDefault("similarity.oracle_timeout_secs", 30)
	v.SetDefault("similarity.catalog_path", "")
	v.SetDefault("whois.timeout_secs", 10)
	v.SetDefault("whois.retries", 2)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("weights.domain", 0.20)
	v.SetDefault("weights.social", 0.10)
	v.SetDefault("weights.trademark", 0.20)
	v.SetDefault("weights.pronunciation", 0.15)
	v.SetDefault("weights.international", 0.15)
	v.SetDefault("weights.similar_companies", 0.20)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Modes are
// evaluate, serve and history.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch c.Store.Driver {
	case "sqlite", "postgres", "none":
	default:
		errs = append(errs, fmt.Sprintf("store.driver must be sqlite, postgres or none, got %q", c.Store.Driver))
	}
	if c.Store.Driver == "postgres" && c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required for postgres")
	}

	if c.Similarity.Threshold <= 0 || c.Similarity.Threshold >= 1 {
		errs = append(errs, "similarity.threshold must be between 0 and 1")
	}
	if c.Similarity.MaxMatches < 1 {
		errs = append(errs, "similarity.max_matches must be >= 1")
	}
	if c.Evaluator.MaxConcurrent < 1 || c.Evaluator.MaxConcurrent > 20 {
		errs = append(errs, "evaluator.max_concurrent must be between 1 and 20")
	}

	switch mode {
	case "evaluate":
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
	case "workflow":
		if c.Evaluator.MaxToEvaluate < 1 {
			errs = append(errs, "evaluator.max_to_evaluate must be >= 1")
		}
		if c.Evaluator.GenerateCount < 0 {
			errs = append(errs, "evaluator.generate_count must be >= 0")
		}
	case "history":
		if c.Store.Driver == "none" {
			errs = append(errs, "store.driver must not be none for history")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown mode %q", mode))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
