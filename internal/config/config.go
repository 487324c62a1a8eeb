// Package config loads service configuration from a file and JOB_MATCHER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/job-matcher/internal/embedding"
)

// EnvPrefix namespaces environment overrides: server.port is read from JOB_MATCHER_SERVER_PORT
const EnvPrefix = "JOB_MATCHER"

// Config is the complete service configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Lexical   LexicalConfig   `mapstructure:"lexical"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Skills    SkillsConfig    `mapstructure:"skills"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig configures PostgreSQL; an empty URL runs without a database
type DatabaseConfig struct {
	URL     string `mapstructure:"url"`
	Migrate bool   `mapstructure:"migrate"`
}

// RedisConfig configures the embedding cache; an empty Addr keeps vectors in memory
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// EmbeddingConfig switches the lexical signal to remote embeddings with tf-idf as fallback
type EmbeddingConfig struct {
	embedding.Config `mapstructure:",squash"`

	Enabled bool `mapstructure:"enabled"`
}

// LexicalConfig controls degradation of the lexical signal. With Fallback off,
// an embedding failure omits the signal instead of substituting local tf-idf.
type LexicalConfig struct {
	Fallback bool `mapstructure:"fallback"`
}

// LLMConfig configures Gemini for entity recognition and the career chat
type LLMConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	NEREnabled    bool          `mapstructure:"ner_enabled"`
	Timeout       time.Duration `mapstructure:"timeout"`
	ChatMaxTokens int           `mapstructure:"chat_max_tokens"`
}

// SkillsConfig points at an optional YAML vocabulary replacing the built-in one
type SkillsConfig struct {
	VocabularyFile string `mapstructure:"vocabulary_file"`
}

// RecommendConfig bounds recommendation batches
type RecommendConfig struct {
	Workers        int           `mapstructure:"workers"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
	MaxPool        int           `mapstructure:"max_pool"`
}

// RateLimitConfig configures per-client request limits
type RateLimitConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Limit     int           `mapstructure:"limit"`
	Window    time.Duration `mapstructure:"window"`
	Burst     int           `mapstructure:"burst"`
	Whitelist []string      `mapstructure:"whitelist"`
}

// LogConfig selects the log format and level
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

var defaults = map[string]any{
	"server.port":                   8080,
	"server.read_timeout":           15 * time.Second,
	"server.write_timeout":          60 * time.Second,
	"server.shutdown_timeout":       10 * time.Second,
	"server.cors_origins":           []string{"*"},
	"server.max_body_bytes":         int64(5 << 20),
	"database.url":                  "",
	"database.migrate":              false,
	"redis.addr":                    "",
	"redis.password":                "",
	"redis.db":                      0,
	"redis.prefix":                  "job-matcher:embedding:",
	"redis.ttl":                     24 * time.Hour,
	"embedding.enabled":             false,
	"embedding.base_url":            embedding.DefaultBaseURL,
	"embedding.api_key":             "",
	"embedding.model":               embedding.DefaultModel,
	"embedding.dimensions":          0,
	"embedding.timeout":             embedding.DefaultTimeout,
	"embedding.requests_per_second": 5.0,
	"embedding.burst":               5,
	"lexical.fallback":              true,
	"llm.api_key":                   "",
	"llm.ner_enabled":               false,
	"llm.timeout":                   30 * time.Second,
	"llm.chat_max_tokens":           500,
	"skills.vocabulary_file":        "",
	"recommend.workers":             0,
	"recommend.default_timeout":     time.Duration(0),
	"recommend.max_pool":            0,
	"rate_limit.enabled":            true,
	"rate_limit.limit":              120,
	"rate_limit.window":             time.Minute,
	"rate_limit.burst":              20,
	"rate_limit.whitelist":          []string{},
	"log.json":                      false,
	"log.debug":                     false,
}

// aliases are conventional variable names accepted alongside the prefixed ones
var aliases = map[string]string{
	"database.url":      "DATABASE_URL",
	"redis.addr":        "REDIS_ADDR",
	"embedding.api_key": "OPENAI_API_KEY",
	"llm.api_key":       "GEMINI_API_KEY",
}

// New returns a viper instance carrying the defaults and environment bindings.
// Callers may bind flags to it before Load.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range aliases {
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}
	return v
}

// Load reads the optional config file at path into v, then decodes and validates the result.
// Environment variables take precedence over the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'server.port' must be between 1 and 65535"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("config error: 'server.max_body_bytes' must be positive"))
	}
	if c.Embedding.Enabled && c.Embedding.APIKey == "" {
		errs = append(errs, fmt.Errorf("config error: 'embedding.api_key' is required when embeddings are enabled"))
	}
	if c.Embedding.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("config error: 'embedding.requests_per_second' must be non-negative"))
	}
	if c.LLM.NEREnabled && c.LLM.APIKey == "" {
		errs = append(errs, fmt.Errorf("config error: 'llm.api_key' is required when entity recognition is enabled"))
	}
	if c.Recommend.Workers < 0 || c.Recommend.MaxPool < 0 || c.Recommend.DefaultTimeout < 0 {
		errs = append(errs, fmt.Errorf("config error: 'recommend' values must be non-negative"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, fmt.Errorf("config error: 'rate_limit.limit' and 'rate_limit.window' must be positive when enabled"))
	}
	return errors.Join(errs...)
}
