// Package engine assembles the scoring components from configuration.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/embedding"
	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/matching"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/recommend"
	"github.com/jonathan/job-matcher/internal/similarity"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
)

// Engine holds the shared, read-only scoring components
type Engine struct {
	Vocabulary *skills.Vocabulary
	Scorer     *matching.Scorer
	Pipeline   *recommend.Pipeline
	Weights    types.Weights
	// LLM is nil when no API key is configured
	LLM       llm.Client
	Recommend config.RecommendConfig

	closers []func() error
}

// Build validates the scoring configuration and wires the components. Optional
// providers (Gemini, embeddings, Redis) are only created when configured.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{Weights: ranking.DefaultWeights(), Recommend: cfg.Recommend}
	if err := ranking.ValidateWeights(e.Weights); err != nil {
		return nil, err
	}

	vocab := skills.DefaultVocabulary()
	if path := cfg.Skills.VocabularyFile; path != "" {
		loaded, err := skills.LoadVocabulary(path)
		if err != nil {
			return nil, err
		}
		vocab = loaded
		logger.Info("loaded skill vocabulary", zap.String("path", path), zap.Int("terms", len(vocab.Names())))
	}
	e.Vocabulary = vocab

	if cfg.LLM.APIKey != "" {
		llmCfg := llm.DefaultConfig()
		if cfg.LLM.Timeout > 0 {
			llmCfg.Timeout = cfg.LLM.Timeout
		}
		if cfg.LLM.ChatMaxTokens > 0 {
			llmCfg.ChatMaxTokens = cfg.LLM.ChatMaxTokens
		}
		client, err := llm.NewClient(ctx, llmCfg, cfg.LLM.APIKey)
		if err != nil {
			return nil, err
		}
		e.LLM = client
		e.closers = append(e.closers, client.Close)
	}

	extractorOpts := []skills.Option{skills.WithLogger(logger)}
	if cfg.LLM.NEREnabled {
		if e.LLM == nil {
			return nil, &skills.ConfigurationError{Message: "entity recognition requires an LLM API key"}
		}
		extractorOpts = append(extractorOpts, skills.WithEntityRecognizer(skills.NewLLMRecognizer(e.LLM)))
	}
	extractor := skills.NewExtractor(vocab, extractorOpts...)

	scorerOpts := []matching.Option{matching.WithLogger(logger)}
	if cfg.Embedding.Enabled {
		strategy, err := e.embeddingStrategy(ctx, cfg, logger)
		if err != nil {
			_ = e.Close()
			return nil, err
		}
		scorerOpts = append(scorerOpts, matching.WithLexicalStrategy(strategy))
	}
	e.Scorer = matching.NewScorer(extractor, scorerOpts...)

	e.Pipeline = recommend.NewPipeline(e.Scorer,
		recommend.WithWorkers(cfg.Recommend.Workers),
		recommend.WithLogger(logger))
	return e, nil
}

func (e *Engine) embeddingStrategy(ctx context.Context, cfg *config.Config, logger *zap.Logger) (similarity.Strategy, error) {
	var cache embedding.Cache = embedding.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		e.closers = append(e.closers, rdb.Close)
		cache = embedding.NewRedisCache(rdb, cfg.Redis.Prefix, cfg.Redis.TTL)
	}

	client, err := embedding.NewClient(cfg.Embedding.Config,
		embedding.WithCache(cache),
		embedding.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	strategy := similarity.FallbackStrategy{
		Primary: similarity.EmbeddingStrategy{Embedder: client},
		Logger:  logger,
	}
	if cfg.Lexical.Fallback {
		strategy.Secondary = similarity.TFIDFStrategy{}
	}
	return strategy, nil
}

// RecommendOptions fills unset request options from the configured defaults
func (e *Engine) RecommendOptions(opts recommend.Options) recommend.Options {
	if opts.MaxPool == 0 {
		opts.MaxPool = e.Recommend.MaxPool
	}
	if opts.Timeout == 0 {
		opts.Timeout = e.Recommend.DefaultTimeout
	}
	return opts
}

// Close releases provider connections
func (e *Engine) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}
