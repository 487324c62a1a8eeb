// Package embedding calls an OpenAI-compatible embeddings endpoint, with rate limiting and a vector cache.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Defaults
const (
	DefaultBaseURL = "https://api.openai.com/v1/embeddings"
	DefaultModel   = "text-embedding-3-small"
	DefaultTimeout = 5 * time.Second
)

// Config for the embeddings endpoint
type Config struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	Dimensions int           `mapstructure:"dimensions"`
	Timeout    time.Duration `mapstructure:"timeout"`
	// RequestsPerSecond of zero disables rate limiting
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Client embeds texts over HTTP
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithCache stores vectors in cache and serves repeats from it
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates an embeddings client
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     zap.NewNop(),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type embeddingRequest struct {
	Input      []string `json:"input"`
	Model      string   `json:"model"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Embed returns one vector per text, in input order. Cached texts are not resent.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	var missing []int

	for i, text := range texts {
		if c.cache == nil {
			missing = append(missing, i)
			continue
		}
		vec, ok, err := c.cache.Get(ctx, cacheKey(c.cfg.Model, text))
		if err != nil {
			c.logger.Warn("embedding cache read failed", zap.Error(err))
		}
		if ok {
			out[i] = vec
			continue
		}
		missing = append(missing, i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	batch := make([]string, len(missing))
	for j, i := range missing {
		batch[j] = texts[i]
	}
	vectors, err := c.request(ctx, batch)
	if err != nil {
		return nil, err
	}

	for j, i := range missing {
		out[i] = vectors[j]
		if c.cache != nil {
			if err := c.cache.Set(ctx, cacheKey(c.cfg.Model, texts[i]), vectors[j]); err != nil {
				c.logger.Warn("embedding cache write failed", zap.Error(err))
			}
		}
	}
	return out, nil
}

// request bounds the limiter wait, the round trip and the body read by cfg.Timeout
func (c *Client) request(parent context.Context, texts []string) ([][]float64, error) {
	ctx, cancel := context.WithTimeout(parent, c.cfg.Timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.callError(ctx, parent, "rate limit wait", err)
		}
	}

	body, err := json.Marshal(embeddingRequest{Input: texts, Model: c.cfg.Model, Dimensions: c.cfg.Dimensions})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.callError(ctx, parent, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if parent.Err() != nil {
			return nil, parent.Err()
		}
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: "failed to read response", Cause: err}
	}

	var parsed embeddingResponse
	decodeErr := json.Unmarshal(data, &parsed)

	if resp.StatusCode != http.StatusOK {
		msg := string(data)
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: "malformed response", Cause: decodeErr}
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: parsed.Error.Message}
	}
	if len(parsed.Data) != len(texts) {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("got %d embeddings for %d texts", len(parsed.Data), len(texts)),
		}
	}

	vectors := make([][]float64, len(texts))
	for _, item := range parsed.Data {
		if item.Index < 0 || item.Index >= len(vectors) || vectors[item.Index] != nil {
			return nil, &ProviderError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("bad embedding index %d", item.Index)}
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}

// callError keeps the caller's own cancellation as is and reports
// everything else, including the per-call timeout, as a ProviderError.
func (c *Client) callError(ctx, parent context.Context, msg string, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if ctx.Err() != nil {
		msg = fmt.Sprintf("%s: timed out after %s", msg, c.cfg.Timeout)
	}
	return &ProviderError{Message: msg, Cause: err}
}
