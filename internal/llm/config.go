// Package llm wraps the generative model used for skill entity recognition and the career chat assistant.
package llm

import "time"

// ModelTier selects a model by capability
type ModelTier string

const (
	// TierLite serves short structured calls such as entity recognition
	TierLite ModelTier = "lite"
	// TierStandard serves conversational replies
	TierStandard ModelTier = "standard"
)

// Provider names an LLM backend
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Defaults for the chat assistant
const (
	DefaultChatMaxTokens = 500
	DefaultTimeout       = 30 * time.Second
	defaultTemperature   = 0.1
	chatTemperature      = 0.7
)

// Config holds model selection and generation limits
type Config struct {
	Provider      Provider
	Models        map[ModelTier]string
	ChatMaxTokens int
	Timeout       time.Duration
}

// DefaultConfig returns the Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		ChatMaxTokens: DefaultChatMaxTokens,
		Timeout:       DefaultTimeout,
	}
}

// GetModel returns the model for a tier, falling back to standard then lite.
// Empty means nothing is configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with tier bound to model
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := *c
	next.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return &next
}
