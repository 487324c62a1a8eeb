package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// EndpointConfig overrides the default limit for one route
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // requests per window; zero means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultEndpointConfigs puts the batch and LLM routes on tighter limits than plain scoring
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/health", Method: http.MethodGet, Limit: 0},
		{Path: "/recommendations/", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/market/analyze", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/ai/chat", Method: http.MethodPost, Limit: 20, Window: time.Minute, Burst: 3},
	}
}

// MatchEndpoint returns the configuration for a request, trying exact paths before prefixes.
// It returns nil when the default limit applies.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}

// ParseList turns a list of client identifiers into a set
func ParseList(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			out[id] = true
		}
	}
	return out
}
