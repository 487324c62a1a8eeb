package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores vectors by key
type Cache interface {
	// Get returns the vector for key; ok is false on a miss
	Get(ctx context.Context, key string) (vec []float64, ok bool, err error)
	Set(ctx context.Context, key string, vec []float64) error
}

// cacheKey identifies a text under a model
func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// MemoryCache is an in-process Cache
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]float64
}

// NewMemoryCache creates an empty in-process cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]float64)}
}

// Get returns a copy of the cached vector
func (m *MemoryCache) Get(_ context.Context, key string) ([]float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vec, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]float64(nil), vec...), true, nil
}

// Set stores a copy of vec
func (m *MemoryCache) Set(_ context.Context, key string, vec []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]float64(nil), vec...)
	return nil
}

// Len returns the number of cached vectors
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// RedisCache keeps vectors in Redis as JSON under a key prefix
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache wraps client. A zero ttl keeps entries forever.
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

// Get loads a vector; a missing key is a miss, not an error
func (r *RedisCache) Get(ctx context.Context, key string) ([]float64, bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, false, fmt.Errorf("decode cached vector: %w", err)
	}
	return vec, true, nil
}

// Set stores a vector with the cache TTL
func (r *RedisCache) Set(ctx context.Context, key string, vec []float64) error {
	data, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("encode vector: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
