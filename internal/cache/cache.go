package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	platformconfig "github.com/marknest/api/internal/platform/config"
)

// Service is a minimal string cache used for resolved page metadata.
type Service interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// New builds a cache service from configuration. A disabled cache returns a
// no-op implementation so callers never branch on nil.
func New(cfg platformconfig.CacheConfig) Service {
	if !cfg.Enabled {
		return noopCache{}
	}
	if cfg.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.Database,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		return &redisCache{client: client, prefix: cfg.Prefix}
	}
	return NewMemoryCache(cfg.Prefix)
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string) (string, bool, error) { return "", false, nil }
func (noopCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}

type redisCache struct {
	client *redis.Client
	prefix string
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.RWMutex
	prefix  string
	entries map[string]memoryEntry
}

// NewMemoryCache creates an in-process cache. Expired entries are evicted
// lazily on read.
func NewMemoryCache(prefix string) Service {
	return &memoryCache{prefix: prefix, entries: make(map[string]memoryEntry)}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[c.prefix+key]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, c.prefix+key)
		c.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (c *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[c.prefix+key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}
