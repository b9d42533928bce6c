package templates

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mytheresa/catalog-editor/logger"
)

// Cache stores encoded template payloads by key. Misses and backend
// failures both report ok=false; the store then goes upstream.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
}

type memoryItem struct {
	val     []byte
	expires time.Time
}

// MemoryCache is a process-local TTL cache.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]memoryItem), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !it.expires.IsZero() && !c.now().Before(it.expires) {
		delete(c.items, key)
		return nil, false
	}
	return it.val, true
}

func (c *MemoryCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.items[key] = memoryItem{val: val, expires: exp}
}

// RedisCache shares template payloads between editor processes.
type RedisCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewRedisCache(addr string, log *logger.Logger) (*RedisCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{log: log.With("service", "TemplateRedisCache"), rdb: rdb}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("redis get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return b, true
}

func (c *RedisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		c.log.Warn("redis set failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// Tiered consults caches in order and backfills the faster tiers on a hit.
type Tiered struct {
	Caches      []Cache
	BackfillTTL time.Duration
}

func (t Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	for i, c := range t.Caches {
		if val, ok := c.Get(ctx, key); ok {
			for j := 0; j < i; j++ {
				t.Caches[j].Set(ctx, key, val, t.BackfillTTL)
			}
			return val, true
		}
	}
	return nil, false
}

func (t Tiered) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	for _, c := range t.Caches {
		c.Set(ctx, key, val, ttl)
	}
}
