package content

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// LookupCache is a redis-backed cache for supplier lookups. A nil
// *LookupCache is valid and always misses, so adapters never have to
// care whether redis is configured.
type LookupCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewLookupCache wraps a redis client. TTL bounds entry lifetime;
// upstream catalogs change rarely, so hours-long TTLs are fine.
func NewLookupCache(rdb *redis.Client, ttl time.Duration) *LookupCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &LookupCache{rdb: rdb, ttl: ttl, prefix: "lookup:"}
}

// Get unmarshals the cached value for key into v and reports a hit.
func (c *LookupCache) Get(ctx context.Context, key string, v any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("cache: corrupt entry %s dropped: %v", key, err)
		c.rdb.Del(ctx, c.prefix+key)
		return false
	}
	return true
}

// Set stores v under key. Failures are logged, never surfaced: the
// cache is an optimization, not a dependency.
func (c *LookupCache) Set(ctx context.Context, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
}
