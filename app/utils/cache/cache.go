package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProductCache is a best-effort read-through cache for product listings.
// A nil client disables every operation, so callers never have to branch
// on whether Redis is configured.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl}
}

func (c *ProductCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *ProductCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}

	return true
}

func (c *ProductCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.rdb == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("cache: failed to set %s: %v", key, err)
	}
}

// InvalidateSubtrees drops the cached listing of every category slug given.
// Product and category writes call this so stale listings never outlive
// their TTL by more than one write.
func (c *ProductCache) InvalidateSubtrees(ctx context.Context, slugs ...string) {
	if c == nil || c.rdb == nil || len(slugs) == 0 {
		return
	}

	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		keys = append(keys, SubtreeKey(s))
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: failed to invalidate %v: %v", keys, err)
	}
}

func SubtreeKey(categorySlug string) string {
	return "products:subtree:" + categorySlug
}
