package memory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheKV is an in-process TTL store implementing store.KV. It serves as the
// fallback tier for slot state when redis is unreachable, and as the primary
// tier in tests. Values round-trip through JSON so behavior matches the
// redis tier exactly.
type CacheKV struct {
	cache *cache.Cache
}

func NewCacheKV(defaultTTL time.Duration) *CacheKV {
	// Purge expired items every 10 minutes, same as the session cache this
	// replaced.
	return &CacheKV{cache: cache.New(defaultTTL, 10*time.Minute)}
}

func (c *CacheKV) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, found := c.cache.Get(key)
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw.([]byte), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CacheKV) SetJSON(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.cache.Set(key, data, ttl)
	return nil
}

func (c *CacheKV) Delete(_ context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

func (c *CacheKV) Expire(_ context.Context, key string, ttl time.Duration) error {
	raw, found := c.cache.Get(key)
	if !found {
		return nil
	}
	c.cache.Set(key, raw, ttl)
	return nil
}

func (c *CacheKV) Available(_ context.Context) bool {
	return true
}
