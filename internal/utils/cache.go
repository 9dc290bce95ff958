package utils

import (
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem wraps cached data with its expiry time.
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// GlobalCache is a small TTL wrapper over an LRU cache. The comment handlers
// use it to keep assembled threads hot between writes.
type GlobalCache struct {
	lruCache *lru.Cache[string, CacheItem]
}

var cacheInstance *GlobalCache

func GetCache() *GlobalCache {
	if cacheInstance == nil {
		l, err := lru.New[string, CacheItem](500)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		cacheInstance = &GlobalCache{
			lruCache: l,
		}
	}
	return cacheInstance
}

func (c *GlobalCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get returns the cached value, evicting it if expired.
func (c *GlobalCache) Get(key string) (interface{}, bool) {
	item, ok := c.lruCache.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(item.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil, false
	}
	return item.Data, true
}

func (c *GlobalCache) Delete(key string) {
	c.lruCache.Remove(key)
}
