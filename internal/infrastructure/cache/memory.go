package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// cacheItem is a stored profile with its expiration.
type cacheItem struct {
	profile    *domain.FoodProfile
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory profile cache with TTL support.
// It implements domain.ProfileCache.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates an in-memory cache and starts a cleanup goroutine
// that removes expired entries every 10 minutes.
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves a profile, returning ErrCacheMiss for absent or expired keys.
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.FoodProfile, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.profile, nil
}

// Set stores a profile with the given TTL.
func (c *MemoryCache) Set(ctx context.Context, key string, profile *domain.FoodProfile, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		profile:    profile,
		expiration: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a key from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Size returns the current number of items in the cache (for debugging/monitoring).
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}

func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}
