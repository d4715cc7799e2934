package cache

import (
	"sync"
	"time"

	"faal-poster/internal/domain"
)

// MemoryCache is an in-memory preview cache with TTL support.
type MemoryCache struct {
	previews sync.Map
	ttl      time.Duration
	stop     chan struct{}
	once     sync.Once
}

// cacheEntry holds a rendered preview with expiration metadata.
type cacheEntry struct {
	png        []byte
	expiresAt  time.Time
	renderedAt time.Time
}

// NewMemoryCache creates a new in-memory cache with the specified TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	cache := &MemoryCache{ttl: ttl, stop: make(chan struct{})}
	go cache.cleanup()
	return cache
}

// NormalizedKey returns the cache key for a day: preview/{yyyy}/{mm}/{dd}
func NormalizedKey(date domain.LocalizedDate) string {
	return "preview/" + date.Key()
}

// Get retrieves the preview rendered for date.
// Returns the PNG and true if found and not expired, otherwise nil and false.
func (c *MemoryCache) Get(date domain.LocalizedDate) ([]byte, bool) {
	key := NormalizedKey(date)
	value, ok := c.previews.Load(key)
	if !ok {
		return nil, false
	}

	entry := value.(*cacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.previews.Delete(key)
		return nil, false
	}

	return entry.png, true
}

// Set stores the preview for date with the configured TTL.
func (c *MemoryCache) Set(date domain.LocalizedDate, png []byte) {
	now := time.Now()
	c.previews.Store(NormalizedKey(date), &cacheEntry{
		png:        png,
		expiresAt:  now.Add(c.ttl),
		renderedAt: now,
	})
}

// Close stops the cleanup goroutine.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// cleanup periodically removes expired entries from the cache.
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.previews.Range(func(key, value any) bool {
				if now.After(value.(*cacheEntry).expiresAt) {
					c.previews.Delete(key)
				}
				return true
			})
		}
	}
}
