package geolocation

import (
	"sync"
	"time"

	"eyecandy/internal/access/models"
)

type cachedLocation struct {
	location models.GeoLocation
	storedAt time.Time
}

// InMemoryCache keeps resolved locations per IP for a fixed TTL. Failures
// and unresolvable addresses are never cached.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cachedLocation
	ttl     time.Duration
	now     func() time.Time
}

func NewInMemoryCache(ttl time.Duration) *InMemoryCache {
	return &InMemoryCache{
		entries: make(map[string]cachedLocation),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Find returns a copy of the cached location for ip if it has not expired.
func (c *InMemoryCache) Find(ip string) (*models.GeoLocation, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	cached, ok := c.entries[ip]
	if !ok || c.now().Sub(cached.storedAt) >= c.ttl {
		return nil, false
	}
	loc := cached.location
	return &loc, true
}

func (c *InMemoryCache) Save(ip string, loc *models.GeoLocation) {
	if c.ttl <= 0 || loc == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ip] = cachedLocation{location: *loc, storedAt: c.now()}
}

// Purge drops expired entries and returns how many remain.
func (c *InMemoryCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for ip, cached := range c.entries {
		if now.Sub(cached.storedAt) >= c.ttl {
			delete(c.entries, ip)
		}
	}
	return len(c.entries)
}

func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
