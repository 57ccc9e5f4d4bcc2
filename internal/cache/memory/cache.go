package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache - in-memory реализация cache.Cache с фоновой очисткой.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func New() *Cache {
	return NewWithContext(context.Background())
}

func NewWithContext(ctx context.Context) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
	}
	go c.cleanup(ctx)
	return c
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// cleanup выкидывает просроченные записи раз в минуту.
func (c *Cache) cleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}
