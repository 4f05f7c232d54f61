// Package cache holds read results (comment lists, feeds, counts) so views
// do not hit the store on every render, and invalidates them after
// mutations. Invalidation fans out over NATS so every instance drops the
// same keys.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// InvalidateSubject carries cache keys to drop, one key per message. The
// literal payload "ALL" flushes everything.
const InvalidateSubject = "social.cache.invalidate"

// Cache is the minimal read/write interface for serving cached views.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, v any)
	Delete(key string)
}

type item struct {
	val       any
	expiresAt time.Time
}

// TTLCache is an in-memory Cache with per-entry expiry and optional NATS
// key-level invalidation.
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
}

// NewTTLCache creates a TTLCache and subscribes to invalidation messages
// when nc is non-nil.
func NewTTLCache(ttl time.Duration, nc *nats.Conn) *TTLCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	c := &TTLCache{
		items: make(map[string]item),
		ttl:   ttl,
	}
	if nc != nil {
		_, _ = nc.Subscribe(InvalidateSubject, func(m *nats.Msg) {
			key := string(m.Data)
			if key == "" || strings.EqualFold(key, "ALL") {
				c.mu.Lock()
				c.items = make(map[string]item)
				c.mu.Unlock()
				return
			}
			c.Delete(key)
		})
	}
	return c
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(it.expiresAt) {
		c.mu.Lock()
		if cur, ok2 := c.items[key]; ok2 && time.Now().After(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return it.val, true
}

func (c *TTLCache) Set(key string, v any) {
	c.mu.Lock()
	c.items[key] = item{val: v, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}
