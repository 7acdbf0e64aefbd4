package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

const defaultCacheTTL = 15 * time.Minute

// cacheEntry represents a cached model reply.
type cacheEntry struct {
	expiry time.Time
	reply  string
}

// replyCache provides thread-safe caching of replies keyed by image digest.
// Expired entries are dropped lazily on access and on insert.
type replyCache struct {
	entries map[string]cacheEntry
	now     func() time.Time
	ttl     time.Duration
	mu      sync.Mutex
}

// newReplyCache creates a new cache with the specified TTL. A negative TTL
// disables caching.
func newReplyCache(ttl time.Duration) *replyCache {
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	return &replyCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// imageKey identifies an image by MIME type and content.
func imageKey(mimeType string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(mimeType))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *replyCache) enabled() bool {
	return c.ttl > 0
}

// get retrieves a reply from the cache if it exists and hasn't expired.
func (c *replyCache) get(key string) (string, bool) {
	if !c.enabled() {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return "", false
	}
	if c.now().After(entry.expiry) {
		delete(c.entries, key)
		return "", false
	}
	return entry.reply, true
}

// set stores a reply in the cache.
func (c *replyCache) set(key, reply string) {
	if !c.enabled() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiry) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{reply: reply, expiry: now.Add(c.ttl)}
}

// clear removes all entries from the cache.
func (c *replyCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// size returns the number of entries in the cache.
func (c *replyCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
