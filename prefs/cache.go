package prefs

import "sync"

// ContentCache stores expensively-generated description text keyed by
// listing code only; it is deliberately unscoped by user. A hit
// short-circuits generation entirely, and entries are never invalidated.
//
// The cache only guards its map: callers must not hold it across the
// generation round trip. The pattern is Get, generate on miss, Put.
type ContentCache struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewContentCache creates an empty ContentCache.
func NewContentCache() *ContentCache {
	return &ContentCache{
		data: make(map[string]string),
	}
}

// Get returns the cached text for a listing code.
func (c *ContentCache) Get(code string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.data[code]
	return text, ok
}

// Put stores generated text, unconditionally overwriting.
func (c *ContentCache) Put(code, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[code] = text
}

// Len returns the number of cached descriptions.
func (c *ContentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
