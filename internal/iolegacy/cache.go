package iolegacy

import (
	"sync"

	"github.com/acdh-oeaw/minedb/pkg/legacy"
)

// Cache memoizes idempotent API lookups for the lifetime of one import
// run, keyed by URL. The legacy API is read-only and immutable during
// a run, so entries never expire. The cache is created by the caller
// and injected into the client; there is no hidden process-wide state.
type Cache struct {
	mu      sync.Mutex
	objects map[string]legacy.Payload
}

// NewCache creates an empty lookup cache.
func NewCache() *Cache {
	return &Cache{objects: make(map[string]legacy.Payload)}
}

func (c *Cache) get(url string) (legacy.Payload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	obj, ok := c.objects[url]
	return obj, ok
}

func (c *Cache) put(url string, obj legacy.Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[url] = obj
}

// Len returns the number of cached lookups.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.objects)
}
