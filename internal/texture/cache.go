package texture

import (
	"context"
	"image"
	"sync"
)

// Cache is a concurrency-safe texture cache in front of another Loader.
// Loads run on background goroutines, so lookups are locked.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]*cacheEntry
	loader Loader
}

type cacheEntry struct {
	img *image.NRGBA
}

// NewCache creates a new texture cache backed by the given loader.
func NewCache(loader Loader) *Cache {
	return &Cache{
		items:  make(map[string]*cacheEntry),
		loader: loader,
	}
}

// Load returns the cached texture for src, loading it on a miss. Failures
// are not cached so a later request retries.
func (c *Cache) Load(ctx context.Context, src string) (*image.NRGBA, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[src]; exists {
		c.mu.RUnlock()
		return entry.img, nil
	}
	c.mu.RUnlock()

	// Slow path: fetch and decode
	img, err := c.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[src]; exists {
		return entry.img, nil
	}
	c.items[src] = &cacheEntry{img: img}
	return img, nil
}

// Len returns the number of cached textures.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
