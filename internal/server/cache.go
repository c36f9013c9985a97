// SPDX-License-Identifier: MIT

package server

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// pruneEvery bounds how often Set sweeps expired entries.
const pruneEvery = 64

type cacheItem struct {
	data      []byte
	expiresAt time.Time
}

// Cache is a TTL cache of encoded responses keyed by the xxhash of the
// request body. A zero TTL disables it: Get always misses and Set is a no-op.
type Cache struct {
	mu    sync.RWMutex
	items map[uint64]cacheItem
	ttl   time.Duration
	sets  int
	now   func() time.Time
}

// NewCache creates a cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{items: make(map[uint64]cacheItem), ttl: ttl, now: time.Now}
}

// Key hashes a request body.
func Key(body []byte) uint64 { return xxhash.Sum64(body) }

// Get returns the unexpired entry for key.
func (c *Cache) Get(key uint64) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(item.expiresAt) {
		return nil, false
	}

	return item.data, true
}

// Set stores data under key until now+TTL.
func (c *Cache) Set(key uint64, data []byte) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.items[key] = cacheItem{data: data, expiresAt: now.Add(c.ttl)}
	c.sets++
	if c.sets%pruneEvery == 0 {
		for k, it := range c.items {
			if !now.Before(it.expiresAt) {
				delete(c.items, k)
			}
		}
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
