// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package recommend

import (
	"sync"
	"time"

	"github.com/quarrylabs/materium/internal/models"
)

// resultCache is a TTL-bounded cache of ranked results keyed by the
// query hash. Entries are invalidated wholesale whenever any
// component retrains.
type resultCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	max     int
}

type cacheEntry struct {
	results   []models.RankedResult
	expiresAt time.Time
}

func newResultCache(ttl time.Duration, max int) *resultCache {
	if max <= 0 {
		max = 256
	}
	return &resultCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		max:     max,
	}
}

func (c *resultCache) get(key string) ([]models.RankedResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}

	out := make([]models.RankedResult, len(e.results))
	copy(out, e.results)
	return out, true
}

func (c *resultCache) put(key string, results []models.RankedResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.max {
		c.evictLocked()
	}

	stored := make([]models.RankedResult, len(results))
	copy(stored, results)
	c.entries[key] = cacheEntry{
		results:   stored,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// evictLocked drops expired entries, then the soonest-to-expire entry
// if the cache is still full.
func (c *resultCache) evictLocked() {
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.max {
		return
	}

	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey = k
			oldest = e.expiresAt
		}
	}
	delete(c.entries, oldestKey)
}

func (c *resultCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
