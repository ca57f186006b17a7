// Package cache holds recently scraped results so repeat requests for the
// same page can skip the network entirely. Lookup is opt-in per request via
// the max_age field.
package cache

import (
	"sync"
	"time"

	"github.com/gistworks/skim/models"
)

const (
	sweepEvery  = 5 * time.Minute
	sweepMaxAge = time.Hour
)

// Key identifies one cacheable rendering of a page. Different formats or
// extraction modes of the same URL never alias each other.
type Key struct {
	URL    string
	Format string
	Mode   string
}

type entry struct {
	response *models.ScrapeResponse
	savedAt  time.Time
}

// Cache is an in-memory response cache. Entries are stored and returned as
// copies, so callers may freely mutate what they get back. Safe for
// concurrent use.
type Cache struct {
	mu         sync.RWMutex
	entries    map[Key]entry
	maxEntries int
}

// New creates a Cache holding at most maxEntries responses. A background
// goroutine drops entries older than an hour every five minutes.
func New(maxEntries int) *Cache {
	c := &Cache{
		entries:    make(map[Key]entry),
		maxEntries: maxEntries,
	}
	go c.sweep()
	return c
}

// Get returns a copy of the cached response when one exists and is younger
// than maxAgeMs milliseconds. maxAgeMs <= 0 disables the lookup.
func (c *Cache) Get(key Key, maxAgeMs int) (*models.ScrapeResponse, bool) {
	if maxAgeMs <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.savedAt) > time.Duration(maxAgeMs)*time.Millisecond {
		return nil, false
	}
	resp := *e.response
	return &resp, true
}

// Set stores a copy of resp under key. At capacity the oldest entry makes
// room.
func (c *Cache) Set(key Key, resp *models.ScrapeResponse) {
	stored := *resp

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = entry{response: &stored, savedAt: time.Now()}
}

func (c *Cache) evictOldestLocked() {
	var (
		oldest   Key
		oldestAt time.Time
		found    bool
	)
	for k, e := range c.entries {
		if !found || e.savedAt.Before(oldestAt) {
			oldest, oldestAt, found = k, e.savedAt, true
		}
	}
	if found {
		delete(c.entries, oldest)
	}
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-sweepMaxAge)
		c.mu.Lock()
		for k, e := range c.entries {
			if e.savedAt.Before(cutoff) {
				delete(c.entries, k)
			}
		}
		c.mu.Unlock()
	}
}
