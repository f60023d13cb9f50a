package alignment

import (
	"fmt"
	"math"
	"time"
)

// cacheKey identifies a memoized alignment check: the element plus its
// proposed position rounded to whole pixels. Using a fixed-layout key
// keeps the per-frame hot path free of string building.
type cacheKey struct {
	id   string
	x, y int32
}

func makeKey(id string, x, y float64) cacheKey {
	return cacheKey{id: id, x: int32(math.Round(x)), y: int32(math.Round(y))}
}

type cacheEntry struct {
	match    match
	storedAt time.Time
}

// resultCache memoizes guide matches for a short TTL and a bounded
// number of entries. A pointer that rests between frames produces
// identical checks; the cache answers those without rescanning every
// alignment point against every guide. Entries past the TTL are treated
// as misses and dropped; past the size cap the oldest entries are
// evicted first. Each live entry appears exactly once in order.
type resultCache struct {
	entries map[cacheKey]cacheEntry
	order   []cacheKey // insertion order, oldest first
	ttl     time.Duration
	maxSize int
	now     func() time.Time

	hits      int
	misses    int
	evictions int
}

func newResultCache(ttl time.Duration, maxSize int) *resultCache {
	return &resultCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

func (c *resultCache) get(key cacheKey) (match, bool) {
	e, ok := c.entries[key]
	if ok && c.now().Sub(e.storedAt) <= c.ttl {
		c.hits++
		return e.match, true
	}
	if ok {
		delete(c.entries, key)
		c.dropOrder(key)
	}
	c.misses++
	return match{}, false
}

func (c *resultCache) put(key cacheKey, m match) {
	if c.maxSize <= 0 {
		return
	}
	if _, ok := c.entries[key]; ok {
		c.dropOrder(key) // refreshed entries move to the back of the queue
	} else {
		for len(c.entries) >= c.maxSize && len(c.order) > 0 {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
			c.evictions++
		}
	}
	c.entries[key] = cacheEntry{match: m, storedAt: c.now()}
	c.order = append(c.order, key)
}

// dropOrder removes the first occurrence of key from the eviction queue.
func (c *resultCache) dropOrder(key cacheKey) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *resultCache) clear() {
	c.entries = make(map[cacheKey]cacheEntry)
	c.order = nil
}

// hitRate returns the fraction of lookups answered from the cache.
func (c *resultCache) hitRate() float64 {
	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total)
}

func (c *resultCache) String() string {
	return fmt.Sprintf("resultCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		len(c.entries), c.maxSize, c.hits, c.misses, c.hitRate()*100, c.evictions)
}
