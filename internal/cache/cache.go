package cache

import "sync"

// Cache is a generic thread-safe LRU cache whose entries carry the stamp of
// the frame that last used them. Entries are evicted either when the soft
// limit is exceeded or explicitly by ExpireBefore.
//
// Stamps passed to Get, Set and GetOrCreate must be non-decreasing; the
// recency list then doubles as a stamp-ordered list.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*cacheEntry[K, V]
	lru       *lruList[K]
	softLimit int

	hits      uint64
	misses    uint64
	evictions uint64
}

// cacheEntry holds a cached value with the stamp of its last use.
type cacheEntry[K comparable, V any] struct {
	value V
	stamp uint64
	node  *lruNode[K]
}

// New creates a new cache with the given soft limit.
// A softLimit of 0 means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*cacheEntry[K, V]),
		lru:       newLRUList[K](),
		softLimit: softLimit,
	}
}

// Get retrieves a value and marks it used at stamp.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K, stamp uint64) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.touch(entry, stamp)
	return entry.value, true
}

// Set stores a value used at stamp, replacing any previous value.
// If the cache exceeds softLimit after insertion, oldest entries are evicted.
func (c *Cache[K, V]) Set(key K, value V, stamp uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.set(key, value, stamp)
}

// GetOrCreate returns the cached value or creates it, marking it used at
// stamp either way. create is called under lock.
func (c *Cache[K, V]) GetOrCreate(key K, stamp uint64, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.hits++
		c.touch(entry, stamp)
		return entry.value
	}
	c.misses++

	value := create()
	c.set(key, value, stamp)
	return value
}

// DeleteFunc removes every entry whose key satisfies del and returns the
// number removed.
func (c *Cache[K, V]) DeleteFunc(del func(K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, entry := range c.entries {
		if del(key) {
			c.lru.Remove(entry.node)
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// ExpireBefore removes every entry last used before stamp and returns the
// number removed.
func (c *Cache[K, V]) ExpireBefore(stamp uint64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for {
		key, ok := c.lru.Oldest()
		if !ok || c.entries[key].stamp >= stamp {
			break
		}
		c.lru.RemoveOldest()
		delete(c.entries, key)
		n++
	}
	c.evictions += uint64(n)
	return n
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.softLimit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// touch marks an entry used at stamp. Caller must hold c.mu.
func (c *Cache[K, V]) touch(entry *cacheEntry[K, V], stamp uint64) {
	if stamp > entry.stamp {
		entry.stamp = stamp
	}
	c.lru.MoveToFront(entry.node)
}

// set inserts or replaces an entry. Caller must hold c.mu.
func (c *Cache[K, V]) set(key K, value V, stamp uint64) {
	if entry, ok := c.entries[key]; ok {
		entry.value = value
		c.touch(entry, stamp)
		return
	}
	c.entries[key] = &cacheEntry[K, V]{
		value: value,
		stamp: stamp,
		node:  c.lru.PushFront(key),
	}

	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
}

// evictOldest removes least recently used entries until the cache is at
// three quarters of its soft limit. Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	targetSize := max(c.softLimit*3/4, 1)
	for len(c.entries) > targetSize {
		key, ok := c.lru.RemoveOldest()
		if !ok {
			return
		}
		delete(c.entries, key)
		c.evictions++
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the soft limit.
	Capacity int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
	// HitRate is the cache hit rate 0.0 to 1.0.
	HitRate float64
	// Evictions is the number of entries removed by the soft limit or by
	// ExpireBefore.
	Evictions uint64
}
