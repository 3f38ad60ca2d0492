package cache

import (
	"slices"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultSize = 1024

// CachedQuery is a rendered statement ready to hand to a driver.
type CachedQuery struct {
	SQL  string
	Args []any
}

type Stats struct {
	Hits   uint64
	Misses uint64
}

// QueryCache maps a statement fingerprint to its rendering.
// Implementations are safe for concurrent use.
type QueryCache interface {
	Get(fingerprint uint64) (*CachedQuery, bool)
	Set(fingerprint uint64, q *CachedQuery)
	Len() int
	Purge()
	Stats() Stats
}

type lruQueryCache struct {
	cache  *lru.Cache[uint64, *CachedQuery]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewQueryCache returns an LRU bounded to size entries. A size of zero or
// less selects DefaultSize.
func NewQueryCache(size int) QueryCache {
	if size <= 0 {
		size = DefaultSize
	}
	c, _ := lru.New[uint64, *CachedQuery](size)
	return &lruQueryCache{cache: c}
}

// Get returns a copy of the cached entry, so callers may keep or modify the
// args slice freely.
func (c *lruQueryCache) Get(f uint64) (*CachedQuery, bool) {
	q, ok := c.cache.Get(f)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return &CachedQuery{SQL: q.SQL, Args: slices.Clone(q.Args)}, true
}

func (c *lruQueryCache) Set(f uint64, q *CachedQuery) {
	if q == nil {
		return
	}
	c.cache.Add(f, &CachedQuery{SQL: q.SQL, Args: slices.Clone(q.Args)})
}

func (c *lruQueryCache) Len() int {
	return c.cache.Len()
}

func (c *lruQueryCache) Purge() {
	c.cache.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
}

func (c *lruQueryCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
