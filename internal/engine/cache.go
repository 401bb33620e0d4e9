package engine

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// cacheShards is the stripe count for the token cache's guarded map,
// trading a little memory for concurrent-write throughput under the
// single-writer-lock alternative.
const cacheShards = 16

// CacheKey identifies one cached romanization: a chunk's text plus the
// language hint and output shape it was romanized under.
type CacheKey struct {
	Text   string
	Lang   string
	Format int
}

// CacheEntry is a cached result. Edges are stored relative to the chunk's
// own start (offset 0); callers re-add the chunk's position in the parent
// string before using them.
type CacheEntry struct {
	Str   string
	Edges []*CacheEdge
}

// CacheEdge is a position-relative snapshot of a lattice.Edge, decoupling
// the cache from the lattice package's lifetime.
type CacheEdge struct {
	Start, End int
	Text       string
	Type       string
}

type cacheShard struct {
	mu sync.Mutex
	m  map[CacheKey]CacheEntry
}

// TokenCache is a fixed-capacity, sharded, mutex-guarded cache from
// (text, lang, format) to its romanization result. Once Capacity entries
// are stored, further writes are silently skipped; existing entries are
// never evicted.
type TokenCache struct {
	capacity int64
	size     int64
	shards   [cacheShards]*cacheShard
}

// NewTokenCache creates a cache holding at most capacity entries. A
// non-positive capacity disables caching entirely: Get always misses and
// Put is a no-op.
func NewTokenCache(capacity int) *TokenCache {
	tc := &TokenCache{capacity: int64(capacity)}
	for i := range tc.shards {
		tc.shards[i] = &cacheShard{m: make(map[CacheKey]CacheEntry)}
	}
	return tc
}

func (tc *TokenCache) shardFor(k CacheKey) *cacheShard {
	h := fnv.New32a()
	h.Write([]byte(k.Text))
	h.Write([]byte{0})
	h.Write([]byte(k.Lang))
	h.Write([]byte{0, byte(k.Format)})
	return tc.shards[h.Sum32()%cacheShards]
}

// Get returns the cached entry for k, if present.
func (tc *TokenCache) Get(k CacheKey) (CacheEntry, bool) {
	if tc == nil || tc.capacity <= 0 {
		return CacheEntry{}, false
	}
	s := tc.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[k]
	return e, ok
}

// Put stores k -> v unless the cache is disabled, already holds k, or is
// at capacity.
func (tc *TokenCache) Put(k CacheKey, v CacheEntry) {
	if tc == nil || tc.capacity <= 0 {
		return
	}
	s := tc.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[k]; exists {
		return
	}
	for {
		n := atomic.LoadInt64(&tc.size)
		if n >= tc.capacity {
			return
		}
		if atomic.CompareAndSwapInt64(&tc.size, n, n+1) {
			break
		}
	}
	s.m[k] = v
}
