package engine

import (
	"sync"

	"github.com/yourusername/sbgengine/internal/positionid"
)

// Cache constants
const (
	DefaultCacheSize = 1 << 14 // 16K entries; the variant has few reachable positions
	MaxCacheSize     = 1 << 24
)

// CacheEntry stores the legal plays for one (position, side, roll)
type CacheEntry struct {
	Key      positionid.PositionKey
	Context  int32 // Side and roll, see MakePlayContext
	Plays    []Play
	occupied bool
}

// PlayCache is a thread-safe legal-play cache.
// Uses a two-way associative cache with MurmurHash3-based indexing
type PlayCache struct {
	entries  []cacheNode
	size     uint32
	hashMask uint32

	// Statistics
	lookups uint64
	hits    uint64
	adds    uint64

	mu sync.RWMutex
}

// cacheNode holds primary and secondary entries for two-way associative cache
type cacheNode struct {
	primary   CacheEntry
	secondary CacheEntry
}

// NewPlayCache creates a new play cache with the given size
// Size will be adjusted to the nearest power of 2
func NewPlayCache(size uint32) *PlayCache {
	if size < 2 {
		size = 2
	}
	if size > MaxCacheSize {
		size = MaxCacheSize
	}

	// Find smallest power of 2 >= size
	p := uint32(1)
	for p < size {
		p <<= 1
	}
	size = p

	return &PlayCache{
		entries:  make([]cacheNode, size/2),
		size:     size,
		hashMask: (size / 2) - 1,
	}
}

// Flush clears all entries from the cache
func (c *PlayCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.entries {
		c.entries[i] = cacheNode{}
	}
	c.lookups = 0
	c.hits = 0
	c.adds = 0
}

// hash computes the slot for a cache entry using MurmurHash3-style mixing
func (c *PlayCache) hash(key positionid.PositionKey, context int32) uint32 {
	const c1 = 0xcc9e2d51
	const c2 = 0x1b873593

	h := uint32(0)

	mix := func(k uint32) {
		k *= c1
		k = (k << 15) | (k >> 17)
		k *= c2

		h ^= k
		h = (h << 13) | (h >> 19)
		h = h*5 + 0xe6546b64
	}
	for _, k := range key.Data {
		mix(k)
	}
	mix(uint32(context))

	// Finalization
	h ^= 16
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16

	return h & c.hashMask
}

func (e *CacheEntry) matches(key positionid.PositionKey, context int32) bool {
	return e.occupied && e.Key.Data == key.Data && e.Context == context
}

// Lookup returns a copy of the cached plays and true on a hit.
func (c *PlayCache) Lookup(key positionid.PositionKey, context int32) ([]Play, bool) {
	slot := c.hash(key, context)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lookups++
	node := &c.entries[slot]

	if node.primary.matches(key, context) {
		c.hits++
		return clonePlays(node.primary.Plays), true
	}
	if node.secondary.matches(key, context) {
		c.hits++
		return clonePlays(node.secondary.Plays), true
	}
	return nil, false
}

// Add stores plays for the key, demoting the slot's primary entry.
func (c *PlayCache) Add(key positionid.PositionKey, context int32, plays []Play) {
	slot := c.hash(key, context)

	c.mu.Lock()
	defer c.mu.Unlock()

	node := &c.entries[slot]
	node.secondary = node.primary
	node.primary = CacheEntry{
		Key:      key,
		Context:  context,
		Plays:    clonePlays(plays),
		occupied: true,
	}

	c.adds++
}

// Stats returns cache statistics
func (c *PlayCache) Stats() (lookups, hits, adds uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookups, c.hits, c.adds
}

// HitRate returns the cache hit rate as a percentage
func (c *PlayCache) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lookups == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.lookups) * 100
}

// MakePlayContext encodes the side and roll into a cache context key.
func MakePlayContext(side Side, roll Roll) int32 {
	// Bit layout:
	// Bit 0: side
	// Bits 1-4: first die
	// Bits 5-8: second die
	return int32(side&0x1) | int32(roll[0]&0xF)<<1 | int32(roll[1]&0xF)<<5
}

func clonePlays(plays []Play) []Play {
	if plays == nil {
		return nil
	}
	out := make([]Play, len(plays))
	for i, p := range plays {
		out[i] = p.Clone()
	}
	return out
}
