package synth

// DefaultCacheSize bounds the per-frame memo.
const DefaultCacheSize = 1 << 15

// FrameCache memoizes glyphs within one frame keyed by (x, y, scroll row).
// It holds at most its capacity entries and evicts the oldest insertion.
type FrameCache struct {
	entries map[uint64]Glyph
	order   []uint64
	head    int
	size    int

	hits, misses int
}

// NewFrameCache returns a cache holding at most capacity entries.
func NewFrameCache(capacity int) *FrameCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &FrameCache{
		entries: make(map[uint64]Glyph, capacity),
		order:   make([]uint64, capacity),
	}
}

// CacheKey packs a cell coordinate and scroll row into one key.
func CacheKey(x, y, scrollRow int) uint64 {
	return uint64(uint16(x))<<48 | uint64(uint16(y))<<32 | uint64(uint32(scrollRow))
}

// Get returns the memoized glyph for key.
func (c *FrameCache) Get(key uint64) (Glyph, bool) {
	g, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return g, ok
}

// Put stores g, evicting the oldest entry when full.
func (c *FrameCache) Put(key uint64, g Glyph) {
	if _, ok := c.entries[key]; ok {
		c.entries[key] = g
		return
	}
	if c.size == len(c.order) {
		delete(c.entries, c.order[c.head])
		c.order[c.head] = key
		c.head = (c.head + 1) % len(c.order)
	} else {
		c.order[(c.head+c.size)%len(c.order)] = key
		c.size++
	}
	c.entries[key] = g
}

// Reset empties the cache. Called at the start of every frame.
func (c *FrameCache) Reset() {
	clear(c.entries)
	c.head, c.size = 0, 0
	c.hits, c.misses = 0, 0
}

// Len returns the number of entries.
func (c *FrameCache) Len() int { return c.size }

// Stats returns hit and miss counts since the last Reset.
func (c *FrameCache) Stats() (hits, misses int) { return c.hits, c.misses }
