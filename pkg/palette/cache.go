package palette

import "sync"

// Cache memoizes the palette derived for a prompt so repeated renders of
// the same text stay visually stable for the lifetime of a session.
//
// The cache is keyed by exact prompt text, including whitespace and case.
// On a hit the stored palette is returned without deriving anything; on a
// miss the derive function runs and its result is stored. The boolean
// reports whether the call was a hit.
type Cache interface {
	GetOrCreate(prompt string, derive func() Palette) (Palette, bool)
}

// MemoryCache is an in-memory, mutex-guarded Cache. It is unbounded and
// has no eviction: a session's palette set is small and must stay stable.
// Safe for concurrent use; the check-then-derive runs under the lock so a
// prompt's palette is derived at most once.
type MemoryCache struct {
	mu       sync.Mutex
	palettes map[string]Palette
}

// NewMemoryCache creates an empty in-memory palette cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{palettes: make(map[string]Palette)}
}

// GetOrCreate returns the cached palette for prompt, deriving and storing
// it on first use.
func (c *MemoryCache) GetOrCreate(prompt string, derive func() Palette) (Palette, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.palettes[prompt]; ok {
		return p, true
	}
	p := derive()
	c.palettes[prompt] = p
	return p, false
}

// Len reports the number of cached palettes.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.palettes)
}

// NullCache never stores anything; every call derives a fresh palette.
// Useful for testing and for callers that want cache-free behavior.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() *NullCache {
	return &NullCache{}
}

// GetOrCreate always derives and reports a miss.
func (c *NullCache) GetOrCreate(prompt string, derive func() Palette) (Palette, bool) {
	return derive(), false
}

// Ensure implementations satisfy Cache.
var (
	_ Cache = (*MemoryCache)(nil)
	_ Cache = (*NullCache)(nil)
)
