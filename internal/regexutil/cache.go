package regexutil

import (
	"regexp"
	"sync"
)

type cacheKey struct {
	pattern string
	flags   string
}

// Cache memoizes compiled patterns for the life of the process. A pattern
// that fails to compile is cached as nil and never retried.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*regexp.Regexp
}

// NewCache creates an empty compiled-pattern cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*regexp.Regexp)}
}

// Get returns the compiled form of (pattern, flags), compiling at most
// once per distinct pair. Flags use Go's inline syntax (e.g. "i", "is").
// An invalid pattern yields nil on this and every subsequent call.
func (c *Cache) Get(pattern, flags string) *regexp.Regexp {
	key := cacheKey{pattern: pattern, flags: flags}

	c.mu.RLock()
	re, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return re
	}

	src := pattern
	if flags != "" {
		src = "(?" + flags + ")" + pattern
	}
	re, err := regexp.Compile(src)
	if err != nil {
		re = nil
	}

	c.mu.Lock()
	// Another goroutine may have raced us here; keep the first entry so
	// callers always observe the same instance.
	if existing, ok := c.entries[key]; ok {
		re = existing
	} else {
		c.entries[key] = re
	}
	c.mu.Unlock()
	return re
}

// Len reports the number of distinct (pattern, flags) pairs seen.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
