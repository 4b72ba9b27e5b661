package jitcalc

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Cache memoizes compiled functions by their source text, so hot
// expressions pay the parse and code generation cost once. It is safe for
// concurrent use.
//
// Cached functions are owned by the cache: do not Close a function
// obtained from Get. Close the cache itself to release all of them.
type Cache struct {
	mu      sync.Mutex
	config  *Config
	entries map[uint64][]*cacheEntry // distinct sources sharing a hash coexist
	closed  bool
}

type cacheEntry struct {
	source string
	fn     *Compiled
}

// NewCache creates an empty cache. If config is nil, default
// configuration is used for parsing and compilation.
func NewCache(config *Config) *Cache {
	return &Cache{
		config:  config,
		entries: make(map[uint64][]*cacheEntry),
	}
}

// Get returns the compiled function for src, compiling and caching it on
// first use. Parse and compile errors are returned as from Parse and
// Function.Compile and are not cached.
func (c *Cache) Get(src string) (*Compiled, error) {
	key := xxhash.Sum64String(src)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if e := lookup(c.entries[key], src); e != nil {
		c.mu.Unlock()
		return e.fn, nil
	}
	c.mu.Unlock()

	// Compile outside the lock; a racing Get for the same source may
	// compile twice, with one result kept.
	fn, err := Parse(src, c.config)
	if err != nil {
		return nil, err
	}
	compiled, err := fn.Compile()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		compiled.Close()
		return nil, ErrClosed
	}
	if e := lookup(c.entries[key], src); e != nil {
		compiled.Close()
		return e.fn, nil
	}
	c.entries[key] = append(c.entries[key], &cacheEntry{source: src, fn: compiled})
	return compiled, nil
}

// lookup finds the entry for src in one hash bucket. The source text is
// always compared, so a hash collision never serves the wrong function.
func lookup(bucket []*cacheEntry, src string) *cacheEntry {
	for _, e := range bucket {
		if e.source == src {
			return e
		}
	}
	return nil
}

// Len returns the number of cached functions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, bucket := range c.entries {
		n += len(bucket)
	}
	return n
}

// Close releases every cached function's executable memory and marks the
// cache closed. Further Get calls fail with ErrClosed. The first release
// error is returned; all functions are released regardless.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var first error
	for _, bucket := range c.entries {
		for _, e := range bucket {
			if err := e.fn.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	c.entries = nil
	return first
}
