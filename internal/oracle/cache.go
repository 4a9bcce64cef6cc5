package oracle

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/NikitaCOEUR/promptline/internal/derrors"
	"github.com/NikitaCOEUR/promptline/internal/logger"
)

// DefaultLookupTimeout bounds a single lookup
const DefaultLookupTimeout = 500 * time.Millisecond

// Entry is a resolved lookup
type Entry struct {
	Path       string
	Found      bool
	ResolvedAt time.Time
}

// Cache memoizes lookups for one session. Entries are never invalidated.
// Concurrent lookups of the same uncached word share one call to the Lookup.
// Failed or timed-out lookups count as "not found" and are not cached.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry

	lookup  Lookup
	group   singleflight.Group
	timeout time.Duration
	log     *logger.Logger
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithTimeout sets the per-lookup timeout
func WithTimeout(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) CacheOption {
	return func(c *Cache) {
		c.log = log.Component("oracle")
	}
}

// NewCache creates an empty cache in front of lookup
func NewCache(lookup Lookup, opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		lookup:  lookup,
		timeout: DefaultLookupTimeout,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cached returns a resolved answer without any I/O
func (c *Cache) Cached(word string) (exists bool, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[word]
	return entry.Found, ok
}

// Len returns the number of resolved words
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Prime records an answer without a lookup. An empty path means "not found".
func (c *Cache) Prime(word, path string) {
	c.store(word, path)
}

// IsCommand reports whether word resolves to a command
func (c *Cache) IsCommand(ctx context.Context, word string) bool {
	_, found := c.Which(ctx, word)
	return found
}

// Which returns the command location ("builtin" for builtins). Any failure
// or timeout resolves to not found.
func (c *Cache) Which(ctx context.Context, word string) (string, bool) {
	if word == "" || c.lookup == nil {
		return "", false
	}

	c.mu.RLock()
	entry, ok := c.entries[word]
	c.mu.RUnlock()
	if ok {
		return entry.Path, entry.Found
	}

	ch := c.group.DoChan(word, func() (interface{}, error) {
		// The shared lookup must not die with whichever caller started it
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		path, err := c.lookup.Which(lookupCtx, word)
		if err != nil {
			return "", derrors.NewOracleError(word, err)
		}
		if lookupCtx.Err() != nil {
			return "", derrors.NewOracleError(word, lookupCtx.Err())
		}
		c.store(word, path)
		return path, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			c.log.Debug().Str("command", word).Err(res.Err).Msg("Lookup failed, treating as not found")
			return "", false
		}
		path := res.Val.(string)
		return path, path != ""
	case <-ctx.Done():
		c.log.Debug().Str("command", word).Err(ctx.Err()).Msg("Lookup abandoned")
		return "", false
	}
}

func (c *Cache) store(word, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[word]; exists {
		return
	}
	c.entries[word] = Entry{Path: path, Found: path != "", ResolvedAt: time.Now()}
}
