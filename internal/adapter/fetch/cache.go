package fetch

import (
	"context"
	"sync"

	"github.com/couchcryptid/grib-scan-etl/internal/observability"
	"github.com/couchcryptid/grib-scan-etl/internal/pipeline"
)

// CachedFetcher wraps a Fetcher with an in-memory LRU cache keyed by URL.
// Model-run URLs repeat across scan requests (the same file referenced by
// several collectors), and whole files are cached, so capacity stays small.
type CachedFetcher struct {
	inner   pipeline.Fetcher
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedFetcher creates a cache decorator around a fetcher.
func NewCachedFetcher(inner pipeline.Fetcher, maxEntries int, metrics *observability.Metrics) *CachedFetcher {
	return &CachedFetcher{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// Fetch returns the cached bytes for url, downloading on a miss.
func (c *CachedFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if buf, ok := c.cache.get(url); ok {
		c.metrics.FetchCache.WithLabelValues("hit").Inc()
		return buf, nil
	}
	c.metrics.FetchCache.WithLabelValues("miss").Inc()

	buf, err := c.inner.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty bodies so transient empty responses can be retried.
	if len(buf) > 0 {
		c.cache.put(url, buf)
	}
	return buf, nil
}

// lruCache is a simple thread-safe LRU cache for downloaded file bytes.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []byte
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
