// Package netcache implements an in-memory HTTP response cache with
// TTL expiry and LRU eviction, bounded by total byte size. It never
// touches the network itself — it is consumed by a transport layer that
// has already fetched a response and wants to decide whether a later
// request for the same URL can be served from memory.
package netcache

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Config configures a Cache's size and freshness policy.
type Config struct {
	// MaxSizeBytes bounds the cache's total resident body size.
	MaxSizeBytes int64
	// DefaultTTL is used when a response carries no usable
	// Cache-Control directive.
	DefaultTTL time.Duration
	// RespectCacheControl, when true, lets response Cache-Control
	// headers (no-store, no-cache, max-age) override DefaultTTL.
	RespectCacheControl bool
}

// DefaultConfig returns the reference 50 MiB / 5 minute / honor-headers
// configuration.
func DefaultConfig() Config {
	return Config{
		MaxSizeBytes:        50 * 1024 * 1024,
		DefaultTTL:          5 * time.Minute,
		RespectCacheControl: true,
	}
}

// Key identifies a cacheable request. Only GET requests are cacheable.
type Key struct {
	URL    string
	Method string
}

// NewKey builds a Key for a GET request to url.
func NewKey(url string) Key {
	return Key{URL: url, Method: http.MethodGet}
}

// Entry is a cached HTTP response.
type Entry struct {
	Status    int
	Headers   http.Header
	Body      []byte
	CachedAt  time.Time
	ExpiresAt time.Time
	Size      int64
}

// IsExpired reports whether the entry's freshness lifetime has elapsed.
func (e Entry) IsExpired() bool {
	return !time.Now().Before(e.ExpiresAt)
}

// RemainingTTL returns how much freshness lifetime remains, floored at 0.
func (e Entry) RemainingTTL() time.Duration {
	d := time.Until(e.ExpiresAt)
	if d < 0 {
		return 0
	}
	return d
}

type cacheEntry struct {
	response     Entry
	lastAccessed time.Time
}

// Stats reports cache hit/miss/eviction counters.
type Stats struct {
	Hits             uint64
	Misses           uint64
	Evictions        uint64
	Insertions       uint64
	TotalBytesServed uint64
}

// HitRate returns Hits / (Hits + Misses), or 0 when no lookups occurred.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is an LRU+TTL bounded HTTP response cache. Safe for concurrent
// use by multiple goroutines.
type Cache struct {
	mu          sync.RWMutex
	entries     map[Key]*cacheEntry
	config      Config
	currentSize int64
	stats       Stats
	log         *zap.Logger
}

// New creates a Cache with the default configuration and a no-op logger.
func New() *Cache {
	return WithConfig(DefaultConfig(), zap.NewNop())
}

// WithConfig creates a Cache with custom configuration and logger. log
// may be zap.NewNop() to discard logging.
func WithConfig(cfg Config, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("memory cache initialized",
		zap.String("max_size", humanize.Bytes(uint64(cfg.MaxSizeBytes))),
		zap.Duration("default_ttl", cfg.DefaultTTL),
	)
	return &Cache{
		entries: make(map[Key]*cacheEntry),
		config:  cfg,
		log:     log,
	}
}

// Get returns a cached response for key, or (Entry{}, false) on a miss
// or expired entry. An expired entry is evicted as a side effect.
func (c *Cache) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		c.log.Debug("cache miss", zap.String("url", key.URL))
		return Entry{}, false
	}

	if entry.response.IsExpired() {
		c.log.Debug("cache entry expired", zap.String("url", key.URL))
		c.removeLocked(key, entry.response.Size)
		c.stats.Misses++
		return Entry{}, false
	}

	entry.lastAccessed = time.Now()
	c.stats.Hits++
	c.stats.TotalBytesServed += uint64(len(entry.response.Body))

	c.log.Debug("cache hit",
		zap.String("url", key.URL),
		zap.Int64("size", entry.response.Size),
		zap.Duration("remaining_ttl", entry.response.RemainingTTL()),
	)
	return entry.response, true
}

// Put stores response under key, evicting older entries by least-recent
// access if needed to stay within MaxSizeBytes. A response larger than
// half the cache's budget is rejected outright (it would immediately
// force out everything else).
func (c *Cache) Put(key Key, response Entry) {
	if response.Size > c.config.MaxSizeBytes/2 {
		c.log.Debug("response too large to cache",
			zap.String("url", key.URL), zap.Int64("size", response.Size))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictIfNeededLocked(response.Size)

	if old, exists := c.entries[key]; exists {
		c.currentSize -= old.response.Size
	}

	c.entries[key] = &cacheEntry{response: response, lastAccessed: time.Now()}
	c.currentSize += response.Size
	c.stats.Insertions++

	c.log.Debug("cached response", zap.String("url", key.URL), zap.Int64("size", response.Size))
}

// evictIfNeededLocked evicts least-recently-accessed entries until there
// is room for `needed` additional bytes. Caller must hold c.mu.
func (c *Cache) evictIfNeededLocked(needed int64) {
	if c.currentSize+needed <= c.config.MaxSizeBytes {
		return
	}

	byAccess := make([]agedEntry, 0, len(c.entries))
	for k, v := range c.entries {
		byAccess = append(byAccess, agedEntry{k, v.lastAccessed, v.response.Size})
	}
	sortByAccess(byAccess)

	var freed int64
	var removed []Key
	for _, a := range byAccess {
		if c.currentSize+needed-freed <= c.config.MaxSizeBytes {
			break
		}
		removed = append(removed, a.key)
		freed += a.size
	}

	for _, k := range removed {
		delete(c.entries, k)
	}
	c.currentSize -= freed
	c.stats.Evictions += uint64(len(removed))

	if len(removed) > 0 {
		c.log.Debug("evicted cache entries",
			zap.Int("evicted", len(removed)),
			zap.String("freed", humanize.Bytes(uint64(freed))),
		)
	}
}

// agedEntry pairs a cache key with its last-accessed time and size, for
// sorting eviction candidates.
type agedEntry struct {
	key      Key
	accessed time.Time
	size     int64
}

// sortByAccess sorts by ascending last-accessed time (oldest first),
// i.e. the classic LRU eviction order.
func sortByAccess(items []agedEntry) {
	for i := 1; i < len(items); i++ {
		j := i
		for j > 0 && items[j-1].accessed.After(items[j].accessed) {
			items[j-1], items[j] = items[j], items[j-1]
			j--
		}
	}
}

// removeLocked deletes key and adjusts currentSize. Caller must hold c.mu.
func (c *Cache) removeLocked(key Key, size int64) {
	delete(c.entries, key)
	c.currentSize -= size
}

// Remove evicts a specific entry, reporting whether it was present.
func (c *Cache) Remove(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeLocked(key, entry.response.Size)
	return true
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*cacheEntry)
	c.currentSize = 0
	c.log.Info("cache cleared")
}

// Size returns the current resident byte count.
func (c *Cache) Size() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentSize
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// IsEmpty reports whether the cache holds no entries.
func (c *Cache) IsEmpty() bool {
	return c.Len() == 0
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// PruneExpired removes all currently-expired entries and returns how
// many were removed.
func (c *Cache) PruneExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var expired []Key
	var freed int64
	for k, v := range c.entries {
		if !now.Before(v.response.ExpiresAt) {
			expired = append(expired, k)
			freed += v.response.Size
		}
	}
	for _, k := range expired {
		delete(c.entries, k)
	}
	c.currentSize -= freed

	if len(expired) > 0 {
		c.log.Debug("pruned expired entries",
			zap.Int("pruned", len(expired)),
			zap.String("freed", humanize.Bytes(uint64(freed))),
		)
	}
	return len(expired)
}

// ParseCacheControl derives a TTL override from a response's
// Cache-Control header. It returns (0, true) for no-store/no-cache
// (meaning "do not reuse"), (n, true) for max-age=n, and (0, false) when
// no recognized directive is present.
func ParseCacheControl(headers http.Header) (time.Duration, bool) {
	cc := headers.Get("Cache-Control")
	if cc == "" {
		return 0, false
	}

	if strings.Contains(cc, "no-store") || strings.Contains(cc, "no-cache") {
		return 0, true
	}

	for _, directive := range strings.Split(cc, ",") {
		directive = strings.TrimSpace(directive)
		if rest, ok := strings.CutPrefix(directive, "max-age="); ok {
			if secs, err := strconv.ParseUint(rest, 10, 64); err == nil {
				return time.Duration(secs) * time.Second, true
			}
		}
	}

	return 0, false
}
