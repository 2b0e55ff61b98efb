package netcache

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutGet(t *testing.T) {
	cache := New()
	key := NewKey("https://example.com/test.css")

	cache.Put(key, Entry{
		Status:    http.StatusOK,
		Body:      []byte("body content"),
		CachedAt:  time.Now(),
		ExpiresAt: time.Now().Add(300 * time.Second),
		Size:      12,
	})

	cached, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "body content", string(cached.Body))
}

func TestCacheExpiration(t *testing.T) {
	cache := New()
	key := NewKey("https://example.com/expired.css")

	cache.Put(key, Entry{
		Status:    http.StatusOK,
		Body:      []byte("expired"),
		CachedAt:  time.Now().Add(-10 * time.Second),
		ExpiresAt: time.Now().Add(-5 * time.Second),
		Size:      7,
	})

	_, ok := cache.Get(key)
	assert.False(t, ok)
}

func TestParseCacheControl(t *testing.T) {
	headers := http.Header{}
	headers.Set("Cache-Control", "max-age=3600")
	ttl, ok := ParseCacheControl(headers)
	require.True(t, ok)
	assert.Equal(t, 3600*time.Second, ttl)

	headers = http.Header{}
	headers.Set("Cache-Control", "no-store")
	ttl, ok = ParseCacheControl(headers)
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), ttl)

	headers = http.Header{}
	_, ok = ParseCacheControl(headers)
	assert.False(t, ok)
}

func TestCacheStats(t *testing.T) {
	cache := New()
	key := NewKey("https://example.com/stats.css")

	_, _ = cache.Get(key) // miss

	cache.Put(key, Entry{
		Status:    http.StatusOK,
		Body:      []byte("stats"),
		CachedAt:  time.Now(),
		ExpiresAt: time.Now().Add(300 * time.Second),
		Size:      5,
	})

	_, _ = cache.Get(key) // hit

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Insertions)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.InDelta(t, 0.5, stats.HitRate(), 0.0001)
}

func TestCacheRejectsOversizedResponse(t *testing.T) {
	cache := WithConfig(Config{MaxSizeBytes: 100, DefaultTTL: time.Minute, RespectCacheControl: true}, nil)
	key := NewKey("https://example.com/big.bin")

	cache.Put(key, Entry{
		Body:      make([]byte, 80),
		ExpiresAt: time.Now().Add(time.Minute),
		Size:      80,
	})

	_, ok := cache.Get(key)
	assert.False(t, ok)
	assert.Equal(t, int64(0), cache.Size())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := WithConfig(Config{MaxSizeBytes: 20, DefaultTTL: time.Minute, RespectCacheControl: true}, nil)

	keyA := NewKey("https://example.com/a")
	keyB := NewKey("https://example.com/b")
	keyC := NewKey("https://example.com/c")

	cache.Put(keyA, Entry{Body: make([]byte, 10), ExpiresAt: time.Now().Add(time.Minute), Size: 10})
	cache.Put(keyB, Entry{Body: make([]byte, 10), ExpiresAt: time.Now().Add(time.Minute), Size: 10})

	// Touch A so it's more recently used than B.
	cache.Get(keyA)

	// The 20-byte budget is already full, so admitting C's 10 bytes must
	// evict B (the least-recently accessed).
	cache.Put(keyC, Entry{Body: make([]byte, 10), ExpiresAt: time.Now().Add(time.Minute), Size: 10})

	_, aOK := cache.Get(keyA)
	_, bOK := cache.Get(keyB)
	_, cOK := cache.Get(keyC)

	assert.True(t, aOK)
	assert.False(t, bOK)
	assert.True(t, cOK)
	assert.Equal(t, uint64(1), cache.Stats().Evictions)
}

func TestPruneExpired(t *testing.T) {
	cache := New()
	cache.Put(NewKey("https://example.com/stale"), Entry{
		Body:      []byte("x"),
		ExpiresAt: time.Now().Add(-time.Second),
		Size:      1,
	})
	cache.Put(NewKey("https://example.com/fresh"), Entry{
		Body:      []byte("y"),
		ExpiresAt: time.Now().Add(time.Minute),
		Size:      1,
	})

	n := cache.PruneExpired()
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, cache.Len())
}
