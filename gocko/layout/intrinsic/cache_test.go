package intrinsic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The cache is shared package-level state: most tests use their own
// epoch and element IDs, and the rest call ClearAll before use.

func TestCacheMissOnFirstLookup(t *testing.T) {
	ClearAll()
	UseEpoch(1)

	_, ok := LookupInline(1, 0x1000, MinContent)
	assert.False(t, ok)
}

func TestCacheHitAfterStore(t *testing.T) {
	UseEpoch(1001)
	const elemID = 100001

	StoreInline(elemID, 0x1000, MinContent, 100.0)
	v, ok := LookupInline(elemID, 0x1000, MinContent)

	assert.True(t, ok)
	assert.Equal(t, float32(100.0), v)
}

func TestCacheMissDifferentMode(t *testing.T) {
	UseEpoch(1002)
	const elemID = 100002

	StoreInline(elemID, 0x1000, MinContent, 100.0)
	_, ok := LookupInline(elemID, 0x1000, MaxContent)

	assert.False(t, ok)
}

func TestCacheMissDifferentStyle(t *testing.T) {
	UseEpoch(1003)
	const elemID = 100003

	StoreInline(elemID, 0x1000, MinContent, 100.0)
	_, ok := LookupInline(elemID, 0x2000, MinContent)

	assert.False(t, ok)
}

func TestCacheInvalidationOnEpochChange(t *testing.T) {
	UseEpoch(1004)
	const elemID = 100004

	StoreInline(elemID, 0x1000, MinContent, 100.0)
	v, ok := LookupInline(elemID, 0x1000, MinContent)
	assert.True(t, ok)
	assert.Equal(t, float32(100.0), v)

	UseEpoch(1005)

	_, ok = LookupInline(elemID, 0x1000, MinContent)
	assert.False(t, ok)
}

func TestBlockCacheSeparateFromInline(t *testing.T) {
	const elemID = 100006

	UseEpoch(2006)
	StoreInline(elemID, 0x1000, MinContent, 100.0)
	v, ok := LookupInline(elemID, 0x1000, MinContent)
	assert.True(t, ok)
	assert.Equal(t, float32(100.0), v)

	UseEpoch(2007)
	StoreBlock(elemID, 0x1000, MinContent, 50.0)
	v, ok = LookupBlock(elemID, 0x1000, MinContent)
	assert.True(t, ok)
	assert.Equal(t, float32(50.0), v)
}

func TestStatsTracking(t *testing.T) {
	UseEpoch(1007)
	const elemID = 100007

	initLookups, initHits, initStores := Stats()

	LookupInline(elemID, 0x2000, MinContent) // miss
	StoreInline(elemID, 0x2000, MinContent, 100.0)
	LookupInline(elemID, 0x2000, MinContent) // hit

	lookups, hits, stores := Stats()
	assert.GreaterOrEqual(t, lookups, initLookups+2)
	assert.GreaterOrEqual(t, hits, initHits+1)
	assert.GreaterOrEqual(t, stores, initStores+1)
}

func TestZeroElementIDNotCached(t *testing.T) {
	ClearAll()
	UseEpoch(1)

	StoreInline(0, 0x1000, MinContent, 100.0)
	_, ok := LookupInline(0, 0x1000, MinContent)

	assert.False(t, ok)
}

func TestNonFiniteValuesNotCached(t *testing.T) {
	ClearAll()
	UseEpoch(1)

	StoreInline(1, 0x1000, MinContent, float32(math.NaN()))
	_, ok := LookupInline(1, 0x1000, MinContent)
	assert.False(t, ok)

	StoreInline(2, 0x1000, MinContent, float32(math.Inf(1)))
	_, ok = LookupInline(2, 0x1000, MinContent)
	assert.False(t, ok)
}

func TestCacheSizes(t *testing.T) {
	ClearAll()
	UseEpoch(1)

	StoreInline(1, 0x1000, MinContent, 100.0)
	StoreInline(2, 0x2000, MaxContent, 200.0)
	StoreBlock(1, 0x1000, MinContent, 50.0)

	inlineSize, blockSize := CacheSizes()
	assert.Equal(t, 2, inlineSize)
	assert.Equal(t, 1, blockSize)
}
