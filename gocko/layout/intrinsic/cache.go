// Package intrinsic implements an epoch-scoped memoization cache for
// intrinsic (min-content/max-content) size calculations, which are
// expensive because they require a subtree traversal and are often
// recomputed many times within one layout pass (flex item sizing, for
// instance).
//
// The reference implementation keys this cache per-thread with Rust
// thread_local! storage; Go has no equivalent, so this package keeps one
// shared, mutex-guarded cache and documents epoch discipline — not
// storage locality — as the actual invariant callers depend on: call
// UseEpoch once per layout pass, and never read a value computed in a
// different epoch.
package intrinsic

import (
	"math"
	"sync"
	"sync/atomic"
)

// SizingMode distinguishes a min-content from a max-content measurement.
type SizingMode int

const (
	// MinContent is the smallest size that avoids overflow (for text,
	// the width of the longest unbreakable word).
	MinContent SizingMode = iota
	// MaxContent is the size needed to fit all content without wrapping.
	MaxContent
)

type cacheKey struct {
	elementID uintptr
	stylePtr  uintptr
	mode      SizingMode
}

type cacheEntry struct {
	epoch uint64
	value float32
}

var (
	epoch = &atomic.Uint64{}

	mu          sync.Mutex
	localEpoch  uint64
	inlineCache = make(map[cacheKey]cacheEntry)
	blockCache  = make(map[cacheKey]cacheEntry)

	lookups atomic.Uint64
	hits    atomic.Uint64
	stores  atomic.Uint64
)

func init() {
	epoch.Store(1)
}

// UseEpoch sets the cache epoch for the current layout pass. Call this
// once at the start of layout; when e has advanced past the epoch the
// caches were last cleared for, both caches are cleared right away
// (see ensureEpochLocked). Epoch values <= 0 are clamped to 1.
func UseEpoch(e uint64) {
	if e == 0 {
		e = 1
	}
	epoch.Store(e)
	ensureEpochLocked(e)
}

// CurrentEpoch returns the active cache epoch.
func CurrentEpoch() uint64 {
	return epoch.Load()
}

// ensureEpochLocked clears both caches if the shared epoch has advanced
// past what they were last cleared for. Caller must not hold mu.
func ensureEpochLocked(e uint64) {
	mu.Lock()
	defer mu.Unlock()
	if localEpoch != e {
		inlineCache = make(map[cacheKey]cacheEntry)
		blockCache = make(map[cacheKey]cacheEntry)
		localEpoch = e
	}
}

func ensureEpoch() uint64 {
	e := epoch.Load()
	ensureEpochLocked(e)
	return e
}

// LookupInline returns a cached intrinsic inline (width) size, or
// (0, false) if absent or stale. elementID 0 is never cached.
func LookupInline(elementID, stylePtr uintptr, mode SizingMode) (float32, bool) {
	if elementID == 0 {
		return 0, false
	}
	lookups.Add(1)
	e := ensureEpoch()
	key := cacheKey{elementID, stylePtr, mode}

	mu.Lock()
	entry, ok := inlineCache[key]
	mu.Unlock()
	if !ok || entry.epoch != e {
		return 0, false
	}
	hits.Add(1)
	return entry.value, true
}

// LookupBlock returns a cached intrinsic block (height) size, or
// (0, false) if absent or stale.
func LookupBlock(elementID, stylePtr uintptr, mode SizingMode) (float32, bool) {
	if elementID == 0 {
		return 0, false
	}
	lookups.Add(1)
	e := ensureEpoch()
	key := cacheKey{elementID, stylePtr, mode}

	mu.Lock()
	entry, ok := blockCache[key]
	mu.Unlock()
	if !ok || entry.epoch != e {
		return 0, false
	}
	hits.Add(1)
	return entry.value, true
}

// StoreInline stores a computed intrinsic inline (width) size.
// elementID 0 and non-finite values are silently ignored.
func StoreInline(elementID, stylePtr uintptr, mode SizingMode, value float32) {
	if elementID == 0 || !finite(value) {
		return
	}
	e := ensureEpoch()
	key := cacheKey{elementID, stylePtr, mode}
	mu.Lock()
	inlineCache[key] = cacheEntry{epoch: e, value: value}
	mu.Unlock()
	stores.Add(1)
}

// StoreBlock stores a computed intrinsic block (height) size.
func StoreBlock(elementID, stylePtr uintptr, mode SizingMode, value float32) {
	if elementID == 0 || !finite(value) {
		return
	}
	e := ensureEpoch()
	key := cacheKey{elementID, stylePtr, mode}
	mu.Lock()
	blockCache[key] = cacheEntry{epoch: e, value: value}
	mu.Unlock()
	stores.Add(1)
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Stats returns (lookups, hits, stores) counters for profiling.
func Stats() (uint64, uint64, uint64) {
	return lookups.Load(), hits.Load(), stores.Load()
}

// ResetStats zeroes the lookup/hit/store counters.
func ResetStats() {
	lookups.Store(0)
	hits.Store(0)
	stores.Store(0)
}

// ClearAll resets every cache, the epoch, and the stats counters.
// Intended primarily for tests.
func ClearAll() {
	mu.Lock()
	inlineCache = make(map[cacheKey]cacheEntry)
	blockCache = make(map[cacheKey]cacheEntry)
	localEpoch = 0
	mu.Unlock()
	epoch.Store(1)
	ResetStats()
}

// CacheSizes returns (inline entries, block entries), for debugging.
func CacheSizes() (int, int) {
	mu.Lock()
	defer mu.Unlock()
	return len(inlineCache), len(blockCache)
}
