// Package cache provides an in-memory cache for canonical opening-position
// lookups, avoiding repeated symmetry-orbit computation for nodes visited
// during the early, still-small phase of a game tree.
package cache

import (
	"github.com/dgraph-io/ristretto/v2"
)

// Entry is the cached value for a canonical opening key: the evaluation and
// bestmove found for it the first time it was resolved.
type Entry struct {
	Value    int32
	BestMove uint8
}

// OpeningCache memoizes canonical-key lookups for opening positions. Unlike
// the transposition table, this cache is keyed by the canonical (lowest) key
// of a board's eight-fold symmetry orbit, since computing that orbit is only
// worth the cost during the opening, where the same canonical position
// recurs across many move orders.
type OpeningCache struct {
	cache *ristretto.Cache[uint64, Entry]
}

// New creates an opening cache sized for roughly maxEntries items.
func New(maxEntries int64) (*OpeningCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[uint64, Entry]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
		// Count each entry as exactly its Put cost, and keep the counters
		// that Metrics reports.
		IgnoreInternalCost: true,
		Metrics:            true,
	})
	if err != nil {
		return nil, err
	}
	return &OpeningCache{cache: c}, nil
}

// Close releases the cache's background resources.
func (oc *OpeningCache) Close() {
	oc.cache.Close()
}

// Metrics exposes the underlying cache's hit/miss counters, for tools that
// report how effective a warm-up run was.
func (oc *OpeningCache) Metrics() *ristretto.Metrics {
	return oc.cache.Metrics
}

// Get looks up the canonical key, returning the cached entry if present.
func (oc *OpeningCache) Get(canonicalKey uint64) (Entry, bool) {
	return oc.cache.Get(canonicalKey)
}

// Put stores the entry for the canonical key, costing one unit each.
func (oc *OpeningCache) Put(canonicalKey uint64, entry Entry) {
	oc.cache.Set(canonicalKey, entry, 1)
	oc.cache.Wait()
}

// Canonical returns the lowest key in the board's symmetry orbit, suitable
// for use as an OpeningCache key — and, independently, as a canonical
// identity for deduplicating openings in storage.
func Canonical(keys [8]uint64) uint64 {
	min := keys[0]
	for _, k := range keys[1:] {
		if k < min {
			min = k
		}
	}
	return min
}
