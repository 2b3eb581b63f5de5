package engine

import (
	"math/big"
)

// Flag indicates what kind of bound a Table entry stores.
type Flag uint8

const (
	// Exact is a fully resolved value, returnable without further search.
	Exact Flag = iota
	// LowerBound was found by a beta cutoff; the true value is at least this.
	LowerBound
	// UpperBound was found failing low; the true value is at most this.
	UpperBound
)

// Entry is one slot of the transposition table. Sixteen bytes: a 64-bit key,
// a 16-bit value, an 8-bit flag, and an 8-bit packed bestmove.
type Entry struct {
	Key      uint64
	Value    int16
	Flag     Flag
	BestMove uint8
}

// Table is a direct-mapped transposition table with no collision resolution:
// looking a key up that collided with a different key silently misses.
// Entries are always replaced on Put, trading accuracy for simplicity and
// for never having to reason about a replacement policy.
type Table struct {
	entries  []Entry
	occupied []bool
	hits     uint64
	probes   uint64
}

// NewTable returns a table sized to the smallest prime at least n. A prime
// table length, combined with key%len indexing, spreads 64-bit keys more
// uniformly across slots than a power-of-2 length would.
func NewTable(n uint64) *Table {
	size := nextPrime(n)
	return &Table{entries: make([]Entry, size), occupied: make([]bool, size)}
}

// NewTableFromBytes returns a table sized to use approximately budget bytes.
func NewTableFromBytes(budget uint64) *Table {
	const entrySize = 16
	n := budget / entrySize
	if n == 0 {
		n = 1
	}
	return NewTable(n)
}

func nextPrime(n uint64) uint64 {
	if n < 2 {
		return 2
	}
	candidate := new(big.Int).SetUint64(n)
	one := big.NewInt(1)
	for !candidate.ProbablyPrime(20) {
		candidate.Add(candidate, one)
	}
	return candidate.Uint64()
}

func (t *Table) index(key uint64) uint64 {
	return key % uint64(len(t.entries))
}

// Put unconditionally stores the entry for key, overwriting whatever
// occupied the slot before.
func (t *Table) Put(key uint64, value Eval, flag Flag, bestmove uint8) {
	idx := t.index(key)
	t.entries[idx] = Entry{
		Key:      key,
		Value:    int16(value),
		Flag:     flag,
		BestMove: bestmove,
	}
	t.occupied[idx] = true
}

// Get retrieves the entry for key, if the slot it hashes to still holds it.
// An empty slot has Key 0, which is also the valid key for the starting
// position, so the occupied flag set by Put is what tells a stored key-0
// entry apart from a never-written slot.
func (t *Table) Get(key uint64) (Entry, bool) {
	t.probes++
	idx := t.index(key)
	e := t.entries[idx]
	if t.occupied[idx] && e.Key == key {
		t.hits++
		return e, true
	}
	return Entry{}, false
}

// Size returns the number of slots in the table.
func (t *Table) Size() uint64 {
	return uint64(len(t.entries))
}

// Count returns the number of occupied slots. O(table size); intended for
// reporting, not for use on a search's hot path.
func (t *Table) Count() uint64 {
	var count uint64
	for i := range t.occupied {
		if t.occupied[i] {
			count++
		}
	}
	return count
}

// Hits returns the number of successful Get lookups so far.
func (t *Table) Hits() uint64 {
	return t.hits
}

// Probes returns the number of Get lookups attempted so far.
func (t *Table) Probes() uint64 {
	return t.probes
}

// HitRate returns the fraction of probes that were hits, or 0 if there have
// been no probes.
func (t *Table) HitRate() float64 {
	if t.probes == 0 {
		return 0
	}
	return float64(t.hits) / float64(t.probes)
}
