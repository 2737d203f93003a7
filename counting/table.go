package counting

import (
	"github.com/muratgenctav/topkmers/kmer"
)

// Table is a k-mer frequency table with a simple admission rule: once it
// holds more than capacity keys, keys it has not seen yet are dropped, and
// only keys already present keep counting. Nothing is ever evicted.
//
// This is approximate counting on purpose. Keys that first appear late in
// a large input may be undercounted or missed entirely, and the table is
// biased toward early keys. In exchange memory stays bounded whatever the
// input size. A table is owned by a single goroutine.
type Table struct {
	counts   map[kmer.Key]uint32
	capacity int
	dropped  uint64
}

// NewTable returns an empty table admitting new keys until it holds more
// than capacity of them. The table can therefore reach capacity+1 keys.
func NewTable(capacity int) *Table {
	if capacity < 0 {
		capacity = 0
	}
	hint := capacity + 1
	if hint > 1<<16 {
		hint = 1 << 16
	}
	return &Table{counts: make(map[kmer.Key]uint32, hint), capacity: capacity}
}

// Increment adds one occurrence of key. It reports false if the key was
// refused by the admission rule.
func (t *Table) Increment(key kmer.Key) bool {
	if c, ok := t.counts[key]; ok {
		t.counts[key] = c + 1
		return true
	}
	if len(t.counts) > t.capacity {
		t.dropped++
		return false
	}
	t.counts[key] = 1
	return true
}

// Count returns the count of key, zero if absent.
func (t *Table) Count(key kmer.Key) uint32 {
	return t.counts[key]
}

// Len returns the number of tracked keys.
func (t *Table) Len() int { return len(t.counts) }

// Dropped returns how many increments were refused.
func (t *Table) Dropped() uint64 { return t.dropped }

// Each calls fn for every tracked key in unspecified order.
func (t *Table) Each(fn func(key kmer.Key, count uint32)) {
	for k, c := range t.counts {
		fn(k, c)
	}
}
