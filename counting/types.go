package counting

import (
	"github.com/muratgenctav/topkmers/kmer"
)

// Partition is the half-open key range [Start, End) owned by one worker.
type Partition struct {
	Start kmer.Key
	End   kmer.Key
}

// Contains reports whether key falls inside the partition.
func (p Partition) Contains(key kmer.Key) bool {
	return p.Start <= key && key < p.End
}

// Len returns the number of keys in the partition.
func (p Partition) Len() uint64 {
	return uint64(p.End - p.Start)
}

// Partitions splits the key domain [0, domain) into n contiguous ranges of
// equal width. The last range absorbs the remainder. n is clamped to
// [1, domain].
func Partitions(domain uint64, n int) []Partition {
	n = clampWorkers(n, domain)
	width := domain / uint64(n)
	parts := make([]Partition, n)
	for i := range parts {
		parts[i].Start = kmer.Key(uint64(i) * width)
		parts[i].End = kmer.Key(uint64(i+1) * width)
	}
	parts[n-1].End = kmer.Key(domain)
	return parts
}

func clampWorkers(n int, domain uint64) int {
	if n < 1 {
		return 1
	}
	if uint64(n) > domain {
		return int(domain)
	}
	return n
}

// KmerCount is one entry of a top-k list.
type KmerCount struct {
	Kmer  string
	Count uint32
}

// PartitionStats describes one worker's scan.
type PartitionStats struct {
	Worker    int
	Partition Partition
	// Records is the number of sequences read.
	Records uint64
	// Windows is the number of k-length windows encoded.
	Windows uint64
	// OutOfRange counts windows whose key belongs to another partition.
	OutOfRange uint64
	// Dropped counts windows refused by the table's admission rule.
	Dropped uint64
	// Distinct is the number of keys the table tracked.
	Distinct int
	// EstimatedDistinct is a HyperLogLog estimate of the distinct keys seen
	// in the partition, admitted or not. Zero unless estimation is enabled.
	EstimatedDistinct uint64
	// Err is the I/O error that stopped the worker, if any.
	Err error
}
