package counting

import (
	"github.com/muratgenctav/topkmers/kmer"
)

// SelectTopK returns the k most frequent keys of table, decoded with enc,
// ordered by descending count. Equal counts are listed in k-mer order.
// O(table size * log k).
func SelectTopK(table *Table, enc *kmer.Encoder, k int) []KmerCount {
	top := NewTopN[kmer.Key](k, func(a, b kmer.Key) bool { return a > b })
	table.Each(top.Offer)
	ranked := top.Drain()
	out := make([]KmerCount, len(ranked))
	for i, r := range ranked {
		out[i] = KmerCount{Kmer: enc.Decode(r.Item), Count: r.Count}
	}
	return out
}
