package counting

// Merge combines per-partition top-k lists into the global top k.
//
// The lists are treated as one candidate pool and run through the same
// selection as SelectTopK. Partitions split the key space, so every
// occurrence of a k-mer is counted by exactly one worker, and that worker's
// list already holds it if it can be globally in the top k.
func Merge(lists [][]KmerCount, k int) []KmerCount {
	top := NewTopN[string](k, func(a, b string) bool { return a > b })
	for _, list := range lists {
		for _, kc := range list {
			top.Offer(kc.Kmer, kc.Count)
		}
	}
	ranked := top.Drain()
	out := make([]KmerCount, len(ranked))
	for i, r := range ranked {
		out[i] = KmerCount{Kmer: r.Item, Count: r.Count}
	}
	return out
}
