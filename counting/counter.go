// Package counting finds the most frequent k-mers of a sequence file under
// a fixed memory ceiling.
//
// The key space [0, 4^k) is cut into one contiguous partition per worker.
// Every worker reads the whole input through its own reader, counts only
// the keys of its partition into a private bounded Table, and reduces it to
// a local top-k list. The lists are merged once all workers have returned.
// No state is shared between workers while they scan.
package counting

import (
	"slices"
	"sync"
	"time"

	"github.com/ledgerwatch/log/v3"

	"github.com/muratgenctav/topkmers/kmer"
	"github.com/muratgenctav/topkmers/seqfile"
)

// Counter computes the top k-mers of a source once and keeps the result.
type Counter struct {
	src   seqfile.Source
	opts  Options
	enc   *kmer.Encoder
	parts []Partition
	log   log.Logger

	result func() []KmerCount
	stats  []PartitionStats
}

// NewCounter validates opts and prepares a counter over src. Nothing is
// read until TopKmers is called.
func NewCounter(src seqfile.Source, opts Options) (*Counter, error) {
	if opts.Capacity == 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.K >= 1 && opts.K <= kmer.MaxK {
		opts.Workers = clampWorkers(opts.Workers, opts.Domain())
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	enc, err := kmer.NewEncoder(opts.K)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.Root()
	}
	c := &Counter{
		src:   src,
		opts:  opts,
		enc:   enc,
		parts: Partitions(enc.Domain(), opts.Workers),
		log:   opts.Logger.New("k", opts.K),
	}
	c.result = sync.OnceValue(c.scan)
	return c, nil
}

// Workers returns the number of partitions after clamping.
func (c *Counter) Workers() int { return len(c.parts) }

// Partitions returns the key ranges assigned to the workers.
func (c *Counter) Partitions() []Partition { return slices.Clone(c.parts) }

// TopKmers returns the most frequent k-mers by descending count. The first
// call scans the input; later calls, from any goroutine, return the same
// result without reading again.
func (c *Counter) TopKmers() []KmerCount {
	return slices.Clone(c.result())
}

// Stats returns per-partition scan statistics, scanning first if needed.
func (c *Counter) Stats() []PartitionStats {
	c.result()
	return slices.Clone(c.stats)
}

func (c *Counter) scan() []KmerCount {
	start := time.Now()
	n := len(c.parts)
	capacity := c.opts.Capacity / n
	c.log.Info("Counting k-mers", "workers", n, "topk", c.opts.TopK, "capacity", capacity)

	if n == 1 {
		s := newScanner(0, c.parts[0], false, c.enc, capacity, c.opts.EstimateDistinct, c.log)
		top, stats := s.run(c.src, c.opts.TopK, c.opts.Progress)
		c.stats = []PartitionStats{stats}
		c.log.Info("Counting done", "elapsed", time.Since(start))
		return top
	}

	lists := make([][]KmerCount, n)
	stats := make([]PartitionStats, n)
	var join sync.WaitGroup
	join.Add(n)
	for i, part := range c.parts {
		go func(i int, part Partition) {
			defer join.Done()
			s := newScanner(i, part, true, c.enc, capacity, c.opts.EstimateDistinct, c.log)
			lists[i], stats[i] = s.run(c.src, c.opts.TopK, c.opts.Progress)
		}(i, part)
	}
	join.Wait()

	c.stats = stats
	top := Merge(lists, c.opts.TopK)
	c.log.Info("Counting done", "elapsed", time.Since(start))
	return top
}
