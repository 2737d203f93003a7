package counting

import (
	"github.com/ledgerwatch/log/v3"
	"github.com/pkg/errors"

	"github.com/muratgenctav/topkmers/kmer"
)

const (
	// MaxTopK is the longest top-k list a run may request.
	MaxTopK = 25
	// MaxWorkers bounds the number of partition workers.
	MaxWorkers = 4
	// DefaultCapacity is the global frequency table ceiling, in keys,
	// shared evenly by the workers.
	DefaultCapacity = 10000000
)

var (
	ErrInvalidTopK     = errors.New("top-k count out of range")
	ErrInvalidWorkers  = errors.New("worker count out of range")
	ErrInvalidCapacity = errors.New("table capacity must be positive")
)

// Options configures a Counter.
type Options struct {
	// K is the k-mer length, 1..kmer.MaxK.
	K int
	// TopK is the number of k-mers to report, 1..MaxTopK.
	TopK int
	// Workers is the number of key-space partitions scanned concurrently,
	// 1..MaxWorkers. It is lowered to 4^K when the domain is smaller.
	Workers int
	// Capacity is the total number of keys all frequency tables may hold.
	// Zero means DefaultCapacity.
	Capacity int
	// EstimateDistinct enables a HyperLogLog distinct-key estimate per
	// partition, reported in PartitionStats.
	EstimateDistinct bool
	// Logger receives diagnostics. Defaults to log.Root().
	Logger log.Logger
	// Progress is notified as records are scanned. Optional.
	Progress Progress
}

// Validate checks the options against the supported limits.
func (o Options) Validate() error {
	if o.K < 1 || o.K > kmer.MaxK {
		return errors.Wrapf(kmer.ErrInvalidK, "k=%d, want 1..%d", o.K, kmer.MaxK)
	}
	if o.TopK < 1 || o.TopK > MaxTopK {
		return errors.Wrapf(ErrInvalidTopK, "topk=%d, want 1..%d", o.TopK, MaxTopK)
	}
	if o.Workers < 1 || o.Workers > MaxWorkers {
		return errors.Wrapf(ErrInvalidWorkers, "workers=%d, want 1..%d", o.Workers, MaxWorkers)
	}
	if o.Capacity < 0 {
		return errors.Wrapf(ErrInvalidCapacity, "capacity=%d", o.Capacity)
	}
	return nil
}

// Domain returns 4^K, the number of distinct k-mers, saturating for K
// beyond kmer.MaxK.
func (o Options) Domain() uint64 {
	if o.K < 1 {
		return 1
	}
	if o.K > kmer.MaxK {
		return uint64(1) << (2 * kmer.MaxK)
	}
	return uint64(1) << uint(2*o.K)
}

// Progress observes partition scans. It must be safe for concurrent use.
type Progress interface {
	Track(worker int, p Partition) Tracker
}

// Tracker follows a single worker.
type Tracker interface {
	// Record is called after each sequence is scanned.
	Record()
	// Done is called once when the worker stops.
	Done()
}
