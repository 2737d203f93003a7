package counting

import (
	"encoding/binary"
	"io"

	"github.com/axiomhq/hyperloglog"
	"github.com/ledgerwatch/log/v3"

	"github.com/muratgenctav/topkmers/kmer"
	"github.com/muratgenctav/topkmers/seqfile"
)

// scanner counts the keys of one partition over the whole input.
type scanner struct {
	worker      int
	part        Partition
	partitioned bool
	enc         *kmer.Encoder
	table       *Table
	hll         *hyperloglog.Sketch
	buf         [8]byte
	stats       PartitionStats
	logger      log.Logger
}

func newScanner(worker int, part Partition, partitioned bool, enc *kmer.Encoder, capacity int, estimate bool, logger log.Logger) *scanner {
	s := &scanner{
		worker:      worker,
		part:        part,
		partitioned: partitioned,
		enc:         enc,
		table:       NewTable(capacity),
		logger:      logger,
	}
	s.stats.Worker = worker
	s.stats.Partition = part
	if estimate {
		s.hll = hyperloglog.New()
	}
	return s
}

// add is fed every window key of every record.
func (s *scanner) add(key kmer.Key) {
	s.stats.Windows++
	if s.partitioned && !s.part.Contains(key) {
		s.stats.OutOfRange++
		return
	}
	if s.hll != nil {
		binary.LittleEndian.PutUint64(s.buf[:], uint64(key))
		s.hll.Insert(s.buf[:])
	}
	s.table.Increment(key)
}

// run opens its own reader on src, counts every record and returns the
// partition's top k. An input that cannot be opened yields an empty list;
// a read error stops the scan and keeps what was counted so far. Either
// way the error is logged and kept in the stats, never returned.
func (s *scanner) run(src seqfile.Source, topK int, progress Progress) ([]KmerCount, PartitionStats) {
	var tracker Tracker
	if progress != nil {
		tracker = progress.Track(s.worker, s.part)
		defer tracker.Done()
	}

	r := src.NewReader()
	if err := r.Open(); err != nil {
		s.logger.Error("Worker could not open input", "worker", s.worker, "err", err)
		s.stats.Err = err
		return nil, s.stats
	}
	defer r.Close()

	add := s.add
	for {
		seq, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Error("Worker stopped reading input", "worker", s.worker, "records", s.stats.Records, "err", err)
			s.stats.Err = err
			break
		}
		s.stats.Records++
		s.enc.Windows(seq, add)
		if tracker != nil {
			tracker.Record()
		}
	}

	s.stats.Dropped = s.table.Dropped()
	s.stats.Distinct = s.table.Len()
	if s.hll != nil {
		s.stats.EstimatedDistinct = s.hll.Estimate()
	}
	if s.stats.Dropped > 0 {
		s.logger.Warn("Frequency table full, counts are approximate", "worker", s.worker, "keys", s.stats.Distinct, "dropped", s.stats.Dropped)
	}
	s.logger.Debug("Partition scanned", "worker", s.worker, "start", uint64(s.part.Start), "end", uint64(s.part.End),
		"records", s.stats.Records, "windows", s.stats.Windows, "keys", s.stats.Distinct)
	return SelectTopK(s.table, s.enc, topK), s.stats
}
