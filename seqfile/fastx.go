package seqfile

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

func init() {
	// ambiguity codes are folded by the encoder, not rejected here
	seq.ValidateSeq = false
}

// FastxReader reads FASTA or FASTQ files, optionally gzip-compressed, with
// the shenwei356/bio parser. Multi-line FASTA records are joined.
type FastxReader struct {
	path   string
	reader *fastx.Reader
}

// NewFastxReader returns an unopened reader for path. "-" reads stdin.
func NewFastxReader(path string) *FastxReader {
	return &FastxReader{path: path}
}

// Open implements Reader.
func (r *FastxReader) Open() error {
	if r.reader != nil {
		return nil
	}
	reader, err := fastx.NewReader(nil, r.path, "")
	if err != nil {
		return errors.Wrapf(err, "open %s", r.path)
	}
	r.reader = reader
	return nil
}

// Next implements Reader.
func (r *FastxReader) Next() (string, error) {
	if r.reader == nil {
		return "", ErrNotOpen
	}
	record, err := r.reader.Read()
	if err != nil {
		if err == io.EOF {
			return "", io.EOF
		}
		return "", errors.Wrapf(err, "read %s", r.path)
	}
	// the parser reuses record buffers between reads
	return string(record.Seq.Seq), nil
}

// Close implements Reader.
func (r *FastxReader) Close() error {
	if r.reader == nil {
		return nil
	}
	r.reader.Close()
	r.reader = nil
	return nil
}
