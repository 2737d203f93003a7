package seqfile

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// maxLine bounds a single FASTQ line. Long-read runs produce sequence lines
// far past bufio's 64KiB default.
const maxLine = 64 * 1024 * 1024

// FastqReader reads 4-line FASTQ records: identifier, sequence, '+' line and
// quality string. Only the sequence line is returned; the other three are
// skipped without being checked.
type FastqReader struct {
	open    func() (io.ReadCloser, error)
	rc      io.ReadCloser
	scanner *bufio.Scanner
}

// NewFastqReader returns a reader over the stream produced by open.
func NewFastqReader(open func() (io.ReadCloser, error)) *FastqReader {
	return &FastqReader{open: open}
}

// NewFastqString returns a reader over an in-memory FASTQ document.
func NewFastqString(doc string) *FastqReader {
	return NewFastqReader(func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(doc)), nil
	})
}

// Open implements Reader.
func (r *FastqReader) Open() error {
	if r.rc != nil {
		return nil
	}
	rc, err := r.open()
	if err != nil {
		return err
	}
	r.rc = rc
	r.scanner = bufio.NewScanner(bufio.NewReaderSize(rc, 1024*1024))
	r.scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	return nil
}

// Next implements Reader.
func (r *FastqReader) Next() (string, error) {
	if r.scanner == nil {
		return "", ErrNotOpen
	}
	// identifier
	if !r.scanner.Scan() {
		return "", r.end()
	}
	if !r.scanner.Scan() {
		return "", r.end()
	}
	seq := strings.TrimSuffix(r.scanner.Text(), "\r")
	// '+' line and quality; a truncated last record still yields its sequence
	r.scanner.Scan()
	r.scanner.Scan()
	return seq, nil
}

func (r *FastqReader) end() error {
	if err := r.scanner.Err(); err != nil {
		return errors.Wrap(err, "read fastq")
	}
	return io.EOF
}

// Close implements Reader.
func (r *FastqReader) Close() error {
	if r.rc == nil {
		return nil
	}
	err := r.rc.Close()
	r.rc = nil
	r.scanner = nil
	return err
}
