// Package seqfile reads sequence records from files for k-mer counting.
//
// The counting core treats a sequence file as a Source of independent
// Readers. Each worker opens its own Reader, so a file is read once per
// worker and no read cursor is shared between goroutines.
package seqfile

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotOpen is returned by Next on a reader that was never opened.
var ErrNotOpen = errors.New("reader is not open")

// Reader yields one sequence per record.
type Reader interface {
	// Open prepares the reader. It must be called before Next.
	Open() error
	// Next returns the sequence of the next record, or io.EOF after the last.
	Next() (string, error)
	// Close releases the underlying file. It is safe to call more than once.
	Close() error
}

// Source creates fresh readers over the same input.
type Source interface {
	NewReader() Reader
}

// Format selects the record parser for a file.
type Format string

const (
	// FASTQ is the plain 4-line-per-record format.
	FASTQ Format = "fastq"
	// Fastx accepts FASTA or FASTQ, plain or gzip-compressed.
	Fastx Format = "fastx"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FASTQ, "":
		return FASTQ, nil
	case Fastx, "fasta", "fa", "fq":
		return Fastx, nil
	}
	return "", errors.Errorf("unknown sequence format %q", s)
}

// File is a Source backed by a path on disk.
type File struct {
	Path   string
	Format Format
}

// NewReader returns an unopened reader for the file.
func (f File) NewReader() Reader {
	if f.Format == Fastx {
		return NewFastxReader(f.Path)
	}
	path := f.Path
	return NewFastqReader(func() (io.ReadCloser, error) {
		fh, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", path)
		}
		return fh, nil
	})
}

// Open checks that the file can be read, the way the CLI does before
// starting a scan.
func (f File) Open() error {
	r := f.NewReader()
	if err := r.Open(); err != nil {
		return err
	}
	return r.Close()
}
