// Package kmer packs nucleotide windows into dense integer keys.
//
// Each base takes two bits, A=0 C=1 G=2 T=3, and the first base of a window
// lands in the most significant pair. A k-mer therefore maps to a key in
// [0, 4^k), and sliding the window one base to the right is a shift, a mask
// and an OR.
//
// Any symbol outside ACGT (N, IUPAC ambiguity codes, gaps) is encoded as A.
// Counts for sequences containing such symbols are approximate: every window
// still yields a key, but windows over an ambiguous base are credited to the
// k-mer with A in that position.
package kmer

import (
	"github.com/pkg/errors"
)

// MaxK is the longest window a Key can hold. A uint64 fits 32 bases; two are
// left as headroom so Domain never needs the top bits.
const MaxK = 30

// Alphabet lists the bases in code order.
const Alphabet = "ACGT"

// Fallback is the code used for symbols outside the alphabet.
const Fallback Key = 0

// ErrInvalidK is returned for window lengths outside 1..MaxK.
var ErrInvalidK = errors.New("k-mer length out of range")

// Key is a 2-bit-per-base packed k-mer.
type Key uint64

var codes [256]Key

func init() {
	for i := range codes {
		codes[i] = Fallback
	}
	for i, c := range []byte(Alphabet) {
		codes[c] = Key(i)
		codes[c|0x20] = Key(i)
	}
}

// Code returns the 2-bit code of a base.
func Code(c byte) Key {
	return codes[c]
}

// Encoder encodes windows of a fixed length k.
type Encoder struct {
	k    int
	mask Key
}

// NewEncoder returns an encoder for k-mers of length k.
func NewEncoder(k int) (*Encoder, error) {
	if k < 1 || k > MaxK {
		return nil, errors.Wrapf(ErrInvalidK, "k=%d, want 1..%d", k, MaxK)
	}
	return &Encoder{k: k, mask: Key(1)<<uint(2*k) - 1}, nil
}

// K returns the window length.
func (e *Encoder) K() int { return e.k }

// Mask returns the low 2k bits set.
func (e *Encoder) Mask() Key { return e.mask }

// Domain returns 4^k, the number of distinct keys.
func (e *Encoder) Domain() uint64 { return uint64(e.mask) + 1 }

// Encode returns the key of the k-length window of seq starting at offset.
// The caller guarantees offset+k <= len(seq).
func (e *Encoder) Encode(seq string, offset int) Key {
	var key Key
	for _, c := range []byte(seq[offset : offset+e.k]) {
		key = key<<2 | codes[c]
	}
	return key
}

// Roll returns the key of the window one base to the right of prev, where c
// is the base entering on the right.
func (e *Encoder) Roll(prev Key, c byte) Key {
	return prev<<2&e.mask | codes[c]
}

// Decode returns the upper-case k-mer for key.
func (e *Encoder) Decode(key Key) string {
	b := make([]byte, e.k)
	for i := e.k - 1; i >= 0; i-- {
		b[i] = Alphabet[key&3]
		key >>= 2
	}
	return string(b)
}

// Windows calls fn with the key of every k-length window of seq, left to
// right. Sequences shorter than k produce no windows.
func (e *Encoder) Windows(seq string, fn func(Key)) {
	if len(seq) < e.k {
		return
	}
	key := e.Encode(seq, 0)
	fn(key)
	for i := e.k; i < len(seq); i++ {
		key = e.Roll(key, seq[i])
		fn(key)
	}
}
