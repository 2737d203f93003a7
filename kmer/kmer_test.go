package kmer

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSeq(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = Alphabet[r.Intn(4)]
	}
	return string(b)
}

func TestNewEncoderBounds(t *testing.T) {
	for _, k := range []int{0, -1, MaxK + 1, 64} {
		_, err := NewEncoder(k)
		assert.True(t, errors.Is(err, ErrInvalidK), "k=%d", k)
	}
	for _, k := range []int{1, 2, 16, MaxK} {
		e, err := NewEncoder(k)
		require.NoError(t, err)
		assert.Equal(t, k, e.K())
		assert.Equal(t, uint64(1)<<uint(2*k), e.Domain())
	}
}

func TestEncodeLayout(t *testing.T) {
	e, err := NewEncoder(3)
	require.NoError(t, err)
	var tests = []struct {
		s        string
		expected Key
	}{
		{"AAA", 0},
		{"AAC", 1},
		{"AAT", 3},
		{"CAA", 16},
		{"TTT", 63},
		{"GCA", 2<<4 | 1<<2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, e.Encode(tt.s, 0), tt.s)
	}
	assert.Equal(t, Key(1<<2|2), e.Encode("xACG", 1))
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for k := 1; k <= MaxK; k++ {
		e, err := NewEncoder(k)
		require.NoError(t, err)
		for i := 0; i < 20; i++ {
			s := randomSeq(r, k)
			assert.Equal(t, s, e.Decode(e.Encode(s, 0)))
		}
	}
}

func TestRollMatchesEncode(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, k := range []int{1, 2, 5, 13, MaxK} {
		e, err := NewEncoder(k)
		require.NoError(t, err)
		s := randomSeq(r, 200)
		prev := e.Encode(s, 0)
		for i := 1; i+k <= len(s); i++ {
			rolled := e.Roll(prev, s[i+k-1])
			require.Equal(t, e.Encode(s, i), rolled, "k=%d i=%d", k, i)
			prev = rolled
		}
	}
}

func TestFallback(t *testing.T) {
	e, err := NewEncoder(4)
	require.NoError(t, err)
	assert.Equal(t, e.Encode("ANGA", 0), e.Encode("AAGA", 0))
	assert.Equal(t, e.Encode("acgt", 0), e.Encode("ACGT", 0))
	assert.Equal(t, "AAGA", e.Decode(e.Encode("A-GR", 0)))
	assert.Equal(t, Fallback, Code('N'))
}

func TestWindows(t *testing.T) {
	e, err := NewEncoder(2)
	require.NoError(t, err)

	var got []string
	e.Windows("ATAT", func(k Key) { got = append(got, e.Decode(k)) })
	assert.Equal(t, []string{"AT", "TA", "AT"}, got)

	called := false
	e.Windows("A", func(Key) { called = true })
	assert.False(t, called)
}
