package counting

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muratgenctav/topkmers/kmer"
)

func byString(a, b string) bool { return a > b }

func TestTopNBounded(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 2, 5, 25} {
		top := NewTopN[int](n, func(a, b int) bool { return a > b })
		var counts []int
		for i := 0; i < 500; i++ {
			c := r.Intn(100)
			counts = append(counts, c)
			top.Offer(i, uint32(c))
			require.LessOrEqual(t, top.Len(), n)
		}
		out := top.Drain()
		require.Len(t, out, n)
		sort.Sort(sort.Reverse(sort.IntSlice(counts)))
		for i, rk := range out {
			assert.Equal(t, uint32(counts[i]), rk.Count)
			if i > 0 {
				assert.GreaterOrEqual(t, out[i-1].Count, rk.Count)
			}
		}
		assert.Equal(t, 0, top.Len())
	}
}

func TestTopNTiesKeepFirst(t *testing.T) {
	top := NewTopN[string](1, byString)
	top.Offer("b", 1)
	top.Offer("a", 1)
	out := top.Drain()
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].Item)

	top = NewTopN[string](1, byString)
	top.Offer("b", 1)
	top.Offer("a", 2)
	assert.Equal(t, []Ranked[string]{{"a", 2}}, top.Drain())
}

func TestTopNOrdersTiesByItem(t *testing.T) {
	top := NewTopN[string](3, byString)
	top.Offer("g", 4)
	top.Offer("c", 4)
	top.Offer("t", 9)
	assert.Equal(t, []Ranked[string]{{"t", 9}, {"c", 4}, {"g", 4}}, top.Drain())
}

func TestTopNShortInput(t *testing.T) {
	top := NewTopN[string](5, byString)
	top.Offer("x", 1)
	assert.Len(t, top.Drain(), 1)

	none := NewTopN[string](0, byString)
	none.Offer("x", 1)
	assert.Empty(t, none.Drain())
}

func TestSelectTopK(t *testing.T) {
	enc, err := kmer.NewEncoder(2)
	require.NoError(t, err)
	table := NewTable(100)
	enc.Windows("ATATAT", func(k kmer.Key) { table.Increment(k) })
	enc.Windows("GG", func(k kmer.Key) { table.Increment(k) })

	assert.Equal(t, []KmerCount{{"AT", 3}, {"TA", 2}}, SelectTopK(table, enc, 2))
	assert.Equal(t, []KmerCount{{"AT", 3}, {"TA", 2}, {"GG", 1}}, SelectTopK(table, enc, 10))
}

func TestMerge(t *testing.T) {
	lists := [][]KmerCount{
		{{"AA", 9}, {"AC", 2}},
		nil,
		{{"GT", 5}, {"GA", 3}},
		{{"TT", 7}},
	}
	assert.Equal(t, []KmerCount{{"AA", 9}, {"TT", 7}, {"GT", 5}}, Merge(lists, 3))
	assert.Len(t, Merge(lists, 25), 5)
	assert.Empty(t, Merge(nil, 3))
}
