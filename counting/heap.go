package counting

import (
	"container/heap"
)

// Ranked pairs an item with its count.
type Ranked[T any] struct {
	Item  T
	Count uint32
}

// minHeap orders by count, lowest first. Among equal counts the item that
// sorts last in the output is the minimum.
type minHeap[T any] struct {
	items []Ranked[T]
	after func(a, b T) bool
}

func (h *minHeap[T]) Len() int { return len(h.items) }

func (h *minHeap[T]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Count != b.Count {
		return a.Count < b.Count
	}
	return h.after(a.Item, b.Item)
}

func (h *minHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *minHeap[T]) Push(x any) { h.items = append(h.items, x.(Ranked[T])) }

func (h *minHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}

// TopN keeps the n highest-count items offered to it in a bounded min-heap.
//
// An item replaces the current minimum only if its count is strictly
// greater, so when several items tie at the cut-off the ones offered first
// survive. Which tied items are kept therefore depends on offer order. The
// after function only orders the survivors: it reports whether a is listed
// after b when their counts are equal.
type TopN[T any] struct {
	n int
	h minHeap[T]
}

// NewTopN returns an empty selector for the n largest counts.
func NewTopN[T any](n int, after func(a, b T) bool) *TopN[T] {
	if n < 0 {
		n = 0
	}
	return &TopN[T]{n: n, h: minHeap[T]{items: make([]Ranked[T], 0, n), after: after}}
}

// Offer considers item for the top n. O(log n).
func (t *TopN[T]) Offer(item T, count uint32) {
	if t.h.Len() < t.n {
		heap.Push(&t.h, Ranked[T]{Item: item, Count: count})
		return
	}
	if t.n == 0 || count <= t.h.items[0].Count {
		return
	}
	t.h.items[0] = Ranked[T]{Item: item, Count: count}
	heap.Fix(&t.h, 0)
}

// Len returns the number of items held.
func (t *TopN[T]) Len() int { return t.h.Len() }

// Drain empties the selector and returns its items by descending count.
func (t *TopN[T]) Drain() []Ranked[T] {
	out := make([]Ranked[T], t.h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&t.h).(Ranked[T])
	}
	return out
}
