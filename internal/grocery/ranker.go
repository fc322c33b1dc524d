package grocery

import "container/heap"

// itemCount pairs an item name with its total purchase count.
type itemCount struct {
	name  string
	count int
}

// countHeap is a min-heap of size at most k holding the current top
// candidates. The root is the weakest entry: lowest count, with the
// lexically later name losing on equal counts. Evicting the root as new
// items are pushed leaves the k strongest items in the heap.
type countHeap []itemCount

func (h countHeap) Len() int { return len(h) }

func (h countHeap) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count < h[j].count
	}
	return h[i].name > h[j].name
}

func (h countHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *countHeap) Push(x any) { *h = append(*h, x.(itemCount)) }

func (h *countHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topFrequent selects up to limit items from the frequency map, highest
// count first. Ties are broken lexically so the result is deterministic.
// The selection runs on demand against a snapshot of the counts; no
// ranking state persists between calls.
func topFrequent(frequency map[string]int, limit int) []string {
	if limit <= 0 || len(frequency) == 0 {
		return []string{}
	}

	h := make(countHeap, 0, limit+1)
	heap.Init(&h)
	for name, count := range frequency {
		heap.Push(&h, itemCount{name: name, count: count})
		if h.Len() > limit {
			heap.Pop(&h)
		}
	}

	// Popping yields weakest first; fill the result back to front.
	result := make([]string, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(itemCount).name
	}
	return result
}
