// Package indexedpq implements a min-priority queue keyed by an external,
// non-negative int index, supporting decrease-key and delete-by-index in
// addition to the usual insert/peek/delete-min. It is a container/heap
// binary heap with a position map; the growth simulator uses it to order
// edge and cluster events by time.
package indexedpq

import "container/heap"

type entry struct {
	value float64
	index int
	slot  int
}

type innerHeap []*entry

func (h innerHeap) Len() int            { return len(h) }
func (h innerHeap) Less(i, j int) bool   { return h[i].value < h[j].value }
func (h innerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].slot = i
	h[j].slot = j
}

func (h *innerHeap) Push(x any) {
	e := x.(*entry)
	e.slot = len(*h)
	*h = append(*h, e)
}

func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.slot = -1
	*h = old[:n-1]
	return e
}

// Queue is an indexed min-priority queue. The zero value is not usable;
// construct with New.
type Queue struct {
	h     innerHeap
	byIdx map[int]*entry
}

func New() *Queue {
	return &Queue{byIdx: make(map[int]*entry)}
}

func (q *Queue) Len() int { return len(q.h) }

// Insert adds index with value, or replaces its existing entry if index is
// already present (upsert semantics, matching the C++ reference's
// insert()).
func (q *Queue) Insert(value float64, index int) {
	if e, ok := q.byIdx[index]; ok {
		heap.Remove(&q.h, e.slot)
		delete(q.byIdx, index)
	}
	e := &entry{value: value, index: index}
	heap.Push(&q.h, e)
	q.byIdx[index] = e
}

// DecreaseKey lowers the value stored for index. index must already be
// present.
func (q *Queue) DecreaseKey(value float64, index int) {
	e, ok := q.byIdx[index]
	if !ok {
		return
	}
	e.value = value
	heap.Fix(&q.h, e.slot)
}

// Delete removes index from the queue. A no-op if index is absent.
func (q *Queue) Delete(index int) {
	e, ok := q.byIdx[index]
	if !ok {
		return
	}
	heap.Remove(&q.h, e.slot)
	delete(q.byIdx, index)
}

// PeekMin reports the current minimum (value, index) without removing it.
func (q *Queue) PeekMin() (value float64, index int, ok bool) {
	if len(q.h) == 0 {
		return 0, 0, false
	}
	return q.h[0].value, q.h[0].index, true
}

// DeleteMin removes and returns the current minimum.
func (q *Queue) DeleteMin() (value float64, index int, ok bool) {
	if len(q.h) == 0 {
		return 0, 0, false
	}
	e := heap.Pop(&q.h).(*entry)
	delete(q.byIdx, e.index)
	return e.value, e.index, true
}
