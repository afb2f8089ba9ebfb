package storage

import (
	"cmp"
	"container/heap"
)

// priority is a min-heap discipline: Get returns the smallest element per
// the < operator. Elements must be totally ordered, mirroring the Python
// original's reliance on heapq over comparable messages.
type priority[E cmp.Ordered] struct {
	h priorityHeap[E]
}

// NewPriority constructs an empty priority-queue (min-heap) discipline. E
// must be totally ordered; ties break in heap-pop order, which is not
// arrival order (see DESIGN.md's open-question resolution on priority-queue
// close-drain order).
func NewPriority[E cmp.Ordered]() Storage[E] {
	return &priority[E]{}
}

// Heap is an alias for NewPriority.
func Heap[E cmp.Ordered]() Storage[E] { return NewPriority[E]() }

func (p *priority[E]) Put(e E) {
	heap.Push(&p.h, e)
}

func (p *priority[E]) Get() E {
	return heap.Pop(&p.h).(E)
}

func (p *priority[E]) Len() int {
	return len(p.h)
}

func (p *priority[E]) Empty() bool {
	return len(p.h) == 0
}

// priorityHeap implements container/heap.Interface the same way
// eventloop's timerHeap does: a plain slice with Less driven by the
// natural order of E.
type priorityHeap[E cmp.Ordered] []E

func (h priorityHeap[E]) Len() int           { return len(h) }
func (h priorityHeap[E]) Less(i, j int) bool { return h[i] < h[j] }
func (h priorityHeap[E]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *priorityHeap[E]) Push(x any) { *h = append(*h, x.(E)) }

func (h *priorityHeap[E]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
