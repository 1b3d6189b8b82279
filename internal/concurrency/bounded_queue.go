// File: internal/concurrency/bounded_queue.go
// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded MPMC ring with per-cell sequence numbers (Dmitry Vyukov's scheme).

package concurrency

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-conc/api"
)

type cell[T any] struct {
	sequence atomic.Uint64
	data     T
}

// BoundedQueue is a fixed-capacity multi-producer/multi-consumer queue.
// A cell is writable when its sequence equals the ticket and readable when it
// equals ticket+1, so producers and consumers never touch the same cell at once.
type BoundedQueue[T any] struct {
	_     cpu.CacheLinePad
	head  atomic.Uint64
	_     cpu.CacheLinePad
	tail  atomic.Uint64
	_     cpu.CacheLinePad
	mask  uint64
	cells []cell[T]
}

var _ api.BoundedQueue[int] = (*BoundedQueue[int])(nil)

// NewBoundedQueue creates a queue with capacity rounded up to a power of two.
func NewBoundedQueue[T any](capacity int) *BoundedQueue[T] {
	if capacity < 2 {
		capacity = 2
	}
	size := nextPowerOfTwo(uint64(capacity))
	q := &BoundedQueue[T]{
		mask:  size - 1,
		cells: make([]cell[T], size),
	}
	for i := range q.cells {
		q.cells[i].sequence.Store(uint64(i))
	}
	return q
}

// Enqueue adds val; returns false if full.
func (q *BoundedQueue[T]) Enqueue(val T) bool {
	for {
		tail := q.tail.Load()
		c := &q.cells[tail&q.mask]
		dif := int64(c.sequence.Load()) - int64(tail)
		switch {
		case dif == 0:
			if q.tail.CompareAndSwap(tail, tail+1) {
				c.data = val
				c.sequence.Store(tail + 1)
				return true
			}
		case dif < 0:
			return false
		}
	}
}

// Dequeue removes and returns an item; ok false if empty.
func (q *BoundedQueue[T]) Dequeue() (item T, ok bool) {
	for {
		head := q.head.Load()
		c := &q.cells[head&q.mask]
		dif := int64(c.sequence.Load()) - int64(head+1)
		switch {
		case dif == 0:
			if q.head.CompareAndSwap(head, head+1) {
				item = c.data
				var zero T
				c.data = zero
				c.sequence.Store(head + q.mask + 1)
				return item, true
			}
		case dif < 0:
			return item, false
		}
	}
}

// Len returns an approximate number of queued items.
func (q *BoundedQueue[T]) Len() int {
	n := int64(q.tail.Load()) - int64(q.head.Load())
	if n < 0 {
		return 0
	}
	if n > int64(len(q.cells)) {
		return len(q.cells)
	}
	return int(n)
}

// Cap returns the queue capacity.
func (q *BoundedQueue[T]) Cap() int {
	return len(q.cells)
}

func nextPowerOfTwo(v uint64) uint64 {
	if v == 0 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}
