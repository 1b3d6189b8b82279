// File: internal/concurrency/lock_free_queue.go
// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unbounded multi-producer/multi-consumer FIFO linked through atomic pointers.

package concurrency

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-conc/api"
)

type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// LockFreeQueue is a Michael-Scott queue. head always points at a dummy node
// whose successor holds the oldest item; tail is the last node or lags by one
// link. Nodes are reclaimed by the garbage collector once unreachable, so a
// node is never recycled while another goroutine may still load it. That
// makes Dequeue safe with any number of concurrent consumers.
type LockFreeQueue[T any] struct {
	_      cpu.CacheLinePad
	head   atomic.Pointer[node[T]]
	_      cpu.CacheLinePad
	tail   atomic.Pointer[node[T]]
	_      cpu.CacheLinePad
	length atomic.Int64
}

var _ api.Queue[int] = (*LockFreeQueue[int])(nil)

// NewLockFreeQueue creates an empty queue holding only the dummy node.
func NewLockFreeQueue[T any]() *LockFreeQueue[T] {
	q := &LockFreeQueue[T]{}
	dummy := &node[T]{}
	q.head.Store(dummy)
	q.tail.Store(dummy)
	return q
}

// Enqueue appends item. Never blocks and never fails.
func (q *LockFreeQueue[T]) Enqueue(item T) {
	n := &node[T]{value: item}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			continue
		}
		if next != nil {
			// tail is lagging, help it forward
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		if tail.next.CompareAndSwap(nil, n) {
			q.tail.CompareAndSwap(tail, n)
			q.length.Add(1)
			return
		}
	}
}

// Dequeue removes the oldest item. Returns false when the queue is empty.
func (q *LockFreeQueue[T]) Dequeue() (T, bool) {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		next := head.next.Load()
		if head != q.head.Load() {
			continue
		}
		if next == nil {
			var zero T
			return zero, false
		}
		if head == tail {
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		// next becomes the new dummy and keeps its payload reachable until the
		// following Dequeue moves past it. Clearing it here would race with
		// consumers that already loaded next and are about to lose the CAS.
		value := next.value
		if q.head.CompareAndSwap(head, next) {
			q.length.Add(-1)
			return value, true
		}
	}
}

// Empty reports whether the dummy has no successor.
func (q *LockFreeQueue[T]) Empty() bool {
	return q.head.Load().next.Load() == nil
}

// Len returns an approximate item count. It may be briefly stale or negative
// under contention and clamps to zero.
func (q *LockFreeQueue[T]) Len() int {
	if n := q.length.Load(); n > 0 {
		return int(n)
	}
	return 0
}
