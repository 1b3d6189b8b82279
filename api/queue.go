// Package api
// Author: momentics@gmail.com
//
// Queue contracts for cross-goroutine producer/consumer hand-off.

package api

// Queue is an unbounded FIFO that never blocks.
type Queue[T any] interface {
	// Enqueue appends item at the tail.
	Enqueue(item T)
	// Dequeue removes the oldest item, returns false if empty.
	Dequeue() (T, bool)
	// Empty reports whether no item is currently visible.
	Empty() bool
}

// BoundedQueue is a fixed-capacity FIFO.
type BoundedQueue[T any] interface {
	// Enqueue adds an item, returns false if full.
	Enqueue(item T) bool
	// Dequeue removes oldest item, returns false if empty.
	Dequeue() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns queue capacity.
	Cap() int
}
