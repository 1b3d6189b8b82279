// File: internal/concurrency/priority.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Priority-ordered dispatch of a batch of tasks onto a ThreadPool.

package concurrency

import (
	"container/heap"
	"sync"
)

// Common priority levels. Any int works; larger runs first.
const (
	PriorityLow    = 1
	PriorityMedium = 5
	PriorityHigh   = 10
)

type prioritizedTask struct {
	priority int
	seq      uint64
	name     string
	fn       func()
}

// taskHeap is a max-heap on priority, FIFO on equal priority.
type taskHeap []prioritizedTask

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(prioritizedTask)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = prioritizedTask{}
	*h = old[:n-1]
	return t
}

// PriorityBatch collects tasks and submits them highest priority first. The
// pool itself stays FIFO, so the ordering holds for start order only when the
// batch is dispatched to an otherwise idle pool.
type PriorityBatch struct {
	mu  sync.Mutex
	h   taskHeap
	seq uint64
}

// NewPriorityBatch returns an empty batch.
func NewPriorityBatch() *PriorityBatch {
	return &PriorityBatch{}
}

// Add queues fn under priority. name is informational.
func (b *PriorityBatch) Add(priority int, name string, fn func()) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	heap.Push(&b.h, prioritizedTask{priority: priority, seq: b.seq, name: name, fn: fn})
	b.seq++
	b.mu.Unlock()
}

// Len returns the number of tasks not yet dispatched.
func (b *PriorityBatch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.h.Len()
}

// Names lists the queued task names in dispatch order without removing them.
func (b *PriorityBatch) Names() []string {
	b.mu.Lock()
	cp := make(taskHeap, len(b.h))
	copy(cp, b.h)
	b.mu.Unlock()
	names := make([]string, 0, len(cp))
	for cp.Len() > 0 {
		names = append(names, heap.Pop(&cp).(prioritizedTask).name)
	}
	return names
}

// Dispatch empties the batch into p. On an Enqueue failure it stops, keeps the
// undispatched tasks in the batch and returns the futures submitted so far.
func (b *PriorityBatch) Dispatch(p *ThreadPool) ([]*Future[struct{}], error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	futures := make([]*Future[struct{}], 0, b.h.Len())
	for b.h.Len() > 0 {
		f, err := SubmitFunc(p, b.h[0].fn)
		if err != nil {
			return futures, err
		}
		heap.Pop(&b.h)
		futures = append(futures, f)
	}
	return futures, nil
}
