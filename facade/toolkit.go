// File: facade/toolkit.go
// Public entry points of the concurrency toolkit.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade

import (
	"context"

	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/internal/concurrency"
	"github.com/momentics/hioload-conc/pool"
)

// Future is the eventual result of a submitted function.
type Future[T any] = concurrency.Future[T]

// LockFreeQueue is an unbounded MPMC FIFO.
type LockFreeQueue[T any] = concurrency.LockFreeQueue[T]

type (
	// Task is a type-erased unit of work accepted by ThreadPool.Enqueue.
	Task = api.Task
	// TaskFunc adapts a function to Task.
	TaskFunc = api.TaskFunc
	// ThreadPool is a fixed-size worker pool.
	ThreadPool = concurrency.ThreadPool
	// Option customizes ThreadPool construction.
	Option = concurrency.Option
	// Observer receives pool lifecycle events.
	Observer = concurrency.Observer
	// PoolStats is a snapshot of pool counters.
	PoolStats = concurrency.Stats
	// PanicError is delivered by futures whose task panicked.
	PanicError = concurrency.PanicError
	// PriorityBatch dispatches tasks highest priority first.
	PriorityBatch = concurrency.PriorityBatch
	// BlockPool is a fixed-capacity block allocator.
	BlockPool = pool.BlockPool
	// Block is a handle returned by BlockPool.Allocate.
	Block = pool.Block
)

// Pool options.
var (
	WithThreads  = concurrency.WithThreads
	WithPinning  = concurrency.WithPinning
	WithName     = concurrency.WithName
	WithLogger   = concurrency.WithLogger
	WithObserver = concurrency.WithObserver
)

// Errors.
var (
	ErrPoolShutdown = concurrency.ErrPoolShutdown
	ErrInvalidBlock = pool.ErrInvalidBlock
)

// Priority levels for PriorityBatch.Add.
const (
	PriorityLow    = concurrency.PriorityLow
	PriorityMedium = concurrency.PriorityMedium
	PriorityHigh   = concurrency.PriorityHigh
)

// NewThreadPool starts a pool with threads workers; 0 selects GOMAXPROCS.
func NewThreadPool(threads int, opts ...Option) (*ThreadPool, error) {
	return concurrency.NewThreadPool(append([]Option{WithThreads(threads)}, opts...)...)
}

// Submit schedules fn on p and returns its future.
func Submit[T any](p *ThreadPool, fn func() (T, error)) (*Future[T], error) {
	return concurrency.Submit(p, fn)
}

// SubmitFunc schedules fn, which has no result.
func SubmitFunc(p *ThreadPool, fn func()) (*Future[struct{}], error) {
	return concurrency.SubmitFunc(p, fn)
}

// Collect waits for futures in order and joins their errors.
func Collect[T any](ctx context.Context, futures []*Future[T]) ([]T, error) {
	return concurrency.Collect(ctx, futures)
}

// NewLockFreeQueue returns an empty unbounded MPMC queue.
func NewLockFreeQueue[T any]() *LockFreeQueue[T] {
	return concurrency.NewLockFreeQueue[T]()
}

// NewPriorityBatch returns an empty batch.
func NewPriorityBatch() *PriorityBatch {
	return concurrency.NewPriorityBatch()
}

// NewBlockPool allocates numBlocks blocks of blockSize bytes.
func NewBlockPool(blockSize, numBlocks int) (*BlockPool, error) {
	return pool.NewBlockPool(blockSize, numBlocks)
}
