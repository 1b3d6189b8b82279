// File: api/executor.go
// Package api defines the contracts shared by the toolkit packages.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Executor contract for fixed-size task dispatch.

package api

// Task is a type-erased unit of work. Implementations must be safe to invoke
// from any goroutine; an executor invokes each accepted task exactly once.
type Task interface {
	Invoke()
}

// TaskFunc adapts a plain function to Task.
type TaskFunc func()

// Invoke calls f.
func (f TaskFunc) Invoke() { f() }

// Executor abstracts a fixed set of workers consuming a FIFO of tasks.
type Executor interface {
	// Enqueue schedules task for execution. Fails with ErrPoolShutdown once
	// shutdown has begun.
	Enqueue(task Task) error

	// Size returns the number of workers.
	Size() int

	// WaitForAll blocks until every accepted task has finished.
	WaitForAll()

	// Shutdown stops accepting work, drains the queue and joins the workers.
	// Safe to call more than once.
	Shutdown()
}

// GracefulShutdown is implemented by aggregates that own background resources.
type GracefulShutdown interface {
	// Shutdown releases every internal service. Returns an error on failure.
	Shutdown() error
}
