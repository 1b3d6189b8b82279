// File: internal/concurrency/future.go
// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Future handles for tasks submitted with a result.

package concurrency

import (
	"context"
	"errors"
	"fmt"

	"github.com/momentics/hioload-conc/api"
)

// Future is the eventual result of one submitted function.
type Future[T any] struct {
	done   chan struct{}
	result api.Result[T]
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Get blocks until the task has finished.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.result.Get()
}

// GetContext waits for the result or ctx, whichever comes first. The task
// keeps running when ctx ends.
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result.Get()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed when the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Ready reports whether the result is available without blocking.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// futureTask binds a function to its Future.
type futureTask[T any] struct {
	fn     func() (T, error)
	future *Future[T]
	failed bool
}

func (t *futureTask[T]) Invoke() {
	defer close(t.future.done)
	defer func() {
		if r := recover(); r != nil {
			t.failed = true
			t.future.result.Err = newPanicError(r)
		}
	}()
	t.future.result.Value, t.future.result.Err = t.fn()
}

func (t *futureTask[T]) panicked() bool { return t.failed }

// Submit schedules fn on p and returns a Future for its result. A panic in fn
// is delivered through the Future as *PanicError.
func Submit[T any](p *ThreadPool, fn func() (T, error)) (*Future[T], error) {
	if fn == nil {
		return nil, api.ErrNilTask
	}
	t := &futureTask[T]{fn: fn, future: newFuture[T]()}
	if err := p.Enqueue(t); err != nil {
		return nil, err
	}
	return t.future, nil
}

// SubmitFunc schedules fn, which has no result of its own.
func SubmitFunc(p *ThreadPool, fn func()) (*Future[struct{}], error) {
	if fn == nil {
		return nil, api.ErrNilTask
	}
	return Submit(p, func() (struct{}, error) {
		fn()
		return struct{}{}, nil
	})
}

// Collect waits for every future in order. Values of failed tasks are left
// zero; their errors are joined into the returned error, each prefixed with
// the task index.
func Collect[T any](ctx context.Context, futures []*Future[T]) ([]T, error) {
	values := make([]T, len(futures))
	var errs []error
	for i, f := range futures {
		v, err := f.GetContext(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil && err == ctxErr {
			return values, ctxErr
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("task %d: %w", i, err))
			continue
		}
		values[i] = v
	}
	return values, errors.Join(errs...)
}
