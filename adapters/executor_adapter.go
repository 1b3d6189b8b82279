// File: adapters/executor_adapter.go
// Package adapters provides glue between internal concurrency, control and api.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ExecutorAdapter builds a ThreadPool from control.PoolConfig and exposes it
// through the api.Executor contract.

package adapters

import (
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/control"
	"github.com/momentics/hioload-conc/internal/concurrency"
)

// ExecutorAdapter wraps an internal concurrency.ThreadPool to satisfy api.Executor.
type ExecutorAdapter struct {
	pool *concurrency.ThreadPool
}

var _ api.Executor = (*ExecutorAdapter)(nil)

// NewExecutorAdapter starts a pool sized and pinned per cfg. Extra options
// such as a logger or metrics observer are applied after the config.
func NewExecutorAdapter(cfg control.PoolConfig, opts ...concurrency.Option) (*ExecutorAdapter, error) {
	all := []concurrency.Option{
		concurrency.WithThreads(cfg.Threads),
		concurrency.WithPinning(cfg.PinWorkers),
	}
	if cfg.Name != "" {
		all = append(all, concurrency.WithName(cfg.Name))
	}
	p, err := concurrency.NewThreadPool(append(all, opts...)...)
	if err != nil {
		return nil, err
	}
	return &ExecutorAdapter{pool: p}, nil
}

// Enqueue dispatches a task to the pool.
func (ea *ExecutorAdapter) Enqueue(task api.Task) error {
	return ea.pool.Enqueue(task)
}

// Size returns the number of workers.
func (ea *ExecutorAdapter) Size() int {
	return ea.pool.Size()
}

// WaitForAll blocks until queued and running tasks are finished.
func (ea *ExecutorAdapter) WaitForAll() {
	ea.pool.WaitForAll()
}

// Shutdown drains the queue and joins the workers.
func (ea *ExecutorAdapter) Shutdown() {
	ea.pool.Shutdown()
}

// Pool exposes the underlying pool for typed submission.
func (ea *ExecutorAdapter) Pool() *concurrency.ThreadPool {
	return ea.pool
}
