// File: internal/concurrency/threadpool.go
// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ThreadPool runs tasks on a fixed set of workers fed from a mutex-guarded
// FIFO. Workers sleep on a condition variable while the queue is empty.

package concurrency

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/momentics/hioload-conc/api"
)

// ThreadPool is a fixed-size worker pool. Tasks are started in submission
// order. Every task accepted before Shutdown runs before Shutdown returns.
type ThreadPool struct {
	mu     poolMutex
	work   *sync.Cond // queue became non-empty or stop was set
	idle   *sync.Cond // queue drained and no task running
	tasks  *queue.Queue
	stop   bool
	active int

	workers []*worker
	wg      sync.WaitGroup
	once    sync.Once

	id       string
	cpus     []int // pinning targets, nil when pinning is off
	log      zerolog.Logger
	observer Observer

	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	rejected  atomic.Uint64
}

var _ api.Executor = (*ThreadPool)(nil)

// NewThreadPool starts the workers and returns a running pool.
func NewThreadPool(opts ...Option) (*ThreadPool, error) {
	cfg := defaultPoolConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.threads < 0 {
		return nil, fmt.Errorf("thread count %d: %w", cfg.threads, api.ErrInvalidArgument)
	}
	if cfg.threads == 0 {
		cfg.threads = runtime.GOMAXPROCS(0)
	}
	if cfg.name == "" {
		cfg.name = uuid.NewString()
	}
	p := &ThreadPool{
		tasks:    queue.New(),
		workers:  make([]*worker, cfg.threads),
		id:       cfg.name,
		observer: cfg.observer,
		log: cfg.logger.With().
			Str("component", "threadpool").
			Str("pool", cfg.name).
			Logger(),
	}
	if cfg.pin {
		p.cpus = AllowedCPUs()
	}
	p.work = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)

	p.wg.Add(cfg.threads)
	for i := range p.workers {
		w := &worker{id: i, pool: p}
		p.workers[i] = w
		go w.run()
	}
	p.log.Debug().Int("threads", cfg.threads).Bool("pin", cfg.pin).Msg("pool started")
	return p, nil
}

// Enqueue schedules task. It never blocks on task execution.
func (p *ThreadPool) Enqueue(task api.Task) error {
	if task == nil {
		return api.ErrNilTask
	}
	p.mu.Lock()
	if p.stop {
		p.mu.Unlock()
		p.rejected.Add(1)
		p.observer.TaskRejected()
		return api.ErrPoolShutdown
	}
	p.tasks.Add(task)
	depth := p.tasks.Length()
	p.mu.Unlock()

	p.submitted.Add(1)
	p.observer.TaskSubmitted()
	p.observer.QueueDepth(depth)
	p.work.Signal()
	return nil
}

// Go schedules a plain function.
func (p *ThreadPool) Go(fn func()) error {
	if fn == nil {
		return api.ErrNilTask
	}
	return p.Enqueue(api.TaskFunc(fn))
}

// Shutdown stops intake, lets workers drain the queue and joins them.
// Repeated and concurrent calls block until the first one completes.
// Calling it from inside a task deadlocks.
func (p *ThreadPool) Shutdown() {
	p.once.Do(func() {
		p.mu.Lock()
		p.stop = true
		pending := p.tasks.Length()
		p.mu.Unlock()
		p.work.Broadcast()

		p.log.Info().Int("pending", pending).Msg("pool shutting down")
		p.wg.Wait()
		p.log.Info().
			Uint64("completed", p.completed.Load()).
			Uint64("failed", p.failed.Load()).
			Msg("pool stopped")
	})
}

// WaitForAll blocks until the queue is empty and no task is running.
// Tasks submitted concurrently with the call may or may not be waited for.
func (p *ThreadPool) WaitForAll() {
	p.mu.Lock()
	for p.tasks.Length() > 0 || p.active > 0 {
		p.idle.Wait()
	}
	p.mu.Unlock()
}

// Size returns the number of workers.
func (p *ThreadPool) Size() int { return len(p.workers) }

// ID returns the pool identifier.
func (p *ThreadPool) ID() string { return p.id }

// Pending returns the number of queued, not yet started tasks.
func (p *ThreadPool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tasks.Length()
}

// Active returns the number of tasks currently executing.
func (p *ThreadPool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// IsShutdown reports whether Shutdown has been called.
func (p *ThreadPool) IsShutdown() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop
}

// Stats returns a snapshot of pool counters.
func (p *ThreadPool) Stats() Stats {
	p.mu.Lock()
	pending, active, stopped := p.tasks.Length(), p.active, p.stop
	p.mu.Unlock()
	return Stats{
		ID:        p.id,
		Workers:   len(p.workers),
		Pending:   pending,
		Active:    active,
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
		Rejected:  p.rejected.Load(),
		Shutdown:  stopped,
	}
}

// next blocks until a task is available or the pool is stopping with an
// empty queue, in which case it returns false.
func (p *ThreadPool) next() (api.Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for !p.stop && p.tasks.Length() == 0 {
		p.work.Wait()
	}
	if p.tasks.Length() == 0 {
		return nil, false
	}
	task := p.tasks.Remove().(api.Task)
	p.active++
	p.observer.QueueDepth(p.tasks.Length())
	return task, true
}

// done releases the active slot taken by next.
func (p *ThreadPool) done() {
	p.mu.Lock()
	p.active--
	drained := p.active == 0 && p.tasks.Length() == 0
	p.mu.Unlock()
	if drained {
		p.idle.Broadcast()
	}
}
