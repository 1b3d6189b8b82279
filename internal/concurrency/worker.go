// File: internal/concurrency/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker loop of ThreadPool.

package concurrency

import (
	"runtime"
	"time"

	"github.com/momentics/hioload-conc/api"
)

// panicReporter is implemented by tasks that recover their own panics, such as
// Future-bound tasks, so the worker can still count them as failed.
type panicReporter interface {
	panicked() bool
}

type worker struct {
	id   int
	pool *ThreadPool
}

func (w *worker) run() {
	p := w.pool
	defer p.wg.Done()

	if len(p.cpus) > 0 {
		defer w.pin(p.cpus[w.id%len(p.cpus)])()
	}
	p.log.Debug().Int("worker", w.id).Msg("worker started")

	for {
		task, ok := p.next()
		if !ok {
			p.log.Debug().Int("worker", w.id).Msg("worker exiting")
			return
		}
		w.execute(task)
		p.done()
	}
}

// pin locks the worker to its OS thread and binds the thread to cpu. The
// returned function restores the previous mask before handing the thread back
// to the scheduler. If the mask cannot be restored the thread stays locked, so
// the runtime terminates it when the worker exits.
func (w *worker) pin(cpu int) func() {
	log := w.pool.log
	runtime.LockOSThread()
	restore, err := PinCurrentThread(cpu)
	if err != nil {
		log.Warn().Err(err).Int("worker", w.id).Int("cpu", cpu).Msg("pinning failed")
		return runtime.UnlockOSThread
	}
	return func() {
		if err := restore(); err != nil {
			log.Warn().Err(err).Int("worker", w.id).Msg("affinity restore failed, retiring thread")
			return
		}
		runtime.UnlockOSThread()
	}
}

// execute runs task and keeps the worker alive if it panics.
func (w *worker) execute(task api.Task) {
	p := w.pool
	p.observer.TaskStarted()
	start := time.Now()
	panicked := false
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			p.log.Error().
				Int("worker", w.id).
				Interface("panic", r).
				Str("stack", newPanicError(r).Stack).
				Msg("task panicked")
		}
		if pr, ok := task.(panicReporter); ok && pr.panicked() {
			panicked = true
		}
		if panicked {
			p.failed.Add(1)
		} else {
			p.completed.Add(1)
		}
		p.observer.TaskFinished(time.Since(start), panicked)
	}()
	task.Invoke()
}
