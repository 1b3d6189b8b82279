// File: internal/concurrency/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "time"

// Observer receives pool lifecycle events. Methods are called from submitting
// goroutines and workers concurrently and must not block.
type Observer interface {
	TaskSubmitted()
	TaskRejected()
	TaskStarted()
	TaskFinished(d time.Duration, panicked bool)
	QueueDepth(n int)
}

type nopObserver struct{}

func (nopObserver) TaskSubmitted()                   {}
func (nopObserver) TaskRejected()                    {}
func (nopObserver) TaskStarted()                     {}
func (nopObserver) TaskFinished(time.Duration, bool) {}
func (nopObserver) QueueDepth(int)                   {}

// Stats is a point-in-time snapshot of pool counters.
type Stats struct {
	ID        string `json:"id"`
	Workers   int    `json:"workers"`
	Pending   int    `json:"pending"`
	Active    int    `json:"active"`
	Submitted uint64 `json:"submitted"`
	Completed uint64 `json:"completed"`
	Failed    uint64 `json:"failed"`
	Rejected  uint64 `json:"rejected"`
	Shutdown  bool   `json:"shutdown"`
}

// Map flattens the snapshot for debug probes.
func (s Stats) Map() map[string]any {
	return map[string]any{
		"id":        s.ID,
		"workers":   s.Workers,
		"pending":   s.Pending,
		"active":    s.Active,
		"submitted": s.Submitted,
		"completed": s.Completed,
		"failed":    s.Failed,
		"rejected":  s.Rejected,
		"shutdown":  s.Shutdown,
	}
}
