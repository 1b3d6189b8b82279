// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collectors for ThreadPool telemetry. PoolMetrics satisfies the
// pool Observer contract, so it can be passed straight to WithObserver.

package control

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PoolMetrics holds Prometheus collectors for one pool.
type PoolMetrics struct {
	Submitted prometheus.Counter
	Completed prometheus.Counter
	Failed    prometheus.Counter
	Rejected  prometheus.Counter
	Active    prometheus.Gauge
	Queued    prometheus.Gauge
	Duration  prometheus.Histogram
}

// NewPoolMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewPoolMetrics(namespace, subsystem string, reg prometheus.Registerer) (*PoolMetrics, error) {
	m := &PoolMetrics{
		Submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_submitted_total",
			Help:      "Total number of tasks accepted by the pool",
		}),
		Completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_completed_total",
			Help:      "Total number of tasks that ran without panicking",
		}),
		Failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_failed_total",
			Help:      "Total number of tasks that panicked",
		}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_rejected_total",
			Help:      "Total number of submissions refused after shutdown",
		}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_active",
			Help:      "Number of tasks currently executing",
		}),
		Queued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "queue_depth",
			Help:      "Number of queued tasks waiting for a worker",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "task_duration_seconds",
			Help:      "Histogram of task execution time",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PoolMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Submitted, m.Completed, m.Failed, m.Rejected,
		m.Active, m.Queued, m.Duration,
	}
}

// TaskSubmitted implements the pool observer hook.
func (m *PoolMetrics) TaskSubmitted() { m.Submitted.Inc() }

// TaskRejected implements the pool observer hook.
func (m *PoolMetrics) TaskRejected() { m.Rejected.Inc() }

// TaskStarted implements the pool observer hook.
func (m *PoolMetrics) TaskStarted() { m.Active.Inc() }

// TaskFinished implements the pool observer hook.
func (m *PoolMetrics) TaskFinished(d time.Duration, panicked bool) {
	m.Active.Dec()
	m.Duration.Observe(d.Seconds())
	if panicked {
		m.Failed.Inc()
	} else {
		m.Completed.Inc()
	}
}

// QueueDepth implements the pool observer hook.
func (m *PoolMetrics) QueueDepth(n int) { m.Queued.Set(float64(n)) }
