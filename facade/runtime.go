// File: facade/runtime.go
// Unified facade aggregating pool, telemetry and diagnostics.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime wires a ThreadPool to Prometheus metrics, debug probes and an
// optional block pool, and exposes them through one HTTP handler.

package facade

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/momentics/hioload-conc/adapters"
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/control"
	"github.com/momentics/hioload-conc/internal/concurrency"
	"github.com/momentics/hioload-conc/pool"
)

// Config holds parameters immutable per run.
type Config struct {
	Pool             control.PoolConfig
	EnableMetrics    bool   // register Prometheus collectors
	MetricsNamespace string // metric name prefix
	EnableDebug      bool   // publish debug probes
	BlockSize        int    // with NumBlocks > 0, creates a BlockPool
	NumBlocks        int
	Logger           zerolog.Logger
}

// DefaultConfig returns defaults suitable for most callers.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    true,
		MetricsNamespace: "hioload",
		EnableDebug:      true,
		Logger:           zerolog.Nop(),
	}
}

// Runtime is the main facade type.
type Runtime struct {
	executor *adapters.ExecutorAdapter
	control  *adapters.ControlAdapter
	registry *prometheus.Registry
	metrics  *control.PoolMetrics
	blocks   *pool.BlockPool
	log      zerolog.Logger

	mu      sync.Mutex
	stopped bool
}

var _ api.GracefulShutdown = (*Runtime)(nil)

// New constructs and starts a Runtime.
func New(cfg Config) (*Runtime, error) {
	r := &Runtime{
		registry: prometheus.NewRegistry(),
		log:      cfg.Logger.With().Str("component", "runtime").Logger(),
	}

	opts := []concurrency.Option{concurrency.WithLogger(cfg.Logger)}
	if cfg.EnableMetrics {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m, err := control.NewPoolMetrics(cfg.MetricsNamespace, "pool", r.registry)
		if err != nil {
			return nil, fmt.Errorf("metrics init failure: %w", err)
		}
		r.metrics = m
		opts = append(opts, concurrency.WithObserver(m))
	}

	if cfg.NumBlocks > 0 {
		bp, err := pool.NewBlockPool(cfg.BlockSize, cfg.NumBlocks)
		if err != nil {
			return nil, fmt.Errorf("block pool init failure: %w", err)
		}
		r.blocks = bp
	}

	ex, err := adapters.NewExecutorAdapter(cfg.Pool, opts...)
	if err != nil {
		return nil, fmt.Errorf("pool init failure: %w", err)
	}
	r.executor = ex

	r.control = adapters.NewControlAdapter(nil)
	if cfg.EnableDebug {
		r.control.AttachPool(ex.Pool())
		if r.blocks != nil {
			r.control.AttachBlockPool("default", r.blocks)
		}
	}

	r.log.Info().
		Int("threads", ex.Size()).
		Bool("metrics", cfg.EnableMetrics).
		Bool("debug", cfg.EnableDebug).
		Msg("runtime started")
	return r, nil
}

// Pool returns the thread pool for typed submission.
func (r *Runtime) Pool() *ThreadPool { return r.executor.Pool() }

// Executor returns the pool through the api.Executor contract.
func (r *Runtime) Executor() api.Executor { return r.executor }

// Control returns runtime statistics and probe registration.
func (r *Runtime) Control() api.Control { return r.control }

// Blocks returns the block pool, or nil when none was configured.
func (r *Runtime) Blocks() *BlockPool { return r.blocks }

// Registry returns the Prometheus registry holding the runtime collectors.
func (r *Runtime) Registry() *prometheus.Registry { return r.registry }

// Handler serves /metrics, /debug/state and /healthz.
func (r *Runtime) Handler() http.Handler {
	var g prometheus.Gatherer
	if r.metrics != nil {
		g = r.registry
	}
	return control.NewRouter(g, r.control.Probes())
}

// Shutdown drains the pool. Later calls are no-ops.
func (r *Runtime) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return nil
	}
	r.executor.Shutdown()
	r.stopped = true
	st := r.executor.Pool().Stats()
	r.log.Info().Uint64("completed", st.Completed).Uint64("failed", st.Failed).Msg("runtime stopped")
	return nil
}
