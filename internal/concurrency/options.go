// File: internal/concurrency/options.go
// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Functional options for ThreadPool construction.

package concurrency

import (
	"runtime"

	"github.com/rs/zerolog"
)

// Option customizes ThreadPool initialization.
type Option func(*poolConfig)

type poolConfig struct {
	threads  int
	pin      bool
	name     string
	logger   zerolog.Logger
	observer Observer
}

func defaultPoolConfig() poolConfig {
	return poolConfig{
		threads:  runtime.GOMAXPROCS(0),
		logger:   zerolog.Nop(),
		observer: nopObserver{},
	}
}

// WithThreads sets the number of workers. Zero selects runtime.GOMAXPROCS(0).
func WithThreads(n int) Option {
	return func(c *poolConfig) {
		c.threads = n
	}
}

// WithPinning locks every worker to its own OS thread and binds that thread
// to CPU id % NumCPU.
func WithPinning(enabled bool) Option {
	return func(c *poolConfig) {
		c.pin = enabled
	}
}

// WithName overrides the generated pool identifier.
func WithName(name string) Option {
	return func(c *poolConfig) {
		c.name = name
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *poolConfig) {
		c.logger = l
	}
}

// WithObserver installs lifecycle hooks, typically a metrics collector.
func WithObserver(o Observer) Option {
	return func(c *poolConfig) {
		if o != nil {
			c.observer = o
		}
	}
}
