// File: internal/concurrency/consumer.go
// Package concurrency implements a polling consumer with adaptive backoff.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Queue.Dequeue never blocks, so consumers that want to wait for items poll
// and sleep between empty rounds.

package concurrency

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-conc/api"
)

const (
	defaultMinBackoff = 50 * time.Microsecond
	defaultMaxBackoff = 10 * time.Millisecond
	defaultBatchSize  = 16
)

// ConsumerOption customizes a Consumer.
type ConsumerOption func(*consumerConfig)

type consumerConfig struct {
	minBackoff time.Duration
	maxBackoff time.Duration
	batch      int
}

// WithBackoff bounds the sleep between empty polls. The sleep doubles on each
// empty round and resets once an item arrives.
func WithBackoff(lo, hi time.Duration) ConsumerOption {
	return func(c *consumerConfig) {
		if lo > 0 {
			c.minBackoff = lo
		}
		if hi >= c.minBackoff {
			c.maxBackoff = hi
		}
	}
}

// WithBatchSize sets how many items are drained per round.
func WithBatchSize(n int) ConsumerOption {
	return func(c *consumerConfig) {
		if n > 0 {
			c.batch = n
		}
	}
}

// Consumer drains a queue into a handler until its context ends.
type Consumer[T any] struct {
	q         api.Queue[T]
	handle    func(T)
	cfg       consumerConfig
	processed atomic.Uint64
}

// NewConsumer binds handle to q. handle runs on the goroutine calling Run.
func NewConsumer[T any](q api.Queue[T], handle func(T), opts ...ConsumerOption) *Consumer[T] {
	cfg := consumerConfig{
		minBackoff: defaultMinBackoff,
		maxBackoff: defaultMaxBackoff,
		batch:      defaultBatchSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Consumer[T]{q: q, handle: handle, cfg: cfg}
}

// Run polls until ctx is done and returns ctx.Err().
func (c *Consumer[T]) Run(ctx context.Context) error {
	backoff := c.cfg.minBackoff
	timer := time.NewTimer(backoff)
	defer timer.Stop()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if n := c.drain(); n > 0 {
			backoff = c.cfg.minBackoff
			continue
		}
		timer.Reset(backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
		if backoff > c.cfg.maxBackoff {
			backoff = c.cfg.maxBackoff
		}
	}
}

// Drain handles every item currently visible and returns how many it handled.
func (c *Consumer[T]) Drain() int {
	total := 0
	for {
		n := c.drain()
		total += n
		if n < c.cfg.batch {
			return total
		}
	}
}

func (c *Consumer[T]) drain() int {
	n := 0
	for ; n < c.cfg.batch; n++ {
		item, ok := c.q.Dequeue()
		if !ok {
			break
		}
		// counted first so a handler signalling completion sees itself
		c.processed.Add(1)
		c.handle(item)
	}
	return n
}

// Processed returns the number of items handed to the handler.
func (c *Consumer[T]) Processed() uint64 {
	return c.processed.Load()
}

// DequeueWait polls q until an item arrives or ctx ends.
func DequeueWait[T any](ctx context.Context, q api.Queue[T], interval time.Duration) (T, error) {
	if interval <= 0 {
		interval = defaultMinBackoff
	}
	for {
		if item, ok := q.Dequeue(); ok {
			return item, nil
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-time.After(interval):
		}
	}
}
