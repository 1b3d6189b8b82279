// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package concurrency holds the execution primitives of the toolkit: a
// fixed-size ThreadPool with Future results and priority dispatch, an
// unbounded lock-free MPMC queue, a bounded MPMC ring, a polling consumer
// and CPU pinning for pool workers.
//
// Building with -tags deadlock replaces the pool mutex with a lock-order
// checking implementation.
package concurrency
