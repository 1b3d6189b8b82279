//go:build deadlock

// File: internal/concurrency/lock_deadlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-order diagnostics for the pool mutex, enabled with -tags deadlock.

package concurrency

import (
	"os"
	"time"

	"github.com/sasha-s/go-deadlock"
)

type poolMutex = deadlock.Mutex

func init() {
	deadlock.Opts.DeadlockTimeout = 30 * time.Second
	deadlock.Opts.LogBuf = os.Stderr
}
