//go:build !deadlock

// File: internal/concurrency/lock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "sync"

// poolMutex guards the ThreadPool queue and lifecycle flags.
type poolMutex = sync.Mutex
