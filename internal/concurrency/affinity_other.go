// File: internal/concurrency/affinity_other.go
//go:build !linux && !windows

//
// Fallback for platforms without thread affinity control.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "runtime"

const affinitySupported = false

func platformPinCurrentThread(int) (func() error, error) {
	return func() error { return nil }, nil
}

func platformAllowedCPUs() []int { return sequentialCPUs(runtime.NumCPU()) }
