// File: internal/concurrency/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-platform CPU affinity for pinned pool workers.

package concurrency

import (
	"fmt"
	"slices"

	"github.com/momentics/hioload-conc/api"
)

// PinCurrentThread binds the calling OS thread to cpuID and returns a function
// that restores the mask the thread had before. The caller must hold
// runtime.LockOSThread until restore has run, otherwise the goroutine may
// migrate away from the pinned thread. Platforms without affinity support
// return a no-op restore.
func PinCurrentThread(cpuID int) (restore func() error, err error) {
	if !slices.Contains(AllowedCPUs(), cpuID) {
		return nil, fmt.Errorf("cpu %d not in allowed set: %w", cpuID, api.ErrInvalidArgument)
	}
	return platformPinCurrentThread(cpuID)
}

// AllowedCPUs lists the CPU ids the calling thread may run on, in ascending
// order. Inside a restricted cpuset the ids need not start at zero.
func AllowedCPUs() []int {
	return platformAllowedCPUs()
}

// AffinitySupported reports whether pinning has an effect on this platform.
func AffinitySupported() bool {
	return affinitySupported
}

func sequentialCPUs(n int) []int {
	cpus := make([]int, n)
	for i := range cpus {
		cpus[i] = i
	}
	return cpus
}
