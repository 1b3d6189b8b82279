// File: internal/concurrency/affinity_linux.go
//go:build linux

// Linux CPU affinity through sched_setaffinity.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

const affinitySupported = true

// pid 0 addresses the calling thread.
func platformPinCurrentThread(cpuID int) (func() error, error) {
	var prev unix.CPUSet
	if err := unix.SchedGetaffinity(0, &prev); err != nil {
		return nil, fmt.Errorf("sched_getaffinity: %w", err)
	}
	var set unix.CPUSet
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("sched_setaffinity cpu %d: %w", cpuID, err)
	}
	return func() error {
		if err := unix.SchedSetaffinity(0, &prev); err != nil {
			return fmt.Errorf("sched_setaffinity restore: %w", err)
		}
		return nil
	}, nil
}

func platformAllowedCPUs() []int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return sequentialCPUs(runtime.NumCPU())
	}
	cpus := make([]int, 0, set.Count())
	for i := 0; len(cpus) < set.Count(); i++ {
		if set.IsSet(i) {
			cpus = append(cpus, i)
		}
	}
	return cpus
}
