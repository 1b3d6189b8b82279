// File: internal/concurrency/affinity_windows.go
//go:build windows

//
// Package concurrency implements Windows-specific CPU affinity.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"
)

const affinitySupported = true

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = modkernel32.NewProc("SetThreadAffinityMask")
)

// setThreadMask applies mask and returns the previous one.
func setThreadMask(mask uintptr) (uintptr, error) {
	old, _, err := procSetThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if old == 0 {
		return 0, fmt.Errorf("SetThreadAffinityMask(%#x): %w", mask, err)
	}
	return old, nil
}

func platformPinCurrentThread(cpuID int) (func() error, error) {
	prev, err := setThreadMask(uintptr(1) << uint(cpuID))
	if err != nil {
		return nil, err
	}
	return func() error {
		_, err := setThreadMask(prev)
		return err
	}, nil
}

// Masks are limited to the first processor group (64 CPUs).
func platformAllowedCPUs() []int {
	return sequentialCPUs(min(runtime.NumCPU(), 64))
}
