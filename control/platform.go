// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform debug probes: CPU topology, scheduler state and CPU features.

package control

import (
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/internal/concurrency"
)

// RegisterPlatformProbes adds platform.* probes to dp.
func RegisterPlatformProbes(dp api.Debug) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.allowed_cpus", func() any {
		return concurrency.AllowedCPUs()
	})
	dp.RegisterProbe("platform.gomaxprocs", func() any {
		return runtime.GOMAXPROCS(0)
	})
	dp.RegisterProbe("platform.goroutines", func() any {
		return runtime.NumGoroutine()
	})
	dp.RegisterProbe("platform.arch", func() any {
		return runtime.GOOS + "/" + runtime.GOARCH
	})
	dp.RegisterProbe("platform.cpu_features", func() any {
		return CPUFeatures()
	})
}

// CPUFeatures reports the instruction set extensions relevant to atomics and
// copying on the running CPU.
func CPUFeatures() map[string]bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return map[string]bool{
			"sse2":   cpu.X86.HasSSE2,
			"sse42":  cpu.X86.HasSSE42,
			"avx2":   cpu.X86.HasAVX2,
			"avx512": cpu.X86.HasAVX512F,
			"erms":   cpu.X86.HasERMS,
		}
	case "arm64":
		return map[string]bool{
			"atomics": cpu.ARM64.HasATOMICS,
			"asimd":   cpu.ARM64.HasASIMD,
			"crc32":   cpu.ARM64.HasCRC32,
		}
	default:
		return map[string]bool{}
	}
}
