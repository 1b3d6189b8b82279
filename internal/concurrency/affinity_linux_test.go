//go:build linux

package concurrency

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func threadMask(t *testing.T) unix.CPUSet {
	t.Helper()
	var set unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &set))
	return set
}

func TestPinCurrentThread_RoundTrip(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	before := threadMask(t)
	cpus := AllowedCPUs()
	last := cpus[len(cpus)-1]

	restore, err := PinCurrentThread(last)
	require.NoError(t, err)
	pinned := threadMask(t)
	assert.Equal(t, 1, pinned.Count())
	assert.True(t, pinned.IsSet(last))

	require.NoError(t, restore())
	assert.Equal(t, before, threadMask(t))
}

func TestThreadPool_PinnedWorkersRestoreAffinity(t *testing.T) {
	runtime.LockOSThread()
	want := threadMask(t)
	runtime.UnlockOSThread()
	if want.Count() < 2 {
		t.Skip("needs at least two CPUs to observe a narrowed mask")
	}

	threads := 2 * want.Count()
	p, err := NewThreadPool(WithThreads(threads), WithPinning(true))
	require.NoError(t, err)

	// hold every worker at once so each reports its own thread
	var ready, release sync.WaitGroup
	ready.Add(threads)
	release.Add(1)
	counts := make(chan int, threads)
	for i := 0; i < threads; i++ {
		require.NoError(t, p.Go(func() {
			var set unix.CPUSet
			if unix.SchedGetaffinity(0, &set) == nil {
				counts <- set.Count()
			}
			ready.Done()
			release.Wait()
		}))
	}
	ready.Wait()
	release.Done()
	p.Shutdown()
	close(counts)
	for n := range counts {
		assert.Equal(t, 1, n, "worker thread not pinned")
	}

	// threads released by the workers go back to the scheduler; none may keep
	// a single-CPU mask
	var locked, wg sync.WaitGroup
	var mu sync.Mutex
	var narrowed int
	hold := make(chan struct{})
	n := 4 * threads
	locked.Add(n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			var set unix.CPUSet
			if unix.SchedGetaffinity(0, &set) == nil && set != want {
				mu.Lock()
				narrowed++
				mu.Unlock()
			}
			locked.Done()
			<-hold
		}()
	}
	locked.Wait()
	close(hold)
	wg.Wait()
	assert.Zero(t, narrowed, "threads left with a narrowed affinity mask")
}
