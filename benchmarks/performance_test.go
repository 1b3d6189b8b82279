// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for toolkit components.

package benchmarks

import (
	"sync"
	"testing"

	"github.com/momentics/hioload-conc/facade"
	"github.com/momentics/hioload-conc/internal/concurrency"
)

// BenchmarkBlockPoolAllocation tests block allocate/release under contention.
func BenchmarkBlockPoolAllocation(b *testing.B) {
	bp, err := facade.NewBlockPool(4096, 1024)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			blk, ok := bp.Allocate()
			if !ok {
				continue
			}
			if err := bp.Release(blk); err != nil {
				b.Error(err)
				return
			}
		}
	})
}

// BenchmarkLockFreeQueueThroughput tests enqueue/dequeue pairs from many goroutines.
func BenchmarkLockFreeQueueThroughput(b *testing.B) {
	q := facade.NewLockFreeQueue[int]()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			q.Enqueue(i)
			q.Dequeue()
			i++
		}
	})
}

// BenchmarkBoundedQueueThroughput is the fixed-capacity counterpart.
func BenchmarkBoundedQueueThroughput(b *testing.B) {
	q := concurrency.NewBoundedQueue[int](1024)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if !q.Enqueue(i) {
				q.Dequeue()
				q.Enqueue(i)
			}
			i++
		}
	})
}

// BenchmarkThreadPoolSubmit measures enqueue plus execution of tiny tasks.
func BenchmarkThreadPoolSubmit(b *testing.B) {
	p, err := facade.NewThreadPool(0)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Shutdown()

	var wg sync.WaitGroup
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(1)
		if err := p.Go(wg.Done); err != nil {
			b.Fatal(err)
		}
	}
	wg.Wait()
}

// BenchmarkFutureRoundTrip measures Submit and Get of one value.
func BenchmarkFutureRoundTrip(b *testing.B) {
	p, err := facade.NewThreadPool(0)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f, err := facade.Submit(p, func() (int, error) { return i, nil })
		if err != nil {
			b.Fatal(err)
		}
		if _, err := f.Get(); err != nil {
			b.Fatal(err)
		}
	}
}
