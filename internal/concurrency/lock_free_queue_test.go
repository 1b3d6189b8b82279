package concurrency

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockFreeQueue_FIFO(t *testing.T) {
	q := NewLockFreeQueue[int]()
	assert.True(t, q.Empty())

	for i := 0; i < 5; i++ {
		q.Enqueue(i)
	}
	assert.False(t, q.Empty())
	assert.Equal(t, 5, q.Len())

	for i := 0; i < 5; i++ {
		v, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := q.Dequeue()
	assert.False(t, ok)
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Len())
}

func TestLockFreeQueue_EmptyDequeueLeavesQueueUsable(t *testing.T) {
	q := NewLockFreeQueue[string]()
	_, ok := q.Dequeue()
	require.False(t, ok)

	q.Enqueue("a")
	v, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestLockFreeQueue_SPSC(t *testing.T) {
	q := NewLockFreeQueue[int]()
	const n = 100000

	go func() {
		for i := 0; i < n; i++ {
			q.Enqueue(i)
		}
	}()

	deadline := time.After(5 * time.Second)
	for want := 0; want < n; {
		if v, ok := q.Dequeue(); ok {
			require.Equal(t, want, v)
			want++
			continue
		}
		select {
		case <-deadline:
			t.Fatalf("timeout after %d items", want)
		default:
			runtime.Gosched()
		}
	}
	assert.True(t, q.Empty())
}

func TestLockFreeQueue_MPMC(t *testing.T) {
	q := NewLockFreeQueue[int]()
	producers := 8
	consumers := 8
	itemsPerProducer := 10000
	totalItems := int64(producers * itemsPerProducer)

	var sentSum, receivedSum, receivedCount int64

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				val := pid*itemsPerProducer + i + 1
				q.Enqueue(val)
				atomic.AddInt64(&sentSum, int64(val))
			}
		}(p)
	}

	seen := make([]atomic.Bool, totalItems+1)
	var duplicates atomic.Int64
	var consumerWg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consumerWg.Add(1)
		go func() {
			defer consumerWg.Done()
			for atomic.LoadInt64(&receivedCount) < totalItems {
				val, ok := q.Dequeue()
				if !ok {
					runtime.Gosched()
					continue
				}
				if seen[val].Swap(true) {
					duplicates.Add(1)
				}
				atomic.AddInt64(&receivedSum, int64(val))
				atomic.AddInt64(&receivedCount, 1)
			}
		}()
	}

	wg.Wait()
	done := make(chan struct{})
	go func() {
		consumerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		assert.Equal(t, sentSum, receivedSum, "checksum mismatch")
		assert.Zero(t, duplicates.Load())
		assert.True(t, q.Empty())
	case <-time.After(10 * time.Second):
		t.Fatalf("timeout waiting for consumers, received %d/%d", atomic.LoadInt64(&receivedCount), totalItems)
	}
}
