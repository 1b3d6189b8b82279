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

func TestBoundedQueue_CapacityRounding(t *testing.T) {
	assert.Equal(t, 2, NewBoundedQueue[int](0).Cap())
	assert.Equal(t, 8, NewBoundedQueue[int](5).Cap())
	assert.Equal(t, 16, NewBoundedQueue[int](16).Cap())
}

func TestBoundedQueue_FullAndEmpty(t *testing.T) {
	q := NewBoundedQueue[int](4)
	for i := 0; i < 4; i++ {
		require.True(t, q.Enqueue(i))
	}
	assert.False(t, q.Enqueue(99), "queue should be full")
	assert.Equal(t, 4, q.Len())

	for i := 0; i < 4; i++ {
		v, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := q.Dequeue()
	assert.False(t, ok)

	// wraps around after a full cycle
	require.True(t, q.Enqueue(7))
	v, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestBoundedQueue_MPMC(t *testing.T) {
	q := NewBoundedQueue[int](1024)
	producers := 10
	consumers := 10
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
				for !q.Enqueue(val) {
					runtime.Gosched()
				}
				atomic.AddInt64(&sentSum, int64(val))
			}
		}(p)
	}

	var consumerWg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consumerWg.Add(1)
		go func() {
			defer consumerWg.Done()
			for atomic.LoadInt64(&receivedCount) < totalItems {
				if val, ok := q.Dequeue(); ok {
					atomic.AddInt64(&receivedSum, int64(val))
					atomic.AddInt64(&receivedCount, 1)
				} else {
					runtime.Gosched()
				}
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
	case <-time.After(10 * time.Second):
		t.Fatalf("timeout waiting for consumers, received %d/%d", atomic.LoadInt64(&receivedCount), totalItems)
	}
}
