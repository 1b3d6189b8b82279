// File: pool/blockpool.go
// Package pool
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/internal/concurrency"
)

// ErrInvalidBlock is returned when releasing a block that does not belong to
// the pool, was already released, or was handed out by an earlier allocation.
var ErrInvalidBlock = errors.New("invalid block")

const inUseBit = 1

// Block is a handle to one fixed-size region of the arena. The zero Block is
// not valid.
type Block struct {
	Bytes      []byte
	index      int
	generation uint64
}

// Index returns the block position inside the arena.
func (b Block) Index() int { return b.index }

// Valid reports whether b came from Allocate.
func (b Block) Valid() bool { return b.Bytes != nil }

// Stats counts allocator activity.
type Stats struct {
	Allocated uint64 `json:"allocated"`
	Released  uint64 `json:"released"`
	Exhausted uint64 `json:"exhausted"`
	InUse     int    `json:"in_use"`
}

// BlockPool hands out numBlocks blocks of blockSize bytes. Allocate and
// Release are safe for concurrent use and never take a lock.
type BlockPool struct {
	blockSize int
	arena     []byte
	free      *concurrency.BoundedQueue[int]
	// state holds generation<<1 | inUseBit per block. Both halves change in
	// one CAS, so a handle is released at most once.
	state []atomic.Uint64

	allocated atomic.Uint64
	released  atomic.Uint64
	exhausted atomic.Uint64
	live      atomic.Int64
}

// NewBlockPool allocates the arena and marks every block free.
func NewBlockPool(blockSize, numBlocks int) (*BlockPool, error) {
	if blockSize <= 0 || numBlocks <= 0 {
		return nil, fmt.Errorf("block size %d, count %d: %w", blockSize, numBlocks, api.ErrInvalidArgument)
	}
	p := &BlockPool{
		blockSize: blockSize,
		arena:     make([]byte, blockSize*numBlocks),
		free:      concurrency.NewBoundedQueue[int](numBlocks),
		state:     make([]atomic.Uint64, numBlocks),
	}
	for i := 0; i < numBlocks; i++ {
		p.free.Enqueue(i)
	}
	return p, nil
}

// Allocate returns a zeroed block, or false when every block is in use.
func (p *BlockPool) Allocate() (Block, bool) {
	idx, ok := p.free.Dequeue()
	if !ok {
		p.exhausted.Add(1)
		return Block{}, false
	}
	// The index came off the free list, so the in-use bit is clear and no
	// Release can succeed on it until the bit is set here.
	s := p.state[idx].Add(inUseBit)
	off := idx * p.blockSize
	b := p.arena[off : off+p.blockSize : off+p.blockSize]
	clear(b)
	p.allocated.Add(1)
	p.live.Add(1)
	return Block{Bytes: b, index: idx, generation: s >> 1}, true
}

// Release returns b to the pool. The handle and every copy of it become
// invalid.
func (p *BlockPool) Release(b Block) error {
	if !b.Valid() || b.index < 0 || b.index >= len(p.state) {
		return fmt.Errorf("release index %d: %w", b.index, ErrInvalidBlock)
	}
	off := b.index * p.blockSize
	if len(b.Bytes) != p.blockSize || &b.Bytes[0] != &p.arena[off] {
		return fmt.Errorf("release index %d: foreign block: %w", b.index, ErrInvalidBlock)
	}
	held := b.generation<<1 | inUseBit
	if !p.state[b.index].CompareAndSwap(held, (b.generation+1)<<1) {
		if p.state[b.index].Load()>>1 != b.generation {
			return fmt.Errorf("release index %d: stale handle: %w", b.index, ErrInvalidBlock)
		}
		return fmt.Errorf("release index %d: double release: %w", b.index, ErrInvalidBlock)
	}
	p.free.Enqueue(b.index)
	p.released.Add(1)
	p.live.Add(-1)
	return nil
}

// Available returns the number of free blocks.
func (p *BlockPool) Available() int { return p.free.Len() }

// Capacity returns the total number of blocks.
func (p *BlockPool) Capacity() int { return len(p.state) }

// BlockSize returns the size of each block in bytes.
func (p *BlockPool) BlockSize() int { return p.blockSize }

// Stats returns allocator counters.
func (p *BlockPool) Stats() Stats {
	return Stats{
		Allocated: p.allocated.Load(),
		Released:  p.released.Load(),
		Exhausted: p.exhausted.Load(),
		InUse:     int(p.live.Load()),
	}
}
