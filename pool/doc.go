// File: pool/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package pool provides a fixed-capacity block allocator. All blocks live in
// one contiguous arena allocated up front; a lock-free index queue tracks the
// free ones, and per-block generation counters reject stale handles.
package pool
