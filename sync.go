// Copyright 2026 The memalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memalloc

import (
	"io"
	"sync"
	"unsafe"
)

// SyncAllocator wraps an Allocator behind a single, non-recursive
// mutual-exclusion lock owned by the SyncAllocator, turning the four public allocation
// operations into a thread-safe allocator (spec §4.6). At most one
// allocation-domain operation is in progress at any instant; operations
// from any goroutine are linearisable at the point of lock acquisition.
//
// Stats, DumpStats, PrintStats, and Reset are intentionally left
// unsynchronized — callers must quiesce other goroutines before using
// them, matching spec §4.6's explicit carve-out.
type SyncAllocator struct {
	mu sync.Mutex
	a  Allocator
}

// NewSync returns a ready-to-use SyncAllocator. Equivalent to
// new(SyncAllocator).
func NewSync() *SyncAllocator { return &SyncAllocator{} }

// Malloc is the guarded counterpart of Allocator.Malloc.
func (s *SyncAllocator) Malloc(size int) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Malloc(size)
}

// Free is the guarded counterpart of Allocator.Free.
func (s *SyncAllocator) Free(p unsafe.Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Free(p)
}

// Calloc is the guarded counterpart of Allocator.Calloc.
func (s *SyncAllocator) Calloc(count, elemSize int) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Calloc(count, elemSize)
}

// Realloc is the guarded counterpart of Allocator.Realloc.
func (s *SyncAllocator) Realloc(p unsafe.Pointer, size int) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Realloc(p, size)
}

// Stats returns a snapshot of the underlying Allocator's counters.
// Unsynchronized; see the type doc comment.
func (s *SyncAllocator) Stats() Stats { return s.a.Stats() }

// DumpStats writes the underlying Allocator's counters to w.
// Unsynchronized; see the type doc comment.
func (s *SyncAllocator) DumpStats(w io.Writer) { s.a.DumpStats(w) }

// PrintStats writes the underlying Allocator's counters to os.Stdout.
// Unsynchronized; see the type doc comment.
func (s *SyncAllocator) PrintStats() { s.a.PrintStats() }

// Reset zeroes the underlying Allocator's counters and free lists.
// Unsynchronized; see the type doc comment.
func (s *SyncAllocator) Reset() { s.a.Reset() }
