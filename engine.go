// Copyright 2026 The memalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memalloc

import (
	"fmt"
	"os"
	"unsafe"
)

// Allocator is the unsynchronized single-heap allocation engine. Its zero
// value is ready for use. An Allocator is safe for use from one goroutine
// at a time, or from many goroutines under external serialization; wrap it
// in a SyncAllocator for concurrent use without external locking.
type Allocator struct {
	free      freeLists
	heapArena arena
	heapStart uintptr // 0 until the first heap extension
	heapEnd   uintptr // exclusive upper bound of the heap region
	stats     Stats
}

// New returns a ready-to-use Allocator. Equivalent to new(Allocator).
func New() *Allocator { return &Allocator{} }

// Malloc allocates size bytes and returns the address of the payload, or
// nil if size is zero or the request cannot be satisfied. Malloc panics for
// a negative size, mirroring the underlying contract violation a C caller
// would trigger by passing a negative value through an unsigned parameter.
func (a *Allocator) Malloc(size int) (r unsafe.Pointer, err error) {
	if debugTrace {
		defer func() { fmt.Fprintf(os.Stderr, "Malloc(%#x) %p, %v\n", size, r, err) }()
	}
	if size < 0 {
		panic("memalloc: negative size")
	}
	if size == 0 {
		return nil, nil
	}
	return a.alloc(uintptr(size))
}

// maxPayloadSize is the largest n that align16(n + headerSize) can round up
// without wrapping around the top of the uintptr range. Calloc's overflow
// check catches a wrapped multiplication, but count*elemSize can itself
// land on a huge, non-wrapped uintptr value that only overflows once this
// header-and-alignment rounding is added to it; this bound catches that case
// too, for both Malloc and Calloc. Not a const: headerSize itself is a var
// (computed from align16, a function call, so it isn't a constant expression).
var maxPayloadSize = ^uintptr(0) - headerSize - (alignment - 1)

// alloc rounds n payload bytes to a block size, selects the mapped or heap
// path, and returns the payload address of a fresh in-use block.
func (a *Allocator) alloc(n uintptr) (unsafe.Pointer, error) {
	if n > maxPayloadSize {
		return nil, errRequestTooLarge
	}
	need := align16(n + headerSize)

	if need >= mmapThreshold {
		return a.allocMapped(need)
	}
	return a.allocHeap(need)
}

// allocMapped services a large request directly from a fresh anonymous
// mapping of exactly the rounded size.
func (a *Allocator) allocMapped(need uintptr) (unsafe.Pointer, error) {
	addr, ok := osMap(need)
	if !ok {
		return nil, errMapFailed
	}
	b := (*block)(unsafe.Pointer(addr))
	b.size = need
	b.isFree = false
	b.isMapped = true
	b.next, b.prev = nil, nil

	a.stats.TotalAllocated += uint64(need)
	a.stats.CurrentUsage += uint64(need)
	a.stats.Allocations++
	return payloadFromBlock(b), nil
}

// allocHeap services a small/medium request from the segregated free lists,
// extending the heap arena when no existing block fits.
func (a *Allocator) allocHeap(need uintptr) (unsafe.Pointer, error) {
	b := a.free.findFit(need)
	if b != nil {
		a.free.remove(b)
	} else {
		nb, err := a.extendHeap(need)
		if nb == nil {
			return nil, err
		}
		b = nb
	}

	a.splitBlock(b, need)

	b.isFree = false
	a.stats.TotalAllocated += uint64(b.size)
	a.stats.CurrentUsage += uint64(b.size)
	a.stats.Allocations++
	return payloadFromBlock(b), nil
}

// extendHeap grows the heap arena by at least need bytes (and at least
// brkIncrement), recording heap_start on first use and always advancing
// heap_end, then returns a single free block covering the whole new
// region. The block is not inserted into any free list — the caller is
// about to consume it immediately.
func (a *Allocator) extendHeap(need uintptr) (*block, error) {
	growSize := need
	if growSize < brkIncrement {
		growSize = brkIncrement
	}
	growSize = align16(growSize)

	oldEnd, ok := a.heapArena.grow(growSize)
	if !ok {
		return nil, errHeapExhausted
	}
	if a.heapStart == 0 {
		a.heapStart = oldEnd
	}
	a.heapEnd = oldEnd + growSize

	nb := (*block)(unsafe.Pointer(oldEnd))
	nb.size = growSize
	nb.isFree = true
	nb.isMapped = false
	nb.next, nb.prev = nil, nil
	return nb, nil
}

// splitBlock partitions b into an in-use leading block of exactly need
// bytes and a free trailing remainder, when the remainder would itself be
// a usable block (spec §4.4). It increments the split counter once per
// performed split.
func (a *Allocator) splitBlock(b *block, need uintptr) {
	if b.size < need+headerSize+minBlockSize {
		return
	}
	remainder := (*block)(unsafe.Pointer(uintptr(unsafe.Pointer(b)) + need))
	remainder.size = b.size - need
	remainder.isMapped = false
	remainder.next, remainder.prev = nil, nil
	a.free.insert(remainder)

	b.size = need
	a.stats.Splits++
}

// Free releases a block previously returned by Malloc, Calloc, or Realloc.
// Releasing a nil address is a no-op. Passing an address not obtained from
// this Allocator, or releasing the same address twice, is undefined
// behaviour with no diagnostic, consistent with the platform allocator
// contract.
func (a *Allocator) Free(p unsafe.Pointer) {
	if debugTrace {
		defer func() { fmt.Fprintf(os.Stderr, "Free(%p)\n", p) }()
	}
	if p == nil {
		return
	}

	b := blockFromPayload(p)
	if b.isMapped {
		a.stats.TotalFreed += uint64(b.size)
		a.stats.CurrentUsage -= uint64(b.size)
		a.stats.Frees++
		osUnmap(uintptr(unsafe.Pointer(b)), b.size)
		return
	}

	a.stats.TotalFreed += uint64(b.size)
	a.stats.CurrentUsage -= uint64(b.size)
	a.stats.Frees++

	b.isFree = true
	a.coalesceForward(b)
	a.free.insert(b)
}

// coalesceForward merges b with its immediate forward neighbour in the heap
// region, repeatedly, for as long as that neighbour is itself a free,
// non-mapped block wholly inside the heap bounds (spec §4.4). Merging with
// the block preceding b is out of scope: no backward links or boundary tags
// are kept, an acknowledged fragmentation trade-off.
func (a *Allocator) coalesceForward(b *block) {
	for {
		end := blockEnd(b)
		if end < a.heapStart || end+headerSize > a.heapEnd {
			return
		}
		succ := (*block)(unsafe.Pointer(end))
		if !succ.isFree || succ.isMapped {
			return
		}
		a.free.remove(succ)
		b.size += succ.size
		a.stats.Coalesces++
	}
}

// Calloc allocates space for count elements of elemSize bytes each and
// zeroes the result. It returns (nil, nil) if either argument is zero, and
// (nil, errRequestTooLarge) if count*elemSize overflows or is simply too
// large a payload for alloc to ever round up to a block size — the same
// error either way, since both are the same "caller asked for an
// unsatisfiable size" mistake from the outside.
func (a *Allocator) Calloc(count, elemSize int) (unsafe.Pointer, error) {
	if count < 0 || elemSize < 0 {
		panic("memalloc: negative size")
	}
	if count == 0 || elemSize == 0 {
		return nil, nil
	}

	total := uintptr(count) * uintptr(elemSize)
	if total/uintptr(count) != uintptr(elemSize) {
		return nil, errRequestTooLarge // overflow
	}

	p, err := a.alloc(total)
	if p == nil {
		return nil, err
	}
	zeroMemory(p, total)
	return p, nil
}

// Realloc resizes the block at p to size bytes, copying its prior content
// and releasing the old block if it moves. A nil p behaves as Malloc(size);
// a size of zero behaves as Free(p) and returns nil. If the existing
// block's payload capacity already covers size, p is returned unchanged —
// shrink-in-place is deliberately not implemented. On allocation failure
// the original block is left valid and unmodified.
func (a *Allocator) Realloc(p unsafe.Pointer, size int) (unsafe.Pointer, error) {
	if size < 0 {
		panic("memalloc: negative size")
	}
	if p == nil {
		return a.Malloc(size)
	}
	if size == 0 {
		a.Free(p)
		return nil, nil
	}

	b := blockFromPayload(p)
	if b.payloadCapacity() >= uintptr(size) {
		return p, nil
	}

	newP, err := a.alloc(uintptr(size))
	if newP == nil {
		return nil, err
	}

	// Copy length is the old block's full payload capacity, not the
	// caller's original request size (which the allocator never
	// tracked past rounding/splitting) — this may read into header
	// slack left over from a prior split, but never past the old
	// block's own end.
	copyMemory(newP, p, b.payloadCapacity())
	a.Free(p)
	return newP, nil
}

func zeroMemory(p unsafe.Pointer, n uintptr) {
	b := unsafe.Slice((*byte)(p), int(n))
	for i := range b {
		b[i] = 0
	}
}

func copyMemory(dst, src unsafe.Pointer, n uintptr) {
	d := unsafe.Slice((*byte)(dst), int(n))
	s := unsafe.Slice((*byte)(src), int(n))
	copy(d, s)
}
