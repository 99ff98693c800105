// Copyright 2026 The memalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memalloc

import "unsafe"

const (
	// alignment is the natural alignment every returned payload address
	// and every block size must satisfy.
	alignment = 16

	// minBlockSize is the number of bytes, beyond a header, that the free
	// remainder of a split must at least hold: a split happens only when it
	// leaves a remainder of headerSize+minBlockSize bytes or more.
	minBlockSize = 32

	// mmapThreshold is the rounded block size at or above which an
	// allocation takes the mapped path instead of the heap path.
	mmapThreshold = 128 * 1024

	// brkIncrement is the minimum amount the heap arena grows by in one
	// extension step.
	brkIncrement = 64 * 1024
)

// block is the fixed-layout header placed at the start of every block,
// whether free, in use, heap-resident or mapped. The payload, when any,
// immediately follows the header in memory.
type block struct {
	size     uintptr
	next     *block
	prev     *block
	isFree   bool
	isMapped bool
}

// headerSize is the header footprint rounded up to alignment, so that the
// payload that follows it is itself 16-aligned whenever the block's address
// is.
var headerSize = align16(uintptr(unsafe.Sizeof(block{})))

// align16 rounds x up to the next multiple of alignment.
func align16(x uintptr) uintptr {
	return (x + alignment - 1) &^ (alignment - 1)
}

// blockFromPayload recovers the block header that precedes a payload
// address previously handed to a caller.
func blockFromPayload(p unsafe.Pointer) *block {
	return (*block)(unsafe.Pointer(uintptr(p) - headerSize))
}

// payloadFromBlock returns the address of the first payload byte following
// b's header.
func payloadFromBlock(b *block) unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(b)) + headerSize)
}

// blockEnd returns the address one past the last byte of b.
func blockEnd(b *block) uintptr {
	return uintptr(unsafe.Pointer(b)) + b.size
}

// payloadCapacity reports how many usable payload bytes b carries.
func (b *block) payloadCapacity() uintptr {
	return b.size - headerSize
}
