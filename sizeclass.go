// Copyright 2026 The memalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memalloc

// numSizeClasses is the number of segregated free lists the allocator
// maintains.
const numSizeClasses = 10

// sizeClassBounds holds the upper bound, in total block bytes, of each size
// class. A block belongs to the first class whose bound is >= its size; the
// last class has no finite bound. ^uintptr(0) is the largest representable
// value on either a 32- or 64-bit uintptr, unlike a fixed math.MaxUint64
// constant.
var sizeClassBounds = [numSizeClasses]uintptr{
	32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, ^uintptr(0),
}

// classify returns the size-class index a block of the given total size
// belongs to.
func classify(size uintptr) int {
	for i, bound := range sizeClassBounds {
		if size <= bound {
			return i
		}
	}
	return numSizeClasses - 1
}

// freeLists is the array of doubly linked free-list heads, one per size
// class. Insertion is at the head; search within a class walks head to
// tail; search across classes proceeds from a starting class upward.
type freeLists [numSizeClasses]*block

// insert adds b to the head of the free list matching its current size.
// b must not already be a member of any free list.
func (fl *freeLists) insert(b *block) {
	class := classify(b.size)
	b.isFree = true
	b.prev = nil
	b.next = fl[class]
	if fl[class] != nil {
		fl[class].prev = b
	}
	fl[class] = b
}

// remove detaches b from whichever free list it is the member of. b must
// currently be free.
func (fl *freeLists) remove(b *block) {
	class := classify(b.size)
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		fl[class] = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	}
	b.next = nil
	b.prev = nil
	b.isFree = false
}

// findFit searches classes starting at the class for need, ascending,
// returning the first free block whose size is >= need (first-fit within
// size-stratified classes).
func (fl *freeLists) findFit(need uintptr) *block {
	for class := classify(need); class < numSizeClasses; class++ {
		for b := fl[class]; b != nil; b = b.next {
			if b.size >= need {
				return b
			}
		}
	}
	return nil
}
