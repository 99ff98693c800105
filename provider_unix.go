// Copyright 2026 The memalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly || solaris

// Modifications (c) 2026 The memalloc Authors.

package memalloc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// osReserve reserves size bytes of address space with no access rights.
// Nothing is committed; pages fault until osCommit grants them
// PROT_READ|PROT_WRITE. The returned slice is the reservation's keep-alive
// handle: the caller must hold onto it (on its own arena, not a shared
// global) for as long as the reservation is in use, and pass it back into
// osCommit, mirroring the sysReserve/sysMap split in the Go runtime's own
// mem_linux.go.
func osReserve(size uintptr) (base uintptr, reserved uintptr, backing []byte, ok bool) {
	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return 0, 0, nil, false
	}
	addr := uintptr(unsafe.Pointer(&b[0]))
	return addr, uintptr(len(b)), b, true
}

// osCommit grants read/write access to the n bytes starting at addr, which
// must lie within backing, the keep-alive slice osReserve returned for this
// reservation.
func osCommit(backing []byte, addr uintptr, n uintptr) bool {
	base := uintptr(unsafe.Pointer(&backing[0]))
	if addr < base || addr+n > base+uintptr(len(backing)) {
		return false
	}
	off := addr - base
	return unix.Mprotect(backing[off:off+n], unix.PROT_READ|unix.PROT_WRITE) == nil
}

// osMap returns a fresh, page-aligned, read-write, private, anonymous
// mapping of length n bytes — the large-object path's acquisition
// primitive.
func osMap(n uintptr) (uintptr, bool) {
	b, err := unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return 0, false
	}
	return uintptr(unsafe.Pointer(&b[0])), true
}

// osUnmap returns a mapping obtained from osMap back to the OS.
func osUnmap(addr uintptr, n uintptr) bool {
	b := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(n))
	return unix.Munmap(b) == nil
}
