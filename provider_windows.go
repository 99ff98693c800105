// Copyright 2026 The memalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

// Modifications (c) 2026 The memalloc Authors.

package memalloc

import (
	"golang.org/x/sys/windows"
)

// osReserve reserves size bytes of address space with MEM_RESERVE and no
// access rights. Committing happens later, incrementally, via osCommit.
// VirtualAlloc addresses are not backed by a Go-managed slice, so the
// returned backing handle is always nil on this platform; it exists only to
// keep the cross-platform osReserve/osCommit signature uniform with Unix.
func osReserve(size uintptr) (base uintptr, reserved uintptr, backing []byte, ok bool) {
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return 0, 0, nil, false
	}
	return addr, size, nil, true
}

// osCommit grants PAGE_READWRITE access to the n bytes starting at addr,
// which must lie within a region previously returned by osReserve. backing
// is unused on Windows; the reservation is identified by address alone.
func osCommit(backing []byte, addr uintptr, n uintptr) bool {
	_, err := windows.VirtualAlloc(addr, n, windows.MEM_COMMIT, windows.PAGE_READWRITE)
	return err == nil
}

// osMap reserves and commits a fresh read-write anonymous region of length
// n bytes in one step — the large-object path's acquisition primitive.
func osMap(n uintptr) (uintptr, bool) {
	addr, err := windows.VirtualAlloc(0, n, windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return 0, false
	}
	return addr, true
}

// osUnmap returns a mapping obtained from osMap back to the OS.
func osUnmap(addr uintptr, _ uintptr) bool {
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE) == nil
}
