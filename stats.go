// Copyright 2026 The memalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memalloc

import (
	"fmt"
	"io"
	"os"
)

// Stats is a snapshot of the seven counters spec §3 and §4.5 define, as
// kept by one Allocator. All fields count bytes of the block (header included), not
// requested payload bytes — that distinction is observable through Stats
// and must not be "corrected" away.
type Stats struct {
	TotalAllocated uint64 // cumulative bytes ever handed out
	TotalFreed     uint64 // cumulative bytes ever returned
	CurrentUsage   uint64 // bytes currently in use
	Allocations    uint64 // cumulative allocation count
	Frees          uint64 // cumulative release count
	Splits         uint64 // cumulative split count
	Coalesces      uint64 // cumulative coalesce count
}

// Stats returns a copy of the allocator's current counters. Unsynchronized:
// callers sharing an Allocator across goroutines must quiesce them first.
func (a *Allocator) Stats() Stats {
	return a.stats
}

// DumpStats writes the counters as human-readable labeled lines to w.
func (a *Allocator) DumpStats(w io.Writer) {
	fmt.Fprintf(w, "Total allocated: %d bytes\n", a.stats.TotalAllocated)
	fmt.Fprintf(w, "Total freed: %d bytes\n", a.stats.TotalFreed)
	fmt.Fprintf(w, "Current usage: %d bytes\n", a.stats.CurrentUsage)
	fmt.Fprintf(w, "Number of allocations: %d\n", a.stats.Allocations)
	fmt.Fprintf(w, "Number of frees: %d\n", a.stats.Frees)
	fmt.Fprintf(w, "Number of splits: %d\n", a.stats.Splits)
	fmt.Fprintf(w, "Number of coalesces: %d\n", a.stats.Coalesces)
}

// PrintStats writes the counters to os.Stdout, matching the original
// mem_print_stats contract (spec §6).
func (a *Allocator) PrintStats() {
	a.DumpStats(os.Stdout)
}

// Reset zeroes every counter and empties every free list. It does not
// release heap memory back to the OS — the contiguous arena cannot be
// partially given back — so any pointer obtained before Reset must not be
// used afterward; the allocator otherwise behaves as if starting fresh.
func (a *Allocator) Reset() {
	a.stats = Stats{}
	a.free = freeLists{}
}
