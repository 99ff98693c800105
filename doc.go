// Copyright 2026 The memalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memalloc implements a general-purpose dynamic memory allocator
// that replaces the platform's malloc/free/calloc/realloc family for
// process-local code.
//
// It serves requests for variably sized byte buffers from memory obtained
// directly from the operating system: small and medium requests grow a
// single contiguous heap arena, large requests (>= 128KiB, after header and
// alignment) fall back to individually mapped anonymous pages. Free blocks
// are tracked in ten segregated free lists, split on allocation when they
// can spare a useful remainder, and coalesced forward with their immediate
// heap neighbour on release.
//
// Allocator is unsynchronized and safe for use from a single goroutine, or
// from many goroutines under external serialization. SyncAllocator wraps it
// behind a single mutex for concurrent use.
//
// Changelog
//
// 2026-07-31 Initial release: segregated free lists, forward coalescing,
// mmap large-object path, thread-safe wrapper.
package memalloc

import "os"

// debugTrace gates a per-call Fprintf to stderr from Malloc and Free, useful when chasing a
// leak or corruption report by hand. Off by default.
var debugTrace = os.Getenv("MEMALLOC_TRACE") != ""
