// Copyright 2026 The memalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memalloc

import "testing"

func TestAlign16(t *testing.T) {
	cases := []struct{ in, want uintptr }{
		{0, 0},
		{1, 16},
		{15, 16},
		{16, 16},
		{17, 32},
		{100, 112},
		{128, 128},
	}
	for _, c := range cases {
		if got := align16(c.in); got != c.want {
			t.Errorf("align16(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestHeaderSizeIsAligned(t *testing.T) {
	if headerSize%alignment != 0 {
		t.Fatalf("headerSize = %d is not %d-aligned", headerSize, alignment)
	}
	if headerSize > minBlockSize {
		// Not a hard requirement, but worth knowing if it ever regresses:
		// a header alone should not exceed the minimum block size by much.
		t.Logf("headerSize (%d) exceeds minBlockSize (%d)", headerSize, minBlockSize)
	}
}

func TestPayloadBlockRoundTrip(t *testing.T) {
	a := New()
	p, err := a.Malloc(64)
	if err != nil || p == nil {
		t.Fatalf("Malloc failed: %v", err)
	}
	b := blockFromPayload(p)
	if payloadFromBlock(b) != p {
		t.Fatalf("payloadFromBlock(blockFromPayload(p)) != p")
	}
}
