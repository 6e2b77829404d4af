// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"errors"
	"testing"

	terrors "github.com/tobuproto/tobu/internal/errors"
)

func TestBytesRoundTrip(t *testing.T) {
	one, _ := NewFieldNumber(1)
	var buf []byte
	buf = PutTag(buf, one, Bytes)
	buf = PutBytes(buf, []byte("hello"))
	if got, want := hexSpace(buf), "0a 05 68 65 6c 6c 6f"; got != want {
		t.Errorf("encode = %q, want %q", got, want)
	}

	num, typ, n, err := ParseTag(buf)
	if err != nil || num != one || typ != Bytes {
		t.Fatalf("ParseTag = %d,%d,%v", num, typ, err)
	}
	payload, m, err := ParseBytes(buf[n:])
	if err != nil {
		t.Fatal(err)
	}
	if string(payload) != "hello" || n+m != len(buf) {
		t.Errorf("ParseBytes = %q, %d; want hello, %d", payload, n+m, len(buf))
	}
}

func TestBytesZeroCopy(t *testing.T) {
	buf := PutBytes(nil, []byte("shared"))
	payload, _, err := ParseBytes(buf)
	if err != nil {
		t.Fatal(err)
	}
	// Mutating the source buffer should be visible through payload: they
	// must share a backing array.
	buf[len(buf)-1] = 'X'
	if payload[len(payload)-1] != 'X' {
		t.Error("ParseBytes did not return a zero-copy view of buf")
	}
}

func TestBytesEof(t *testing.T) {
	buf := PutVarint(nil, 10) // claims 10 bytes follow, but none do
	_, _, err := ParseBytes(buf)
	if !errors.Is(err, terrors.Eof) {
		t.Errorf("ParseBytes error = %v, want Eof", err)
	}
}
