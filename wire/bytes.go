// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	terrors "github.com/tobuproto/tobu/internal/errors"
)

// PutBytes appends the varint length prefix and then the payload itself to
// buf.
func PutBytes(buf []byte, payload []byte) []byte {
	buf = PutVarint(buf, uint64(len(payload)))
	return append(buf, payload...)
}

// SizeBytes is the encoded size of a length-delimited payload of the given
// length: the size of its varint length prefix plus the payload itself.
func SizeBytes(length int) int {
	return SizeVarint(uint64(length)) + length
}

// ParseBytes reads a varint length prefix followed by that many bytes from
// the front of buf. The returned slice is a zero-copy subrange of buf: it
// shares the caller's backing array rather than being copied.
func ParseBytes(buf []byte) (payload []byte, n int, err error) {
	length, ln, err := ParseVarint(buf)
	if err != nil {
		return nil, 0, err
	}
	total := ln + int(length)
	// Guard against the length overflowing int before comparing, and
	// against it exceeding what remains in buf.
	if length > uint64(len(buf)-ln) || total < ln {
		return nil, 0, terrors.Eof
	}
	return buf[ln:total], total, nil
}
