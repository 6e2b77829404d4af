// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"math/bits"

	terrors "github.com/tobuproto/tobu/internal/errors"
)

// maxVarintBytes is the longest a varint encoding of a uint64 is ever
// allowed to be: 10 bytes carry 70 bits of payload, 6 more than needed for
// 64 bits, which is exactly the slack protobuf's wire format allows.
const maxVarintBytes = 10

// PutVarint appends the varint encoding of v to buf and returns the
// extended slice. It always emits the minimal encoding: ⌈bits(v)/7⌉ bytes,
// one byte (0x00) for v == 0.
func PutVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// SizeVarint returns the number of bytes PutVarint would write for v,
// without doing the write. This is the exact floor of 1 + (bits-1)/7 for
// v >= 1, and 1 for v == 0, computed via leading-zero count rather than a
// shift loop.
func SizeVarint(v uint64) int {
	// bits.Len64(0) == 0, and the formula below still yields 1 in that case.
	return 1 + (bits.Len64(v))*9/64
}

// ParseVarint reads a varint from the front of buf. It accepts
// denormalized (longer-than-minimal) encodings and returns the decoded
// value together with the number of bytes consumed.
//
// Fails with Eof if buf ends before the continuation chain does. Fails
// with Overflow if the 10th byte still carries a continuation bit, or if
// its 7-bit payload would push the value past 2^64-1.
func ParseVarint(buf []byte) (v uint64, n int, err error) {
	for n = 0; n < maxVarintBytes; n++ {
		if n >= len(buf) {
			return 0, 0, terrors.Eof
		}
		b := buf[n]
		if n == maxVarintBytes-1 && (b&0xfe) != 0 {
			// 10th byte: only bit 0 of its 7-bit payload may be set,
			// else the value overflows 64 bits. A set continuation bit
			// here is also an overflow (no 11th byte is legal).
			return 0, 0, terrors.Overflow
		}
		v |= uint64(b&0x7f) << (7 * uint(n))
		if b < 0x80 {
			return v, n + 1, nil
		}
	}
	return 0, 0, terrors.Overflow
}
