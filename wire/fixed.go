// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	terrors "github.com/tobuproto/tobu/internal/errors"
)

// SizeFixed32 is the encoded size of any fixed32-wire-typed value.
const SizeFixed32 = 4

// SizeFixed64 is the encoded size of any fixed64-wire-typed value.
const SizeFixed64 = 8

// PutFixed32 appends the 4-byte little-endian encoding of v to buf.
func PutFixed32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// PutFixed64 appends the 8-byte little-endian encoding of v to buf.
func PutFixed64(buf []byte, v uint64) []byte {
	return append(buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

// ParseFixed32 reads 4 little-endian bytes from the front of buf.
func ParseFixed32(buf []byte) (v uint32, n int, err error) {
	if len(buf) < 4 {
		return 0, 0, terrors.Eof
	}
	v = uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	return v, 4, nil
}

// ParseFixed64 reads 8 little-endian bytes from the front of buf.
func ParseFixed64(buf []byte) (v uint64, n int, err error) {
	if len(buf) < 8 {
		return 0, 0, terrors.Eof
	}
	v = uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 |
		uint64(buf[4])<<32 | uint64(buf[5])<<40 | uint64(buf[6])<<48 | uint64(buf[7])<<56
	return v, 8, nil
}
