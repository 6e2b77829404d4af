// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire implements the protobuf binary wire format: the five wire
// types (varint, fixed32, fixed64, length-delimited, start/end-group), tag
// encoding, zig-zag signed integers, and a pull-style Parser for iterating
// over a buffer one WireField at a time. It is stateless and allocates
// nothing beyond the caller-supplied buffers.
package wire

import (
	terrors "github.com/tobuproto/tobu/internal/errors"
)

// WireType identifies how a field's value is framed on the wire.
type WireType uint8

const (
	Varint     WireType = 0
	Fixed64    WireType = 1
	Bytes      WireType = 2
	StartGroup WireType = 3
	EndGroup   WireType = 4
	Fixed32    WireType = 5
)

func (t WireType) valid() bool {
	switch t {
	case Varint, Fixed64, Bytes, StartGroup, EndGroup, Fixed32:
		return true
	}
	return false
}

func (t WireType) String() string {
	switch t {
	case Varint:
		return "varint"
	case Fixed64:
		return "fixed64"
	case Bytes:
		return "bytes"
	case StartGroup:
		return "start_group"
	case EndGroup:
		return "end_group"
	case Fixed32:
		return "fixed32"
	default:
		return "invalid"
	}
}

// FieldNumber is a validated protobuf field tag number. The zero value is
// not a valid FieldNumber; use NewFieldNumber to construct one.
type FieldNumber int32

// minFieldNumber and maxFieldNumber bound the legal range. fieldNumberReservedLo
// and fieldNumberReservedHi carve out protobuf's reserved implementation
// range, which may never be used for an application field number.
const (
	minFieldNumber        = 1
	maxFieldNumber        = 1<<29 - 1
	fieldNumberReservedLo = 19000
	fieldNumberReservedHi = 19999
)

// NewFieldNumber validates n against protobuf's legal field-number ranges
// ([1, 2^29-1], excluding [19000,19999]) and returns it as a FieldNumber, or
// InvalidFieldNumber if it is out of range.
func NewFieldNumber(n int32) (FieldNumber, error) {
	if n < minFieldNumber || n > maxFieldNumber || (n >= fieldNumberReservedLo && n <= fieldNumberReservedHi) {
		return 0, terrors.InvalidFieldNumber(n)
	}
	return FieldNumber(n), nil
}

// IsValid reports whether n falls in protobuf's legal field-number range.
func (n FieldNumber) IsValid() bool {
	v := int32(n)
	return v >= minFieldNumber && v <= maxFieldNumber && !(v >= fieldNumberReservedLo && v <= fieldNumberReservedHi)
}

// PutTag appends the encoded tag for (num, typ) to buf.
func PutTag(buf []byte, num FieldNumber, typ WireType) []byte {
	return PutVarint(buf, uint64(num)<<3|uint64(typ))
}

// SizeTag is the encoded size of the tag for num.
func SizeTag(num FieldNumber) int {
	return SizeVarint(uint64(num) << 3)
}

// ParseTag reads a tag from the front of buf and splits it into a field
// number and wire type. Fails with InvalidWireType if the low 3 bits name
// an undefined wire type, or InvalidFieldNumber if the field number is out
// of protobuf's legal range.
func ParseTag(buf []byte) (num FieldNumber, typ WireType, n int, err error) {
	v, n, err := ParseVarint(buf)
	if err != nil {
		return 0, 0, 0, err
	}
	typ = WireType(v & 0x7)
	if !typ.valid() {
		return 0, 0, 0, terrors.InvalidWireType(v & 0x7)
	}
	// Range-check the full 61-bit field number before narrowing it to
	// FieldNumber, so an oversized tag is rejected rather than aliased onto
	// a small in-range number by the int32 conversion.
	fieldNum := int64(v >> 3)
	if fieldNum < minFieldNumber || fieldNum > maxFieldNumber ||
		(fieldNum >= fieldNumberReservedLo && fieldNum <= fieldNumberReservedHi) {
		return 0, 0, 0, terrors.InvalidFieldNumber(fieldNum)
	}
	return FieldNumber(fieldNum), typ, n, nil
}
