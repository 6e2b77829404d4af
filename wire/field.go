// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

// Kind discriminates the variant held by a FieldValue.
type Kind uint8

const (
	KindVarint Kind = iota
	KindFixed32
	KindFixed64
	KindBytes
	KindStartGroup
	KindEndGroup
)

// FieldValue is the tagged union of everything a Parser step can produce:
// one of the four scalar wire payloads, or a group bracketing token.
// Groups are not materialized as nested collections here; StartGroup and
// EndGroup are bare markers that the schema-aware layer (engine) matches
// against each other.
type FieldValue struct {
	kind    Kind
	varint  uint64
	fixed32 uint32
	fixed64 uint64
	bytes   []byte
}

func ValueVarint(v uint64) FieldValue  { return FieldValue{kind: KindVarint, varint: v} }
func ValueFixed32(v uint32) FieldValue { return FieldValue{kind: KindFixed32, fixed32: v} }
func ValueFixed64(v uint64) FieldValue { return FieldValue{kind: KindFixed64, fixed64: v} }
func ValueBytes(b []byte) FieldValue   { return FieldValue{kind: KindBytes, bytes: b} }
func ValueStartGroup() FieldValue      { return FieldValue{kind: KindStartGroup} }
func ValueEndGroup() FieldValue        { return FieldValue{kind: KindEndGroup} }

// Kind reports which variant the value holds.
func (v FieldValue) Kind() Kind { return v.kind }

// Varint returns the payload of a KindVarint value.
func (v FieldValue) Varint() uint64 { return v.varint }

// Fixed32 returns the payload of a KindFixed32 value.
func (v FieldValue) Fixed32() uint32 { return v.fixed32 }

// Fixed64 returns the payload of a KindFixed64 value.
func (v FieldValue) Fixed64() uint64 { return v.fixed64 }

// Bytes returns the payload of a KindBytes value. It is a zero-copy
// subrange of the buffer the Parser was reading from.
func (v FieldValue) Bytes() []byte { return v.bytes }

// WireType reports the wire type that produced this value.
func (v FieldValue) WireType() WireType {
	switch v.kind {
	case KindVarint:
		return Varint
	case KindFixed32:
		return Fixed32
	case KindFixed64:
		return Fixed64
	case KindBytes:
		return Bytes
	case KindStartGroup:
		return StartGroup
	case KindEndGroup:
		return EndGroup
	}
	return Varint
}

// WireField pairs a field number with the value read for it.
type WireField struct {
	Number FieldNumber
	Value  FieldValue
}
