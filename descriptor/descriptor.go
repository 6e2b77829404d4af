// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package descriptor holds the static, read-only schema tables — MessageInfo,
// FieldInfo, EnumInfo — that the engine package walks to serialize and
// parse messages. Every exported constructor validates its invariants once
// at construction; after that, descriptor values are immutable and safe to
// share across any number of concurrent callers.
package descriptor

import (
	"fmt"

	"github.com/tobuproto/tobu/wire"
)

// Syntax selects proto2 or proto3 field-presence and default semantics.
type Syntax uint8

const (
	Proto2 Syntax = iota
	Proto3
)

// Cardinality is a field's multiplicity.
type Cardinality uint8

const (
	Optional Cardinality = iota
	Required
	Repeated
)

// Type is one of the 18 protobuf scalar/complex field types.
type Type uint8

const (
	TypeDouble Type = iota
	TypeFloat
	TypeInt32
	TypeInt64
	TypeUint32
	TypeUint64
	TypeSInt32
	TypeSInt64
	TypeFixed32
	TypeFixed64
	TypeSFixed32
	TypeSFixed64
	TypeBool
	TypeString
	TypeBytes
	TypeMessage
	TypeEnum
	TypeGroup
)

// WireType returns the wire type a field of logical type t is framed with.
// The mapping is fixed for the lifetime of a descriptor.
func (t Type) WireType() wire.WireType {
	switch t {
	case TypeDouble, TypeFixed64, TypeSFixed64:
		return wire.Fixed64
	case TypeFloat, TypeFixed32, TypeSFixed32:
		return wire.Fixed32
	case TypeInt32, TypeInt64, TypeUint32, TypeUint64, TypeSInt32, TypeSInt64, TypeBool, TypeEnum:
		return wire.Varint
	case TypeString, TypeBytes, TypeMessage:
		return wire.Bytes
	case TypeGroup:
		return wire.StartGroup
	}
	panic(fmt.Sprintf("descriptor: unknown Type %d", t))
}

func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeFloat:
		return "float"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeSInt32:
		return "sint32"
	case TypeSInt64:
		return "sint64"
	case TypeFixed32:
		return "fixed32"
	case TypeFixed64:
		return "fixed64"
	case TypeSFixed32:
		return "sfixed32"
	case TypeSFixed64:
		return "sfixed64"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeBytes:
		return "bytes"
	case TypeMessage:
		return "message"
	case TypeEnum:
		return "enum"
	case TypeGroup:
		return "group"
	}
	return "unknown"
}

// NoOneof marks a FieldInfo as not belonging to any oneof.
const NoOneof = -1

// FieldInfo describes one field of a MessageInfo: its number, cardinality,
// logical type, packed-ness, oneof membership, and, for Message/Group or
// Enum fields, a pointer to the child descriptor.
type FieldInfo struct {
	Name        string
	Number      wire.FieldNumber
	Cardinality Cardinality
	Type        Type
	Packed      bool
	OneofIndex  int // NoOneof if this field is not part of a oneof

	Message *MessageInfo // non-nil iff Type is TypeMessage or TypeGroup
	Enum    *EnumInfo    // non-nil iff Type is TypeEnum

	// Default is proto2 advisory metadata only; decode never applies it
	// to an absent field.
	Default interface{}
}

// InOneof reports whether the field is a member of a oneof.
func (f *FieldInfo) InOneof() bool { return f.OneofIndex != NoOneof }

// EnumInfo names an enum type's declared values. Decoding accepts any int32
// on the wire, declared or not; Values exists only for diagnostics and code
// generation, never consulted by the engine at decode time.
type EnumInfo struct {
	Name   string
	Values map[int32]string
}

// MessageInfo is the static schema for one message type: its name, proto2
// or proto3 syntax, and its fields in canonical walk order. Walk order is
// declaration order, not ascending field number; the emit pass writes
// fields in exactly this order.
type MessageInfo struct {
	Name   string
	Syntax Syntax
	Fields []FieldInfo
	IsMap  bool

	// New constructs a fresh, zeroed instance of the Go type this
	// MessageInfo describes, boxed as interface{} so this package need not
	// depend on the engine package that defines the Message interface the
	// result is expected to satisfy. Generated code sets this once, right
	// after building the MessageInfo, before the table is published for
	// concurrent use. The parse pass uses it to allocate submessages and
	// group bodies.
	New func() interface{}

	byNumber map[wire.FieldNumber]int
}

// NewMessageInfo checks that every field has a valid, unique number and
// that Message, Group, and Enum fields carry their child descriptor
// pointer, then returns an immutable MessageInfo.
func NewMessageInfo(name string, syntax Syntax, fields []FieldInfo) (*MessageInfo, error) {
	mi := &MessageInfo{
		Name:     name,
		Syntax:   syntax,
		Fields:   fields,
		byNumber: make(map[wire.FieldNumber]int, len(fields)),
	}
	for i := range fields {
		f := &fields[i]
		if !f.Number.IsValid() {
			return nil, fmt.Errorf("descriptor: message %s: field %q has invalid number %d", name, f.Name, f.Number)
		}
		if _, dup := mi.byNumber[f.Number]; dup {
			return nil, fmt.Errorf("descriptor: message %s: field number %d used more than once", name, f.Number)
		}
		mi.byNumber[f.Number] = i
		switch f.Type {
		case TypeMessage, TypeGroup:
			if f.Message == nil {
				return nil, fmt.Errorf("descriptor: message %s: field %q of type %s has nil Message descriptor", name, f.Name, f.Type)
			}
		case TypeEnum:
			if f.Enum == nil {
				return nil, fmt.Errorf("descriptor: message %s: field %q of type enum has nil Enum descriptor", name, f.Name)
			}
		}
	}
	return mi, nil
}

// NewMapEntryInfo builds the synthetic two-field MessageInfo used to encode
// a map: field 1 is the key, field 2 is the value, in that order.
func NewMapEntryInfo(name string, key, value FieldInfo) (*MessageInfo, error) {
	key.Number = 1
	value.Number = 2
	key.OneofIndex = NoOneof
	value.OneofIndex = NoOneof
	mi, err := NewMessageInfo(name, Proto3, []FieldInfo{key, value})
	if err != nil {
		return nil, err
	}
	mi.IsMap = true
	return mi, nil
}

// FieldByNumber looks up a field by wire number, returning its index into
// Fields and whether it was found. Used by the deserializer to resolve an
// incoming tag to a field without a linear scan.
func (mi *MessageInfo) FieldByNumber(n wire.FieldNumber) (*FieldInfo, int, bool) {
	i, ok := mi.byNumber[n]
	if !ok {
		return nil, 0, false
	}
	return &mi.Fields[i], i, true
}
