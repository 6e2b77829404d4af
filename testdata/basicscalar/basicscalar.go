// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package basicscalar is a hand-written stand-in for what tobu-gen would
// emit for a message exercising every scalar field type. Field numbers
// mirror the conformance layout this fixture is traditionally tested
// against (gaps included): 1-15 for the scalar fields in declaration
// order, 21 for the trailing enum field.
package basicscalar

import (
	"github.com/tobuproto/tobu/descriptor"
	"github.com/tobuproto/tobu/engine"
	"github.com/tobuproto/tobu/wire"
)

// NestedEnumInfo is the descriptor for BasicScalarTypes' nested enum field.
var NestedEnumInfo = &descriptor.EnumInfo{
	Name: "BasicScalarTypes.NestedEnum",
	Values: map[int32]string{
		0: "ZERO",
		1: "ONE",
		2: "TWO",
	},
}

// BasicScalarTypes holds one field of every protobuf scalar type. Every
// field is proto3 optional-by-default (no explicit presence tracking); a
// generated accessor style repeated across fields like this one is typical
// of what a code generator would lay out, so Get/Set are bulkier than
// hand-tuned code would be.
type BasicScalarTypes struct {
	OptionalInt32    int32
	OptionalInt64    int64
	OptionalUint32   uint32
	OptionalUint64   uint64
	OptionalSint32   int32
	OptionalSint64   int64
	OptionalFixed32  uint32
	OptionalFixed64  uint64
	OptionalSfixed32 int32
	OptionalSfixed64 int64
	OptionalFloat    float32
	OptionalDouble   float64
	OptionalBool     bool
	OptionalString   string
	OptionalBytes    []byte
	OptionalEnum     int32
}

const (
	fieldInt32 = iota + 1
	fieldInt64
	fieldUint32
	fieldUint64
	fieldSint32
	fieldSint64
	fieldFixed32
	fieldFixed64
	fieldSfixed32
	fieldSfixed64
	fieldFloat
	fieldDouble
	fieldBool
	fieldString
	fieldBytes
)

const fieldEnum = 21

// Get implements engine.Message.
func (m *BasicScalarTypes) Get(field *descriptor.FieldInfo) (interface{}, bool) {
	switch int32(field.Number) {
	case fieldInt32:
		return m.OptionalInt32, true
	case fieldInt64:
		return m.OptionalInt64, true
	case fieldUint32:
		return m.OptionalUint32, true
	case fieldUint64:
		return m.OptionalUint64, true
	case fieldSint32:
		return m.OptionalSint32, true
	case fieldSint64:
		return m.OptionalSint64, true
	case fieldFixed32:
		return m.OptionalFixed32, true
	case fieldFixed64:
		return m.OptionalFixed64, true
	case fieldSfixed32:
		return m.OptionalSfixed32, true
	case fieldSfixed64:
		return m.OptionalSfixed64, true
	case fieldFloat:
		return m.OptionalFloat, true
	case fieldDouble:
		return m.OptionalDouble, true
	case fieldBool:
		return m.OptionalBool, true
	case fieldString:
		return m.OptionalString, true
	case fieldBytes:
		return m.OptionalBytes, true
	case fieldEnum:
		return m.OptionalEnum, true
	}
	return nil, false
}

// Set implements engine.Message.
func (m *BasicScalarTypes) Set(field *descriptor.FieldInfo, value interface{}) {
	switch int32(field.Number) {
	case fieldInt32:
		m.OptionalInt32 = value.(int32)
	case fieldInt64:
		m.OptionalInt64 = value.(int64)
	case fieldUint32:
		m.OptionalUint32 = value.(uint32)
	case fieldUint64:
		m.OptionalUint64 = value.(uint64)
	case fieldSint32:
		m.OptionalSint32 = value.(int32)
	case fieldSint64:
		m.OptionalSint64 = value.(int64)
	case fieldFixed32:
		m.OptionalFixed32 = value.(uint32)
	case fieldFixed64:
		m.OptionalFixed64 = value.(uint64)
	case fieldSfixed32:
		m.OptionalSfixed32 = value.(int32)
	case fieldSfixed64:
		m.OptionalSfixed64 = value.(int64)
	case fieldFloat:
		m.OptionalFloat = value.(float32)
	case fieldDouble:
		m.OptionalDouble = value.(float64)
	case fieldBool:
		m.OptionalBool = value.(bool)
	case fieldString:
		m.OptionalString = value.(string)
	case fieldBytes:
		m.OptionalBytes = value.([]byte)
	case fieldEnum:
		m.OptionalEnum = value.(int32)
	}
}

func mustFieldNumber(n int32) wire.FieldNumber {
	fn, err := wire.NewFieldNumber(n)
	if err != nil {
		panic(err)
	}
	return fn
}

// Info is the static descriptor for BasicScalarTypes, built once at package
// init the way generated code would build it.
var Info = mustInfo()

func mustInfo() *descriptor.MessageInfo {
	mi, err := descriptor.NewMessageInfo("BasicScalarTypes", descriptor.Proto3, []descriptor.FieldInfo{
		{Name: "optional_int32", Number: mustFieldNumber(fieldInt32), Type: descriptor.TypeInt32, OneofIndex: descriptor.NoOneof},
		{Name: "optional_int64", Number: mustFieldNumber(fieldInt64), Type: descriptor.TypeInt64, OneofIndex: descriptor.NoOneof},
		{Name: "optional_uint32", Number: mustFieldNumber(fieldUint32), Type: descriptor.TypeUint32, OneofIndex: descriptor.NoOneof},
		{Name: "optional_uint64", Number: mustFieldNumber(fieldUint64), Type: descriptor.TypeUint64, OneofIndex: descriptor.NoOneof},
		{Name: "optional_sint32", Number: mustFieldNumber(fieldSint32), Type: descriptor.TypeSInt32, OneofIndex: descriptor.NoOneof},
		{Name: "optional_sint64", Number: mustFieldNumber(fieldSint64), Type: descriptor.TypeSInt64, OneofIndex: descriptor.NoOneof},
		{Name: "optional_fixed32", Number: mustFieldNumber(fieldFixed32), Type: descriptor.TypeFixed32, OneofIndex: descriptor.NoOneof},
		{Name: "optional_fixed64", Number: mustFieldNumber(fieldFixed64), Type: descriptor.TypeFixed64, OneofIndex: descriptor.NoOneof},
		{Name: "optional_sfixed32", Number: mustFieldNumber(fieldSfixed32), Type: descriptor.TypeSFixed32, OneofIndex: descriptor.NoOneof},
		{Name: "optional_sfixed64", Number: mustFieldNumber(fieldSfixed64), Type: descriptor.TypeSFixed64, OneofIndex: descriptor.NoOneof},
		{Name: "optional_float", Number: mustFieldNumber(fieldFloat), Type: descriptor.TypeFloat, OneofIndex: descriptor.NoOneof},
		{Name: "optional_double", Number: mustFieldNumber(fieldDouble), Type: descriptor.TypeDouble, OneofIndex: descriptor.NoOneof},
		{Name: "optional_bool", Number: mustFieldNumber(fieldBool), Type: descriptor.TypeBool, OneofIndex: descriptor.NoOneof},
		{Name: "optional_string", Number: mustFieldNumber(fieldString), Type: descriptor.TypeString, OneofIndex: descriptor.NoOneof},
		{Name: "optional_bytes", Number: mustFieldNumber(fieldBytes), Type: descriptor.TypeBytes, OneofIndex: descriptor.NoOneof},
		{Name: "optional_nested_enum", Number: mustFieldNumber(fieldEnum), Type: descriptor.TypeEnum, Enum: NestedEnumInfo, OneofIndex: descriptor.NoOneof},
	})
	if err != nil {
		panic(err)
	}
	mi.New = func() interface{} { return &BasicScalarTypes{} }
	return mi
}

var _ engine.Message = (*BasicScalarTypes)(nil)
