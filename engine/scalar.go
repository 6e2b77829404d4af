// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"
	"unicode/utf8"

	"github.com/tobuproto/tobu/descriptor"
	terrors "github.com/tobuproto/tobu/internal/errors"
	"github.com/tobuproto/tobu/wire"
)

// scalarIsZero reports whether v equals the zero value of its logical
// type, for the proto3 default-suppression rule. Message and Group fields
// never reach this function: their presence is carried by Get's "present"
// flag and the nil-ness of the Message value.
func scalarIsZero(t descriptor.Type, v interface{}) bool {
	switch t {
	case descriptor.TypeDouble:
		return v.(float64) == 0
	case descriptor.TypeFloat:
		return v.(float32) == 0
	case descriptor.TypeInt32, descriptor.TypeSInt32, descriptor.TypeSFixed32, descriptor.TypeEnum:
		return v.(int32) == 0
	case descriptor.TypeInt64, descriptor.TypeSInt64, descriptor.TypeSFixed64:
		return v.(int64) == 0
	case descriptor.TypeUint32, descriptor.TypeFixed32:
		return v.(uint32) == 0
	case descriptor.TypeUint64, descriptor.TypeFixed64:
		return v.(uint64) == 0
	case descriptor.TypeBool:
		return v.(bool) == false
	case descriptor.TypeString:
		return v.(string) == ""
	case descriptor.TypeBytes:
		return len(v.([]byte)) == 0
	}
	return false
}

// scalarSize returns the encoded size of v's payload (not including its
// tag) under logical type t.
func scalarSize(t descriptor.Type, v interface{}) int {
	switch t {
	case descriptor.TypeDouble:
		return wire.SizeFixed64
	case descriptor.TypeFloat:
		return wire.SizeFixed32
	case descriptor.TypeInt32:
		return wire.SizeVarint(uint64(int64(v.(int32))))
	case descriptor.TypeInt64:
		return wire.SizeVarint(uint64(v.(int64)))
	case descriptor.TypeUint32:
		return wire.SizeVarint(uint64(v.(uint32)))
	case descriptor.TypeUint64:
		return wire.SizeVarint(v.(uint64))
	case descriptor.TypeSInt32:
		return wire.SizeVarint(uint64(wire.EncodeZigZag32(v.(int32))))
	case descriptor.TypeSInt64:
		return wire.SizeVarint(wire.EncodeZigZag64(v.(int64)))
	case descriptor.TypeFixed32, descriptor.TypeSFixed32:
		return wire.SizeFixed32
	case descriptor.TypeFixed64, descriptor.TypeSFixed64:
		return wire.SizeFixed64
	case descriptor.TypeBool:
		return 1
	case descriptor.TypeString:
		return wire.SizeBytes(len(v.(string)))
	case descriptor.TypeBytes:
		return wire.SizeBytes(len(v.([]byte)))
	case descriptor.TypeEnum:
		return wire.SizeVarint(uint64(int64(v.(int32))))
	}
	panic("engine: scalarSize: unsupported type " + t.String())
}

// scalarPut appends v's payload (not including its tag) to buf under
// logical type t.
func scalarPut(buf []byte, t descriptor.Type, v interface{}) []byte {
	switch t {
	case descriptor.TypeDouble:
		return wire.PutFixed64(buf, math.Float64bits(v.(float64)))
	case descriptor.TypeFloat:
		return wire.PutFixed32(buf, math.Float32bits(v.(float32)))
	case descriptor.TypeInt32:
		return wire.PutVarint(buf, uint64(int64(v.(int32))))
	case descriptor.TypeInt64:
		return wire.PutVarint(buf, uint64(v.(int64)))
	case descriptor.TypeUint32:
		return wire.PutVarint(buf, uint64(v.(uint32)))
	case descriptor.TypeUint64:
		return wire.PutVarint(buf, v.(uint64))
	case descriptor.TypeSInt32:
		return wire.PutVarint(buf, uint64(wire.EncodeZigZag32(v.(int32))))
	case descriptor.TypeSInt64:
		return wire.PutVarint(buf, wire.EncodeZigZag64(v.(int64)))
	case descriptor.TypeFixed32:
		return wire.PutFixed32(buf, v.(uint32))
	case descriptor.TypeSFixed32:
		return wire.PutFixed32(buf, uint32(v.(int32)))
	case descriptor.TypeFixed64:
		return wire.PutFixed64(buf, v.(uint64))
	case descriptor.TypeSFixed64:
		return wire.PutFixed64(buf, uint64(v.(int64)))
	case descriptor.TypeBool:
		if v.(bool) {
			return wire.PutVarint(buf, 1)
		}
		return wire.PutVarint(buf, 0)
	case descriptor.TypeString:
		return wire.PutBytes(buf, []byte(v.(string)))
	case descriptor.TypeBytes:
		return wire.PutBytes(buf, v.([]byte))
	case descriptor.TypeEnum:
		return wire.PutVarint(buf, uint64(int64(v.(int32))))
	}
	panic("engine: scalarPut: unsupported type " + t.String())
}

// scalarFromWire converts a wire.FieldValue produced by the Parser into the
// native Go representation for logical type t. fieldName is used only to
// label an InvalidUTF8Error.
func scalarFromWire(t descriptor.Type, wv wire.FieldValue, fieldName string) (interface{}, error) {
	switch t {
	case descriptor.TypeDouble:
		return math.Float64frombits(wv.Fixed64()), nil
	case descriptor.TypeFloat:
		return math.Float32frombits(wv.Fixed32()), nil
	case descriptor.TypeInt32:
		return int32(wv.Varint()), nil
	case descriptor.TypeInt64:
		return int64(wv.Varint()), nil
	case descriptor.TypeUint32:
		return uint32(wv.Varint()), nil
	case descriptor.TypeUint64:
		return wv.Varint(), nil
	case descriptor.TypeSInt32:
		return wire.DecodeZigZag32(uint32(wv.Varint())), nil
	case descriptor.TypeSInt64:
		return wire.DecodeZigZag64(wv.Varint()), nil
	case descriptor.TypeFixed32:
		return wv.Fixed32(), nil
	case descriptor.TypeSFixed32:
		return int32(wv.Fixed32()), nil
	case descriptor.TypeFixed64:
		return wv.Fixed64(), nil
	case descriptor.TypeSFixed64:
		return int64(wv.Fixed64()), nil
	case descriptor.TypeBool:
		return wv.Varint() != 0, nil
	case descriptor.TypeString:
		b := wv.Bytes()
		if !utf8.Valid(b) {
			return nil, terrors.InvalidUTF8Error(fieldName)
		}
		return string(b), nil
	case descriptor.TypeBytes:
		return append([]byte(nil), wv.Bytes()...), nil
	case descriptor.TypeEnum:
		return int32(wv.Varint()), nil
	}
	panic("engine: scalarFromWire: unsupported type " + t.String())
}
