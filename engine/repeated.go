// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "github.com/tobuproto/tobu/descriptor"

// repeatedLen reports the number of elements in a repeated scalar field's
// current Go value. v is nil-safe: an absent slice has length 0.
func repeatedLen(t descriptor.Type, v interface{}) int {
	if v == nil {
		return 0
	}
	switch t {
	case descriptor.TypeDouble:
		return len(v.([]float64))
	case descriptor.TypeFloat:
		return len(v.([]float32))
	case descriptor.TypeInt32, descriptor.TypeSInt32, descriptor.TypeSFixed32, descriptor.TypeEnum:
		return len(v.([]int32))
	case descriptor.TypeInt64, descriptor.TypeSInt64, descriptor.TypeSFixed64:
		return len(v.([]int64))
	case descriptor.TypeUint32, descriptor.TypeFixed32:
		return len(v.([]uint32))
	case descriptor.TypeUint64, descriptor.TypeFixed64:
		return len(v.([]uint64))
	case descriptor.TypeBool:
		return len(v.([]bool))
	case descriptor.TypeString:
		return len(v.([]string))
	case descriptor.TypeBytes:
		return len(v.([][]byte))
	}
	panic("engine: repeatedLen: unsupported type " + t.String())
}

// repeatedElem returns the i'th element of a repeated scalar field's value,
// boxed the same way scalarSize/scalarPut expect it.
func repeatedElem(t descriptor.Type, v interface{}, i int) interface{} {
	switch t {
	case descriptor.TypeDouble:
		return v.([]float64)[i]
	case descriptor.TypeFloat:
		return v.([]float32)[i]
	case descriptor.TypeInt32, descriptor.TypeSInt32, descriptor.TypeSFixed32, descriptor.TypeEnum:
		return v.([]int32)[i]
	case descriptor.TypeInt64, descriptor.TypeSInt64, descriptor.TypeSFixed64:
		return v.([]int64)[i]
	case descriptor.TypeUint32, descriptor.TypeFixed32:
		return v.([]uint32)[i]
	case descriptor.TypeUint64, descriptor.TypeFixed64:
		return v.([]uint64)[i]
	case descriptor.TypeBool:
		return v.([]bool)[i]
	case descriptor.TypeString:
		return v.([]string)[i]
	case descriptor.TypeBytes:
		return v.([][]byte)[i]
	}
	panic("engine: repeatedElem: unsupported type " + t.String())
}

// appendRepeatedScalar appends elem (as produced by scalarFromWire) to cur,
// returning the updated slice boxed back into interface{}.
func appendRepeatedScalar(t descriptor.Type, cur interface{}, elem interface{}) interface{} {
	switch t {
	case descriptor.TypeDouble:
		s, _ := cur.([]float64)
		return append(s, elem.(float64))
	case descriptor.TypeFloat:
		s, _ := cur.([]float32)
		return append(s, elem.(float32))
	case descriptor.TypeInt32, descriptor.TypeSInt32, descriptor.TypeSFixed32, descriptor.TypeEnum:
		s, _ := cur.([]int32)
		return append(s, elem.(int32))
	case descriptor.TypeInt64, descriptor.TypeSInt64, descriptor.TypeSFixed64:
		s, _ := cur.([]int64)
		return append(s, elem.(int64))
	case descriptor.TypeUint32, descriptor.TypeFixed32:
		s, _ := cur.([]uint32)
		return append(s, elem.(uint32))
	case descriptor.TypeUint64, descriptor.TypeFixed64:
		s, _ := cur.([]uint64)
		return append(s, elem.(uint64))
	case descriptor.TypeBool:
		s, _ := cur.([]bool)
		return append(s, elem.(bool))
	case descriptor.TypeString:
		s, _ := cur.([]string)
		return append(s, elem.(string))
	case descriptor.TypeBytes:
		s, _ := cur.([][]byte)
		return append(s, elem.([]byte))
	}
	panic("engine: appendRepeatedScalar: unsupported type " + t.String())
}

// isPackableScalar reports whether t's wire type may use the packed
// length-delimited encoding (every scalar except string/bytes).
func isPackableScalar(t descriptor.Type) bool {
	switch t {
	case descriptor.TypeString, descriptor.TypeBytes, descriptor.TypeMessage, descriptor.TypeGroup:
		return false
	}
	return true
}
