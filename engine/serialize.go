// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/tobuproto/tobu/descriptor"
	terrors "github.com/tobuproto/tobu/internal/errors"
	"github.com/tobuproto/tobu/wire"
)

// Encode runs the size-hint pass followed by the emit pass, returning an
// exactly-sized buffer. It writes fields in mi.Fields order, suppressing
// the identical set of fields the size pass suppressed.
func Encode(mi *descriptor.MessageInfo, msg Message) ([]byte, error) {
	n, err := Size(mi, msg)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, n)
	return appendMessage(buf, mi, msg, 0)
}

func appendMessage(buf []byte, mi *descriptor.MessageInfo, msg Message, depth int) ([]byte, error) {
	var err error
	for i := range mi.Fields {
		field := &mi.Fields[i]
		buf, err = appendField(buf, mi, field, msg, depth)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func appendField(buf []byte, mi *descriptor.MessageInfo, field *descriptor.FieldInfo, msg Message, depth int) ([]byte, error) {
	value, present := msg.Get(field)

	if field.Cardinality == descriptor.Repeated {
		return appendRepeatedField(buf, field, value, depth)
	}

	if field.Type == descriptor.TypeMessage || field.Type == descriptor.TypeGroup {
		child, ok := value.(Message)
		if !ok || child == nil {
			return buf, nil
		}
		return appendSubmessageField(buf, field, child, depth)
	}

	if !present {
		return buf, nil
	}
	if mi.Syntax == descriptor.Proto3 && !field.InOneof() && scalarIsZero(field.Type, value) {
		return buf, nil
	}
	buf = wire.PutTag(buf, field.Number, field.Type.WireType())
	buf = scalarPut(buf, field.Type, value)
	return buf, nil
}

func appendSubmessageField(buf []byte, field *descriptor.FieldInfo, child Message, depth int) ([]byte, error) {
	if depth+1 > MaxDepth {
		return nil, terrors.RecursionLimit
	}
	if field.Type == descriptor.TypeGroup {
		buf = wire.PutTag(buf, field.Number, wire.StartGroup)
		var err error
		buf, err = appendMessage(buf, field.Message, child, depth+1)
		if err != nil {
			return nil, err
		}
		buf = wire.PutTag(buf, field.Number, wire.EndGroup)
		return buf, nil
	}

	inner, err := sizeMessage(field.Message, child, depth+1)
	if err != nil {
		return nil, err
	}
	buf = wire.PutTag(buf, field.Number, wire.Bytes)
	buf = wire.PutVarint(buf, uint64(inner))
	iStart := len(buf)
	buf, err = appendMessage(buf, field.Message, child, depth+1)
	if err != nil {
		return nil, err
	}
	if len(buf)-iStart != inner {
		// The size and emit passes disagree — a programming error in a
		// Message implementation (e.g. Get returning different data on
		// successive calls), never a user-input fault.
		panic("engine: size and emit passes disagree on submessage length")
	}
	return buf, nil
}

func appendRepeatedField(buf []byte, field *descriptor.FieldInfo, value interface{}, depth int) ([]byte, error) {
	if field.Type == descriptor.TypeMessage || field.Type == descriptor.TypeGroup {
		children, _ := value.([]Message)
		var err error
		for _, child := range children {
			buf, err = appendSubmessageField(buf, field, child, depth)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	}

	n := repeatedLen(field.Type, value)
	if field.Packed {
		if !isPackableScalar(field.Type) {
			return nil, terrors.UnknownSeqLen
		}
		if n == 0 {
			return buf, nil
		}
		payload := 0
		for i := 0; i < n; i++ {
			payload += scalarSize(field.Type, repeatedElem(field.Type, value, i))
		}
		buf = wire.PutTag(buf, field.Number, wire.Bytes)
		buf = wire.PutVarint(buf, uint64(payload))
		for i := 0; i < n; i++ {
			buf = scalarPut(buf, field.Type, repeatedElem(field.Type, value, i))
		}
		return buf, nil
	}

	for i := 0; i < n; i++ {
		buf = wire.PutTag(buf, field.Number, field.Type.WireType())
		buf = scalarPut(buf, field.Type, repeatedElem(field.Type, value, i))
	}
	return buf, nil
}
