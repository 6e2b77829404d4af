// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/tobuproto/tobu/descriptor"
	terrors "github.com/tobuproto/tobu/internal/errors"
	"github.com/tobuproto/tobu/wire"
)

// MaxDepth bounds submessage and group nesting for the size, emit, and
// parse passes alike.
const MaxDepth = 100

// Size computes the exact encoded size of msg under mi without writing
// anything. Encode calls this internally so its output buffer can be
// allocated exactly once.
func Size(mi *descriptor.MessageInfo, msg Message) (int, error) {
	return sizeMessage(mi, msg, 0)
}

func sizeMessage(mi *descriptor.MessageInfo, msg Message, depth int) (int, error) {
	if depth > MaxDepth {
		return 0, terrors.RecursionLimit
	}
	total := 0
	for i := range mi.Fields {
		field := &mi.Fields[i]
		n, err := sizeField(mi, field, msg, depth)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func sizeField(mi *descriptor.MessageInfo, field *descriptor.FieldInfo, msg Message, depth int) (int, error) {
	value, present := msg.Get(field)

	if field.Cardinality == descriptor.Repeated {
		return sizeRepeatedField(field, value, depth)
	}

	if field.Type == descriptor.TypeMessage || field.Type == descriptor.TypeGroup {
		child, ok := value.(Message)
		if !ok || child == nil {
			return 0, nil
		}
		return sizeSubmessageField(field, child, depth)
	}

	if !present {
		return 0, nil
	}
	if mi.Syntax == descriptor.Proto3 && !field.InOneof() && scalarIsZero(field.Type, value) {
		return 0, nil
	}
	return wire.SizeTag(field.Number) + scalarSize(field.Type, value), nil
}

func sizeSubmessageField(field *descriptor.FieldInfo, child Message, depth int) (int, error) {
	if field.Type == descriptor.TypeGroup {
		inner, err := sizeMessage(field.Message, child, depth+1)
		if err != nil {
			return 0, err
		}
		return wire.SizeTag(field.Number) + inner + wire.SizeTag(field.Number), nil
	}
	inner, err := sizeMessage(field.Message, child, depth+1)
	if err != nil {
		return 0, err
	}
	return wire.SizeTag(field.Number) + wire.SizeBytes(inner), nil
}

func sizeRepeatedField(field *descriptor.FieldInfo, value interface{}, depth int) (int, error) {
	if field.Type == descriptor.TypeMessage || field.Type == descriptor.TypeGroup {
		children, _ := value.([]Message)
		total := 0
		for _, child := range children {
			n, err := sizeSubmessageField(field, child, depth)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}

	n := repeatedLen(field.Type, value)
	if field.Packed {
		if !isPackableScalar(field.Type) {
			return 0, terrors.UnknownSeqLen
		}
		if n == 0 {
			return 0, nil
		}
		payload := 0
		for i := 0; i < n; i++ {
			payload += scalarSize(field.Type, repeatedElem(field.Type, value, i))
		}
		return wire.SizeTag(field.Number) + wire.SizeBytes(payload), nil
	}

	total := 0
	for i := 0; i < n; i++ {
		total += wire.SizeTag(field.Number) + scalarSize(field.Type, repeatedElem(field.Type, value, i))
	}
	return total, nil
}
