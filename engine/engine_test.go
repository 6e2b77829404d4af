// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"github.com/tobuproto/tobu/descriptor"
	"github.com/tobuproto/tobu/wire"
)

// genericMessage is a map-backed Message used only by this package's tests.
// Real generated types hold one Go struct field per descriptor field and
// implement Get/Set as a type switch on field.Number; this stand-in does the
// same thing with a map so tests can build ad hoc descriptors without a
// generated package.
type genericMessage struct {
	values map[wire.FieldNumber]interface{}
	oneof  map[int]wire.FieldNumber // oneof index -> currently-set field number
}

func newGenericMessage() *genericMessage {
	return &genericMessage{values: make(map[wire.FieldNumber]interface{})}
}

func (m *genericMessage) Get(field *descriptor.FieldInfo) (interface{}, bool) {
	v, ok := m.values[field.Number]
	return v, ok
}

func (m *genericMessage) Set(field *descriptor.FieldInfo, value interface{}) {
	if field.InOneof() {
		if m.oneof == nil {
			m.oneof = make(map[int]wire.FieldNumber)
		}
		if prev, ok := m.oneof[field.OneofIndex]; ok && prev != field.Number {
			delete(m.values, prev)
		}
		m.oneof[field.OneofIndex] = field.Number
	}
	m.values[field.Number] = value
}

// fn builds a validated wire.FieldNumber, panicking on failure: every number
// used directly in this package's test tables is a constant known in
// advance to be valid.
func fn(n int32) wire.FieldNumber {
	num, err := wire.NewFieldNumber(n)
	if err != nil {
		panic(fmt.Sprintf("engine test: %v", err))
	}
	return num
}

func newGenericConstructor() func() interface{} {
	return func() interface{} { return newGenericMessage() }
}
