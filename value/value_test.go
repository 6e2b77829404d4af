// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"bytes"
	"testing"

	"github.com/tobuproto/tobu/wire"
)

func putVarintField(buf []byte, num wire.FieldNumber, v uint64) []byte {
	buf = wire.PutTag(buf, num, wire.Varint)
	return wire.PutVarint(buf, v)
}

func putBytesField(buf []byte, num wire.FieldNumber, b []byte) []byte {
	buf = wire.PutTag(buf, num, wire.Bytes)
	buf = wire.PutVarint(buf, uint64(len(b)))
	return append(buf, b...)
}

func TestDecodeVarintIsNumber(t *testing.T) {
	buf := putVarintField(nil, fn(1), 150)
	m, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, ok := m.Get(1)
	if !ok {
		t.Fatal("field 1 missing")
	}
	if v.Kind() != KindNumber {
		t.Fatalf("Kind() = %v, want KindNumber", v.Kind())
	}
	if got := v.Uint(); got != 150 {
		t.Fatalf("Uint() = %d, want 150", got)
	}
}

func TestDecodeFixed32ReinterpretsAsFloat32(t *testing.T) {
	var buf []byte
	buf = wire.PutTag(buf, fn(1), wire.Fixed32)
	buf = wire.PutFixed32(buf, 0x3f800000) // 1.0f
	m, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, ok := m.Get(1)
	if !ok {
		t.Fatal("field 1 missing")
	}
	if v.Float32() != 1.0 {
		t.Fatalf("Float32() = %v, want 1.0", v.Float32())
	}
}

func TestDecodeFixed64ReinterpretsAsFloat64(t *testing.T) {
	var buf []byte
	buf = wire.PutTag(buf, fn(1), wire.Fixed64)
	buf = wire.PutFixed64(buf, 0x3ff0000000000000) // 1.0
	m, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, _ := m.Get(1)
	if v.Float64() != 1.0 {
		t.Fatalf("Float64() = %v, want 1.0", v.Float64())
	}
}

func TestDecodeValidUTF8BytesAreString(t *testing.T) {
	buf := putBytesField(nil, fn(1), []byte("hello"))
	m, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, ok := m.Get(1)
	if !ok {
		t.Fatal("field 1 missing")
	}
	if v.Kind() != KindString {
		t.Fatalf("Kind() = %v, want KindString", v.Kind())
	}
	if v.String() != "hello" {
		t.Fatalf("String() = %q, want %q", v.String(), "hello")
	}
}

func TestDecodeInvalidUTF8BytesAreBytes(t *testing.T) {
	buf := putBytesField(nil, fn(1), []byte{0xff, 0xfe})
	m, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, ok := m.Get(1)
	if !ok {
		t.Fatal("field 1 missing")
	}
	if v.Kind() != KindBytes {
		t.Fatalf("Kind() = %v, want KindBytes", v.Kind())
	}
	if !bytes.Equal(v.Bytes(), []byte{0xff, 0xfe}) {
		t.Fatalf("Bytes() = % x, want ff fe", v.Bytes())
	}
}

func TestDecodeNestedMessageBytesAreMessage(t *testing.T) {
	inner := putVarintField(nil, fn(1), 42)
	outer := putBytesField(nil, fn(1), inner)
	m, err := Decode(outer)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, ok := m.Get(1)
	if !ok {
		t.Fatal("field 1 missing")
	}
	if v.Kind() != KindMessage {
		t.Fatalf("Kind() = %v, want KindMessage", v.Kind())
	}
	inside, ok := v.Message().Get(1)
	if !ok {
		t.Fatal("nested field 1 missing")
	}
	if inside.Uint() != 42 {
		t.Fatalf("nested Uint() = %d, want 42", inside.Uint())
	}
}

func TestDecodeRepeatedFieldCollapsesToList(t *testing.T) {
	var buf []byte
	buf = putVarintField(buf, fn(1), 1)
	buf = putVarintField(buf, fn(1), 2)
	buf = putVarintField(buf, fn(1), 3)
	m, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, ok := m.Get(1)
	if !ok {
		t.Fatal("field 1 missing")
	}
	if v.Kind() != KindList {
		t.Fatalf("Kind() = %v, want KindList", v.Kind())
	}
	list := v.List()
	if len(list) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(list))
	}
	for i, want := range []uint64{1, 2, 3} {
		if got := list[i].Uint(); got != want {
			t.Fatalf("List()[%d].Uint() = %d, want %d", i, got, want)
		}
	}
}

func TestAsMapRoundTrip(t *testing.T) {
	entry := func(k, v uint64) []byte {
		var e []byte
		e = putVarintField(e, fn(1), k)
		e = putVarintField(e, fn(2), v)
		return e
	}
	var buf []byte
	buf = putBytesField(buf, fn(1), entry(10, 100))
	buf = putBytesField(buf, fn(1), entry(20, 200))

	m, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, ok := m.Get(1)
	if !ok {
		t.Fatal("field 1 missing")
	}
	asMap, ok := v.AsMap()
	if !ok {
		t.Fatal("AsMap() returned false")
	}
	entries := asMap.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(Entries()) = %d, want 2", len(entries))
	}
	if entries[0].Key.Uint() != 10 || entries[0].Value.Uint() != 100 {
		t.Fatalf("entries[0] = %+v", entries[0])
	}
	if entries[1].Key.Uint() != 20 || entries[1].Value.Uint() != 200 {
		t.Fatalf("entries[1] = %+v", entries[1])
	}
}

func TestAsMapRejectsNonListValue(t *testing.T) {
	buf := putVarintField(nil, fn(1), 5)
	m, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, _ := m.Get(1)
	if _, ok := v.AsMap(); ok {
		t.Fatal("AsMap() = true for a non-list value, want false")
	}
}

func TestDecodeGroupBecomesMessage(t *testing.T) {
	var buf []byte
	buf = wire.PutTag(buf, fn(1), wire.StartGroup)
	buf = putVarintField(buf, fn(2), 7)
	buf = wire.PutTag(buf, fn(1), wire.EndGroup)

	m, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, ok := m.Get(1)
	if !ok {
		t.Fatal("field 1 missing")
	}
	if v.Kind() != KindMessage {
		t.Fatalf("Kind() = %v, want KindMessage", v.Kind())
	}
	inner, ok := v.Message().Get(2)
	if !ok {
		t.Fatal("inner field 2 missing")
	}
	if inner.Uint() != 7 {
		t.Fatalf("inner Uint() = %d, want 7", inner.Uint())
	}
}

func TestDecodeGroupMismatchedTerminatorErrors(t *testing.T) {
	var buf []byte
	buf = wire.PutTag(buf, fn(1), wire.StartGroup)
	buf = wire.PutTag(buf, fn(2), wire.EndGroup)

	if _, err := Decode(buf); err == nil {
		t.Fatal("Decode: want error for mismatched group terminator, got nil")
	}
}

func TestDecodeUnterminatedGroupErrors(t *testing.T) {
	var buf []byte
	buf = wire.PutTag(buf, fn(1), wire.StartGroup)
	buf = putVarintField(buf, fn(2), 1)

	if _, err := Decode(buf); err == nil {
		t.Fatal("Decode: want error for unterminated group, got nil")
	}
}

func TestDumpProducesNonEmptyOutput(t *testing.T) {
	buf := putVarintField(nil, fn(1), 9)
	m, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var out bytes.Buffer
	Dump(&out, m)
	if out.Len() == 0 {
		t.Fatal("Dump wrote nothing")
	}
}

func fn(n int32) wire.FieldNumber {
	num, err := wire.NewFieldNumber(n)
	if err != nil {
		panic(err)
	}
	return num
}
