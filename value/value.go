// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value is a schema-less view onto protobuf wire bytes: a tagged
// union (Bool, Number, Enum, Bytes, String, Message, List, Map) that a
// caller can walk without a compiled descriptor. It generalizes the flat,
// print-only dump that golang-protobuf's protobuf3.Buffer.DebugPrint does
// into a reusable, structured value — same wire-level distinctions
// (varint/fixed32/fixed64/bytes/group), but returned as data instead of
// printed directly.
//
// Decode cannot tell a bool from an enum from a plain integer, or a packed
// submessage from an opaque byte string, without a descriptor: those
// distinctions require schema. Decode only produces the variants it can
// determine from the bytes alone (Number, Bytes, String, Message, List);
// Bool, Enum, and Map exist in Kind for callers that reinterpret a Value
// once they do have schema information (see AsMap).
package value

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tobuproto/tobu/wire"
)

// Kind discriminates the variant held by a Value.
type Kind uint8

const (
	KindBool Kind = iota
	KindNumber
	KindEnum
	KindBytes
	KindString
	KindMessage
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindEnum:
		return "enum"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindMessage:
		return "message"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return "invalid"
}

// Value is the tagged union itself. The zero Value is an invalid value;
// use one of the New* constructors or a Message field lookup to obtain one.
type Value struct {
	kind     Kind
	boolean  bool
	wireKind wire.Kind // meaningful only when kind == KindNumber or KindEnum
	raw      uint64
	str      string
	bytes    []byte
	msg      *Message
	list     []Value
	entries  []MapEntry
}

// MapEntry is one key/value pair of a Value with Kind() == KindMap.
type MapEntry struct {
	Key   Value
	Value Value
}

func newNumber(wk wire.Kind, raw uint64) Value {
	return Value{kind: KindNumber, wireKind: wk, raw: raw}
}

// NewBool constructs a Kind() == KindBool value.
func NewBool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// NewEnum constructs a Kind() == KindEnum value from a raw int32.
func NewEnum(n int32) Value { return Value{kind: KindEnum, raw: uint64(int64(n))} }

// NewString constructs a Kind() == KindString value.
func NewString(s string) Value { return Value{kind: KindString, str: s} }

// NewBytes constructs a Kind() == KindBytes value.
func NewBytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// NewMessage constructs a Kind() == KindMessage value.
func NewMessage(m *Message) Value { return Value{kind: KindMessage, msg: m} }

// NewList constructs a Kind() == KindList value.
func NewList(vs []Value) Value { return Value{kind: KindList, list: vs} }

// NewMap constructs a Kind() == KindMap value.
func NewMap(entries []MapEntry) Value { return Value{kind: KindMap, entries: entries} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the payload of a KindBool value.
func (v Value) Bool() bool { return v.boolean }

// Int returns a KindNumber or KindEnum value reinterpreted as a signed
// integer: a fixed32 payload is sign-extended from 32 bits; varint and
// fixed64 payloads are reinterpreted as-is (a negative int32 or enum is
// already held sign-extended to 64 bits).
func (v Value) Int() int64 {
	switch v.wireKind {
	case wire.KindFixed32:
		return int64(int32(uint32(v.raw)))
	default:
		return int64(v.raw)
	}
}

// Uint returns a KindNumber or KindEnum value reinterpreted as an unsigned
// integer, bit pattern unchanged.
func (v Value) Uint() uint64 { return v.raw }

// Float32 reinterprets a KindNumber value that came from a Fixed32 token as
// an IEEE-754 single-precision float.
func (v Value) Float32() float32 { return math.Float32frombits(uint32(v.raw)) }

// Float64 reinterprets a KindNumber value that came from a Fixed64 token as
// an IEEE-754 double-precision float.
func (v Value) Float64() float64 { return math.Float64frombits(v.raw) }

// String returns the payload of a KindString value.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBytes:
		return string(v.bytes)
	}
	return ""
}

// Bytes returns the payload of a KindBytes value.
func (v Value) Bytes() []byte { return v.bytes }

// Message returns the payload of a KindMessage value.
func (v Value) Message() *Message { return v.msg }

// List returns the payload of a KindList value.
func (v Value) List() []Value { return v.list }

// Entries returns the payload of a KindMap value.
func (v Value) Entries() []MapEntry { return v.entries }

// AsMap reinterprets a KindList of two-field KindMessage values (the shape
// a protobuf map field takes on the wire, key=1/value=2) as a KindMap,
// given the caller knows from schema that the field was declared `map<>`.
// It returns false if v is not shaped that way.
func (v Value) AsMap() (Value, bool) {
	if v.kind != KindList {
		return Value{}, false
	}
	entries := make([]MapEntry, 0, len(v.list))
	for _, elem := range v.list {
		if elem.kind != KindMessage {
			return Value{}, false
		}
		key, hasKey := elem.msg.Get(1)
		val, hasVal := elem.msg.Get(2)
		if !hasKey || !hasVal {
			return Value{}, false
		}
		entries = append(entries, MapEntry{Key: key, Value: val})
	}
	return NewMap(entries), true
}

// Message is a schema-less decoded message: field number to value, where a
// field that occurred more than once on the wire is collapsed into a
// single KindList value rather than exposed as separate entries.
type Message struct {
	Fields map[wire.FieldNumber]Value
}

// Get looks up a field by number.
func (m *Message) Get(n int32) (Value, bool) {
	num, err := wire.NewFieldNumber(n)
	if err != nil {
		return Value{}, false
	}
	v, ok := m.Fields[num]
	return v, ok
}

// Decode walks buf with no descriptor guidance, producing a Message whose
// field values are typed as precisely as the wire bytes alone allow.
// Ambiguous length-delimited fields are classified in order: a payload
// that itself parses completely as a sequence of valid wire tokens becomes
// a nested Message; otherwise, payload valid as UTF-8 becomes a String;
// otherwise Bytes.
func Decode(buf []byte) (*Message, error) {
	return decodeMessage(buf)
}

func decodeMessage(buf []byte) (*Message, error) {
	p := wire.NewParser(buf)
	collected := make(map[wire.FieldNumber][]Value)
	var order []wire.FieldNumber
	for {
		wf, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := decodeToken(p, wf)
		if err != nil {
			return nil, err
		}
		if _, seen := collected[wf.Number]; !seen {
			order = append(order, wf.Number)
		}
		collected[wf.Number] = append(collected[wf.Number], v)
	}

	fields := make(map[wire.FieldNumber]Value, len(order))
	for _, num := range order {
		vs := collected[num]
		if len(vs) == 1 {
			fields[num] = vs[0]
			continue
		}
		fields[num] = NewList(vs)
	}
	return &Message{Fields: fields}, nil
}

func decodeToken(p *wire.Parser, wf wire.WireField) (Value, error) {
	switch wf.Value.Kind() {
	case wire.KindVarint:
		return newNumber(wire.KindVarint, wf.Value.Varint()), nil
	case wire.KindFixed32:
		return newNumber(wire.KindFixed32, uint64(wf.Value.Fixed32())), nil
	case wire.KindFixed64:
		return newNumber(wire.KindFixed64, wf.Value.Fixed64()), nil
	case wire.KindBytes:
		return classifyBytes(wf.Value.Bytes()), nil
	case wire.KindStartGroup:
		return decodeGroupToken(p, wf.Number)
	}
	return Value{}, fmt.Errorf("value: unexpected token kind for field %d", int32(wf.Number))
}

func classifyBytes(b []byte) Value {
	if len(b) > 0 {
		if m, err := decodeMessage(b); err == nil && len(m.Fields) > 0 {
			return NewMessage(m)
		}
	}
	if utf8.Valid(b) {
		return NewString(string(b))
	}
	return NewBytes(b)
}

func decodeGroupToken(p *wire.Parser, num wire.FieldNumber) (Value, error) {
	fields := make(map[wire.FieldNumber]Value)
	collected := make(map[wire.FieldNumber][]Value)
	var order []wire.FieldNumber
	for {
		wf, ok, err := p.Next()
		if err != nil {
			return Value{}, err
		}
		if !ok {
			return Value{}, fmt.Errorf("value: unterminated group for field %d", int32(num))
		}
		if wf.Value.Kind() == wire.KindEndGroup {
			if wf.Number != num {
				return Value{}, fmt.Errorf("value: mismatched group terminator for field %d", int32(num))
			}
			break
		}
		v, err := decodeToken(p, wf)
		if err != nil {
			return Value{}, err
		}
		if _, seen := collected[wf.Number]; !seen {
			order = append(order, wf.Number)
		}
		collected[wf.Number] = append(collected[wf.Number], v)
	}
	for _, n := range order {
		vs := collected[n]
		if len(vs) == 1 {
			fields[n] = vs[0]
			continue
		}
		fields[n] = NewList(vs)
	}
	return NewMessage(&Message{Fields: fields}), nil
}

// Dump writes a depth-indented listing of m to w, in the spirit of
// golang-protobuf/protobuf3.Buffer.DebugPrint but walking the already
// decoded tree instead of re-parsing the bytes.
func Dump(w io.Writer, m *Message) {
	dumpMessage(w, m, 0)
}

func numberWireName(wk wire.Kind) string {
	switch wk {
	case wire.KindVarint:
		return "varint"
	case wire.KindFixed32:
		return "fixed32"
	case wire.KindFixed64:
		return "fixed64"
	}
	return "number"
}

func dumpMessage(w io.Writer, m *Message, depth int) {
	indent := strings.Repeat("  ", depth)
	for num, v := range m.Fields {
		dumpValue(w, indent, num, v, depth)
	}
}

func dumpValue(w io.Writer, indent string, num wire.FieldNumber, v Value, depth int) {
	switch v.Kind() {
	case KindNumber:
		fmt.Fprintf(w, "%st=%3d %s %d\n", indent, num, numberWireName(v.wireKind), v.Int())
	case KindString:
		fmt.Fprintf(w, "%st=%3d string %q\n", indent, num, v.String())
	case KindBytes:
		fmt.Fprintf(w, "%st=%3d bytes [%d]\n", indent, num, len(v.Bytes()))
	case KindMessage:
		fmt.Fprintf(w, "%st=%3d message\n", indent, num)
		dumpMessage(w, v.Message(), depth+1)
	case KindList:
		fmt.Fprintf(w, "%st=%3d list [%d]\n", indent, num, len(v.List()))
		for _, elem := range v.List() {
			dumpValue(w, indent+"  ", num, elem, depth+1)
		}
	}
}
