// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/tobuproto/tobu/descriptor"
	terrors "github.com/tobuproto/tobu/internal/errors"
	"github.com/tobuproto/tobu/wire"
)

// Decode parses buf under the guidance of mi into a freshly allocated
// message. RequiredNotSet and InvalidUTF8 faults are accumulated as
// non-fatal across the whole call and returned together at the end; any
// other fault aborts immediately.
func Decode(mi *descriptor.MessageInfo, buf []byte) (Message, error) {
	msg := newFromInfo(mi)
	p := wire.NewParser(buf)
	var nf terrors.NonFatal
	if err := decodeMessage(p, mi, msg, 0, nil, &nf); err != nil {
		return nil, err
	}
	return msg, nf.E
}

// newFromInfo allocates a zeroed Go value for mi via its generated
// constructor and asserts it implements Message.
func newFromInfo(mi *descriptor.MessageInfo) Message {
	return mi.New().(Message)
}

// decodeMessage consumes fields from p into msg under mi's guidance. If
// stopGroup is non-nil, this call is decoding the body of a group and
// returns as soon as it sees an EndGroup token for *stopGroup (consuming
// that token); otherwise it runs until p is exhausted.
func decodeMessage(p *wire.Parser, mi *descriptor.MessageInfo, msg Message, depth int, stopGroup *wire.FieldNumber, nf *terrors.NonFatal) error {
	if depth > MaxDepth {
		return terrors.RecursionLimit
	}
	seen := make(map[wire.FieldNumber]bool)
	for {
		if stopGroup == nil && p.Done() {
			break
		}
		wf, ok, err := p.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if wf.Value.Kind() == wire.KindEndGroup {
			if stopGroup != nil && wf.Number == *stopGroup {
				nf.Merge(checkRequired(mi, seen))
				return nil
			}
			return terrors.EndGroup
		}

		field, _, found := mi.FieldByNumber(wf.Number)
		if !found {
			if err := skipUnknown(p, wf); err != nil {
				return err
			}
			continue
		}
		seen[wf.Number] = true
		if err := decodeField(p, field, msg, wf, depth, nf); err != nil {
			return err
		}
	}
	if stopGroup != nil {
		return terrors.Eof // input exhausted before matching EndGroup
	}
	nf.Merge(checkRequired(mi, seen))
	return nil
}

func skipUnknown(p *wire.Parser, wf wire.WireField) error {
	if wf.Value.Kind() == wire.KindStartGroup {
		return p.Skip(wf.Number, wire.StartGroup)
	}
	// The value is already consumed by Next for non-group wire types;
	// nothing further to skip.
	return nil
}

func checkRequired(mi *descriptor.MessageInfo, seen map[wire.FieldNumber]bool) error {
	var nf terrors.NonFatal
	for i := range mi.Fields {
		f := &mi.Fields[i]
		if f.Cardinality == descriptor.Required && !seen[f.Number] {
			nf.Merge(terrors.RequiredNotSetError(f.Name))
		}
	}
	return nf.E
}

func decodeField(p *wire.Parser, field *descriptor.FieldInfo, msg Message, wf wire.WireField, depth int, nf *terrors.NonFatal) error {
	switch field.Type {
	case descriptor.TypeMessage:
		return decodeMessageField(p, field, msg, wf, depth, nf)
	case descriptor.TypeGroup:
		return decodeGroupField(p, field, msg, wf, depth, nf)
	}

	declaredWire := field.Type.WireType()
	if wf.Value.WireType() == declaredWire {
		val, err := scalarFromWire(field.Type, wf.Value, field.Name)
		if err != nil {
			if !nf.Merge(err) {
				return err
			}
			// Fault recorded; leave the field untouched.
			return nil
		}
		storeScalar(msg, field, val)
		return nil
	}

	if field.Cardinality == descriptor.Repeated && isPackableScalar(field.Type) && wf.Value.WireType() == wire.Bytes {
		return decodePackedField(field, msg, wf, nf)
	}

	return terrors.TypeMismatch(field.Name)
}

func storeScalar(msg Message, field *descriptor.FieldInfo, val interface{}) {
	if field.Cardinality == descriptor.Repeated {
		cur, _ := msg.Get(field)
		msg.Set(field, appendRepeatedScalar(field.Type, cur, val))
		return
	}
	msg.Set(field, val)
}

func decodePackedField(field *descriptor.FieldInfo, msg Message, wf wire.WireField, nf *terrors.NonFatal) error {
	payload := wf.Value.Bytes()
	declaredWire := field.Type.WireType()

	cur, _ := msg.Get(field)
	for len(payload) > 0 {
		val, n, err := parseScalarDirect(payload, declaredWire, field.Type, field.Name)
		if err != nil {
			return err
		}
		cur = appendRepeatedScalar(field.Type, cur, val)
		payload = payload[n:]
	}
	msg.Set(field, cur)
	return nil
}

// parseScalarDirect decodes one packed element directly, without going
// through the Parser's tag machinery (packed elements carry no tags).
func parseScalarDirect(buf []byte, wt wire.WireType, t descriptor.Type, fieldName string) (interface{}, int, error) {
	switch wt {
	case wire.Varint:
		v, n, err := wire.ParseVarint(buf)
		if err != nil {
			return nil, 0, err
		}
		val, err := scalarFromWire(t, wire.ValueVarint(v), fieldName)
		return val, n, err
	case wire.Fixed32:
		v, n, err := wire.ParseFixed32(buf)
		if err != nil {
			return nil, 0, err
		}
		val, err := scalarFromWire(t, wire.ValueFixed32(v), fieldName)
		return val, n, err
	case wire.Fixed64:
		v, n, err := wire.ParseFixed64(buf)
		if err != nil {
			return nil, 0, err
		}
		val, err := scalarFromWire(t, wire.ValueFixed64(v), fieldName)
		return val, n, err
	}
	panic("engine: parseScalarDirect: non-packable wire type")
}

func decodeMessageField(p *wire.Parser, field *descriptor.FieldInfo, msg Message, wf wire.WireField, depth int, nf *terrors.NonFatal) error {
	if wf.Value.WireType() != wire.Bytes {
		return terrors.TypeMismatch(field.Name)
	}
	child, err := decodeChildBytes(field.Message, wf.Value.Bytes(), depth, nf)
	if err != nil {
		return err
	}
	if field.Cardinality == descriptor.Repeated {
		cur, _ := msg.Get(field)
		children, _ := cur.([]Message)
		msg.Set(field, append(children, child))
		return nil
	}
	msg.Set(field, child)
	return nil
}

func decodeChildBytes(childMI *descriptor.MessageInfo, payload []byte, depth int, parentNF *terrors.NonFatal) (Message, error) {
	if depth+1 > MaxDepth {
		return nil, terrors.RecursionLimit
	}
	child := newFromInfo(childMI)
	sub := wire.NewParser(payload)
	var nf terrors.NonFatal
	if err := decodeMessage(sub, childMI, child, depth+1, nil, &nf); err != nil {
		return nil, err
	}
	if nf.E != nil {
		parentNF.Merge(nf.E)
	}
	return child, nil
}

func decodeGroupField(p *wire.Parser, field *descriptor.FieldInfo, msg Message, wf wire.WireField, depth int, nf *terrors.NonFatal) error {
	if wf.Value.Kind() != wire.KindStartGroup {
		return terrors.TypeMismatch(field.Name)
	}
	if depth+1 > MaxDepth {
		return terrors.RecursionLimit
	}
	child := newFromInfo(field.Message)
	num := wf.Number
	if err := decodeMessage(p, field.Message, child, depth+1, &num, nf); err != nil {
		return err
	}
	if field.Cardinality == descriptor.Repeated {
		cur, _ := msg.Get(field)
		children, _ := cur.([]Message)
		msg.Set(field, append(children, child))
		return nil
	}
	msg.Set(field, child)
	return nil
}
