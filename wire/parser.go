// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	terrors "github.com/tobuproto/tobu/internal/errors"
)

// Parser is a pull-style iterator over a byte buffer, producing one
// WireField per call to Next. It holds only a read cursor into the input
// it was given, with no internal buffering beyond that.
//
// A Parser does not recurse into groups: a StartGroup tag yields a
// FieldValue of KindStartGroup, and an EndGroup tag yields KindEndGroup.
// Matching StartGroup/EndGroup pairs is the engine's job, not the
// Parser's — this keeps Next's stack depth and allocation bounded
// regardless of how an adversarial input nests groups. Skip, which does
// follow nested groups, caps its recursion at maxGroupDepth.
type Parser struct {
	buf []byte
	pos int
}

// NewParser returns a Parser reading buf from the beginning. buf is not
// copied; FieldValues of KindBytes returned by Next are zero-copy
// subranges of it.
func NewParser(buf []byte) *Parser {
	return &Parser{buf: buf}
}

// Done reports whether the Parser has consumed the entire buffer.
func (p *Parser) Done() bool { return p.pos >= len(p.buf) }

// Pos returns the current read offset into the original buffer.
func (p *Parser) Pos() int { return p.pos }

// Remaining returns the unconsumed tail of the buffer.
func (p *Parser) Remaining() []byte { return p.buf[p.pos:] }

// Next reads one tag and its associated value. It returns (WireField{},
// false, nil) once the buffer is exhausted. On any decode failure it
// returns the error; the Parser must not be used again afterward.
func (p *Parser) Next() (WireField, bool, error) {
	if p.Done() {
		return WireField{}, false, nil
	}
	num, typ, n, err := ParseTag(p.buf[p.pos:])
	if err != nil {
		return WireField{}, false, err
	}
	p.pos += n

	val, n, err := p.parseValue(typ)
	if err != nil {
		return WireField{}, false, err
	}
	p.pos += n
	return WireField{Number: num, Value: val}, true, nil
}

func (p *Parser) parseValue(typ WireType) (FieldValue, int, error) {
	rest := p.buf[p.pos:]
	switch typ {
	case Varint:
		v, n, err := ParseVarint(rest)
		if err != nil {
			return FieldValue{}, 0, err
		}
		return ValueVarint(v), n, nil
	case Fixed32:
		v, n, err := ParseFixed32(rest)
		if err != nil {
			return FieldValue{}, 0, err
		}
		return ValueFixed32(v), n, nil
	case Fixed64:
		v, n, err := ParseFixed64(rest)
		if err != nil {
			return FieldValue{}, 0, err
		}
		return ValueFixed64(v), n, nil
	case Bytes:
		b, n, err := ParseBytes(rest)
		if err != nil {
			return FieldValue{}, 0, err
		}
		return ValueBytes(b), n, nil
	case StartGroup:
		return ValueStartGroup(), 0, nil
	case EndGroup:
		return ValueEndGroup(), 0, nil
	default:
		return FieldValue{}, 0, terrors.InvalidWireType(typ)
	}
}

// maxGroupDepth bounds how deeply Skip follows nested groups, so an
// adversarial input of bare StartGroup tags cannot grow the call stack
// without limit.
const maxGroupDepth = 100

// Skip discards the value of wire type typ that follows the current
// position, without materializing it. Length-delimited values are skipped
// by reading and dropping their bytes; groups are skipped by balanced
// start/end matching so a whole unknown group is consumed in one call.
// Groups nested past maxGroupDepth fail with RecursionLimit.
func (p *Parser) Skip(num FieldNumber, typ WireType) error {
	return p.skip(num, typ, 0)
}

func (p *Parser) skip(num FieldNumber, typ WireType, depth int) error {
	switch typ {
	case Varint, Fixed32, Fixed64, Bytes:
		_, n, err := p.parseValue(typ)
		if err != nil {
			return err
		}
		p.pos += n
		return nil
	case StartGroup:
		if depth >= maxGroupDepth {
			return terrors.RecursionLimit
		}
		return p.skipGroup(num, depth+1)
	case EndGroup:
		return terrors.EndGroup
	default:
		return terrors.InvalidWireType(typ)
	}
}

// skipGroup consumes fields up to and including the EndGroup matching num,
// recursing into any nested groups it encounters along the way.
func (p *Parser) skipGroup(num FieldNumber, depth int) error {
	for {
		if p.Done() {
			return terrors.Eof
		}
		fieldNum, typ, n, err := ParseTag(p.buf[p.pos:])
		if err != nil {
			return err
		}
		p.pos += n
		if typ == EndGroup {
			if fieldNum != num {
				return terrors.EndGroup
			}
			return nil
		}
		if err := p.skip(fieldNum, typ, depth); err != nil {
			return err
		}
	}
}
