// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors implements the shared error taxonomy for the wire codec
// and the descriptor-driven engine: a small set of sentinels and typed
// values, plus a NonFatal accumulator for the two kinds of fault
// (RequiredNotSet, InvalidUTF8) that a decode can collect and report without
// aborting the rest of the message.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel faults from the wire layer. These are fatal: no caller collects
// and continues past them.
var (
	// Eof is returned when the buffer is exhausted mid-token.
	Eof = errors.New("tobu: unexpected end of buffer")

	// Overflow is returned when a varint would exceed 64 bits.
	Overflow = errors.New("tobu: varint overflows 64 bits")

	// EndGroup is returned for an unmatched or mismatched group terminator.
	EndGroup = errors.New("tobu: mismatched end group")

	// UnknownSeqLen is returned when a packed-repeated field is requested to
	// be sized or emitted but the element sequence has no known length.
	UnknownSeqLen = errors.New("tobu: packed field has unknown sequence length")

	// RecursionLimit is returned when submessage or group nesting exceeds
	// the engine's configured maximum depth.
	RecursionLimit = errors.New("tobu: recursion limit exceeded")
)

// InvalidWireType reports a low-3-bit wire type code on the wire that is not
// one of the six defined variants.
type InvalidWireType int

func (e InvalidWireType) Error() string {
	return fmt.Sprintf("tobu: invalid wire type %d", int(e))
}

// InvalidFieldNumber reports a tag or FieldNumber outside [1, 2^29-1] or
// inside the reserved [19000,19999] range.
type InvalidFieldNumber int64

func (e InvalidFieldNumber) Error() string {
	return fmt.Sprintf("tobu: invalid field number %d", int64(e))
}

// TypeMismatch reports a wire type on input incompatible with the
// descriptor's declared type for the named field.
type TypeMismatch string

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("tobu: field %q: wire type does not match descriptor", string(e))
}

// NonFatalErrors is a list of non-fatal errors collected during one
// decode call; every element is either a RequiredNotSetError or an
// InvalidUTF8Error.
type NonFatalErrors []error

func (es NonFatalErrors) Error() string {
	ms := map[string]struct{}{}
	for _, e := range es {
		ms[e.Error()] = struct{}{}
	}
	var ss []string
	for s := range ms {
		ss = append(ss, s)
	}
	sort.Strings(ss)
	return "tobu: " + strings.Join(ss, "; ")
}

// NonFatal accumulates RequiredNotSet and InvalidUTF8 faults across one
// decode call so the caller can keep parsing the rest of the message and
// report every such fault at the end instead of aborting at the first.
//
//	var nf errors.NonFatal
//	...
//	if !nf.Merge(err) {
//		return nil, err // fatal: stop immediately
//	}
//	...
//	return out, nf.E
type NonFatal struct{ E error }

// Merge folds err into nf and reports whether it was non-fatal. A nil err
// always reports true. A fatal err is left untouched and reported false.
func (nf *NonFatal) Merge(err error) (ok bool) {
	if err == nil {
		return true
	}
	if es, ok := err.(NonFatalErrors); ok {
		nf.append(es...)
		return true
	}
	if e, ok := err.(interface{ RequiredNotSet() bool }); ok && e.RequiredNotSet() {
		nf.append(err)
		return true
	}
	if e, ok := err.(interface{ InvalidUTF8Err() bool }); ok && e.InvalidUTF8Err() {
		nf.append(err)
		return true
	}
	return false
}

func (nf *NonFatal) append(errs ...error) {
	es, _ := nf.E.(NonFatalErrors)
	es = append(es, errs...)
	nf.E = es
}

// RequiredNotSetError reports a proto2 required field missing at end of
// message.
type RequiredNotSetError string

func (e RequiredNotSetError) Error() string {
	if e == "" {
		return "tobu: required field not set"
	}
	return fmt.Sprintf("tobu: required field %q not set", string(e))
}
func (RequiredNotSetError) RequiredNotSet() bool { return true }

// InvalidUTF8Error reports a string field whose bytes are not valid UTF-8.
type InvalidUTF8Error string

func (e InvalidUTF8Error) Error() string {
	if e == "" {
		return "tobu: invalid UTF-8 detected"
	}
	return fmt.Sprintf("tobu: field %q contains invalid UTF-8", string(e))
}
func (InvalidUTF8Error) InvalidUTF8Err() bool { return true }

// New formats a message and gives it the "tobu: " prefix used throughout
// this module, avoiding double-prefixing when chaining another tobu error.
func New(f string, x ...interface{}) error {
	for i := 0; i < len(x); i++ {
		if e, ok := x[i].(*prefixError); ok {
			x[i] = e.s
		}
	}
	return &prefixError{s: fmt.Sprintf(f, x...)}
}

type prefixError struct{ s string }

func (e *prefixError) Error() string { return "tobu: " + e.s }
