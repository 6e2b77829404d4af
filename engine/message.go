// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine is the descriptor-driven serialization engine: a size-hint
// pass, an emit pass, and a parse pass.
// It walks a structured value under the guidance of a descriptor.MessageInfo
// rather than through reflection — generated message types implement the
// small Message interface below once, and the engine is generic over any
// type that does.
package engine

import (
	"github.com/tobuproto/tobu/descriptor"
)

// Message is implemented once per generated message type. The engine never
// inspects a message's Go struct layout directly; it only calls Get/Set,
// guided by the FieldInfo the descriptor walk is currently positioned on.
// A generated type's Get/Set are ordinary methods (or closures fixed at
// generation time), not a name-based reflective lookup performed per call,
// so no runtime message registry is needed.
type Message interface {
	// Get returns the Go-native value held for field and whether it is
	// present. "Present" matters for:
	//   - proto2 optional/required fields (explicit presence)
	//   - oneof members (only the active member reports present)
	// For proto3 fields outside a oneof, Get should always report
	// present=true; zero-value suppression is the engine's job, not the
	// message's.
	//
	// The concrete type of value depends on field.Type and
	// field.Cardinality:
	//   scalar field                -> native Go scalar (int32, string, ...)
	//   TypeMessage/TypeGroup field  -> engine.Message (or nil if unset)
	//   Cardinality == Repeated      -> a slice of the above
	Get(field *descriptor.FieldInfo) (value interface{}, present bool)

	// Set stores value into field. For a field with OneofIndex set, Set
	// must clear any other field sharing that OneofIndex (last-wins).
	Set(field *descriptor.FieldInfo, value interface{})
}
