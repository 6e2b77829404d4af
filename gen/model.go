// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Cardinality mirrors a field's protobuf label.
type Cardinality int

const (
	Optional Cardinality = iota
	Required
	Repeated
)

// FieldType is the Go-facing classification of a field's protobuf type.
// Message, Group, and Enum carry the referenced type's generated Go name.
type FieldType struct {
	Kind descriptorpb.FieldDescriptorProto_Type
	Name string // populated for Kind == TYPE_MESSAGE, TYPE_GROUP, TYPE_ENUM
}

// Field is one message field as tobu-gen's emitter sees it.
type Field struct {
	Name        string
	Number      int32
	Cardinality Cardinality
	Type        FieldType
}

// EnumValue is one named constant of an Enum.
type EnumValue struct {
	Name   string
	Number int32
}

// Enum is a (possibly nested) enum type.
type Enum struct {
	Name   string
	Values []EnumValue
}

// Message is a (possibly nested) message type, flattened to its own
// top-level Go struct the way protoc-gen-go flattens nested types (an
// outer/inner pair becomes Outer and Outer_Inner).
type Message struct {
	Name   string
	Nested []Message
	Enums  []Enum
	Fields []Field
}

// File is the processed form of one FileDescriptorProto: everything
// emit.go needs to generate a .tobu.go file, with message/enum/field
// references already resolved to Go-safe names.
type File struct {
	GoPackage string
	Messages  []Message
	Enums     []Enum
}

// Process turns a parsed request into one File per proto_file entry,
// resolving every field's message/enum type_name to the flattened Go name
// it will be emitted under. Cross-file references are resolved against the
// full set of message/enum names collected across every file in the
// request, not just the file currently being processed — a field in file A
// may point at a message defined in file B (grounded in
// tobu-gen/src/process.rs's two-pass handling of cross-file references).
func Process(files []*descriptorpb.FileDescriptorProto) ([]File, error) {
	known := collectKnownNames(files)

	out := make([]File, 0, len(files))
	for _, fd := range files {
		f, err := processFile(fd, known)
		if err != nil {
			return nil, fmt.Errorf("gen: %s: %w", fd.GetName(), err)
		}
		out = append(out, f)
	}
	return out, nil
}

// collectKnownNames walks every file's message and enum tree, recording
// each type's fully-qualified proto name (".pkg.Outer.Inner") against the
// flattened Go name it will be emitted as ("Outer_Inner").
func collectKnownNames(files []*descriptorpb.FileDescriptorProto) map[string]string {
	known := make(map[string]string)
	for _, fd := range files {
		pkg := "." + fd.GetPackage()
		for _, m := range fd.GetMessageType() {
			collectMessageNames(m, pkg, "", known)
		}
		for _, e := range fd.GetEnumType() {
			known[pkg+"."+e.GetName()] = goName("", e.GetName())
		}
	}
	return known
}

func collectMessageNames(m *descriptorpb.DescriptorProto, protoPrefix, goPrefix string, known map[string]string) {
	protoName := protoPrefix + "." + m.GetName()
	goN := goName(goPrefix, m.GetName())
	known[protoName] = goN
	for _, nested := range m.GetNestedType() {
		collectMessageNames(nested, protoName, goN, known)
	}
	for _, e := range m.GetEnumType() {
		known[protoName+"."+e.GetName()] = goName(goN, e.GetName())
	}
}

func goName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

func processFile(fd *descriptorpb.FileDescriptorProto, known map[string]string) (File, error) {
	f := File{GoPackage: goPackageName(fd)}
	protoPrefix := "." + fd.GetPackage()
	for _, m := range fd.GetMessageType() {
		msg, err := processMessage(m, protoPrefix, "", known)
		if err != nil {
			return File{}, err
		}
		f.Messages = append(f.Messages, msg)
	}
	for _, e := range fd.GetEnumType() {
		f.Enums = append(f.Enums, processEnum(e, ""))
	}
	return f, nil
}

func goPackageName(fd *descriptorpb.FileDescriptorProto) string {
	pkg := fd.GetPackage()
	if pkg == "" {
		return "main"
	}
	parts := strings.Split(pkg, ".")
	return parts[len(parts)-1]
}

func processMessage(m *descriptorpb.DescriptorProto, protoPrefix, goPrefix string, known map[string]string) (Message, error) {
	protoName := protoPrefix + "." + m.GetName()
	goN := goName(goPrefix, m.GetName())

	msg := Message{Name: goN}
	for _, nested := range m.GetNestedType() {
		child, err := processMessage(nested, protoName, goN, known)
		if err != nil {
			return Message{}, err
		}
		msg.Nested = append(msg.Nested, child)
	}
	for _, e := range m.GetEnumType() {
		msg.Enums = append(msg.Enums, processEnum(e, goN))
	}
	for _, fld := range m.GetField() {
		f, err := processField(fld, known)
		if err != nil {
			return Message{}, fmt.Errorf("message %s: %w", goN, err)
		}
		msg.Fields = append(msg.Fields, f)
	}
	return msg, nil
}

func processEnum(e *descriptorpb.EnumDescriptorProto, goPrefix string) Enum {
	en := Enum{Name: goName(goPrefix, e.GetName())}
	for _, v := range e.GetValue() {
		en.Values = append(en.Values, EnumValue{Name: v.GetName(), Number: v.GetNumber()})
	}
	return en
}

func processField(fd *descriptorpb.FieldDescriptorProto, known map[string]string) (Field, error) {
	var cardinality Cardinality
	switch fd.GetLabel() {
	case descriptorpb.FieldDescriptorProto_LABEL_REQUIRED:
		cardinality = Required
	case descriptorpb.FieldDescriptorProto_LABEL_REPEATED:
		cardinality = Repeated
	default:
		cardinality = Optional
	}

	ft := FieldType{Kind: fd.GetType()}
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE,
		descriptorpb.FieldDescriptorProto_TYPE_GROUP,
		descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		goN, ok := known[fd.GetTypeName()]
		if !ok {
			return Field{}, fmt.Errorf("field %s: unresolved type reference %s", fd.GetName(), fd.GetTypeName())
		}
		ft.Name = goN
	}

	return Field{
		Name:        fd.GetName(),
		Number:      fd.GetNumber(),
		Cardinality: cardinality,
		Type:        ft,
	}, nil
}
