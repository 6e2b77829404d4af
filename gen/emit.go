// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"
	"go/format"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// printer accumulates generated source line by line, the way
// protogen.GeneratedFile.P does in protoc-gen-go's own generator.
type printer struct {
	b strings.Builder
}

func (p *printer) P(args ...interface{}) {
	for _, a := range args {
		fmt.Fprint(&p.b, a)
	}
	p.b.WriteByte('\n')
}

// Emit renders f as a complete Go source file in the style of
// testdata/basicscalar: one struct per message, a package-level
// descriptor.MessageInfo table, and Get/Set accessor methods satisfying
// engine.Message. The result is gofmt'd before return.
func Emit(f File) ([]byte, error) {
	p := &printer{}
	p.P("// Code generated by tobu-gen. DO NOT EDIT.")
	p.P()
	p.P("package ", f.GoPackage)
	p.P()
	p.P(`import (`)
	p.P(`	"github.com/tobuproto/tobu/descriptor"`)
	p.P(`	"github.com/tobuproto/tobu/engine"`)
	p.P(`	"github.com/tobuproto/tobu/wire"`)
	p.P(`)`)
	p.P()
	p.P(`func mustFieldNumber(n int32) wire.FieldNumber {`)
	p.P(`	fn, err := wire.NewFieldNumber(n)`)
	p.P(`	if err != nil {`)
	p.P(`		panic(err)`)
	p.P(`	}`)
	p.P(`	return fn`)
	p.P(`}`)

	for _, e := range f.Enums {
		emitEnum(p, e)
	}
	for _, m := range flattenMessages(f.Messages, "") {
		emitMessage(p, m)
	}

	formatted, err := format.Source([]byte(p.b.String()))
	if err != nil {
		return nil, fmt.Errorf("gen: gofmt %s: %w\n%s", f.GoPackage, err, p.b.String())
	}
	return formatted, nil
}

// flattenMessages walks a message tree to a flat list in the order
// protoc-gen-go emits nested types: each message immediately followed by
// its own nested messages, names already flattened by Process (Outer,
// Outer_Inner, ...).
func flattenMessages(msgs []Message, _ string) []Message {
	var out []Message
	for _, m := range msgs {
		out = append(out, m)
		out = append(out, flattenMessages(m.Nested, "")...)
	}
	return out
}

func emitEnum(p *printer, e Enum) {
	p.P()
	p.P("type ", e.Name, " int32")
	p.P()
	p.P("const (")
	for _, v := range e.Values {
		p.P("\t", e.Name, "_", v.Name, " ", e.Name, " = ", v.Number)
	}
	p.P(")")

	p.P()
	p.P("var ", e.Name, "EnumInfo = &descriptor.EnumInfo{")
	p.P("\tName: \"", e.Name, "\",")
	p.P("\tValues: map[int32]string{")
	for _, v := range e.Values {
		p.P("\t\t", v.Number, ": \"", v.Name, "\",")
	}
	p.P("\t},")
	p.P("}")
}

func emitMessage(p *printer, m Message) {
	for _, e := range m.Enums {
		emitEnum(p, e)
	}

	p.P()
	p.P("type ", m.Name, " struct {")
	for _, f := range m.Fields {
		p.P("\t", fieldGoName(f.Name), " ", goFieldType(f))
	}
	p.P("}")

	p.P()
	p.P("const (")
	for _, f := range m.Fields {
		p.P("\t", fieldConstName(m.Name, f.Name), " = ", f.Number)
	}
	p.P(")")

	p.P()
	p.P("func (m *", m.Name, ") Get(field *descriptor.FieldInfo) (interface{}, bool) {")
	p.P("\tswitch int32(field.Number) {")
	for _, f := range m.Fields {
		p.P("\tcase ", fieldConstName(m.Name, f.Name), ":")
		p.P("\t\treturn m.", fieldGoName(f.Name), ", true")
	}
	p.P("\t}")
	p.P("\treturn nil, false")
	p.P("}")

	p.P()
	p.P("func (m *", m.Name, ") Set(field *descriptor.FieldInfo, value interface{}) {")
	p.P("\tswitch int32(field.Number) {")
	for _, f := range m.Fields {
		p.P("\tcase ", fieldConstName(m.Name, f.Name), ":")
		p.P("\t\tm.", fieldGoName(f.Name), " = value.(", goFieldType(f), ")")
	}
	p.P("\t}")
	p.P("}")

	p.P()
	p.P("var ", m.Name, "Info = mustInfo", m.Name, "()")
	p.P()
	p.P("func mustInfo", m.Name, "() *descriptor.MessageInfo {")
	p.P("\tmi, err := descriptor.NewMessageInfo(\"", m.Name, "\", descriptor.Proto3, []descriptor.FieldInfo{")
	for _, f := range m.Fields {
		line := fmt.Sprintf("\t\t{Name: %q, Number: mustFieldNumber(%d), Type: descriptor.%s, Cardinality: descriptor.%s, OneofIndex: descriptor.NoOneof",
			f.Name, f.Number, descriptorTypeName(f.Type.Kind), cardinalityName(f.Cardinality))
		if f.Type.Kind == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE || f.Type.Kind == descriptorpb.FieldDescriptorProto_TYPE_GROUP {
			line += fmt.Sprintf(", Message: %sInfo", f.Type.Name)
		}
		if f.Type.Kind == descriptorpb.FieldDescriptorProto_TYPE_ENUM {
			line += fmt.Sprintf(", Enum: %sEnumInfo", f.Type.Name)
		}
		line += "},"
		p.P(line)
	}
	p.P("\t})")
	p.P("\tif err != nil {")
	p.P("\t\tpanic(err)")
	p.P("\t}")
	p.P("\tmi.New = func() interface{} { return &", m.Name, "{} }")
	p.P("\treturn mi")
	p.P("}")

	p.P()
	p.P("var _ engine.Message = (*", m.Name, ")(nil)")
}

func fieldGoName(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

func fieldConstName(messageName, fieldName string) string {
	return "field" + messageName + "_" + fieldGoName(fieldName)
}

func cardinalityName(c Cardinality) string {
	switch c {
	case Required:
		return "Required"
	case Repeated:
		return "Repeated"
	default:
		return "Optional"
	}
}

func descriptorTypeName(t descriptorpb.FieldDescriptorProto_Type) string {
	switch t {
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return "TypeDouble"
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return "TypeFloat"
	case descriptorpb.FieldDescriptorProto_TYPE_INT64:
		return "TypeInt64"
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64:
		return "TypeUint64"
	case descriptorpb.FieldDescriptorProto_TYPE_INT32:
		return "TypeInt32"
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return "TypeFixed64"
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return "TypeFixed32"
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return "TypeBool"
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return "TypeString"
	case descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		return "TypeGroup"
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		return "TypeMessage"
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return "TypeBytes"
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32:
		return "TypeUint32"
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return "TypeEnum"
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		return "TypeSFixed32"
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return "TypeSFixed64"
	case descriptorpb.FieldDescriptorProto_TYPE_SINT32:
		return "TypeSInt32"
	case descriptorpb.FieldDescriptorProto_TYPE_SINT64:
		return "TypeSInt64"
	}
	return "TypeBytes"
}

func goScalarType(t descriptorpb.FieldDescriptorProto_Type) string {
	switch t {
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return "float64"
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return "float32"
	case descriptorpb.FieldDescriptorProto_TYPE_INT64, descriptorpb.FieldDescriptorProto_TYPE_SINT64, descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return "int64"
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64, descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return "uint64"
	case descriptorpb.FieldDescriptorProto_TYPE_INT32, descriptorpb.FieldDescriptorProto_TYPE_SINT32, descriptorpb.FieldDescriptorProto_TYPE_SFIXED32, descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return "int32"
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32, descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return "uint32"
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return "bool"
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return "string"
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return "[]byte"
	}
	return "interface{}"
}

func goFieldType(f Field) string {
	var base string
	switch f.Type.Kind {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		base = "engine.Message"
	default:
		base = goScalarType(f.Type.Kind)
	}
	if f.Cardinality == Repeated {
		return "[]" + base
	}
	return base
}
