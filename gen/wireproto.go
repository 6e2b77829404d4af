// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gen implements the tobu-gen code generator: it reads a
// CodeGeneratorRequest, builds an intermediate model of the files it
// describes, and emits one Go source file per FileDescriptorProto.
//
// The plugin-protocol envelope types (pluginpb.CodeGeneratorRequest/Response,
// descriptorpb.FileDescriptorProto and friends) are reused from
// google.golang.org/protobuf rather than hand-rolled, but this package does
// not call into that module's Marshal/Unmarshal: the whole exercise is
// decoding and encoding those messages with tobu's own wire package, the
// same way a consumer of the wire layer that isn't tobu itself would.
package gen

import (
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/tobuproto/tobu/wire"
)

// DecodeRequest parses a serialized CodeGeneratorRequest using tobu's own
// wire.Parser, field by field, against the known layout of
// google.golang.org/protobuf/types/pluginpb.CodeGeneratorRequest.
func DecodeRequest(buf []byte) (*pluginpb.CodeGeneratorRequest, error) {
	req := &pluginpb.CodeGeneratorRequest{}
	p := wire.NewParser(buf)
	for {
		wf, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch int32(wf.Number) {
		case 1: // file_to_generate
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			req.FileToGenerate = append(req.FileToGenerate, s)
		case 2: // parameter
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			req.Parameter = &s
		case 15: // proto_file
			b, err := wireBytes(wf)
			if err != nil {
				return nil, err
			}
			fd, err := decodeFileDescriptorProto(b)
			if err != nil {
				return nil, err
			}
			req.ProtoFile = append(req.ProtoFile, fd)
		default:
			if err := skipField(p, wf); err != nil {
				return nil, err
			}
		}
	}
	return req, nil
}

func decodeFileDescriptorProto(buf []byte) (*descriptorpb.FileDescriptorProto, error) {
	fd := &descriptorpb.FileDescriptorProto{}
	p := wire.NewParser(buf)
	for {
		wf, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch int32(wf.Number) {
		case 1: // name
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			fd.Name = &s
		case 2: // package
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			fd.Package = &s
		case 3: // dependency
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			fd.Dependency = append(fd.Dependency, s)
		case 4: // message_type
			b, err := wireBytes(wf)
			if err != nil {
				return nil, err
			}
			m, err := decodeDescriptorProto(b)
			if err != nil {
				return nil, err
			}
			fd.MessageType = append(fd.MessageType, m)
		case 5: // enum_type
			b, err := wireBytes(wf)
			if err != nil {
				return nil, err
			}
			e, err := decodeEnumDescriptorProto(b)
			if err != nil {
				return nil, err
			}
			fd.EnumType = append(fd.EnumType, e)
		case 12: // syntax
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			fd.Syntax = &s
		default:
			if err := skipField(p, wf); err != nil {
				return nil, err
			}
		}
	}
	return fd, nil
}

func decodeDescriptorProto(buf []byte) (*descriptorpb.DescriptorProto, error) {
	d := &descriptorpb.DescriptorProto{}
	p := wire.NewParser(buf)
	for {
		wf, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch int32(wf.Number) {
		case 1: // name
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			d.Name = &s
		case 2: // field
			b, err := wireBytes(wf)
			if err != nil {
				return nil, err
			}
			f, err := decodeFieldDescriptorProto(b)
			if err != nil {
				return nil, err
			}
			d.Field = append(d.Field, f)
		case 3: // nested_type
			b, err := wireBytes(wf)
			if err != nil {
				return nil, err
			}
			nested, err := decodeDescriptorProto(b)
			if err != nil {
				return nil, err
			}
			d.NestedType = append(d.NestedType, nested)
		case 4: // enum_type
			b, err := wireBytes(wf)
			if err != nil {
				return nil, err
			}
			e, err := decodeEnumDescriptorProto(b)
			if err != nil {
				return nil, err
			}
			d.EnumType = append(d.EnumType, e)
		default:
			if err := skipField(p, wf); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

func decodeFieldDescriptorProto(buf []byte) (*descriptorpb.FieldDescriptorProto, error) {
	f := &descriptorpb.FieldDescriptorProto{}
	p := wire.NewParser(buf)
	for {
		wf, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch int32(wf.Number) {
		case 1: // name
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			f.Name = &s
		case 3: // number
			n, err := wireVarint(wf)
			if err != nil {
				return nil, err
			}
			v := int32(n)
			f.Number = &v
		case 4: // label
			n, err := wireVarint(wf)
			if err != nil {
				return nil, err
			}
			l := descriptorpb.FieldDescriptorProto_Label(n)
			f.Label = &l
		case 5: // type
			n, err := wireVarint(wf)
			if err != nil {
				return nil, err
			}
			t := descriptorpb.FieldDescriptorProto_Type(n)
			f.Type = &t
		case 6: // type_name
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			f.TypeName = &s
		case 7: // default_value
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			f.DefaultValue = &s
		case 9: // oneof_index
			n, err := wireVarint(wf)
			if err != nil {
				return nil, err
			}
			v := int32(n)
			f.OneofIndex = &v
		default:
			if err := skipField(p, wf); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func decodeEnumDescriptorProto(buf []byte) (*descriptorpb.EnumDescriptorProto, error) {
	e := &descriptorpb.EnumDescriptorProto{}
	p := wire.NewParser(buf)
	for {
		wf, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch int32(wf.Number) {
		case 1: // name
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			e.Name = &s
		case 2: // value
			b, err := wireBytes(wf)
			if err != nil {
				return nil, err
			}
			v, err := decodeEnumValueDescriptorProto(b)
			if err != nil {
				return nil, err
			}
			e.Value = append(e.Value, v)
		default:
			if err := skipField(p, wf); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}

func decodeEnumValueDescriptorProto(buf []byte) (*descriptorpb.EnumValueDescriptorProto, error) {
	v := &descriptorpb.EnumValueDescriptorProto{}
	p := wire.NewParser(buf)
	for {
		wf, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch int32(wf.Number) {
		case 1: // name
			s, err := wireString(wf)
			if err != nil {
				return nil, err
			}
			v.Name = &s
		case 2: // number
			n, err := wireVarint(wf)
			if err != nil {
				return nil, err
			}
			num := int32(n)
			v.Number = &num
		default:
			if err := skipField(p, wf); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

// EncodeResponse serializes resp using tobu's own wire primitives, against
// the known layout of pluginpb.CodeGeneratorResponse.
func EncodeResponse(resp *pluginpb.CodeGeneratorResponse) []byte {
	var buf []byte
	if resp.Error != nil {
		buf = putStringField(buf, 1, *resp.Error)
	}
	for _, f := range resp.File {
		buf = putBytesField(buf, 15, encodeResponseFile(f))
	}
	return buf
}

func encodeResponseFile(f *pluginpb.CodeGeneratorResponse_File) []byte {
	var buf []byte
	if f.Name != nil {
		buf = putStringField(buf, 1, *f.Name)
	}
	if f.Content != nil {
		buf = putStringField(buf, 15, *f.Content)
	}
	return buf
}

func wireVarint(wf wire.WireField) (uint64, error) {
	if wf.Value.Kind() != wire.KindVarint {
		return 0, fmt.Errorf("gen: field %d: expected varint", int32(wf.Number))
	}
	return wf.Value.Varint(), nil
}

func wireBytes(wf wire.WireField) ([]byte, error) {
	if wf.Value.Kind() != wire.KindBytes {
		return nil, fmt.Errorf("gen: field %d: expected length-delimited value", int32(wf.Number))
	}
	return wf.Value.Bytes(), nil
}

func wireString(wf wire.WireField) (string, error) {
	b, err := wireBytes(wf)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func putStringField(buf []byte, num int32, s string) []byte {
	return putBytesField(buf, num, []byte(s))
}

func putBytesField(buf []byte, num int32, b []byte) []byte {
	n, err := wire.NewFieldNumber(num)
	if err != nil {
		panic(err)
	}
	buf = wire.PutTag(buf, n, wire.Bytes)
	return wire.PutBytes(buf, b)
}

// skipField discards a field this layer doesn't need to interpret
// (extensions, options, source code info, and the rest of descriptor.proto
// that tobu-gen's output never depends on).
func skipField(p *wire.Parser, wf wire.WireField) error {
	if wf.Value.Kind() == wire.KindStartGroup {
		return p.Skip(wf.Number, wire.StartGroup)
	}
	return nil
}
