// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The tobu-gen binary is a protoc plugin: it reads a CodeGeneratorRequest on
// stdin and writes a CodeGeneratorResponse containing one .tobu.go file
// per requested .proto file.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/tobuproto/tobu/gen"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		log.Fatalf("tobu-gen: %v", err)
	}
}

func run(in io.Reader, out io.Writer) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	req, err := gen.DecodeRequest(raw)
	if err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	toGenerate := make(map[string]bool, len(req.FileToGenerate))
	for _, name := range req.FileToGenerate {
		toGenerate[name] = true
	}

	files, err := gen.Process(req.ProtoFile)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	responseFiles := make([]*pluginpb.CodeGeneratorResponse_File, len(files))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		i, f := i, f
		fd := req.ProtoFile[i]
		if !toGenerate[fd.GetName()] {
			continue
		}
		g.Go(func() error {
			content, err := gen.Emit(f)
			if err != nil {
				return fmt.Errorf("%s: %w", fd.GetName(), err)
			}
			name := outputPath(fd.GetName())
			contentStr := string(content)
			responseFiles[i] = &pluginpb.CodeGeneratorResponse_File{
				Name:    &name,
				Content: &contentStr,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	resp := &pluginpb.CodeGeneratorResponse{}
	for _, f := range responseFiles {
		if f != nil {
			resp.File = append(resp.File, f)
		}
	}

	_, err = out.Write(gen.EncodeResponse(resp))
	return err
}

// outputPath turns a.proto's conventional "foo/bar.proto" into the
// generated "foo/bar.tobu.go", matching protoc-gen-go's own
// <name>.pb.go convention but with tobu's own suffix.
func outputPath(protoName string) string {
	trimmed := protoName
	if len(trimmed) > 6 && trimmed[len(trimmed)-6:] == ".proto" {
		trimmed = trimmed[:len(trimmed)-6]
	}
	return trimmed + ".tobu.go"
}
