// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basicscalar

import (
	"testing"

	"github.com/tobuproto/tobu/engine"
)

// Shapes mirror golang-protobuf/protobuf3/benchmark_test.go: encode and
// decode loops over one representative message, timer started after setup.
func BenchmarkEncode(b *testing.B) {
	in := sample()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Encode(Info, in); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	buf, err := engine.Encode(Info, sample())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Decode(Info, buf); err != nil {
			b.Fatal(err)
		}
	}
}
