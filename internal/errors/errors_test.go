// Copyright 2024 The Tobu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type customInvalidUTF8Error struct{}

func (customInvalidUTF8Error) Error() string        { return "invalid UTF-8 detected" }
func (customInvalidUTF8Error) InvalidUTF8Err() bool { return true }

type customRequiredNotSetError struct{}

func (customRequiredNotSetError) Error() string        { return "required field not set" }
func (customRequiredNotSetError) RequiredNotSet() bool { return true }

func TestNonFatalMerge(t *testing.T) {
	tests := []struct {
		label   string
		merges  []error
		wantOk  []bool
		wantErr error
	}{{
		label:  "IgnoreNil",
		merges: []error{nil},
		wantOk: []bool{true},
	}, {
		label:  "FatalIsRejected",
		merges: []error{errors.New("fatal error")},
		wantOk: []bool{false},
	}, {
		label:  "AccumulatesAcrossCalls",
		merges: []error{RequiredNotSetError("foo"), InvalidUTF8Error("bar"), customRequiredNotSetError{}},
		wantOk: []bool{true, true, true},
		wantErr: NonFatalErrors{
			RequiredNotSetError("foo"),
			InvalidUTF8Error("bar"),
			customRequiredNotSetError{},
		},
	}, {
		label:  "NestedNonFatalErrorsFlatten",
		merges: []error{NonFatalErrors{RequiredNotSetError("fizz"), InvalidUTF8Error("buzz")}},
		wantOk: []bool{true},
		wantErr: NonFatalErrors{
			RequiredNotSetError("fizz"),
			InvalidUTF8Error("buzz"),
		},
	}, {
		label:   "FatalAfterNonFatalIsNotStored",
		merges:  []error{RequiredNotSetError("foo"), errors.New("fatal")},
		wantOk:  []bool{true, false},
		wantErr: NonFatalErrors{RequiredNotSetError("foo")},
	}}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			var nf NonFatal
			for i, err := range tt.merges {
				if gotOk := nf.Merge(err); gotOk != tt.wantOk[i] {
					t.Errorf("Merge(%v) = %v, want %v", err, gotOk, tt.wantOk[i])
				}
			}
			if diff := cmp.Diff(tt.wantErr, nf.E); diff != "" {
				t.Errorf("NonFatal.E mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNonFatalMergeCustomInvalidUTF8(t *testing.T) {
	var nf NonFatal
	if ok := nf.Merge(customInvalidUTF8Error{}); !ok {
		t.Fatalf("Merge(customInvalidUTF8Error) = false, want true")
	}
	if diff := cmp.Diff(NonFatalErrors{customInvalidUTF8Error{}}, nf.E); diff != "" {
		t.Errorf("NonFatal.E mismatch (-want +got):\n%s", diff)
	}
}

func TestNonFatalErrorsDedupesMessage(t *testing.T) {
	es := NonFatalErrors{
		RequiredNotSetError("a"),
		RequiredNotSetError("a"),
		RequiredNotSetError("b"),
	}
	got := es.Error()
	if !strings.Contains(got, `"a"`) || !strings.Contains(got, `"b"`) {
		t.Fatalf("Error() = %q, want mentions of both a and b", got)
	}
	if n := strings.Count(got, `"a"`); n != 1 {
		t.Fatalf("Error() = %q mentions a %d times, want 1", got, n)
	}
}

func TestNewPrefix(t *testing.T) {
	e1 := New("abc")
	got := e1.Error()
	if !strings.HasPrefix(got, "tobu:") {
		t.Errorf("missing %q prefix in %q", "tobu:", got)
	}
	if !strings.Contains(got, "abc") {
		t.Errorf("missing text %q in %q", "abc", got)
	}

	e2 := New("%v", e1)
	got = e2.Error()
	if !strings.HasPrefix(got, "tobu:") {
		t.Errorf("missing %q prefix in %q", "tobu:", got)
	}
	if strings.Contains(strings.TrimPrefix(got, "tobu:"), "tobu:") {
		t.Errorf("prefix %q not elided from embedded error: %q", "tobu:", got)
	}
}
