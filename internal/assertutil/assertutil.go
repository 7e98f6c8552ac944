// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package assertutil carries the small, composable assertion helpers the
// dict package's own tests need: structural equality with an escape hatch
// for types that know how to compare themselves, a human-readable diff for
// failure messages, and panic assertions for the iterator's invariant-
// violation path. It is a trimmed adaptation of the teacher's
// deepequal.go/diff.go/pretty.go/panic.go helpers — the map-of-telemetry
// special cases and cycle-safe struct printing those files carry for
// OpenConfig-shaped trees aren't needed to compare a handful of Entry and
// Stats snapshots, so this keeps only the comparable-interface hook and the
// panic assertions.
package assertutil

import (
	"fmt"
	"reflect"
	"runtime"
	"testing"
)

// comparable types know how to compare themselves to another value.
type comparable interface {
	Equal(other interface{}) bool
}

// DeepEqual reports whether a and b are structurally equal, deferring to
// a's own Equal method when it implements comparable and falling back to
// reflect.DeepEqual otherwise.
func DeepEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	if ac, ok := a.(comparable); ok {
		return ac.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// Diff returns a human-readable description of how a and b differ, or the
// empty string if they are equal per DeepEqual.
func Diff(a, b interface{}) string {
	if DeepEqual(a, b) {
		return ""
	}
	return fmt.Sprintf("got %s, want %s", PrettyPrint(b), PrettyPrint(a))
}

// PrettyPrint renders v for failure messages using Go's own %#v syntax,
// which is sufficient for the plain structs and slices dict's tests deal
// in (Entry snapshots, Stats histograms).
func PrettyPrint(v interface{}) string {
	return fmt.Sprintf("%#v", v)
}

// ShouldPanic fails the test unless fn panics.
func ShouldPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if r := recover(); r == nil {
			t.Errorf("%sthe function should have panicked", getCallerInfo())
		}
	}()
	fn()
}

// ShouldPanicWithStr fails the test unless fn panics with a string (or an
// error whose Error() string) equal to msg.
func ShouldPanicWithStr(t *testing.T, msg string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Errorf("%sthe function should have panicked with %q", getCallerInfo(), msg)
			return
		}
		gotStr, ok := r.(string)
		if !ok {
			gotErr, ok := r.(error)
			if !ok {
				t.Errorf("%sthe function panicked with neither a string nor an error: %#v",
					getCallerInfo(), r)
				return
			}
			gotStr = gotErr.Error()
		}
		if gotStr != msg {
			t.Errorf("%sthe function panicked with the wrong message.\nwant: %q\ngot:  %q",
				getCallerInfo(), msg, gotStr)
		}
	}()
	fn()
}

func getCallerInfo() string {
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d\n", file, line)
}
