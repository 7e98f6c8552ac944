// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

import "testing"

func TestStringHashDeterministic(t *testing.T) {
	SetHashFunctionSeed([16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16})
	a := StringHash("hello")
	b := StringHash("hello")
	if a != b {
		t.Fatalf("StringHash not deterministic for the same seed: %d != %d", a, b)
	}
	if StringHash("hello") == StringHash("world") {
		t.Fatalf("StringHash collided on two different short keys")
	}
}

func TestStringHashCIIgnoresCase(t *testing.T) {
	SetHashFunctionSeed([16]byte{})
	if StringHashCI("Hello") != StringHashCI("hello") {
		t.Fatalf("StringHashCI must be case-insensitive")
	}
	if StringHashCI("Hello") != StringHashCI("HELLO") {
		t.Fatalf("StringHashCI must be case-insensitive")
	}
}

func TestStringTypeRoundTrip(t *testing.T) {
	d := New(StringType(), nil)
	if err := d.Add("alpha", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if v, ok := d.FetchValue("alpha"); !ok || v != 1 {
		t.Fatalf("FetchValue(alpha) = %v, %v; want 1, true", v, ok)
	}
	if _, ok := d.FetchValue("ALPHA"); ok {
		t.Fatalf("StringType must be case-sensitive")
	}
}

func TestStringTypeCaseInsensitiveRoundTrip(t *testing.T) {
	d := New(StringTypeCaseInsensitive(), nil)
	if err := d.Add("Alpha", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if v, ok := d.FetchValue("ALPHA"); !ok || v != 1 {
		t.Fatalf("FetchValue(ALPHA) = %v, %v; want 1, true", v, ok)
	}
}
