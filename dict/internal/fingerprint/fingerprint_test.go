// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package fingerprint

import "testing"

func TestOfDeterministic(t *testing.T) {
	a := Of(1, 2, 3, 4, 5, 6)
	b := Of(1, 2, 3, 4, 5, 6)
	if a != b {
		t.Fatalf("Of is not deterministic: %d != %d", a, b)
	}
}

func TestOfOrderSensitive(t *testing.T) {
	if Of(1, 2, 3) == Of(3, 2, 1) {
		t.Fatalf("Of must be sensitive to argument order")
	}
}

func TestOfChangesWithAnyInput(t *testing.T) {
	base := Of(10, 20, 30, 40, 50, 60)
	if base == Of(11, 20, 30, 40, 50, 60) {
		t.Fatalf("Of did not change when the first value changed")
	}
	if base == Of(10, 20, 30, 40, 50, 61) {
		t.Fatalf("Of did not change when the last value changed")
	}
}
