// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

import (
	"testing"
	"time"

	"github.com/aristanetworks/dictcore/internal/assertutil"
)

// The helpers below are the golden invariant checks: each one asserts a
// single property from the contract this package implements, so a test can
// call whichever subset applies after driving the Dict into some state.

// assertP1LenMatchesUsed checks that Len() is always the sum of both
// tables' used counts.
func assertP1LenMatchesUsed(t *testing.T, d *Dict) {
	t.Helper()
	want := d.tables[0].used + d.tables[1].used
	if got := d.Len(); got != want {
		t.Errorf("Len() = %d, want %d (T0.used=%d + T1.used=%d)",
			got, want, d.tables[0].used, d.tables[1].used)
	}
}

// assertP2RehashingMatchesTableTwo checks T[1].size > 0 iff a rehash index
// is set.
func assertP2RehashingMatchesTableTwo(t *testing.T, d *Dict) {
	t.Helper()
	t1Allocated := d.tables[1].size() > 0
	if t1Allocated != d.isRehashing() {
		t.Errorf("T1 allocated = %v, but isRehashing() = %v", t1Allocated, d.isRehashing())
	}
}

// assertP3EmptyPrefixDuringRehash checks that every T0 bucket before the
// current rehash index is empty while a rehash is in progress.
func assertP3EmptyPrefixDuringRehash(t *testing.T, d *Dict) {
	t.Helper()
	if !d.isRehashing() {
		return
	}
	for i := int64(0); i < d.rehashIdx && i < int64(d.tables[0].size()); i++ {
		if d.tables[0].buckets[i] != nil {
			t.Errorf("T0 bucket %d is non-empty below rehash index %d", i, d.rehashIdx)
		}
	}
}

// assertP4NoKeyInBothTables checks that no key is reachable from both T0
// and T1 at once.
func assertP4NoKeyInBothTables(t *testing.T, d *Dict) {
	t.Helper()
	if !d.isRehashing() {
		return
	}
	seen := make(map[interface{}]bool)
	for _, head := range d.tables[0].buckets {
		for e := head; e != nil; e = e.next {
			seen[e.key] = true
		}
	}
	for _, head := range d.tables[1].buckets {
		for e := head; e != nil; e = e.next {
			if seen[e.key] {
				t.Errorf("key %v present in both T0 and T1", e.key)
			}
		}
	}
}

// assertP5PowerOfTwoSizes checks that every allocated table's bucket array
// length is a power of two.
func assertP5PowerOfTwoSizes(t *testing.T, d *Dict) {
	t.Helper()
	for i, tb := range d.tables {
		size := tb.size()
		if size == 0 {
			continue
		}
		if size&(size-1) != 0 {
			t.Errorf("T%d size %d is not a power of two", i, size)
		}
	}
}

func assertAllInvariants(t *testing.T, d *Dict) {
	t.Helper()
	assertP1LenMatchesUsed(t, d)
	assertP2RehashingMatchesTableTwo(t, d)
	assertP3EmptyPrefixDuringRehash(t, d)
	assertP4NoKeyInBothTables(t, d)
	assertP5PowerOfTwoSizes(t, d)
}

func TestInvariantsHoldThroughInsertAndDelete(t *testing.T) {
	d := New(intType(), nil)
	for i := 0; i < 3000; i++ {
		if err := d.Add(i, i); err != nil {
			t.Fatalf("Add(%d): %v", i, err)
		}
		assertAllInvariants(t, d)
	}
	for i := 0; i < 3000; i += 3 {
		if err := d.Delete(i); err != nil {
			t.Fatalf("Delete(%d): %v", i, err)
		}
		assertAllInvariants(t, d)
	}
}

func TestInvariantsHoldMidRehash(t *testing.T) {
	d := New(intType(), nil)
	for i := 0; i < initialSize*4; i++ {
		d.Add(i, i)
	}
	if !d.Rehashing() {
		t.Skip("dict finished rehashing before the mid-rehash assertion could run")
	}
	assertAllInvariants(t, d)
	d.Find(0)
	assertAllInvariants(t, d)
}

// R1/R2: add/find/delete round-trip exactly, using assertutil.Diff for a
// readable failure message instead of a bare equality check.
func TestPropertyR1R2RoundTrip(t *testing.T) {
	d := New(intType(), nil)
	if err := d.Add(7, "seven"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	v, ok := d.FetchValue(7)
	if !ok {
		t.Fatalf("FetchValue(7) not found after Add")
	}
	if diff := assertutil.Diff("seven", v); diff != "" {
		t.Fatalf("FetchValue(7) mismatch: %s", diff)
	}

	if err := d.Delete(7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := d.FetchValue(7); ok {
		t.Fatalf("FetchValue(7) still found after Delete")
	}
}

// B1: inserting past used == size triggers growth, and the post-insert
// size is at least double the pre-insert used count.
func TestPropertyB1GrowthDoublesSize(t *testing.T) {
	d := New(intType(), nil)
	for i := 0; i < initialSize; i++ {
		d.Add(i, i)
	}
	usedBefore := d.tables[0].used
	d.Add(initialSize, initialSize)

	sizeAfter := d.tables[0].size()
	if d.Rehashing() {
		sizeAfter = d.tables[1].size()
	}
	if sizeAfter < 2*usedBefore {
		t.Fatalf("post-growth size %d is below 2*usedBefore (%d)", sizeAfter, 2*usedBefore)
	}
}

// B2: with resize disabled and used/size <= forceRatio, growth is
// suppressed.
func TestPropertyB2GrowthSuppressedBelowForceRatio(t *testing.T) {
	policy := NewResizePolicy()
	policy.Disable()
	d := New(intType(), nil, WithResizePolicy(policy))

	for i := 0; i < initialSize; i++ {
		d.Add(i, i)
	}
	sizeBefore := d.tables[0].size()
	// used/size climbs from 1 to 19/4, staying <= forceRatio throughout
	// this loop.
	for i := initialSize; i < initialSize*forceRatio; i++ {
		d.Add(i, i)
		if d.tables[0].size() != sizeBefore || d.Rehashing() {
			t.Fatalf("table grew at used=%d, size=%d with resize disabled and load factor <= forceRatio",
				i+1, sizeBefore)
		}
	}
}

// B3: RehashMilliseconds returns within its budget (plus one batch) and
// actually advances (or completes) an in-progress rehash.
func TestPropertyB3RehashMillisecondsRespectsBudget(t *testing.T) {
	d := New(intType(), nil)
	for i := 0; i < initialSize*8; i++ {
		d.Add(i, i)
	}
	if !d.Rehashing() {
		t.Skip("dict finished rehashing before RehashMilliseconds could be exercised")
	}

	const budgetMS = 5
	start := time.Now()
	advanced := d.RehashMilliseconds(budgetMS)
	elapsed := time.Since(start)

	if advanced == 0 {
		t.Fatalf("RehashMilliseconds advanced 0 buckets on a rehashing dict")
	}
	// One batch is 100 buckets; allow generous slack for scheduling jitter
	// since this is a wall-clock, not a cycle-count, budget.
	maxElapsed := time.Duration(budgetMS)*time.Millisecond + 200*time.Millisecond
	if elapsed > maxElapsed {
		t.Fatalf("RehashMilliseconds(%d) took %s, want <= %s", budgetMS, elapsed, maxElapsed)
	}

	for i := 0; i < initialSize*8; i++ {
		if _, ok := d.FetchValue(i); !ok {
			t.Fatalf("key %d lost while RehashMilliseconds was draining the table", i)
		}
	}
}

// The fingerprint mismatch path is an InvalidState programmer-error
// assertion (spec.md §7), not a recoverable error; verify it panics with
// the exact message callers are documented to see.
func TestUnsafeIteratorPanicsWithInvalidStateMessage(t *testing.T) {
	d := New(intType(), nil)
	for i := 0; i < 10; i++ {
		d.Add(i, i)
	}

	assertutil.ShouldPanicWithStr(t,
		"dict: illegal mutation detected during unsafe iteration (fingerprint mismatch)",
		func() {
			it := d.GetIterator()
			it.Next()
			d.Add(1000, 1000)
			it.ReleaseIterator()
		})
}
