// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

import (
	"fmt"
	"time"
)

// expandIfNeeded is the trigger policy run before every insert computes
// its target bucket index. It allocates the first table lazily, and
// otherwise decides whether T0 has crossed its load-factor threshold and,
// if so, whether growth is currently permitted.
func (d *Dict) expandIfNeeded() error {
	if d.isRehashing() {
		return nil
	}
	t0 := &d.tables[0]
	if t0.size() == 0 {
		return d.doExpand(initialSize, true)
	}
	if t0.used < t0.size() {
		return nil
	}

	loadFactor := float64(t0.used) / float64(t0.size())
	forced := loadFactor > float64(forceRatio)
	if !d.resizeAllowed() && !forced {
		return nil
	}

	requested := t0.used * 2
	newSize := nextPow2(requested)
	if d.typ.ExpandAllowed != nil && !d.typ.ExpandAllowed(uint64(newSize)*entryByteSize, loadFactor) {
		return nil
	}
	return d.doExpand(requested, true)
}

// Expand grows (or, the first time, allocates) T0 to the smallest power
// of two >= max(size, used). It fails if called while rehashing, or if
// size is smaller than the current live count. Allocation failure is
// fatal; use TryExpand to have it reported instead.
func (d *Dict) Expand(size int) error {
	return d.doExpand(size, false)
}

// TryExpand behaves like Expand but reports allocation failure as
// ErrAllocationFailure instead of letting the underlying panic propagate.
func (d *Dict) TryExpand(size int) error {
	return d.doExpand(size, true)
}

func (d *Dict) doExpand(size int, safe bool) (err error) {
	if d.isRehashing() {
		return fmt.Errorf("dict: cannot expand while rehashing: %w", ErrInvalidArgument)
	}
	used := d.tables[0].used
	if size < used {
		return fmt.Errorf("dict: requested size %d is below used count %d: %w", size, used, ErrInvalidArgument)
	}
	newSize := nextPow2(size)
	if newSize == d.tables[0].size() {
		return fmt.Errorf("dict: table is already size %d: %w", newSize, ErrInvalidArgument)
	}

	if safe {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("dict: failed to allocate table of size %d: %v: %w", newSize, r, ErrAllocationFailure)
			}
		}()
	}

	newTable := table{buckets: make([]*Entry, newSize), mask: uint64(newSize - 1)}
	if d.tables[0].buckets == nil {
		d.tables[0] = newTable
		d.logf("dict: allocated initial table of size %d", newSize)
		d.observe()
		return nil
	}
	d.tables[1] = newTable
	d.rehashIdx = 0
	d.logf("dict: rehash begun, growing %d -> %d", d.tables[0].size(), newSize)
	d.observe()
	return nil
}

// Resize shrinks (or grows) T0 to the smallest power of two >=
// max(initialSize, used). It is rejected while rehashing or while
// voluntary resizing is disabled.
func (d *Dict) Resize() error {
	if !d.resizeAllowed() {
		return fmt.Errorf("dict: resize disabled: %w", ErrInvalidArgument)
	}
	if d.isRehashing() {
		return fmt.Errorf("dict: cannot resize while rehashing: %w", ErrInvalidArgument)
	}
	minimal := d.tables[0].used
	if minimal < initialSize {
		minimal = initialSize
	}
	return d.Expand(minimal)
}

// rehashN migrates up to n non-empty T0 buckets into T1, skipping empty
// buckets under a bounded budget (emptyVisitsFactor*n) so that a very
// sparse table cannot stall a caller's operation. It returns the number
// of bucket slots advanced. When T0 drains completely, T1 takes its
// place and rehashing ends.
func (d *Dict) rehashN(n int) int {
	if !d.isRehashing() {
		return 0
	}
	t0 := &d.tables[0]
	t1 := &d.tables[1]
	emptyVisits := n * emptyVisitsFactor
	advanced := 0

	for n > 0 && t0.used > 0 {
		if d.rehashIdx >= int64(len(t0.buckets)) {
			break
		}
		if t0.buckets[d.rehashIdx] == nil {
			d.rehashIdx++
			advanced++
			emptyVisits--
			if emptyVisits <= 0 {
				d.observe()
				return advanced
			}
			continue
		}

		for e := t0.buckets[d.rehashIdx]; e != nil; {
			next := e.next
			idx := d.typ.HashFunction(e.key) & t1.mask
			e.next = t1.buckets[idx]
			t1.buckets[idx] = e
			t0.used--
			t1.used++
			e = next
		}
		t0.buckets[d.rehashIdx] = nil
		d.rehashIdx++
		advanced++
		n--
	}

	if t0.used == 0 {
		finishedSize := t1.size()
		d.tables[0] = *t1
		d.tables[1] = table{}
		d.rehashIdx = -1
		d.logf("dict: rehash complete, size=%d", finishedSize)
	}
	d.observe()
	return advanced
}

// rehashStep performs a single incremental rehash step (rehashN(1)) iff
// no iterator or snapshot has paused rehashing, and reports whether the
// Dict is still rehashing afterward. Every lookup, insert, and delete
// calls this once.
func (d *Dict) rehashStep() bool {
	if d.pauseRehash > 0 || !d.isRehashing() {
		return d.isRehashing()
	}
	d.rehashN(1)
	return d.isRehashing()
}

// RehashMilliseconds drives rehashN in 100-bucket bursts until either the
// rehash completes or the given wall-clock budget elapses, whichever
// comes first, and returns the total number of bucket slots advanced.
func (d *Dict) RehashMilliseconds(ms int) int {
	if d.pauseRehash > 0 {
		return 0
	}
	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)
	total := 0
	for d.isRehashing() {
		total += d.rehashN(100)
		if !time.Now().Before(deadline) {
			break
		}
	}
	return total
}
