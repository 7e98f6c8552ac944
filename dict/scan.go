// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

import "math/bits"

// EntryCallback is invoked once per entry visited by Scan.
type EntryCallback func(priv any, e *Entry)

// BucketCallback is invoked once per bucket visited by Scan, before its
// entries, and is given the bucket's chain head (possibly nil).
type BucketCallback func(priv any, bucketHead *Entry)

// Scan emits the entries of the bucket(s) the cursor addresses using the
// reverse-binary cursor algorithm, and returns the cursor to pass to the
// next call. A cursor of 0 both starts and terminates a full traversal.
//
// Duplicates are possible across calls that straddle a resize; entries
// present throughout are guaranteed to be emitted at least once. Scan
// pauses rehashing for its own duration, so onEntry may safely call Find
// on the same Dict.
func (d *Dict) Scan(cursor uint64, onEntry EntryCallback, onBucket BucketCallback, priv any) uint64 {
	if d.tables[0].size() == 0 {
		return 0
	}

	d.pauseRehashing()
	defer d.resumeRehashing()

	if !d.isRehashing() {
		t0 := &d.tables[0]
		m0 := t0.mask
		emitBucket(t0, cursor&m0, onEntry, onBucket, priv)

		cursor |= ^m0
		cursor = bits.Reverse64(cursor)
		cursor++
		cursor = bits.Reverse64(cursor)
		return cursor
	}

	small, big := &d.tables[0], &d.tables[1]
	if small.size() > big.size() {
		small, big = big, small
	}
	m0, m1 := small.mask, big.mask

	emitBucket(small, cursor&m0, onEntry, onBucket, priv)
	for {
		emitBucket(big, cursor&m1, onEntry, onBucket, priv)
		cursor |= ^m1
		cursor = bits.Reverse64(cursor)
		cursor++
		cursor = bits.Reverse64(cursor)
		if cursor&(m0^m1) == 0 {
			break
		}
	}
	return cursor
}

func emitBucket(t *table, idx uint64, onEntry EntryCallback, onBucket BucketCallback, priv any) {
	head := t.buckets[idx]
	if onBucket != nil {
		onBucket(priv, head)
	}
	for e := head; e != nil; e = e.next {
		if onEntry != nil {
			onEntry(priv, e)
		}
	}
}
