// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

// Iterator walks every entry of a Dict across both tables. A safe
// iterator pauses rehashing for its lifetime, so the caller may freely
// insert and delete entries (including the entry just returned) while it
// is live. An unsafe iterator does not pause rehashing — it is strictly
// read-only, and ReleaseIterator panics if the Dict's structure changed
// while it was live.
type Iterator struct {
	d     *Dict
	table int
	index int64

	entry, next *Entry

	safe        bool
	started     bool
	fingerprint uint64
}

// GetIterator returns an unsafe iterator over d.
func (d *Dict) GetIterator() *Iterator {
	return &Iterator{d: d, table: 0, index: -1}
}

// GetSafeIterator returns a safe iterator over d.
func (d *Dict) GetSafeIterator() *Iterator {
	it := d.GetIterator()
	it.safe = true
	return it
}

// Next advances the iterator and returns the next entry, or (nil, false)
// once every entry has been visited.
func (it *Iterator) Next() (*Entry, bool) {
	d := it.d
	for {
		if it.entry == nil {
			if !it.started {
				it.started = true
				if it.safe {
					d.pauseRehashing()
				} else {
					it.fingerprint = d.fingerprint()
				}
			}
			it.index++
			if it.index >= int64(d.tables[it.table].size()) {
				if d.isRehashing() && it.table == 0 {
					it.table = 1
					it.index = 0
				} else {
					return nil, false
				}
			}
			if it.index < int64(d.tables[it.table].size()) {
				it.entry = d.tables[it.table].buckets[it.index]
			}
		} else {
			it.entry = it.next
		}

		if it.entry != nil {
			it.next = it.entry.next
			return it.entry, true
		}
	}
}

// ReleaseIterator releases the iterator. For a safe iterator this resumes
// rehashing; for an unsafe iterator this asserts that the Dict's
// structure did not change while the iterator was live, panicking
// (InvalidState) if it did.
func (it *Iterator) ReleaseIterator() {
	if !it.started {
		return
	}
	d := it.d
	if it.safe {
		d.resumeRehashing()
		return
	}
	if it.fingerprint != d.fingerprint() {
		panic("dict: illegal mutation detected during unsafe iteration (fingerprint mismatch)")
	}
}
