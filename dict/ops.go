// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

import "fmt"

// keyIndex triggers expand-if-needed, then locates key in whichever
// table(s) are currently live. If the key is present it returns its
// table and entry; otherwise it returns the table and bucket index new
// insertions should target (T1 while rehashing, else T0).
func (d *Dict) keyIndex(key any) (targetTable int, index uint64, existing *Entry, err error) {
	if err := d.expandIfNeeded(); err != nil {
		return 0, 0, nil, err
	}

	h := d.typ.HashFunction(key)
	scanTables := 1
	if d.isRehashing() {
		scanTables = 2
	}
	for t := 0; t < scanTables; t++ {
		tb := &d.tables[t]
		idx := h & tb.mask
		for e := tb.buckets[idx]; e != nil; e = e.next {
			if d.keyEqual(e.key, key) {
				return t, idx, e, nil
			}
		}
	}

	targetTable = 0
	if d.isRehashing() {
		targetTable = 1
	}
	return targetTable, h & d.tables[targetTable].mask, nil, nil
}

// addRaw is the shared core of Add, AddRaw, AddOrFind, and Replace: it
// returns a freshly spliced entry for a new key, or the existing entry
// when the key is already present.
func (d *Dict) addRaw(key any) (fresh *Entry, existing *Entry, err error) {
	t, idx, existing, err := d.keyIndex(key)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, existing, nil
	}

	tb := &d.tables[t]
	e := &Entry{key: d.dupKey(key)}
	e.next = tb.buckets[idx]
	tb.buckets[idx] = e
	tb.used++
	return e, nil, nil
}

// Add inserts key/value, failing with ErrKeyExists if key is already
// present.
func (d *Dict) Add(key, value any) error {
	d.rehashStep()
	fresh, _, err := d.addRaw(key)
	if err != nil {
		return err
	}
	if fresh == nil {
		return fmt.Errorf("dict: %w", ErrKeyExists)
	}
	fresh.value = d.dupVal(value)
	return nil
}

// AddRaw inserts key with no value set and returns the fresh entry for
// the caller to fill in, or returns the existing entry when key is
// already present (fresh is nil in that case).
func (d *Dict) AddRaw(key any) (fresh *Entry, existing *Entry, err error) {
	d.rehashStep()
	return d.addRaw(key)
}

// AddOrFind always returns an entry for key: a fresh one if it was
// absent, or the existing one otherwise.
func (d *Dict) AddOrFind(key any) (*Entry, error) {
	d.rehashStep()
	fresh, existing, err := d.addRaw(key)
	if err != nil {
		return nil, err
	}
	if fresh != nil {
		return fresh, nil
	}
	return existing, nil
}

// Replace sets key to value, reporting added=true if the key was newly
// inserted or added=false if an existing value was overwritten. When
// overwriting, the new value is duplicated before the old one is
// destroyed so that reference-counted payloads never drop to zero
// references transiently.
func (d *Dict) Replace(key, value any) (added bool, err error) {
	d.rehashStep()
	fresh, existing, err := d.addRaw(key)
	if err != nil {
		return false, err
	}
	if fresh != nil {
		fresh.value = d.dupVal(value)
		return true, nil
	}
	newVal := d.dupVal(value)
	oldVal := existing.value
	existing.value = newVal
	d.destroyVal(oldVal)
	return false, nil
}

// Find looks up key, performing one incremental rehash step first.
func (d *Dict) Find(key any) (*Entry, bool) {
	d.rehashStep()
	if d.tables[0].size() == 0 {
		return nil, false
	}
	h := d.typ.HashFunction(key)
	scanTables := 1
	if d.isRehashing() {
		scanTables = 2
	}
	for t := 0; t < scanTables; t++ {
		tb := &d.tables[t]
		idx := h & tb.mask
		for e := tb.buckets[idx]; e != nil; e = e.next {
			if d.keyEqual(e.key, key) {
				return e, true
			}
		}
	}
	return nil, false
}

// FetchValue is a convenience wrapper over Find that returns just the
// value.
func (d *Dict) FetchValue(key any) (any, bool) {
	e, ok := d.Find(key)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Delete removes key, destroying its key and value via the Type's
// destructors. It returns ErrNotFound if key is absent.
func (d *Dict) Delete(key any) error {
	_, err := d.genericDelete(key, true)
	return err
}

// Unlink removes key without destroying its payload and returns the
// unlinked entry so the caller can inspect it before releasing it with
// FreeUnlinkedEntry.
func (d *Dict) Unlink(key any) (*Entry, error) {
	return d.genericDelete(key, false)
}

// FreeUnlinkedEntry destroys the key and value of an entry previously
// returned by Unlink.
func (d *Dict) FreeUnlinkedEntry(e *Entry) {
	d.destroyKey(e.key)
	d.destroyVal(e.value)
}

func (d *Dict) genericDelete(key any, free bool) (*Entry, error) {
	d.rehashStep()
	if d.tables[0].size() == 0 {
		return nil, fmt.Errorf("dict: %w", ErrNotFound)
	}
	h := d.typ.HashFunction(key)
	scanTables := 1
	if d.isRehashing() {
		scanTables = 2
	}
	for t := 0; t < scanTables; t++ {
		tb := &d.tables[t]
		idx := h & tb.mask
		var prev *Entry
		for e := tb.buckets[idx]; e != nil; e = e.next {
			if d.keyEqual(e.key, key) {
				if prev != nil {
					prev.next = e.next
				} else {
					tb.buckets[idx] = e.next
				}
				tb.used--
				e.next = nil
				if free {
					d.destroyKey(e.key)
					d.destroyVal(e.value)
					return nil, nil
				}
				return e, nil
			}
			prev = e
		}
	}
	return nil, fmt.Errorf("dict: %w", ErrNotFound)
}
