// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

// Entry is a single (key, value) pair plus the chain link to the next
// entry in the same bucket. The Dict owns every Entry it holds; callers
// obtained one through Find, AddRaw, or an iterator hold only a borrow.
type Entry struct {
	key   any
	value any
	next  *Entry
}

// Key returns the entry's key.
func (e *Entry) Key() any { return e.key }

// Value returns the entry's value.
func (e *Entry) Value() any { return e.value }

// SetValue overwrites the entry's value in place, used by callers of
// AddRaw that want to store a value inline rather than through Add.
func (e *Entry) SetValue(v any) { e.value = v }
