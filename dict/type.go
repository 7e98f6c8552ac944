// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

// Type carries the callbacks a Dict needs to treat keys and values as
// opaque payloads: how to hash and compare keys, how to duplicate or
// release them, and whether a proposed expansion should be allowed to
// proceed. Only HashFunction is required; every other field may be left
// nil, in which case the Dict falls back to storing the caller's value
// directly (no duplication, no destruction, no expansion veto).
type Type struct {
	// HashFunction computes the 64-bit hash of a key. It must be
	// deterministic for a fixed process-wide seed and must not depend on
	// any Dict's internal state.
	HashFunction func(key any) uint64

	// KeyCompare reports whether a and b are the same key. When nil,
	// keys are compared with Go's == operator.
	KeyCompare func(priv any, a, b any) bool

	// KeyDup and ValDup, when set, are used to take an owned copy of a
	// key or value being stored. When nil, the Dict stores the caller's
	// value as-is.
	KeyDup func(priv any, key any) any
	ValDup func(priv any, val any) any

	// KeyDestructor and ValDestructor, when set, are invoked when a key
	// or value is evicted from the Dict (by Delete, or by Replace
	// overwriting an existing value).
	KeyDestructor func(priv any, key any)
	ValDestructor func(priv any, val any)

	// ExpandAllowed, when set, is consulted before every automatic
	// growth on insert — voluntary or forced above forceRatio alike — and
	// may veto it by returning false, given the byte size of the proposed
	// new table and the current load factor. forceRatio only overrides
	// the ResizePolicy toggle, not this callback. Explicit Expand,
	// TryExpand and Resize calls do not consult it.
	ExpandAllowed func(bytes uint64, loadFactor float64) bool
}
