// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package dict implements an in-memory, separately-chained hash table with
// incremental (amortized) rehashing and a stateless reverse-binary cursor
// scan. It is designed to serve as the primary key/value index of a
// single-threaded, high-throughput data store: growing or shrinking never
// does work proportional to the live set within a single call, and every
// entry can be visited at least once through an opaque integer cursor even
// while the table is resized between calls.
//
// A Dict is not safe for concurrent use; callers must serialize access to
// a given Dict the same way they would serialize access to a plain Go map.
package dict

import (
	"unsafe"

	"github.com/aristanetworks/dictcore/dict/internal/fingerprint"
	"github.com/aristanetworks/dictcore/logger"
)

const (
	// initialSize is the bucket count of the first table allocated for
	// a Dict, and the floor size used by Resize.
	initialSize = 4
	// forceRatio is the load factor above which growth proceeds even
	// when voluntary growth has been disabled.
	forceRatio = 5
	// emptyVisitsFactor bounds how many empty buckets in total a
	// single rehashN(n) call will skip past before returning early,
	// expressed as a multiple of n. It trades rehash latency against
	// throughput on very sparse tables.
	emptyVisitsFactor = 10
)

var entryByteSize = uint64(unsafe.Sizeof(Entry{}))

// Dict is a separately-chained hash table with two underlying tables: T0
// is always live, and T1 is non-empty only while a rehash is in progress.
type Dict struct {
	tables      [2]table
	rehashIdx   int64 // -1 when not rehashing, else the next T0 bucket to migrate
	pauseRehash int

	typ  *Type
	priv any

	policy  *ResizePolicy
	logger  logger.Logger
	metrics MetricsRecorder
}

// New creates an empty Dict. typ supplies the hash/compare/dup/destroy
// callbacks; priv is an opaque pointer passed back to every callback.
func New(typ *Type, priv any, opts ...Option) *Dict {
	cfg := config{logger: noopLogger{}, policy: defaultPolicy}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Dict{
		rehashIdx: -1,
		typ:       typ,
		priv:      priv,
		policy:    cfg.policy,
		logger:    cfg.logger,
		metrics:   cfg.metrics,
	}
}

// Release drops every entry and both bucket arrays. The zero value left
// behind is not safe to reuse; discard the Dict after calling Release.
func (d *Dict) Release() {
	for t := range d.tables {
		tb := &d.tables[t]
		for _, head := range tb.buckets {
			for e := head; e != nil; {
				next := e.next
				d.destroyKey(e.key)
				d.destroyVal(e.value)
				e = next
			}
		}
		*tb = table{}
	}
	d.rehashIdx = -1
}

// Len returns the number of live entries across both tables.
func (d *Dict) Len() int {
	return d.tables[0].used + d.tables[1].used
}

// Rehashing reports whether a rehash is currently in progress.
func (d *Dict) Rehashing() bool {
	return d.isRehashing()
}

func (d *Dict) isRehashing() bool {
	return d.rehashIdx >= 0
}

func (d *Dict) resizeAllowed() bool {
	if d.policy != nil {
		return d.policy.Allowed()
	}
	return defaultPolicy.Allowed()
}

func (d *Dict) keyEqual(a, b any) bool {
	if d.typ.KeyCompare != nil {
		return d.typ.KeyCompare(d.priv, a, b)
	}
	return a == b
}

func (d *Dict) dupKey(key any) any {
	if d.typ.KeyDup != nil {
		return d.typ.KeyDup(d.priv, key)
	}
	return key
}

func (d *Dict) dupVal(val any) any {
	if d.typ.ValDup != nil {
		return d.typ.ValDup(d.priv, val)
	}
	return val
}

func (d *Dict) destroyKey(key any) {
	if d.typ.KeyDestructor != nil {
		d.typ.KeyDestructor(d.priv, key)
	}
}

func (d *Dict) destroyVal(val any) {
	if d.typ.ValDestructor != nil {
		d.typ.ValDestructor(d.priv, val)
	}
}

func (d *Dict) logf(format string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Infof(format, args...)
	}
}

func (d *Dict) observe() {
	if d.metrics != nil {
		d.metrics.Observe(d)
	}
}

// fingerprint hashes the structural identity of both tables (their bucket
// array address, size, and live count), used by unsafe iterators to
// detect mutation across their lifetime.
func (d *Dict) fingerprint() uint64 {
	return fingerprint.Of(
		bucketsAddr(d.tables[0].buckets), uint64(d.tables[0].size()), uint64(d.tables[0].used),
		bucketsAddr(d.tables[1].buckets), uint64(d.tables[1].size()), uint64(d.tables[1].used),
	)
}

func bucketsAddr(buckets []*Entry) uint64 {
	if len(buckets) == 0 {
		return 0
	}
	return uint64(uintptr(unsafe.Pointer(&buckets[0])))
}

func (d *Dict) pauseRehashing() {
	d.pauseRehash++
}

func (d *Dict) resumeRehashing() {
	d.pauseRehash--
}
