// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

import (
	"fmt"
	"strings"
)

// chainBuckets is the number of histogram buckets GetStats/Stats report
// chain lengths in; the last bucket accumulates every chain of that
// length or longer.
const chainBuckets = 50

// Stats is a snapshot of one table's structural shape: its size, its
// live entry count, and a histogram of chain lengths (index i counts
// buckets with exactly i entries, except the final index which counts
// i >= chainBuckets-1).
type Stats struct {
	Size         int
	Used         int
	ChainLengths [chainBuckets]uint64
}

func tableStats(t *table) Stats {
	s := Stats{Size: t.size(), Used: t.used}
	for _, head := range t.buckets {
		n := 0
		for e := head; e != nil; e = e.next {
			n++
		}
		if n >= chainBuckets {
			n = chainBuckets - 1
		}
		s.ChainLengths[n]++
	}
	return s
}

// Stats returns a structured snapshot of T0, and of T1 when a rehash is
// in progress (the zero value otherwise).
func (d *Dict) Stats() (t0, t1 Stats) {
	t0 = tableStats(&d.tables[0])
	if d.isRehashing() {
		t1 = tableStats(&d.tables[1])
	}
	return t0, t1
}

// GetStats renders a human-readable chain-length histogram, the
// counterpart of Stats for diagnostic logging and shell tooling.
func (d *Dict) GetStats() string {
	var sb strings.Builder
	t0, t1 := d.Stats()
	writeTableStats(&sb, "Hash table 0", t0)
	if d.isRehashing() {
		writeTableStats(&sb, "Hash table 1", t1)
	}
	return sb.String()
}

func writeTableStats(sb *strings.Builder, label string, s Stats) {
	fmt.Fprintf(sb, "%s stats:\n size: %d\n used: %d\n", label, s.Size, s.Used)
	for i, n := range s.ChainLengths {
		if n == 0 {
			continue
		}
		if i == chainBuckets-1 {
			fmt.Fprintf(sb, " chains of length >= %d: %d\n", i, n)
		} else {
			fmt.Fprintf(sb, " chains of length %d: %d\n", i, n)
		}
	}
}
