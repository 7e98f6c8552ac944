// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

import "golang.org/x/exp/rand"

// RandomEntry picks a uniformly random bucket (accounting for the
// migrated/unmigrated split while rehashing) and then a uniformly random
// element of that bucket's chain. Chains of different lengths are not
// equally likely to be chosen from; that bias is accepted, per the
// contract this package implements.
func (d *Dict) RandomEntry(rng *rand.Rand) (*Entry, bool) {
	if d.tables[0].size() == 0 {
		return nil, false
	}

	var e *Entry
	if d.isRehashing() {
		for e == nil {
			d.rehashStep()
			if !d.isRehashing() {
				break
			}
			span0 := d.tables[0].size() - int(d.rehashIdx)
			if span0 < 0 {
				span0 = 0
			}
			total := span0 + d.tables[1].size()
			if total == 0 {
				return nil, false
			}
			r := rng.Intn(total)
			if r < span0 {
				e = d.tables[0].buckets[int(d.rehashIdx)+r]
			} else {
				e = d.tables[1].buckets[r-span0]
			}
		}
	}
	for e == nil {
		idx := rng.Intn(d.tables[0].size())
		e = d.tables[0].buckets[idx]
	}

	n := 0
	for x := e; x != nil; x = x.next {
		n++
	}
	pick := rng.Intn(n)
	for i := 0; i < pick; i++ {
		e = e.next
	}
	return e, true
}

// SomeKeys performs a contiguous, non-uniform sample: it advances the
// rehash by up to count steps, then walks forward from a random slot for
// up to 10*count probes across both tables (skipping T0 ranges the
// rehash invariant guarantees are empty), collecting every entry found
// until count entries have been gathered. It is built for speed, not
// uniformity, and may return fewer than count entries.
func (d *Dict) SomeKeys(rng *rand.Rand, count int) []*Entry {
	if d.tables[0].size() == 0 || count <= 0 {
		return nil
	}

	for i := 0; i < count && d.isRehashing(); i++ {
		d.rehashStep()
	}

	scanTables := 1
	if d.isRehashing() {
		scanTables = 2
	}
	maxMask := d.tables[0].mask
	if scanTables == 2 && d.tables[1].mask > maxMask {
		maxMask = d.tables[1].mask
	}

	result := make([]*Entry, 0, count)
	start := uint64(rng.Int63n(int64(maxMask) + 1))
	maxProbes := 10 * count
	for probe := 0; probe < maxProbes && len(result) < count; probe++ {
		v := start + uint64(probe)
		for t := 0; t < scanTables; t++ {
			tb := &d.tables[t]
			idx := v & tb.mask
			if t == 0 && d.isRehashing() && idx < uint64(d.rehashIdx) {
				continue
			}
			for e := tb.buckets[idx]; e != nil && len(result) < count; e = e.next {
				result = append(result, e)
			}
		}
	}
	return result
}

// FairRandomEntry takes up to 15 contiguous samples via SomeKeys and
// picks uniformly among them, falling back to RandomEntry if the sample
// comes back empty.
func (d *Dict) FairRandomEntry(rng *rand.Rand) (*Entry, bool) {
	const sampleSize = 15
	sample := d.SomeKeys(rng, sampleSize)
	if len(sample) == 0 {
		return d.RandomEntry(rng)
	}
	return sample[rng.Intn(len(sample))], true
}
