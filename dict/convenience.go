// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

// ForEach visits every entry via a safe iterator, stopping early if fn
// returns false.
func (d *Dict) ForEach(fn func(key, value any) bool) {
	it := d.GetSafeIterator()
	defer it.ReleaseIterator()
	for {
		e, ok := it.Next()
		if !ok {
			return
		}
		if !fn(e.Key(), e.Value()) {
			return
		}
	}
}

// Keys returns every key currently in the Dict, in iteration order (see
// Iterator for the ordering guarantees that implies).
func (d *Dict) Keys() []any {
	keys := make([]any, 0, d.Len())
	d.ForEach(func(k, _ any) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// LoadFactor returns T0's used/size ratio, or 0 for an empty Dict.
func (d *Dict) LoadFactor() float64 {
	if d.tables[0].size() == 0 {
		return 0
	}
	return float64(d.tables[0].used) / float64(d.tables[0].size())
}
