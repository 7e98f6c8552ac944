// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dictmetrics

import (
	"strings"
	"testing"

	"github.com/aristanetworks/dictcore/dict"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectReportsRegisteredDicts(t *testing.T) {
	c := New("test")
	d := dict.New(dict.StringType(), nil, dict.WithMetrics(c))
	c.Register("shard-0", d)
	defer c.Unregister("shard-0")

	d.Add("a", 1)
	d.Add("b", 2)

	const want = `
# HELP test_dict_used_entries Live entries in table 0.
# TYPE test_dict_used_entries gauge
test_dict_used_entries{dict="shard-0"} 2
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(want), "test_dict_used_entries"); err != nil {
		t.Fatalf("unexpected collected metrics: %v", err)
	}
}

func TestUnregisterStopsReporting(t *testing.T) {
	c := New("test")
	d := dict.New(dict.StringType(), nil)
	c.Register("shard-0", d)
	c.Unregister("shard-0")

	if n := testutil.CollectAndCount(c); n != 0 {
		t.Fatalf("CollectAndCount after Unregister = %d, want 0", n)
	}
}
