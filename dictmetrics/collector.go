// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package dictmetrics exports a dict.Dict's structural stats (live count,
// table size, rehash state, chain-length histogram) as Prometheus
// metrics, the same way cmd/ocprometheus exports gNMI telemetry in the
// wider goarista tree this package was adapted from.
package dictmetrics

import (
	"strconv"
	"sync"

	"github.com/aristanetworks/dictcore/dict"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements both prometheus.Collector and dict.MetricsRecorder:
// registered Dicts are polled on every Prometheus scrape, and Observe can
// be passed via dict.WithMetrics; Observe itself records nothing.
type Collector struct {
	namespace string

	used      *prometheus.Desc
	size      *prometheus.Desc
	rehashing *prometheus.Desc
	chainLen  *prometheus.Desc

	mu    sync.Mutex
	dicts map[string]*dict.Dict
}

// New returns a Collector whose metric names are prefixed with namespace.
func New(namespace string) *Collector {
	labels := []string{"dict"}
	return &Collector{
		namespace: namespace,
		used: prometheus.NewDesc(namespace+"_dict_used_entries", "Live entries in table 0.",
			labels, nil),
		size: prometheus.NewDesc(namespace+"_dict_table_size", "Bucket count of table 0.",
			labels, nil),
		rehashing: prometheus.NewDesc(namespace+"_dict_rehashing", "1 if a rehash is in progress.",
			labels, nil),
		chainLen: prometheus.NewDesc(namespace+"_dict_chain_length_buckets", "Bucket count by chain length.",
			[]string{"dict", "length"}, nil),
		dicts: make(map[string]*dict.Dict),
	}
}

// Register adds d to the set of Dicts this Collector reports on, keyed by
// name (e.g. a shard or database index).
func (c *Collector) Register(name string, d *dict.Dict) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dicts[name] = d
}

// Unregister removes a previously registered Dict.
func (c *Collector) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.dicts, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.used
	ch <- c.size
	ch <- c.rehashing
	ch <- c.chainLen
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	snapshot := make(map[string]*dict.Dict, len(c.dicts))
	for name, d := range c.dicts {
		snapshot[name] = d
	}
	c.mu.Unlock()

	for name, d := range snapshot {
		t0, t1 := d.Stats()
		ch <- prometheus.MustNewConstMetric(c.used, prometheus.GaugeValue, float64(t0.Used), name)
		ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(t0.Size), name)

		rehashing := 0.0
		if d.Rehashing() {
			rehashing = 1
		}
		ch <- prometheus.MustNewConstMetric(c.rehashing, prometheus.GaugeValue, rehashing, name)

		for length, n := range t0.ChainLengths {
			if n == 0 {
				continue
			}
			ch <- prometheus.MustNewConstMetric(c.chainLen, prometheus.GaugeValue, float64(n),
				name, strconv.Itoa(length))
		}
		if d.Rehashing() {
			for length, n := range t1.ChainLengths {
				if n == 0 {
					continue
				}
				ch <- prometheus.MustNewConstMetric(c.chainLen, prometheus.GaugeValue, float64(n),
					name+"/rehash-target", strconv.Itoa(length))
			}
		}
	}
}

// Observe implements dict.MetricsRecorder. Metrics here are pull-based
// (collected on every Prometheus scrape via Collect), so Observe is a
// no-op; it exists so a Dict can be constructed with
// dict.WithMetrics(collector) uniformly, whether the recorder backing it
// is push- or pull-based.
func (c *Collector) Observe(*dict.Dict) {}
