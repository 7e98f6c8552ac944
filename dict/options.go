// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

import (
	"sync"

	"github.com/aristanetworks/dictcore/logger"
)

// ResizePolicy is the process-wide "can I grow right now" toggle described
// by the embedding contract: a parent process forking a copy-on-write
// snapshot child disables voluntary growth for the duration of the fork so
// that touching many pages doesn't defeat the fork's memory sharing, while
// emergency growth above the force ratio still proceeds. It is guarded by
// a mutex (rather than left unsynchronized like the Dict itself) because,
// unlike a Dict, it is shared across every Dict in the process.
type ResizePolicy struct {
	mu      sync.Mutex
	allowed bool
}

// NewResizePolicy returns a policy that starts out allowing growth.
func NewResizePolicy() *ResizePolicy {
	return &ResizePolicy{allowed: true}
}

// Enable permits voluntary growth.
func (p *ResizePolicy) Enable() {
	p.mu.Lock()
	p.allowed = true
	p.mu.Unlock()
}

// Disable suppresses voluntary growth; emergency growth above the force
// ratio is unaffected.
func (p *ResizePolicy) Disable() {
	p.mu.Lock()
	p.allowed = false
	p.mu.Unlock()
}

// Allowed reports the current policy state.
func (p *ResizePolicy) Allowed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allowed
}

// defaultPolicy is the policy new Dicts use unless overridden with
// WithResizePolicy. EnableResize/DisableResize operate on it.
var defaultPolicy = NewResizePolicy()

// EnableResize permits voluntary growth process-wide.
func EnableResize() { defaultPolicy.Enable() }

// DisableResize suppresses voluntary growth process-wide. Emergency
// growth above the force ratio still proceeds.
func DisableResize() { defaultPolicy.Disable() }

// MetricsRecorder receives a callback after every structural change to a
// Dict (expand begun, rehash step, rehash completed). dictmetrics.Collector
// implements it as a no-op, since it polls registered Dicts on every scrape.
type MetricsRecorder interface {
	Observe(d *Dict)
}

// Option configures a Dict at construction time.
type Option func(*config)

type config struct {
	logger  logger.Logger
	policy  *ResizePolicy
	metrics MetricsRecorder
}

// WithLogger attaches a logger.Logger that receives trace-level messages
// for rehash lifecycle events. The default is a no-op logger.
func WithLogger(l logger.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithResizePolicy overrides the process-wide default resize policy for
// this Dict only, primarily useful for tests that need to exercise
// resize-suppression without affecting other Dicts in the same process.
func WithResizePolicy(p *ResizePolicy) Option {
	return func(c *config) { c.policy = p }
}

// WithMetrics attaches a MetricsRecorder notified after every structural
// change.
func WithMetrics(m MetricsRecorder) Option {
	return func(c *config) { c.metrics = m }
}

type noopLogger struct{}

func (noopLogger) Info(...interface{})            {}
func (noopLogger) Infof(string, ...interface{})   {}
func (noopLogger) Error(...interface{})           {}
func (noopLogger) Errorf(string, ...interface{})  {}
func (noopLogger) Fatal(...interface{})           {}
func (noopLogger) Fatalf(string, ...interface{})  {}
