// Package health implements a fixed-backoff failure detector for cluster
// map resources: a per-resource failure counter that trips a time-bounded
// soft-down state when errors cluster within a window, and automatically
// reopens after a fixed backoff.
package health

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Config is the immutable configuration of a Policy, constructed explicitly
// by the caller (no environment variables, no config files).
type Config struct {
	// FailureWindow is the sliding window over which errors are counted
	// against Threshold.
	FailureWindow time.Duration
	// Threshold is the number of errors within FailureWindow that trips
	// the resource down.
	Threshold int
	// RetryBackoff is how long a tripped resource stays down before
	// IsDown reopens it.
	RetryBackoff time.Duration
	// HardDown fixes the resource permanently down at construction; no
	// transition ever clears it.
	HardDown bool
}

// Option configures an optional aspect of a Policy beyond Config.
type Option func(*Policy)

// WithClock overrides the Policy's time source. Defaults to the system
// clock.
func WithClock(c Clock) Option {
	return func(p *Policy) { p.clock = c }
}

// WithLogger attaches a logger for the mandated "resource went down" event.
// Without one, the policy is silent (nil-safe, no side effects by default).
func WithLogger(l *logrus.Logger) Option {
	return func(p *Policy) { p.logger = l }
}

// Policy is a per-resource failure counter and soft/hard-down state
// machine. Any number of goroutines may call OnError and IsDown
// concurrently. IsDown is lock-free on the healthy path; OnError and the
// down-expiry check in IsDown are serialised by a per-resource lock.
type Policy struct {
	id     string
	config Config
	clock  Clock
	logger *logrus.Logger

	mu        sync.Mutex
	failures  []time.Time
	downUntil time.Time

	down atomic.Bool
}

// NewPolicy constructs a Policy for the named resource. id is used only for
// the log event.
func NewPolicy(id string, config Config, opts ...Option) *Policy {
	p := &Policy{
		id:       id,
		config:   config,
		clock:    systemClock{},
		failures: make([]time.Time, 0, config.Threshold),
	}
	for _, opt := range opts {
		opt(p)
	}
	if config.HardDown {
		p.down.Store(true)
	}
	return p
}

// OnError records a failure at the current time. cause is an optional
// diagnostic error attached to the log event emitted on a down transition;
// it never affects counting or timing. If the resource is already down,
// the error is absorbed with no queue mutation.
func (p *Policy) OnError(cause error) {
	if p.config.HardDown {
		return
	}
	if p.down.Load() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.down.Load() {
		return
	}

	now := p.clock.Now()
	cutoff := now.Add(-p.config.FailureWindow)

	i := 0
	for i < len(p.failures) && p.failures[i].Before(cutoff) {
		i++
	}
	p.failures = p.failures[i:]
	p.failures = append(p.failures, now)

	if len(p.failures) < p.config.Threshold {
		return
	}

	p.failures = p.failures[:0]
	p.downUntil = now.Add(p.config.RetryBackoff)
	p.down.Store(true)

	entry := p.logger
	if entry != nil {
		fields := logrus.Fields{"resource": p.id, "down_until": p.downUntil}
		if cause != nil {
			fields["cause"] = cause
		}
		entry.WithFields(fields).Warn("resource went down")
	}
}

// IsDown reports whether the resource is currently considered down. The
// fast path (resource healthy) never takes the lock; only the slow path
// (resource currently marked down) does, to check expiry.
func (p *Policy) IsDown() bool {
	if p.config.HardDown {
		return true
	}
	if !p.down.Load() {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.clock.Now().After(p.downUntil) {
		p.down.Store(false)
		return false
	}
	return true
}

// IsHardDown returns the immutable hard-down flag this Policy was
// constructed with.
func (p *Policy) IsHardDown() bool {
	return p.config.HardDown
}
