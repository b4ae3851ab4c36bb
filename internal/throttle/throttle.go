// Package throttle coalesces bursts of control changes into a bounded rate of
// network updates.
//
// It implements a leading-edge throttle with a trailing flush: the first
// change after a quiet interval arms a single flush that fires one interval
// later, and every change inside that window is folded into it. The flush
// must read the control's current value, so the last change before it fires
// is the one that gets sent.
//
// Throttle only makes the decision. Arming the timer and sending the update
// belong to the caller's event loop, which is also the only goroutine that
// touches a Throttle or Set; neither is safe for concurrent use.
package throttle

import "time"

// DefaultInterval bounds updates to one every 50ms.
const DefaultInterval = 50 * time.Millisecond

// Throttle tracks when the last flush was armed for one control.
type Throttle struct {
	interval time.Duration
	now      func() time.Time
	lastSent time.Time
}

// Option configures a Throttle.
type Option func(*Throttle)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Throttle) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates a throttle whose window starts now. A change arriving within
// the first interval after creation does not arm a flush.
func New(interval time.Duration, opts ...Option) *Throttle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := &Throttle{interval: interval, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	t.lastSent = t.now()
	return t
}

// Interval returns the flush delay the caller should arm.
func (t *Throttle) Interval() time.Duration { return t.interval }

// Observe records a change and reports whether the caller must arm a flush
// that fires after Interval. It returns true only when strictly more than one
// interval has passed since the last armed flush.
func (t *Throttle) Observe() bool {
	now := t.now()
	if now.Sub(t.lastSent) > t.interval {
		t.lastSent = now
		return true
	}
	return false
}

// Set tracks one Throttle per key, created on first use.
type Set struct {
	interval  time.Duration
	opts      []Option
	throttles map[string]*Throttle
}

// NewSet returns an empty Set whose throttles use interval.
func NewSet(interval time.Duration, opts ...Option) *Set {
	return &Set{interval: interval, opts: opts, throttles: make(map[string]*Throttle)}
}

// Get returns the throttle for key, creating it if needed.
func (s *Set) Get(key string) *Throttle {
	t, ok := s.throttles[key]
	if !ok {
		t = New(s.interval, s.opts...)
		s.throttles[key] = t
	}
	return t
}

// Observe is Get(key).Observe().
func (s *Set) Observe(key string) bool {
	return s.Get(key).Observe()
}

// Retain drops throttles whose key is not in keys. Controls that come back
// later start with a fresh window.
func (s *Set) Retain(keys []string) {
	keep := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keep[k] = struct{}{}
	}
	for k := range s.throttles {
		if _, ok := keep[k]; !ok {
			delete(s.throttles, k)
		}
	}
}
