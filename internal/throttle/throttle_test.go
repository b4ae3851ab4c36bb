package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestObserve_WindowStartsAtCreation(t *testing.T) {
	clock := newClock()
	th := New(50*time.Millisecond, WithClock(clock.now))

	clock.advance(10 * time.Millisecond)
	if th.Observe() {
		t.Fatal("Observe() = true inside the first window, want false")
	}
	clock.advance(41 * time.Millisecond)
	if !th.Observe() {
		t.Fatal("Observe() = false after 51ms, want true")
	}
}

func TestObserve_StrictBoundary(t *testing.T) {
	clock := newClock()
	th := New(50*time.Millisecond, WithClock(clock.now))

	clock.advance(50 * time.Millisecond)
	assert.False(t, th.Observe(), "exactly one interval is not enough")
	clock.advance(time.Nanosecond)
	assert.True(t, th.Observe())
}

// A continuous drag every 5ms for one second arms at most one flush per
// window, and every observed change is covered by a flush armed at or
// before it.
func TestObserve_BoundedRate(t *testing.T) {
	clock := newClock()
	th := New(DefaultInterval, WithClock(clock.now))
	clock.advance(100 * time.Millisecond)

	var armed []time.Time
	for i := 0; i < 200; i++ {
		if th.Observe() {
			armed = append(armed, clock.t)
		}
		clock.advance(5 * time.Millisecond)
	}

	if len(armed) == 0 {
		t.Fatal("no flush armed during a one second drag")
	}
	for i := 1; i < len(armed); i++ {
		if gap := armed[i].Sub(armed[i-1]); gap <= DefaultInterval {
			t.Fatalf("flushes armed %v apart, want more than %v", gap, DefaultInterval)
		}
	}
	// 1s of events at 55ms spacing.
	assert.LessOrEqual(t, len(armed), 19)
}

func TestNew_DefaultsInterval(t *testing.T) {
	th := New(0)
	assert.Equal(t, DefaultInterval, th.Interval())
}

func TestSet_PerKeyAndRetain(t *testing.T) {
	clock := newClock()
	set := NewSet(50*time.Millisecond, WithClock(clock.now))

	a := set.Get("1")
	assert.Same(t, a, set.Get("1"))

	clock.advance(60 * time.Millisecond)
	assert.True(t, set.Observe("1"))
	// "2" is created now, so its window has just started.
	assert.False(t, set.Observe("2"))

	set.Retain([]string{"2"})
	assert.NotSame(t, a, set.Get("1"))
}
