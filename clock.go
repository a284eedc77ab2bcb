package canopy

import "time"

// Frame deltas above maxFrameDelta (a stall, a breakpoint, a dragged window)
// are replaced by stallFrameDelta so animations do not jump.
const (
	maxFrameDelta   = 100 * time.Millisecond
	stallFrameDelta = 8 * time.Millisecond
)

// CompositionClock measures frame deltas for animation.
type CompositionClock struct {
	now   func() time.Time
	last  time.Time
	delta time.Duration
	total time.Duration
}

// NewCompositionClock returns a clock reading time.Now.
func NewCompositionClock() *CompositionClock {
	return &CompositionClock{now: time.Now}
}

// NewCompositionClockWithSource returns a clock reading now, for tests and
// fixed-step replays.
func NewCompositionClockWithSource(now func() time.Time) *CompositionClock {
	return &CompositionClock{now: now}
}

// Tick records the time since the previous Tick. The first Tick yields a
// zero delta.
func (c *CompositionClock) Tick() {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		c.delta = 0
		return
	}
	d := t.Sub(c.last)
	c.last = t
	if d < 0 {
		d = 0
	}
	if d > maxFrameDelta {
		d = stallFrameDelta
	}
	c.delta = d
	c.total += d
}

// Delta returns the duration recorded by the last Tick.
func (c *CompositionClock) Delta() time.Duration { return c.delta }

// DeltaSeconds returns Delta in seconds, the unit tweens use.
func (c *CompositionClock) DeltaSeconds() float32 {
	return float32(c.delta.Seconds())
}

// Total returns the sum of all clamped deltas.
func (c *CompositionClock) Total() time.Duration { return c.total }
