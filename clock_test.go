package canopy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClockFirstTickIsZero(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewCompositionClockWithSource(ft.now)

	c.Tick()
	assert.Zero(t, c.Delta())
	assert.Zero(t, c.Total())
}

func TestClockDeltas(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewCompositionClockWithSource(ft.now)
	c.Tick()

	ft.advance(16 * time.Millisecond)
	c.Tick()
	assert.Equal(t, 16*time.Millisecond, c.Delta())
	assert.InDelta(t, 0.016, c.DeltaSeconds(), 1e-6)

	ft.advance(100 * time.Millisecond)
	c.Tick()
	assert.Equal(t, 100*time.Millisecond, c.Delta(), "the limit itself is not clamped")

	ft.advance(2 * time.Second)
	c.Tick()
	assert.Equal(t, 8*time.Millisecond, c.Delta())

	assert.Equal(t, 124*time.Millisecond, c.Total())
}

func TestClockIgnoresBackwardsTime(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewCompositionClockWithSource(ft.now)
	c.Tick()
	ft.advance(-time.Second)
	c.Tick()
	assert.Zero(t, c.Delta())
}

func TestSceneSetClock(t *testing.T) {
	s := NewScene()
	c := NewCompositionClockWithSource(time.Now)
	s.SetClock(c)
	s.SetClock(nil)
	assert.Same(t, c, s.Clock())
}
