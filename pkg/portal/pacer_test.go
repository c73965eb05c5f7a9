package portal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock is a manual clock for tests; Sleep advances it and counts.
type stepClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func (c *stepClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestPacerTimestampsVirtual(t *testing.T) {
	p := NewPacer(10, NewVirtualClock(time.Unix(0, 0)))

	var got []time.Duration
	var cb func(time.Duration)
	cb = func(ts time.Duration) {
		got = append(got, ts)
		if len(got) < 4 {
			p.RequestFrame(cb)
		}
	}
	p.RequestFrame(cb)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}, got)
}

func TestPacerPending(t *testing.T) {
	clock := &stepClock{now: time.Unix(100, 0)}
	p := NewPacer(20, clock)

	_, ok := p.Pending()
	assert.False(t, ok, "nothing requested")
	assert.False(t, p.Fire())

	p.RequestFrame(func(time.Duration) {})
	d, ok := p.Pending()
	require.True(t, ok)
	assert.Zero(t, d, "first frame is due immediately")
	require.True(t, p.Fire())

	p.RequestFrame(func(time.Duration) {})
	clock.Advance(10 * time.Millisecond)
	d, ok = p.Pending()
	require.True(t, ok)
	assert.Equal(t, 40*time.Millisecond, d)

	require.True(t, p.Tick())
	assert.Equal(t, []time.Duration{40 * time.Millisecond}, clock.slept)
}

func TestPacerLateFrameDoesNotBurst(t *testing.T) {
	clock := &stepClock{now: time.Unix(0, 0)}
	p := NewPacer(10, clock)

	var got []time.Duration
	record := func(ts time.Duration) { got = append(got, ts) }

	p.RequestFrame(record)
	p.Fire()
	clock.Advance(550 * time.Millisecond)

	p.RequestFrame(record)
	p.Fire()
	p.RequestFrame(record)
	d, _ := p.Pending()

	assert.Equal(t, []time.Duration{0, 550 * time.Millisecond}, got)
	assert.Equal(t, 100*time.Millisecond, d)
}

func TestPacerKeepsLatestRequest(t *testing.T) {
	p := NewPacer(30, NewVirtualClock(time.Unix(0, 0)))
	var first, second int
	p.RequestFrame(func(time.Duration) { first++ })
	p.RequestFrame(func(time.Duration) { second++ })
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestPacerRunStopsOnCancel(t *testing.T) {
	p := NewPacer(60, NewVirtualClock(time.Unix(0, 0)))
	ctx, cancel := context.WithCancel(context.Background())

	frames := 0
	var cb func(time.Duration)
	cb = func(time.Duration) {
		frames++
		if frames == 5 {
			cancel()
		}
		p.RequestFrame(cb)
	}
	p.RequestFrame(cb)

	assert.ErrorIs(t, p.Run(ctx), context.Canceled)
	assert.Equal(t, 5, frames)
}

func TestPacerFPS(t *testing.T) {
	p := NewPacer(25, NewVirtualClock(time.Unix(0, 0)))
	var cb func(time.Duration)
	n := 0
	cb = func(time.Duration) {
		n++
		if n < 60 {
			p.RequestFrame(cb)
		}
	}
	p.RequestFrame(cb)
	require.NoError(t, p.Run(context.Background()))

	assert.InDelta(t, 25, p.FPS(), 1)
}
