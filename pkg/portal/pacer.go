package portal

import (
	"context"
	"time"
)

// Clock abstracts wall time for the Pacer.
type Clock interface {
	Now() time.Time
	Sleep(time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// NewSystemClock returns the real clock.
func NewSystemClock() Clock {
	return systemClock{}
}

// VirtualClock only moves when slept on, so frames rendered through it are
// spaced exactly one period apart however long they take.
type VirtualClock struct {
	now time.Time
}

// NewVirtualClock starts a virtual clock at start.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

// Now implements Clock.
func (c *VirtualClock) Now() time.Time { return c.now }

// Sleep implements Clock by advancing the clock.
func (c *VirtualClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

// Pacer is a FrameRequester that runs the requested callback no more often
// than the target frame rate.
type Pacer struct {
	clock   Clock
	period  time.Duration
	start   time.Time
	next    time.Time
	pending func(time.Duration)

	frames  int
	refTime time.Time
	fps     float64
}

// NewPacer creates a pacer targeting fps frames per second.
func NewPacer(fps int, clock Clock) *Pacer {
	now := clock.Now()
	return &Pacer{
		clock:   clock,
		period:  time.Second / time.Duration(fps),
		start:   now,
		next:    now,
		refTime: now,
	}
}

// RequestFrame implements FrameRequester. Only the latest request is kept.
func (p *Pacer) RequestFrame(cb func(ts time.Duration)) {
	p.pending = cb
}

// Pending reports whether a frame was requested and how long until it is due.
func (p *Pacer) Pending() (time.Duration, bool) {
	if p.pending == nil {
		return 0, false
	}
	return max(0, p.next.Sub(p.clock.Now())), true
}

// Fire runs the pending callback now. It reports false when none was
// requested.
func (p *Pacer) Fire() bool {
	cb := p.pending
	if cb == nil {
		return false
	}
	p.pending = nil
	now := p.clock.Now()
	if p.next.Before(now) {
		p.next = now
	}
	ts := p.next.Sub(p.start)
	p.next = p.next.Add(p.period)

	cb(ts)
	p.count()
	return true
}

// Tick sleeps until the pending frame is due and fires it.
func (p *Pacer) Tick() bool {
	d, ok := p.Pending()
	if !ok {
		return false
	}
	if d > 0 {
		p.clock.Sleep(d)
	}
	return p.Fire()
}

// Run ticks until ctx is done or no frame is requested.
func (p *Pacer) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !p.Tick() {
			return nil
		}
	}
}

func (p *Pacer) count() {
	p.frames++
	now := p.clock.Now()
	if delta := now.Sub(p.refTime); delta >= time.Second {
		p.fps = float64(p.frames) / delta.Seconds()
		p.frames = 0
		p.refTime = now
	}
}

// FPS returns the measured frame rate over the last full second.
func (p *Pacer) FPS() float64 {
	return p.fps
}
