package main

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Clock reports chart time in milliseconds. Chart time starts negative so the
// player gets a lead-in before the first object.
type Clock interface {
	Now() float64
	Pause()
	Resume()
	IsPaused() bool
}

// wallClock runs chart time off the monotonic clock, minus time spent paused.
type wallClock struct {
	mu sync.RWMutex

	start  time.Time
	origin float64 // chart time at start

	paused      atomic.Bool
	pauseStart  time.Time
	totalPaused time.Duration

	now func() time.Time
}

func newWallClock(lead, offset time.Duration) *wallClock {
	return newWallClockAt(time.Now, lead, offset)
}

func newWallClockAt(now func() time.Time, lead, offset time.Duration) *wallClock {
	return &wallClock{
		start:  now(),
		origin: ms(offset - lead),
		now:    now,
	}
}

func (c *wallClock) Now() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	at := c.now()
	if c.paused.Load() {
		at = c.pauseStart
	}
	return c.origin + ms(at.Sub(c.start)-c.totalPaused)
}

func (c *wallClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused.CompareAndSwap(false, true) {
		c.pauseStart = c.now()
	}
}

func (c *wallClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused.CompareAndSwap(true, false) {
		c.totalPaused += c.now().Sub(c.pauseStart)
		c.pauseStart = time.Time{}
	}
}

func (c *wallClock) IsPaused() bool { return c.paused.Load() }

// sampleCounter counts the samples the speaker has pulled through it. Only
// touch n with the speaker locked.
type sampleCounter struct {
	s      beep.Streamer
	n      int
	pulled time.Time
}

func (c *sampleCounter) Stream(samples [][2]float64) (int, bool) {
	n, ok := c.s.Stream(samples)
	c.n += n
	c.pulled = time.Now()
	return n, ok
}

func (c *sampleCounter) Err() error { return c.s.Err() }

// audioClock follows the music. Chart time is the position of the samples
// the speaker has pulled, interpolated with wall time between pulls.
type audioClock struct {
	rate    beep.SampleRate
	buffer  time.Duration
	origin  float64
	counter *sampleCounter
	ctrl    *beep.Ctrl
}

func newAudioClock(rate beep.SampleRate, buffer time.Duration, music beep.Streamer, lead, offset time.Duration) *audioClock {
	counter := &sampleCounter{
		s: beep.Seq(beep.Silence(rate.N(lead)), music, beep.Silence(-1)),
	}
	return &audioClock{
		rate:    rate,
		buffer:  buffer,
		origin:  ms(offset - lead),
		counter: counter,
		ctrl:    &beep.Ctrl{Streamer: counter},
	}
}

func (c *audioClock) Streamer() beep.Streamer { return c.ctrl }

func (c *audioClock) Now() float64 {
	speaker.Lock()
	n, pulled, paused := c.counter.n, c.counter.pulled, c.ctrl.Paused
	speaker.Unlock()

	// pulled samples are still queued, so n runs about a buffer ahead
	at := c.rate.D(n) - c.buffer
	if !paused && !pulled.IsZero() {
		since := time.Since(pulled)
		if since > c.buffer {
			since = c.buffer
		}
		at += since
	}
	if at < 0 {
		at = 0
	}
	return c.origin + ms(at)
}

func (c *audioClock) Pause() {
	speaker.Lock()
	c.ctrl.Paused = true
	c.counter.pulled = time.Time{}
	speaker.Unlock()
}

func (c *audioClock) Resume() {
	speaker.Lock()
	c.ctrl.Paused = false
	speaker.Unlock()
}

func (c *audioClock) IsPaused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return c.ctrl.Paused
}
