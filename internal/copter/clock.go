package copter

import "time"

// Clock converts host timestamps into per-tick deltas. The first timestamp
// after construction or Reset yields a zero delta, and no delta ever exceeds
// max, so a stalled host (suspended terminal, GC pause) cannot make the
// physics jump.
type Clock struct {
	last    time.Time
	started bool
	max     time.Duration
}

// NewClock creates a clock that clamps deltas to max.
func NewClock(max time.Duration) *Clock {
	return &Clock{max: max}
}

// Delta records now and returns the clamped time since the previous call.
func (c *Clock) Delta(now time.Time) time.Duration {
	if !c.started {
		c.last = now
		c.started = true
		return 0
	}
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		return 0
	}
	if c.max > 0 && d > c.max {
		return c.max
	}
	return d
}

// Reset forgets the previous timestamp. Call it whenever ticking stops so
// the pause is not billed to the next tick.
func (c *Clock) Reset() {
	c.started = false
}

// fromSeconds converts float seconds to a duration.
func fromSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
