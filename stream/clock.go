package stream

import "time"

// Clock is the frame clock handed to tweens played in real time.
type Clock struct {
	start   time.Time
	now     time.Time
	running bool
}

// NewClock starts a clock. A clock that is not running makes tweens jump
// straight to their end, which is what a preview wants.
func NewClock(running bool) *Clock {
	c := new(Clock)
	c.start = time.Now()
	c.now = c.start
	c.running = running
	return c
}

// Advance moves the clock to the frame time t.
func (c *Clock) Advance(t time.Time) {
	c.now = t
}

// Now is the time since the clock started, as of the last Advance.
func (c *Clock) Now() time.Duration {
	return c.now.Sub(c.start)
}

// Running reports whether the host is really playing.
func (c *Clock) Running() bool {
	return c.running
}
