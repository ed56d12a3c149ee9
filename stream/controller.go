package stream

import (
	"log"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledscrub/timeline"
	"github.com/matt-g-everett/ledscrub/tween"
)

// Status is a snapshot of the controller for reporting.
type Status struct {
	Playhead   float64 `json:"playhead"`
	Bound      float64 `json:"bound"`
	Generation uint64  `json:"generation"`
	InFlight   int     `json:"inFlight"`
	Ephemeral  int     `json:"ephemeral"`
	Autoplay   bool    `json:"autoplay"`
}

// Controller that plays a Show. Scrub requests are dispatched on the next
// frame and supersede whatever is still replaying; without them the
// controller follows the clock when autoplay is on.
type Controller struct {
	show      *Show
	orch      *timeline.Orchestrator
	clock     *Clock
	autoplay  bool
	smoothing float64

	playhead float64
	origin   time.Duration
	pending  bool
	target   float64
	last     *Frame
}

// NewController creates an instance of a Controller.
func NewController(config Config, show *Show, orch *timeline.Orchestrator, clock *Clock) *Controller {
	c := new(Controller)
	c.show = show
	c.orch = orch
	c.clock = clock
	c.autoplay = config.Autoplay
	c.smoothing = config.Smoothing
	c.origin = clock.Now()
	return c
}

// Intro plays a streak down the whole frame in real time before autoplay
// starts the show. A scrub cancels it.
func (c *Controller) Intro(d time.Duration) {
	if d <= 0 {
		return
	}
	all, err := c.show.Frame.Segment("intro", 0, c.show.Frame.Len())
	if err != nil {
		log.Printf("intro: %v", err)
		return
	}
	white, _ := colorful.Hex("#808080")
	intro := Streak(all, white, colorful.Color{}, max(all.Len()/10, 1), d)
	c.orch.Go(tween.Play(intro, c.clock, c.orch.Current()))
	if c.clock.Running() {
		c.origin += d
	}
}

// Scrub requests a replay at t seconds. Only the latest request before a
// frame is dispatched.
func (c *Controller) Scrub(t float64) {
	c.pending = true
	c.target = t
}

// CalculateFrame advances the timeline by one frame and returns the frame to
// show.
func (c *Controller) CalculateFrame(runtimeMs int64) *Frame {
	now := time.Duration(runtimeMs) * time.Millisecond

	switch {
	case c.pending:
		c.pending = false
		c.playTo(c.target)
		c.origin = now - seconds(c.target)
	case c.autoplay && c.finished():
		t := (now - c.origin).Seconds()
		if bound := c.orch.Bound(); bound > 0 && t > bound {
			// Loop the show.
			c.origin = now
			t = 0
		}
		c.playTo(t)
	}

	c.orch.Tick()

	f := c.show.Frame
	if c.smoothing > 0 {
		if c.last != nil {
			f = c.last.InterpolateFrame(f, 1-c.smoothing)
		} else {
			f = f.Clone()
		}
		c.last = f
	}
	return f
}

// Status reports the controller state.
func (c *Controller) Status() Status {
	return Status{
		Playhead:   c.playhead,
		Bound:      c.orch.Bound(),
		Generation: c.orch.Generation(),
		InFlight:   c.orch.InFlight(),
		Ephemeral:  c.orch.Ephemerals().Len(),
		Autoplay:   c.autoplay,
	}
}

// Close clears every player, leaving the show at rest.
func (c *Controller) Close() {
	c.orch.Clear()
	c.orch.Ephemerals().DisposeAll()
}

func (c *Controller) playTo(t float64) {
	c.playhead = t
	c.orch.PlayTo(c.show.Clips, t)
}

func (c *Controller) finished() bool {
	select {
	case <-c.orch.AllFinished():
		return true
	default:
		return false
	}
}
