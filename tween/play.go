package tween

import (
	"errors"
	"time"
)

// A Clock reports the host's frame time.
type Clock interface {
	// Now is the elapsed time at the current frame.
	Now() time.Duration
	// Running is false when the host is not actually playing, for example
	// while previewing in an editor.
	Running() bool
}

// A Canceler is polled at every frame boundary.
type Canceler interface {
	Canceled() bool
}

// A Task is cooperative work resumed once per frame. Step returns true when
// the task has finished. Stepping a finished task is a no-op.
type Task interface {
	Step() bool
	Done() bool
}

// Playback drives a Tween from 0 to 1 across real frames.
type Playback struct {
	tween  Tween
	clock  Clock
	cancel Canceler
	begin  time.Duration
	done   bool
	err    error
}

// Play starts playing tw and evaluates it at progress 0 straight away. When
// the clock is not running the tween jumps to progress 1 and the playback is
// finished on return. Step must be called once per frame afterwards.
func Play(tw Tween, clock Clock, cancel Canceler) *Playback {
	p := &Playback{
		tween:  tw,
		clock:  clock,
		cancel: cancel,
		begin:  clock.Now(),
	}

	if !clock.Running() || tw.Total() <= 0 {
		p.finish(tw.Evaluate(1))
		return p
	}
	if err := tw.Evaluate(0); err != nil {
		p.finish(err)
	}
	return p
}

// Step resumes the playback for one frame. A canceled playback stops
// without the final evaluation.
func (p *Playback) Step() bool {
	if p.done {
		return true
	}
	if p.cancel != nil && p.cancel.Canceled() {
		p.done = true
		return true
	}

	ratio := float64(p.clock.Now()-p.begin) / float64(p.tween.Total())
	if ratio >= 1 {
		// Always land on 1 regardless of frame timing.
		p.finish(p.tween.Evaluate(1))
		return true
	}
	if err := p.tween.Evaluate(ratio); err != nil {
		p.finish(err)
		return true
	}
	return false
}

// Done reports whether the playback has stopped.
func (p *Playback) Done() bool { return p.done }

// Err returns the mutation error that stopped the playback, if any. A
// destroyed target is not an error.
func (p *Playback) Err() error { return p.err }

func (p *Playback) finish(err error) {
	p.done = true
	if err != nil && !errors.Is(err, ErrTargetDestroyed) {
		p.err = err
	}
}
