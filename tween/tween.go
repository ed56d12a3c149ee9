// Package tween describes timed mutations as immutable values and composes
// them in parallel or in series.
package tween

import (
	"errors"
	"time"

	"github.com/matt-g-everett/ledscrub/ease"
)

// ErrTargetDestroyed is returned by a Mutator whose target no longer exists.
// Evaluation treats it as the end of the animation rather than a failure.
var ErrTargetDestroyed = errors.New("tween: target destroyed")

// A Mutator applies eased progress to its target.
type Mutator func(progress float64) error

// A Tween is a mutation spread over a duration, optionally offset by a delay
// and shaped by an easing curve. Tweens are values: the With methods return
// modified copies and never touch the receiver.
type Tween struct {
	mutate   Mutator
	duration time.Duration
	delay    time.Duration
	easing   ease.Func
	computed bool
	rewind   func() error
}

// New creates a Tween with no delay and no easing.
func New(m Mutator, d time.Duration) Tween {
	return Tween{mutate: m, duration: d, easing: ease.None}
}

// Empty returns an inert Tween with zero duration.
func Empty() Tween {
	return New(nil, 0)
}

// Duration is the length of the animated part.
func (tw Tween) Duration() time.Duration { return tw.duration }

// Delay is the idle time before the animated part starts.
func (tw Tween) Delay() time.Duration { return tw.delay }

// Easing returns the easing curve.
func (tw Tween) Easing() ease.Func { return tw.easing }

// Computed reports whether the duration was derived by a combinator.
func (tw Tween) Computed() bool { return tw.computed }

// Total is Duration plus Delay.
func (tw Tween) Total() time.Duration {
	return tw.duration + tw.delay
}

// Start is the normalized progress at which the delay window ends.
func (tw Tween) Start() float64 {
	total := tw.Total()
	if total == 0 {
		return 0
	}
	return float64(tw.delay) / float64(total)
}

// WithDuration returns a copy with a new duration. Overriding the duration
// of a combinator result is allowed but logged, since it rescales every
// child.
func (tw Tween) WithDuration(d time.Duration) Tween {
	if tw.computed {
		logger.Warn("overriding computed tween duration",
			"computed", tw.duration, "override", d)
		tw.computed = false
	}
	tw.duration = d
	return tw
}

// WithDelay returns a copy with a new delay.
func (tw Tween) WithDelay(d time.Duration) Tween {
	tw.delay = d
	return tw
}

// WithEasing returns a copy with a new easing curve.
func (tw Tween) WithEasing(f ease.Func) Tween {
	tw.easing = f
	return tw
}

// Evaluate applies the tween at normalized progress t over its total
// duration. Progress before the end of the delay window does nothing.
// A tween with zero total duration always evaluates at progress 1.
func (tw Tween) Evaluate(t float64) error {
	if tw.Total() == 0 {
		return tw.apply(1)
	}

	start := tw.Start()
	if tw.delay != 0 && t < start {
		return nil
	}

	p := 1.0
	if start < 1 {
		p = ease.Clamp01((t - start) / (1 - start))
	}
	return tw.apply(ease.Apply(tw.easing, p))
}

// TryEvaluate is Evaluate with a destroyed target reported as ok == false
// instead of an error.
func (tw Tween) TryEvaluate(t float64) (ok bool, err error) {
	err = tw.Evaluate(t)
	if errors.Is(err, ErrTargetDestroyed) {
		return false, nil
	}
	return err == nil, err
}

// Rewind puts the target back to progress 0, ignoring the delay window.
// Evaluate(0) is a no-op for a delayed tween, so undoing an applied tween
// has to go through here. Combinators rewind every child.
func (tw Tween) Rewind() error {
	if tw.rewind != nil {
		return tw.rewind()
	}
	return tw.apply(ease.Apply(tw.easing, 0))
}

// TryRewind is Rewind with a destroyed target reported as ok == false.
func (tw Tween) TryRewind() (ok bool, err error) {
	err = tw.Rewind()
	if errors.Is(err, ErrTargetDestroyed) {
		return false, nil
	}
	return err == nil, err
}

func (tw Tween) apply(p float64) error {
	if tw.mutate == nil {
		return nil
	}
	return tw.mutate(p)
}
