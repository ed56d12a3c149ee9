package tween

import (
	"errors"
	"slices"
	"time"

	"github.com/matt-g-everett/ledscrub/ease"
)

// Parallel runs children side by side. The result lasts as long as the
// longest child; shorter children reach progress 1 early and hold it.
func Parallel(children ...Tween) Tween {
	var full time.Duration
	for _, c := range children {
		full = max(full, c.Total())
	}
	if full == 0 {
		logger.Warn("parallel tween has no duration", "children", len(children))
		return Empty()
	}

	kids := slices.Clone(children)
	m := func(p float64) error {
		var errs []error
		for _, c := range kids {
			local := 1.0
			if total := c.Total(); total > 0 {
				local = ease.Clamp01(p * float64(full) / float64(total))
			}
			if err := c.Evaluate(local); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	rewind := func() error {
		var errs []error
		for _, c := range kids {
			if err := c.Rewind(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	return Tween{mutate: m, rewind: rewind, duration: full, easing: ease.None, computed: true}
}

// Stagger is Parallel with child i delayed by an extra i*offset.
func Stagger(offset time.Duration, children ...Tween) Tween {
	shifted := make([]Tween, len(children))
	for i, c := range children {
		shifted[i] = c.WithDelay(c.Delay() + offset*time.Duration(i))
	}
	return Parallel(shifted...)
}

// Series runs children one after another. The result lasts as long as all
// children together.
//
// The returned tween keeps a cursor on the active child, shared by every
// copy derived from it. Moving forward past a boundary evaluates the
// outgoing child at 1 and then the incoming child at 0; moving backward
// mirrors that, rewinding the outgoing child and evaluating the incoming one
// at 1.
func Series(children ...Tween) Tween {
	var full time.Duration
	for _, c := range children {
		full += c.Total()
	}
	if full == 0 {
		logger.Warn("series tween has no duration", "children", len(children))
		return Empty()
	}

	cur := &cursor{
		kids: slices.Clone(children),
		ends: make([]float64, len(children)),
	}
	var acc time.Duration
	for i, c := range children {
		acc += c.Total()
		cur.ends[i] = float64(acc) / float64(full)
	}
	cur.ends[len(children)-1] = 1

	return Tween{mutate: cur.evaluate, rewind: cur.rewind, duration: full, easing: ease.None, computed: true}
}

type cursor struct {
	kids  []Tween
	ends  []float64
	index int
}

func (c *cursor) begin(i int) float64 {
	if i == 0 {
		return 0
	}
	return c.ends[i-1]
}

func (c *cursor) evaluate(t float64) error {
	var errs []error
	forced := -1.0

	for c.index < len(c.kids)-1 && t >= c.ends[c.index] {
		errs = append(errs, c.kids[c.index].Evaluate(1), c.kids[c.index+1].Evaluate(0))
		c.index++
		forced = 0
	}
	for c.index > 0 && t < c.begin(c.index) {
		errs = append(errs, c.kids[c.index].Rewind(), c.kids[c.index-1].Evaluate(1))
		c.index--
		forced = 1
	}

	begin, end := c.begin(c.index), c.ends[c.index]
	local := 1.0
	if end > begin {
		local = ease.Clamp01((t - begin) / (end - begin))
	}
	// The boundary pass already delivered this progress.
	if local != forced {
		errs = append(errs, c.kids[c.index].Evaluate(local))
	}

	return errors.Join(errs...)
}

// rewind undoes the children from the active one back to the first and
// parks the cursor at the start.
func (c *cursor) rewind() error {
	var errs []error
	for i := c.index; i >= 0; i-- {
		errs = append(errs, c.kids[i].Rewind())
	}
	c.index = 0
	return errors.Join(errs...)
}
