// Package ease provides the easing curves used to shape tween progress.
//
// Every curve maps normalized progress in [0,1] onto normalized progress.
// Curves are plain functions with no state, so a single value can be shared
// between any number of tweens.
package ease

import (
	"fmt"
	"strings"

	fe "github.com/fogleman/ease"
	gease "github.com/tanema/gween/ease"
)

// Func is an easing curve.
type Func func(t float64) float64

// Apply evaluates f at t. A nil Func behaves like None.
func Apply(f Func, t float64) float64 {
	if f == nil {
		return t
	}
	return f(t)
}

// Clamp01 limits t to [0,1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// clamped wraps a curve so that out-of-range input is pinned to the ends.
func clamped(f func(float64) float64) Func {
	return func(t float64) float64 {
		return f(Clamp01(t))
	}
}

// None is the identity over the whole domain. It does not clamp.
func None(t float64) float64 {
	return t
}

var (
	InOutQuad  = clamped(fe.InOutQuad)
	InOutCubic = clamped(fe.InOutCubic)
	InCubic    = clamped(fe.InCubic)
	OutCubic   = clamped(fe.OutCubic)

	SmoothStep   = clamped(smoothStep)
	SmootherStep = clamped(smootherStep)

	// DoubleSmoothStep averages SmoothStep with linear progress, a gentler
	// in-out than SmoothStep alone.
	DoubleSmoothStep = clamped(func(t float64) float64 {
		return (smoothStep(t) + t) / 2
	})

	// SmoothIn is the first half of SmoothStep stretched over [0,1].
	SmoothIn = clamped(func(t float64) float64 {
		return 2 * smoothStep(t/2)
	})

	// SmoothOut is the second half of SmoothStep stretched over [0,1].
	SmoothOut = clamped(func(t float64) float64 {
		return 2*smoothStep(0.5+t/2) - 1
	})
)

func smoothStep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func smootherStep(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// FromTweenFunc adapts a gween easing function, which works on
// (time, begin, change, duration), to a normalized curve.
func FromTweenFunc(fn gease.TweenFunc) Func {
	return clamped(func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	})
}

var named = map[string]Func{
	"none":             None,
	"linear":           None,
	"inoutquad":        InOutQuad,
	"inoutcubic":       InOutCubic,
	"incubic":          InCubic,
	"outcubic":         OutCubic,
	"smooth":           SmoothStep,
	"smoothstep":       SmoothStep,
	"smoother":         SmootherStep,
	"smootherstep":     SmootherStep,
	"doublesmoothstep": DoubleSmoothStep,
	"smoothin":         SmoothIn,
	"smoothout":        SmoothOut,
	"insine":           clamped(fe.InSine),
	"outsine":          clamped(fe.OutSine),
	"inoutsine":        clamped(fe.InOutSine),
	"inexpo":           clamped(fe.InExpo),
	"outexpo":          clamped(fe.OutExpo),
	"outback":          clamped(fe.OutBack),
	"outbounce":        clamped(fe.OutBounce),
	"outelastic":       FromTweenFunc(gease.OutElastic),
	"inoutelastic":     FromTweenFunc(gease.InOutElastic),
}

// ByName looks up a curve by its case-insensitive name, as written in
// timeline files. An empty name resolves to None.
func ByName(name string) (Func, error) {
	if name == "" {
		return None, nil
	}
	f, ok := named[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return f, nil
}
