package stream

import (
	"math"
	"time"

	"github.com/matt-g-everett/ledscrub/tween"
)

// GradientTrail cycles a gradient along the segment once per trailLength
// pixels, shifting it by one full trail over the tween.
func GradientTrail(seg *Segment, gradient GradientTable, trailLength int, d time.Duration) tween.Tween {
	const (
		saturation = 1.0
		luminance  = 0.05
	)
	if trailLength <= 0 {
		trailLength = seg.Len()
	}

	return tween.New(func(p float64) error {
		current := p * float64(trailLength)
		for i := 0; i < seg.Len(); i++ {
			t := math.Mod(float64(i+trailLength)-current, float64(trailLength)) / float64(trailLength)
			if err := seg.Set(i, gradient.GetColor(t, saturation, luminance)); err != nil {
				return err
			}
		}
		return nil
	}, d)
}
