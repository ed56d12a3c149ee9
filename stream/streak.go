package stream

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledscrub/ease"
	"github.com/matt-g-everett/ledscrub/tween"
)

// Streak runs a band of colour along the segment over a background. The
// band fades in over the first half of its run and out over the second.
func Streak(seg *Segment, colour, back colorful.Color, length int, d time.Duration) tween.Tween {
	return tween.New(func(p float64) error {
		if err := seg.Fill(back); err != nil {
			return err
		}

		head := p*float64(seg.Len()+length) - float64(length)
		c := back.BlendHcl(colour, overallGain(p)).Clamped()
		start := max(int(math.Ceil(head)), 0)
		end := min(int(math.Floor(head+float64(length))), seg.Len()-1)
		for i := start; i <= end; i++ {
			if err := seg.Set(i, c); err != nil {
				return err
			}
		}
		return nil
	}, d)
}

func overallGain(p float64) float64 {
	d := 2 * p
	if d > 1 {
		d = 1 - (d - 1)
	}
	return ease.InOutQuad(d)
}
