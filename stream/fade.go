package stream

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledscrub/tween"
)

// Fade blends the whole segment from one colour to another.
func Fade(seg *Segment, from, to colorful.Color, d time.Duration) tween.Tween {
	return tween.New(func(p float64) error {
		return seg.Fill(from.BlendHcl(to, p).Clamped())
	}, d)
}

// FadeTo blends every pixel of the segment from the colour it holds now to
// to. A segment that already shows to gets an empty tween.
func FadeTo(seg *Segment, to colorful.Color, d time.Duration) tween.Tween {
	initial := make([]colorful.Color, seg.Len())
	same := true
	for i := range initial {
		initial[i] = seg.Get(i)
		same = same && initial[i] == to
	}
	if same {
		return tween.Empty()
	}

	return tween.New(func(p float64) error {
		for i, c := range initial {
			if err := seg.Set(i, c.BlendHcl(to, p).Clamped()); err != nil {
				return err
			}
		}
		return nil
	}, d)
}
