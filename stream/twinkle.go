package stream

import (
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledscrub/timeline"
	"github.com/matt-g-everett/ledscrub/tween"
)

// Twinkle lights up to count random pixels of the segment. Each lit pixel is
// a spawned helper marked ephemeral, so whatever it covered comes back once
// the playhead has left every clip. Helpers are spawned again the next time
// the tween runs after a disposal.
func Twinkle(seg *Segment, count int, colour colorful.Color, d time.Duration,
	eph *timeline.Ephemerals, rnd *rand.Rand) tween.Tween {

	var particles []*Segment
	return tween.New(func(p float64) error {
		if seg.Destroyed() {
			return tween.ErrTargetDestroyed
		}

		if len(particles) == 0 || particles[0].Destroyed() {
			particles = particles[:0]
			for _, i := range rnd.Perm(seg.Len())[:min(count, seg.Len())] {
				h, err := seg.Spawn(i, 1)
				if err != nil {
					return err
				}
				eph.Mark(h)
				particles = append(particles, h)
			}
		}

		for _, h := range particles {
			if err := h.Fill(h.under[0].BlendHcl(colour, p).Clamped()); err != nil {
				return err
			}
		}
		return nil
	}, d)
}
