package stream

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledscrub/tween"
)

// A Segment is a named run of pixels on a Frame that tweens paint into.
// Once destroyed, every write fails with tween.ErrTargetDestroyed.
type Segment struct {
	name      string
	frame     *Frame
	from      int
	to        int
	under     []colorful.Color
	destroyed bool
}

// Segment binds pixels [from, to) of the frame.
func (f *Frame) Segment(name string, from, to int) (*Segment, error) {
	if from < 0 || to > len(f.pixels) || from >= to {
		return nil, fmt.Errorf("segment %q: range [%d,%d) outside frame of %d pixels", name, from, to, len(f.pixels))
	}
	return &Segment{name: name, frame: f, from: from, to: to}, nil
}

// Name returns the segment name.
func (s *Segment) Name() string { return s.name }

// Len is the number of pixels in the segment.
func (s *Segment) Len() int { return s.to - s.from }

// Offset is the index of the segment's first pixel on the frame.
func (s *Segment) Offset() int { return s.from }

// Destroyed reports whether the segment has been destroyed or disposed.
func (s *Segment) Destroyed() bool { return s.destroyed }

// Get returns pixel i of the segment.
func (s *Segment) Get(i int) colorful.Color {
	return s.frame.pixels[s.from+i]
}

// Set paints pixel i of the segment.
func (s *Segment) Set(i int, c colorful.Color) error {
	if s.destroyed {
		return tween.ErrTargetDestroyed
	}
	if i < 0 || i >= s.Len() {
		return fmt.Errorf("segment %q: pixel %d out of range", s.name, i)
	}
	s.frame.pixels[s.from+i] = c
	return nil
}

// Fill paints every pixel of the segment.
func (s *Segment) Fill(c colorful.Color) error {
	if s.destroyed {
		return tween.ErrTargetDestroyed
	}
	for i := s.from; i < s.to; i++ {
		s.frame.pixels[i] = c
	}
	return nil
}

// Destroy detaches the segment. The pixels keep their last colour.
func (s *Segment) Destroy() {
	s.destroyed = true
}

// Spawn creates a helper segment over n pixels starting at pixel i of s.
// Disposing the helper puts back the colours it covered when spawned.
func (s *Segment) Spawn(i, n int) (*Segment, error) {
	if s.destroyed {
		return nil, tween.ErrTargetDestroyed
	}
	if i < 0 || n <= 0 || i+n > s.Len() {
		return nil, fmt.Errorf("segment %q: cannot spawn [%d,%d)", s.name, i, i+n)
	}
	h := &Segment{
		name:  fmt.Sprintf("%s/%d", s.name, i),
		frame: s.frame,
		from:  s.from + i,
		to:    s.from + i + n,
	}
	h.under = make([]colorful.Color, n)
	copy(h.under, s.frame.pixels[h.from:h.to])
	return h, nil
}

// Dispose restores the pixels a spawned helper covered, or blanks a plain
// segment, and destroys it.
func (s *Segment) Dispose() {
	if s.destroyed {
		return
	}
	if s.under != nil {
		copy(s.frame.pixels[s.from:s.to], s.under)
	} else {
		s.Fill(colorful.Color{})
	}
	s.Destroy()
}
