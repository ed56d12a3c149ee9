package stream

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledscrub/tween"
)

func TestSegmentBounds(t *testing.T) {
	f := NewFrame(10)
	if _, err := f.Segment("bad", 5, 11); err == nil {
		t.Error("expected error for segment past the frame")
	}
	if _, err := f.Segment("empty", 3, 3); err == nil {
		t.Error("expected error for empty segment")
	}

	s, err := f.Segment("ok", 2, 5)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 || s.Offset() != 2 {
		t.Errorf("Len = %d, Offset = %d", s.Len(), s.Offset())
	}
}

func TestSegmentFillTouchesOnlyItsPixels(t *testing.T) {
	f := NewFrame(6)
	s, _ := f.Segment("mid", 2, 4)
	red := colorful.Color{R: 1}

	s.Fill(red)
	for i := 0; i < f.Len(); i++ {
		want := colorful.Color{}
		if i >= 2 && i < 4 {
			want = red
		}
		if f.Pixel(i) != want {
			t.Errorf("pixel %d = %v, want %v", i, f.Pixel(i), want)
		}
	}
}

func TestDestroyedSegmentRejectsWrites(t *testing.T) {
	f := NewFrame(4)
	s, _ := f.Segment("s", 0, 4)
	s.Destroy()

	if err := s.Fill(colorful.Color{R: 1}); !errors.Is(err, tween.ErrTargetDestroyed) {
		t.Errorf("Fill err = %v", err)
	}
	if err := s.Set(0, colorful.Color{R: 1}); !errors.Is(err, tween.ErrTargetDestroyed) {
		t.Errorf("Set err = %v", err)
	}
}

func TestSpawnedHelperRestoresOnDispose(t *testing.T) {
	f := NewFrame(4)
	s, _ := f.Segment("s", 0, 4)
	blue := colorful.Color{B: 1}
	s.Fill(blue)

	h, err := s.Spawn(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	h.Fill(colorful.Color{R: 1})
	if f.Pixel(1) == blue {
		t.Fatal("helper did not paint")
	}

	h.Dispose()
	if f.Pixel(1) != blue || f.Pixel(2) != blue {
		t.Errorf("pixels not restored: %v %v", f.Pixel(1), f.Pixel(2))
	}
	if !h.Destroyed() {
		t.Error("helper not destroyed")
	}

	if _, err := s.Spawn(3, 2); err == nil {
		t.Error("expected error spawning past the segment")
	}
}

func TestMarshalBinary(t *testing.T) {
	f := NewFrame(2)
	s, _ := f.Segment("s", 1, 2)
	s.Fill(colorful.Color{R: 1, G: 0.5, B: 2})

	b, err := f.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{2, 0, 0, 0, 0, 255, 128, 255}
	if string(b) != string(want) {
		t.Errorf("MarshalBinary = %v, want %v", b, want)
	}
}
