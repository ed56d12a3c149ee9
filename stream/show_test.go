package stream

import (
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledscrub/timeline"
)

const testShow = `
seed: 7
segments:
  - name: low
    from: 0
    to: 10
  - name: high
    from: 10
    to: 20
clips:
  - segment: low
    start: 0
    end: 2
    effect: fade
    from: "#000000"
    to: "#ffffff"
    easing: inOutCubic
  - segment: low
    start: 2
    end: 5
    effect: series
    children:
      - effect: streak
        colour: "#808080"
        length: 3
        duration: 1
      - effect: trail
        duration: 2
  - segment: high
    start: 1
    end: 3
    effect: stagger
    offset: 0.5
    delay: 0.25
    children:
      - effect: twinkle
        colour: "#404040"
        count: 2
        duration: 1
      - effect: fade
        to: "#ff0000"
        duration: 1
`

func parseTestShow(t *testing.T) (*Show, *timeline.Registry, *timeline.Ephemerals) {
	t.Helper()
	reg := timeline.NewRegistry()
	eph := new(timeline.Ephemerals)
	s, err := ParseShow([]byte(testShow), NewFrame(20), reg, eph)
	if err != nil {
		t.Fatal(err)
	}
	return s, reg, eph
}

func TestParseShow(t *testing.T) {
	s, reg, _ := parseTestShow(t)

	if len(s.Segments) != 2 || reg.Len() != 2 {
		t.Fatalf("segments = %d, registered = %d", len(s.Segments), reg.Len())
	}
	if len(s.Clips) != 3 {
		t.Fatalf("clips = %d, want 3", len(s.Clips))
	}

	fade := s.Clips[0]
	if fade.Sequence != s.Sequences["low"] {
		t.Errorf("fade bound to %v", fade.Sequence)
	}
	if fade.Tween.Duration() != 2*time.Second {
		t.Errorf("fade duration = %v, want 2s from the clip window", fade.Tween.Duration())
	}

	series := s.Clips[1].Tween
	if !series.Computed() || series.Total() != 3*time.Second {
		t.Errorf("series computed = %v, total = %v", series.Computed(), series.Total())
	}

	stagger := s.Clips[2].Tween
	if stagger.Duration() != 1500*time.Millisecond || stagger.Delay() != 250*time.Millisecond {
		t.Errorf("stagger duration = %v, delay = %v", stagger.Duration(), stagger.Delay())
	}
}

func TestParseShowErrors(t *testing.T) {
	cases := map[string]string{
		"unknown segment": `
segments: [{name: a, from: 0, to: 5}]
clips: [{segment: b, start: 0, end: 1, effect: fade}]`,
		"unknown effect": `
segments: [{name: a, from: 0, to: 5}]
clips: [{segment: a, start: 0, end: 1, effect: explode}]`,
		"bad easing": `
segments: [{name: a, from: 0, to: 5}]
clips: [{segment: a, start: 0, end: 1, effect: fade, easing: wobble}]`,
		"bad colour": `
segments: [{name: a, from: 0, to: 5}]
clips: [{segment: a, start: 0, end: 1, effect: fade, to: "red"}]`,
		"inverted clip": `
segments: [{name: a, from: 0, to: 5}]
clips: [{segment: a, start: 2, end: 1, effect: fade}]`,
		"duplicate segment": `
segments: [{name: a, from: 0, to: 5}, {name: a, from: 5, to: 8}]`,
		"segment outside frame": `
segments: [{name: a, from: 0, to: 50}]`,
	}

	for name, doc := range cases {
		_, err := ParseShow([]byte(strings.TrimSpace(doc)), NewFrame(20), timeline.NewRegistry(), nil)
		if err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestShowUnregister(t *testing.T) {
	s, reg, eph := parseTestShow(t)
	o := timeline.NewOrchestrator(reg, eph)
	o.PlayTo(s.Clips, 1)

	s.Unregister(o)
	if reg.Len() != 0 || len(s.Sequences) != 0 {
		t.Errorf("registered = %d, sequences = %d", reg.Len(), len(s.Sequences))
	}
}

func TestShowScrubBackClearsDelayedFade(t *testing.T) {
	const show = `
segments: [{name: a, from: 0, to: 4}]
clips:
  - {start: 2, end: 4, segment: a, effect: fade, from: "#000000", to: "#ffffff", duration: 1, delay: 1}
`
	f := NewFrame(4)
	reg := timeline.NewRegistry()
	eph := new(timeline.Ephemerals)
	s, err := ParseShow([]byte(show), f, reg, eph)
	if err != nil {
		t.Fatal(err)
	}
	o := timeline.NewOrchestrator(reg, eph)

	o.PlayTo(s.Clips, 4)
	white := colorful.Color{R: 1, G: 1, B: 1}
	if !near(f.Pixel(0), white) {
		t.Fatalf("at 4 pixel 0 = %v, want white", f.Pixel(0).Hex())
	}

	o.PlayTo(s.Clips, 0)
	if !near(f.Pixel(0), colorful.Color{}) {
		t.Errorf("after scrubbing back pixel 0 = %v, want black", f.Pixel(0).Hex())
	}
}

func TestShowFadeTo(t *testing.T) {
	const show = `
segments: [{name: a, from: 0, to: 4}]
clips:
  - {start: 0, end: 1, segment: a, effect: fadeTo, to: "#00ff00", duration: 1}
  - {start: 1, end: 2, segment: a, effect: fadeTo, to: "#000000", duration: 1}
`
	f := NewFrame(4)
	s, err := ParseShow([]byte(show), f, timeline.NewRegistry(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Clips[0].Tween.Total(); got != time.Second {
		t.Errorf("first clip Total = %v, want 1s", got)
	}
	// The frame starts black, so the fade back to black has nothing to do.
	if got := s.Clips[1].Tween.Total(); got != 0 {
		t.Errorf("second clip Total = %v, want 0", got)
	}
}
