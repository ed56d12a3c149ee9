package stream

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledscrub/ease"
	"github.com/matt-g-everett/ledscrub/timeline"
	"github.com/matt-g-everett/ledscrub/tween"
	"gopkg.in/yaml.v2"
)

// EffectSpec describes one tween in a show file. Composite effects
// (parallel, series, stagger) take their parts from Children.
type EffectSpec struct {
	Effect   string        `yaml:"effect"`
	Segment  string        `yaml:"segment"`
	From     string        `yaml:"from"`
	To       string        `yaml:"to"`
	Colour   string        `yaml:"colour"`
	Back     string        `yaml:"back"`
	Gradient GradientTable `yaml:"gradient"`
	Length   int           `yaml:"length"`
	Count    int           `yaml:"count"`
	Easing   string        `yaml:"easing"`
	Duration float64       `yaml:"duration"` // Seconds
	Delay    float64       `yaml:"delay"`    // Seconds
	Offset   float64       `yaml:"offset"`   // Seconds, stagger only
	Children []EffectSpec  `yaml:"children"`
}

// ClipSpec places an effect on the timeline, in seconds.
type ClipSpec struct {
	EffectSpec `yaml:",inline"`
	Start      float64 `yaml:"start"`
	End        float64 `yaml:"end"`
}

// SegmentSpec names a pixel range.
type SegmentSpec struct {
	Name string `yaml:"name"`
	From int    `yaml:"from"`
	To   int    `yaml:"to"`
}

// ShowSpec is the top level of a show file.
type ShowSpec struct {
	Seed     int64         `yaml:"seed"`
	Segments []SegmentSpec `yaml:"segments"`
	Clips    []ClipSpec    `yaml:"clips"`
}

// A Show is a loaded timeline: the segments it paints, one sequence per
// segment and the clips placed on them.
type Show struct {
	Frame     *Frame
	Segments  map[string]*Segment
	Sequences map[string]*timeline.Sequence
	Clips     []timeline.Clip

	ephemerals *timeline.Ephemerals
	rnd        *rand.Rand
}

// LoadShow reads a show file and binds it to frame.
func LoadShow(path string, frame *Frame, reg *timeline.Registry, eph *timeline.Ephemerals) (*Show, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseShow(data, frame, reg, eph)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseShow builds a Show from YAML. Helpers spawned by the show's tweens are
// marked on eph; a nil eph gets a private registry.
func ParseShow(data []byte, frame *Frame, reg *timeline.Registry, eph *timeline.Ephemerals) (*Show, error) {
	if eph == nil {
		eph = new(timeline.Ephemerals)
	}

	var spec ShowSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	s := &Show{
		Frame:      frame,
		Segments:   make(map[string]*Segment),
		Sequences:  make(map[string]*timeline.Sequence),
		ephemerals: eph,
		rnd:        rand.New(rand.NewSource(spec.Seed)),
	}

	for _, ss := range spec.Segments {
		if _, dup := s.Segments[ss.Name]; dup {
			return nil, fmt.Errorf("segment %q defined twice", ss.Name)
		}
		seg, err := frame.Segment(ss.Name, ss.From, ss.To)
		if err != nil {
			return nil, err
		}
		s.Segments[ss.Name] = seg
		s.Sequences[ss.Name] = reg.Register(ss.Name)
	}

	for i, cs := range spec.Clips {
		seq, ok := s.Sequences[cs.Segment]
		if !ok {
			return nil, fmt.Errorf("clip %d: unknown segment %q", i, cs.Segment)
		}
		if cs.Duration == 0 && len(cs.Children) == 0 {
			cs.Duration = cs.End - cs.Start
		}
		tw, err := s.build(cs.EffectSpec, cs.Segment)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", i, err)
		}
		c, err := timeline.NewClip(seq, tw, cs.Start, cs.End)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", i, err)
		}
		s.Clips = append(s.Clips, c)
	}

	return s, nil
}

// Unregister forgets every sequence of the show.
func (s *Show) Unregister(o *timeline.Orchestrator) {
	for name, seq := range s.Sequences {
		o.Forget(seq)
		delete(s.Sequences, name)
	}
}

func (s *Show) build(e EffectSpec, segment string) (tween.Tween, error) {
	if e.Segment != "" {
		segment = e.Segment
	}
	seg, ok := s.Segments[segment]
	if !ok {
		return tween.Tween{}, fmt.Errorf("unknown segment %q", segment)
	}

	easing, err := ease.ByName(e.Easing)
	if err != nil {
		return tween.Tween{}, err
	}
	d := seconds(e.Duration)

	var tw tween.Tween
	switch e.Effect {
	case "fade":
		from, to, err := colours(e.From, e.To)
		if err != nil {
			return tween.Tween{}, err
		}
		tw = Fade(seg, from, to, d)
	case "fadeTo":
		to, err := hex(e.To)
		if err != nil {
			return tween.Tween{}, err
		}
		tw = FadeTo(seg, to, d)
	case "streak":
		colour, back, err := colours(e.Colour, e.Back)
		if err != nil {
			return tween.Tween{}, err
		}
		tw = Streak(seg, colour, back, max(e.Length, 1), d)
	case "trail":
		gradient := e.Gradient
		if len(gradient) < 2 {
			gradient = Rainbow
		}
		tw = GradientTrail(seg, gradient, e.Length, d)
	case "twinkle":
		colour, _, err := colours(e.Colour, "")
		if err != nil {
			return tween.Tween{}, err
		}
		tw = Twinkle(seg, max(e.Count, 1), colour, d, s.ephemerals, s.rnd)
	case "parallel", "series", "stagger":
		children := make([]tween.Tween, 0, len(e.Children))
		for i, ce := range e.Children {
			c, err := s.build(ce, segment)
			if err != nil {
				return tween.Tween{}, fmt.Errorf("%s child %d: %w", e.Effect, i, err)
			}
			children = append(children, c)
		}
		switch e.Effect {
		case "parallel":
			tw = tween.Parallel(children...)
		case "series":
			tw = tween.Series(children...)
		default:
			tw = tween.Stagger(seconds(e.Offset), children...)
		}
		if e.Duration > 0 {
			tw = tw.WithDuration(d)
		}
	default:
		return tween.Tween{}, fmt.Errorf("unknown effect %q", e.Effect)
	}

	return tw.WithEasing(easing).WithDelay(tw.Delay() + seconds(e.Delay)), nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// colours parses two hex colours; an empty string is black.
func colours(a, b string) (colorful.Color, colorful.Color, error) {
	ca, err := hex(a)
	if err != nil {
		return ca, ca, err
	}
	cb, err := hex(b)
	return ca, cb, err
}

func hex(s string) (colorful.Color, error) {
	if s == "" {
		return colorful.Color{}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return c, fmt.Errorf("colour %q: %w", s, err)
	}
	return c, nil
}
