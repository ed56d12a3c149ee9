// Package timeline replays clips placed on sequences when the playhead is
// scrubbed to an arbitrary time.
//
// Everything in this package is meant to be driven from a single goroutine,
// normally the host's frame loop. None of the types lock.
package timeline

import (
	"fmt"

	"github.com/matt-g-everett/ledscrub/ease"
	"github.com/matt-g-everett/ledscrub/tween"
)

// SequenceID identifies a Sequence within its Registry.
type SequenceID uint32

// A Sequence is one animation track bound to one target. It carries no
// reference to the target itself.
type Sequence struct {
	id   SequenceID
	name string
}

// ID returns the stable id assigned at registration.
func (s *Sequence) ID() SequenceID { return s.id }

// Name returns the name given at registration.
func (s *Sequence) Name() string { return s.name }

func (s *Sequence) String() string {
	if s == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s#%d", s.name, s.id)
}

// Registry hands out Sequences with stable ids. A Sequence stays known until
// it is explicitly unregistered.
type Registry struct {
	next SequenceID
	live map[SequenceID]*Sequence
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	r := new(Registry)
	r.live = make(map[SequenceID]*Sequence)
	return r
}

// Register creates a new Sequence.
func (r *Registry) Register(name string) *Sequence {
	r.next++
	s := &Sequence{id: r.next, name: name}
	r.live[s.id] = s
	return s
}

// Lookup finds a registered Sequence by id.
func (r *Registry) Lookup(id SequenceID) (*Sequence, bool) {
	s, ok := r.live[id]
	return s, ok
}

// Has reports whether s is currently registered here.
func (r *Registry) Has(s *Sequence) bool {
	if s == nil {
		return false
	}
	return r.live[s.id] == s
}

// Unregister forgets s. Ids are never reused.
func (r *Registry) Unregister(s *Sequence) {
	if r.Has(s) {
		delete(r.live, s.id)
	}
}

// Len is the number of registered sequences.
func (r *Registry) Len() int {
	return len(r.live)
}

// A Clip places a Tween on a Sequence's timeline between Start and End.
type Clip struct {
	Tween    tween.Tween
	Start    float64
	End      float64
	Sequence *Sequence
}

// NewClip creates a Clip, rejecting a window that ends before it starts.
func NewClip(seq *Sequence, tw tween.Tween, start, end float64) (Clip, error) {
	if start > end {
		return Clip{}, fmt.Errorf("clip on %v ends (%g) before it starts (%g)", seq, end, start)
	}
	return Clip{Tween: tw, Start: start, End: end, Sequence: seq}, nil
}

// Active reports whether the playhead at t has reached the clip.
func (c Clip) Active(t float64) bool {
	return c.Start <= t
}

// Progress maps t onto the clip window. A zero-length window is complete
// as soon as it is reached.
func (c Clip) Progress(t float64) float64 {
	if c.End <= c.Start {
		return 1
	}
	return ease.Clamp01((t - c.Start) / (c.End - c.Start))
}
