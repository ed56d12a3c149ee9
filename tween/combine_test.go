package tween

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestParallelEmpty(t *testing.T) {
	if got := Parallel().Total(); got != 0 {
		t.Errorf("Parallel().Total() = %v, want 0", got)
	}
	if got := Parallel(New(nil, 0), New(nil, 0)).Total(); got != 0 {
		t.Errorf("Parallel(zero, zero).Total() = %v, want 0", got)
	}
}

func TestParallelChildProgress(t *testing.T) {
	a := &recorder{}
	b := &recorder{}
	p := Parallel(New(a.mutate, time.Second), New(b.mutate, 2*time.Second))

	if p.Duration() != 2*time.Second {
		t.Fatalf("Duration = %v, want 2s", p.Duration())
	}

	p.Evaluate(0.5)
	if a.calls[0] != 1 {
		t.Errorf("A progress = %f, want 1", a.calls[0])
	}
	if !approx(b.calls[0], 0.5) {
		t.Errorf("B progress = %f, want 0.5", b.calls[0])
	}
}

func TestParallelZeroChildHoldsOne(t *testing.T) {
	a := &recorder{}
	p := Parallel(New(a.mutate, 0), New(nil, time.Second))

	p.Evaluate(0)
	if a.calls[0] != 1 {
		t.Errorf("zero-length child progress = %f, want 1", a.calls[0])
	}
}

func TestStaggerOffsetsChildren(t *testing.T) {
	a := &recorder{}
	b := &recorder{}
	s := Stagger(time.Second, New(a.mutate, time.Second), New(b.mutate, time.Second))

	if s.Total() != 2*time.Second {
		t.Fatalf("Total = %v, want 2s", s.Total())
	}

	s.Evaluate(0.25)
	if len(b.calls) != 0 {
		t.Errorf("second child ran inside its stagger delay: %v", b.calls)
	}
	if !approx(a.calls[0], 0.5) {
		t.Errorf("A progress = %f, want 0.5", a.calls[0])
	}

	s.Evaluate(0.75)
	if !approx(b.calls[0], 0.5) {
		t.Errorf("B progress = %f, want 0.5", b.calls[0])
	}
}

func TestSeriesEmpty(t *testing.T) {
	if got := Series().Total(); got != 0 {
		t.Errorf("Series().Total() = %v, want 0", got)
	}
}

func TestSeriesBoundaryOrder(t *testing.T) {
	var log []string
	a := &recorder{name: "A", log: &log}
	b := &recorder{name: "B", log: &log}
	s := Series(New(a.mutate, time.Second), New(b.mutate, time.Second))

	if s.Duration() != 2*time.Second {
		t.Fatalf("Duration = %v, want 2s", s.Duration())
	}

	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if err := s.Evaluate(p); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"A:0", "A:~", "A:1", "B:0", "B:~", "B:1"}
	if !slices.Equal(log, want) {
		t.Errorf("evaluation order = %v, want %v", log, want)
	}
}

func TestSeriesSkipsOverChildren(t *testing.T) {
	var log []string
	a := &recorder{name: "A", log: &log}
	b := &recorder{name: "B", log: &log}
	c := &recorder{name: "C", log: &log}
	s := Series(New(a.mutate, time.Second), New(b.mutate, time.Second), New(c.mutate, time.Second))

	s.Evaluate(0.9)

	want := []string{"A:1", "B:0", "B:1", "C:0", "C:~"}
	if !slices.Equal(log, want) {
		t.Errorf("evaluation order = %v, want %v", log, want)
	}
}

func TestSeriesBackward(t *testing.T) {
	var log []string
	a := &recorder{name: "A", log: &log}
	b := &recorder{name: "B", log: &log}
	s := Series(New(a.mutate, time.Second), New(b.mutate, time.Second))

	s.Evaluate(0.75)
	log = log[:0]
	s.Evaluate(0.25)

	want := []string{"B:0", "A:1", "A:~"}
	if !slices.Equal(log, want) {
		t.Errorf("evaluation order = %v, want %v", log, want)
	}
	if !approx(a.calls[len(a.calls)-1], 0.5) {
		t.Errorf("A progress = %f, want 0.5", a.calls[len(a.calls)-1])
	}
}

func TestSeriesJoinsErrors(t *testing.T) {
	s := Series(
		New(func(float64) error { return ErrTargetDestroyed }, time.Second),
		New(nil, time.Second),
	)
	if err := s.Evaluate(0.25); !errors.Is(err, ErrTargetDestroyed) {
		t.Errorf("err = %v, want ErrTargetDestroyed", err)
	}
}

func TestNestedComposition(t *testing.T) {
	a := &recorder{}
	b := &recorder{}
	c := &recorder{}
	tw := Series(
		Parallel(New(a.mutate, time.Second), New(b.mutate, 500*time.Millisecond)),
		New(c.mutate, time.Second),
	)

	if tw.Total() != 2*time.Second {
		t.Fatalf("Total = %v, want 2s", tw.Total())
	}

	tw.Evaluate(0.25)
	if !approx(a.calls[0], 0.5) || b.calls[0] != 1 {
		t.Errorf("a=%v b=%v, want a=0.5 b=1", a.calls, b.calls)
	}
	if len(c.calls) != 0 {
		t.Errorf("c ran early: %v", c.calls)
	}
}

func TestSeriesBackwardRewindsDelayedChild(t *testing.T) {
	var log []string
	a := &recorder{name: "A", log: &log}
	b := &recorder{name: "B", log: &log}
	s := Series(
		New(a.mutate, time.Second),
		New(b.mutate, time.Second).WithDelay(time.Second),
	)

	s.Evaluate(1)
	log = log[:0]
	s.Evaluate(0.1)

	want := []string{"B:0", "A:1", "A:~"}
	if !slices.Equal(log, want) {
		t.Errorf("evaluation order = %v, want %v", log, want)
	}
}

func TestCombinatorRewindReachesEveryChild(t *testing.T) {
	a := &recorder{}
	b := &recorder{}
	c := &recorder{}
	tw := Series(
		Parallel(New(a.mutate, time.Second), New(b.mutate, time.Second).WithDelay(time.Second)),
		New(c.mutate, time.Second).WithDelay(500*time.Millisecond),
	)

	tw.Evaluate(1)
	if err := tw.Rewind(); err != nil {
		t.Fatal(err)
	}
	for name, r := range map[string]*recorder{"a": a, "b": b, "c": c} {
		if got := r.calls[len(r.calls)-1]; got != 0 {
			t.Errorf("%s progress after Rewind = %v, want 0", name, got)
		}
	}

	// The cursor is parked at the first child again, so moving forward
	// crosses the boundary and completes the first child once more.
	n := len(a.calls)
	tw.Evaluate(0.9)
	if len(a.calls) != n+1 || a.calls[n] != 1 {
		t.Errorf("a calls after re-entering = %v, want a trailing 1", a.calls[n:])
	}
}
