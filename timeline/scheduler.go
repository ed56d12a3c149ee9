package timeline

import "github.com/matt-g-everett/ledscrub/tween"

var closed = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Scheduler is the set of in-flight tasks. Each Tick resumes every task once
// and prunes those that finished.
type Scheduler struct {
	tasks []tween.Task
	idle  chan struct{}
}

// Go tracks t until it finishes. A task that is already done is ignored.
func (s *Scheduler) Go(t tween.Task) {
	if t.Done() {
		return
	}
	s.tasks = append(s.tasks, t)
}

// Tick resumes every in-flight task for one frame.
func (s *Scheduler) Tick() {
	// Tasks started while stepping are kept and first resumed next frame.
	running := s.tasks
	s.tasks = nil

	live := running[:0]
	for _, t := range running {
		if !t.Step() {
			live = append(live, t)
		}
	}
	clear(running[len(live):])

	s.tasks = append(live, s.tasks...)
	s.notify()
}

// Len is the number of in-flight tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Idle returns a channel that is closed once no task is in flight.
func (s *Scheduler) Idle() <-chan struct{} {
	if len(s.tasks) == 0 {
		return closed
	}
	if s.idle == nil {
		s.idle = make(chan struct{})
	}
	return s.idle
}

// Drop forgets every in-flight task without stepping it again.
func (s *Scheduler) Drop() {
	clear(s.tasks)
	s.tasks = nil
	s.notify()
}

func (s *Scheduler) notify() {
	if len(s.tasks) > 0 || s.idle == nil {
		return
	}
	close(s.idle)
	s.idle = nil
}
