package timeline

import "github.com/matt-g-everett/ledscrub/tween"

// Orchestrator fans scrub requests out to one Player per Sequence, tracks
// their replays and disposes ephemeral objects when nothing is live.
type Orchestrator struct {
	registry   *Registry
	ephemerals *Ephemerals
	gens       Generations
	sched      Scheduler
	players    map[SequenceID]*Player
	bound      float64
}

// NewOrchestrator creates an Orchestrator resolving sequences through reg.
// A nil eph gets a private registry of ephemeral objects.
func NewOrchestrator(reg *Registry, eph *Ephemerals) *Orchestrator {
	if eph == nil {
		eph = new(Ephemerals)
	}
	o := new(Orchestrator)
	o.registry = reg
	o.ephemerals = eph
	o.players = make(map[SequenceID]*Player)
	return o
}

// PlayTo replays clips as of time t. The returned Token is the new
// generation; every replay dispatched earlier, on any sequence, is canceled
// before it can mutate anything else.
func (o *Orchestrator) PlayTo(clips []Clip, t float64) Token {
	live := false
	for _, c := range clips {
		o.bound = max(o.bound, c.End+1)
		if c.Active(t) {
			live = true
		}
	}

	token := o.gens.Next()

	var order []*Sequence
	groups := make(map[SequenceID][]Clip)
	for _, c := range clips {
		if !o.registry.Has(c.Sequence) {
			logger.Warn("dropping clip without a registered sequence",
				"sequence", c.Sequence, "start", c.Start, "end", c.End)
			continue
		}
		id := c.Sequence.ID()
		if _, ok := groups[id]; !ok {
			order = append(order, c.Sequence)
		}
		groups[id] = append(groups[id], c)
	}

	for _, seq := range order {
		o.sched.Go(o.player(seq).PlayTo(t, groups[seq.ID()], token))
	}

	if !live {
		if n := o.ephemerals.DisposeAll(); n > 0 {
			logger.Debug("disposed ephemeral objects", "count", n, "time", t)
		}
	}

	return token
}

// Tick resumes every in-flight replay for one frame.
func (o *Orchestrator) Tick() {
	o.sched.Tick()
}

// Go registers an extra operation, such as a free-running Playback, that
// must finish before the timeline counts as scrubbed. It is stepped by Tick
// alongside the replays and holds AllFinished open until it is done. A task
// that is already done is ignored. Operations are not tied to a generation;
// pass Current as their Canceler to have the next PlayTo stop them.
func (o *Orchestrator) Go(t tween.Task) {
	o.sched.Go(t)
}

// AllFinished returns a channel that is closed when nothing is in flight.
func (o *Orchestrator) AllFinished() <-chan struct{} {
	return o.sched.Idle()
}

// InFlight is the number of unfinished tasks.
func (o *Orchestrator) InFlight() int {
	return o.sched.Len()
}

// Bound is one unit past the latest clip end seen so far.
func (o *Orchestrator) Bound() float64 {
	return o.bound
}

// Generation is the current cancellation generation.
func (o *Orchestrator) Generation() uint64 {
	return o.gens.Current()
}

// Current returns a Token for the current generation. It is canceled by
// the next PlayTo or Clear.
func (o *Orchestrator) Current() Token {
	return o.gens.Token()
}

// Ephemerals returns the registry of objects disposed on idle.
func (o *Orchestrator) Ephemerals() *Ephemerals {
	return o.ephemerals
}

// Player returns the player for seq if one has been created.
func (o *Orchestrator) Player(seq *Sequence) (*Player, bool) {
	if seq == nil {
		return nil, false
	}
	p, ok := o.players[seq.ID()]
	return p, ok
}

// Forget drops the player for seq and unregisters it.
func (o *Orchestrator) Forget(seq *Sequence) {
	if p, ok := o.Player(seq); ok {
		p.Clean()
		delete(o.players, seq.ID())
	}
	o.registry.Unregister(seq)
}

// Clear resets and drops every player and in-flight task.
func (o *Orchestrator) Clear() {
	o.gens.Next()
	for _, p := range o.players {
		p.Reset()
		p.Clean()
	}
	o.players = make(map[SequenceID]*Player)
	o.sched.Drop()
	o.bound = 0
}

func (o *Orchestrator) player(seq *Sequence) *Player {
	p, ok := o.players[seq.ID()]
	if !ok {
		p = NewPlayer(seq)
		o.players[seq.ID()] = p
	}
	return p
}
