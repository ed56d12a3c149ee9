package timeline

import (
	"math"
	"slices"

	"github.com/matt-g-everett/ledscrub/tween"
)

// State is the replay state of a Player.
type State int

const (
	// Idle means no replay is running.
	Idle State = iota
	// Replaying means a replay is evaluating clips.
	Replaying
	// Superseded means a replay is still pending but its generation has
	// been canceled; it stops at its next frame.
	Superseded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Replaying:
		return "replaying"
	case Superseded:
		return "superseded"
	}
	return "unknown"
}

// Player replays the clips of one Sequence.
type Player struct {
	seq        *Sequence
	generation uint64
	run        *Replay
	last       *tween.Tween
	reached    float64
	overlapped bool
}

// NewPlayer creates an idle Player for seq.
func NewPlayer(seq *Sequence) *Player {
	p := new(Player)
	p.seq = seq
	p.reached = math.Inf(-1)
	return p
}

// Sequence returns the sequence this player replays.
func (p *Player) Sequence() *Sequence { return p.seq }

// Generation is the generation of the most recent PlayTo.
func (p *Player) Generation() uint64 { return p.generation }

// State reports what the player is doing.
func (p *Player) State() State {
	if p.run == nil || p.run.done {
		return Idle
	}
	if p.run.token.Canceled() {
		return Superseded
	}
	return Replaying
}

// PlayTo replays clips up to time t. Clips that were reached by the previous
// replay but now start after t are first rewound to progress 0, latest
// first. Active clips are then evaluated in timeline order, one per frame;
// the first one is evaluated before PlayTo returns. The returned replay
// must be stepped once per frame until done.
func (p *Player) PlayTo(t float64, clips []Clip, token Token) *Replay {
	p.generation = token.Generation()

	ordered := slices.Clone(clips)
	slices.SortStableFunc(ordered, func(a, b Clip) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
	p.checkOverlap(ordered)

	r := &Replay{player: p, token: token, time: t}
	for i := len(ordered) - 1; i >= 0; i-- {
		c := ordered[i]
		if !c.Active(t) && c.Active(p.reached) {
			r.rewind = append(r.rewind, c)
		}
	}
	for _, c := range ordered {
		if c.Active(t) {
			r.clips = append(r.clips, c)
		}
	}

	p.run = r
	p.reached = t
	r.start()
	return r
}

// Reset puts the most recently evaluated tween back to progress 0.
func (p *Player) Reset() {
	if p.last != nil {
		if _, err := p.last.TryRewind(); err != nil {
			logger.Warn("reset failed", "sequence", p.seq, "err", err)
		}
	}
	p.reached = math.Inf(-1)
}

// Clean drops every reference the player holds to clips and tweens.
func (p *Player) Clean() {
	p.run = nil
	p.last = nil
}

func (p *Player) checkOverlap(ordered []Clip) {
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Start < ordered[i-1].End {
			if !p.overlapped {
				logger.Warn("overlapping clips on sequence",
					"sequence", p.seq,
					"first", ordered[i-1].Start, "second", ordered[i].Start)
			}
			p.overlapped = true
			return
		}
	}
	p.overlapped = false
}

// A Replay is one PlayTo in progress.
type Replay struct {
	player *Player
	token  Token
	time   float64
	rewind []Clip
	clips  []Clip
	next   int
	done   bool
	err    error
}

func (r *Replay) start() {
	if r.token.Canceled() {
		r.done = true
		return
	}
	for _, c := range r.rewind {
		r.undo(c)
	}
	r.advance()
}

// Step resumes the replay for one frame. A replay whose generation has been
// canceled stops without evaluating anything further.
func (r *Replay) Step() bool {
	if r.done {
		return true
	}
	if r.token.Canceled() {
		r.done = true
		return true
	}
	r.advance()
	return r.done
}

// Done reports whether the replay has stopped.
func (r *Replay) Done() bool { return r.done }

// Err returns the first mutation error hit while replaying. Destroyed
// targets are not errors.
func (r *Replay) Err() error { return r.err }

func (r *Replay) advance() {
	if r.next < len(r.clips) {
		c := r.clips[r.next]
		r.next++
		r.evaluate(c, c.Progress(r.time))
	}
	if r.next >= len(r.clips) {
		r.done = true
	}
}

func (r *Replay) evaluate(c Clip, progress float64) {
	tw := c.Tween
	r.player.last = &tw
	ok, err := tw.TryEvaluate(progress)
	r.report(c, ok, err)
}

// undo rewinds a clip that now starts after the playhead. Its delay window
// is skipped so delayed clips are cleared too.
func (r *Replay) undo(c Clip) {
	tw := c.Tween
	r.player.last = &tw
	ok, err := tw.TryRewind()
	r.report(c, ok, err)
}

func (r *Replay) report(c Clip, ok bool, err error) {
	if err != nil {
		logger.Error("clip evaluation failed", "sequence", r.player.seq, "start", c.Start, "err", err)
		if r.err == nil {
			r.err = err
		}
		return
	}
	if !ok {
		logger.Debug("clip target destroyed", "sequence", r.player.seq, "start", c.Start)
	}
}
