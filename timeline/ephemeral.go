package timeline

// A Disposer is an object that can be thrown away.
type Disposer interface {
	Dispose()
}

// Ephemerals tracks helper objects created while replaying. They are
// disposed together once the playhead leaves every clip.
type Ephemerals struct {
	marked []Disposer
	dirty  bool
}

// Mark registers d for disposal at the next idle pass.
func (e *Ephemerals) Mark(d Disposer) {
	e.marked = append(e.marked, d)
	e.dirty = true
}

// Len is the number of objects waiting for disposal.
func (e *Ephemerals) Len() int {
	return len(e.marked)
}

// DisposeAll disposes every marked object and returns how many there were.
// It does nothing if nothing was marked since the last pass.
func (e *Ephemerals) DisposeAll() int {
	if !e.dirty {
		return 0
	}
	n := len(e.marked)
	for _, d := range e.marked {
		d.Dispose()
	}
	clear(e.marked)
	e.marked = e.marked[:0]
	e.dirty = false
	return n
}
