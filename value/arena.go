package value

// SignalID is a stable, monotonically-increasing handle standing in for
// a *Signal's identity. Spec §9 requires driver maps and wire tables to
// be "keyed by signal identity" using "arena indices" rather than
// language-level object identity; SignalID is that index. Every *Signal
// carries its own id, assigned once at construction and never reused.
type SignalID uint64

// Arena hands out unique SignalIDs for one elaboration session. A
// *fragment.Fragment tree and everything reachable from it shares a
// single Arena, so two signals never collide even across sub-fragments
// built independently before being attached to a common root.
//
// Arena is not safe for concurrent use; per spec §5 an elaboration
// session is single-threaded.
type Arena struct {
	next SignalID
}

// NewArena returns a fresh, empty signal arena.
func NewArena() *Arena {
	return &Arena{next: 1}
}

// alloc returns the next unused SignalID.
func (a *Arena) alloc() SignalID {
	id := a.next
	a.next++
	return id
}
