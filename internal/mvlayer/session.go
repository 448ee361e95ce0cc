package mvlayer

// Session is a single tree operation's view of the MV layer: it derefs
// slots, attempts to lock the slots it needs to mutate, and records every
// lock it wins so End can release them in one place regardless of whether
// the operation committed or aborted.
//
// A Session is single-use: begin one per operation attempt, End (or Abort)
// it before returning or retrying.
type Session[T any] struct {
	thread *Thread
	held   []*Slot[T]
}

// Begin starts a new session for thread. thread may be shared across many
// sequential sessions (one operation attempt each) but a Session itself must
// not be used concurrently from multiple goroutines.
func Begin[T any](thread *Thread) *Session[T] {
	return &Session[T]{thread: thread}
}

// Deref reads the current value of a slot. Never blocks, and is safe to call
// even for slots the session does not hold the lock on — this is the
// lock-free read path.
func (s *Session[T]) Deref(slot *Slot[T]) *T {
	return slot.Load()
}

// TryLock attempts to acquire writer intent on slot. On success the lock is
// tracked so End releases it; on failure the caller should abort and retry
// the whole operation rather than waiting.
func (s *Session[T]) TryLock(slot *Slot[T]) bool {
	if slot.TryLock() {
		s.held = append(s.held, slot)
		return true
	}
	return false
}

// AssignPtr publishes v through slot. The caller must have already won
// slot's lock via TryLock.
func (s *Session[T]) AssignPtr(slot *Slot[T], v *T) {
	slot.Store(v)
}

// End releases every lock this session acquired. Safe to call multiple
// times and on a session that acquired no locks.
func (s *Session[T]) End() {
	for _, sl := range s.held {
		sl.Unlock()
	}
	s.held = nil
}

// Abort discards the session without committing. In this implementation
// writes only ever become visible via AssignPtr (there is no deferred
// write-log to roll back), so Abort is equivalent to End: it simply releases
// locks without having published anything through them.
func (s *Session[T]) Abort() {
	s.End()
}
