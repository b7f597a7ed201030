package stereodelay

import (
	"sync"
	"sync/atomic"
)

// Store publishes parameter snapshots from control goroutines to the audio
// goroutine.
//
// Writers serialize on a mutex and publish an immutable copy; the audio
// side only performs an atomic load and never blocks. A published
// snapshot is never modified.
type Store struct {
	mu      sync.Mutex
	pending Params
	current atomic.Pointer[Params]
}

// NewStore returns a store publishing initial.
func NewStore(initial Params) *Store {
	s := &Store{pending: initial}
	s.publishLocked()
	return s
}

// Snapshot returns the latest published parameters. The result must be
// treated as read-only.
func (s *Store) Snapshot() *Params {
	return s.current.Load()
}

// Get returns the published normalized value at index.
func (s *Store) Get(index Param) float64 {
	return s.Snapshot().Get(index)
}

// Set assigns one normalized value and publishes the result. Unknown
// indices are ignored.
func (s *Store) Set(index Param, value float64) {
	if !index.Valid() {
		return
	}
	s.Update(func(p *Params) { p.Set(index, value) })
}

// Update applies fn to the pending parameters and publishes once, so a
// batch of changes reaches the audio path as a single snapshot.
func (s *Store) Update(fn func(*Params)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.pending)
	s.publishLocked()
}

// Replace publishes p as the complete parameter set.
func (s *Store) Replace(p Params) {
	s.Update(func(dst *Params) { *dst = p })
}

func (s *Store) publishLocked() {
	s.pending.sanitize()
	snap := s.pending
	s.current.Store(&snap)
}
