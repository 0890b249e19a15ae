package profile

import (
	"sync/atomic"
)

// Store publishes the active profile. Readers take a snapshot with Active and
// keep using it for the whole command; writers publish a fully built profile
// with Swap. A reader therefore sees either the old or the new profile,
// never a mix of both.
type Store struct {
	active     atomic.Pointer[Profile]
	generation atomic.Uint64
}

// NewStore starts with initial, or the built-in profile when initial is nil.
func NewStore(initial *Profile) *Store {
	if initial == nil {
		initial = Default()
	}
	s := &Store{}
	s.active.Store(initial)
	return s
}

// Active returns the current profile.
func (s *Store) Active() *Profile {
	return s.active.Load()
}

// Swap publishes p and returns the profile it replaced. A nil p is ignored.
func (s *Store) Swap(p *Profile) *Profile {
	if p == nil {
		return nil
	}
	old := s.active.Swap(p)
	s.generation.Add(1)
	return old
}

// Generation counts successful swaps.
func (s *Store) Generation() uint64 {
	return s.generation.Load()
}
