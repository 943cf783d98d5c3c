package prefs

import (
	"sync"

	ps "github.com/spetersoncode/propstream"
)

type overlayKey struct {
	user string
	conv string
}

// Store holds preference overlays keyed by (user id, conversation id).
// It is an in-memory, process-lifetime structure shared by all concurrent
// turns; all operations are O(1) map mutations under a single mutex.
type Store struct {
	mu       sync.RWMutex
	overlays map[overlayKey]Overlay
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		overlays: make(map[overlayKey]Overlay),
	}
}

// Get returns a copy of the overlay for a (user, conversation) pair. An
// unknown pair yields a default empty overlay; Get never fails.
func (s *Store) Get(userID, convID string) Overlay {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.overlays[overlayKey{userID, convID}]
	if !ok {
		return NewOverlay()
	}
	return o.clone()
}

// AddFavorite records a listing snapshot under the favorites map.
func (s *Store) AddFavorite(userID, convID, code string, snapshot ps.Listing) {
	s.mutate(userID, convID, func(o *Overlay) {
		o.Favorites[code] = snapshot
	})
}

// RemoveFavorite drops a code from the favorites map.
func (s *Store) RemoveFavorite(userID, convID, code string) {
	s.mutate(userID, convID, func(o *Overlay) {
		delete(o.Favorites, code)
	})
}

// Hide records a listing snapshot under the hidden map.
func (s *Store) Hide(userID, convID, code string, snapshot ps.Listing) {
	s.mutate(userID, convID, func(o *Overlay) {
		o.Hidden[code] = snapshot
	})
}

// Unhide drops a code from the hidden map.
func (s *Store) Unhide(userID, convID, code string) {
	s.mutate(userID, convID, func(o *Overlay) {
		delete(o.Hidden, code)
	})
}

// mutate applies fn to a copy of the stored overlay and swaps it back in.
func (s *Store) mutate(userID, convID string, fn func(*Overlay)) {
	key := overlayKey{userID, convID}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.overlays[key]
	if !ok {
		o = NewOverlay()
	} else {
		o = o.clone()
	}
	fn(&o)
	s.overlays[key] = o
}
