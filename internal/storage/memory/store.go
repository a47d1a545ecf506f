// Package memory holds the per-user session arena. Sessions live for the
// process lifetime only; there is deliberately no durable backing store.
package memory

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"trip_concierge/internal/domain"
)

type Store struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

func New() *Store {
	return &Store{sessions: make(map[string]*domain.Session), now: time.Now}
}

// GetOrCreate returns the user's session, lazily creating a fresh one with
// default profile and empty history.
func (s *Store) GetOrCreate(userID string) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	sess := &domain.Session{
		UserID:   userID,
		Profile:  domain.NewTravelProfile(),
		LastSeen: s.now(),
	}
	s.sessions[userID] = sess
	return sess
}

func (s *Store) Get(userID string) (*domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Reset replaces the user's record with fresh defaults and empty history.
// Idempotent; the returned session is inactive until the next utterance.
func (s *Store) Reset(userID string) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &domain.Session{
		UserID:   userID,
		Profile:  domain.NewTravelProfile(),
		LastSeen: s.now(),
	}
	s.sessions[userID] = sess
	return sess
}

// Sweep marks sessions idle for longer than idleFor inactive and returns how
// many it touched. Advisory only: it never interrupts an in-flight turn and
// never discards profile data.
func (s *Store) Sweep(idleFor time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-idleFor)
	n := 0
	for id, sess := range s.sessions {
		if sess.Active && sess.LastSeen.Before(cutoff) {
			sess.Active = false
			n++
			log.Info().Str("user", id).Msg("session timed out after inactivity")
		}
	}
	return n
}

// RunSweeper marks idle sessions on a fixed cadence until stop is closed.
func (s *Store) RunSweeper(interval, idleFor time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if n := s.Sweep(idleFor); n > 0 {
				log.Debug().Int("sessions", n).Msg("idle sweep complete")
			}
		}
	}
}
