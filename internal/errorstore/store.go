// Package errorstore holds the most recent user-visible error.
package errorstore

import (
	"sync"
	"time"
)

// ErrorState is a snapshot of the error store.
type ErrorState struct {
	Visible bool      `json:"visible"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
	ShownAt time.Time `json:"shownAt,omitzero"`
}

// Notifier is told about every error that is shown.
type Notifier interface {
	Notify(state ErrorState)
}

// Store is a state container for the last error. The zero value is not usable;
// create one with New.
type Store struct {
	mu       sync.RWMutex
	state    ErrorState
	notifier Notifier
	now      func() time.Time
}

// New creates an empty error store. notifier may be nil.
func New(notifier Notifier) *Store {
	return &Store{notifier: notifier, now: time.Now}
}

// ShowError replaces the current error and makes it visible.
func (s *Store) ShowError(message string, details any) {
	s.mu.Lock()
	s.state = ErrorState{
		Visible: true,
		Message: message,
		Details: details,
		ShownAt: s.now().UTC(),
	}
	state := s.state
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.Notify(state)
	}
}

// HideError clears the current error.
func (s *Store) HideError() {
	s.mu.Lock()
	s.state = ErrorState{}
	s.mu.Unlock()
}

// State returns the current error state.
func (s *Store) State() ErrorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
