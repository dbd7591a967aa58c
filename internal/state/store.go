package state

import (
	"sync"

	"github.com/san-kum/fieldboost/internal/lorentz"
)

// Store owns the current snapshot. Every write passes through the clamp
// policy before subscribers see it, so readers can hand snapshots straight
// to the engine.
type Store struct {
	mu     sync.RWMutex
	policy Policy
	cur    State
	subs   map[int]func(State)
	nextID int
}

// New creates a store holding the clamped initial state.
func New(policy Policy, initial State) (*Store, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		policy: policy,
		cur:    policy.Apply(initial),
		subs:   make(map[int]func(State)),
	}, nil
}

func (s *Store) Policy() Policy {
	return s.policy
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Quantities runs the field transform on the current state.
func (s *Store) Quantities() lorentz.Quantities {
	return s.Snapshot().Quantities()
}

// Update applies fn to a copy of the current state, clamps the result,
// stores it and notifies subscribers. It returns the stored state.
func (s *Store) Update(fn func(*State)) State {
	s.mu.Lock()
	next := s.cur
	fn(&next)
	next = s.policy.Apply(next)
	changed := next != s.cur
	s.cur = next
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	if changed {
		for _, sub := range subs {
			sub(next)
		}
	}
	return next
}

// Replace swaps in a whole new state.
func (s *Store) Replace(st State) State {
	return s.Update(func(cur *State) { *cur = st })
}

// Subscribe registers fn to be called after every change. Calls happen on
// the writer's goroutine, outside the store lock. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
