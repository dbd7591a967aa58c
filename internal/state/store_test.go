package state

import (
	"sync"
	"testing"

	"github.com/san-kum/fieldboost/internal/vecmath"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(DefaultPolicy(), Default())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return st
}

func TestNew_InvalidPolicy(t *testing.T) {
	if _, err := New(Policy{MaxSpeed: 2, MinMass: 1}, Default()); err == nil {
		t.Error("expected error for invalid policy")
	}
}

func TestNew_ClampsInitialState(t *testing.T) {
	s := Default()
	s.Boost.Velocity.R = 5

	st, err := New(DefaultPolicy(), s)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if got := st.Snapshot().Boost.Velocity.R; got != DefaultMaxSpeed {
		t.Errorf("boost speed = %v, want %v", got, DefaultMaxSpeed)
	}
}

func TestStore_UpdateNotifies(t *testing.T) {
	st := newTestStore(t)

	var got []State
	unsubscribe := st.Subscribe(func(s State) { got = append(got, s) })

	st.Update(func(s *State) { s.Particle.Mass = -1 })
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].Particle.Mass != DefaultMinMass {
		t.Errorf("subscriber saw mass %v, want %v", got[0].Particle.Mass, DefaultMinMass)
	}

	// Same clamped value again is not a change.
	st.Update(func(s *State) { s.Particle.Mass = 0 })
	if len(got) != 1 {
		t.Errorf("expected no notification for unchanged state, got %d", len(got))
	}

	unsubscribe()
	st.Update(func(s *State) { s.Field.E = vecmath.New(9, 9, 9) })
	if len(got) != 1 {
		t.Errorf("expected no notification after unsubscribe, got %d", len(got))
	}
}

func TestStore_QuantitiesFollowState(t *testing.T) {
	st := newTestStore(t)
	st.Update(func(s *State) { s.Boost.Velocity.R = 0 })

	q := st.Quantities()
	if q.EPrime != st.Snapshot().Field.E {
		t.Errorf("zero boost EPrime = %v, want %v", q.EPrime, st.Snapshot().Field.E)
	}
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	st := newTestStore(t)

	var mu sync.Mutex
	calls := 0
	st.Subscribe(func(State) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st.Update(func(s *State) { s.Particle.Charge = float64(i + 10) })
			_ = st.Quantities()
		}(i)
	}
	wg.Wait()

	if calls == 0 {
		t.Error("expected notifications")
	}
	if q := st.Snapshot().Particle.Charge; q < 10 || q >= 60 {
		t.Errorf("unexpected final charge %v", q)
	}
}
