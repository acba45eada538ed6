package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// State is a named state in the machine.
type State string

// Event is a named trigger for a state change.
type Event string

// Action executes side effects during a transition. Returning an error
// aborts the transition and leaves the machine in its current state.
type Action func(ctx context.Context, from, to State, event Event) error

type transition struct {
	to      State
	actions []Action
}

// Machine is a small thread-safe finite state machine. One transition is
// allowed per state/event pair; attempting an event with no transition from
// the current state fails with ErrNoTransition.
type Machine struct {
	initial     State
	mu          sync.RWMutex
	current     State
	transitions map[State]map[Event]transition
}

// Option configures a machine during construction.
type Option func(*Machine)

// WithTransition declares that event moves the machine from one state to
// another, running the given actions before the state change. Declaring a
// second transition for the same from/event pair panics: transition tables
// are static wiring and conflicts are programming errors.
func WithTransition(from, to State, event Event, actions ...Action) Option {
	return func(m *Machine) {
		if _, ok := m.transitions[from]; !ok {
			m.transitions[from] = make(map[Event]transition)
		}
		if _, exists := m.transitions[from][event]; exists {
			panic(fmt.Sprintf("statemachine: duplicate transition from %q on %q", from, event))
		}
		m.transitions[from][event] = transition{to: to, actions: actions}
	}
}

// New creates a machine in the given initial state.
func New(initial State, opts ...Option) *Machine {
	m := &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[State]map[Event]transition),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the machine's current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is currently in the given state.
func (m *Machine) Is(s State) bool {
	return m.Current() == s
}

// Fire attempts the transition triggered by event. Actions run before the
// state change; if any fails the state is unchanged and the error is
// returned.
func (m *Machine) Fire(ctx context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transitions[m.current][event]
	if !ok {
		return &ErrNoTransition{From: m.current, Event: event}
	}

	for _, action := range t.actions {
		if action == nil {
			continue
		}
		if err := action(ctx, m.current, t.to, event); err != nil {
			return fmt.Errorf("transition action: %w", err)
		}
	}

	m.current = t.to
	return nil
}

// CanFire reports whether event has a transition from the current state.
func (m *Machine) CanFire(event Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.transitions[m.current][event]
	return ok
}

// Reset returns the machine to its initial state without running actions.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}
