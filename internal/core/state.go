// Application state machine gating image loads and detection runs
package core

import (
	"fmt"
	"sync"
)

// State enumerates the application lifecycle. Detection may start only from
// StateReady, which is what keeps runs single-flight.
type State int

const (
	// StateIdle: no image loaded.
	StateIdle State = iota
	// StateLoading: an image decode is in progress.
	StateLoading
	// StateReady: an image is loaded and no run is in flight.
	StateReady
	// StateProcessing: one detection run is in flight.
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateProcessing:
		return "processing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// legalTransitions maps each state to the states it may move to.
var legalTransitions = map[State][]State{
	StateIdle:       {StateLoading},
	StateLoading:    {StateIdle, StateReady},
	StateReady:      {StateLoading, StateProcessing},
	StateProcessing: {StateReady},
}

// Machine is a mutex-guarded state holder with transition validation and an
// optional observer for UI enablement.
type Machine struct {
	mu       sync.Mutex
	current  State
	observer func(State)
}

// NewMachine returns a machine in StateIdle.
func NewMachine() *Machine {
	return &Machine{current: StateIdle}
}

// Current returns the present state.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// SetObserver registers a callback invoked after every successful
// transition. The callback runs outside the machine's lock.
func (m *Machine) SetObserver(fn func(State)) {
	m.mu.Lock()
	m.observer = fn
	m.mu.Unlock()
}

// Transition moves the machine to the requested state, rejecting moves the
// lifecycle does not allow.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()

	if !allowed(m.current, to) {
		from := m.current
		m.mu.Unlock()
		return fmt.Errorf("illegal state transition %s -> %s", from, to)
	}

	m.current = to
	observer := m.observer
	m.mu.Unlock()

	if observer != nil {
		observer(to)
	}
	return nil
}

// TryBegin atomically moves from -> to, reporting whether it happened. Used
// to claim the single detection slot.
func (m *Machine) TryBegin(from, to State) bool {
	m.mu.Lock()

	if m.current != from || !allowed(from, to) {
		m.mu.Unlock()
		return false
	}

	m.current = to
	observer := m.observer
	m.mu.Unlock()

	if observer != nil {
		observer(to)
	}
	return true
}

func allowed(from, to State) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
