package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineStartsIdle(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StateIdle, m.Current())
}

func TestMachineLegalFlow(t *testing.T) {
	m := NewMachine()

	steps := []State{
		StateLoading,
		StateReady,
		StateProcessing,
		StateReady,
		StateLoading,
		StateIdle,
	}
	for _, to := range steps {
		require.NoError(t, m.Transition(to), "transition to %s", to)
		assert.Equal(t, to, m.Current())
	}
}

func TestMachineRejectsIllegalTransitions(t *testing.T) {
	cases := []struct {
		name string
		walk []State
		to   State
	}{
		{name: "idle cannot process", walk: nil, to: StateProcessing},
		{name: "idle cannot ready", walk: nil, to: StateReady},
		{name: "loading cannot process", walk: []State{StateLoading}, to: StateProcessing},
		{name: "ready cannot idle", walk: []State{StateLoading, StateReady}, to: StateIdle},
		{name: "processing cannot load", walk: []State{StateLoading, StateReady, StateProcessing}, to: StateLoading},
		{name: "no self transition", walk: []State{StateLoading, StateReady}, to: StateReady},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine()
			for _, s := range tc.walk {
				require.NoError(t, m.Transition(s))
			}
			before := m.Current()

			err := m.Transition(tc.to)
			assert.Error(t, err)
			assert.Equal(t, before, m.Current(), "failed transition must not change state")
		})
	}
}

func TestMachineTryBegin(t *testing.T) {
	m := NewMachine()

	assert.False(t, m.TryBegin(StateReady, StateProcessing), "idle machine must not begin")
	assert.Equal(t, StateIdle, m.Current())

	require.NoError(t, m.Transition(StateLoading))
	require.NoError(t, m.Transition(StateReady))

	assert.True(t, m.TryBegin(StateReady, StateProcessing))
	assert.Equal(t, StateProcessing, m.Current())

	assert.False(t, m.TryBegin(StateReady, StateProcessing), "second begin must fail while processing")
}

func TestMachineObserver(t *testing.T) {
	m := NewMachine()

	var seen []State
	m.SetObserver(func(s State) {
		seen = append(seen, s)
	})

	require.NoError(t, m.Transition(StateLoading))
	require.NoError(t, m.Transition(StateReady))
	require.True(t, m.TryBegin(StateReady, StateProcessing))
	require.NoError(t, m.Transition(StateReady))

	assert.Equal(t, []State{StateLoading, StateReady, StateProcessing, StateReady}, seen)
}

func TestMachineObserverNotCalledOnFailedTransition(t *testing.T) {
	m := NewMachine()

	calls := 0
	m.SetObserver(func(State) { calls++ })

	assert.Error(t, m.Transition(StateProcessing))
	assert.Zero(t, calls)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "processing", StateProcessing.String())
}
