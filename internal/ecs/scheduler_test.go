package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsInDependencyOrder(t *testing.T) {
	s := NewScheduler(nil)
	r := NewRegistry(nil)

	var order []string
	require.NoError(t, s.Add("physics", func(*Registry) error { order = append(order, "physics"); return nil }))
	require.NoError(t, s.Add("render", func(*Registry) error { order = append(order, "render"); return nil }, "physics"))
	require.NoError(t, s.Add("input", func(*Registry) error { order = append(order, "input"); return nil }))

	require.NoError(t, s.Run(r))

	assert.Len(t, order, 3)
	renderIdx, physicsIdx := -1, -1
	for i, name := range order {
		if name == "render" {
			renderIdx = i
		}
		if name == "physics" {
			physicsIdx = i
		}
	}
	assert.Less(t, physicsIdx, renderIdx, "physics must run before render")
}

func TestSchedulerTieBreaksAlphabetically(t *testing.T) {
	s := NewScheduler(nil)
	r := NewRegistry(nil)

	var order []string
	s.Add("zeta", func(*Registry) error { order = append(order, "zeta"); return nil })
	s.Add("alpha", func(*Registry) error { order = append(order, "alpha"); return nil })
	s.Add("mid", func(*Registry) error { order = append(order, "mid"); return nil })

	require.NoError(t, s.Run(r))
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, order)
}

func TestSchedulerDetectsCycle(t *testing.T) {
	s := NewScheduler(nil)
	r := NewRegistry(nil)

	s.Add("a", func(*Registry) error { return nil }, "b")
	s.Add("b", func(*Registry) error { return nil }, "a")

	err := s.Run(r)
	require.Error(t, err)
	var ecsErr *Error
	require.ErrorAs(t, err, &ecsErr)
	assert.Equal(t, ErrCycleDetected, ecsErr.Kind)
}

func TestSchedulerRejectsUnknownDependency(t *testing.T) {
	s := NewScheduler(nil)
	r := NewRegistry(nil)

	s.Add("a", func(*Registry) error { return nil }, "ghost")

	err := s.Run(r)
	require.Error(t, err)
	var ecsErr *Error
	require.ErrorAs(t, err, &ecsErr)
	assert.Equal(t, ErrUnknownDependency, ecsErr.Kind)
}

func TestSchedulerRejectsDuplicateRegistration(t *testing.T) {
	s := NewScheduler(nil)
	require.NoError(t, s.Add("a", func(*Registry) error { return nil }))

	err := s.Add("a", func(*Registry) error { return nil })
	require.Error(t, err)
	var ecsErr *Error
	require.ErrorAs(t, err, &ecsErr)
	assert.Equal(t, ErrDuplicateSystem, ecsErr.Kind)
}

func TestSchedulerSkipsDisabledSystems(t *testing.T) {
	s := NewScheduler(nil)
	r := NewRegistry(nil)

	ran := false
	s.Add("a", func(*Registry) error { ran = true; return nil })
	s.SetEnabled("a", false)

	require.NoError(t, s.Run(r))
	assert.False(t, ran)
	assert.False(t, s.IsEnabled("a"))
}

func TestSchedulerStopsOnFirstError(t *testing.T) {
	s := NewScheduler(nil)
	r := NewRegistry(nil)

	var ranB bool
	s.Add("a", func(*Registry) error { return assertErr })
	s.Add("b", func(*Registry) error { ranB = true; return nil }, "a")

	err := s.Run(r)
	require.Error(t, err)
	assert.False(t, ranB, "a dependent system must not run after its dependency failed")
}

var assertErr = &Error{Kind: ErrCycleDetected, Message: "injected for test", Entity: Null}
