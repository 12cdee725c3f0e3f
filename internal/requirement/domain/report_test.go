package requirement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Evaluate(t *testing.T) {
	blocked, err := NewBuilder("license").
		Label("License").
		Applicable(Always(true)).
		Completed(Always(false)).
		Resolvable(Always(false)).
		Build()
	require.NoError(t, err)

	reg := mkRegistry(t,
		fixed(t, "a", true, true),
		fixed(t, "b", true, false, "a"),
		fixed(t, "c", true, false, "b"),
		fixed(t, "hidden", false, false),
		blocked,
	)

	rep, err := reg.Evaluate(context.Background())
	require.NoError(t, err)

	states := make(map[string]State)
	for _, s := range rep.Statuses {
		states[s.Requirement.ID()] = s.State
	}
	require.Equal(t, map[string]State{
		"a":       StateCompleted,
		"b":       StateActionable,
		"c":       StateWaiting,
		"license": StateBlocked,
	}, states)

	c, ok := rep.Status("c")
	require.True(t, ok)
	require.Equal(t, []string{"b"}, c.WaitingOn)
	_, ok = rep.Status("hidden")
	require.False(t, ok)

	require.Equal(t, []string{"hidden"}, rep.NotApplicable)
	require.Equal(t, Summary{Total: 4, Completed: 1, Actionable: 1, Waiting: 1, Blocked: 1}, rep.Summary)
	require.False(t, rep.FullyResolved)
	require.Equal(t, "b", rep.Next)
}

func TestRegistry_Evaluate_FullyResolved(t *testing.T) {
	reg := mkRegistry(t, fixed(t, "a", true, true), fixed(t, "b", true, true, "a"))

	rep, err := reg.Evaluate(context.Background())
	require.NoError(t, err)
	require.True(t, rep.FullyResolved)
	require.Empty(t, rep.Next)
	require.Equal(t, 2, rep.Summary.Completed)
}

func TestRegistry_Evaluate_Cycle(t *testing.T) {
	reg := mkRegistry(t, fixed(t, "a", true, false, "b"), fixed(t, "b", true, false, "a"))

	rep, err := reg.Evaluate(context.Background())
	require.ErrorIs(t, err, ErrCyclicDependency)
	require.Nil(t, rep)
}
