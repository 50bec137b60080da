package mangle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const ancestryProgram = `
Decl parent(X, Y).

parent(/alice, /bob).
parent(/bob, /carol).

Decl ancestor(X, Y).
ancestor(X, Y) :- parent(X, Y).
ancestor(X, Z) :- parent(X, Y), ancestor(Y, Z).
`

func TestSolveEvaluatesToFixpoint(t *testing.T) {
	atoms, err := Solve(context.Background(), ancestryProgram, "ancestor", 2)
	require.NoError(t, err)
	assert.Len(t, atoms, 3, "alice->bob, bob->carol, alice->carol")
}

func TestSolveDerivesTransitiveAncestor(t *testing.T) {
	atoms, err := Solve(context.Background(), ancestryProgram, "ancestor", 2)
	require.NoError(t, err)

	found := false
	for _, a := range atoms {
		first, ferr := AtomArg(a.Args[0])
		second, serr := AtomArg(a.Args[1])
		require.NoError(t, ferr)
		require.NoError(t, serr)
		if first == "/alice" && second == "/carol" {
			found = true
		}
	}
	assert.True(t, found, "alice should be a transitive ancestor of carol")
}

func TestSolveRejectsMalformedProgram(t *testing.T) {
	_, err := Solve(context.Background(), "this is not mangle syntax {{{", "whatever", 1)
	assert.Error(t, err)
}

func TestSolveHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := Solve(ctx, ancestryProgram, "ancestor", 2)
	assert.Error(t, err)
}

func TestSolveIsStatelessAcrossCalls(t *testing.T) {
	_, err := Solve(context.Background(), ancestryProgram, "ancestor", 2)
	require.NoError(t, err)

	// A second, unrelated program must not see facts from the first call.
	atoms, err := Solve(context.Background(), `Decl lonely(X). lonely(/nobody).`, "lonely", 1)
	require.NoError(t, err)
	require.Len(t, atoms, 1)
	val, err := AtomArg(atoms[0].Args[0])
	require.NoError(t, err)
	assert.Equal(t, "/nobody", val)
}
