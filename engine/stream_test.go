package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taskkill/monolog/engine"
	"github.com/Taskkill/monolog/term"
)

func TestStreamExhaustionReturnsFalseWithNoError(t *testing.T) {
	e := engine.New()
	e.Assert(term.Fact(term.Atom("a")))

	st := e.Solve(context.Background(), term.Atom("a"))
	defer st.Close()

	ctx := context.Background()
	require.True(t, st.Next(ctx))
	require.False(t, st.Next(ctx))
	assert.NoError(t, st.Err())
}

func TestStreamFailsSilentlyOnNoMatchingClause(t *testing.T) {
	e := engine.New()
	st := e.Solve(context.Background(), term.Atom("nope"))
	defer st.Close()

	assert.False(t, st.Next(context.Background()))
	assert.NoError(t, st.Err())
}

func TestStreamNextRespectsContextDeadline(t *testing.T) {
	e := engine.New()
	// Infinite recursion: loop :- loop. Never yields an answer, never
	// terminates; Next must still return once its own ctx expires.
	e.Assert(term.Rule(term.Atom("loop"), term.Atom("loop")))

	st := e.Solve(context.Background(), term.Atom("loop"))
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ok := st.Next(ctx)
	assert.False(t, ok)
	assert.Error(t, st.Err())
}

func TestStreamCloseIsIdempotent(t *testing.T) {
	e := engine.New()
	e.Assert(term.Fact(term.Atom("a")))

	st := e.Solve(context.Background(), term.Atom("a"))
	assert.NoError(t, st.Close())
	assert.NoError(t, st.Close())
}

func TestStreamCloseAfterExhaustionIsNoop(t *testing.T) {
	e := engine.New()
	e.Assert(term.Fact(term.Atom("a")))

	st := e.Solve(context.Background(), term.Atom("a"))
	require.True(t, st.Next(context.Background()))
	require.False(t, st.Next(context.Background()))
	assert.NoError(t, st.Close())
}

func TestStreamCurrentHoldsLastAnswerUntilNextAdvance(t *testing.T) {
	e := engine.New()
	e.Assert(term.Fact(term.Compound("p", term.Atom("a"))))
	e.Assert(term.Fact(term.Compound("p", term.Atom("b"))))

	x := term.Var("X", 0)
	st := e.Solve(context.Background(), term.Compound("p", x))
	defer st.Close()

	ctx := context.Background()
	require.True(t, st.Next(ctx))
	first := term.AnswerBindings([]term.Term{x}, st.Current()).String()
	// Current is stable across repeated reads without an intervening Next.
	assert.Equal(t, first, term.AnswerBindings([]term.Term{x}, st.Current()).String())

	require.True(t, st.Next(ctx))
	second := term.AnswerBindings([]term.Term{x}, st.Current()).String()
	assert.NotEqual(t, first, second)
}

func TestSolveSnapshotsKBAtQueryStart(t *testing.T) {
	e := engine.New()
	e.Assert(term.Fact(term.Compound("p", term.Atom("a"))))

	x := term.Var("X", 0)
	st := e.Solve(context.Background(), term.Compound("p", x))
	defer st.Close()

	// Asserted after Solve was called: must not appear in this query's results.
	e.Assert(term.Fact(term.Compound("p", term.Atom("b"))))

	ctx := context.Background()
	require.True(t, st.Next(ctx))
	assert.Equal(t, "X = a", term.AnswerBindings([]term.Term{x}, st.Current()).String())
	assert.False(t, st.Next(ctx))
}
