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

func plusEngine() *engine.Engine {
	e := engine.New()
	n := term.Var("N", 0)
	m := term.Var("M", 0)
	r := term.Var("R", 0)
	e.Assert(term.Fact(term.Compound("plus", term.Atom("z"), n, n)))
	e.Assert(term.Rule(
		term.Compound("plus", term.Compound("s", n), m, term.Compound("s", r)),
		term.Compound("plus", n, m, r),
	))
	return e
}

// answers drains a Stream, resolving vars against each substitution, up to
// a cap to guard against runaway (possibly infinite) searches in tests.
func answers(t *testing.T, st *engine.Stream, vars []term.Term, limit int) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	defer st.Close()

	var out []string
	for len(out) < limit && st.Next(ctx) {
		out = append(out, term.AnswerBindings(vars, st.Current()).String())
	}
	require.NoError(t, st.Err())
	return out
}

func TestPlusForward(t *testing.T) {
	e := plusEngine()
	r := term.Var("R", 0)
	goal := term.Compound("plus",
		term.Compound("s", term.Compound("s", term.Atom("z"))),
		term.Compound("s", term.Atom("z")),
		r,
	)

	st := e.Solve(context.Background(), goal)
	out := answers(t, st, []term.Term{r}, 5)

	require.Len(t, out, 1)
	assert.Equal(t, "R = s(s(s(z)))", out[0])
}

func TestPlusCommutedWithOccursCheckStopsAtFirstAnswer(t *testing.T) {
	e := engine.New(engine.WithOccursCheck(true))
	n := term.Var("N", 0)
	m := term.Var("M", 0)
	r := term.Var("R", 0)
	e.Assert(term.Fact(term.Compound("plus", term.Atom("z"), n, n)))
	e.Assert(term.Rule(
		term.Compound("plus", term.Compound("s", n), m, term.Compound("s", r)),
		term.Compound("plus", n, m, r),
	))

	a := term.Var("A", 0)
	b := term.Var("B", 0)
	goal := term.Compound("plus", a, b, b)

	st := e.Solve(context.Background(), goal)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.True(t, st.Next(ctx))
	assert.Equal(t, "A = z", term.AnswerBindings([]term.Term{a}, st.Current()).String())
}

func TestOneOccursCheckOnNoAnswers(t *testing.T) {
	e := engine.New(engine.WithOccursCheck(true))
	x := term.Var("X", 0)
	e.Assert(term.Fact(term.Compound("one", x, term.Compound("s", x))))

	a := term.Var("A", 0)
	goal := term.Compound("one", a, a)
	st := e.Solve(context.Background(), goal)
	out := answers(t, st, []term.Term{a}, 5)
	assert.Empty(t, out)
}

func TestOneOccursCheckOffCyclicAnswer(t *testing.T) {
	e := engine.New()
	x := term.Var("X", 0)
	e.Assert(term.Fact(term.Compound("one", x, term.Compound("s", x))))

	a := term.Var("A", 0)
	goal := term.Compound("one", a, a)
	st := e.Solve(context.Background(), goal)
	out := answers(t, st, []term.Term{a}, 5)
	require.Len(t, out, 1)
	assert.Equal(t, "A = s(A)", out[0])
}

func TestNegationAsFailure(t *testing.T) {
	e := engine.New()
	e.Assert(term.Fact(term.Compound("p", term.Atom("a"))))
	e.Assert(term.Fact(term.Compound("p", term.Atom("b"))))
	e.Assert(term.Fact(term.Compound("q", term.Atom("b"))))

	x := term.Var("X", 0)
	goal := term.Conjunction(
		term.Compound("p", x),
		term.Negation(term.Compound("q", x)),
	)

	st := e.Solve(context.Background(), goal)
	out := answers(t, st, []term.Term{x}, 5)
	require.Len(t, out, 1)
	assert.Equal(t, "X = a", out[0])
}

func TestDisjunctionOrdersLeftThenRight(t *testing.T) {
	e := engine.New()
	x := term.Var("X", 0)
	goal := term.Disjunction(
		term.Conjunction(term.Compound("=", x, term.Atom("a")), term.Atom("true")),
		term.Conjunction(term.Compound("=", x, term.Atom("b")), term.Atom("true")),
	)
	// "=" and "true" are not builtins in this engine (no arithmetic/builtin
	// predicates per spec.md Non-goals); express the same shape using
	// ordinary facts instead so the ordering law is exercised without
	// relying on anything the engine doesn't provide.
	e.Assert(term.Fact(term.Compound("eq", x, x)))

	goal = term.Disjunction(
		term.Compound("eq", term.Atom("a"), x),
		term.Compound("eq", term.Atom("b"), x),
	)
	st := e.Solve(context.Background(), goal)
	out := answers(t, st, []term.Term{x}, 5)
	require.Equal(t, []string{"X = a", "X = b"}, out)
}

func TestVariableAsGoalFailsWhenUncallable(t *testing.T) {
	e := engine.New()
	e.Assert(term.Fact(term.Atom("ready")))

	goal := term.Var("G", 0) // unbound: not a callable goal
	st := e.Solve(context.Background(), goal)
	out := answers(t, st, []term.Term{}, 5)
	assert.Empty(t, out)
}

func TestVariableAsGoalDispatchesWhenBoundToCompound(t *testing.T) {
	e := engine.New()
	e.Assert(term.Fact(term.Atom("ready")))

	g := term.Var("G", 0)
	goal := term.Conjunction(term.Compound("eqatom", g), g)
	e.Assert(term.Fact(term.Compound("eqatom", term.Atom("ready"))))

	st := e.Solve(context.Background(), goal)
	out := answers(t, st, []term.Term{g}, 5)
	require.Len(t, out, 1)
	assert.Equal(t, "G = ready", out[0])
}

func TestNonCallableLiteralGoalsFailWithoutCrashing(t *testing.T) {
	e := engine.New()
	e.Assert(term.Fact(term.Atom("ready")))

	for name, goal := range map[string]term.Term{
		"number":   term.Num(5),
		"text":     term.Text("x"),
		"wildcard": term.Wildcard(),
	} {
		t.Run(name, func(t *testing.T) {
			st := e.Solve(context.Background(), goal)
			out := answers(t, st, []term.Term{}, 5)
			assert.Empty(t, out)
			assert.NoError(t, st.Err())
		})
	}
}

func TestEarlyStopReleasesChoicePoints(t *testing.T) {
	e := plusEngine()
	r := term.Var("R", 0)
	goal := term.Compound("plus",
		term.Compound("s", term.Compound("s", term.Atom("z"))),
		term.Compound("s", term.Atom("z")),
		r,
	)

	st := e.Solve(context.Background(), goal)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.True(t, st.Next(ctx))

	done := make(chan struct{})
	go func() {
		st.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not release the stream's goroutine in time")
	}
}

func TestRenamingKeepsRecursiveClauseInstancesDisjoint(t *testing.T) {
	e := plusEngine()
	r := term.Var("R", 0)
	goal := term.Compound("plus",
		term.Compound("s", term.Compound("s", term.Compound("s", term.Atom("z")))),
		term.Atom("z"),
		r,
	)
	st := e.Solve(context.Background(), goal)
	out := answers(t, st, []term.Term{r}, 5)
	require.Len(t, out, 1)
	assert.Equal(t, "R = s(s(s(z)))", out[0])
}
