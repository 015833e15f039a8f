package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taskkill/monolog/term"
)

func TestWalkShallow(t *testing.T) {
	x := term.Var("X", 0)
	y := term.Var("Y", 0)
	sub := term.Empty().Bind(x, y).Bind(y, term.Compound("s", term.Var("Z", 0)))

	walked := term.Walk(x, sub)
	// Walk is shallow: it stops at the compound, it does not descend into it.
	assert.Equal(t, term.KindCompound, walked.Kind)
	assert.Equal(t, "s", walked.Functor)
}

func TestResolveDeep(t *testing.T) {
	x := term.Var("X", 0)
	z := term.Var("Z", 0)
	sub := term.Empty().Bind(x, term.Compound("s", z)).Bind(z, term.Atom("z"))

	resolved := term.Resolve(x, sub)
	assert.Equal(t, "s(z)", resolved.String())
}

func TestResolveCyclicBindingStopsAtRecurrence(t *testing.T) {
	x := term.Var("X", 0)
	sub := term.Empty().Bind(x, term.Compound("s", x))

	resolved := term.Resolve(x, sub)
	assert.Equal(t, "s(X)", resolved.String())
}

func TestOccurs(t *testing.T) {
	x := term.Var("X", 0)
	sub := term.Empty()
	cyclic := term.Compound("s", x)
	assert.True(t, term.Occurs(x, cyclic, sub))
	assert.False(t, term.Occurs(x, term.Compound("s", term.Var("Y", 0)), sub))
}

func TestAnswerBindingsSortedByName(t *testing.T) {
	b := term.Var("B", 0)
	a := term.Var("A", 0)
	sub := term.Empty().Bind(a, term.Atom("z")).Bind(b, term.Num(1))

	bindings := term.AnswerBindings([]term.Term{b, a}, sub)
	require.Len(t, bindings, 2)
	assert.Equal(t, "A", bindings[0].Name)
	assert.Equal(t, "B", bindings[1].Name)
	assert.Equal(t, "A = z, B = 1", bindings.String())
}

func TestBindIsPersistent(t *testing.T) {
	x := term.Var("X", 0)
	sub1 := term.Empty()
	sub2 := sub1.Bind(x, term.Atom("a"))

	assert.Equal(t, 0, sub1.Len())
	assert.Equal(t, 1, sub2.Len())
}
