// Package unify implements two-way unification of terms modulo a
// substitution, with an optional occurs check, per spec.md §4.2.
package unify

import "github.com/Taskkill/monolog/term"

// Unify attempts to unify a and b under sub, returning the extended
// substitution and true on success, or the original substitution and
// false on failure. occursCheck is the caller's current value of the
// process-wide, toggleable setting (see spec.md §4.2); the engine reads
// that setting once when a query starts and passes it to every call
// made for that query.
//
// a and b must not be goal-form terms (Negation, Conjunction,
// Disjunction); attempting to unify one is a programmer error and panics,
// per spec.md §4.2 ("Connective forms ... are not valid unification
// operands; attempting to unify them is a programmer error").
func Unify(a, b term.Term, sub term.Substitution, occursCheck bool) (term.Substitution, bool) {
	if a.IsGoalForm() || b.IsGoalForm() {
		panic("unify: goal-form term is not a valid unification operand")
	}

	a = term.Walk(a, sub)
	b = term.Walk(b, sub)

	switch {
	case a.Kind == term.KindWildcard || b.Kind == term.KindWildcard:
		// Wildcard binds to nothing; each instance is independent.
		return sub, true

	case a.Kind == term.KindVar && b.Kind == term.KindVar:
		if a.VarName == b.VarName && a.Scope == b.Scope {
			return sub, true
		}
		return bindVar(a, b, sub, occursCheck)

	case a.Kind == term.KindVar:
		return bindVar(a, b, sub, occursCheck)

	case b.Kind == term.KindVar:
		return bindVar(b, a, sub, occursCheck)

	case a.Kind != b.Kind:
		return sub, false

	case a.Kind == term.KindAtom:
		return sub, a.Functor == b.Functor

	case a.Kind == term.KindNum:
		return sub, a.Num == b.Num

	case a.Kind == term.KindText:
		return sub, a.Text == b.Text

	case a.Kind == term.KindCompound:
		if a.Functor != b.Functor || len(a.Args) != len(b.Args) {
			return sub, false
		}
		ext := sub
		for i := range a.Args {
			var ok bool
			ext, ok = Unify(a.Args[i], b.Args[i], ext, occursCheck)
			if !ok {
				return sub, false
			}
		}
		return ext, true

	default:
		return sub, false
	}
}

// bindVar binds variable v to term t, subject to the occurs check.
func bindVar(v, t term.Term, sub term.Substitution, occursCheck bool) (term.Substitution, bool) {
	if occursCheck && term.Occurs(v, t, sub) {
		return sub, false
	}
	return sub.Bind(v, t), true
}
