package engine

import (
	"fmt"

	"github.com/Taskkill/monolog/term"
)

// renameClause returns a fresh copy of c with every variable rewritten to
// carry scope, and every wildcard replaced by an independent, uniquely
// named, freshly-scoped variable (spec.md §4.3). It does not mutate c:
// Term and Clause share argument slices structurally, so renaming always
// builds new slices rather than writing through the original.
func renameClause(c term.Clause, scope int, freshNames *nameSource) term.Clause {
	mapping := make(map[term.VarID]term.Term)
	head := renameTerm(c.Head, scope, mapping, freshNames)
	if c.IsFact() {
		return term.Fact(head)
	}
	body := renameTerm(c.Body, scope, mapping, freshNames)
	return term.Rule(head, body)
}

func renameTerm(t term.Term, scope int, mapping map[term.VarID]term.Term, freshNames *nameSource) term.Term {
	switch t.Kind {
	case term.KindVar:
		id := term.VarID{Name: t.VarName, Scope: t.Scope}
		if fresh, ok := mapping[id]; ok {
			return fresh
		}
		fresh := term.Var(t.VarName, scope)
		mapping[id] = fresh
		return fresh

	case term.KindWildcard:
		// Each occurrence of "_" is independent, even within the same
		// clause instance, so every one gets its own generated name.
		return term.Var(freshNames.next(), scope)

	case term.KindCompound, term.KindNegation, term.KindConjunction, term.KindDisjunction:
		args := make([]term.Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = renameTerm(a, scope, mapping, freshNames)
		}
		t.Args = args
		return t

	default:
		return t
	}
}

// freshenWildcards rewrites every Wildcard occurrence in a submitted query
// goal into its own fresh, anonymous scope-0 variable, so that distinct
// "_" occurrences typed directly at the REPL are independent from one
// another, matching the treatment wildcards get inside stored clauses
// (spec.md §4.3, §9). Named query variables are left untouched: they stay
// at scope 0 under their original names, which is what lets the REPL
// display "Name = ..." for them.
func freshenWildcards(goal term.Term, freshNames *nameSource) term.Term {
	switch goal.Kind {
	case term.KindWildcard:
		return term.Var(freshNames.next(), 0)
	case term.KindCompound, term.KindNegation, term.KindConjunction, term.KindDisjunction:
		args := make([]term.Term, len(goal.Args))
		for i, a := range goal.Args {
			args[i] = freshenWildcards(a, freshNames)
		}
		goal.Args = args
		return goal
	default:
		return goal
	}
}

// nameSource hands out unique, unbindable-looking variable names for
// renamed wildcards, backed by the engine-wide scope counter so that two
// concurrently alive queries never generate colliding names.
type nameSource struct {
	counter *scopeCounter
}

func (n *nameSource) next() string {
	return fmt.Sprintf("_G%d", n.counter.next())
}
