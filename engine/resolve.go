package engine

import (
	"context"

	"github.com/Taskkill/monolog/term"
	"github.com/Taskkill/monolog/unify"
)

// emit is called with each substitution the search finds. It returns true
// to keep searching for further answers, or false to stop the search
// immediately — the mechanism by which a consumer that has stopped
// demanding answers causes every pending choice point to unwind without
// producing any more clause instances (spec.md §4.4 "Resource release on
// early stop").
type emit func(term.Substitution) bool

// solveGoal is a structural recursion on goal shape, implementing
// spec.md §4.4. It returns false if the search was told to stop (by emit
// returning false, or by ctx being done) partway through, and true if
// this goal's branch was explored to exhaustion.
func solveGoal(ctx context.Context, snap *Snapshot, occurs bool, scopes *scopeCounter, goal term.Term, sub term.Substitution, next emit) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	switch goal.Kind {
	case term.KindConjunction:
		left, right := goal.Args[0], goal.Args[1]
		return solveGoal(ctx, snap, occurs, scopes, left, sub, func(s1 term.Substitution) bool {
			return solveGoal(ctx, snap, occurs, scopes, right, s1, next)
		})

	case term.KindDisjunction:
		left, right := goal.Args[0], goal.Args[1]
		if !solveGoal(ctx, snap, occurs, scopes, left, sub, next) {
			return false
		}
		return solveGoal(ctx, snap, occurs, scopes, right, sub, next)

	case term.KindNegation:
		return solveNegation(ctx, snap, occurs, scopes, goal.Args[0], sub, next)

	case term.KindVar:
		walked := term.Walk(goal, sub)
		if walked.Kind != term.KindCompound && walked.Kind != term.KindAtom {
			// Not a callable goal: an ordinary failure (spec.md §4.4,
			// §7), not an error — the branch simply yields nothing.
			return true
		}
		return solvePredicate(ctx, snap, occurs, scopes, walked, sub, next)

	case term.KindAtom, term.KindCompound:
		return solvePredicate(ctx, snap, occurs, scopes, goal, sub, next)

	default:
		// Num, Text, Wildcard: not callable, same as an unbound variable
		// resolving to a non-callable term. Ordinary failure, not a crash
		// (spec.md §7, "Unbound goal").
		return true
	}
}

// solveNegation implements negation as failure: solve inner under sub,
// discarding any bindings it produces; Negation succeeds exactly once
// (yielding sub unchanged) iff inner produced zero answers (spec.md §4.4).
func solveNegation(ctx context.Context, snap *Snapshot, occurs bool, scopes *scopeCounter, inner term.Term, sub term.Substitution, next emit) bool {
	found := false
	solveGoal(ctx, snap, occurs, scopes, inner, sub, func(term.Substitution) bool {
		found = true
		return false // one answer is enough to know the negation fails
	})

	select {
	case <-ctx.Done():
		return false
	default:
	}

	if found {
		return true // negation fails; this branch is simply exhausted
	}
	return next(sub)
}

// solvePredicate resolves a predicate goal (an Atom or Compound) against
// every matching clause in the knowledge base snapshot, in insertion
// order (spec.md §4.4, "naive first-match", no indexing beyond
// functor/arity).
func solvePredicate(ctx context.Context, snap *Snapshot, occurs bool, scopes *scopeCounter, goal term.Term, sub term.Substitution, next emit) bool {
	names := &nameSource{counter: scopes}
	for _, clause := range snap.ClausesFor(goal.Indicator()) {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		scope := int(scopes.next())
		renamed := renameClause(clause, scope, names)

		s2, ok := unify.Unify(goal, renamed.Head, sub, occurs)
		if !ok {
			continue
		}

		if renamed.IsFact() {
			if !next(s2) {
				return false
			}
			continue
		}

		if !solveGoal(ctx, snap, occurs, scopes, renamed.Body, s2, next) {
			return false
		}
	}
	return true
}
