package term

import (
	"sort"
	"strings"
)

// VarID is the identity of a logic variable: the pair (name, scope-id).
// Two variables are the same logic variable iff their VarIDs are equal
// (spec.md §3).
type VarID struct {
	Name  string
	Scope int
}

func idOf(t Term) VarID { return VarID{Name: t.VarName, Scope: t.Scope} }

// Substitution is a finite mapping from variable identity to Term. It is
// a persistent (copy-on-write) map: Bind never mutates the receiver, so a
// substitution can be shared freely across choice points without an undo
// trail — the representation spec.md §9 calls out as the simpler of the
// two acceptable options.
//
// Invariants (spec.md §3): no variable maps to itself; with the occurs
// check enabled, no variable maps (transitively) to a term containing
// itself.
type Substitution struct {
	m map[VarID]Term
}

// Empty returns the empty substitution.
func Empty() Substitution { return Substitution{} }

// Bind returns a new substitution extending sub with v ↦ t. v must be a
// KindVar term after walking; callers are Unify and tests, never goal
// evaluation directly.
func (sub Substitution) Bind(v Term, t Term) Substitution {
	next := make(map[VarID]Term, len(sub.m)+1)
	for k, val := range sub.m {
		next[k] = val
	}
	next[idOf(v)] = t
	return Substitution{m: next}
}

// Lookup returns the term bound to id, if any.
func (sub Substitution) Lookup(id VarID) (Term, bool) {
	t, ok := sub.m[id]
	return t, ok
}

// Len reports the number of bindings.
func (sub Substitution) Len() int { return len(sub.m) }

// Walk dereferences t under sub until a non-variable or an unbound
// variable is reached. Walk is shallow: it does not recurse into compound
// arguments (spec.md §4.1).
func Walk(t Term, sub Substitution) Term {
	for t.Kind == KindVar {
		bound, ok := sub.Lookup(idOf(t))
		if !ok {
			return t
		}
		t = bound
	}
	return t
}

// Resolve walks t and then recursively resolves every sub-term, producing
// a fully dereferenced term suitable for display. It is used only when
// materializing an answer (spec.md §4.1) — resolution itself only ever
// needs the shallow Walk.
//
// With the occurs check disabled, a substitution can bind a variable to a
// term that (transitively) contains itself, e.g. X = s(X). Resolve detects
// a variable recurring on its own expansion path and renders that
// recurrence as the first variable of the chain of variable bindings that
// led into it, rather than expanding forever. A cyclic binding therefore
// displays as "X = s(X)" instead of overflowing the stack, and a query
// variable A bound to a renamed X with X = s(X) displays as "A = s(A)".
func Resolve(t Term, sub Substitution) Term {
	return resolveTracking(t, t, sub, map[VarID]Term{})
}

// shown is what a recurrence of t renders as: the first variable of the
// chain of variable bindings that led to t.
func resolveTracking(t, shown Term, sub Substitution, expanding map[VarID]Term) Term {
	if t.Kind == KindVar {
		id := idOf(t)
		if rec, ok := expanding[id]; ok {
			return rec
		}
		bound, ok := sub.Lookup(id)
		if !ok {
			return t
		}
		expanding[id] = shown
		defer delete(expanding, id)
		return resolveTracking(bound, shown, sub, expanding)
	}
	if t.Kind != KindCompound && t.Kind != KindNegation && t.Kind != KindConjunction && t.Kind != KindDisjunction {
		return t
	}
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = resolveTracking(a, a, sub, expanding)
	}
	t.Args = args
	return t
}

// Occurs reports whether v occurs (transitively, under sub) within t. It
// is the occurs check used by Unify when the occurs-check flag is enabled.
func Occurs(v Term, t Term, sub Substitution) bool {
	t = Walk(t, sub)
	switch t.Kind {
	case KindVar:
		return idOf(t) == idOf(v)
	case KindCompound, KindNegation, KindConjunction, KindDisjunction:
		for _, a := range t.Args {
			if Occurs(v, a, sub) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Binding is one (name, term) pair of an answer, with the term already
// resolved for display.
type Binding struct {
	Name  string
	Value Term
}

// Bindings is a sorted list of Binding, rendered as "Name = Value, ...".
// Adapted from trealla's substitution.go (bindings type, sorted by name).
type Bindings []Binding

func (bs Bindings) Len() int           { return len(bs) }
func (bs Bindings) Less(i, j int) bool { return bs[i].Name < bs[j].Name }
func (bs Bindings) Swap(i, j int)      { bs[i], bs[j] = bs[j], bs[i] }

func (bs Bindings) String() string {
	var sb strings.Builder
	for i, b := range bs {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.Name)
		sb.WriteString(" = ")
		sb.WriteString(b.Value.String())
	}
	return sb.String()
}

// AnswerBindings resolves each of vars (top-level query variables, all at
// scope 0) under sub and returns them sorted by name. Variables with no
// binding are displayed unbound, i.e. rendered as themselves.
func AnswerBindings(vars []Term, sub Substitution) Bindings {
	out := make(Bindings, 0, len(vars))
	for _, v := range vars {
		out = append(out, Binding{Name: v.VarName, Value: Resolve(v, sub)})
	}
	sort.Sort(out)
	return out
}
