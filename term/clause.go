package term

import "strings"

// Clause is a stored knowledge-base entry: either a Fact (a bare head) or
// a Rule (a head plus a body goal). Clause is the unit the parser hands to
// the knowledge base and the unit the renamer copies (spec.md §3).
type Clause struct {
	Head Term // always KindCompound or KindAtom
	Body Term // zero value for a Fact; isRule, not Body, tells the two apart
	isRule bool
}

// Fact constructs a fact clause with the given head.
func Fact(head Term) Clause {
	return Clause{Head: head}
}

// Rule constructs a rule clause with the given head and body.
func Rule(head, body Term) Clause {
	return Clause{Head: head, Body: body, isRule: true}
}

// IsFact reports whether c is a Fact (no body).
func (c Clause) IsFact() bool { return !c.isRule }

// IsRule reports whether c is a Rule (has a body).
func (c Clause) IsRule() bool { return c.isRule }

// Indicator returns the functor/arity of the clause head.
func (c Clause) Indicator() string { return c.Head.Indicator() }

// String renders the clause as "head." or "head :- body.".
func (c Clause) String() string {
	var sb strings.Builder
	sb.WriteString(c.Head.String())
	if c.isRule {
		sb.WriteString(" :- ")
		sb.WriteString(c.Body.String())
	}
	sb.WriteByte('.')
	return sb.String()
}

// Vars returns, in first-occurrence order, every distinct KindVar
// appearing in the clause (head and body). Wildcards are excluded since
// each is independently fresh and never named. The renamer does not call
// it: renameTerm builds its own name→fresh-var mapping as it walks.
func (c Clause) Vars() []Term {
	c2 := &varCollector{seen: map[VarID]bool{}}
	c2.walk(c.Head)
	if c.isRule {
		c2.walk(c.Body)
	}
	return c2.order
}
