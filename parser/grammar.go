package parser

import (
	"strings"

	"github.com/Taskkill/monolog/term"
)

// The AST below mirrors standard Prolog operator precedence, expressed as
// nested participle grammar levels (disjunction binds weaker than
// conjunction, which binds weaker than prefix negation): goalNode >
// conjNode > negNode > primaryNode. Each level folds its optional
// repeated tail into a right-associative chain of the corresponding
// term.Term connective in the *.toTerm() methods below.

type program struct {
	Clauses []*clauseNode `parser:"@@*"`
}

type clauseNode struct {
	Head *compoundNode `parser:"@@"`
	Body *goalNode     `parser:"( Arrow @@ )? Dot"`
}

func (c *clauseNode) toClause() term.Clause {
	head := c.Head.toTerm()
	if c.Body == nil {
		return term.Fact(head)
	}
	return term.Rule(head, c.Body.toTerm())
}

// queryNode is the entry production used for a standalone goal typed at
// the REPL prompt; the trailing "." is accepted but not mandatory, since
// a query is not a stored clause.
type queryNode struct {
	Goal *goalNode `parser:"@@ Dot?"`
}

type goalNode struct {
	First *conjNode   `parser:"@@"`
	Rest  []*conjNode `parser:"( Semi @@ )*"`
}

func (g *goalNode) toTerm() term.Term {
	terms := make([]term.Term, 0, 1+len(g.Rest))
	terms = append(terms, g.First.toTerm())
	for _, r := range g.Rest {
		terms = append(terms, r.toTerm())
	}
	return foldRight(terms, term.Disjunction)
}

type conjNode struct {
	First *negNode   `parser:"@@"`
	Rest  []*negNode `parser:"( Comma @@ )*"`
}

func (c *conjNode) toTerm() term.Term {
	terms := make([]term.Term, 0, 1+len(c.Rest))
	terms = append(terms, c.First.toTerm())
	for _, r := range c.Rest {
		terms = append(terms, r.toTerm())
	}
	return foldRight(terms, term.Conjunction)
}

type negNode struct {
	Negated bool         `parser:"@Neg?"`
	Term    *primaryNode `parser:"@@"`
}

func (n *negNode) toTerm() term.Term {
	t := n.Term.toTerm()
	if n.Negated {
		return term.Negation(t)
	}
	return t
}

// primaryNode covers everything that can appear as a data term: a
// compound (including bare atoms, i.e. zero-arity compounds), a logic
// variable or the wildcard, a list, or a ground literal.
type primaryNode struct {
	Number   *int64        `parser:"(  @Number"`
	Str      *string       `parser:" | @String"`
	VarName  *string       `parser:" | @Var"`
	List     *listNode     `parser:" | @@"`
	Compound *compoundNode `parser:" | @@ )"`
}

func (p *primaryNode) toTerm() term.Term {
	switch {
	case p.Number != nil:
		return term.Num(*p.Number)
	case p.Str != nil:
		return term.Text(unquoteString(*p.Str))
	case p.VarName != nil:
		if *p.VarName == "_" {
			return term.Wildcard()
		}
		return term.Var(*p.VarName, 0)
	case p.List != nil:
		return p.List.toTerm()
	case p.Compound != nil:
		return p.Compound.toTerm()
	default:
		// Unreachable given the grammar's exhaustive alternation.
		return term.Atom("")
	}
}

type compoundNode struct {
	Functor string        `parser:"( @Atom | @QuotedAtom )"`
	Args    []*primaryNode `parser:"( LParen @@ ( Comma @@ )* RParen )?"`
}

func (c *compoundNode) toTerm() term.Term {
	functor := unquoteAtom(c.Functor)
	if len(c.Args) == 0 {
		return term.Atom(functor)
	}
	args := make([]term.Term, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.toTerm()
	}
	return term.Compound(functor, args...)
}

// listNode desugars "[e1, e2, ... | tail]" into nested '.'/2 compounds
// terminated by '[]'/0 (or by tail, when given), per spec.md §3's note
// that list sugar is "conventional shapes... represented as ordinary
// compounds".
type listNode struct {
	Elems []*primaryNode `parser:"LBrack ( @@ ( Comma @@ )* )?"`
	Tail  *primaryNode   `parser:"( Pipe @@ )? RBrack"`
}

func (l *listNode) toTerm() term.Term {
	tail := term.Atom("[]")
	if l.Tail != nil {
		tail = l.Tail.toTerm()
	}
	for i := len(l.Elems) - 1; i >= 0; i-- {
		tail = term.Compound(".", l.Elems[i].toTerm(), tail)
	}
	return tail
}

// foldRight builds a right-associative chain of the binary connective op
// over terms, e.g. [a, b, c] -> op(a, op(b, c)). A single element folds
// to itself.
func foldRight(terms []term.Term, op func(left, right term.Term) term.Term) term.Term {
	if len(terms) == 1 {
		return terms[0]
	}
	return op(terms[0], foldRight(terms[1:], op))
}

func unquoteString(s string) string {
	inner := s[1 : len(s)-1]
	return strings.ReplaceAll(inner, `\"`, `"`)
}

func unquoteAtom(s string) string {
	if len(s) < 2 || s[0] != '\'' {
		return s
	}
	inner := s[1 : len(s)-1]
	return strings.ReplaceAll(inner, `\'`, `'`)
}
