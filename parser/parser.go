// Package parser turns the Monolog surface syntax into the term.Clause/
// term.Term AST the engine package consumes (spec.md §6's "Input AST
// contract"). It is an external collaborator to the core, exactly as
// spec.md §1 describes: nothing in package engine imports package parser.
package parser

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"

	"github.com/Taskkill/monolog/term"
)

var (
	clauseParser = participle.MustBuild[clauseNode](
		participle.Lexer(monologLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
	queryParser = participle.MustBuild[queryNode](
		participle.Lexer(monologLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
	programParser = participle.MustBuild[program](
		participle.Lexer(monologLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
)

// ParseError is returned for any malformed input. It never crosses into
// package engine (spec.md §7: "ParseError ... raised by the external
// parser; the REPL prints and resumes. Never reaches the core").
type ParseError struct {
	Line, Column int
	Msg          string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse error: %s", e.Msg)
	}
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

func wrapParseError(err error) error {
	if err == nil {
		return nil
	}
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &ParseError{Line: pos.Line, Column: pos.Column, Msg: perr.Message()}
	}
	return &ParseError{Msg: err.Error()}
}

// ParseClause parses a single fact ("head.") or rule ("head :- body.").
func ParseClause(src string) (term.Clause, error) {
	node, err := clauseParser.ParseString("", src)
	if err != nil {
		return term.Clause{}, wrapParseError(err)
	}
	return node.toClause(), nil
}

// ParseGoal parses a single query goal, with an optional trailing ".".
func ParseGoal(src string) (term.Term, error) {
	node, err := queryParser.ParseString("", src)
	if err != nil {
		return term.Term{}, wrapParseError(err)
	}
	return node.Goal.toTerm(), nil
}

// ConsultText parses a sequence of clauses, in source order, the way a
// file full of facts and rules is loaded in one shot (mirrors the
// teacher's Prolog.ConsultText).
func ConsultText(src string) ([]term.Clause, error) {
	prog, err := programParser.ParseString("", src)
	if err != nil {
		return nil, wrapParseError(err)
	}
	clauses := make([]term.Clause, len(prog.Clauses))
	for i, c := range prog.Clauses {
		clauses[i] = c.toClause()
	}
	return clauses, nil
}

// ConsultFile reads path and parses it as a sequence of clauses (mirrors
// the teacher's Prolog.Consult, which takes a filesystem path).
func ConsultFile(path string) ([]term.Clause, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ConsultText(string(data))
}
