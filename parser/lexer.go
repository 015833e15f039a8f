package parser

import "github.com/alecthomas/participle/v2/lexer"

// monologLexer tokenizes the Prolog-subset surface syntax documented for
// Monolog: atoms, variables, the wildcard, integers, double-quoted
// strings, and the punctuation used by compounds, lists, and the goal
// connectives. Longer punctuation (":-", "\+") is listed ahead of the
// single-character rules so the simple lexer's first-match-wins ordering
// never splits them.
var monologLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `%[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Arrow", Pattern: `:-`},
	{Name: "Neg", Pattern: `\\\+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "QuotedAtom", Pattern: `'(\\.|[^'\\])*'`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Var", Pattern: `[A-Z_][A-Za-z0-9_]*`},
	{Name: "Atom", Pattern: `[a-z][A-Za-z0-9_]*`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "LBrack", Pattern: `\[`},
	{Name: "RBrack", Pattern: `\]`},
	{Name: "Pipe", Pattern: `\|`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Semi", Pattern: `;`},
	{Name: "Dot", Pattern: `\.`},
})
