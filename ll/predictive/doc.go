/*
Package predictive provides a table-driven LL(1) parser. Clients have to
use the tools of package ll to prepare the parse table. The parser uses the
table to create a leftmost derivation for a given input, provided through a
scanner interface.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse table from a grammar and use the
parser directly, without a code-generation or compile step.

Usage

Clients construct a grammar, either with a grammar builder or from text:

	g, err := bnf.Parse("Parens", `<S> ::= "(" <L> ")" | "a"
	                               <L> ::= <S> <L> | ""`)

The grammar is subjected to grammar analysis and table generation.

	table, err := ll.BuildTable(g)
	if err != nil { ... }  // grammar is not LL(1)

Finally parse some input:

	p := predictive.NewParser(table)
	tree, err := p.ParseString("(a(aa))")

A parser has a private stack and must not be used by more than one goroutine
at a time. Tables, however, are immutable and may be shared by parsers on any
number of goroutines.

Errors

The parser stops at the first syntax error and returns a *ParseError. There is
no error recovery. A ParseError tells the kind of error, the input position,
the symbols which would have been legal and the token found.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package predictive

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'll1.parser'.
func tracer() tracing.Trace {
	return tracing.Select("ll1.parser")
}
