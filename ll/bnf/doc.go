/*
Package bnf reads grammars from a small BNF-like notation.

Every line of input holds one rule. Non-terminals are enclosed in angle
brackets, terminals are string literals in double quotes, where every
character of a literal is a terminal of its own. The empty literal denotes
epsilon. Alternatives for the same non-terminal are separated by '|'.

    <S> ::= "(" <L> ")" | "a"
    <L> ::= <S> <L> | ""

The left-hand side of the first rule is the start symbol. Blank lines are
ignored. A '|' inside a literal is a terminal and does not separate
alternatives.

Malformed input results in a *SyntaxError, carrying line and column of the
offending input.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package bnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'll1.bnf'.
func tracer() tracing.Trace {
	return tracing.Select("ll1.bnf")
}
