/*
Command llrepl is an interactive command line tool for LL(1) grammars.

It reads a grammar in BNF notation (see package ll/bnf), prints its predictive
parse table and then reads input lines. Every line is parsed as a sentence of
the grammar and the resulting parse tree is printed to the terminal. Lines
starting with a colon are commands:

    :table        print the parse table
    :rules        list the rules of the grammar
    :first <N>    print FIRST(N)
    :follow <N>   print FOLLOW(N)
    :quit         leave llrepl

Without flag -grammar, llrepl uses a grammar for balanced parentheses:

    <S> ::= "(" <L> ")" | "a"
    <L> ::= <S> <L> | ""

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'll1.repl'
func tracer() tracing.Trace {
	return tracing.Select("ll1.repl")
}
