/*
Package ll implements prerequisites for LL(1) predictive parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals are
single characters. Grammars may contain epsilon-productions.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("S").T('(').N("L").T(')').End()  // S  ->  ( L )
    b.LHS("S").T('a').End()                // S  ->  a
    b.LHS("L").N("S").N("L").End()         // L  ->  S L
    b.LHS("L").Epsilon()                   // L  ->
    g, err := b.Grammar()

This results in the following grammar:

   g.Dump()

   0: <S> ::= '(' <L> ')'
   1: <S> ::= 'a'
   2: <L> ::= <S> <L>
   3: <L> ::= ε

The first rule's left-hand side is the start symbol. Grammars may as well be
read from text, see package bnf.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LLAnalysis object, which determines all
epsilon-derivable non-terminals and computes FIRST and FOLLOW sets. All three
are computed as fixed points over the complete grammar, so recursive
and mutually recursive non-terminals are handled without risk of looping.

    ga, err := ll.Analysis(g)
    ga.Grammar().EachNonTerminal(
        func(A ll.NonTerminal) interface{} {                    // ad-hoc mapper function
            fmt.Printf("FIRST(%v) = %v\n", A, ga.FirstOf(A))   // get FIRST-set for A
            return nil
        })

    // Output:
    FIRST(<S>) = ['(' 'a']
    FIRST(<L>) = ['(' 'a']

Parser Construction

Using grammar analysis as input, the predictive parse table is constructed.
A table maps pairs (lookahead, non-terminal) to the unique rule to expand.
If two rules compete for a table cell, the grammar is not LL(1) and table
construction fails with a ConflictError.

    gen := ll.NewTableGenerator(ga)
    table, err := gen.CreateTable()

Tables are immutable and may be shared by any number of parsers, see package
predictive.

Configuration

If configuration key "ll1.trace-table" is set, every table entry is traced
during table construction.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'll1.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("ll1.grammar")
}
