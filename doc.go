/*
Package ll1 is a toolbox for LL(1) predictive parsing.

It compiles a context-free grammar into a predictive parse table and uses
that table to drive a deterministic, stack-based parser. Parsers are
constructed on the fly, without a code-generation step. Package structure
is as follows:

■ ll: Package ll implements the grammar model, grammar analysis (nullable
symbols, FIRST- and FOLLOW-sets) and the construction of LL(1) parse tables.

■ ll/predictive: Package predictive implements the table-driven parser and
the parse trees it produces.

■ ll/bnf: Package bnf reads grammars from a small BNF-like notation.

■ ll/scanner: Package scanner defines the tokenizer interface the parser
reads its input from.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package ll1
