/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the tokenizer interface of package scanner.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing literals and regular expressions.
Please refer to the lexmachine documentation on how to instruct lexmachine.

	var literals []string       // The tokens representing literal strings
	var tokenIds map[string]int // A map from the token names to their int IDs

	init := func(lexer *lexmachine.Lexer) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   token
	}

Having that, clients use `NewLMAdapter` to wrap lexmachine into a scanner.Tokenizer.
NewLMAdapter will return an error if compiling the DFA failed.

	LM, err := NewLMAdapter(init, literals, tokenIds)
	if err != nil {
		// do error handling
	}

A scanner is instantiated for each concrete input sequence.

	scan, err := LM.Scanner("input string to tokenize")

Tokens are read until EOF. Input which no pattern matches is reported to the
scanner's error handler and skipped.

Package bnf uses this adapter to read grammar definitions.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lexmach
