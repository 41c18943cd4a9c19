package predictive

import (
	"fmt"

	"github.com/npillmayer/ll1"
	"github.com/npillmayer/ll1/ll"
)

// ErrorKind classifies parse errors.
type ErrorKind int

// Kinds of parse errors.
const (
	// Mismatch: the input character is not the one expected. This includes
	// characters which are not terminals of the grammar at all.
	Mismatch ErrorKind = iota + 1
	// NoRule: the parse table has no rule for the non-terminal on top of the stack
	// and the current input character.
	NoRule
	// UnexpectedEnd: input ended, but the stack demands more input.
	UnexpectedEnd
	// StackExhausted: the derivation is complete, but there is input left.
	StackExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case Mismatch:
		return "mismatch"
	case NoRule:
		return "no rule"
	case UnexpectedEnd:
		return "unexpected end of input"
	case StackExhausted:
		return "input after end of derivation"
	}
	return "unknown error"
}

// ParseError is returned by the parser for input which is not a sentence of
// the grammar.
type ParseError struct {
	Kind        ErrorKind
	NonTerminal ll.NonTerminal // non-terminal on top of stack, if any
	Expected    []ll.Symbol    // symbols which would have been legal
	Found       ll.Symbol      // input symbol, #eof at end of input
	Token       ll1.Token      // input token
	Pos         uint64         // input position of the token
	StackDepth  int            // size of the parse stack, #eof included
}

func (e *ParseError) Error() string {
	at := ""
	if e.NonTerminal.Name != "" {
		at = fmt.Sprintf(" while expanding %v", e.NonTerminal)
	}
	return fmt.Sprintf("syntax error at position %d%s: %s, expected one of %v, found %v (stack depth %d)",
		e.Pos, at, e.Kind, e.Expected, e.Found, e.StackDepth)
}
