package ll

import (
	"errors"
	"fmt"
)

// Errors for queries violating the contract of grammar analysis.
var (
	// ErrInvalidQuery is returned if #eof is subjected to an analysis. #eof is not
	// part of any right-hand side, so this is a programming error on the caller's side.
	ErrInvalidQuery = errors.New("invalid query for #eof")

	// ErrInvalidInput is returned for a FIRST-query of an empty symbol sequence.
	ErrInvalidInput = errors.New("invalid input: empty symbol sequence")

	// ErrNoFixpoint is returned if an analysis did not reach its fixed point
	// within the iteration limit.
	ErrNoFixpoint = errors.New("grammar analysis did not reach a fixed point")
)

// GrammarError is returned by the grammar builder for malformed rule sets.
type GrammarError struct {
	Grammar string // name of the grammar
	Msg     string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar %s: %s", e.Grammar, e.Msg)
}

// ConflictError is returned by the table generator if two different rules of
// a non-terminal compete for the same table cell. The grammar is not LL(1);
// it may be ambiguous or may need left-factoring or removal of left recursion.
type ConflictError struct {
	NonTerminal NonTerminal
	Lookahead   Symbol
	Existing    *Rule // rule already occupying the cell
	Conflicting *Rule // rule which tried to enter the cell
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("grammar is not LL(1): conflict for %v on lookahead %v between rule %d (%v) and rule %d (%v)",
		e.NonTerminal, e.Lookahead, e.Existing.Serial, e.Existing, e.Conflicting.Serial, e.Conflicting)
}
