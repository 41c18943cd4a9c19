package ll1

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. For character-level input, as the
// predictive parser consumes it, the token type is the rune itself.
type TokType int

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for an opening parenthesis:
//
//    TokType = '('         // for character tokens the type is the rune
//    Lexeme  = "("         // lexeme how it appeared in the input stream
//    Value   = nil         // optional, set by the scanner
//    Span    = 7…8         // occured at position 7 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// node of a parse tree the parser tracks which input positions the node covers.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. A null span is
// neutral.
func (s Span) Extend(other Span) Span {
	if other.IsNull() {
		return s
	}
	if s.IsNull() {
		return other
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
