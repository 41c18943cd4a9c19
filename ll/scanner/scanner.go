/*
Package scanner defines an interface for scanners to be used with the
predictive parser of package ll/predictive.

The predictive parser works on characters: every terminal of a grammar is a
single character. The default tokenizer therefore delivers one token per
rune of its input. An adapter for lexmachine lives in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/npillmayer/ll1"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'll1.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("ll1.scanner")
}

// EOF is the token type signalling the end of input. It is identical to
// text/scanner.EOF.
const EOF ll1.TokType = -1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() ll1.Token
	SetErrorHandler(func(error))
}

// RuneTokenizer is a tokenizer which creates a token for every rune of its
// input. The token type of a token is the rune. Create one with Runes.
type RuneTokenizer struct {
	sourceID  string
	reader    io.RuneReader
	pos       uint64      // position in the input, counted in runes
	done      bool        // input exhausted
	Error     func(error) // error handler
	skipSpace bool        // do not pass white space
}

var _ Tokenizer = (*RuneTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// Runes creates a tokenizer delivering the runes of input as tokens.
func Runes(sourceID string, input io.Reader, opts ...Option) *RuneTokenizer {
	t := &RuneTokenizer{sourceID: sourceID, Error: logError}
	if rr, ok := input.(io.RuneReader); ok {
		t.reader = rr
	} else {
		t.reader = bufio.NewReader(input)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *RuneTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface. After the input is exhausted,
// every call returns an EOF token. Read errors are reported to the error
// handler and end the input.
func (t *RuneTokenizer) NextToken() ll1.Token {
	for !t.done {
		r, _, err := t.reader.ReadRune()
		if err != nil {
			t.done = true
			if !errors.Is(err, io.EOF) {
				t.Error(fmt.Errorf("%s: %w", t.sourceID, err))
			}
			tracer().Debugf("%s: RuneTokenizer reached end of input", t.sourceID)
			break
		}
		pos := t.pos
		t.pos++
		if t.skipSpace && unicode.IsSpace(r) {
			continue
		}
		return MakeDefaultToken(ll1.TokType(r), string(r), ll1.Span{pos, pos + 1})
	}
	return MakeDefaultToken(EOF, "", ll1.Span{t.pos, t.pos})
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// rune tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   ll1.TokType
	lexeme string
	Val    interface{}
	span   ll1.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ ll1.TokType, lexeme string, span ll1.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of interface ll1.Token.
func (t DefaultToken) TokType() ll1.TokType {
	return t.kind
}

// Value is part of interface ll1.Token.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of interface ll1.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface ll1.Token.
func (t DefaultToken) Span() ll1.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.kind == EOF {
		return "#eof" + t.span.String()
	}
	return fmt.Sprintf("%q%v", t.lexeme, t.span)
}

// --- Scanner options for the rune tokenizer -------------------------------

// Option configures a rune tokenizer.
type Option func(t *RuneTokenizer)

// SkipSpace sets or clears option SkipSpace: do not pass white space runes
// to the parser.
func SkipSpace(b bool) Option {
	return func(t *RuneTokenizer) {
		t.skipSpace = b
	}
}
