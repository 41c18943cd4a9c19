package scanner

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"a",
	"(a(aa))",
	"x y\tz",
	"äöü",
	"",
}

var tokenCounts = []int{1, 7, 5, 3, 0}
var tokenCountsNoSpace = []int{1, 7, 3, 3, 0}

func TestRunes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		for _, skip := range []bool{false, true} {
			sc := Runes(fmt.Sprintf("input #%d", i), strings.NewReader(input), SkipSpace(skip))
			token := sc.NextToken()
			count := 0
			for token.TokType() != EOF {
				t.Logf(" %6d | %4s | @%3d", token.TokType(), token.Lexeme(), token.Span().From())
				if token.Span().Len() != 1 {
					t.Errorf("expected token to span one rune, spans %v", token.Span())
				}
				token = sc.NextToken()
				count++
			}
			expected := tokenCounts[i]
			if skip {
				expected = tokenCountsNoSpace[i]
			}
			if count != expected {
				t.Errorf("expected token count for #%d (skip=%v) to be %d, is %d", i, skip, expected, count)
			}
			if sc.NextToken().TokType() != EOF {
				t.Errorf("expected tokenizer to keep returning EOF")
			}
		}
	}
}

func TestRunePositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.scanner")
	defer teardown()
	//
	sc := Runes("positions", strings.NewReader("a b"), SkipSpace(true))
	sc.NextToken()
	b := sc.NextToken()
	if b.Lexeme() != "b" || b.Span().From() != 2 {
		t.Errorf("expected 'b' at position 2, have %q at %d", b.Lexeme(), b.Span().From())
	}
	eof := sc.NextToken()
	if eof.TokType() != EOF || eof.Span().From() != 3 {
		t.Errorf("expected EOF at position 3, have %v", eof)
	}
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("broken")
}

func TestReadError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.scanner")
	defer teardown()
	//
	var reported error
	sc := Runes("failing", failingReader{})
	sc.SetErrorHandler(func(e error) { reported = e })
	if sc.NextToken().TokType() != EOF {
		t.Errorf("expected read error to end input")
	}
	if reported == nil {
		t.Errorf("expected read error to be reported")
	}
}
