package lexmach

import (
	"testing"

	"github.com/npillmayer/ll1/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	`<S>`,
	`<S> ::= "a" | <L>`,
	`  "x y" "" `,
	`<A>::=<B><C>`,
}

var tokenCounts = []int{1, 5, 2, 4}

const (
	tokNonTerm = iota + 1
	tokLiteral
	tokDefine
	tokAlt
)

var literals = []string{"::=", "|"}
var tokenIds = map[string]int{"::=": tokDefine, "|": tokAlt}

func makeAdapter(t *testing.T) *LMAdapter {
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`<[^<>]*>`), MakeToken("NONTERM", tokNonTerm))
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("LITERAL", tokLiteral))
		lexer.Add([]byte(`( |\t)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Fatal(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMUnconsumedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	sc, err := LM.Scanner(`<S> ? "a"`)
	if err != nil {
		t.Fatal(err)
	}
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	count := 0
	for token := sc.NextToken(); token.TokType() != scanner.EOF; token = sc.NextToken() {
		count++
	}
	if len(errs) != 1 {
		t.Errorf("expected 1 scanner error, have %d", len(errs))
	}
	if count != 2 {
		t.Errorf("expected 2 tokens around the error, have %d", count)
	}
}

func TestLMMissingLiteralID(t *testing.T) {
	init := func(lexer *lexmachine.Lexer) {}
	if _, err := NewLMAdapter(init, []string{"::="}, map[string]int{}); err == nil {
		t.Errorf("expected error for literal without token value")
	}
}
