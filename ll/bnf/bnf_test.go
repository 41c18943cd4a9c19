package bnf

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/ll1/ll"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const parens = `<S> ::= "(" <L> ")" | "a"
    <L> ::= <S> <L> | ""`

func TestParseGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.bnf")
	defer teardown()
	//
	g, err := Parse("Parens", parens)
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	expected := []string{
		`<S> ::= '(' <L> ')'`,
		`<S> ::= 'a'`,
		`<L> ::= <S> <L>`,
		`<L> ::= ε`,
	}
	if g.Size() != len(expected) {
		t.Fatalf("expected %d rules, have %d", len(expected), g.Size())
	}
	for i, r := range g.Rules() {
		if r.String() != expected[i] {
			t.Errorf("expected rule %d to be %s, is %s", i, expected[i], r)
		}
	}
	if g.Start() != (ll.NonTerminal{Name: "S"}) {
		t.Errorf("expected start symbol S, is %v", g.Start())
	}
}

func TestLiterals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.bnf")
	defer teardown()
	//
	g, err := Parse("Literals", `<S> ::= "a|b" <T>

<T> ::= "" "c" | `)
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 3 {
		t.Fatalf("expected 3 rules, have %d", g.Size())
	}
	r := g.Rule(0)
	if r.Len() != 4 || r.At(1) != ll.T('|') {
		t.Errorf("expected '|' inside literal to be a terminal, have %v", r)
	}
	if r := g.Rule(1); r.Len() != 1 || r.At(0) != ll.T('c') {
		t.Errorf("expected ε to be dropped from %v", r)
	}
	if !g.Rule(2).IsEpsilon() {
		t.Errorf("expected empty alternative to be an epsilon-production, is %v", g.Rule(2))
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.bnf")
	defer teardown()
	//
	cases := []struct {
		input string
		line  int
		msg   string
	}{
		{`<S> "a"`, 1, "rule separators"},
		{`<S> ::= "a" ::= "b"`, 1, "rule separators"},
		{"<S> ::= \"a\"\n\"b\" ::= <S>", 2, "no non-terminal"},
		{`::= "a"`, 1, "no non-terminal"},
		{`<S> <T> ::= "a"`, 1, "single non-terminal"},
		{`<> ::= "a"`, 1, "empty non-terminal"},
		{`<S> ::= "a" | "b`, 1, "unterminated literal"},
		{`<S> ::= "abc`, 1, "unterminated literal"},
		{`<S> ::= <T`, 1, "unterminated non-terminal"},
		{`<S> ::= "a" ? <S>`, 1, "unexpected input"},
	}
	for i, c := range cases {
		_, err := Parse("Broken", c.input)
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("case #%d: expected syntax error, got %v", i, err)
			continue
		}
		t.Logf("case #%d: %v", i, err)
		if serr.Line != c.line {
			t.Errorf("case #%d: expected error at line %d, is at line %d", i, c.line, serr.Line)
		}
		if !strings.Contains(serr.Msg, c.msg) {
			t.Errorf("case #%d: expected message containing %q, is %q", i, c.msg, serr.Msg)
		}
	}
}

func TestUndefinedNonTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.bnf")
	defer teardown()
	//
	_, err := Parse("Undefined", `<S> ::= <X> "a"`)
	var gerr *ll.GrammarError
	if !errors.As(err, &gerr) {
		t.Errorf("expected grammar error, got %v", err)
	}
	if _, err := Parse("Empty", "\n  \n"); !errors.As(err, &gerr) {
		t.Errorf("expected grammar error for empty input, got %v", err)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.bnf")
	defer teardown()
	//
	g1, err := Parse("Parens", parens)
	if err != nil {
		t.Fatal(err)
	}
	text, err := Format(g1)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("\n%s", text)
	g2, err := Parse("Parens", text)
	if err != nil {
		t.Fatal(err)
	}
	if g1.Size() != g2.Size() {
		t.Fatalf("expected %d rules after round trip, have %d", g1.Size(), g2.Size())
	}
	for i := range g1.Rules() {
		if g1.Rule(i).String() != g2.Rule(i).String() {
			t.Errorf("rule %d differs after round trip: %v vs %v", i, g1.Rule(i), g2.Rule(i))
		}
	}
	b := ll.NewGrammarBuilder("Quote")
	b.LHS("S").T('"').End()
	g3, _ := b.Grammar()
	if _, err := Format(g3); err == nil {
		t.Errorf("expected error when formatting a '\"' terminal")
	}
}
