package predictive

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/npillmayer/ll1"
	"github.com/npillmayer/ll1/ll"
	"github.com/npillmayer/ll1/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

//    S ::= ( L ) | a
//    L ::= S L   | ε
func parenTable(t *testing.T) *ll.Table {
	b := ll.NewGrammarBuilder("Parens")
	b.LHS("S").T('(').N("L").T(')').End()
	b.LHS("S").T('a').End()
	b.LHS("L").N("S").N("L").End()
	b.LHS("L").Epsilon()
	return buildTable(t, b)
}

//    S ::= a S | ε
func listTable(t *testing.T) *ll.Table {
	b := ll.NewGrammarBuilder("List")
	b.LHS("S").T('a').N("S").End()
	b.LHS("S").Epsilon()
	return buildTable(t, b)
}

func buildTable(t *testing.T, b *ll.GrammarBuilder) *ll.Table {
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	table, err := ll.BuildTable(g)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func parseError(t *testing.T, err error) *ParseError {
	if err == nil {
		t.Fatalf("expected parse error, input has been accepted")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a *ParseError, got %v", err)
	}
	t.Logf("error = %v", perr)
	return perr
}

func TestParseParens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.parser")
	defer teardown()
	//
	tree, err := NewParser(parenTable(t)).ParseString("(a(aa))")
	if err != nil {
		t.Fatal(err)
	}
	tree.Dump()
	expected := "S[( L[S[a] L[S[( L[S[a] L[S[a] L[]]] )] L[]]] )]"
	if tree.String() != expected {
		t.Errorf("expected tree %s, got %s", expected, tree.String())
	}
	if fmt.Sprint(tree.Derivation()) != "[0 2 1 2 0 2 1 2 1 3 3]" {
		t.Errorf("unexpected leftmost derivation %v", tree.Derivation())
	}
	if tree.Yield() != "(a(aa))" {
		t.Errorf("expected yield to equal the input, got %q", tree.Yield())
	}
	if tree.Size() != 18 {
		t.Errorf("expected tree to have 18 nodes, has %d", tree.Size())
	}
	root := tree.Node(tree.Root())
	if root.Span != (ll1.Span{0, 7}) {
		t.Errorf("expected root to span the input, is %v", root.Span)
	}
	if root.Rule != 0 {
		t.Errorf("expected root to be expanded by rule 0, is %d", root.Rule)
	}
	if fmt.Sprint(tree.Children(tree.Root())) != "[1 2 3]" {
		t.Errorf("unexpected children of root: %v", tree.Children(tree.Root()))
	}
	if p, ok := tree.Parent(2); !ok || p != tree.Root() {
		t.Errorf("expected root to be parent of node 2, is %d", p)
	}
	if _, ok := tree.Parent(tree.Root()); ok {
		t.Errorf("expected root to have no parent")
	}
	open := tree.Node(1)
	if open.Symbol != ll.T('(') || open.Token == nil || open.Span != (ll1.Span{0, 1}) {
		t.Errorf("expected node 1 to hold the opening parenthesis, is %v %v", open.Symbol, open.Span)
	}
	for id := 1; id < tree.Size(); id++ {
		p, _ := tree.Parent(id)
		found := false
		for _, ch := range tree.Children(p) {
			found = found || ch == id
		}
		if !found {
			t.Errorf("node %d is not a child of its parent %d", id, p)
		}
	}
}

func TestParseList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.parser")
	defer teardown()
	//
	parser := NewParser(listTable(t))
	tree, err := parser.ParseString("aaa")
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(tree.Derivation()) != "[0 0 0 1]" {
		t.Errorf("unexpected leftmost derivation %v", tree.Derivation())
	}
	tree, err = parser.ParseString("")
	if err != nil {
		t.Fatal(err)
	}
	if tree.String() != "S[]" {
		t.Errorf("expected empty input to derive S[], got %s", tree.String())
	}
}

func TestUnexpectedEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.parser")
	defer teardown()
	//
	_, err := NewParser(parenTable(t)).ParseString("(a")
	perr := parseError(t, err)
	if perr.Kind != UnexpectedEnd {
		t.Errorf("expected error kind %v, got %v", UnexpectedEnd, perr.Kind)
	}
	if !perr.Found.IsEOF() || perr.Pos != 2 {
		t.Errorf("expected error at end of input, is at %d: %v", perr.Pos, perr.Found)
	}
	if perr.NonTerminal.Name != "L" {
		t.Errorf("expected parser to be stuck at L, is at %v", perr.NonTerminal)
	}
}

func TestMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.parser")
	defer teardown()
	//
	parser := NewParser(listTable(t))
	_, err := parser.ParseString("aab")
	perr := parseError(t, err)
	if perr.Kind != Mismatch {
		t.Errorf("expected error kind %v, got %v", Mismatch, perr.Kind)
	}
	if perr.Pos != 2 || perr.Found != ll.T('b') {
		t.Errorf("expected mismatch of 'b' at position 2, is %v at %d", perr.Found, perr.Pos)
	}
	//
	b := ll.NewGrammarBuilder("AB")
	b.LHS("S").T('a').T('b').End()
	_, err = NewParser(buildTable(t, b)).ParseString("aa")
	perr = parseError(t, err)
	if perr.Kind != Mismatch || perr.Pos != 1 {
		t.Errorf("expected mismatch at position 1, got %v at %d", perr.Kind, perr.Pos)
	}
	if len(perr.Expected) != 1 || perr.Expected[0] != ll.T('b') {
		t.Errorf("expected parser to expect 'b', expects %v", perr.Expected)
	}
}

func TestNoRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.parser")
	defer teardown()
	//
	_, err := NewParser(parenTable(t)).ParseString(")")
	perr := parseError(t, err)
	if perr.Kind != NoRule {
		t.Errorf("expected error kind %v, got %v", NoRule, perr.Kind)
	}
	if perr.NonTerminal.Name != "S" || len(perr.Expected) != 2 {
		t.Errorf("expected S to expect '(' or 'a', is %v expecting %v", perr.NonTerminal, perr.Expected)
	}
	if perr.StackDepth != 2 {
		t.Errorf("expected stack to hold S and #eof, depth is %d", perr.StackDepth)
	}
}

func TestStackExhausted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.parser")
	defer teardown()
	//
	parser := NewParser(parenTable(t))
	for _, input := range []string{"a)", "aa", "(a)("} {
		_, err := parser.ParseString(input)
		perr := parseError(t, err)
		if perr.Kind != StackExhausted {
			t.Errorf("%q: expected error kind %v, got %v", input, StackExhausted, perr.Kind)
		}
		if perr.StackDepth != 1 {
			t.Errorf("%q: expected only #eof on the stack, depth is %d", input, perr.StackDepth)
		}
	}
}

func TestParseTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.parser")
	defer teardown()
	//
	parser := NewParser(parenTable(t))
	tree, err := parser.ParseTerminals([]ll.Terminal{ll.Char('('), ll.Char('a'), ll.Char(')')})
	if err != nil {
		t.Fatal(err)
	}
	if tree.Yield() != "(a)" {
		t.Errorf("expected yield (a), got %q", tree.Yield())
	}
	_, err = parser.ParseTerminals([]ll.Terminal{ll.Char('a'), ll.Epsilon})
	if !errors.Is(err, ll.ErrInvalidInput) {
		t.Errorf("expected epsilon to be rejected as input, got %v", err)
	}
	for _, r := range []rune{0xD800, -1, 0x110000} {
		_, err = parser.ParseTerminals([]ll.Terminal{ll.Char('('), ll.Char(r), ll.Char(')')})
		if !errors.Is(err, ll.ErrInvalidInput) {
			t.Errorf("expected %U to be rejected as input, got %v", r, err)
		}
	}
}

func TestSkipSpace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.parser")
	defer teardown()
	//
	tree, err := NewParser(parenTable(t)).ParseString("( a a )", scanner.SkipSpace(true))
	if err != nil {
		t.Fatal(err)
	}
	if tree.Yield() != "(aa)" {
		t.Errorf("expected white space to be skipped, yield is %q", tree.Yield())
	}
	if span := tree.Node(tree.Root()).Span; span != (ll1.Span{0, 7}) {
		t.Errorf("expected spans to count skipped runes, root span is %v", span)
	}
}

// counter counts the a's of a parse tree.
type counter struct{}

func (c counter) Reduce(A ll.NonTerminal, rule *ll.Rule, children []*RuleNode, extent ll1.Span, level int) interface{} {
	sum := 0
	for _, ch := range children {
		sum += ch.Value.(int)
	}
	return sum
}

func (c counter) Terminal(token ll1.Token, level int) interface{} {
	if token.Lexeme() == "a" {
		return 1
	}
	return 0
}

func TestWalk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.parser")
	defer teardown()
	//
	tree, err := NewParser(parenTable(t)).ParseString("(a(aa))")
	if err != nil {
		t.Fatal(err)
	}
	rnode := tree.Walk(counter{})
	if rnode.Value.(int) != 3 {
		t.Errorf("expected walk to count 3 a's, counted %v", rnode.Value)
	}
	if rnode.Symbol() != ll.N("S") || rnode.Extent != (ll1.Span{0, 7}) {
		t.Errorf("unexpected root node %v %v", rnode.Symbol(), rnode.Extent)
	}
}

func TestSharedTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.parser")
	defer teardown()
	//
	table := parenTable(t)
	inputs := []string{"a", "(a)", "(aa(a))", "((((a))))", "(a", ")"}
	var wg sync.WaitGroup
	results := make([]error, len(inputs))
	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			_, results[i] = NewParser(table).ParseString(input)
		}(i, input)
	}
	wg.Wait()
	for i, err := range results {
		if (err == nil) != (i < 4) {
			t.Errorf("%q: unexpected result %v", inputs[i], err)
		}
	}
}
