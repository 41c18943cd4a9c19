package predictive

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/ll1"
	"github.com/npillmayer/ll1/ll"
	"github.com/npillmayer/ll1/ll/scanner"
)

// Parser is an LL(1)-parser type. Create and initialize one with predictive.NewParser(...)
type Parser struct {
	table *ll.Table
	stack *arraystack.Stack // parser stack of stackitems
}

// We store pairs of grammar symbols and parse tree nodes on the stack.
type stackitem struct {
	sym  ll.Symbol
	node int // ID of the tree node for sym, -1 for #eof
}

// NewParser creates an LL(1) parser for a parse table.
func NewParser(table *ll.Table) *Parser {
	return &Parser{
		table: table,
		stack: arraystack.New(),
	}
}

// Parse starts a new parse, given a scanner tokenizing the input.
// It returns the parse tree if the input is a sentence of the grammar, or
// a *ParseError describing the first syntax error.
//
// The parser keeps a stack of grammar symbols, with #eof at the bottom and the
// start symbol on top of it. In every step it compares the top of stack with
// the current input character:
//
//   ▪ a terminal has to match the input character and is popped,
//   ▪ a non-terminal A is replaced by the right-hand side of the rule at
//     table cell (character, A), leftmost symbol on top,
//   ▪ #eof on top of the stack accepts, if the input is exhausted.
//
func (p *Parser) Parse(scan scanner.Tokenizer) (*Tree, error) {
	if p.table == nil {
		return nil, fmt.Errorf("LL(1)-parser not initialized")
	}
	g := p.table.Grammar()
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	tree := newTree(g)
	p.stack.Clear()
	p.stack.Push(stackitem{sym: ll.EOF, node: -1})
	root := tree.add(ll.NonTermSymbol(p.table.Start()), -1)
	p.stack.Push(stackitem{sym: ll.NonTermSymbol(p.table.Start()), node: root})
	token := scan.NextToken()
	la := lookahead(token)
	for {
		x, ok := p.stack.Peek()
		if !ok { // #eof is popped only on accept
			return nil, p.parseError(StackExhausted, ll.NonTerminal{}, nil, la, token)
		}
		tos := x.(stackitem)
		tracer().Debugf("TOS = %v, lookahead = %v", tos.sym, la)
		switch tos.sym.Kind() {
		case ll.EndKind:
			if la.IsEOF() {
				tracer().Infof("input accepted")
				tree.finish()
				return tree, nil
			}
			return nil, p.parseError(p.classify(StackExhausted, la), ll.NonTerminal{},
				[]ll.Symbol{ll.EOF}, la, token)
		case ll.TermKind:
			expected := []ll.Symbol{tos.sym}
			if la.IsEOF() {
				return nil, p.parseError(UnexpectedEnd, ll.NonTerminal{}, expected, la, token)
			}
			if la != tos.sym {
				return nil, p.parseError(Mismatch, ll.NonTerminal{}, expected, la, token)
			}
			p.stack.Pop()
			tree.match(tos.node, token)
			tracer().Debugf("matched %v", la)
			token = scan.NextToken()
			la = lookahead(token)
		case ll.NonTermKind:
			A, _ := tos.sym.NonTerminal()
			rule, ok := p.table.Lookup(la, A)
			if !ok {
				kind := NoRule
				if la.IsEOF() {
					kind = UnexpectedEnd
				}
				return nil, p.parseError(p.classify(kind, la), A, p.table.Expected(A), la, token)
			}
			tracer().Debugf("expand %v", rule)
			p.stack.Pop()
			children := tree.expand(tos.node, rule, token.Span().From())
			for i := len(children) - 1; i >= 0; i-- { // push RHS in reverse
				p.stack.Push(stackitem{sym: rule.At(i), node: children[i]})
			}
		}
	}
}

// ParseString parses a string, one character per terminal.
func (p *Parser) ParseString(input string, opts ...scanner.Option) (*Tree, error) {
	return p.Parse(scanner.Runes("string", strings.NewReader(input), opts...))
}

// ParseTerminals parses a sequence of terminals. Epsilon and characters which
// are not valid Unicode code points are not legal input symbols and result in
// an error wrapping ll.ErrInvalidInput.
func (p *Parser) ParseTerminals(input []ll.Terminal) (*Tree, error) {
	runes := make([]rune, len(input))
	for i, t := range input {
		if t.IsEpsilon() {
			return nil, fmt.Errorf("%w: epsilon at input position %d", ll.ErrInvalidInput, i)
		}
		if !utf8.ValidRune(t.Rune()) {
			return nil, fmt.Errorf("%w: invalid character %U at input position %d",
				ll.ErrInvalidInput, t.Rune(), i)
		}
		runes[i] = t.Rune()
	}
	return p.Parse(scanner.Runes("terminals", strings.NewReader(string(runes))))
}

// lookahead converts an input token to a grammar symbol.
func lookahead(token ll1.Token) ll.Symbol {
	if token.TokType() == scanner.EOF {
		return ll.EOF
	}
	return ll.T(rune(token.TokType()))
}

// classify reports characters which are not terminals of the grammar as
// mismatches, regardless of the parser's state.
func (p *Parser) classify(kind ErrorKind, la ll.Symbol) ErrorKind {
	if la.IsEOF() {
		return kind
	}
	for _, c := range p.table.Lookaheads() {
		if c == la {
			return kind
		}
	}
	return Mismatch
}

func (p *Parser) parseError(kind ErrorKind, A ll.NonTerminal, expected []ll.Symbol,
	la ll.Symbol, token ll1.Token) *ParseError {
	//
	err := &ParseError{
		Kind:        kind,
		NonTerminal: A,
		Expected:    expected,
		Found:       la,
		Token:       token,
		Pos:         token.Span().From(),
		StackDepth:  p.stack.Size(),
	}
	tracer().Infof("%v", err)
	return err
}
