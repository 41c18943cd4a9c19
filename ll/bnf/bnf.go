package bnf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/npillmayer/ll1"
	"github.com/npillmayer/ll1/ll"
	"github.com/npillmayer/ll1/ll/scanner"
	"github.com/npillmayer/ll1/ll/scanner/lexmach"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// SyntaxError is returned for malformed grammar input.
type SyntaxError struct {
	Line   int // line number, starting at 1
	Column int // column within line, starting at 1; 0 if unknown
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("grammar syntax error at line %d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("grammar syntax error at line %d: %s", e.Line, e.Msg)
}

// Token types of the grammar lexer.
const (
	tokNonTerm     = iota + 1 // <name>
	tokOpenNonTerm            // <name   without closing bracket
	tokLiteral                // "chars"
	tokOpenLiteral            // "chars  without closing quote
	tokDefine                 // ::=
	tokAlt                    // |
)

var literals = []string{"::=", "|"}
var tokenIds = map[string]int{"::=": tokDefine, "|": tokAlt}

var lexer struct {
	once    sync.Once
	adapter *lexmach.LMAdapter
	err     error
}

// grammarLexer returns the lexmachine adapter for grammar lines. The DFA is
// compiled once and shared; scanners created from it are independent.
func grammarLexer() (*lexmach.LMAdapter, error) {
	lexer.once.Do(func() {
		init := func(lx *lexmachine.Lexer) {
			lx.Add([]byte(`<[^>]*>`), lexmach.MakeToken("NONTERM", tokNonTerm))
			lx.Add([]byte(`<[^>]*`), lexmach.MakeToken("OPEN-NONTERM", tokOpenNonTerm))
			lx.Add([]byte(`\"[^"]*\"`), lexmach.MakeToken("LITERAL", tokLiteral))
			lx.Add([]byte(`\"[^"]*`), lexmach.MakeToken("OPEN-LITERAL", tokOpenLiteral))
			lx.Add([]byte(`( |\t|\r)+`), lexmach.Skip)
		}
		lexer.adapter, lexer.err = lexmach.NewLMAdapter(init, literals, tokenIds)
	})
	return lexer.adapter, lexer.err
}

// Parse reads a grammar from a string. name will be the name of the grammar.
func Parse(name string, source string) (*ll.Grammar, error) {
	return Read(name, strings.NewReader(source))
}

// Read reads a grammar from r, one rule per line. It returns a *SyntaxError for
// malformed lines, or an *ll.GrammarError if the rules do not form a
// well-formed grammar.
func Read(name string, r io.Reader) (*ll.Grammar, error) {
	lm, err := grammarLexer()
	if err != nil {
		return nil, err
	}
	b := ll.NewGrammarBuilder(name)
	lines := bufio.NewScanner(r)
	lineno := 0
	for lines.Scan() {
		lineno++
		line := lines.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens, err := tokenize(lm, line, lineno)
		if err != nil {
			return nil, err
		}
		if err := readRule(b, tokens, lineno); err != nil {
			return nil, err
		}
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	if lineno == 0 {
		tracer().Infof("grammar %s: empty input", name)
	}
	return b.Grammar()
}

func tokenize(lm *lexmach.LMAdapter, line string, lineno int) ([]ll1.Token, error) {
	sc, err := lm.Scanner(line)
	if err != nil {
		return nil, &SyntaxError{Line: lineno, Msg: err.Error()}
	}
	var lexerr error
	sc.SetErrorHandler(func(e error) {
		if lexerr == nil {
			lexerr = e
		}
	})
	var tokens []ll1.Token
	for token := sc.NextToken(); token.TokType() != scanner.EOF; token = sc.NextToken() {
		tokens = append(tokens, token)
	}
	if lexerr != nil {
		serr := &SyntaxError{Line: lineno, Msg: "unexpected input"}
		if ui, ok := lexerr.(*machines.UnconsumedInput); ok && ui.StartTC < len(line) {
			serr.Column = ui.StartColumn
			end := ui.FailTC
			if end <= ui.StartTC || end > len(line) {
				end = ui.StartTC + 1
			}
			serr.Msg = fmt.Sprintf("unexpected input %q", line[ui.StartTC:end])
		}
		return nil, serr
	}
	return tokens, nil
}

func readRule(b *ll.GrammarBuilder, tokens []ll1.Token, lineno int) error {
	define := -1
	count := 0
	for i, token := range tokens {
		if token.TokType() == tokDefine {
			if define < 0 {
				define = i
			}
			count++
		}
	}
	if count != 1 {
		return &SyntaxError{Line: lineno, Msg: fmt.Sprintf("found %d rule separators '::=', expected 1", count)}
	}
	lhs := tokens[:define]
	if len(lhs) == 0 || lhs[0].TokType() != tokNonTerm {
		return syntaxError(lineno, tokens[0], "no non-terminal on left-hand side")
	}
	if len(lhs) > 1 {
		return syntaxError(lineno, lhs[1], "left-hand side must be a single non-terminal")
	}
	name, err := nonTermName(lhs[0], lineno)
	if err != nil {
		return err
	}
	rb := b.LHS(name)
	for _, token := range tokens[define+1:] {
		switch token.TokType() {
		case tokNonTerm:
			n, err := nonTermName(token, lineno)
			if err != nil {
				return err
			}
			rb.N(n)
		case tokLiteral:
			lexeme := token.Lexeme()
			rb.L(lexeme[1 : len(lexeme)-1])
		case tokAlt:
			rb.End()
			rb = b.LHS(name)
		case tokOpenLiteral:
			return syntaxError(lineno, token, "unterminated literal")
		case tokOpenNonTerm:
			return syntaxError(lineno, token, "unterminated non-terminal")
		}
	}
	rb.End()
	return nil
}

func nonTermName(token ll1.Token, lineno int) (string, error) {
	if token.TokType() == tokOpenNonTerm {
		return "", syntaxError(lineno, token, "unterminated non-terminal")
	}
	lexeme := token.Lexeme()
	name := strings.TrimSpace(lexeme[1 : len(lexeme)-1])
	if name == "" {
		return "", syntaxError(lineno, token, "empty non-terminal name")
	}
	return name, nil
}

func syntaxError(lineno int, token ll1.Token, msg string) *SyntaxError {
	tracer().Debugf("line %d: %s at %q", lineno, msg, token.Lexeme())
	return &SyntaxError{Line: lineno, Column: int(token.Span().From()), Msg: msg}
}

// --- Formatting ------------------------------------------------------------

// Format writes g in the notation understood by Parse, one rule per line.
// Alternatives are not merged, so rule numbers are preserved when reading
// the output back. Grammars containing terminals '"' or non-terminal names
// containing '>' cannot be written and result in an error.
func Format(g *ll.Grammar) (string, error) {
	var out bytes.Buffer
	for _, r := range g.Rules() {
		if strings.ContainsAny(r.LHS.Name, "<>") {
			return "", fmt.Errorf("cannot format non-terminal %q", r.LHS.Name)
		}
		out.WriteString("<" + r.LHS.Name + "> ::=")
		var lit []rune
		inLiteral := false
		flush := func() {
			if inLiteral {
				out.WriteString(` "` + string(lit) + `"`)
				lit, inLiteral = lit[:0], false
			}
		}
		for _, sym := range r.RHS() {
			if A, ok := sym.NonTerminal(); ok {
				if strings.ContainsAny(A.Name, "<>") {
					return "", fmt.Errorf("cannot format non-terminal %q", A.Name)
				}
				flush()
				out.WriteString(" <" + A.Name + ">")
				continue
			}
			t, _ := sym.Terminal()
			if t.Rune() == '"' {
				return "", fmt.Errorf("cannot format terminal %v", t)
			}
			inLiteral = true
			if !t.IsEpsilon() {
				lit = append(lit, t.Rune())
			}
		}
		flush()
		out.WriteByte('\n')
	}
	return out.String(), nil
}
