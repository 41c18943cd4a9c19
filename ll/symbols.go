package ll

import (
	"strconv"

	"github.com/emirpasic/gods/utils"
)

// NonTerminal is a named grammar symbol which is expanded by production rules.
// Non-terminals compare equal if their names are equal.
type NonTerminal struct {
	Name string
}

func (A NonTerminal) String() string {
	return "<" + A.Name + ">"
}

// Terminal is either a single input character or the distinguished Epsilon
// value, representing the empty string.
type Terminal struct {
	char    rune
	epsilon bool
}

// Epsilon is the terminal for the empty string.
var Epsilon = Terminal{epsilon: true}

// Char creates a terminal for an input character. Grammar builders and the
// parser reject characters which are not valid Unicode code points.
func Char(r rune) Terminal {
	return Terminal{char: r}
}

// IsEpsilon is true for the Epsilon terminal.
func (t Terminal) IsEpsilon() bool {
	return t.epsilon
}

// Rune returns the character of t. For Epsilon it returns 0.
func (t Terminal) Rune() rune {
	if t.epsilon {
		return 0
	}
	return t.char
}

func (t Terminal) String() string {
	if t.epsilon {
		return "ε"
	}
	return strconv.QuoteRune(t.char)
}

// SymbolKind discriminates the variants of Symbol.
type SymbolKind uint8

// The variants of a grammar symbol.
const (
	NonTermKind SymbolKind = iota
	TermKind
	EndKind
)

// Symbol is a member of the grammar alphabet: a non-terminal, a terminal or the
// end-of-input sentinel. Symbols are comparable and may be used as map keys.
type Symbol struct {
	kind SymbolKind
	nt   NonTerminal
	t    Terminal
}

// EOF is the end-of-input sentinel. It appears in lookahead sets, in
// FOLLOW-sets and at the bottom of the parser stack, but never on the
// right-hand side of a rule.
var EOF = Symbol{kind: EndKind}

// N creates a non-terminal symbol.
func N(name string) Symbol {
	return Symbol{kind: NonTermKind, nt: NonTerminal{Name: name}}
}

// T creates a terminal symbol for a character.
func T(r rune) Symbol {
	return Symbol{kind: TermKind, t: Char(r)}
}

// Eps creates the terminal symbol for Epsilon.
func Eps() Symbol {
	return Symbol{kind: TermKind, t: Epsilon}
}

// TermSymbol wraps a terminal into a symbol.
func TermSymbol(t Terminal) Symbol {
	return Symbol{kind: TermKind, t: t}
}

// NonTermSymbol wraps a non-terminal into a symbol.
func NonTermSymbol(A NonTerminal) Symbol {
	return Symbol{kind: NonTermKind, nt: A}
}

// Kind returns the variant of a symbol.
func (sym Symbol) Kind() SymbolKind {
	return sym.kind
}

// IsTerminal is true for terminals, including Epsilon.
func (sym Symbol) IsTerminal() bool {
	return sym.kind == TermKind
}

// IsNonTerminal is true for non-terminals.
func (sym Symbol) IsNonTerminal() bool {
	return sym.kind == NonTermKind
}

// IsEOF is true for the end-of-input sentinel.
func (sym Symbol) IsEOF() bool {
	return sym.kind == EndKind
}

// IsEpsilon is true for the Epsilon terminal.
func (sym Symbol) IsEpsilon() bool {
	return sym.kind == TermKind && sym.t.epsilon
}

// NonTerminal returns the non-terminal of a symbol. The second return value is
// false if sym is not a non-terminal.
func (sym Symbol) NonTerminal() (NonTerminal, bool) {
	return sym.nt, sym.kind == NonTermKind
}

// Terminal returns the terminal of a symbol. The second return value is
// false if sym is not a terminal.
func (sym Symbol) Terminal() (Terminal, bool) {
	return sym.t, sym.kind == TermKind
}

func (sym Symbol) String() string {
	switch sym.kind {
	case NonTermKind:
		return sym.nt.String()
	case TermKind:
		return sym.t.String()
	}
	return "#eof"
}

// symbolComparator orders symbols for use in sorted sets: non-terminals by
// name first, then Epsilon, then characters by code point, then #eof.
func symbolComparator(a, b interface{}) int {
	s1 := a.(Symbol)
	s2 := b.(Symbol)
	if s1.kind != s2.kind {
		return symbolRank(s1) - symbolRank(s2)
	}
	switch s1.kind {
	case NonTermKind:
		return utils.StringComparator(s1.nt.Name, s2.nt.Name)
	case TermKind:
		if s1.t.epsilon != s2.t.epsilon {
			if s1.t.epsilon {
				return -1
			}
			return 1
		}
		return utils.IntComparator(int(s1.t.char), int(s2.t.char))
	}
	return 0
}

func symbolRank(sym Symbol) int {
	switch sym.kind {
	case NonTermKind:
		return 0
	case TermKind:
		return 1
	}
	return 2
}
