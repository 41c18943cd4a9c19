package ll

import (
	"bytes"
	"fmt"
	"sort"
	"unicode/utf8"
)

// Rule is a production rule of a grammar:
//
//    LHS ::= X1 … Xn
//
// Rules are immutable after construction. The right-hand side of an
// epsilon-production consists of exactly one Epsilon symbol.
type Rule struct {
	Serial int         // ordinal number of the rule within its grammar
	LHS    NonTerminal // left hand side
	rhs    []Symbol
}

// RHS returns a copy of the right-hand side of a rule.
func (r *Rule) RHS() []Symbol {
	return append([]Symbol(nil), r.rhs...)
}

// Len returns the number of symbols of the right-hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// At returns the i-th symbol of the right-hand side.
func (r *Rule) At(i int) Symbol {
	return r.rhs[i]
}

// IsEpsilon is true for rules of the form  A ::= ε
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 1 && r.rhs[0].IsEpsilon()
}

func (r *Rule) String() string {
	var b bytes.Buffer
	b.WriteString(r.LHS.String())
	b.WriteString(" ::=")
	for _, sym := range r.rhs {
		b.WriteByte(' ')
		b.WriteString(sym.String())
	}
	return b.String()
}

// Grammar is an ordered set of rules. The left-hand side of the first rule is
// the start symbol. Grammars are created with a GrammarBuilder and are
// read-only afterwards, i.e., they may be shared freely between goroutines.
type Grammar struct {
	Name      string
	rules     []*Rule
	nonterms  []NonTerminal // in order of first appearance as a LHS
	terminals []Terminal    // characters only, ordered by code point
	byLHS     map[NonTerminal][]*Rule
}

// Rule returns the rule with serial number no.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rules returns all rules of g in order.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// Start returns the start symbol, i.e. the LHS of the first rule.
func (g *Grammar) Start() NonTerminal {
	return g.rules[0].LHS
}

// RulesFor returns the alternative productions of non-terminal A, in grammar order.
func (g *Grammar) RulesFor(A NonTerminal) []*Rule {
	return g.byLHS[A]
}

// NonTerminals returns all non-terminals of g, in order of their first definition.
func (g *Grammar) NonTerminals() []NonTerminal {
	return append([]NonTerminal(nil), g.nonterms...)
}

// Terminals returns all character terminals occuring in g, ordered by code point.
func (g *Grammar) Terminals() []Terminal {
	return append([]Terminal(nil), g.terminals...)
}

// EachNonTerminal calls mapper for every non-terminal and collects the non-nil
// results.
func (g *Grammar) EachNonTerminal(mapper func(A NonTerminal) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.nonterms {
		if x := mapper(A); x != nil {
			r = append(r, x)
		}
	}
	return r
}

// Dump is a debugging helper: it traces the rules of g.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("--------------------------------------------")
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is used to construct a Grammar.
//
//    b := ll.NewGrammarBuilder("G")
//    b.LHS("S").T('(').N("L").T(')').End()   // S ::= ( L )
//    b.LHS("S").T('a').End()                 // S ::= a
//    b.LHS("L").N("S").N("L").End()          // L ::= S L
//    b.LHS("L").Epsilon()                    // L ::= ε
//    g, err := b.Grammar()
//
type GrammarBuilder struct {
	name  string
	rules []*Rule
	err   error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{name: gname}
}

// RuleBuilder collects the right-hand side of a single rule. Get one with
// GrammarBuilder.LHS.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs NonTerminal
	rhs []Symbol
}

// LHS starts a new rule with left-hand side non-terminal s.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	if s == "" && gb.err == nil {
		gb.err = &GrammarError{Grammar: gb.name, Msg: "empty name for left-hand side of rule"}
	}
	return &RuleBuilder{gb: gb, lhs: NonTerminal{Name: s}}
}

// N appends a non-terminal to the right-hand side.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	if s == "" {
		rb.fail("empty non-terminal name on right-hand side of %v", rb.lhs)
	}
	rb.rhs = append(rb.rhs, N(s))
	return rb
}

// T appends a character terminal to the right-hand side. r has to be a valid
// Unicode code point.
func (rb *RuleBuilder) T(r rune) *RuleBuilder {
	if !utf8.ValidRune(r) {
		rb.fail("invalid character %U on right-hand side of %v", r, rb.lhs)
		return rb
	}
	rb.rhs = append(rb.rhs, T(r))
	return rb
}

// L appends a literal to the right-hand side, one terminal per rune.
// The empty literal appends Epsilon.
func (rb *RuleBuilder) L(lit string) *RuleBuilder {
	if lit == "" {
		rb.rhs = append(rb.rhs, Eps())
		return rb
	}
	if !utf8.ValidString(lit) {
		rb.fail("literal %q on right-hand side of %v is not valid UTF-8", lit, rb.lhs)
		return rb
	}
	for _, r := range lit {
		rb.rhs = append(rb.rhs, T(r))
	}
	return rb
}

// Symbols appends arbitrary symbols to the right-hand side. #eof is not a legal
// member of a right-hand side.
func (rb *RuleBuilder) Symbols(syms ...Symbol) *RuleBuilder {
	for _, sym := range syms {
		if sym.IsEOF() {
			rb.fail("#eof on right-hand side of %v", rb.lhs)
			continue
		}
		if t, ok := sym.Terminal(); ok && !t.IsEpsilon() && !utf8.ValidRune(t.Rune()) {
			rb.fail("invalid character %U on right-hand side of %v", t.Rune(), rb.lhs)
			continue
		}
		rb.rhs = append(rb.rhs, sym)
	}
	return rb
}

// Epsilon closes an epsilon-production  A ::= ε
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rhs = []Symbol{Eps()}
	return rb.End()
}

// End closes a rule and appends it to the grammar.
// An empty right-hand side is an epsilon-production. Epsilon symbols inside a
// longer right-hand side are dropped, as they derive nothing.
func (rb *RuleBuilder) End() *Rule {
	r := &Rule{
		Serial: len(rb.gb.rules),
		LHS:    rb.lhs,
		rhs:    normalizeRHS(rb.rhs),
	}
	rb.gb.rules = append(rb.gb.rules, r)
	return r
}

func (rb *RuleBuilder) fail(format string, args ...interface{}) {
	if rb.gb.err == nil {
		rb.gb.err = &GrammarError{Grammar: rb.gb.name, Msg: fmt.Sprintf(format, args...)}
	}
}

func normalizeRHS(rhs []Symbol) []Symbol {
	norm := make([]Symbol, 0, len(rhs))
	for _, sym := range rhs {
		if !sym.IsEpsilon() {
			norm = append(norm, sym)
		}
	}
	if len(norm) == 0 {
		return []Symbol{Eps()}
	}
	return norm
}

// Grammar returns the grammar built so far, or an error if the rules are not
// a well-formed grammar: a grammar needs at least one rule, and every
// non-terminal referenced on a right-hand side needs at least one rule.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if len(gb.rules) == 0 {
		return nil, &GrammarError{Grammar: gb.name, Msg: "grammar has no rules"}
	}
	g := &Grammar{
		Name:  gb.name,
		rules: append([]*Rule(nil), gb.rules...),
		byLHS: make(map[NonTerminal][]*Rule),
	}
	chars := make(map[rune]bool)
	for _, r := range g.rules {
		if _, ok := g.byLHS[r.LHS]; !ok {
			g.nonterms = append(g.nonterms, r.LHS)
		}
		g.byLHS[r.LHS] = append(g.byLHS[r.LHS], r)
		for _, sym := range r.rhs {
			if t, ok := sym.Terminal(); ok && !t.IsEpsilon() {
				chars[t.Rune()] = true
			}
		}
	}
	for _, r := range g.rules {
		for _, sym := range r.rhs {
			if A, ok := sym.NonTerminal(); ok {
				if _, defined := g.byLHS[A]; !defined {
					return nil, &GrammarError{
						Grammar: gb.name,
						Msg:     fmt.Sprintf("non-terminal %v used in rule %d has no rules", A, r.Serial),
					}
				}
			}
		}
	}
	for c := range chars {
		g.terminals = append(g.terminals, Char(c))
	}
	sort.Slice(g.terminals, func(i, j int) bool {
		return g.terminals[i].Rune() < g.terminals[j].Rune()
	})
	tracer().Debugf("grammar %q has %d rules, %d non-terminals, %d terminals",
		g.Name, len(g.rules), len(g.nonterms), len(g.terminals))
	return g, nil
}
