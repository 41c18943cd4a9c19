package ll

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/ll1/ll/sparse"
	"github.com/npillmayer/schuko/gconf"
)

// === Parse Table ===========================================================

// Table is a predictive parse table. It maps pairs (lookahead, non-terminal)
// to the unique rule to expand. Rules are stored as serial numbers into the
// grammar.
//
// A Table is immutable once returned by the table generator and may be shared
// by any number of parsers.
type Table struct {
	g          *Grammar
	ntIndex    map[NonTerminal]int
	lookaheads []Symbol // character terminals of g in code point order, then #eof
	laIndex    map[Symbol]int
	matrix     *sparse.IntMatrix
}

// TableEntry is a cell of a parse table.
type TableEntry struct {
	NonTerminal NonTerminal
	Lookahead   Symbol
	Rule        *Rule
}

func (e TableEntry) String() string {
	return fmt.Sprintf("M[%v, %v] = %d: %v", e.NonTerminal, e.Lookahead, e.Rule.Serial, e.Rule)
}

func emptyTable(g *Grammar) *Table {
	t := &Table{
		g:       g,
		ntIndex: make(map[NonTerminal]int, len(g.nonterms)),
		laIndex: make(map[Symbol]int, len(g.terminals)+1),
	}
	for i, A := range g.nonterms {
		t.ntIndex[A] = i
	}
	for _, c := range g.terminals {
		t.laIndex[TermSymbol(c)] = len(t.lookaheads)
		t.lookaheads = append(t.lookaheads, TermSymbol(c))
	}
	t.laIndex[EOF] = len(t.lookaheads)
	t.lookaheads = append(t.lookaheads, EOF)
	t.matrix = sparse.NewIntMatrix(len(g.nonterms), len(t.lookaheads), sparse.DefaultNullValue)
	return t
}

// Grammar returns the grammar this table has been built for.
func (t *Table) Grammar() *Grammar {
	return t.g
}

// Start returns the start symbol of the table's grammar.
func (t *Table) Start() NonTerminal {
	return t.g.Start()
}

// Lookaheads returns all lookahead symbols (table columns) in order.
func (t *Table) Lookaheads() []Symbol {
	return append([]Symbol(nil), t.lookaheads...)
}

// Lookup returns the rule to expand for non-terminal A, given lookahead la.
// The second return value is false if the table has no entry for (la, A).
func (t *Table) Lookup(la Symbol, A NonTerminal) (*Rule, bool) {
	i, ok := t.ntIndex[A]
	if !ok {
		return nil, false
	}
	j, ok := t.laIndex[la]
	if !ok {
		return nil, false
	}
	v := t.matrix.Value(i, j)
	if v == t.matrix.NullValue() {
		return nil, false
	}
	return t.g.rules[v], true
}

// Expected returns all lookaheads for which the table has an entry for A.
// Parsers use this for error messages.
func (t *Table) Expected(A NonTerminal) []Symbol {
	i, ok := t.ntIndex[A]
	if !ok {
		return nil
	}
	var las []Symbol
	for j, la := range t.lookaheads {
		if t.matrix.Value(i, j) != t.matrix.NullValue() {
			las = append(las, la)
		}
	}
	return las
}

// Entries returns all table entries, ordered by non-terminal (in order of
// definition) and lookahead.
func (t *Table) Entries() []TableEntry {
	entries := make([]TableEntry, 0, t.matrix.ValueCount())
	t.matrix.Each(func(i, j int, v int32) {
		entries = append(entries, TableEntry{
			NonTerminal: t.g.nonterms[i],
			Lookahead:   t.lookaheads[j],
			Rule:        t.g.rules[v],
		})
	})
	return entries
}

// Size returns the number of entries of the table.
func (t *Table) Size() int {
	return t.matrix.ValueCount()
}

type fingerprintCell struct {
	NonTerminal string
	Lookahead   string
	Rule        int
}

type fingerprintData struct {
	Grammar string
	Cells   []fingerprintCell
}

// Fingerprint returns a hash over all entries of the table. Tables built from
// the same grammar have equal fingerprints.
func (t *Table) Fingerprint() (string, error) {
	data := fingerprintData{Grammar: t.g.Name}
	for _, e := range t.Entries() {
		data.Cells = append(data.Cells, fingerprintCell{
			NonTerminal: e.NonTerminal.Name,
			Lookahead:   e.Lookahead.String(),
			Rule:        e.Rule.Serial,
		})
	}
	return structhash.Hash(data, 1)
}

// enter puts rule r into cell (la, r.LHS). Cells are write-once.
func (t *Table) enter(la Symbol, r *Rule) error {
	i := t.ntIndex[r.LHS]
	j, ok := t.laIndex[la]
	if !ok {
		panic(fmt.Sprintf("lookahead %v is not a column of the parse table", la))
	}
	v, ok := t.matrix.Set(i, j, int32(r.Serial))
	if !ok {
		return &ConflictError{
			NonTerminal: r.LHS,
			Lookahead:   la,
			Existing:    t.g.rules[v],
			Conflicting: r,
		}
	}
	return nil
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct LL(1) parse tables.
// Clients usually create a Grammar G, then an LLAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTable() constructs
// the parse table for a predictive parser recognizing grammar G.
type TableGenerator struct {
	g     *Grammar
	ga    *LLAnalysis
	sinks []func(TableEntry)
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LLAnalysis) *TableGenerator {
	return &TableGenerator{
		g:  ga.Grammar(),
		ga: ga,
	}
}

// OnEntry registers a function which is called for every table entry during
// table construction, e.g. for debugging purposes.
func (gen *TableGenerator) OnEntry(sink func(TableEntry)) *TableGenerator {
	if sink != nil {
		gen.sinks = append(gen.sinks, sink)
	}
	return gen
}

// CreateTable creates the parse table. For every rule A ::= α the rule is
// entered at (a, A) for every terminal a in FIRST(α). If α is nullable, the
// rule is entered at (b, A) for every b in FOLLOW(A), including #eof.
//
// If a cell is already occupied by a different rule, the grammar is not
// LL(1) and table construction stops with a *ConflictError.
func (gen *TableGenerator) CreateTable() (*Table, error) {
	tracer().Debugf("=== build LL(1) table for %s ==================", gen.g.Name)
	trace := gconf.GetBool("ll1.trace-table")
	t := emptyTable(gen.g)
	for _, r := range gen.g.rules {
		first, err := gen.ga.First(r.rhs)
		if err != nil {
			return nil, err
		}
		las := first
		if gen.ga.derivesEpsilon(r.rhs) {
			las = append(las, gen.ga.Follow(r.LHS)...)
		}
		for _, la := range las {
			if prev, ok := t.Lookup(la, r.LHS); ok && prev == r {
				continue // FIRST(α) and FOLLOW(A) overlap for this rule
			}
			if err := t.enter(la, r); err != nil {
				tracer().Errorf(err.Error())
				return nil, err
			}
			entry := TableEntry{NonTerminal: r.LHS, Lookahead: la, Rule: r}
			if trace {
				tracer().Infof(entry.String())
			}
			for _, sink := range gen.sinks {
				sink(entry)
			}
		}
	}
	tracer().Infof("LL(1) table for %s has %d entries", gen.g.Name, t.Size())
	return t, nil
}

// BuildTable analyses g and creates its parse table.
func BuildTable(g *Grammar) (*Table, error) {
	ga, err := Analysis(g)
	if err != nil {
		return nil, err
	}
	return NewTableGenerator(ga).CreateTable()
}
