package ll

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
)

// LLAnalysis is an object for grammar analysis: it determines nullable
// non-terminals and computes FIRST and FOLLOW sets for all non-terminals.
//
// Analysis is done once, on construction, by fixed-point iteration over all
// rules of the grammar. Recursive and mutually recursive non-terminals
// therefore cannot cause endless recursion: a non-terminal is nullable only
// if a finite derivation to the empty string exists, and cycles without a
// terminating production contribute nothing to FIRST or FOLLOW sets.
//
// An LLAnalysis is immutable after construction and safe for concurrent use.
type LLAnalysis struct {
	g        *Grammar
	nullable map[NonTerminal]bool
	first    map[NonTerminal]*treeset.Set
	follow   map[NonTerminal]*treeset.Set
}

// Analysis analyses a grammar. It returns an error only if one of the
// fixed-point iterations exceeds its iteration limit.
func Analysis(g *Grammar) (*LLAnalysis, error) {
	ga := &LLAnalysis{
		g:        g,
		nullable: make(map[NonTerminal]bool),
		first:    make(map[NonTerminal]*treeset.Set),
		follow:   make(map[NonTerminal]*treeset.Set),
	}
	for _, A := range g.nonterms {
		ga.first[A] = newSymbolSet()
		ga.follow[A] = newSymbolSet()
	}
	if err := ga.markNullables(); err != nil {
		return nil, err
	}
	if err := ga.computeFirstSets(); err != nil {
		return nil, err
	}
	if err := ga.computeFollowSets(); err != nil {
		return nil, err
	}
	return ga, nil
}

// Grammar returns the grammar this analysis is for.
func (ga *LLAnalysis) Grammar() *Grammar {
	return ga.g
}

func newSymbolSet() *treeset.Set {
	return treeset.NewWith(symbolComparator)
}

// maxRounds limits the number of rounds of a fixed-point iteration. Every
// round which does not terminate the iteration adds at least one element to
// one of the sets, and no set may grow beyond |T|+1 elements (#eof included).
func (ga *LLAnalysis) maxRounds() int {
	return len(ga.g.nonterms)*(len(ga.g.terminals)+2) + 2
}

// --- Nullable --------------------------------------------------------------

func (ga *LLAnalysis) markNullables() error {
	limit := ga.maxRounds()
	for round := 1; ; round++ {
		if round > limit {
			return fmt.Errorf("%w: nullable, %d rounds", ErrNoFixpoint, limit)
		}
		changed := false
		for _, r := range ga.g.rules {
			if ga.nullable[r.LHS] {
				continue
			}
			if ga.derivesEpsilon(r.rhs) {
				tracer().Debugf("%v is nullable by rule %d", r.LHS, r.Serial)
				ga.nullable[r.LHS] = true
				changed = true
			}
		}
		if !changed {
			tracer().Debugf("nullable: fixed point after %d rounds", round)
			return nil
		}
	}
}

// derivesEpsilon checks a sequence against the current state of the nullable
// markers. #eof is never nullable.
func (ga *LLAnalysis) derivesEpsilon(seq []Symbol) bool {
	for _, sym := range seq {
		switch sym.kind {
		case TermKind:
			if !sym.t.epsilon {
				return false
			}
		case NonTermKind:
			if !ga.nullable[sym.nt] {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Nullable returns true if the sequence of symbols is able to derive the
// empty string. The empty sequence is nullable.
// Querying #eof is a contract violation and results in ErrInvalidQuery.
func (ga *LLAnalysis) Nullable(seq []Symbol) (bool, error) {
	if err := checkNoEOF(seq); err != nil {
		return false, err
	}
	return ga.derivesEpsilon(seq), nil
}

// NullableNonTerminal returns true if A is able to derive the empty string.
func (ga *LLAnalysis) NullableNonTerminal(A NonTerminal) bool {
	return ga.nullable[A]
}

func checkNoEOF(seq []Symbol) error {
	for i, sym := range seq {
		if sym.IsEOF() {
			return fmt.Errorf("%w: position %d of %v", ErrInvalidQuery, i, seq)
		}
	}
	return nil
}

// --- FIRST -----------------------------------------------------------------

func (ga *LLAnalysis) computeFirstSets() error {
	limit := ga.maxRounds()
	for round := 1; ; round++ {
		if round > limit {
			return fmt.Errorf("%w: FIRST, %d rounds", ErrNoFixpoint, limit)
		}
		changed := false
		for _, r := range ga.g.rules {
			if ga.firstInto(ga.first[r.LHS], r.rhs) {
				changed = true
			}
		}
		if !changed {
			tracer().Debugf("FIRST: fixed point after %d rounds", round)
			return nil
		}
	}
}

// firstInto adds FIRST(seq) to set and reports if set has grown.
// Symbols are inspected left to right as long as the prefix is nullable.
func (ga *LLAnalysis) firstInto(set *treeset.Set, seq []Symbol) bool {
	size := set.Size()
	for _, sym := range seq {
		if sym.kind == TermKind {
			if sym.t.epsilon {
				continue
			}
			set.Add(sym)
			break
		}
		if sym.kind == NonTermKind {
			set.Add(ga.first[sym.nt].Values()...)
			if !ga.nullable[sym.nt] {
				break
			}
		}
	}
	return set.Size() > size
}

// First returns the set of character terminals which may start a derivation
// of seq. Neither Epsilon nor #eof will be part of the result; use Nullable
// to check if seq may derive the empty string.
//
// Symbols are inspected from the left as long as the prefix seen so far is
// nullable, so FIRST(A c) contains c if A is nullable. Alternatives like
// A c | c d therefore conflict in the parse table.
//
// The empty sequence has no FIRST-set and results in ErrInvalidInput.
func (ga *LLAnalysis) First(seq []Symbol) ([]Symbol, error) {
	if len(seq) == 0 {
		return nil, ErrInvalidInput
	}
	if err := checkNoEOF(seq); err != nil {
		return nil, err
	}
	set := newSymbolSet()
	ga.firstInto(set, seq)
	return symbols(set), nil
}

// FirstOf returns FIRST(A) for a non-terminal A.
func (ga *LLAnalysis) FirstOf(A NonTerminal) []Symbol {
	return symbols(ga.first[A])
}

// --- FOLLOW ----------------------------------------------------------------

func (ga *LLAnalysis) computeFollowSets() error {
	ga.follow[ga.g.Start()].Add(EOF)
	limit := ga.maxRounds()
	for round := 1; ; round++ {
		if round > limit {
			return fmt.Errorf("%w: FOLLOW, %d rounds", ErrNoFixpoint, limit)
		}
		changed := false
		for _, r := range ga.g.rules {
			for i, sym := range r.rhs {
				B, ok := sym.NonTerminal()
				if !ok {
					continue
				}
				set := ga.follow[B]
				size := set.Size()
				tail := r.rhs[i+1:]
				if len(tail) > 0 {
					ga.firstInto(set, tail)
				}
				if B != r.LHS && ga.derivesEpsilon(tail) { // true for empty tail, too
					set.Add(ga.follow[r.LHS].Values()...)
				}
				if set.Size() > size {
					changed = true
				}
			}
		}
		if !changed {
			tracer().Debugf("FOLLOW: fixed point after %d rounds", round)
			return nil
		}
	}
}

// Follow returns the set of terminals which may immediately follow A in a
// derivation from the start symbol. If A may end a sentence, #eof is included
// (as the last element).
func (ga *LLAnalysis) Follow(A NonTerminal) []Symbol {
	return symbols(ga.follow[A])
}

// symbols converts a symbol set into an ordered slice. A nil set results in
// an empty slice.
func symbols(set *treeset.Set) []Symbol {
	if set == nil {
		return []Symbol{}
	}
	syms := make([]Symbol, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		syms = append(syms, it.Value().(Symbol))
	}
	return syms
}
