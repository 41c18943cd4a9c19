package predictive

import (
	"bytes"

	"github.com/npillmayer/ll1"
	"github.com/npillmayer/ll1/ll"
)

// Node is a node of a parse tree. Nodes refer to each other by ID, which is
// the index of a node within its tree. The root node has ID 0 and Parent -1.
//
// Nodes for non-terminals carry the rule they have been expanded with, or -1
// if the parse stopped before expansion. Nodes for terminals carry the
// matched input token.
type Node struct {
	ID       int
	Parent   int
	Children []int
	Symbol   ll.Symbol
	Rule     int
	Token    ll1.Token
	Span     ll1.Span
}

// Tree is a parse tree, created by the parser. Nodes are kept in an arena,
// i.e. a slice, and reference each other by index.
type Tree struct {
	g          *ll.Grammar
	nodes      []Node
	derivation []int // rules in the order of expansion
}

func newTree(g *ll.Grammar) *Tree {
	return &Tree{g: g, nodes: make([]Node, 0, 64)}
}

func (t *Tree) add(sym ll.Symbol, parent int) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, Node{ID: id, Parent: parent, Symbol: sym, Rule: -1})
	if parent >= 0 {
		t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	}
	return id
}

// expand records the expansion of node n with rule r and creates a child for
// every symbol of the right-hand side. Epsilon-rules get no children; they
// cover an empty span at input position pos.
func (t *Tree) expand(n int, r *ll.Rule, pos uint64) []int {
	t.nodes[n].Rule = r.Serial
	t.derivation = append(t.derivation, r.Serial)
	if r.IsEpsilon() {
		t.nodes[n].Span = ll1.Span{pos, pos}
		return nil
	}
	children := make([]int, r.Len())
	for i := 0; i < r.Len(); i++ {
		children[i] = t.add(r.At(i), n)
	}
	return children
}

func (t *Tree) match(n int, token ll1.Token) {
	t.nodes[n].Token = token
	t.nodes[n].Span = token.Span()
}

// finish computes the spans of non-terminal nodes. Children always have
// higher IDs than their parents, so a backwards sweep visits children first.
func (t *Tree) finish() {
	for id := len(t.nodes) - 1; id >= 0; id-- {
		node := &t.nodes[id]
		for _, ch := range node.Children {
			node.Span = node.Span.Extend(t.nodes[ch].Span)
		}
	}
}

// Grammar returns the grammar of the tree's parser.
func (t *Tree) Grammar() *ll.Grammar {
	return t.g
}

// Root returns the ID of the root node.
func (t *Tree) Root() int {
	return 0
}

// Size returns the number of nodes.
func (t *Tree) Size() int {
	return len(t.nodes)
}

// Node returns a copy of node id.
func (t *Tree) Node(id int) Node {
	node := t.nodes[id]
	node.Children = append([]int(nil), node.Children...)
	return node
}

// Parent returns the ID of the parent of node id. It returns false for the root.
func (t *Tree) Parent(id int) (int, bool) {
	p := t.nodes[id].Parent
	return p, p >= 0
}

// Children returns the IDs of the children of node id, from left to right.
func (t *Tree) Children(id int) []int {
	return append([]int(nil), t.nodes[id].Children...)
}

// Derivation returns the serial numbers of the rules of a leftmost
// derivation of the input.
func (t *Tree) Derivation() []int {
	return append([]int(nil), t.derivation...)
}

// Yield returns the input covered by the tree, i.e. the lexemes of all
// terminal leaves from left to right.
func (t *Tree) Yield() string {
	var b bytes.Buffer
	t.each(0, func(node *Node) {
		if node.Token != nil {
			b.WriteString(node.Token.Lexeme())
		}
	})
	return b.String()
}

// each visits the subtree of n in pre-order.
func (t *Tree) each(n int, f func(*Node)) {
	f(&t.nodes[n])
	for _, ch := range t.nodes[n].Children {
		t.each(ch, f)
	}
}

// String returns a bracketed form of the tree, e.g.
//
//    S[( L[S[a] L[]] )]
//
func (t *Tree) String() string {
	var b bytes.Buffer
	if len(t.nodes) > 0 {
		t.bracket(&b, 0)
	}
	return b.String()
}

func (t *Tree) bracket(b *bytes.Buffer, n int) {
	node := &t.nodes[n]
	if A, ok := node.Symbol.NonTerminal(); ok {
		b.WriteString(A.Name)
		b.WriteByte('[')
		for i, ch := range node.Children {
			if i > 0 {
				b.WriteByte(' ')
			}
			t.bracket(b, ch)
		}
		b.WriteByte(']')
		return
	}
	if term, ok := node.Symbol.Terminal(); ok {
		b.WriteRune(term.Rune())
	}
}

// Dump is a debugging helper: it traces the tree, one node per line.
func (t *Tree) Dump() {
	var dump func(n, level int)
	dump = func(n, level int) {
		node := &t.nodes[n]
		tracer().Debugf("%s%v %v rule=%d", indent(level), node.Symbol, node.Span, node.Rule)
		for _, ch := range node.Children {
			dump(ch, level+1)
		}
	}
	if len(t.nodes) > 0 {
		dump(0, 0)
	}
}

// --- Derivation listener ---------------------------------------------------

// Listener is a type for walking a parse tree.
type Listener interface {
	Reduce(A ll.NonTerminal, rule *ll.Rule, children []*RuleNode, extent ll1.Span, level int) interface{}
	Terminal(token ll1.Token, level int) interface{}
}

// RuleNode represents a node occuring during a parse tree walk.
type RuleNode struct {
	sym    ll.Symbol
	Extent ll1.Span    // span of input symbols this node covers
	Value  interface{} // user defined value
}

// Symbol returns the grammar symbol a RuleNode refers to.
// It is either a terminal or the LHS of a rule.
func (rnode *RuleNode) Symbol() ll.Symbol {
	return rnode.sym
}

// Walk walks the tree bottom-up. It calls the listener for every terminal and
// for every non-terminal, after its children have been walked. The values
// returned by the listener are stored in the RuleNodes handed to the parent.
// Walk returns the RuleNode for the root.
func (t *Tree) Walk(listener Listener) *RuleNode {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.walk(0, listener, 0)
}

func (t *Tree) walk(n int, listener Listener, level int) *RuleNode {
	node := &t.nodes[n]
	rnode := &RuleNode{sym: node.Symbol, Extent: node.Span}
	if node.Symbol.IsTerminal() {
		rnode.Value = listener.Terminal(node.Token, level)
		return rnode
	}
	children := make([]*RuleNode, len(node.Children))
	for i, ch := range node.Children {
		children[i] = t.walk(ch, listener, level+1)
	}
	A, _ := node.Symbol.NonTerminal()
	rnode.Value = listener.Reduce(A, t.g.Rule(node.Rule), children, node.Span, level)
	return rnode
}

func indent(level int) string {
	in := ""
	for level > 0 {
		in = in + ". "
		level--
	}
	return in
}
